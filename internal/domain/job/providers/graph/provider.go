package graph

import (
	"context"
	"fmt"

	"github.com/honeycarbs/jobboard/internal/domain"
	jobdomain "github.com/honeycarbs/jobboard/internal/domain/job"
)

// Provider serves the job listing out of the graph store
type Provider struct {
	repo jobdomain.Repository
}

// NewProvider builds a graph-backed provider
func NewProvider(repo jobdomain.Repository) (*Provider, error) {
	if repo == nil {
		return nil, fmt.Errorf("graph provider: repository is required")
	}
	return &Provider{repo: repo}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "graph"
}

// ListJobs returns every stored job in repository order
func (p *Provider) ListJobs(ctx context.Context) ([]domain.Job, error) {
	jobs, err := p.repo.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("graph provider: %w", err)
	}
	return jobs, nil
}

var _ jobdomain.Provider = (*Provider)(nil)
