package listing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/honeycarbs/jobboard/internal/domain"
	jobdomain "github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/pkg/jobboard"
)

// listClient describes the subset of the job board client used by the provider.
type listClient interface {
	ListJobs(ctx context.Context) ([]jobboard.Job, error)
}

// Provider implements job.Provider over the HTTP job listing service
type Provider struct {
	client listClient
}

// NewProvider builds a listing provider
func NewProvider(client listClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("listing provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "listing"
}

// ListJobs fetches the listing and normalizes it into domain jobs
func (p *Provider) ListJobs(ctx context.Context) ([]domain.Job, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("listing provider: client is nil")
	}

	respJobs, err := p.client.ListJobs(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Job, 0, len(respJobs))
	for i, j := range respJobs {
		var id domain.JobID
		if err := json.Unmarshal(j.ID, &id); err != nil || id.IsZero() {
			return nil, fmt.Errorf("listing provider: job %d has no usable id", i)
		}

		out = append(out, domain.Job{
			ID:           id,
			Title:        j.Title,
			Company:      j.Company,
			Description:  j.Description,
			Requirements: j.Requirements,
		})
	}

	return out, nil
}

var _ jobdomain.Provider = (*Provider)(nil)
