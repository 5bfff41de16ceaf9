package job

import (
	"context"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// Provider represents a source of the job listing (HTTP listing service, graph store, ...)
type Provider interface {
	// e.g. "listing" or "graph"
	Name() string

	// ListJobs returns every open position in listing order
	ListJobs(ctx context.Context) ([]domain.Job, error)
}
