package job

import (
	"context"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// Repository loads jobs from storage
type Repository interface {
	// ListJobs returns all stored jobs in a stable order
	ListJobs(ctx context.Context) ([]domain.Job, error)

	// FindByIDs loads full Job records for the given IDs
	FindByIDs(ctx context.Context, ids []domain.JobID) ([]domain.Job, error)
}
