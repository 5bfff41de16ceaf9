package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/pkg/jobboard"
)

type boardAPI interface {
	GetUser(ctx context.Context, id string) (jobboard.User, error)
	UploadResume(ctx context.Context, r jobboard.Resume) (jobboard.UploadResult, error)
	SubmitApplication(ctx context.Context, in jobboard.ApplicationRequest) (jobboard.ApplicationResult, error)
	ListApplications(ctx context.Context, userID string) ([]jobboard.Application, error)
}

// Remote is the Intake, Scorer and user lookup backed by the job board HTTP API
type Remote struct {
	api boardAPI
}

// NewRemote adapts a job board client
func NewRemote(client *jobboard.Client) *Remote {
	return &Remote{api: client}
}

// UploadResume sends file to the intake service
func (r *Remote) UploadResume(ctx context.Context, file domain.ResumeFile, hint UserHint) (domain.UserID, error) {
	userHint := jobboard.NewUserHint
	if !hint.IsNew() {
		userHint = string(hint.UserID())
	}

	res, err := r.api.UploadResume(ctx, jobboard.Resume{
		Filename: file.Name,
		Content:  file.Data,
		UserHint: userHint,
	})
	if err != nil {
		return "", err
	}
	return domain.UserID(res.ResolvedUserID), nil
}

// Score asks the scoring service to match user against job
func (r *Remote) Score(ctx context.Context, user domain.UserID, job domain.JobID) (float64, error) {
	jobID, err := json.Marshal(job)
	if err != nil {
		return 0, fmt.Errorf("encode job id: %w", err)
	}

	res, err := r.api.SubmitApplication(ctx, jobboard.ApplicationRequest{
		UserID: string(user),
		JobID:  jobID,
	})
	if err != nil {
		return 0, err
	}
	return res.Score, nil
}

// GetUser fetches a stored profile
func (r *Remote) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	u, err := r.api.GetUser(ctx, string(id))
	if err != nil {
		if errors.Is(err, jobboard.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &domain.User{ID: domain.UserID(u.ID), Skills: u.Skills}, nil
}

// ListApplications returns the user's application history
func (r *Remote) ListApplications(ctx context.Context, user domain.UserID) ([]domain.ApplicationRecord, error) {
	apps, err := r.api.ListApplications(ctx, string(user))
	if err != nil {
		return nil, err
	}

	out := make([]domain.ApplicationRecord, 0, len(apps))
	for _, a := range apps {
		var jobID domain.JobID
		if len(a.JobID) > 0 {
			if err := json.Unmarshal(a.JobID, &jobID); err != nil {
				return nil, fmt.Errorf("decode job id of application %s: %w", a.ID, err)
			}
		}
		out = append(out, domain.ApplicationRecord{
			ID:         a.ID,
			JobID:      jobID,
			UserID:     domain.UserID(a.UserID),
			Score:      a.Score,
			JobTitle:   a.JobTitle,
			JobCompany: a.JobCompany,
		})
	}
	return out, nil
}
