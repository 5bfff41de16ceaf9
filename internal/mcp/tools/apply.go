package tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobboard/internal/board"
	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// Applicant submits applications for the current user. Each call opens the
// job and claims the submission slot in one step, since MCP sessions share
// one board.
type Applicant interface {
	ApplyExistingTo(ctx context.Context, id domain.JobID) (*board.Attempt, error)
	ApplyUploadTo(ctx context.Context, id domain.JobID, file *domain.ResumeFile) (*board.Attempt, error)
}

// JobApplyParams defines the arguments for the job_apply tool
type JobApplyParams struct {
	JobID        string `json:"job_id" jsonschema:"Job identifier from job_search"`
	UseExisting  bool   `json:"use_existing,omitempty" jsonschema:"Score the stored resume profile instead of uploading"`
	ResumePath   string `json:"resume_path,omitempty" jsonschema:"Path to a PDF resume readable by the server"`
	ResumeBase64 string `json:"resume_base64,omitempty" jsonschema:"Base64-encoded PDF resume"`
	ResumeName   string `json:"resume_name,omitempty" jsonschema:"File name for resume_base64, e.g. cv.pdf"`
}

// JobApplyResult is the structured response of job_apply
type JobApplyResult struct {
	AttemptID string  `json:"attempt_id"`
	JobID     string  `json:"job_id"`
	UserID    string  `json:"user_id"`
	Score     float64 `json:"score" jsonschema:"Match score between 0 and 1"`
	Percent   string  `json:"percent" jsonschema:"Score as shown to the candidate, e.g. 82.0%"`
}

type jobApplyTool struct {
	applicant Applicant
	logger    *logging.Logger
}

// WithJobApply registers the job_apply tool
func WithJobApply(applicant Applicant) Option {
	return func(reg *registry) {
		handler := jobApplyTool{applicant: applicant, logger: reg.add("job_apply")}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_apply",
			Description: "Apply to a job with the stored resume profile or a new PDF resume and return the match score",
		}, handler.handle)
	}
}

func (t jobApplyTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params *JobApplyParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || params.JobID == "" {
		return nil, nil, fmt.Errorf("job_id is required")
	}

	id := domain.NewJobID(params.JobID)

	var (
		attempt *board.Attempt
		err     error
	)
	if params.UseExisting {
		attempt, err = t.applicant.ApplyExistingTo(ctx, id)
	} else {
		var file *domain.ResumeFile
		file, err = readResume(params)
		if err == nil {
			attempt, err = t.applicant.ApplyUploadTo(ctx, id, file)
		}
	}
	if err != nil {
		t.logger.Warn("job_apply rejected", "job_id", params.JobID, "err", err)
		return nil, nil, withHint(err)
	}

	res, err := attempt.Wait(ctx)
	if err != nil {
		t.logger.Warn("job_apply failed", "job_id", params.JobID, "attempt_id", attempt.ID, "err", err)
		return nil, nil, withHint(err)
	}
	if res.JobID.String() != id.String() {
		return nil, nil, fmt.Errorf("application was scored for job %s, not %s", res.JobID, params.JobID)
	}
	if attempt.Stale() {
		return nil, nil, fmt.Errorf("application for job %s was superseded by another selection", params.JobID)
	}

	result := JobApplyResult{
		AttemptID: attempt.ID,
		JobID:     res.JobID.String(),
		UserID:    string(res.UserID),
		Score:     res.Score,
		Percent:   res.Percent(),
	}
	t.logger.Info("job_apply completed", "job_id", result.JobID, "user_id", result.UserID, "score", result.Score)

	return textResult("Application submitted! Match score: " + result.Percent), result, nil
}

func readResume(params *JobApplyParams) (*domain.ResumeFile, error) {
	switch {
	case params.ResumePath != "":
		data, err := os.ReadFile(params.ResumePath)
		if err != nil {
			return nil, fmt.Errorf("read resume: %w", err)
		}
		return &domain.ResumeFile{Name: filepath.Base(params.ResumePath), Data: data}, nil
	case params.ResumeBase64 != "":
		data, err := base64.StdEncoding.DecodeString(params.ResumeBase64)
		if err != nil {
			return nil, &domain.ValidationError{Field: "resume", Reason: "resume_base64 is not valid base64"}
		}
		name := params.ResumeName
		if name == "" {
			name = "resume.pdf"
		}
		return &domain.ResumeFile{Name: name, Data: data}, nil
	default:
		return nil, domain.ErrNoFile
	}
}

func withHint(err error) error {
	if hint := domain.Hint(err); hint != "" {
		return fmt.Errorf("%w (%s)", err, hint)
	}
	return err
}
