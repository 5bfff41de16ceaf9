package domain

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Stage names the step of a submission that failed
type Stage string

const (
	StageUpload  Stage = "upload"
	StageScoring Stage = "scoring"
)

// FetchError reports a failed job listing retrieval
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "fetch jobs: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// SubmissionError reports a failed network stage of an application
type SubmissionError struct {
	Stage Stage
	JobID JobID
	Err   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s failed for job %s: %v", e.Stage, e.JobID, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// ValidationError is raised before any network call is made
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid submission: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var (
	ErrNoFile             = &ValidationError{Field: "resume", Reason: "no file selected"}
	ErrNoJob              = &ValidationError{Field: "job", Reason: "no job selected"}
	ErrNoProfile          = &ValidationError{Field: "profile", Reason: "no stored resume profile for current user"}
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrUserNotFound       = errors.New("user not found")
)

// NewUploadError wraps a resume-intake failure with advice to re-upload
func NewUploadError(job JobID, err error) error {
	return errors.WithHint(&SubmissionError{Stage: StageUpload, JobID: job, Err: err},
		"check the resume file and upload it again")
}

// NewScoringError wraps a scoring failure with advice to simply retry
func NewScoringError(job JobID, err error) error {
	return errors.WithHint(&SubmissionError{Stage: StageScoring, JobID: job, Err: err},
		"your resume was received; retry the application")
}

// IsUploadError reports whether err failed at the resume-intake stage
func IsUploadError(err error) bool { return stageOf(err) == StageUpload }

// IsScoringError reports whether err failed at the scoring stage
func IsScoringError(err error) bool { return stageOf(err) == StageScoring }

// IsValidationError reports whether err was rejected before any network call
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsFetchError reports whether err came from loading the job listing
func IsFetchError(err error) bool {
	var f *FetchError
	return errors.As(err, &f)
}

func stageOf(err error) Stage {
	var s *SubmissionError
	if errors.As(err, &s) {
		return s.Stage
	}
	return ""
}

// Hint returns the user-facing advice attached to err, if any
func Hint(err error) string {
	return errors.FlattenHints(err)
}

// SubmissionCause returns the underlying failure of a SubmissionError
func SubmissionCause(err error) error {
	var s *SubmissionError
	if errors.As(err, &s) {
		return s.Err
	}
	return nil
}
