package application

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/metrics"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// Submission paths, used as metric and log labels
const (
	PathUpload   = "upload"
	PathExisting = "existing"
)

// UserHint tells the intake service which user an uploaded resume belongs to.
// The zero value asks for a new user to be created.
type UserHint struct {
	id domain.UserID
}

// NewUser is the hint that creates a fresh user from the upload
var NewUser = UserHint{}

// ExistingUser attaches the upload to id
func ExistingUser(id domain.UserID) UserHint {
	return UserHint{id: id}
}

// HintFor picks ExistingUser for a known user and NewUser otherwise
func HintFor(u *domain.User) UserHint {
	if u == nil || u.ID == "" {
		return NewUser
	}
	return ExistingUser(u.ID)
}

// IsNew reports whether the hint asks for a new user
func (h UserHint) IsNew() bool { return h.id == "" }

// UserID returns the existing user id, empty for NewUser
func (h UserHint) UserID() domain.UserID { return h.id }

func (h UserHint) String() string {
	if h.IsNew() {
		return "new"
	}
	return string(h.id)
}

// Intake is the resume-intake service
type Intake interface {
	UploadResume(ctx context.Context, file domain.ResumeFile, hint UserHint) (domain.UserID, error)
}

// Scorer is the application scoring service
type Scorer interface {
	Score(ctx context.Context, user domain.UserID, job domain.JobID) (float64, error)
}

// Submitter performs the application submission protocol
type Submitter struct {
	intake   Intake
	scorer   Scorer
	recorder metrics.Recorder
	logger   *logging.Logger
	clock    func() time.Time
}

// NewSubmitter wires a Submitter. A nil recorder disables metrics.
func NewSubmitter(intake Intake, scorer Scorer, recorder metrics.Recorder, logger *logging.Logger) (*Submitter, error) {
	if intake == nil {
		return nil, fmt.Errorf("application.Submitter: intake is required")
	}
	if scorer == nil {
		return nil, fmt.Errorf("application.Submitter: scorer is required")
	}
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Submitter{
		intake:   intake,
		scorer:   scorer,
		recorder: recorder,
		logger:   logger.With("component", "submitter"),
		clock:    time.Now,
	}, nil
}

// SubmitWithUpload uploads file to the intake service and, only if that
// succeeds, scores the resolved user against job. An absent file is a no-op
// rejected with ErrNoFile. No step is retried.
func (s *Submitter) SubmitWithUpload(ctx context.Context, job domain.Job, file *domain.ResumeFile, hint UserHint) (domain.SubmissionResult, error) {
	if file.Empty() {
		return domain.SubmissionResult{}, domain.ErrNoFile
	}
	if job.ID.IsZero() {
		return domain.SubmissionResult{}, domain.ErrNoJob
	}

	start := s.clock()
	log := s.logger.With("path", PathUpload, "job_id", job.ID.String(), "user_hint", hint.String())

	userID, err := s.intake.UploadResume(ctx, *file, hint)
	if err == nil && userID == "" {
		err = fmt.Errorf("intake returned no user id")
	}
	if err != nil {
		log.Warn("resume upload failed", "err", err)
		s.observe(PathUpload, domain.StageUpload, start)
		return domain.SubmissionResult{}, domain.NewUploadError(job.ID, err)
	}
	log.Debug("resume uploaded", "user_id", userID)

	return s.score(ctx, log, PathUpload, start, userID, job)
}

// SubmitWithExistingProfile scores user's stored profile against job without
// uploading anything. It rejects users without a stored profile.
func (s *Submitter) SubmitWithExistingProfile(ctx context.Context, job domain.Job, user *domain.User) (domain.SubmissionResult, error) {
	if !user.HasSkills() {
		return domain.SubmissionResult{}, domain.ErrNoProfile
	}
	if job.ID.IsZero() {
		return domain.SubmissionResult{}, domain.ErrNoJob
	}

	start := s.clock()
	log := s.logger.With("path", PathExisting, "job_id", job.ID.String(), "user_id", user.ID)

	return s.score(ctx, log, PathExisting, start, user.ID, job)
}

func (s *Submitter) score(ctx context.Context, log *logging.Logger, path string, start time.Time, userID domain.UserID, job domain.Job) (domain.SubmissionResult, error) {
	score, err := s.scorer.Score(ctx, userID, job.ID)
	if err == nil && (score < 0 || score > 1) {
		err = fmt.Errorf("score %v outside [0,1]", score)
	}
	if err != nil {
		log.Warn("application scoring failed", "user_id", userID, "err", err)
		s.observe(path, domain.StageScoring, start)
		return domain.SubmissionResult{}, domain.NewScoringError(job.ID, err)
	}

	log.Info("application scored", "user_id", userID, "score", score)
	s.observe(path, "", start)

	return domain.SubmissionResult{
		JobID:  job.ID,
		UserID: userID,
		Score:  score,
	}, nil
}

func (s *Submitter) observe(path string, failed domain.Stage, start time.Time) {
	outcome := "success"
	if failed != "" {
		outcome = "failure"
	}
	s.recorder.ObserveSubmission(path, outcome, string(failed), s.clock().Sub(start))
}
