package board

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/application"
	"github.com/honeycarbs/jobboard/internal/overlay"
	"github.com/honeycarbs/jobboard/internal/selection"
)

// Attempt is one dispatched submission
type Attempt struct {
	ID         string
	JobID      domain.JobID
	Path       string
	Generation uint64

	adopt  bool
	done   chan struct{}
	result domain.SubmissionResult
	err    error
	stale  bool
}

// Done is closed once the outcome has been applied or discarded
func (a *Attempt) Done() <-chan struct{} { return a.done }

// Wait blocks until the attempt settles or ctx ends
func (a *Attempt) Wait(ctx context.Context) (domain.SubmissionResult, error) {
	select {
	case <-a.done:
		return a.result, a.err
	case <-ctx.Done():
		return domain.SubmissionResult{}, ctx.Err()
	}
}

// Result returns the outcome. Valid after Done.
func (a *Attempt) Result() (domain.SubmissionResult, error) {
	return a.result, a.err
}

// Stale reports whether the outcome arrived after the overlay moved on and
// was discarded. Valid after Done.
func (a *Attempt) Stale() bool { return a.stale }

// ApplyExisting submits the current user's stored profile for the open job
func (b *Board) ApplyExisting(ctx context.Context) (*Attempt, error) {
	return b.applyExisting(ctx, b.claimOpen)
}

// ApplyExistingTo opens the job with id and submits the stored profile for
// it. Opening and claiming the submission slot happen in one step, so a
// concurrent Open cannot redirect the application to another job.
func (b *Board) ApplyExistingTo(ctx context.Context, id domain.JobID) (*Attempt, error) {
	claim, err := b.claimJob(id)
	if err != nil {
		return nil, err
	}
	return b.applyExisting(ctx, claim)
}

// ApplyUpload uploads file and submits it for the open job. The file is
// validated before anything is sent.
func (b *Board) ApplyUpload(ctx context.Context, file *domain.ResumeFile) (*Attempt, error) {
	return b.applyUpload(ctx, b.claimOpen, file)
}

// ApplyUploadTo is ApplyUpload for the job with id, opened and claimed in one
// step like ApplyExistingTo.
func (b *Board) ApplyUploadTo(ctx context.Context, id domain.JobID, file *domain.ResumeFile) (*Attempt, error) {
	claim, err := b.claimJob(id)
	if err != nil {
		return nil, err
	}
	return b.applyUpload(ctx, claim, file)
}

func (b *Board) applyExisting(ctx context.Context, claim claimFunc) (*Attempt, error) {
	user := b.User()
	if !user.HasSkills() {
		return nil, domain.ErrNoProfile
	}
	return b.dispatch(ctx, claim, application.PathExisting, false, func(ctx context.Context, j domain.Job) (domain.SubmissionResult, error) {
		return b.submitter.SubmitWithExistingProfile(ctx, j, user)
	})
}

func (b *Board) applyUpload(ctx context.Context, claim claimFunc, file *domain.ResumeFile) (*Attempt, error) {
	if err := overlay.ValidateResume(file); err != nil {
		return nil, err
	}
	hint := application.HintFor(b.User())
	return b.dispatch(ctx, claim, application.PathUpload, hint.IsNew(), func(ctx context.Context, j domain.Job) (domain.SubmissionResult, error) {
		return b.submitter.SubmitWithUpload(ctx, j, file, hint)
	})
}

type (
	submitFunc func(ctx context.Context, j domain.Job) (domain.SubmissionResult, error)
	claimFunc  func() (selection.Snapshot, error)
)

// claimOpen takes the submission slot for whatever job is open
func (b *Board) claimOpen() (selection.Snapshot, error) {
	snap, ok := b.selection.Begin()
	if !ok {
		if snap.Busy {
			return snap, domain.ErrSubmissionInFlight
		}
		return snap, domain.ErrNoJob
	}
	return snap, nil
}

func (b *Board) claimJob(id domain.JobID) (claimFunc, error) {
	j, ok := b.catalog.Find(id)
	if !ok {
		return nil, fmt.Errorf("job %s not found", id)
	}
	return func() (selection.Snapshot, error) {
		snap, ok := b.selection.OpenAndBegin(j)
		if !ok {
			return snap, domain.ErrSubmissionInFlight
		}
		return snap, nil
	}, nil
}

// dispatch claims the slot and runs the submission in the background. adopt
// marks uploads made without a user, whose resolved user becomes current if
// the outcome is applied.
func (b *Board) dispatch(ctx context.Context, claim claimFunc, path string, adopt bool, run submitFunc) (*Attempt, error) {
	snap, err := claim()
	if err != nil {
		return nil, err
	}

	a := &Attempt{
		ID:         uuid.NewString(),
		JobID:      snap.Job.ID,
		Path:       path,
		Generation: snap.Generation,
		adopt:      adopt,
		done:       make(chan struct{}),
	}
	j := *snap.Job

	b.logger.Info("submission dispatched", "attempt_id", a.ID, "job_id", a.JobID.String(), "path", path)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer close(a.done)

		bg := context.WithoutCancel(ctx)
		res, err := run(bg, j)
		b.settle(bg, a, res, err)
	}()

	return a, nil
}

// settle applies an outcome only if the overlay still shows the selection it
// was dispatched from.
func (b *Board) settle(ctx context.Context, a *Attempt, res domain.SubmissionResult, err error) {
	a.result, a.err = res, err

	var fresh bool
	if err == nil {
		_, fresh = b.selection.CloseIf(a.Generation)
	} else {
		fresh = b.selection.Snapshot().Generation == a.Generation
	}
	b.selection.End()

	log := b.logger.With("attempt_id", a.ID, "job_id", a.JobID.String())
	if !fresh {
		a.stale = true
		log.Info("stale submission outcome discarded", "err", err)
		return
	}

	if err != nil {
		log.Warn("submission failed", "err", err)
		b.notices.Publish(failureNotice(a, err))
		return
	}
	log.Info("submission succeeded", "score", res.Score)
	if a.adopt {
		b.adoptUser(ctx, res.UserID)
	}
	b.notices.Publish(successNotice(a, res))
}

func (b *Board) adoptUser(ctx context.Context, id domain.UserID) {
	if id == "" {
		return
	}
	if b.users != nil {
		if err := b.LoadUser(ctx, id); err == nil && b.User() != nil {
			return
		}
	}
	b.SetUser(&domain.User{ID: id})
}
