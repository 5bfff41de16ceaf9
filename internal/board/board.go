// Package board drives the job board: the filtered listing, the detail
// overlay and asynchronous application submissions.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/application"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/overlay"
	"github.com/honeycarbs/jobboard/internal/selection"
	"github.com/honeycarbs/jobboard/pkg/logging"
	"github.com/honeycarbs/jobboard/pkg/observe"
)

// Submitter is the application submission protocol
type Submitter interface {
	SubmitWithUpload(ctx context.Context, job domain.Job, file *domain.ResumeFile, hint application.UserHint) (domain.SubmissionResult, error)
	SubmitWithExistingProfile(ctx context.Context, job domain.Job, user *domain.User) (domain.SubmissionResult, error)
}

// UserSource looks up the current visitor's profile
type UserSource interface {
	GetUser(ctx context.Context, id domain.UserID) (*domain.User, error)
}

// View is everything the presentation layer needs for one frame
type View struct {
	Query     string
	LoadState job.LoadState
	LoadErr   error
	Jobs      []domain.Job
	Total     int
	Overlay   overlay.View
	User      *domain.User
}

// Board owns the listing, the selection and the current user
type Board struct {
	catalog   *job.Catalog
	selection *selection.State
	submitter Submitter
	users     UserSource
	logger    *logging.Logger

	mu    sync.RWMutex
	query string
	user  *domain.User

	notices *observe.Subject[Notice]
	views   *observe.Subject[View]
	unsub   []func()
	wg      sync.WaitGroup
}

// New wires a Board. users may be nil when no profile lookup is available.
func New(catalog *job.Catalog, sel *selection.State, submitter Submitter, users UserSource, logger *logging.Logger) (*Board, error) {
	if catalog == nil {
		return nil, fmt.Errorf("board: catalog is required")
	}
	if submitter == nil {
		return nil, fmt.Errorf("board: submitter is required")
	}
	if sel == nil {
		sel = selection.New()
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	b := &Board{
		catalog:   catalog,
		selection: sel,
		submitter: submitter,
		users:     users,
		logger:    logger.With("component", "board"),
		notices:   observe.New[Notice](),
		views:     observe.New[View](),
	}
	b.unsub = append(b.unsub,
		catalog.Subscribe(func(job.Snapshot) { b.refresh() }),
		sel.Subscribe(func(selection.Snapshot) { b.refresh() }),
	)
	return b, nil
}

// Load fetches the job listing
func (b *Board) Load(ctx context.Context) error {
	return b.catalog.Load(ctx)
}

// LoadUser fetches the current visitor. An unknown id leaves the board
// without a user rather than failing.
func (b *Board) LoadUser(ctx context.Context, id domain.UserID) error {
	if id == "" || b.users == nil {
		return nil
	}
	user, err := b.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			b.logger.Warn("current user not found", "user_id", id)
			b.SetUser(nil)
			return nil
		}
		return fmt.Errorf("load user %s: %w", id, err)
	}
	b.SetUser(user)
	return nil
}

// SetUser replaces the current visitor
func (b *Board) SetUser(u *domain.User) {
	b.mu.Lock()
	b.user = u
	b.mu.Unlock()
	b.refresh()
}

// User returns the current visitor, nil when anonymous
func (b *Board) User() *domain.User {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.user
}

// SetQuery changes the listing filter
func (b *Board) SetQuery(q string) {
	b.mu.Lock()
	b.query = q
	b.mu.Unlock()
	b.refresh()
}

// Query returns the current filter
func (b *Board) Query() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.query
}

// Visible returns the filtered listing
func (b *Board) Visible() []domain.Job {
	return b.catalog.Filter(b.Query())
}

// Open inspects the job with id
func (b *Board) Open(id domain.JobID) (selection.Snapshot, error) {
	j, ok := b.catalog.Find(id)
	if !ok {
		return b.selection.Snapshot(), fmt.Errorf("job %s not found", id)
	}
	return b.selection.Open(j), nil
}

// Close dismisses the overlay
func (b *Board) Close() selection.Snapshot {
	return b.selection.Close()
}

// Selection returns the current selection
func (b *Board) Selection() selection.Snapshot {
	return b.selection.Snapshot()
}

// View builds the current frame
func (b *Board) View() View {
	b.mu.RLock()
	query, user := b.query, b.user
	b.mu.RUnlock()

	snap := b.catalog.Snapshot()
	sel := b.selection.Snapshot()

	return View{
		Query:     query,
		LoadState: snap.State,
		LoadErr:   snap.Err,
		Jobs:      job.Filter(snap.Jobs, query),
		Total:     len(snap.Jobs),
		Overlay:   overlay.Derive(sel, user, sel.Busy),
		User:      user,
	}
}

// SubscribeViews registers fn for every frame change
func (b *Board) SubscribeViews(fn func(View)) func() {
	return b.views.Subscribe(fn)
}

// SubscribeNotices registers fn for success and failure notices
func (b *Board) SubscribeNotices(fn func(Notice)) func() {
	return b.notices.Subscribe(fn)
}

func (b *Board) refresh() {
	b.views.PublishFunc(b.View)
}

// Wait blocks until every dispatched attempt has settled
func (b *Board) Wait() {
	b.wg.Wait()
}

// Shutdown detaches the board from its catalog and selection after pending
// attempts settle.
func (b *Board) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	for _, fn := range b.unsub {
		fn()
	}
	b.unsub = nil
	return nil
}

// Click routes a click on the overlay. file is used only by the upload
// affordance. The returned attempt is nil unless a submission was dispatched.
func (b *Board) Click(ctx context.Context, target overlay.Target, file *domain.ResumeFile) (*Attempt, error) {
	switch overlay.Route(target) {
	case overlay.ActionClose:
		b.Close()
		return nil, nil
	case overlay.ActionApplyExisting:
		return b.ApplyExisting(ctx)
	case overlay.ActionUpload:
		return b.ApplyUpload(ctx, file)
	default:
		return nil, nil
	}
}
