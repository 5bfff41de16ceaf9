package board

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/application"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/overlay"
	"github.com/honeycarbs/jobboard/internal/selection"
)

var pdf = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")

type staticProvider struct {
	jobs []domain.Job
}

func (p staticProvider) Name() string { return "static" }

func (p staticProvider) ListJobs(context.Context) ([]domain.Job, error) { return p.jobs, nil }

// backend records the ordered calls made by the submitter. When gate is set
// each call blocks until a value is received from it.
type backend struct {
	mu    sync.Mutex
	calls []string

	gate      chan struct{}
	resolved  domain.UserID
	uploadErr error
	score     float64
	scoreErr  error
}

func (b *backend) wait() {
	if b.gate != nil {
		<-b.gate
	}
}

func (b *backend) record(c string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, c)
}

func (b *backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *backend) UploadResume(_ context.Context, _ domain.ResumeFile, hint application.UserHint) (domain.UserID, error) {
	b.record("upload:" + hint.String())
	b.wait()
	if b.uploadErr != nil {
		return "", b.uploadErr
	}
	return b.resolved, nil
}

func (b *backend) Score(_ context.Context, user domain.UserID, j domain.JobID) (float64, error) {
	b.record("score:" + string(user) + ":" + j.String())
	b.wait()
	if b.scoreErr != nil {
		return 0, b.scoreErr
	}
	return b.score, nil
}

type users map[domain.UserID]*domain.User

func (u users) GetUser(_ context.Context, id domain.UserID) (*domain.User, error) {
	if usr, ok := u[id]; ok {
		return usr, nil
	}
	return nil, domain.ErrUserNotFound
}

type noticeLog struct {
	mu  sync.Mutex
	all []Notice
}

func (l *noticeLog) add(n Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.all = append(l.all, n)
}

func (l *noticeLog) list() []Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Notice(nil), l.all...)
}

var skilled = &domain.User{ID: "u1", Skills: json.RawMessage(`["go","sql"]`)}

func newBoard(t *testing.T, b *backend, us UserSource) (*Board, *noticeLog) {
	t.Helper()

	catalog, err := job.NewCatalog(job.WithProvider(staticProvider{jobs: []domain.Job{
		{ID: domain.NumericJobID(1), Title: "Backend Engineer", Company: "Acme", Description: "Go services"},
		{ID: domain.NumericJobID(2), Title: "Designer", Company: "Beta", Description: "Figma"},
		{ID: domain.NumericJobID(5), Title: "Go Developer", Company: "Gopher Inc", Description: "APIs"},
	}}))
	require.NoError(t, err)

	sub, err := application.NewSubmitter(b, b, nil, nil)
	require.NoError(t, err)

	board, err := New(catalog, selection.New(), sub, us, nil)
	require.NoError(t, err)
	require.NoError(t, board.Load(context.Background()))

	notices := &noticeLog{}
	board.SubscribeNotices(notices.add)
	return board, notices
}

func settled(t *testing.T, a *Attempt) {
	t.Helper()
	select {
	case <-a.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("attempt did not settle")
	}
}

func TestVisibleFollowsQuery(t *testing.T) {
	board, _ := newBoard(t, &backend{}, nil)

	assert.Len(t, board.Visible(), 3)
	board.SetQuery("go")
	got := board.Visible()
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID.String())
	assert.Equal(t, "5", got[1].ID.String())
}

func TestOpenUnknownJob(t *testing.T) {
	board, _ := newBoard(t, &backend{}, nil)
	_, err := board.Open(domain.NewJobID("nope"))
	assert.Error(t, err)
	assert.False(t, board.Selection().Inspecting())
}

func TestExistingProfileSuccessClosesOverlay(t *testing.T) {
	b := &backend{score: 0.82}
	board, notices := newBoard(t, b, nil)
	board.SetUser(skilled)

	_, err := board.Open(domain.NumericJobID(5))
	require.NoError(t, err)

	a, err := board.ApplyExisting(context.Background())
	require.NoError(t, err)
	settled(t, a)

	assert.False(t, a.Stale())
	assert.Equal(t, []string{"score:u1:5"}, b.Calls())
	assert.False(t, board.Selection().Inspecting())

	got := notices.list()
	require.Len(t, got, 1)
	assert.Equal(t, NoticeSuccess, got[0].Kind)
	assert.Equal(t, "Application submitted! Match score: 82.0%", got[0].Message)
}

func TestExistingProfileRequiresSkills(t *testing.T) {
	b := &backend{score: 0.82}
	board, notices := newBoard(t, b, nil)
	board.SetUser(&domain.User{ID: "u1"})

	_, err := board.Open(domain.NumericJobID(5))
	require.NoError(t, err)

	_, err = board.ApplyExisting(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoProfile)
	assert.Empty(t, b.Calls())
	assert.Empty(t, notices.list())
	assert.Nil(t, board.View().Overlay.UseExisting)
}

func TestUploadNewUser(t *testing.T) {
	b := &backend{resolved: "new-7", score: 0.5}
	board, notices := newBoard(t, b, nil)

	_, err := board.Open(domain.NumericJobID(5))
	require.NoError(t, err)

	a, err := board.ApplyUpload(context.Background(), &domain.ResumeFile{Name: "cv.pdf", Data: pdf})
	require.NoError(t, err)
	settled(t, a)

	assert.Equal(t, []string{"upload:new", "score:new-7:5"}, b.Calls())
	require.Len(t, notices.list(), 1)
	assert.Equal(t, "Application submitted! Match score: 50.0%", notices.list()[0].Message)
	assert.False(t, board.Selection().Inspecting())

	require.NotNil(t, board.User())
	assert.Equal(t, domain.UserID("new-7"), board.User().ID)
}

func TestUploadExistingUserPassesHint(t *testing.T) {
	b := &backend{resolved: "u1", score: 0.7}
	board, _ := newBoard(t, b, users{"u1": skilled})
	require.NoError(t, board.LoadUser(context.Background(), "u1"))

	_, err := board.Open(domain.NumericJobID(1))
	require.NoError(t, err)

	a, err := board.ApplyUpload(context.Background(), &domain.ResumeFile{Name: "cv.pdf", Data: pdf})
	require.NoError(t, err)
	settled(t, a)

	assert.Equal(t, []string{"upload:u1", "score:u1:1"}, b.Calls())
}

func TestUploadRejectsInvalidFileWithoutNetwork(t *testing.T) {
	b := &backend{resolved: "u1", score: 0.7}
	board, _ := newBoard(t, b, nil)

	_, err := board.Open(domain.NumericJobID(1))
	require.NoError(t, err)

	_, err = board.ApplyUpload(context.Background(), &domain.ResumeFile{Name: "cv.txt", Data: []byte("hello")})
	assert.True(t, domain.IsValidationError(err))

	_, err = board.ApplyUpload(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNoFile)

	assert.Empty(t, b.Calls())
	assert.True(t, board.Selection().Inspecting())
}

func TestApplyWithoutOpenJob(t *testing.T) {
	board, _ := newBoard(t, &backend{}, nil)
	board.SetUser(skilled)

	_, err := board.ApplyExisting(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoJob)
}

func TestScoringFailureKeepsOverlayOpen(t *testing.T) {
	b := &backend{resolved: "u1", scoreErr: errors.New("scoring service unavailable")}
	board, notices := newBoard(t, b, nil)

	_, err := board.Open(domain.NumericJobID(5))
	require.NoError(t, err)

	a, err := board.ApplyUpload(context.Background(), &domain.ResumeFile{Name: "cv.pdf", Data: pdf})
	require.NoError(t, err)
	settled(t, a)

	_, aerr := a.Result()
	assert.True(t, domain.IsScoringError(aerr))
	assert.Equal(t, []string{"upload:new", "score:u1:5"}, b.Calls(), "upload happens exactly once")

	snap := board.Selection()
	assert.True(t, snap.Inspecting())
	assert.False(t, snap.Busy)

	got := notices.list()
	require.Len(t, got, 1)
	assert.Equal(t, NoticeFailure, got[0].Kind)
	assert.Contains(t, got[0].Message, "scoring service unavailable")
	assert.Contains(t, got[0].Hint, "retry")
}

func TestUploadFailureHintsReupload(t *testing.T) {
	b := &backend{uploadErr: errors.New("unreadable pdf")}
	board, notices := newBoard(t, b, nil)

	_, err := board.Open(domain.NumericJobID(5))
	require.NoError(t, err)

	a, err := board.ApplyUpload(context.Background(), &domain.ResumeFile{Name: "cv.pdf", Data: pdf})
	require.NoError(t, err)
	settled(t, a)

	assert.Equal(t, []string{"upload:new"}, b.Calls())
	require.Len(t, notices.list(), 1)
	assert.Contains(t, notices.list()[0].Message, "Resume upload failed")
	assert.Contains(t, notices.list()[0].Hint, "upload it again")
	assert.True(t, board.Selection().Inspecting())
}

func TestSecondSubmissionWhileInFlight(t *testing.T) {
	b := &backend{score: 0.6, gate: make(chan struct{})}
	board, _ := newBoard(t, b, nil)
	board.SetUser(skilled)

	_, err := board.Open(domain.NumericJobID(5))
	require.NoError(t, err)

	a, err := board.ApplyExisting(context.Background())
	require.NoError(t, err)

	assert.True(t, board.View().Overlay.Busy)
	assert.False(t, board.View().Overlay.UseExisting.Enabled)

	_, err = board.ApplyExisting(context.Background())
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)

	b.gate <- struct{}{}
	settled(t, a)
	assert.Len(t, b.Calls(), 1)
}

func TestCloseDuringSubmissionDiscardsOutcome(t *testing.T) {
	b := &backend{score: 0.9, gate: make(chan struct{})}
	board, notices := newBoard(t, b, nil)
	board.SetUser(skilled)

	_, err := board.Open(domain.NumericJobID(5))
	require.NoError(t, err)

	a, err := board.ApplyExisting(context.Background())
	require.NoError(t, err)

	_, err = board.Click(context.Background(), overlay.TargetBackdrop, nil)
	require.NoError(t, err)
	assert.False(t, board.Selection().Inspecting())

	b.gate <- struct{}{}
	settled(t, a)

	assert.True(t, a.Stale())
	assert.Empty(t, notices.list())
	assert.False(t, board.Selection().Inspecting(), "stale result must not reopen the overlay")
	assert.False(t, board.Selection().Busy)
	assert.Same(t, skilled, board.User())
}

func TestStaleUploadKeepsCurrentUser(t *testing.T) {
	b := &backend{resolved: "new-7", score: 0.9, gate: make(chan struct{})}
	board, notices := newBoard(t, b, users{"new-7": {ID: "new-7", Skills: json.RawMessage(`["go"]`)}})

	_, err := board.Open(domain.NumericJobID(5))
	require.NoError(t, err)

	a, err := board.ApplyUpload(context.Background(), &domain.ResumeFile{Name: "cv.pdf", Data: pdf})
	require.NoError(t, err)

	_, err = board.Click(context.Background(), overlay.TargetBackdrop, nil)
	require.NoError(t, err)

	b.gate <- struct{}{} // upload
	b.gate <- struct{}{} // score
	settled(t, a)

	assert.True(t, a.Stale())
	assert.Empty(t, notices.list())
	assert.Nil(t, board.User(), "a discarded upload must not change the current user")
}

func TestApplyToOpensAndClaimsTogether(t *testing.T) {
	b := &backend{score: 0.6, gate: make(chan struct{})}
	board, notices := newBoard(t, b, nil)
	board.SetUser(skilled)

	_, err := board.Open(domain.NumericJobID(2))
	require.NoError(t, err)

	a, err := board.ApplyExistingTo(context.Background(), domain.NewJobID("5"))
	require.NoError(t, err)
	assert.Equal(t, "5", a.JobID.String())

	// while the slot is held another caller can neither apply nor move the job
	_, err = board.ApplyExistingTo(context.Background(), domain.NewJobID("1"))
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)
	_, err = board.ApplyUploadTo(context.Background(), domain.NewJobID("1"), &domain.ResumeFile{Name: "cv.pdf", Data: pdf})
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)
	assert.Equal(t, "5", board.Selection().Job.ID.String())

	b.gate <- struct{}{}
	settled(t, a)

	assert.False(t, a.Stale())
	assert.Equal(t, []string{"score:u1:5"}, b.Calls())
	res, err := a.Result()
	require.NoError(t, err)
	assert.Equal(t, "5", res.JobID.String())
	require.Len(t, notices.list(), 1)

	_, err = board.ApplyExistingTo(context.Background(), domain.NewJobID("404"))
	assert.Error(t, err)
}

func TestOpeningAnotherJobDiscardsOutcome(t *testing.T) {
	b := &backend{score: 0.9, gate: make(chan struct{})}
	board, notices := newBoard(t, b, nil)
	board.SetUser(skilled)

	_, err := board.Open(domain.NumericJobID(5))
	require.NoError(t, err)

	a, err := board.ApplyExisting(context.Background())
	require.NoError(t, err)

	_, err = board.Open(domain.NumericJobID(2))
	require.NoError(t, err)

	b.gate <- struct{}{}
	settled(t, a)

	assert.True(t, a.Stale())
	assert.Empty(t, notices.list())
	snap := board.Selection()
	require.True(t, snap.Inspecting())
	assert.Equal(t, "2", snap.Job.ID.String())
}

func TestClickRouting(t *testing.T) {
	board, _ := newBoard(t, &backend{}, nil)

	_, err := board.Open(domain.NumericJobID(1))
	require.NoError(t, err)

	a, err := board.Click(context.Background(), overlay.TargetContent, nil)
	require.NoError(t, err)
	assert.Nil(t, a)
	assert.True(t, board.Selection().Inspecting(), "content clicks are contained")

	_, err = board.Click(context.Background(), overlay.TargetCloseButton, nil)
	require.NoError(t, err)
	assert.False(t, board.Selection().Inspecting())
}

func TestViewsPublishedOnChange(t *testing.T) {
	board, _ := newBoard(t, &backend{}, nil)

	var mu sync.Mutex
	var views []View
	board.SubscribeViews(func(v View) {
		mu.Lock()
		defer mu.Unlock()
		views = append(views, v)
	})

	board.SetQuery("design")
	_, err := board.Open(domain.NumericJobID(2))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	last := views[len(views)-1]
	assert.Equal(t, "design", last.Query)
	assert.Len(t, last.Jobs, 1)
	assert.True(t, last.Overlay.Visible)
	assert.Equal(t, job.Loaded, last.LoadState)
}

func TestLastPublishedViewIsCurrent(t *testing.T) {
	board, _ := newBoard(t, &backend{}, nil)

	var mu sync.Mutex
	var last View
	board.SubscribeViews(func(v View) {
		mu.Lock()
		defer mu.Unlock()
		last = v
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = board.Open(domain.NumericJobID(5))
		}()
		go func() {
			defer wg.Done()
			board.Close()
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, board.View().Overlay.Visible, last.Overlay.Visible)
}

func TestLoadUserNotFound(t *testing.T) {
	board, _ := newBoard(t, &backend{}, users{})
	require.NoError(t, board.LoadUser(context.Background(), "ghost"))
	assert.Nil(t, board.User())
}

func TestShutdownWaitsForAttempts(t *testing.T) {
	b := &backend{score: 0.9, gate: make(chan struct{})}
	board, _ := newBoard(t, b, nil)
	board.SetUser(skilled)

	_, err := board.Open(domain.NumericJobID(5))
	require.NoError(t, err)
	_, err = board.ApplyExisting(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, board.Shutdown(ctx), context.DeadlineExceeded)

	b.gate <- struct{}{}
	assert.NoError(t, board.Shutdown(context.Background()))
}
