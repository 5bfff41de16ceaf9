package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/board"
	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/application"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/selection"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")

type jobList []domain.Job

func (l jobList) Name() string { return "test" }
func (l jobList) ListJobs(context.Context) ([]domain.Job, error) { return l, nil }

type backend struct {
	mu    sync.Mutex
	calls []string
}

func (b *backend) UploadResume(_ context.Context, f domain.ResumeFile, hint application.UserHint) (domain.UserID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, "upload:"+f.Name+":"+hint.String())
	return "new-7", nil
}

func (b *backend) Score(_ context.Context, user domain.UserID, j domain.JobID) (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, "score:"+string(user)+":"+j.String())
	return 0.5, nil
}

// syncBuffer guards a bytes.Buffer written from submission goroutines
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func newSession(t *testing.T) (*Session, *board.Board, *backend, *syncBuffer) {
	t.Helper()

	catalog, err := job.NewCatalog(job.WithProvider(jobList{
		{ID: domain.NumericJobID(1), Title: "Backend Engineer", Company: "Acme", Description: "Go services"},
		{ID: domain.NumericJobID(5), Title: "Go Developer", Company: "Gopher Inc"},
	}))
	require.NoError(t, err)

	b := &backend{}
	sub, err := application.NewSubmitter(b, b, nil, nil)
	require.NoError(t, err)
	brd, err := board.New(catalog, selection.New(), sub, nil, nil)
	require.NoError(t, err)

	out := &syncBuffer{}
	s := NewSession(brd, NewRenderer(NewRoot(20), out), out, 5)
	s.readFile = func(path string) ([]byte, error) {
		if path == "missing.pdf" {
			return nil, errors.New("no such file")
		}
		return samplePDF, nil
	}
	return s, brd, b, out
}

func TestSessionRunUploadFlow(t *testing.T) {
	s, brd, b, out := newSession(t)

	input := strings.Join([]string{
		"search gopher",
		"open 5",
		"upload cv.pdf",
		"quit",
	}, "\n")
	require.NoError(t, s.Run(context.Background(), strings.NewReader(input)))
	brd.Wait()

	assert.Equal(t, []string{"upload:cv.pdf:new", "score:new-7:5"}, b.calls)
	text := plain(out.String())
	assert.Contains(t, text, "Go Developer")
	assert.False(t, brd.Selection().Inspecting())
}

func TestSessionExecErrors(t *testing.T) {
	s, brd, b, out := newSession(t)
	ctx := context.Background()
	require.NoError(t, brd.Load(ctx))

	assert.False(t, s.Exec(ctx, "frobnicate"))
	assert.Contains(t, plain(out.String()), `unknown command "frobnicate"`)

	s.Exec(ctx, "open 1")
	s.Exec(ctx, "upload")
	assert.Contains(t, plain(out.String()), "no file selected")

	s.Exec(ctx, "upload missing.pdf")
	assert.Contains(t, plain(out.String()), "read resume: no such file")

	s.Exec(ctx, "existing")
	assert.Contains(t, plain(out.String()), "no stored resume profile")

	s.Exec(ctx, "click nowhere")
	assert.Contains(t, plain(out.String()), `unknown click target "nowhere"`)

	assert.Empty(t, b.calls)
	assert.True(t, s.Exec(ctx, "quit"))
}

func TestSessionClickRouting(t *testing.T) {
	s, brd, _, _ := newSession(t)
	ctx := context.Background()
	require.NoError(t, brd.Load(ctx))

	s.Exec(ctx, "open 1")
	s.Exec(ctx, "click content")
	assert.True(t, brd.Selection().Inspecting())

	s.Exec(ctx, "click backdrop")
	assert.False(t, brd.Selection().Inspecting())
}

func TestSessionExistingProfile(t *testing.T) {
	s, brd, b, out := newSession(t)
	ctx := context.Background()
	require.NoError(t, brd.Load(ctx))
	brd.SetUser(&domain.User{ID: "u1", Skills: json.RawMessage(`["go"]`)})
	detach := s.renderer.Attach(brd)
	defer detach()

	s.Exec(ctx, "open 5")
	s.Exec(ctx, "click existing")
	brd.Wait()

	assert.Equal(t, []string{"score:u1:5"}, b.calls)
	assert.Contains(t, plain(out.String()), "Application submitted! Match score: 50.0%")
	assert.False(t, brd.Selection().Inspecting())
}
