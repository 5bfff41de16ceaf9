package ui

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/board"
	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/overlay"
	"github.com/honeycarbs/jobboard/internal/selection"
)

func init() {
	pterm.DisableStyling()
}

func plain(s string) string {
	return pterm.RemoveColorFromString(s)
}

func TestLayerClipAndScroll(t *testing.T) {
	root := NewRoot(2)
	require.NoError(t, root.Update(LayerList, func(l *Layer) {
		l.Set([]string{"a", "b", "c", "d"})
	}))

	var buf bytes.Buffer
	require.NoError(t, root.Render(&buf))
	assert.Equal(t, "a\nb\n  … 2 more (scroll with 'more'/'back')\n", buf.String())

	require.NoError(t, root.Update(LayerList, func(l *Layer) { l.Scroll(10) }))
	buf.Reset()
	require.NoError(t, root.Render(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "c\nd\n"))

	require.NoError(t, root.Update(LayerList, func(l *Layer) { l.Scroll(-10) }))
	buf.Reset()
	require.NoError(t, root.Render(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "a\nb\n"))
}

func TestUnknownLayer(t *testing.T) {
	assert.Error(t, NewRoot(5).Update("sidebar", func(*Layer) {}))
}

func TestPortalIsNotClippedByList(t *testing.T) {
	root := NewRoot(1)
	require.NoError(t, root.Update(LayerList, func(l *Layer) { l.Set([]string{"row1", "row2", "row3"}) }))
	require.NoError(t, root.Update(LayerPortal, func(l *Layer) { l.Set([]string{"o1", "o2", "o3"}) }))

	var buf bytes.Buffer
	require.NoError(t, root.Render(&buf))
	out := buf.String()
	assert.NotContains(t, out, "row2")
	assert.Contains(t, out, "o1\no2\no3\n")
}

func sampleView(t *testing.T, user *domain.User, busy bool) board.View {
	t.Helper()
	jobs := []domain.Job{
		{ID: domain.NumericJobID(1), Title: "Backend Engineer", Company: "Acme", Description: "Go services"},
		{ID: domain.NumericJobID(5), Title: "Go Developer", Company: "Gopher Inc", Description: "APIs", Requirements: "Go, SQL"},
	}
	sel := selection.New().Open(jobs[1])
	return board.View{
		LoadState: job.Loaded,
		Jobs:      jobs,
		Total:     len(jobs),
		Overlay:   overlay.Derive(sel, user, busy),
		User:      user,
	}
}

func TestRenderListAndOverlay(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(NewRoot(20), &buf)

	user := &domain.User{ID: "u1", Skills: json.RawMessage(`["go"]`)}
	r.Render(sampleView(t, user, false))
	out := plain(buf.String())

	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "Gopher Inc")
	assert.Contains(t, out, "Requirements: Go, SQL")
	assert.Contains(t, out, "[existing] Use existing resume")
	assert.Contains(t, out, "[upload <file.pdf>] Upload new resume (application/pdf)")
	assert.Contains(t, out, "signed in as u1")
}

func TestRenderOmitsExistingWithoutProfile(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(NewRoot(20), &buf)

	r.Render(sampleView(t, nil, false))
	out := plain(buf.String())
	assert.NotContains(t, out, "Use existing resume")
	assert.Contains(t, out, "Upload new resume")
}

func TestRenderBusy(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(NewRoot(20), &buf)

	r.Render(sampleView(t, nil, true))
	out := plain(buf.String())
	assert.Contains(t, out, "unavailable")
	assert.Contains(t, out, "Submitting application...")
}

func TestRenderLoadStates(t *testing.T) {
	tests := []struct {
		name string
		view board.View
		want string
	}{
		{"loading", board.View{LoadState: job.Loading}, "Loading jobs..."},
		{"failed", board.View{LoadState: job.LoadFailed, LoadErr: &domain.FetchError{Err: errors.New("boom")}}, "Could not load jobs: fetch jobs: boom"},
		{"empty", board.View{LoadState: job.Loaded, Query: "cobol"}, "No jobs match your search."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewRenderer(NewRoot(20), &buf).Render(tt.view)
			assert.Contains(t, plain(buf.String()), tt.want)
		})
	}
}

func TestNotify(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(NewRoot(20), &buf)

	r.Notify(board.Notice{Kind: board.NoticeFailure, Message: "Application scoring failed: 503", Hint: "retry the application"})
	out := plain(buf.String())
	assert.Contains(t, out, "Application scoring failed: 503")
	assert.Contains(t, out, "retry the application")

	buf.Reset()
	r.Notify(board.Notice{Kind: board.NoticeSuccess, Message: fmt.Sprintf("Application submitted! Match score: %s", "82.0%")})
	assert.Contains(t, plain(buf.String()), "Match score: 82.0%")
}

func TestNoticeClearedWhenSelectionOrQueryChanges(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(NewRoot(20), &buf)
	user := &domain.User{ID: "u1", Skills: json.RawMessage(`["go"]`)}

	open := sampleView(t, user, false)
	closed := open
	closed.Overlay = overlay.View{}

	r.Render(open)
	r.Render(closed)
	r.Notify(board.Notice{Kind: board.NoticeSuccess, Message: "Application submitted! Match score: 82.0%"})

	buf.Reset()
	r.Render(closed)
	assert.Contains(t, plain(buf.String()), "Match score: 82.0%", "an unchanged frame keeps the notice")

	searched := closed
	searched.Query = "design"
	buf.Reset()
	r.Render(searched)
	assert.NotContains(t, plain(buf.String()), "Match score")

	r.Notify(board.Notice{Kind: board.NoticeFailure, Message: "Application scoring failed: 503"})
	buf.Reset()
	r.Render(open)
	assert.NotContains(t, plain(buf.String()), "scoring failed")
}
