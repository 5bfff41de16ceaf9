package export

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/domain"
)

type op struct {
	kind string
	rng  string
	rows [][]any
}

type fakeWriter struct {
	ops      []op
	clearErr error
}

func (w *fakeWriter) Append(_ context.Context, _ string, rng string, rows [][]any) error {
	w.ops = append(w.ops, op{"append", rng, rows})
	return nil
}

func (w *fakeWriter) Update(_ context.Context, _ string, rng string, rows [][]any) error {
	w.ops = append(w.ops, op{"update", rng, rows})
	return nil
}

func (w *fakeWriter) Clear(_ context.Context, _ string, rng string) error {
	w.ops = append(w.ops, op{"clear", rng, nil})
	return w.clearErr
}

var jobs = []domain.Job{
	{ID: domain.NumericJobID(1), Title: "Backend Engineer", Company: "Acme", Description: "Go services", Requirements: "Go"},
	{ID: domain.NewJobID("j-2"), Title: "Designer", Company: "Beta"},
}

func TestExportReplacesTab(t *testing.T) {
	w := &fakeWriter{}
	res, err := NewExporter(w, nil).Export(context.Background(), Target{SpreadsheetID: "sheet"}, jobs)
	require.NoError(t, err)

	assert.Equal(t, 2, res.WrittenRows)
	assert.Equal(t, "Jobs", res.Tab)
	require.Len(t, w.ops, 2)
	assert.Equal(t, op{"clear", "Jobs!A1:Z", nil}, w.ops[0])
	assert.Equal(t, "update", w.ops[1].kind)
	assert.Equal(t, Header, w.ops[1].rows[0])
	assert.Equal(t, []any{"1", "Backend Engineer", "Acme", "Go services", "Go"}, w.ops[1].rows[1])
	assert.Equal(t, []any{"j-2", "Designer", "Beta", "", ""}, w.ops[1].rows[2])
}

func TestExportAppend(t *testing.T) {
	w := &fakeWriter{}
	res, err := NewExporter(w, nil).Export(context.Background(), Target{SpreadsheetID: "sheet", Tab: "Mine", Append: true}, jobs)
	require.NoError(t, err)

	assert.Equal(t, 2, res.WrittenRows)
	require.Len(t, w.ops, 1)
	assert.Equal(t, "append", w.ops[0].kind)
	assert.Equal(t, "Mine!A1", w.ops[0].rng)
	assert.Len(t, w.ops[0].rows, 2)
}

func TestExportAppendNothing(t *testing.T) {
	w := &fakeWriter{}
	res, err := NewExporter(w, nil).Export(context.Background(), Target{SpreadsheetID: "sheet", Append: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, "no rows to export", res.Message)
	assert.Empty(t, w.ops)
}

func TestExportErrors(t *testing.T) {
	_, err := NewExporter(nil, nil).Export(context.Background(), Target{SpreadsheetID: "sheet"}, jobs)
	assert.Error(t, err)

	_, err = NewExporter(&fakeWriter{}, nil).Export(context.Background(), Target{}, jobs)
	assert.Error(t, err)

	w := &fakeWriter{clearErr: errors.New("403")}
	_, err = NewExporter(w, nil).Export(context.Background(), Target{SpreadsheetID: "sheet"}, jobs)
	assert.Error(t, err)
	assert.Len(t, w.ops, 1, "nothing is written after a failed clear")
}
