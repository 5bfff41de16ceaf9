// Package export writes job listings to Google Sheets.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

const defaultTab = "Jobs"

// Header is the first row of a replaced tab
var Header = []any{"ID", "Title", "Company", "Description", "Requirements"}

// Writer is the subset of the Sheets client the exporter needs
type Writer interface {
	Append(ctx context.Context, spreadsheetID, rng string, rows [][]any) error
	Update(ctx context.Context, spreadsheetID, rng string, rows [][]any) error
	Clear(ctx context.Context, spreadsheetID, rng string) error
}

// Target names where the rows go
type Target struct {
	SpreadsheetID string
	Tab           string
	// Append keeps existing rows and writes no header.
	Append bool
}

// Result summarizes an export
type Result struct {
	SpreadsheetID string
	Tab           string
	WrittenRows   int
	CompletedAt   time.Time
	Message       string
}

// Exporter writes jobs to a spreadsheet
type Exporter struct {
	writer Writer
	logger *logging.Logger
	clock  func() time.Time
}

// NewExporter wires an Exporter. A nil writer yields an exporter that
// reports Sheets as unconfigured.
func NewExporter(writer Writer, logger *logging.Logger) *Exporter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Exporter{
		writer: writer,
		logger: logger.With("component", "sheets_export"),
		clock:  time.Now,
	}
}

// Export writes jobs to target, replacing the tab unless target.Append is set
func (e *Exporter) Export(ctx context.Context, target Target, jobs []domain.Job) (Result, error) {
	if target.Tab == "" {
		target.Tab = defaultTab
	}
	result := Result{
		SpreadsheetID: target.SpreadsheetID,
		Tab:           target.Tab,
	}

	if e.writer == nil {
		result.Message = "Google Sheets client not configured (GOOGLE_SHEETS_CREDENTIALS_PATH not set)"
		return result, fmt.Errorf("sheets: client not configured")
	}
	if target.SpreadsheetID == "" {
		return result, fmt.Errorf("sheets: spreadsheet id is required")
	}

	values := toValues(jobs)

	if target.Append {
		if len(values) == 0 {
			result.Message = "no rows to export"
			return result, nil
		}
		if err := e.writer.Append(ctx, target.SpreadsheetID, target.Tab+"!A1", values); err != nil {
			return result, err
		}
	} else {
		if err := e.writer.Clear(ctx, target.SpreadsheetID, target.Tab+"!A1:Z"); err != nil {
			return result, err
		}
		rows := append([][]any{Header}, values...)
		if err := e.writer.Update(ctx, target.SpreadsheetID, target.Tab+"!A1", rows); err != nil {
			return result, err
		}
	}

	result.WrittenRows = len(values)
	result.CompletedAt = e.clock().UTC()
	result.Message = fmt.Sprintf("successfully exported %d row(s)", result.WrittenRows)

	e.logger.Info("jobs exported", "spreadsheet_id", target.SpreadsheetID, "tab", target.Tab, "rows", result.WrittenRows)
	return result, nil
}

func toValues(jobs []domain.Job) [][]any {
	values := make([][]any, len(jobs))
	for i, j := range jobs {
		values[i] = []any{j.ID.String(), j.Title, j.Company, j.Description, j.Requirements}
	}
	return values
}
