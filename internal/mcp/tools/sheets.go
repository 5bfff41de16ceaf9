package tools

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/export"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// Exporter writes jobs to a spreadsheet
type Exporter interface {
	Export(ctx context.Context, target export.Target, jobs []domain.Job) (export.Result, error)
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	Query string `json:"query,omitempty" jsonschema:"Only export jobs matching this search"`
	Sheet struct {
		SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
		Tab           string `json:"tab,omitempty" jsonschema:"Tab name, Jobs by default"`
	} `json:"sheet" jsonschema:"Destination sheet information"`
	Append bool `json:"append,omitempty" jsonschema:"Append rows instead of replacing the tab"`
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheet_id" jsonschema:"Target spreadsheet ID"`
	Tab           string    `json:"tab,omitempty" jsonschema:"Target tab name"`
	WrittenRows   int       `json:"written_rows" jsonschema:"How many rows were written"`
	CompletedAt   time.Time `json:"completed_at" jsonschema:"Timestamp when export finished"`
	Message       string    `json:"message,omitempty" jsonschema:"Optional status message"`
}

type sheetsExportTool struct {
	catalog  JobCatalog
	exporter Exporter
	logger   *logging.Logger
}

// WithSheetsExport registers the sheets_export tool
func WithSheetsExport(catalog JobCatalog, exporter Exporter) Option {
	return func(reg *registry) {
		handler := sheetsExportTool{catalog: catalog, exporter: exporter, logger: reg.add("sheets_export")}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Export the (optionally filtered) job listing to Google Sheets",
		}, handler.handle)
	}
}

func (t sheetsExportTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params *SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || params.Sheet.SpreadsheetID == "" {
		return nil, nil, fmt.Errorf("sheet.spreadsheet_id is required")
	}

	if err := t.catalog.Load(ctx); err != nil {
		return nil, nil, fmt.Errorf("job listing unavailable: %w", err)
	}
	jobs := t.catalog.Filter(params.Query)

	res, err := t.exporter.Export(ctx, export.Target{
		SpreadsheetID: params.Sheet.SpreadsheetID,
		Tab:           params.Sheet.Tab,
		Append:        params.Append,
	}, jobs)
	if err != nil {
		t.logger.Error("sheets_export failed", "spreadsheet_id", params.Sheet.SpreadsheetID, "err", err)
		return nil, nil, err
	}

	result := SheetsExportResult{
		SpreadsheetID: res.SpreadsheetID,
		Tab:           res.Tab,
		WrittenRows:   res.WrittenRows,
		CompletedAt:   res.CompletedAt,
		Message:       res.Message,
	}
	msg := fmt.Sprintf("[sheets_export] %s to %s/%s", result.Message, result.SpreadsheetID, result.Tab)
	return textResult(msg), result, nil
}
