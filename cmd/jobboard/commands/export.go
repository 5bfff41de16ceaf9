package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobboard/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the job listing to Google Sheets",
	Long: `Writes the jobs matching --query to a Google Sheets tab. The tab is
replaced (header row included) unless --append is set.

Requires GOOGLE_SHEETS_CREDENTIALS_PATH.

Examples:
  jobboard export --sheet 1AbC... --tab Jobs
  jobboard export --sheet 1AbC... --query golang --append`,
	RunE: runExport,
}

var (
	exportSheet  string
	exportTab    string
	exportQuery  string
	exportAppend bool
)

func init() {
	exportCmd.Flags().StringVar(&exportSheet, "sheet", "", "spreadsheet id")
	exportCmd.Flags().StringVar(&exportTab, "tab", "Jobs", "sheet tab")
	exportCmd.Flags().StringVarP(&exportQuery, "query", "q", "", "only export jobs matching this text")
	exportCmd.Flags().BoolVar(&exportAppend, "append", false, "append rows instead of replacing the tab")
	_ = exportCmd.MarkFlagRequired("sheet")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, cleanup, err := bootstrap(cmd, true)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := a.Config.RequireSheets(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := a.Catalog.Load(ctx); err != nil {
		return errors.Wrap(err, "could not load jobs")
	}

	res, err := a.Exporter.Export(ctx, export.Target{
		SpreadsheetID: exportSheet,
		Tab:           exportTab,
		Append:        exportAppend,
	}, a.Catalog.Filter(exportQuery))
	if err != nil {
		return errors.Wrap(err, "export jobs")
	}

	pterm.Success.Printfln("%s to %s (%s)", res.Message, res.Tab, res.SpreadsheetID)
	return nil
}
