package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobboard/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the job listing",
	Long: `Fetches the listing once and prints the jobs whose title, company or
description contains --query.

Examples:
  jobboard list
  jobboard list --query "go developer"`,
	RunE: runList,
}

var listQuery string

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "case-insensitive search text")
}

func runList(cmd *cobra.Command, args []string) error {
	a, cleanup, err := bootstrap(cmd, true)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := a.Catalog.Load(cmd.Context()); err != nil {
		return errors.Wrap(err, "could not load jobs")
	}

	jobs := a.Catalog.Filter(listQuery)
	if len(jobs) == 0 {
		pterm.Info.Println("No jobs match your search.")
		return nil
	}

	table, err := ui.JobTable(jobs)
	if err != nil {
		return errors.Wrap(err, "render job table")
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d jobs\n", len(jobs), len(a.Catalog.Jobs()))
	return nil
}

func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(cmd.Context()), d)
}
