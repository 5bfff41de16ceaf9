package commands

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobboard/internal/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive job board session",
	Long: `Opens an interactive session on stdin. Search the listing, open a job
and apply from the overlay. Type 'help' inside the session for commands.`,
	RunE: runBrowse,
}

var (
	browseViewport int
	browsePage     int
)

func init() {
	browseCmd.Flags().IntVar(&browseViewport, "rows", 20, "visible rows of the job list")
	browseCmd.Flags().IntVar(&browsePage, "page", 10, "rows moved by 'more' and 'back'")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	a, cleanup, err := bootstrap(cmd, true)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	session := ui.NewSession(a.Board, ui.NewRenderer(ui.NewRoot(browseViewport), out), out, browsePage)
	runErr := session.Run(cmd.Context(), os.Stdin)

	ctx, cancel := contextWithTimeout(cmd, 30*time.Second)
	defer cancel()
	if err := a.Shutdown(ctx); err != nil {
		a.Logger.Warn("pending submissions did not finish", "err", err)
	}

	return errors.Wrap(runErr, "browse session")
}
