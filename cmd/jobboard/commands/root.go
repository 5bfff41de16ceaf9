// Package commands holds the jobboard CLI.
package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobboard/internal/app"
	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// RootCmd is the jobboard entry point
var RootCmd = &cobra.Command{
	Use:   "jobboard",
	Short: "Browse job postings and apply with your resume",
	Long: `jobboard - job board client

Browse the job listing, open a posting and apply with either your stored
resume profile or a freshly uploaded PDF. Every application is scored
against the posting and the match score is reported back.

Examples:
  jobboard browse                          # interactive session
  jobboard list --query golang             # print matching jobs
  jobboard apply --job 5 --resume cv.pdf   # apply with a new resume
  jobboard apply --job 5 --existing        # apply with the stored profile
  jobboard export --sheet <id>             # write jobs to Google Sheets
  jobboard mcp                             # serve MCP tools over HTTP`,
	SilenceUsage: true,
}

var envFiles []string

func init() {
	RootCmd.PersistentFlags().StringSliceVar(&envFiles, "env", nil, "dotenv files to load (default .env)")

	RootCmd.AddCommand(browseCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(applyCmd)
	RootCmd.AddCommand(applicationsCmd)
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(mcpCmd)
	RootCmd.AddCommand(graphCmd)
}

// bootstrap loads configuration and wires the app. console selects the
// human-readable log encoder. The returned cleanup must always be called.
func bootstrap(cmd *cobra.Command, console bool) (*app.App, func(), error) {
	if err := config.LoadDotenv(envFiles...); err != nil {
		return nil, nil, errors.Wrap(err, "failed to load environment")
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load configuration")
	}

	logger := logging.New(cfg.LogLevel, console)

	a, cleanup, err := app.InitializeApp(cmd.Context(), cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, errors.Wrap(err, "failed to initialize app")
	}

	if cfg.UserID != "" {
		if err := a.Board.LoadUser(cmd.Context(), domain.UserID(cfg.UserID)); err != nil {
			logger.Warn("could not load current user", "user_id", cfg.UserID, "err", err)
		}
	}

	return a, func() {
		cleanup()
		_ = logger.Sync()
	}, nil
}
