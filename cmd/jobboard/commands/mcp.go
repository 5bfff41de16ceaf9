package commands

import (
	"context"
	"os"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobboard/internal/mcp"
	"github.com/honeycarbs/jobboard/pkg/shutdown"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the job board as MCP tools over HTTP",
	Long: `Starts the MCP streamable HTTP server on HOST:PORT.

Routes:
  /mcp/stream   MCP tools (job_search, job_apply, application_history,
                sheets_export, graph_tool)
  /healthz      liveness
  /metrics      Prometheus metrics

graph_tool is only registered when Neo4j is configured.`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, cleanup, err := bootstrap(cmd, false)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := mcp.NewServer(a.Logger, a.Config, a.Registry, a.MCPOptions()...)

	a.Logger.Info("MCP server initialized and starting", "addr", srv.Addr(), "tools", srv.Tools())

	err = serve(cmd.Context(), srv.Run, func(ctx context.Context) error {
		return shutdown.Graceful(
			ctx,
			[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
			10*time.Second,
			a.Logger,
			srv, a,
		)
	})
	if err != nil {
		a.Logger.Error("MCP server exited with error", "err", err)
		return errors.Wrap(err, "mcp server")
	}
	a.Logger.Info("MCP server stopped")
	return nil
}

// serve runs run until it returns, then waits for stop to finish. stop is
// started up front and is cancelled when run ends on its own, so a server
// that fails to start still shuts its targets down.
func serve(ctx context.Context, run func() error, stop func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stopped := make(chan error, 1)
	go func() {
		stopped <- stop(ctx)
	}()

	runErr := run()
	cancel()
	stopErr := <-stopped

	if runErr != nil {
		return runErr
	}
	return stopErr
}
