// Package app assembles the job board from configuration.
package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/honeycarbs/jobboard/internal/board"
	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/domain/application"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/export"
	"github.com/honeycarbs/jobboard/internal/mcp/tools"
	storage "github.com/honeycarbs/jobboard/internal/storage/neo4j"
	"github.com/honeycarbs/jobboard/pkg/jobboard"
	"github.com/honeycarbs/jobboard/pkg/logging"
	n4j "github.com/honeycarbs/jobboard/pkg/neo4j"
)

// App holds every wired component
type App struct {
	Config   config.Config
	Logger   *logging.Logger
	Registry *prometheus.Registry
	Client   *jobboard.Client
	Catalog  *job.Catalog
	Board    *board.Board
	Remote   *application.Remote
	Exporter *export.Exporter
	// Graph and Jobs are nil when Neo4j is not configured.
	Graph *n4j.Client
	Jobs  *storage.JobRepository
}

// MCPOptions lists the tools the MCP server exposes for this app
func (a *App) MCPOptions() []tools.Option {
	opts := []tools.Option{
		tools.WithJobSearch(a.Catalog),
		tools.WithJobApply(a.Board),
		tools.WithApplicationHistory(a.Remote, a.Board),
		tools.WithSheetsExport(a.Catalog, a.Exporter),
	}
	if a.Graph != nil {
		opts = append(opts, tools.WithGraphTool(a.Graph))
	}
	return opts
}

// Shutdown waits for pending submissions
func (a *App) Shutdown(ctx context.Context) error {
	return a.Board.Shutdown(ctx)
}
