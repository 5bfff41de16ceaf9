package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/domain/job/providers/graph"
	"github.com/honeycarbs/jobboard/internal/domain/job/providers/listing"
	"github.com/honeycarbs/jobboard/internal/export"
	"github.com/honeycarbs/jobboard/internal/metrics"
	storage "github.com/honeycarbs/jobboard/internal/storage/neo4j"
	"github.com/honeycarbs/jobboard/pkg/jobboard"
	"github.com/honeycarbs/jobboard/pkg/logging"
	n4j "github.com/honeycarbs/jobboard/pkg/neo4j"
	"github.com/honeycarbs/jobboard/pkg/sheets"
)

// provideAPIClient builds the job board HTTP client from config
func provideAPIClient(cfg config.Config) (*jobboard.Client, error) {
	return jobboard.NewClient(jobboard.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
}

// provideRegistry creates the metrics registry with the Go runtime collectors
func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// provideRecorder registers the submission metrics on reg
func provideRecorder(reg *prometheus.Registry) metrics.Recorder {
	return metrics.NewPrometheusRecorder(reg)
}

// provideGraph connects to Neo4j when it is the job source or when a URI is
// configured. Only the neo4j source treats a failed connection as fatal.
func provideGraph(cfg config.Config, logger *logging.Logger) (*n4j.Client, func(), error) {
	noop := func() {}
	if cfg.JobSource != config.SourceNeo4j && cfg.Neo4j.URI == "" {
		return nil, noop, nil
	}

	client, err := n4j.NewClient(n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
		Database: cfg.Neo4j.Database,
	})
	if err != nil {
		if cfg.JobSource == config.SourceNeo4j {
			return nil, noop, err
		}
		logger.Warn("Neo4j unavailable, graph features disabled", "uri", cfg.Neo4j.URI, "err", err)
		return nil, noop, nil
	}

	logger.Info("Neo4j client initialized", "uri", cfg.Neo4j.URI)
	cleanup := func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("failed to close Neo4j client", "err", err)
		}
	}
	return client, cleanup, nil
}

// provideJobRepository wraps the graph client, nil without one
func provideJobRepository(client *n4j.Client) *storage.JobRepository {
	if client == nil {
		return nil
	}
	return storage.NewJobRepository(client)
}

// provideJobProvider selects the listing source named by JOB_SOURCE
func provideJobProvider(cfg config.Config, client *jobboard.Client, repo *storage.JobRepository) (job.Provider, error) {
	switch cfg.JobSource {
	case config.SourceNeo4j:
		if repo == nil {
			return nil, fmt.Errorf("job source %q requires Neo4j", cfg.JobSource)
		}
		p, err := graph.NewProvider(repo)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		p, err := listing.NewProvider(client)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// provideSheetsWriter creates the Sheets client when credentials are set.
// Export reports itself unconfigured otherwise.
func provideSheetsWriter(ctx context.Context, cfg config.Config, logger *logging.Logger) export.Writer {
	if cfg.SheetsCredsPath == "" {
		return nil
	}
	client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.SheetsCredsPath})
	if err != nil {
		logger.Warn("Google Sheets client unavailable", "err", err)
		return nil
	}
	return client
}
