package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobboard/internal/domain/job/providers/listing"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Manage the Neo4j job graph",
}

var graphSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy the HTTP job listing into Neo4j",
	Long: `Fetches the listing from the job board API and upserts every job as a
Job node, so JOB_SOURCE=neo4j and graph_tool see the same data.`,
	RunE: runGraphSync,
}

func init() {
	graphCmd.AddCommand(graphSyncCmd)
}

func runGraphSync(cmd *cobra.Command, args []string) error {
	a, cleanup, err := bootstrap(cmd, true)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := a.Config.RequireNeo4j(); err != nil {
		return err
	}
	if a.Jobs == nil {
		return errors.New("neo4j is not connected")
	}

	src, err := listing.NewProvider(a.Client)
	if err != nil {
		return err
	}
	jobs, err := src.ListJobs(cmd.Context())
	if err != nil {
		return errors.Wrap(err, "fetch listing")
	}
	if err := a.Jobs.UpsertJobs(cmd.Context(), jobs); err != nil {
		return errors.Wrap(err, "upsert jobs")
	}

	pterm.Success.Printfln("Synced %d jobs to Neo4j", len(jobs))
	return nil
}
