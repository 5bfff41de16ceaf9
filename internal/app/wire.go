//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/jobboard/internal/board"
	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/domain/application"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/export"
	"github.com/honeycarbs/jobboard/internal/selection"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// InitializeApp creates the App with all components wired up
func InitializeApp(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, func(), error) {
	wire.Build(
		// Infrastructure
		provideAPIClient,
		provideRegistry,
		provideRecorder,
		provideGraph,
		provideJobRepository,
		provideSheetsWriter,

		// Remote services
		application.NewRemote,
		wire.Bind(new(application.Intake), new(*application.Remote)),
		wire.Bind(new(application.Scorer), new(*application.Remote)),
		wire.Bind(new(board.UserSource), new(*application.Remote)),

		// Domain
		provideJobProvider,
		job.NewCatalogWithDeps,
		application.NewSubmitter,
		wire.Bind(new(board.Submitter), new(*application.Submitter)),
		selection.New,
		board.New,
		export.NewExporter,

		wire.Struct(new(App), "*"),
	)

	return nil, nil, nil
}
