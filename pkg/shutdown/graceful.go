package shutdown

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/honeycarbs/jobboard/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// Graceful blocks until one of signals arrives or parent is done, then stops
// every target in order within timeout. It returns the first shutdown error.
func Graceful(parent context.Context, signals []os.Signal, timeout time.Duration, log *logging.Logger, targets ...Stoppable) error {
	sigCtx, stop := signal.NotifyContext(parent, signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received", "targets", len(targets))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var firstErr error
	for _, s := range targets {
		if err := s.Shutdown(ctx); err != nil {
			log.Warn("graceful shutdown completed with error", "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr == nil {
		log.Info("graceful shutdown completed successfully")
	}
	return firstErr
}
