package shutdown

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/pkg/logging"
)

type recordingStoppable struct {
	called bool
	err    error
}

func (r *recordingStoppable) Shutdown(ctx context.Context) error {
	r.called = true
	return r.err
}

func TestGracefulStopsAllTargetsOnParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	boom := errors.New("boom")
	a := &recordingStoppable{err: boom}
	b := &recordingStoppable{}

	err := Graceful(ctx, []os.Signal{syscall.SIGUSR1}, time.Second, logging.NewNop(), a, b)
	require.ErrorIs(t, err, boom)
	assert.True(t, a.called)
	assert.True(t, b.called)
}
