package workers

import (
	errs "buzzboard/errors"
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type panickyWorker struct {
	attempts atomic.Int32
	panics   int32
}

func (w *panickyWorker) Run(context.Context) error {
	if w.attempts.Add(1) <= w.panics {
		panic("boom")
	}
	return nil
}

type failingWorker struct {
	err error
}

func (w failingWorker) Run(context.Context) error {
	return w.err
}

type blockingWorker struct {
	stopped atomic.Bool
}

func (w *blockingWorker) Run(ctx context.Context) error {
	<-ctx.Done()
	w.stopped.Store(true)
	return nil
}

func TestSupervisor_RestartsPanickedWorker(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	worker := &panickyWorker{panics: 2}

	sup := NewSupervisor(log)
	sup.Add(worker)
	req.NoError(sup.Run(context.Background()))
	req.Equal(int32(3), worker.attempts.Load())
}

func TestSupervisor_FatalErrorCancelsTheGroup(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	boom := fmt.Errorf("%w: broker unreachable", errs.ErrTransportClosed)
	blocking := &blockingWorker{}

	sup := NewSupervisor(log)
	sup.Add(failingWorker{err: boom}, blocking)

	err := sup.Run(context.Background())
	req.ErrorIs(err, errs.ErrTransportClosed)
	req.True(blocking.stopped.Load())
}

func TestSupervisor_ParentCancelStopsEverything(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	blocking := &blockingWorker{}

	sup := NewSupervisor(log)
	sup.Add(blocking)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sup.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		t.Fatal("supervisor did not stop on cancel")
	}
	req.True(blocking.stopped.Load())
}
