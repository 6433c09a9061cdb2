package workers

import (
	"buzzboard/domain"
	"buzzboard/observability"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type recordingRenderer struct {
	mu     sync.Mutex
	frames []domain.BoardSnapshot
	fail   error
}

func (r *recordingRenderer) Draw(snapshot domain.BoardSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.frames = append(r.frames, snapshot)
	return nil
}

func (r *recordingRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func TestRenderWorker_DrawsOnCadenceAndOnShutdown(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	board := testBoard(t)
	renderer := &recordingRenderer{}
	worker := NewRenderWorker(log, board, renderer, 10*time.Millisecond,
		observability.NewMonitor(log))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	time.Sleep(60 * time.Millisecond)
	ticked := renderer.count()
	req.GreaterOrEqual(ticked, 2)

	cancel()
	req.NoError(<-done)
	// One final frame after shutdown began.
	req.Greater(renderer.count(), 0)
	req.GreaterOrEqual(renderer.count(), ticked)
}

func TestRenderWorker_SinkFailureIsRetriedNotFatal(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	board := testBoard(t)
	monitor := observability.NewMonitor(log)
	renderer := &recordingRenderer{fail: fmt.Errorf("sink unavailable")}
	worker := NewRenderWorker(log, board, renderer, 10*time.Millisecond, monitor)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	req.NoError(<-done)
	req.GreaterOrEqual(monitor.Latest().RenderFailures, uint64(2))
}

func TestRenderWorker_SnapshotCheapCopyNotAliased(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	board := testBoard(t)
	req.NoError(board.Sentiment.Record(domain.Positive))

	renderer := &recordingRenderer{}
	worker := NewRenderWorker(log, board, renderer, 10*time.Millisecond,
		observability.NewMonitor(log))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()
	time.Sleep(25 * time.Millisecond)
	cancel()
	req.NoError(<-done)

	req.NoError(board.Sentiment.Record(domain.Positive))
	renderer.mu.Lock()
	defer renderer.mu.Unlock()
	for _, frame := range renderer.frames {
		req.Equal(uint64(1), frame.Sentiment.Counts[domain.Positive])
	}
}
