package e2e

import (
	"buzzboard/aggregate"
	"buzzboard/classify"
	"buzzboard/domain"
	"buzzboard/observability"
	"buzzboard/render"
	"buzzboard/runtime/workers"
	"buzzboard/transport"
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

// syncBuffer makes bytes.Buffer safe for the render loop while the
// test goroutine reads it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type PipelineSuite struct {
	suite.Suite
	log *slog.Logger
}

func (s *PipelineSuite) SetupSuite() {
	s.log = logs.GetLoggerFromLevel(slog.LevelWarn)
}

// TestFullBoard replays a scripted stream through the real dispatcher,
// aggregates, classifier and console renderer, then checks the drawn
// board and the final aggregate state.
func (s *PipelineSuite) TestFullBoard() {
	req := s.Require()

	board, err := aggregate.NewBoard([]string{"kafka", "python"}, time.Minute, 60)
	req.NoError(err)
	monitor := observability.NewMonitor(s.log)

	start := time.Date(2026, 8, 26, 9, 0, 5, 0, time.UTC)
	source := transport.NewReplaySource(
		domain.Message{Text: "I love Kafka", ReceivedAt: start},
		domain.Message{Text: "meh", ReceivedAt: start.Add(35 * time.Second)},
		domain.Message{Text: "I hate Python", ReceivedAt: start.Add(125 * time.Second)},
	)

	out := &syncBuffer{}
	console := render.NewConsole(out, monitor)

	ctx, cancel := context.WithCancel(context.Background())
	sup := workers.NewSupervisor(s.log)
	sup.Add(
		source,
		workers.NewDispatcherWorker(s.log, source, classify.NewLexicon(), board, monitor),
		workers.NewRenderWorker(s.log, board, console, 20*time.Millisecond, monitor),
	)

	done := make(chan error, 1)
	go func() { done <- sup.Run(ctx) }()

	req.Eventually(func() bool {
		return monitor.Latest().Processed == 3
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	req.NoError(<-done)

	snap := board.Snapshot()
	req.Equal(uint64(3), snap.Sentiment.Total)
	req.Equal(uint64(1), snap.Sentiment.Counts[domain.Positive])
	req.Equal(uint64(1), snap.Sentiment.Counts[domain.Neutral])
	req.Equal(uint64(1), snap.Sentiment.Counts[domain.Negative])
	req.Len(snap.Volume, 3)
	req.Equal(uint64(1), snap.Keywords["kafka"])
	req.Equal(uint64(1), snap.Keywords["python"])

	// The shutdown frame is drawn after the last message, so the final
	// counts are on the board.
	frame := out.String()
	req.Contains(frame, "Sentiment")
	req.Contains(frame, "Messages per minute")
	req.Contains(frame, "kafka")
	req.Contains(frame, "09:00")
	req.Contains(frame, "09:02")
}

// TestTransportFailureExitsNonZero checks that a permanent transport
// failure tears the whole group down and surfaces the error.
func (s *PipelineSuite) TestTransportFailureExitsNonZero() {
	req := s.Require()

	board, err := aggregate.NewBoard([]string{"kafka"}, time.Minute, 60)
	req.NoError(err)
	monitor := observability.NewMonitor(s.log)

	source := transport.NewReplaySource().
		WithFailure(errors.New("broker unreachable"))

	out := &syncBuffer{}
	sup := workers.NewSupervisor(s.log)
	sup.Add(
		source,
		workers.NewDispatcherWorker(s.log, source, classify.NewLexicon(), board, monitor),
		workers.NewRenderWorker(s.log, board, render.NewConsole(out, monitor), 20*time.Millisecond, monitor),
	)

	req.Error(sup.Run(context.Background()))
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}
