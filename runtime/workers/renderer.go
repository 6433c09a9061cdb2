package workers

import (
	"buzzboard/aggregate"
	"buzzboard/contract"
	"context"
	"log/slog"
	"time"
)

type renderCounters interface {
	IncrRenderFailures()
}

// RenderWorker redraws the three charts on a fixed cadence, decoupled
// from the message arrival rate. Each tick takes a cheap snapshot of
// the board and hands it to the renderer; the slow drawing happens
// with no aggregate lock held, so it can never stall the dispatcher.
type RenderWorker struct {
	log      *slog.Logger
	board    *aggregate.Board
	renderer contract.Renderer
	cadence  time.Duration
	monitor  renderCounters
}

const DefaultCadence = 2 * time.Second

func NewRenderWorker(log *slog.Logger, board *aggregate.Board,
	renderer contract.Renderer, cadence time.Duration,
	monitor renderCounters) *RenderWorker {
	if cadence <= 0 {
		cadence = DefaultCadence
	}
	return &RenderWorker{
		log:      log,
		board:    board,
		renderer: renderer,
		cadence:  cadence,
		monitor:  monitor,
	}
}

// Run ticks until ctx is cancelled, then draws one last frame so the
// final counts stay on screen after shutdown.
func (w *RenderWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cadence)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.draw()
			w.log.Info("Renderer stopping")
			return nil
		case <-ticker.C:
			w.draw()
		}
	}
}

// draw snapshots the board and redraws. A failing sink is logged and
// retried on the next tick; it never terminates the loop.
func (w *RenderWorker) draw() {
	snapshot := w.board.Snapshot()
	if err := w.renderer.Draw(snapshot); err != nil {
		w.log.Warn("Redraw failed, retrying next tick", "error", err)
		w.monitor.IncrRenderFailures()
	}
}
