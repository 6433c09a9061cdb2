package workers

import (
	"buzzboard/aggregate"
	"buzzboard/contract"
	"buzzboard/domain"
	errs "buzzboard/errors"
	"context"
	"fmt"
	"log/slog"
)

// boardCounters is the slice of the monitor the dispatcher needs.
type boardCounters interface {
	IncrProcessed()
	IncrClassificationFailures()
	IncrOutOfOrderTimestamps()
}

// DispatcherWorker is the single writer of the board. It pulls one
// message at a time from the source, classifies it, and updates the
// three aggregates synchronously before pulling the next. Messages are
// never aggregated in parallel, which is what keeps the volume window
// ordering intact.
type DispatcherWorker struct {
	log        *slog.Logger
	source     contract.MessageSource
	classifier contract.Classifier
	board      *aggregate.Board
	monitor    boardCounters
}

func NewDispatcherWorker(log *slog.Logger, source contract.MessageSource,
	classifier contract.Classifier, board *aggregate.Board,
	monitor boardCounters) *DispatcherWorker {
	return &DispatcherWorker{
		log:        log,
		source:     source,
		classifier: classifier,
		board:      board,
		monitor:    monitor,
	}
}

// Run consumes the source until it closes or ctx is cancelled. The
// in-flight message is always aggregated in full; cancellation is only
// observed between messages.
func (w *DispatcherWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Info("Dispatcher stopping")
			return nil
		case message, ok := <-w.source.Messages():
			if !ok {
				if err := w.source.Err(); err != nil {
					return fmt.Errorf("%w: %w", errs.ErrTransportClosed, err)
				}
				w.log.Info("Message source drained")
				return nil
			}
			w.handle(message)
		}
	}
}

func (w *DispatcherWorker) handle(message domain.Message) {
	category, err := w.classifier.Classify(message.Text)
	if err != nil {
		// Policy: a message the classifier cannot score still counts,
		// as neutral, so volume and keyword totals stay consistent.
		w.log.Warn("Classification failed, defaulting to neutral",
			"message_id", message.ID, "received_at", message.ReceivedAt, "error", err)
		w.monitor.IncrClassificationFailures()
		category = domain.Neutral
	}

	if err := w.board.Sentiment.Record(category); err != nil {
		// Unreachable with a well-behaved classifier.
		w.log.Error("Sentiment rejected", "category", category, "error", err)
	}

	if err := w.board.Volume.Record(message.ReceivedAt); err != nil {
		// The message stays counted in the other two aggregates; the
		// volume series refuses to rewrite closed windows.
		w.log.Warn("Out-of-order timestamp rejected",
			"message_id", message.ID, "received_at", message.ReceivedAt, "error", err)
		w.monitor.IncrOutOfOrderTimestamps()
	}

	w.board.Keywords.Record(message.Text)
	w.monitor.IncrProcessed()
}
