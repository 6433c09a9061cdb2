package contract

import (
	"buzzboard/domain"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context) error
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// MessageSource yields messages from the external transport, one at a
// time, in non-decreasing ReceivedAt order. The channel is closed when
// the source stops; Err reports the cause (nil on graceful shutdown).
type MessageSource interface {
	Messages() <-chan domain.Message
	Err() error
}

// Classifier maps raw text to a sentiment category. The model is a
// black box; failures are handled by the dispatcher, not here.
type Classifier interface {
	Classify(text string) (domain.Sentiment, error)
}

// Renderer consumes an immutable snapshot and draws all three charts
// synchronously. It must never mutate the snapshot.
type Renderer interface {
	Draw(snapshot domain.BoardSnapshot) error
}
