package transport

import (
	"buzzboard/domain"
	"context"
	"time"
)

// ReplaySource feeds a fixed script of messages, optionally paced by a
// delay between sends. Used for deterministic tests and local demos
// without a broker.
type ReplaySource struct {
	script   []domain.Message
	pace     time.Duration
	messages chan domain.Message
	failWith error
}

func NewReplaySource(script ...domain.Message) *ReplaySource {
	return &ReplaySource{
		script:   script,
		messages: make(chan domain.Message),
	}
}

// WithPace inserts a fixed delay before each message.
func (r *ReplaySource) WithPace(pace time.Duration) *ReplaySource {
	r.pace = pace
	return r
}

// WithFailure makes the source report err after the script is drained,
// simulating a permanent transport failure.
func (r *ReplaySource) WithFailure(err error) *ReplaySource {
	r.failWith = err
	return r
}

func (r *ReplaySource) Messages() <-chan domain.Message { return r.messages }

func (r *ReplaySource) Err() error { return r.failWith }

func (r *ReplaySource) Run(ctx context.Context) error {
	defer close(r.messages)

	for _, message := range r.script {
		if r.pace > 0 {
			select {
			case <-time.After(r.pace):
			case <-ctx.Done():
				return nil
			}
		}
		select {
		case r.messages <- message:
		case <-ctx.Done():
			return nil
		}
	}
	return r.failWith
}
