// Package domain contains core concepts of the analytics board.
// This file defines the Message shape at the transport boundary.
// Messages are ephemeral: they live for one dispatch cycle and are
// never stored after aggregation.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is one timestamped text payload pulled from the stream.
type Message struct {
	ID         uuid.UUID // unique identifier, assigned at ingestion
	Author     string
	Text       string
	ReceivedAt time.Time
}
