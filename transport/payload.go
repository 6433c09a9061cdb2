// Package transport adapts the message broker to the board's inbound
// contract: a stream of Message values in non-decreasing time order.
// Broker protocols, topics, and consumer groups stop at this boundary;
// nothing downstream knows about them.
package transport

import (
	"buzzboard/domain"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// payload is the wire shape published by the feeders, e.g.
// {"message": "I love Python and Kafka!", "author": "Eve"}.
type payload struct {
	Message string `json:"message"`
	Author  string `json:"author"`
}

// decode validates the wire shape and stamps the message. A decode
// failure is fatal for that message only; the caller skips it and
// keeps pulling.
func decode(value []byte, receivedAt time.Time) (domain.Message, error) {
	var p payload
	if err := json.Unmarshal(value, &p); err != nil {
		return domain.Message{}, fmt.Errorf("decode payload: %w", err)
	}
	return domain.Message{
		ID:         uuid.New(),
		Author:     p.Author,
		Text:       p.Message,
		ReceivedAt: receivedAt,
	}, nil
}
