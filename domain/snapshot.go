package domain

import "time"

// SentimentCounts is an immutable copy of the sentiment tally.
type SentimentCounts struct {
	Counts map[Sentiment]uint64 `json:"counts"`
	Total  uint64               `json:"total"`
}

// VolumeBucket is one fixed-width arrival window. Closed buckets are
// immutable; only the latest bucket of a series may still grow.
type VolumeBucket struct {
	WindowStart time.Time `json:"window_start"`
	Count       uint64    `json:"count"`
}

// KeywordCounts maps each tracked (lowercased) keyword to the number
// of occurrences seen across all messages.
type KeywordCounts map[string]uint64

// BoardSnapshot is a point-in-time copy of all three aggregates,
// safe to read and render without holding any lock.
type BoardSnapshot struct {
	Sentiment SentimentCounts `json:"sentiment"`
	Volume    []VolumeBucket  `json:"volume"`
	Keywords  KeywordCounts   `json:"keywords"`
	TakenAt   time.Time       `json:"taken_at"`
}
