// Package aggregate holds the in-memory running summaries derived from
// the message stream. Each aggregate is guarded by its own mutex and
// follows a single-writer discipline: only the dispatcher mutates it,
// every other component reads immutable snapshots.
package aggregate

import (
	"buzzboard/domain"
	"buzzboard/errors"
	"fmt"
	"sync"
)

// SentimentTally counts messages per sentiment category.
// The sum of all counts always equals the number of messages recorded.
type SentimentTally struct {
	mu     sync.Mutex
	counts map[domain.Sentiment]uint64
	total  uint64
}

func NewSentimentTally() *SentimentTally {
	counts := make(map[domain.Sentiment]uint64, len(domain.Sentiments))
	for _, s := range domain.Sentiments {
		counts[s] = 0
	}
	return &SentimentTally{counts: counts}
}

// Record increments the counter of the given category by one.
func (t *SentimentTally) Record(category domain.Sentiment) error {
	if !category.Valid() {
		return fmt.Errorf("record %q: %w", category, errors.ErrInvalidCategory)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[category]++
	t.total++
	return nil
}

// Snapshot returns an immutable copy of the current counts, safe to
// read concurrently with further Record calls.
func (t *SentimentTally) Snapshot() domain.SentimentCounts {
	t.mu.Lock()
	defer t.mu.Unlock()

	counts := make(map[domain.Sentiment]uint64, len(t.counts))
	for category, count := range t.counts {
		counts[category] = count
	}
	return domain.SentimentCounts{Counts: counts, Total: t.total}
}
