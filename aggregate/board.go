package aggregate

import (
	"buzzboard/domain"
	"time"
)

// Board owns the three aggregates for the process lifetime. It is the
// explicit aggregation-state handle shared by the dispatch loop (sole
// writer) and the render loop (snapshot reader); nothing else mutates
// the aggregates.
type Board struct {
	Sentiment *SentimentTally
	Volume    *VolumeSeries
	Keywords  *KeywordTally
}

// NewBoard wires the three aggregates from startup configuration.
func NewBoard(keywords []string, bucketWidth time.Duration, retention int) (*Board, error) {
	keywordTally, err := NewKeywordTally(keywords)
	if err != nil {
		return nil, err
	}
	return &Board{
		Sentiment: NewSentimentTally(),
		Volume:    NewVolumeSeries(bucketWidth, retention),
		Keywords:  keywordTally,
	}, nil
}

// Snapshot copies all three aggregates. Each copy is cheap and taken
// under that aggregate's own lock; the slow part, drawing, happens on
// the caller's side without any lock held.
func (b *Board) Snapshot() domain.BoardSnapshot {
	return domain.BoardSnapshot{
		Sentiment: b.Sentiment.Snapshot(),
		Volume:    b.Volume.Snapshot(),
		Keywords:  b.Keywords.Snapshot(),
		TakenAt:   time.Now(),
	}
}
