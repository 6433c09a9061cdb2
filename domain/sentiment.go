package domain

type Sentiment string

const (
	Positive Sentiment = "positive"
	Neutral  Sentiment = "neutral"
	Negative Sentiment = "negative"
)

// Sentiments lists every valid category in display order.
var Sentiments = []Sentiment{Positive, Neutral, Negative}

// Valid reports whether s is one of the three known categories.
// The classifier is trusted to only emit valid categories, so this
// is a defensive check at the aggregate boundary.
func (s Sentiment) Valid() bool {
	switch s {
	case Positive, Neutral, Negative:
		return true
	}
	return false
}
