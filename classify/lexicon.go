// Package classify provides the sentiment model used by the dispatch
// loop. The model is an external collaborator from the loop's point of
// view; this lexicon scorer is the in-process default.
package classify

import (
	"buzzboard/domain"
	"buzzboard/errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
)

// Lexicon is a small polarity-word scorer. Each token found in the
// positive list adds one, each negative token subtracts one; the sign
// of the total decides the category. The word lists are English, so
// text reliably detected as another language is scored Neutral rather
// than guessed at.
type Lexicon struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

var defaultPositive = []string{
	"love", "loved", "loves", "great", "good", "awesome", "amazing",
	"excellent", "fantastic", "happy", "wonderful", "best", "cool",
	"nice", "enjoy", "enjoyed", "like", "likes", "brilliant", "perfect",
}

var defaultNegative = []string{
	"hate", "hated", "hates", "bad", "awful", "terrible", "horrible",
	"worst", "sad", "angry", "broken", "bug", "buggy", "slow", "fail",
	"failed", "fails", "annoying", "useless", "wrong",
}

func NewLexicon() *Lexicon {
	return &Lexicon{
		positive: toSet(defaultPositive),
		negative: toSet(defaultNegative),
	}
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Classify scores text and returns its sentiment category. Empty or
// blank text is malformed input and yields an error; the caller
// decides the fallback policy.
func (l *Lexicon) Classify(text string) (domain.Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("classify: %w", errors.ErrEmptyText)
	}

	info := whatlanggo.Detect(text)
	if info.IsReliable() && info.Lang != whatlanggo.Eng {
		return domain.Neutral, nil
	}

	score := 0
	for _, token := range tokenize(text) {
		if _, ok := l.positive[token]; ok {
			score++
		}
		if _, ok := l.negative[token]; ok {
			score--
		}
	}

	switch {
	case score > 0:
		return domain.Positive, nil
	case score < 0:
		return domain.Negative, nil
	default:
		return domain.Neutral, nil
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
