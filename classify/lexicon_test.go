package classify

import (
	"buzzboard/domain"
	"buzzboard/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLexicon_Classify(t *testing.T) {
	lexicon := NewLexicon()

	tests := []struct {
		name     string
		input    string
		expected domain.Sentiment
	}{
		{"positive", "I love Kafka, it is great", domain.Positive},
		{"negative", "I hate slow and buggy pipelines", domain.Negative},
		{"neutral plain", "the meeting is at noon", domain.Neutral},
		{"mixed cancels out", "great idea, terrible execution", domain.Neutral},
		{"punctuation and case", "LOVE it!!!", domain.Positive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lexicon.Classify(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestLexicon_EmptyTextFails(t *testing.T) {
	lexicon := NewLexicon()

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := lexicon.Classify(input)
		require.ErrorIs(t, err, errors.ErrEmptyText)
	}
}

func TestLexicon_NonEnglishIsNeutral(t *testing.T) {
	lexicon := NewLexicon()

	got, err := lexicon.Classify("Je déteste vraiment cette application horrible et je suis très en colère")
	require.NoError(t, err)
	require.Equal(t, domain.Neutral, got)
}
