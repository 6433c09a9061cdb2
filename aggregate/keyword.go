package aggregate

import (
	"buzzboard/domain"
	"buzzboard/errors"
	"sort"
	"strings"
	"sync"

	goahocorasick "github.com/anknown/ahocorasick"
)

// KeywordTally counts occurrences of a fixed set of tracked terms.
// Matching is case-insensitive substring search backed by an
// Aho-Corasick automaton built once at startup; every occurrence
// within a message counts, not just the first.
type KeywordTally struct {
	mu       sync.Mutex
	matcher  *goahocorasick.Machine
	keywords []string // lowercased, configuration order
	counts   map[string]uint64
}

// NewKeywordTally builds the automaton from the configured keyword
// set. Keywords are lowercased and deduplicated; an effectively empty
// set is rejected with ErrEmptyKeywords.
func NewKeywordTally(keywords []string) (*KeywordTally, error) {
	counts := make(map[string]uint64, len(keywords))
	cleaned := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		if _, ok := counts[keyword]; ok {
			continue
		}
		counts[keyword] = 0
		cleaned = append(cleaned, keyword)
	}
	if len(cleaned) == 0 {
		return nil, errors.ErrEmptyKeywords
	}

	// The automaton wants a sorted dictionary.
	sorted := make([]string, len(cleaned))
	copy(sorted, cleaned)
	sort.Strings(sorted)
	patterns := make([][]rune, len(sorted))
	for i, keyword := range sorted {
		patterns[i] = []rune(keyword)
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &KeywordTally{matcher: m, keywords: cleaned, counts: counts}, nil
}

// Keywords returns the tracked terms in configuration order.
func (t *KeywordTally) Keywords() []string {
	out := make([]string, len(t.keywords))
	copy(out, t.keywords)
	return out
}

// Record scans text and increments each tracked keyword once per
// occurrence found. Untracked terms are ignored; this is not an error.
func (t *KeywordTally) Record(text string) {
	if text == "" {
		return
	}
	spans := t.matcher.MultiPatternSearch([]rune(strings.ToLower(text)), false)
	if len(spans) == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, span := range spans {
		t.counts[string(span.Word)]++
	}
}

// Snapshot returns an immutable copy of the keyword counts.
func (t *KeywordTally) Snapshot() domain.KeywordCounts {
	t.mu.Lock()
	defer t.mu.Unlock()

	counts := make(domain.KeywordCounts, len(t.counts))
	for keyword, count := range t.counts {
		counts[keyword] = count
	}
	return counts
}
