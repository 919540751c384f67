package skills

import (
	"sort"

	"github.com/jonathan/resume-screener/internal/parsing"
)

// Matcher finds vocabulary phrases in text.
// Matching is exact, whole-phrase, case-insensitive and aligned to token boundaries.
// A Matcher is read-only after construction and safe for concurrent use.
type Matcher struct {
	vocabulary []string
	// patterns indexes tokenized phrases by their first token, shortest first.
	patterns map[string][][]string
}

// NewMatcher builds a matcher over the given phrases.
// The vocabulary is lower-cased and deduplicated case-insensitively, keeping first-seen order.
func NewMatcher(vocabulary []string) *Matcher {
	m := &Matcher{
		vocabulary: make([]string, 0, len(vocabulary)),
		patterns:   make(map[string][][]string),
	}

	seen := make(map[string]bool, len(vocabulary))
	for _, phrase := range vocabulary {
		phrase = parsing.NormalizeText(phrase)
		if phrase == "" || seen[phrase] {
			continue
		}
		seen[phrase] = true
		m.vocabulary = append(m.vocabulary, phrase)

		tokens := parsing.TokenTexts(phrase)
		if len(tokens) == 0 {
			continue
		}
		m.patterns[tokens[0]] = append(m.patterns[tokens[0]], tokens)
	}

	for first := range m.patterns {
		candidates := m.patterns[first]
		sort.SliceStable(candidates, func(i, j int) bool {
			return len(candidates[i]) < len(candidates[j])
		})
	}

	return m
}

// LoadMatcher builds a matcher from a vocabulary file.
func LoadMatcher(path string) (*Matcher, error) {
	vocabulary, err := LoadVocabularyFile(path)
	if err != nil {
		return nil, err
	}
	return NewMatcher(vocabulary), nil
}

// Vocabulary returns a copy of the deduplicated vocabulary.
func (m *Matcher) Vocabulary() []string {
	out := make([]string, len(m.vocabulary))
	copy(out, m.vocabulary)
	return out
}

// Size returns the number of distinct vocabulary phrases.
func (m *Matcher) Size() int {
	return len(m.vocabulary)
}

// Extract returns the vocabulary phrases found in text, lower-cased, deduplicated, in first-seen order.
//
// Every phrase that matches at a position is emitted, so "machine" and "machine learning"
// both come back for the text "machine learning". There is no longest-match preference.
func (m *Matcher) Extract(text string) []string {
	found := make([]string, 0)
	if len(m.vocabulary) == 0 || text == "" {
		return found
	}

	normalized := parsing.NormalizeText(text)
	tokens := parsing.Tokenize(normalized)
	seen := make(map[string]bool)

	for i := range tokens {
		for _, pattern := range m.patterns[tokens[i].Text] {
			if !matchesAt(tokens, i, pattern) {
				continue
			}
			span := normalized[tokens[i].Start:tokens[i+len(pattern)-1].End]
			if !seen[span] {
				seen[span] = true
				found = append(found, span)
			}
		}
	}

	return found
}

func matchesAt(tokens []parsing.Token, start int, pattern []string) bool {
	if start+len(pattern) > len(tokens) {
		return false
	}
	for k, want := range pattern {
		if tokens[start+k].Text != want {
			return false
		}
	}
	return true
}
