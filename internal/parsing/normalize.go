// Package parsing provides text normalization and tokenization shared by the extractors.
package parsing

import (
	"strings"
	"unicode"
)

// NormalizeText lower-cases text, collapses runs of whitespace to a single space and trims it.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// NormalizeKey is the comparison key for set membership: lower-cased and trimmed.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DedupePreserveOrder trims each item, drops empty ones and removes exact duplicates,
// keeping the first occurrence.
func DedupePreserveOrder(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// KeySet builds a set of NormalizeKey values, skipping empty keys.
func KeySet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		if key := NormalizeKey(item); key != "" {
			set[key] = true
		}
	}
	return set
}

// SplitLines returns the trimmed, non-empty lines of text.
func SplitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// SplitSentences splits text on line breaks and on sentence-ending punctuation
// followed by whitespace. Returned sentences are trimmed and non-empty.
func SplitSentences(text string) []string {
	var sentences []string
	for _, line := range SplitLines(text) {
		runes := []rune(line)
		start := 0
		for i, r := range runes {
			if r != '.' && r != '!' && r != '?' {
				continue
			}
			if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
				continue
			}
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
