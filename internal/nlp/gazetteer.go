package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-screener/internal/parsing"
)

// GazetteerData is the on-disk format of a gazetteer file.
type GazetteerData struct {
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
}

// defaultLocations covers the places that show up most in resumes and postings.
var defaultLocations = []string{
	"United States", "USA", "United Kingdom", "UK", "Canada", "Germany", "France",
	"India", "Singapore", "Australia", "Ireland", "Netherlands",
	"New York", "San Francisco", "Seattle", "Austin", "Boston", "Chicago", "Los Angeles",
	"Denver", "Atlanta", "Toronto", "Vancouver", "London", "Berlin", "Munich", "Paris",
	"Amsterdam", "Dublin", "Bangalore", "Bengaluru", "Hyderabad", "Sydney", "Tokyo",
	"California", "Texas", "Washington", "Massachusetts", "Illinois", "Colorado",
	"Bay Area", "Silicon Valley",
}

var dateRegex = regexp.MustCompile(`(?i)\b(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+)?(?:19|20)\d{2}\b`)

type gazetteerEntry struct {
	tokens []string
	label  Label
}

// Gazetteer is an offline dictionary recognizer.
// Organization and location phrases match case-insensitively on token boundaries; dates match by pattern.
// Returned spans keep the casing of the input text.
type Gazetteer struct {
	entries map[string][]gazetteerEntry
}

// NewGazetteer builds a gazetteer from the given data plus the built-in location list.
func NewGazetteer(data GazetteerData) *Gazetteer {
	g := &Gazetteer{entries: make(map[string][]gazetteerEntry)}
	for _, org := range data.Organizations {
		g.add(org, LabelOrg)
	}
	for _, loc := range data.Locations {
		g.add(loc, LabelGPE)
	}
	for _, loc := range defaultLocations {
		g.add(loc, LabelGPE)
	}
	for first := range g.entries {
		list := g.entries[first]
		// Longest phrase first so "New York" wins over "New".
		sort.SliceStable(list, func(i, j int) bool {
			return len(list[i].tokens) > len(list[j].tokens)
		})
	}
	return g
}

// LoadGazetteer reads a gazetteer JSON file.
func LoadGazetteer(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gazetteer file: %w", err)
	}

	var gd GazetteerData
	if err := json.Unmarshal(data, &gd); err != nil {
		return nil, fmt.Errorf("failed to parse gazetteer file: %w", err)
	}
	return NewGazetteer(gd), nil
}

func (g *Gazetteer) add(phrase string, label Label) {
	tokens := parsing.TokenTexts(strings.ToLower(strings.TrimSpace(phrase)))
	if len(tokens) == 0 {
		return
	}
	for _, existing := range g.entries[tokens[0]] {
		if equalTokens(existing.tokens, tokens) {
			return
		}
	}
	g.entries[tokens[0]] = append(g.entries[tokens[0]], gazetteerEntry{tokens: tokens, label: label})
}

// Recognize returns dictionary hits followed by date spans, each in text order.
func (g *Gazetteer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RecognitionError{Message: "recognition cancelled", Cause: err}
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	tokens := parsing.Tokenize(text)
	lowered := make([]string, len(tokens))
	for i, tok := range tokens {
		lowered[i] = strings.ToLower(tok.Text)
	}

	var out []Entity
	for i := 0; i < len(tokens); {
		matched := 0
		for _, entry := range g.entries[lowered[i]] {
			n := len(entry.tokens)
			if i+n <= len(tokens) && equalTokens(lowered[i:i+n], entry.tokens) {
				out = append(out, Entity{Text: text[tokens[i].Start:tokens[i+n-1].End], Label: entry.label})
				matched = n
				break
			}
		}
		if matched > 0 {
			i += matched
		} else {
			i++
		}
	}

	for _, span := range dateRegex.FindAllString(text, -1) {
		out = append(out, Entity{Text: span, Label: LabelDate})
	}

	return out, nil
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
