// Package entities builds structured entity bundles (titles, organizations, locations, dates,
// experience years) from free text.
package entities

import (
	"context"
	"strings"

	"github.com/jonathan/resume-screener/internal/nlp"
	"github.com/jonathan/resume-screener/internal/parsing"
	"github.com/jonathan/resume-screener/internal/types"
)

// Extractor composes a Recognizer with title, blocklist and experience heuristics.
// It holds no per-call state and is safe for concurrent use.
type Extractor struct {
	recognizer nlp.Recognizer
	prepare    func(string) string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRecognizerInput rewrites the text handed to the recognizer. Title and
// experience heuristics always see the original text.
func WithRecognizerInput(prepare func(string) string) Option {
	return func(e *Extractor) {
		e.prepare = prepare
	}
}

// NewExtractor creates an extractor over recognizer.
func NewExtractor(recognizer nlp.Recognizer, opts ...Option) *Extractor {
	e := &Extractor{recognizer: recognizer}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the entity bundle for text.
// Blank text yields an empty bundle without calling the recognizer.
// A recognizer failure returns an empty bundle together with the error.
func (e *Extractor) Extract(ctx context.Context, text string) (types.EntityBundle, error) {
	if strings.TrimSpace(text) == "" {
		return types.EmptyEntityBundle(), nil
	}

	input := text
	if e.prepare != nil {
		input = e.prepare(text)
	}
	spans, err := e.recognizer.Recognize(ctx, input)
	if err != nil {
		return types.EmptyEntityBundle(), err
	}

	var orgs, locs, dates []string
	for _, span := range spans {
		switch span.Label {
		case nlp.LabelOrg:
			if !IsTechTerm(span.Text) {
				orgs = append(orgs, span.Text)
			}
		case nlp.LabelGPE, nlp.LabelLoc:
			if !IsTechTerm(span.Text) {
				locs = append(locs, span.Text)
			}
		case nlp.LabelDate:
			dates = append(dates, span.Text)
		}
	}

	return types.EntityBundle{
		Titles:          parsing.DedupePreserveOrder(ExtractTitles(text)),
		Organizations:   parsing.DedupePreserveOrder(orgs),
		Locations:       parsing.DedupePreserveOrder(locs),
		Dates:           parsing.DedupePreserveOrder(dates),
		ExperienceYears: ExtractExperienceYears(text),
	}, nil
}
