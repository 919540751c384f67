// Package nlp defines the named-entity recognition capability used by the entity extractor.
//
// A Recognizer turns text into typed spans. Two implementations are provided: an LLM-backed
// recognizer and an offline gazetteer. Both are read-only after construction and safe for
// concurrent use.
package nlp

import "context"

// Label is the coarse entity type attached to a span.
type Label string

// Labels the screener consumes. Anything else a recognizer returns is ignored.
const (
	LabelOrg  Label = "ORG"
	LabelGPE  Label = "GPE"
	LabelLoc  Label = "LOC"
	LabelDate Label = "DATE"
)

// Entity is one recognized span.
type Entity struct {
	Text  string `json:"text"`
	Label Label  `json:"label"`
}

// Recognizer tags entity spans in text.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

// KnownLabel reports whether label is one of the four consumed labels.
func KnownLabel(label Label) bool {
	switch label {
	case LabelOrg, LabelGPE, LabelLoc, LabelDate:
		return true
	}
	return false
}
