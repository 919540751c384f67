// Package types provides type definitions for structured data used throughout the resume-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Candidate is a single resume in the corpus, with its precomputed embedding.
type Candidate struct {
	ID          string    `json:"id"`
	RawText     string    `json:"raw_text"`
	CleanedText string    `json:"cleaned_text,omitempty"`
	Embedding   []float32 `json:"embedding,omitempty"`
}

// Text returns the text used for extraction: the cleaned text when present, else the raw text.
func (c *Candidate) Text() string {
	if c.CleanedText != "" {
		return c.CleanedText
	}
	return c.RawText
}

// HasEmbedding reports whether the candidate carries a non-empty embedding vector.
func (c *Candidate) HasEmbedding() bool {
	return len(c.Embedding) > 0
}

// Corpus is the on-disk layout of a candidate corpus file.
type Corpus struct {
	Model      string      `json:"model,omitempty"`
	Dimensions int         `json:"dimensions,omitempty"`
	Candidates []Candidate `json:"candidates"`
}
