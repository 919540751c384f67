package embedding

import (
	"context"
	"fmt"
	"math"
)

// Scorer encodes text and computes cosine similarity.
type Scorer struct {
	embedder Embedder
}

// NewScorer creates a scorer over embedder.
func NewScorer(embedder Embedder) *Scorer {
	return &Scorer{embedder: embedder}
}

// Encode embeds text. No retries; any failure is returned to the caller.
func (s *Scorer) Encode(ctx context.Context, text string) ([]float32, error) {
	vec, err := s.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vec) == 0 {
		return nil, &Error{Message: "embedder returned an empty vector"}
	}
	return vec, nil
}

// Similarity returns the cosine similarity of a and b.
// A zero-length or zero-norm vector scores 0.
func Similarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, &Error{Message: fmt.Sprintf("dimension mismatch: %d vs %d", len(a), len(b))}
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// BatchSimilarity returns the cosine similarity of query against every corpus vector,
// aligned index for index. The query is normalized once for the whole corpus.
func BatchSimilarity(query []float32, corpus [][]float32) ([]float64, error) {
	scores := make([]float64, len(corpus))

	unit := make([]float64, len(query))
	var norm float64
	for i, v := range query {
		unit[i] = float64(v)
		norm += unit[i] * unit[i]
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range unit {
			unit[i] /= norm
		}
	}

	for idx, vec := range corpus {
		if len(vec) != len(query) {
			return nil, &Error{Message: fmt.Sprintf("dimension mismatch at index %d: %d vs %d", idx, len(vec), len(query))}
		}
		if norm == 0 {
			continue
		}

		var dot, vecNorm float64
		for i, v := range vec {
			x := float64(v)
			dot += unit[i] * x
			vecNorm += x * x
		}
		if vecNorm == 0 {
			continue
		}
		scores[idx] = dot / math.Sqrt(vecNorm)
	}

	return scores, nil
}

// Similarity is the method form of the package-level Similarity.
func (s *Scorer) Similarity(a, b []float32) (float64, error) {
	return Similarity(a, b)
}

// BatchSimilarity is the method form of the package-level BatchSimilarity.
func (s *Scorer) BatchSimilarity(query []float32, corpus [][]float32) ([]float64, error) {
	return BatchSimilarity(query, corpus)
}
