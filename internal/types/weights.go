// Package types provides type definitions for structured data used throughout the resume-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
	"math"
)

// WeightTolerance is how far the weight sum may drift from 1.0 before renormalization.
const WeightTolerance = 0.01

// ErrInvalidWeights is returned for weight triples that cannot be normalized (negative or zero-sum).
var ErrInvalidWeights = errors.New("invalid weights")

// WeightProfile is a named blend of the three score components.
type WeightProfile struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Embedding   float64 `json:"embedding"`
	Skill       float64 `json:"skill"`
	NER         float64 `json:"ner"`
}

// NewWeightProfile builds a profile from a weight triple.
// Weights whose sum deviates from 1.0 by more than WeightTolerance are divided by the actual sum.
// Negative weights or a zero sum are rejected.
func NewWeightProfile(name, description string, embedding, skill, ner float64) (WeightProfile, error) {
	for label, w := range map[string]float64{"embedding": embedding, "skill": skill, "ner": ner} {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return WeightProfile{}, fmt.Errorf("%w: %s weight must be a non-negative number, got %v", ErrInvalidWeights, label, w)
		}
	}

	total := embedding + skill + ner
	if total <= 0 {
		return WeightProfile{}, fmt.Errorf("%w: weights sum to zero", ErrInvalidWeights)
	}

	if math.Abs(total-1.0) > WeightTolerance {
		embedding /= total
		skill /= total
		ner /= total
	}

	return WeightProfile{
		Name:        name,
		Description: description,
		Embedding:   embedding,
		Skill:       skill,
		NER:         ner,
	}, nil
}

// Sum returns the total of the three weights.
func (w WeightProfile) Sum() float64 {
	return w.Embedding + w.Skill + w.NER
}

// Weights returns the bare weight triple.
func (w WeightProfile) Weights() Weights {
	return Weights{Embedding: w.Embedding, Skill: w.Skill, NER: w.NER}
}

// Weights is the bare (embedding, skill, ner) triple as written to the weight-configuration record.
type Weights struct {
	Embedding float64 `json:"embedding"`
	Skill     float64 `json:"skill"`
	NER       float64 `json:"ner"`
}
