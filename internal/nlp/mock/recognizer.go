// Package mock provides a test double for nlp.Recognizer.
package mock

import (
	"context"
	"sync/atomic"

	"github.com/jonathan/resume-screener/internal/nlp"
)

// MockRecognizer is a test double for nlp.Recognizer.
// It allows custom behavior injection via function fields.
type MockRecognizer struct {
	// RecognizeFunc is called by Recognize if set.
	// If nil, Entities is returned for every call.
	RecognizeFunc func(ctx context.Context, text string) ([]nlp.Entity, error)

	// Entities is the default response.
	Entities []nlp.Entity

	callCount atomic.Int64
}

// NewMockRecognizer creates a mock that returns entities for every call.
func NewMockRecognizer(entities ...nlp.Entity) *MockRecognizer {
	return &MockRecognizer{Entities: entities}
}

// Recognize returns the configured response.
func (m *MockRecognizer) Recognize(ctx context.Context, text string) ([]nlp.Entity, error) {
	m.callCount.Add(1)

	if m.RecognizeFunc != nil {
		return m.RecognizeFunc(ctx, text)
	}

	out := make([]nlp.Entity, len(m.Entities))
	copy(out, m.Entities)
	return out, nil
}

// CallCount returns the number of Recognize calls. Safe to read from concurrent tests.
func (m *MockRecognizer) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and overrides.
func (m *MockRecognizer) Reset() {
	m.callCount.Store(0)
	m.RecognizeFunc = nil
	m.Entities = nil
}
