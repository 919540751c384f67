package embedding

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jonathan/resume-screener/internal/embedding/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 1}, b: []float32{-1, -1}, want: -1},
		{name: "scaled", a: []float32{1, 2}, b: []float32{2, 4}, want: 1},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
		{name: "empty", a: []float32{}, b: []float32{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Similarity(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSimilarity_DimensionMismatch(t *testing.T) {
	_, err := Similarity([]float32{1, 2}, []float32{1})
	var embErr *Error
	assert.ErrorAs(t, err, &embErr)
}

func TestBatchSimilarity_MatchesPairwise(t *testing.T) {
	query := mock.DeterministicVector("senior go engineer", 32)
	corpus := make([][]float32, 20)
	for i := range corpus {
		corpus[i] = mock.DeterministicVector(fmt.Sprintf("resume-%d", i), 32)
	}
	corpus = append(corpus, make([]float32, 32))

	batch, err := BatchSimilarity(query, corpus)
	require.NoError(t, err)
	require.Len(t, batch, len(corpus))

	for i, vec := range corpus {
		pair, err := Similarity(query, vec)
		require.NoError(t, err)
		assert.InDelta(t, pair, batch[i], 1e-6, "index %d", i)
	}
	assert.Equal(t, 0.0, batch[len(batch)-1])
}

func TestBatchSimilarity_EdgeCases(t *testing.T) {
	scores, err := BatchSimilarity([]float32{1, 0}, nil)
	require.NoError(t, err)
	assert.Empty(t, scores)

	scores, err = BatchSimilarity([]float32{0, 0}, [][]float32{{1, 1}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, scores)

	_, err = BatchSimilarity([]float32{1, 0}, [][]float32{{1, 0}, {1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
}

func TestScorer_Encode(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	scorer := NewScorer(embedder)

	vec, err := scorer.Encode(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, vec, mock.DefaultDimensions)

	again, err := scorer.Encode(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, vec, again)
	assert.Equal(t, 2, embedder.CallCount())
}

func TestScorer_EncodeFailureIsReturned(t *testing.T) {
	embedder := &mock.MockEmbedder{
		EmbedTextFunc: func(context.Context, string) ([]float32, error) {
			return nil, errors.New("connection refused")
		},
	}

	_, err := NewScorer(embedder).Encode(context.Background(), "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 1, embedder.CallCount())
}

func TestScorer_EncodeEmptyVector(t *testing.T) {
	embedder := &mock.MockEmbedder{
		EmbedTextFunc: func(context.Context, string) ([]float32, error) {
			return []float32{}, nil
		},
	}

	_, err := NewScorer(embedder).Encode(context.Background(), "query")
	var embErr *Error
	assert.ErrorAs(t, err, &embErr)
}

func TestNewEmbedder_UnsupportedProvider(t *testing.T) {
	_, err := NewEmbedder(context.Background(), Config{Provider: "cohere"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported embedding provider")
}

func TestNewEmbedder_GeminiRequiresKey(t *testing.T) {
	_, err := NewEmbedder(context.Background(), Config{Provider: ProviderGemini})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestNewEmbedder_OpenAICompatible(t *testing.T) {
	emb, err := NewEmbedder(context.Background(), Config{Provider: ProviderOpenAI, Host: "http://localhost:11434/v1", Model: "nomic-embed-text"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIEmbedder{}, emb)
}
