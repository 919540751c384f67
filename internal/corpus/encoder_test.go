package corpus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-screener/internal/embedding/mock"
	"github.com/jonathan/resume-screener/internal/types"
)

func makeCandidates(n int) []types.Candidate {
	out := make([]types.Candidate, n)
	for i := range out {
		out[i] = types.Candidate{ID: fmt.Sprintf("c%02d", i), RawText: fmt.Sprintf("Resume %d: Python, SQL", i)}
	}
	return out
}

func TestEncoder_EncodesAllInOrder(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	encoder := NewEncoder(embedder, WithBatchSize(4), WithWorkers(3))

	encoded, report, err := encoder.Encode(context.Background(), makeCandidates(10))
	require.NoError(t, err)

	require.Len(t, encoded, 10)
	for i, c := range encoded {
		assert.Equal(t, fmt.Sprintf("c%02d", i), c.ID)
		assert.Len(t, c.Embedding, mock.DefaultDimensions)
		assert.Equal(t, mock.DeterministicVector(c.CleanedText, mock.DefaultDimensions), c.Embedding)
	}
	assert.Equal(t, EncodeReport{Total: 10, Encoded: 10}, report)
	assert.Equal(t, 3, embedder.CallCount())
}

func TestEncoder_FillsCleanedTextAndTruncates(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	embedder := &mock.MockEmbedder{
		EmbedTextsFunc: func(_ context.Context, texts []string) ([][]float32, error) {
			mu.Lock()
			seen = append(seen, texts...)
			mu.Unlock()
			out := make([][]float32, len(texts))
			for i := range texts {
				out[i] = []float32{1, 0}
			}
			return out, nil
		},
	}

	long := strings.Repeat("a", 50)
	candidates := []types.Candidate{
		{ID: "1", RawText: "C++ dev, email me@x.io"},
		{ID: "2", RawText: "ignored", CleanedText: long},
	}

	encoded, _, err := NewEncoder(embedder, WithMaxChars(10)).Encode(context.Background(), candidates)
	require.NoError(t, err)
	require.Len(t, encoded, 2)

	assert.Equal(t, "C dev, email", encoded[0].CleanedText)
	assert.Equal(t, long, encoded[1].CleanedText)
	assert.ElementsMatch(t, []string{"C dev, ema", "aaaaaaaaaa"}, seen)
	assert.Empty(t, candidates[0].CleanedText)
}

func TestEncoder_FailedBatchIsSkipped(t *testing.T) {
	embedder := &mock.MockEmbedder{
		EmbedTextsFunc: func(_ context.Context, texts []string) ([][]float32, error) {
			for _, text := range texts {
				if strings.Contains(text, "Resume 5") {
					return nil, errors.New("rate limited")
				}
			}
			out := make([][]float32, len(texts))
			for i, text := range texts {
				out[i] = mock.DeterministicVector(text, 4)
			}
			return out, nil
		},
	}

	encoded, report, err := NewEncoder(embedder, WithBatchSize(4)).Encode(context.Background(), makeCandidates(10))
	require.NoError(t, err)

	ids := make([]string, len(encoded))
	for i, c := range encoded {
		ids[i] = c.ID
		assert.Equal(t, mock.DeterministicVector(c.CleanedText, 4), c.Embedding)
	}
	assert.Equal(t, []string{"c00", "c01", "c02", "c03", "c08", "c09"}, ids)
	assert.Equal(t, []string{"c04", "c05", "c06", "c07"}, report.FailedIDs)
	assert.Equal(t, 6, report.Encoded)
	assert.Equal(t, 4, report.Skipped)
}

func TestEncoder_ShortBatchResponseIsAFailure(t *testing.T) {
	embedder := &mock.MockEmbedder{
		EmbedTextsFunc: func(_ context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{1}}, nil
		},
	}

	encoded, report, err := NewEncoder(embedder, WithBatchSize(2)).Encode(context.Background(), makeCandidates(3))
	require.NoError(t, err)
	require.Len(t, encoded, 1)
	assert.Equal(t, "c02", encoded[0].ID)
	assert.Equal(t, []string{"c00", "c01"}, report.FailedIDs)
}

func TestEncoder_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewEncoder(mock.NewMockEmbedder()).Encode(ctx, makeCandidates(3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncoder_Empty(t *testing.T) {
	encoded, report, err := NewEncoder(mock.NewMockEmbedder()).Encode(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, encoded)
	assert.Equal(t, 0, report.Total)
}

func TestEncoder_EncodeCorpus(t *testing.T) {
	in := &types.Corpus{Candidates: makeCandidates(2)}
	out, report, err := NewEncoder(mock.NewMockEmbedder()).EncodeCorpus(context.Background(), in, "mock")
	require.NoError(t, err)
	assert.Equal(t, "mock", out.Model)
	assert.Equal(t, mock.DefaultDimensions, out.Dimensions)
	assert.Equal(t, 2, report.Encoded)
}
