package corpus

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/jonathan/resume-screener/internal/embedding"
	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/types"
)

// Encoding defaults
const (
	DefaultBatchSize = 16
	DefaultMaxChars  = 2000
)

// EncodeReport summarizes an encoding run.
type EncodeReport struct {
	Total     int      `json:"total"`
	Encoded   int      `json:"encoded"`
	Skipped   int      `json:"skipped"`
	FailedIDs []string `json:"failed_ids,omitempty"`
}

// Encoder computes embeddings for candidates in fixed-size batches on a worker pool.
type Encoder struct {
	embedder  embedding.Embedder
	batchSize int
	maxChars  int
	workers   int
	verbose   bool
}

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithBatchSize sets how many texts go into one embedding call.
func WithBatchSize(n int) EncoderOption {
	return func(e *Encoder) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// WithMaxChars sets the per-text truncation length in characters.
func WithMaxChars(n int) EncoderOption {
	return func(e *Encoder) {
		if n > 0 {
			e.maxChars = n
		}
	}
}

// WithWorkers sets the pool size. Default is runtime.NumCPU() / 2, minimum 1.
func WithWorkers(n int) EncoderOption {
	return func(e *Encoder) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithVerbose logs every batch.
func WithVerbose(verbose bool) EncoderOption {
	return func(e *Encoder) {
		e.verbose = verbose
	}
}

// NewEncoder creates an encoder over embedder.
func NewEncoder(embedder embedding.Embedder, opts ...EncoderOption) *Encoder {
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}
	e := &Encoder{
		embedder:  embedder,
		batchSize: DefaultBatchSize,
		maxChars:  DefaultMaxChars,
		workers:   workers,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type batchResult struct {
	vectors [][]float32
	err     error
}

// Encode fills CleanedText where missing and embeds the cleaned text of every
// candidate. A batch that fails is logged and its candidates are left out of the
// returned slice; the remaining candidates keep corpus order. Only a cancelled
// context or a pool failure is returned as an error.
func (e *Encoder) Encode(ctx context.Context, candidates []types.Candidate) ([]types.Candidate, EncodeReport, error) {
	report := EncodeReport{Total: len(candidates)}
	if len(candidates) == 0 {
		return []types.Candidate{}, report, nil
	}

	prepared := make([]types.Candidate, len(candidates))
	texts := make([]string, len(candidates))
	for i, c := range candidates {
		if c.CleanedText == "" {
			c.CleanedText = ingestion.CleanText(c.RawText)
		}
		prepared[i] = c
		texts[i] = ingestion.Truncate(c.Text(), e.maxChars)
	}

	pool, err := ants.NewPool(e.workers)
	if err != nil {
		return nil, report, fmt.Errorf("failed to create encoding pool: %w", err)
	}
	defer pool.Release()

	numBatches := (len(texts) + e.batchSize - 1) / e.batchSize
	results := make([]batchResult, numBatches)

	var wg sync.WaitGroup
	for b := 0; b < numBatches; b++ {
		start := b * e.batchSize
		end := min(start+e.batchSize, len(texts))
		slot := &results[b]

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				slot.err = err
				return
			}
			vectors, err := e.embedder.EmbedTexts(ctx, texts[start:end])
			if err == nil && len(vectors) != end-start {
				err = fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), end-start)
			}
			slot.vectors, slot.err = vectors, err
		})
		if submitErr != nil {
			wg.Done()
			slot.err = submitErr
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, report, err
	}

	encoded := make([]types.Candidate, 0, len(prepared))
	for b, res := range results {
		start := b * e.batchSize
		end := min(start+e.batchSize, len(prepared))
		if res.err != nil {
			log.Printf("[ENCODE] Batch %d-%d failed, skipping %d candidates: %v", start, end, end-start, res.err)
			for _, c := range prepared[start:end] {
				report.FailedIDs = append(report.FailedIDs, c.ID)
			}
			continue
		}
		if e.verbose {
			log.Printf("[ENCODE] Batch %d-%d encoded", start, end)
		}
		for i, vec := range res.vectors {
			c := prepared[start+i]
			c.Embedding = vec
			encoded = append(encoded, c)
		}
	}

	report.Encoded = len(encoded)
	report.Skipped = len(report.FailedIDs)
	return encoded, report, nil
}

// EncodeCorpus encodes every candidate of corpus and records the vector size.
func (e *Encoder) EncodeCorpus(ctx context.Context, corpus *types.Corpus, model string) (*types.Corpus, EncodeReport, error) {
	encoded, report, err := e.Encode(ctx, corpus.Candidates)
	if err != nil {
		return nil, report, err
	}
	out := &types.Corpus{Model: model, Candidates: encoded}
	if len(encoded) > 0 {
		out.Dimensions = len(encoded[0].Embedding)
	}
	return out, report, nil
}
