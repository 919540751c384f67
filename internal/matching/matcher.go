// Package matching ranks a candidate corpus against one job description by
// combining embedding similarity, skill overlap and entity compatibility.
package matching

import (
	"context"
	"fmt"
	"log"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-screener/internal/corpus"
	"github.com/jonathan/resume-screener/internal/embedding"
	"github.com/jonathan/resume-screener/internal/entities"
	"github.com/jonathan/resume-screener/internal/ranking"
	"github.com/jonathan/resume-screener/internal/skills"
	"github.com/jonathan/resume-screener/internal/types"
	"github.com/jonathan/resume-screener/internal/weights"
)

// Options controls one matching call.
type Options struct {
	// Mode defaults to smart (adaptive).
	Mode   weights.Mode
	Custom *CustomWeights
	// TopK truncates the ranking; 0 keeps every candidate.
	TopK int
	// Workers bounds per-candidate fan-out; 0 means runtime.NumCPU().
	Workers    int
	Verbose    bool
	OnProgress ProgressCallback
}

// Matcher is the matching orchestrator. Its collaborators are read-only after
// construction, so one Matcher can serve concurrent calls.
type Matcher struct {
	store     corpus.Store
	skills    *skills.Matcher
	extractor *entities.Extractor
	scorer    *embedding.Scorer
	selector  *weights.Selector
}

// NewMatcher wires the orchestrator. A nil selector disables adaptive weighting.
func NewMatcher(store corpus.Store, skillMatcher *skills.Matcher, extractor *entities.Extractor, scorer *embedding.Scorer, selector *weights.Selector) *Matcher {
	return &Matcher{
		store:     store,
		skills:    skillMatcher,
		extractor: extractor,
		scorer:    scorer,
		selector:  selector,
	}
}

// QueryFeatures extracts the query's skills and entities. An entity extraction
// failure yields an empty bundle and a warning.
func (m *Matcher) QueryFeatures(ctx context.Context, query string) (types.QueryFeatures, []string) {
	features := types.QueryFeatures{Skills: m.skills.Extract(query)}

	bundle, err := m.extractor.Extract(ctx, query)
	if err != nil {
		msg := fmt.Sprintf("entity extraction failed for job description: %v", err)
		log.Printf("[MATCH] Warning: %s", msg)
		return types.QueryFeatures{Skills: features.Skills, Entities: types.EmptyEntityBundle()}, []string{msg}
	}
	features.Entities = bundle
	return features, nil
}

// Match scores every candidate in the store against query and returns them ranked.
//
// Missing corpus data or embeddings fail with corpus.ErrDataNotFound before any
// model call. A query embedding failure is fatal. Per-candidate entity
// extraction failures are recorded as warnings and score with an empty bundle.
func (m *Matcher) Match(ctx context.Context, query string, opts Options) (*types.MatchResult, error) {
	runID := uuid.New().String()
	if opts.Mode == "" {
		opts.Mode = weights.ModeSmart
	}

	resolution, err := ResolveWeights(opts.Mode, opts.Custom, m.selector, query)
	if err != nil {
		return nil, fmt.Errorf("invalid weight configuration: %w", err)
	}
	warnings := append([]string(nil), resolution.Warnings...)
	emitProgress(&opts, runID, StepWeights,
		fmt.Sprintf("Using %s weights (%s)", resolution.Profile.Name, resolution.Config.Mode), resolution.Config)

	ranker, err := ranking.FromProfile(resolution.Profile)
	if err != nil {
		return nil, fmt.Errorf("invalid weight profile: %w", err)
	}

	candidates, err := m.store.Candidates(ctx)
	if err != nil {
		return nil, err
	}
	if err := corpus.RequireEmbeddings(candidates); err != nil {
		return nil, err
	}
	if opts.Verbose {
		log.Printf("[MATCH] Run %s: %d candidates, weights %s", runID, len(candidates), resolution.Profile.Name)
	}

	queryVec, err := m.scorer.Encode(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to encode job description: %w", err)
	}

	features, featureWarnings := m.QueryFeatures(ctx, query)
	warnings = append(warnings, featureWarnings...)
	emitProgress(&opts, runID, StepQuery,
		fmt.Sprintf("Job description: %d skills, %d years required", len(features.Skills), features.Entities.ExperienceYears), features)

	vectors := make([][]float32, len(candidates))
	for i := range candidates {
		vectors[i] = candidates[i].Embedding
	}
	similarities, err := m.scorer.BatchSimilarity(queryVec, vectors)
	if err != nil {
		return nil, fmt.Errorf("failed to compute similarity: %w", err)
	}

	results, scoreWarnings, err := m.scoreAll(ctx, ranker, candidates, similarities, features, opts)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, scoreWarnings...)
	emitProgress(&opts, runID, StepScoring, fmt.Sprintf("Scored %d candidates", len(results)), nil)

	ranked := ranking.Rank(results, opts.TopK)
	emitProgress(&opts, runID, StepRanked, fmt.Sprintf("Ranked %d candidates", len(ranked)), nil)
	if opts.Verbose && len(ranked) > 0 {
		log.Printf("[MATCH] Run %s: top candidate %s (%.4f)", runID, ranked[0].Filename, ranked[0].FinalScore)
	}

	return &types.MatchResult{
		RunID:           runID,
		WeightConfig:    resolution.Config,
		Query:           features,
		TotalCandidates: len(candidates),
		Results:         ranked,
		Warnings:        warnings,
	}, nil
}

// scoreAll fans candidates out over a bounded errgroup. Results are written by
// corpus index, so completion order does not matter.
func (m *Matcher) scoreAll(ctx context.Context, ranker *ranking.HybridRanker, candidates []types.Candidate, similarities []float64, query types.QueryFeatures, opts Options) ([]types.RankedResult, []string, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]types.RankedResult, len(candidates))
	failures := make([]string, len(candidates))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range candidates {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			c := &candidates[i]
			text := c.Text()
			resumeSkills := m.skills.Extract(text)
			bundle, err := m.extractor.Extract(gCtx, text)
			if err != nil {
				msg := fmt.Sprintf("entity extraction failed for %s: %v", c.ID, err)
				log.Printf("[MATCH] Warning: %s", msg)
				failures[i] = msg
				bundle = types.EmptyEntityBundle()
			}

			score := ranker.HybridScore(similarities[i], query.Skills, resumeSkills, query.Entities, bundle)
			matched := ranking.MatchedSkills(query.Skills, resumeSkills)
			results[i] = ranking.NewRankedResult(i, c.ID, score, matched, query.Entities, bundle)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var warnings []string
	for _, msg := range failures {
		if msg != "" {
			warnings = append(warnings, msg)
		}
	}
	return results, warnings, nil
}
