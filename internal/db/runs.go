package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-screener/internal/types"
)

// SaveMatchRun stores a match result and its ranked rows in one transaction.
func (db *DB) SaveMatchRun(ctx context.Context, queryText string, result *types.MatchResult) (uuid.UUID, error) {
	runID, err := uuid.Parse(result.RunID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid run id %q: %w", result.RunID, err)
	}

	configJSON, err := json.Marshal(result.WeightConfig)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal weight config: %w", err)
	}
	queryJSON, err := json.Marshal(result.Query)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal query features: %w", err)
	}
	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal warnings: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO match_runs (id, query_text, mode, config_name, weight_config, query_features, warnings, total_candidates)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		runID, queryText, result.WeightConfig.Mode, result.WeightConfig.ProfileName,
		configJSON, queryJSON, warningsJSON, result.TotalCandidates,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create match run: %w", err)
	}

	batch := &pgx.Batch{}
	for i, r := range result.Results {
		matched := r.MatchedSkills
		if matched == nil {
			matched = []string{}
		}
		batch.Queue(
			`INSERT INTO match_results (run_id, rank, candidate_id, embedding_score, skill_overlap, ner_bonus, final_score, matched_skills, notes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			runID, i+1, r.Filename, r.EmbeddingScore, r.SkillOverlap, r.NERBonus, r.FinalScore, matched, r.Notes,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to save match results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit match run: %w", err)
	}
	return runID, nil
}

// GetMatchRun retrieves a run with its results in rank order. Returns nil, nil when not found.
func (db *DB) GetMatchRun(ctx context.Context, runID uuid.UUID) (*MatchRun, error) {
	var run MatchRun
	var configJSON, queryJSON, warningsJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, query_text, mode, config_name, weight_config, query_features, warnings, total_candidates, created_at
		 FROM match_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.QueryText, &run.Mode, &run.ConfigName, &configJSON, &queryJSON, &warningsJSON, &run.TotalCandidates, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match run: %w", err)
	}

	if err := json.Unmarshal(configJSON, &run.WeightConfig); err != nil {
		return nil, fmt.Errorf("failed to decode weight config: %w", err)
	}
	if err := json.Unmarshal(queryJSON, &run.Query); err != nil {
		return nil, fmt.Errorf("failed to decode query features: %w", err)
	}
	if err := json.Unmarshal(warningsJSON, &run.Warnings); err != nil {
		return nil, fmt.Errorf("failed to decode warnings: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT candidate_id, embedding_score, skill_overlap, ner_bonus, final_score, matched_skills, notes
		 FROM match_results WHERE run_id = $1 ORDER BY rank`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get match results: %w", err)
	}
	defer rows.Close()

	run.Results = []types.RankedResult{}
	for rows.Next() {
		var r types.RankedResult
		if err := rows.Scan(&r.Filename, &r.EmbeddingScore, &r.SkillOverlap, &r.NERBonus, &r.FinalScore, &r.MatchedSkills, &r.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan match result: %w", err)
		}
		r.MatchedSkillCount = len(r.MatchedSkills)
		r.Index = len(run.Results)
		run.Results = append(run.Results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read match results: %w", err)
	}
	return &run, nil
}

// ListMatchRuns retrieves recent runs, newest first.
func (db *DB) ListMatchRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT r.id, r.mode, r.config_name, r.total_candidates, r.created_at,
		        COALESCE(top.candidate_id, ''), COALESCE(top.final_score, 0)
		 FROM match_runs r
		 LEFT JOIN match_results top ON top.run_id = r.id AND top.rank = 1
		 ORDER BY r.created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list match runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.ID, &s.Mode, &s.ConfigName, &s.TotalCandidates, &s.CreatedAt, &s.TopCandidate, &s.TopScore); err != nil {
			return nil, fmt.Errorf("failed to scan match run: %w", err)
		}
		runs = append(runs, s)
	}
	return runs, rows.Err()
}

// DeleteMatchRun deletes a run and its results (via cascade)
func (db *DB) DeleteMatchRun(ctx context.Context, runID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM match_runs WHERE id = $1`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete match run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("match run not found: %s", runID)
	}
	return nil
}
