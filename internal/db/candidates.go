package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jonathan/resume-screener/internal/corpus"
	"github.com/jonathan/resume-screener/internal/types"
)

// undefinedTable is the PostgreSQL error code for a missing relation.
const undefinedTable = "42P01"

// Candidates returns the corpus in insertion order. It satisfies corpus.Store.
// An empty or missing table is a corpus.DataNotFoundError.
func (db *DB) Candidates(ctx context.Context) ([]types.Candidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, raw_text, cleaned_text, embedding FROM candidates ORDER BY position`)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
			return nil, &corpus.DataNotFoundError{Resource: "candidates table", Message: "table does not exist", Cause: err}
		}
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []types.Candidate
	for rows.Next() {
		var c types.Candidate
		if err := rows.Scan(&c.ID, &c.RawText, &c.CleanedText, &c.Embedding); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}

	if len(candidates) == 0 {
		return nil, &corpus.DataNotFoundError{Resource: "candidates table", Message: "corpus has no candidates"}
	}
	return candidates, nil
}

// UpsertCandidates inserts or replaces candidates in one transaction. Existing
// rows keep their corpus position.
func (db *DB) UpsertCandidates(ctx context.Context, model string, candidates []types.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, c := range candidates {
		batch.Queue(
			`INSERT INTO candidates (id, raw_text, cleaned_text, embedding, model)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET raw_text = $2, cleaned_text = $3, embedding = $4, model = $5, updated_at = NOW()`,
			c.ID, c.RawText, c.CleanedText, c.Embedding, model,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert candidates: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit candidates: %w", err)
	}
	return nil
}

// CountCandidates returns the corpus size and how many candidates have embeddings.
func (db *DB) CountCandidates(ctx context.Context) (total, embedded int, err error) {
	err = db.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE cardinality(embedding) > 0) FROM candidates`,
	).Scan(&total, &embedded)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return total, embedded, nil
}
