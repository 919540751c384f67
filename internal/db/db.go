// Package db provides PostgreSQL storage for the candidate corpus and match runs.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// schemaStatements create the tables this package reads and writes. Each is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS candidates (
		id           TEXT PRIMARY KEY,
		position     SERIAL,
		raw_text     TEXT NOT NULL,
		cleaned_text TEXT NOT NULL DEFAULT '',
		embedding    REAL[],
		model        TEXT NOT NULL DEFAULT '',
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS match_runs (
		id               UUID PRIMARY KEY,
		query_text       TEXT NOT NULL,
		mode             TEXT NOT NULL,
		config_name      TEXT NOT NULL,
		weight_config    JSONB NOT NULL,
		query_features   JSONB NOT NULL,
		warnings         JSONB NOT NULL DEFAULT '[]',
		total_candidates INTEGER NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS match_results (
		run_id          UUID NOT NULL REFERENCES match_runs(id) ON DELETE CASCADE,
		rank            INTEGER NOT NULL,
		candidate_id    TEXT NOT NULL,
		embedding_score DOUBLE PRECISION NOT NULL,
		skill_overlap   DOUBLE PRECISION NOT NULL,
		ner_bonus       DOUBLE PRECISION NOT NULL,
		final_score     DOUBLE PRECISION NOT NULL,
		matched_skills  TEXT[] NOT NULL DEFAULT '{}',
		notes           TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, rank)
	)`,
}

// Migrate creates any missing tables.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
