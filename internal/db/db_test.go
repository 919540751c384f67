package db

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-screener/internal/types"
)

func TestSchemaStatements(t *testing.T) {
	joined := strings.Join(schemaStatements, "\n")
	for _, table := range []string{"candidates", "match_runs", "match_results"} {
		assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	assert.Contains(t, joined, "ON DELETE CASCADE")
}

func TestSaveMatchRun_InvalidRunID(t *testing.T) {
	db := &DB{}
	_, err := db.SaveMatchRun(context.Background(), "query", &types.MatchResult{RunID: "not-a-uuid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid run id")
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), "postgres://%zz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to database")
}

func TestClose_NilPool(t *testing.T) {
	db := &DB{}
	assert.NotPanics(t, db.Close)
}
