package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-screener/internal/types"
)

func TestRank_SortsDescending(t *testing.T) {
	results := []types.RankedResult{
		{Filename: "a.pdf", FinalScore: 0.2, Index: 0},
		{Filename: "b.pdf", FinalScore: 0.9, Index: 1},
		{Filename: "c.pdf", FinalScore: 0.5, Index: 2},
	}

	ranked := Rank(results, 0)
	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"b.pdf", "c.pdf", "a.pdf"}, filenames(ranked))
}

func TestRank_TiesPreserveCorpusOrder(t *testing.T) {
	// Arrival order differs from corpus order, as with concurrent workers.
	results := []types.RankedResult{
		{Filename: "third", FinalScore: 0.5, Index: 2},
		{Filename: "first", FinalScore: 0.5, Index: 0},
		{Filename: "top", FinalScore: 0.7, Index: 3},
		{Filename: "second", FinalScore: 0.5, Index: 1},
	}

	ranked := Rank(results, 0)
	assert.Equal(t, []string{"top", "first", "second", "third"}, filenames(ranked))
}

func TestRank_TopK(t *testing.T) {
	results := []types.RankedResult{
		{Filename: "a", FinalScore: 0.1, Index: 0},
		{Filename: "b", FinalScore: 0.3, Index: 1},
		{Filename: "c", FinalScore: 0.2, Index: 2},
	}

	assert.Equal(t, []string{"b", "c"}, filenames(Rank(results, 2)))
	assert.Len(t, Rank(results, 10), 3)
	assert.Empty(t, Rank(nil, 5))
}

func TestNewRankedResult(t *testing.T) {
	score := types.ScoreResult{Embedding: 0.81, SkillOverlap: 0.75, NERBonus: 0.4, FinalScore: 0.7}
	got := NewRankedResult(4, "jane.pdf", score, []string{"python", "sql"},
		types.EntityBundle{ExperienceYears: 5}, types.EntityBundle{ExperienceYears: 6})

	assert.Equal(t, "jane.pdf", got.Filename)
	assert.Equal(t, 2, got.MatchedSkillCount)
	assert.Equal(t, 4, got.Index)
	assert.Equal(t, "Strong skill match (python, sql). High semantic similarity. Experience requirement met", got.Notes)
}

func TestGenerateNotes(t *testing.T) {
	tests := []struct {
		name     string
		score    types.ScoreResult
		matched  []string
		job      int
		resume   int
		contains []string
	}{
		{
			name:     "no skills",
			score:    types.ScoreResult{Embedding: 0.3},
			contains: []string{"No skill matches", "Low semantic similarity"},
		},
		{
			name:     "moderate",
			score:    types.ScoreResult{Embedding: 0.6, SkillOverlap: 0.5},
			matched:  []string{"go"},
			contains: []string{"Moderate skill match (go)", "Medium semantic similarity"},
		},
		{
			name:     "weak with experience gap",
			score:    types.ScoreResult{Embedding: 0.6, SkillOverlap: 0.2},
			matched:  []string{"go"},
			job:      8,
			resume:   3,
			contains: []string{"Weak skill match (go)", "Experience below requirement (3 of 8 years)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := generateNotes(tt.score, tt.matched, tt.job, tt.resume)
			for _, s := range tt.contains {
				assert.Contains(t, notes, s)
			}
		})
	}
}

func filenames(results []types.RankedResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Filename
	}
	return out
}
