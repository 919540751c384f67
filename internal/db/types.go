package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-screener/internal/types"
)

// MatchRun is a persisted matching call with its ranked results.
type MatchRun struct {
	ID              uuid.UUID            `json:"id"`
	QueryText       string               `json:"query_text"`
	Mode            string               `json:"mode"`
	ConfigName      string               `json:"config_name"`
	WeightConfig    types.WeightConfig   `json:"weight_config"`
	Query           types.QueryFeatures  `json:"query"`
	Warnings        []string             `json:"warnings,omitempty"`
	TotalCandidates int                  `json:"total_candidates"`
	Results         []types.RankedResult `json:"results"`
	CreatedAt       time.Time            `json:"created_at"`
}

// RunSummary is a lightweight view of a run for listing
type RunSummary struct {
	ID              uuid.UUID `json:"id"`
	Mode            string    `json:"mode"`
	ConfigName      string    `json:"config_name"`
	TotalCandidates int       `json:"total_candidates"`
	TopCandidate    string    `json:"top_candidate,omitempty"`
	TopScore        float64   `json:"top_score,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
