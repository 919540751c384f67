// Package types provides type definitions for structured data used throughout the resume-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// ScoreResult holds the three score components and their weighted combination.
// All fields are rounded to 6 decimal digits.
type ScoreResult struct {
	Embedding    float64 `json:"embedding"`
	SkillOverlap float64 `json:"skill_overlap"`
	NERBonus     float64 `json:"ner_bonus"`
	FinalScore   float64 `json:"final_score"`
}

// RankedResult is one candidate's entry in a ranked result set.
// Field order follows the result output contract.
type RankedResult struct {
	Filename          string   `json:"filename"`
	EmbeddingScore    float64  `json:"embedding_score"`
	SkillOverlap      float64  `json:"skill_overlap"`
	NERBonus          float64  `json:"ner_bonus"`
	FinalScore        float64  `json:"final_score"`
	MatchedSkillCount int      `json:"matched_skill_count"`
	MatchedSkills     []string `json:"matched_skill_names,omitempty"`
	Notes             string   `json:"notes,omitempty"`
	// Index is the candidate's position in the corpus; used as the tie-break.
	Index int `json:"-"`
}

// WeightAnalysis is the audit record of how the adaptive selector classified a query.
type WeightAnalysis struct {
	Seniority       string `json:"seniority"`
	RoleType        string `json:"role_type"`
	ExperienceYears int    `json:"experience_years"`
	SkillDensity    int    `json:"skill_count"`
	ProfileName     string `json:"config_name"`
}

// WeightConfig is the record of the weight profile used for a match.
type WeightConfig struct {
	Mode        string          `json:"mode"`
	ProfileName string          `json:"config_name"`
	Description string          `json:"description,omitempty"`
	Weights     Weights         `json:"weights"`
	Reasoning   string          `json:"reasoning,omitempty"`
	Analysis    *WeightAnalysis `json:"analysis,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}

// QueryFeatures are the skills and entities extracted from the query once per match.
type QueryFeatures struct {
	Skills   []string     `json:"skills"`
	Entities EntityBundle `json:"entities"`
}

// MatchResult is the full output of one matching call.
type MatchResult struct {
	RunID           string         `json:"run_id"`
	WeightConfig    WeightConfig   `json:"weight_config"`
	Query           QueryFeatures  `json:"query"`
	TotalCandidates int            `json:"total_candidates"`
	Results         []RankedResult `json:"results"`
	Warnings        []string       `json:"warnings,omitempty"`
}
