// Package types provides type definitions for structured data used throughout the resume-screener system.
package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// WeightsInput is a custom weight triple supplied by an API caller.
// Nil fields are missing keys.
type WeightsInput struct {
	Embedding *float64 `json:"embedding,omitempty"`
	Skill     *float64 `json:"skill,omitempty"`
	NER       *float64 `json:"ner,omitempty"`
}

// MatchRequest is the request body for POST /match.
// Exactly one of Text and URL carries the job description.
type MatchRequest struct {
	Text    string        `json:"text,omitempty" validate:"required_without=URL,excluded_with=URL"`
	URL     string        `json:"url,omitempty" validate:"omitempty,url"`
	Mode    string        `json:"mode,omitempty" validate:"max=32"`
	Weights *WeightsInput `json:"weights,omitempty"`
	TopK    int           `json:"top_k,omitempty" validate:"gte=0,lte=10000"`
	Save    bool          `json:"save,omitempty"`
}

// TextRequest is the request body for POST /weights/select and POST /extract.
type TextRequest struct {
	Text string `json:"text" validate:"required,max=200000"`
}

// SelectionResponse is the response for POST /weights/select.
type SelectionResponse struct {
	Profile   WeightProfile  `json:"profile"`
	Analysis  WeightAnalysis `json:"analysis"`
	Reasoning string         `json:"reasoning"`
}

// ExtractionResponse is the response for POST /extract.
type ExtractionResponse struct {
	Skills   []string     `json:"skills"`
	Entities EntityBundle `json:"entities"`
	Warnings []string     `json:"warnings,omitempty"`
}

// ProfilesResponse is the response for GET /profiles.
type ProfilesResponse struct {
	Modes    []WeightProfile `json:"modes"`
	Adaptive []WeightProfile `json:"adaptive"`
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the TextRequest using the validator.
func (r *TextRequest) Validate() error {
	return validate.Struct(r)
}
