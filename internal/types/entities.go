// Package types provides type definitions for structured data used throughout the resume-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// EntityBundle holds the structured entities extracted from a piece of text.
// All list fields are deduplicated preserving first-seen order.
// ExperienceYears is 0 when no evidence was found.
type EntityBundle struct {
	Titles          []string `json:"titles"`
	Organizations   []string `json:"organizations"`
	Locations       []string `json:"locations"`
	Dates           []string `json:"dates"`
	ExperienceYears int      `json:"experience_years"`
}

// EmptyEntityBundle returns a bundle of empty lists and zero experience.
func EmptyEntityBundle() EntityBundle {
	return EntityBundle{
		Titles:        []string{},
		Organizations: []string{},
		Locations:     []string{},
		Dates:         []string{},
	}
}

// IsEmpty reports whether the bundle carries no entities at all.
func (b EntityBundle) IsEmpty() bool {
	return len(b.Titles) == 0 &&
		len(b.Organizations) == 0 &&
		len(b.Locations) == 0 &&
		len(b.Dates) == 0 &&
		b.ExperienceYears == 0
}
