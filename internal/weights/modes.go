package weights

import (
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

// Mode names how the active weight profile is resolved.
type Mode string

// Weight modes
const (
	ModeSmart      Mode = "smart"
	ModeAdaptive   Mode = "adaptive"
	ModeBalanced   Mode = "balanced"
	ModeSkills     Mode = "skills"
	ModeExperience Mode = "experience"
	ModeEmbeddings Mode = "embeddings"
	ModeCustom     Mode = "custom"
)

var explicitProfiles = []types.WeightProfile{
	{Name: string(ModeBalanced), Description: "Balanced approach - good for most roles", Embedding: 0.50, Skill: 0.35, NER: 0.15},
	{Name: string(ModeSkills), Description: "Skills-focused - for highly technical positions", Embedding: 0.40, Skill: 0.45, NER: 0.15},
	{Name: string(ModeExperience), Description: "Experience-focused - for senior roles", Embedding: 0.45, Skill: 0.30, NER: 0.25},
	{Name: string(ModeEmbeddings), Description: "Semantic fit - for creative/soft skill roles", Embedding: 0.60, Skill: 0.30, NER: 0.10},
}

// ParseMode lower-cases and trims s. The result may not be a known mode.
func ParseMode(s string) Mode {
	return Mode(strings.ToLower(strings.TrimSpace(s)))
}

// IsAdaptive reports whether m asks for the adaptive selector.
func (m Mode) IsAdaptive() bool {
	return m == ModeSmart || m == ModeAdaptive
}

// ExplicitProfile returns the fixed profile for an explicit-named mode.
func ExplicitProfile(mode Mode) (types.WeightProfile, bool) {
	for _, p := range explicitProfiles {
		if p.Name == string(mode) {
			return p, true
		}
	}
	return types.WeightProfile{}, false
}

// ExplicitProfiles returns the explicit-named menu in display order.
func ExplicitProfiles() []types.WeightProfile {
	out := make([]types.WeightProfile, len(explicitProfiles))
	copy(out, explicitProfiles)
	return out
}

// Balanced returns the fallback profile.
func Balanced() types.WeightProfile {
	return explicitProfiles[0]
}

// KnownModes lists every accepted mode name.
func KnownModes() []Mode {
	return []Mode{ModeSmart, ModeAdaptive, ModeBalanced, ModeSkills, ModeExperience, ModeEmbeddings, ModeCustom}
}
