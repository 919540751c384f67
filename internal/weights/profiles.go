// Package weights chooses the blend of embedding, skill and entity scores for a query.
//
// Two menus exist. The adaptive selector classifies the job description into one of six
// profiles; the explicit modes are a smaller fixed menu picked by name.
package weights

import (
	"fmt"

	"github.com/jonathan/resume-screener/internal/types"
)

// Adaptive profile names
const (
	ProfileJuniorTechnical    = "junior_technical"
	ProfileMidTechnical       = "mid_technical"
	ProfileSeniorTechnical    = "senior_technical"
	ProfileHighlyTechnical    = "highly_technical"
	ProfileCreativeSoftSkills = "creative_soft_skills"
	ProfileManagement         = "management"
)

var adaptiveProfiles = []types.WeightProfile{
	{Name: ProfileJuniorTechnical, Description: "Fresh grads/juniors - skills + potential", Embedding: 0.55, Skill: 0.35, NER: 0.10},
	{Name: ProfileMidTechnical, Description: "Mid-level - balanced approach", Embedding: 0.50, Skill: 0.35, NER: 0.15},
	{Name: ProfileSeniorTechnical, Description: "Senior roles - experience matters", Embedding: 0.45, Skill: 0.30, NER: 0.25},
	{Name: ProfileHighlyTechnical, Description: "Specialized tech - exact skills critical", Embedding: 0.40, Skill: 0.45, NER: 0.15},
	{Name: ProfileCreativeSoftSkills, Description: "Creative/soft skill roles - overall fit", Embedding: 0.60, Skill: 0.25, NER: 0.15},
	{Name: ProfileManagement, Description: "Leadership roles - experience + fit", Embedding: 0.50, Skill: 0.25, NER: 0.25},
}

// Profiles returns the six adaptive profiles in table order.
func Profiles() []types.WeightProfile {
	out := make([]types.WeightProfile, len(adaptiveProfiles))
	copy(out, adaptiveProfiles)
	return out
}

// Profile looks up an adaptive profile by name.
func Profile(name string) (types.WeightProfile, error) {
	for _, p := range adaptiveProfiles {
		if p.Name == name {
			return p, nil
		}
	}
	return types.WeightProfile{}, fmt.Errorf("unknown weight profile: %s", name)
}
