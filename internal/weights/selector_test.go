package weights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-screener/internal/types"
)

func TestSelector_Select(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		profile   string
		seniority string
		roleType  string
	}{
		{
			name:      "senior ml engineer",
			text:      "Senior Software Engineer — Machine Learning, 5+ years, Python, TensorFlow, AWS, Docker, Kubernetes, SQL",
			profile:   ProfileSeniorTechnical,
			seniority: SenioritySenior,
			roleType:  RoleTechnical,
		},
		{
			name:      "management beats senior",
			text:      "Engineering Manager - lead our senior engineers. Reports to the Director.",
			profile:   ProfileManagement,
			seniority: SenioritySenior,
			roleType:  RoleManagement,
		},
		{
			name:      "creative role",
			text:      "UX Designer for our brand and marketing content team",
			profile:   ProfileCreativeSoftSkills,
			seniority: SeniorityMid,
			roleType:  RoleCreative,
		},
		{
			name:      "junior",
			text:      "Junior Backend Developer. Python, SQL.",
			profile:   ProfileJuniorTechnical,
			seniority: SeniorityJunior,
			roleType:  RoleTechnical,
		},
		{
			name:      "experience range without senior keyword",
			text:      "Backend Developer with 3-6 years experience",
			profile:   ProfileSeniorTechnical,
			seniority: SeniorityMid,
			roleType:  RoleTechnical,
		},
		{
			name:      "highly technical",
			text:      "Backend Developer: Python, Java, JavaScript, C++, SQL, AWS, Azure, Docker, Kubernetes, Git, React, Node, REST API, TensorFlow",
			profile:   ProfileHighlyTechnical,
			seniority: SeniorityMid,
			roleType:  RoleTechnical,
		},
		{
			name:      "mid default",
			text:      "Backend Developer working with Python and PostgreSQL, 3 years",
			profile:   ProfileMidTechnical,
			seniority: SeniorityMid,
			roleType:  RoleTechnical,
		},
		{
			name:      "role tie falls back to technical",
			text:      "Senior Engineer and Manager",
			profile:   ProfileSeniorTechnical,
			seniority: SenioritySenior,
			roleType:  RoleTechnical,
		},
	}

	selector := NewSelector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := selector.Select(tt.text)
			assert.Equal(t, tt.profile, sel.Profile.Name)
			assert.Equal(t, tt.profile, sel.Analysis.ProfileName)
			assert.Equal(t, tt.seniority, sel.Analysis.Seniority)
			assert.Equal(t, tt.roleType, sel.Analysis.RoleType)
			assert.NotEmpty(t, sel.Reasoning)
		})
	}
}

func TestSelector_Analyze_SeniorScenario(t *testing.T) {
	analysis := NewSelector().Analyze("Senior Software Engineer — Machine Learning, 5+ years, Python, TensorFlow, AWS, Docker, Kubernetes, SQL")

	assert.Equal(t, types.WeightAnalysis{
		Seniority:       SenioritySenior,
		RoleType:        RoleTechnical,
		ExperienceYears: 5,
		SkillDensity:    7,
	}, analysis)
}

func TestDetectSeniority_Priority(t *testing.T) {
	assert.Equal(t, SenioritySenior, DetectSeniority("Senior Product Manager"))
	assert.Equal(t, SeniorityManager, DetectSeniority("Product Manager"))
	assert.Equal(t, SeniorityJunior, DetectSeniority("Entry-level analyst"))
	assert.Equal(t, SeniorityMid, DetectSeniority("Data analyst"))
}

func TestExperienceRequired(t *testing.T) {
	assert.Equal(t, 5, ExperienceRequired("5+ years of Go"))
	assert.Equal(t, 8, ExperienceRequired("3 yrs Go, 8 years overall"))
	assert.Equal(t, 6, ExperienceRequired("3-6 years"))
	assert.Equal(t, 0, ExperienceRequired("plenty of experience"))
}

func TestCountTechnicalKeywords_Substring(t *testing.T) {
	// "javascript" also counts "java"; "nodejs" counts "node".
	assert.Equal(t, 3, CountTechnicalKeywords("JavaScript and NodeJS"))
	assert.Equal(t, 0, CountTechnicalKeywords(""))
}

func TestReasoning(t *testing.T) {
	sel := NewSelector().Select("Senior Software Engineer, 5+ years")

	assert.Contains(t, sel.Reasoning, "Seniority: SENIOR")
	assert.Contains(t, sel.Reasoning, "Role Type: TECHNICAL")
	assert.Contains(t, sel.Reasoning, "Experience Required: 5 years")
	assert.Contains(t, sel.Reasoning, "Selected Configuration: SENIOR TECHNICAL")
	assert.Contains(t, sel.Reasoning, "Senior roles - experience matters")
	assert.Contains(t, sel.Reasoning, "Embedding (semantic similarity): 45%")
	assert.Contains(t, sel.Reasoning, "Skills (technical match): 30%")
	assert.Contains(t, sel.Reasoning, "NER (experience/entities): 25%")
}

func TestProfiles_SumToOne(t *testing.T) {
	all := append(Profiles(), ExplicitProfiles()...)
	require.Len(t, all, 10)
	for _, p := range all {
		assert.InDelta(t, 1.0, p.Sum(), types.WeightTolerance, p.Name)
		assert.NotEmpty(t, p.Description, p.Name)
	}
}

func TestProfile_Unknown(t *testing.T) {
	_, err := Profile("astronaut")
	assert.Error(t, err)

	p, err := Profile(ProfileManagement)
	require.NoError(t, err)
	assert.Equal(t, 0.25, p.NER)
}

func TestExplicitProfile(t *testing.T) {
	p, ok := ExplicitProfile(ModeSkills)
	require.True(t, ok)
	assert.Equal(t, types.Weights{Embedding: 0.40, Skill: 0.45, NER: 0.15}, p.Weights())

	p, ok = ExplicitProfile(ModeEmbeddings)
	require.True(t, ok)
	assert.Equal(t, 0.60, p.Embedding)

	_, ok = ExplicitProfile(ModeSmart)
	assert.False(t, ok)

	assert.Equal(t, "balanced", Balanced().Name)
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeSmart, ParseMode("  SMART "))
	assert.True(t, ParseMode("adaptive").IsAdaptive())
	assert.False(t, ModeBalanced.IsAdaptive())
}
