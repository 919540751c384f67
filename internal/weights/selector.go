package weights

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

// Seniority levels
const (
	SenioritySenior  = "senior"
	SeniorityManager = "manager"
	SeniorityJunior  = "junior"
	SeniorityMid     = "mid"
)

// Role types
const (
	RoleTechnical  = "technical"
	RoleCreative   = "creative"
	RoleManagement = "management"
)

// HighSkillDensity is the keyword count at which a mid-level role is treated as highly technical.
const HighSkillDensity = 10

// SeniorExperienceYears is the required experience that selects the senior profile.
const SeniorExperienceYears = 5

var (
	seniorTerms  = []string{"senior", "sr.", "lead", "principal", "staff", "architect", "head of", "chief", "director", "vp"}
	managerTerms = []string{"manager", "team lead", "engineering manager", "project manager", "product manager", "scrum master"}
	juniorTerms  = []string{"junior", "jr.", "entry level", "entry-level", "intern", "graduate", "trainee", "associate"}

	techRoleTerms     = []string{"engineer", "developer", "programmer", "architect", "devops", "data scientist", "analyst", "ml", "ai", "backend", "frontend", "fullstack", "software"}
	creativeRoleTerms = []string{"designer", "ux", "ui", "creative", "writer", "content", "marketing", "brand", "artist"}
	mgmtRoleTerms     = []string{"manager", "director", "head of", "chief", "vp", "coordinator", "lead", "supervisor"}

	techKeywords = []string{
		"python", "java", "javascript", "c++", "sql", "aws", "azure",
		"docker", "kubernetes", "git", "react", "node", "api",
		"tensorflow", "pytorch", "machine learning", "deep learning",
		"database", "cloud", "microservices", "ci/cd",
	}

	requiredYearsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*(?:years|yrs)`),
		regexp.MustCompile(`(\d+)\s*[-–to]\s*\d+\s*(?:years|yrs)`),
	}
)

// Selection is the outcome of adaptive weight selection.
type Selection struct {
	Profile   types.WeightProfile
	Analysis  types.WeightAnalysis
	Reasoning string
}

// Selector classifies job descriptions into adaptive profiles. It is stateless.
type Selector struct{}

// NewSelector creates a selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Select analyzes text and picks a profile. First matching rule wins:
// management role, creative role, junior, senior or 5+ years, 10+ skill keywords, else mid.
func (s *Selector) Select(text string) Selection {
	analysis := s.Analyze(text)

	var name string
	switch {
	case analysis.RoleType == RoleManagement:
		name = ProfileManagement
	case analysis.RoleType == RoleCreative:
		name = ProfileCreativeSoftSkills
	case analysis.Seniority == SeniorityJunior:
		name = ProfileJuniorTechnical
	case analysis.Seniority == SenioritySenior || analysis.ExperienceYears >= SeniorExperienceYears:
		name = ProfileSeniorTechnical
	case analysis.SkillDensity >= HighSkillDensity:
		name = ProfileHighlyTechnical
	default:
		name = ProfileMidTechnical
	}

	// Every name above is in the table.
	profile, _ := Profile(name)
	analysis.ProfileName = name

	return Selection{
		Profile:   profile,
		Analysis:  analysis,
		Reasoning: Reasoning(analysis, profile),
	}
}

// Analyze runs the four independent classification stages.
func (s *Selector) Analyze(text string) types.WeightAnalysis {
	return types.WeightAnalysis{
		Seniority:       DetectSeniority(text),
		RoleType:        DetectRoleType(text),
		ExperienceYears: ExperienceRequired(text),
		SkillDensity:    CountTechnicalKeywords(text),
	}
}

// DetectSeniority checks senior, then manager, then junior terms. Default is mid.
func DetectSeniority(text string) string {
	lowered := strings.ToLower(text)
	switch {
	case containsAny(lowered, seniorTerms):
		return SenioritySenior
	case containsAny(lowered, managerTerms):
		return SeniorityManager
	case containsAny(lowered, juniorTerms):
		return SeniorityJunior
	default:
		return SeniorityMid
	}
}

// DetectRoleType counts distinct terms from each role list present in text.
// Management needs a strictly higher count than both others; creative needs to beat technical.
func DetectRoleType(text string) string {
	lowered := strings.ToLower(text)
	tech := countPresent(lowered, techRoleTerms)
	creative := countPresent(lowered, creativeRoleTerms)
	mgmt := countPresent(lowered, mgmtRoleTerms)

	switch {
	case mgmt > tech && mgmt > creative:
		return RoleManagement
	case creative > tech:
		return RoleCreative
	default:
		return RoleTechnical
	}
}

// ExperienceRequired returns the largest year figure from "N+ years" or "N-M years" phrases.
func ExperienceRequired(text string) int {
	lowered := strings.ToLower(text)
	best := 0
	for _, re := range requiredYearsPatterns {
		for _, m := range re.FindAllStringSubmatch(lowered, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil && n > best {
				best = n
			}
		}
	}
	return best
}

// CountTechnicalKeywords counts how many keywords appear anywhere in text as substrings.
func CountTechnicalKeywords(text string) int {
	return countPresent(strings.ToLower(text), techKeywords)
}

// Reasoning renders the human-readable explanation of a selection.
func Reasoning(analysis types.WeightAnalysis, profile types.WeightProfile) string {
	var sb strings.Builder
	sb.WriteString("Job Analysis:\n")
	sb.WriteString(fmt.Sprintf("  - Seniority: %s\n", strings.ToUpper(analysis.Seniority)))
	sb.WriteString(fmt.Sprintf("  - Role Type: %s\n", strings.ToUpper(analysis.RoleType)))
	sb.WriteString(fmt.Sprintf("  - Experience Required: %d years\n", analysis.ExperienceYears))
	sb.WriteString(fmt.Sprintf("  - Technical Skills Mentioned: %d\n", analysis.SkillDensity))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Selected Configuration: %s\n", strings.ToUpper(strings.ReplaceAll(profile.Name, "_", " "))))
	sb.WriteString(fmt.Sprintf("  - %s\n", profile.Description))
	sb.WriteString("\n")
	sb.WriteString("Weights Applied:\n")
	sb.WriteString(fmt.Sprintf("  - Embedding (semantic similarity): %s\n", percent(profile.Embedding)))
	sb.WriteString(fmt.Sprintf("  - Skills (technical match): %s\n", percent(profile.Skill)))
	sb.WriteString(fmt.Sprintf("  - NER (experience/entities): %s\n", percent(profile.NER)))
	return sb.String()
}

func percent(w float64) string {
	return fmt.Sprintf("%.0f%%", w*100)
}

func containsAny(lowered string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

func countPresent(lowered string, terms []string) int {
	count := 0
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			count++
		}
	}
	return count
}
