// Package ranking combines embedding similarity, skill overlap and entity bonuses into a
// single hybrid score and orders candidates by it.
package ranking

import (
	"math"
	"strings"

	"github.com/jonathan/resume-screener/internal/parsing"
	"github.com/jonathan/resume-screener/internal/types"
)

// Default weights for the three components
const (
	DefaultEmbeddingWeight = 0.50
	DefaultSkillWeight     = 0.35
	DefaultNERWeight       = 0.15
)

// Skill overlap blend
const (
	coverageWeight = 0.7
	jaccardWeight  = 0.3
)

// Entity bonus contributions; together they add up to 1.0
const (
	experienceMetBonus   = 0.40
	experienceNearBonus  = 0.20
	experienceCloseBonus = 0.10
	titleBonus           = 0.30
	locationBonus        = 0.15
	organizationBonus    = 0.15

	titleMinSharedWords = 2
)

var titleStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"for": true, "with": true, "at": true, "in": true, "on": true,
}

// HybridRanker scores one candidate against one query under a fixed weight profile.
// It is immutable and safe for concurrent use.
type HybridRanker struct {
	profile types.WeightProfile
}

// NewHybridRanker creates a ranker from a weight triple, renormalizing when the sum drifts
// beyond tolerance. Negative or zero-sum weights are rejected.
func NewHybridRanker(embedding, skill, ner float64) (*HybridRanker, error) {
	profile, err := types.NewWeightProfile("custom", "", embedding, skill, ner)
	if err != nil {
		return nil, err
	}
	return &HybridRanker{profile: profile}, nil
}

// NewDefaultRanker creates a ranker with the 0.50 / 0.35 / 0.15 blend.
func NewDefaultRanker() *HybridRanker {
	return &HybridRanker{profile: types.WeightProfile{
		Name:      "default",
		Embedding: DefaultEmbeddingWeight,
		Skill:     DefaultSkillWeight,
		NER:       DefaultNERWeight,
	}}
}

// FromProfile creates a ranker for profile, re-checking its weights.
func FromProfile(profile types.WeightProfile) (*HybridRanker, error) {
	normalized, err := types.NewWeightProfile(profile.Name, profile.Description, profile.Embedding, profile.Skill, profile.NER)
	if err != nil {
		return nil, err
	}
	return &HybridRanker{profile: normalized}, nil
}

// Profile returns the active weights.
func (r *HybridRanker) Profile() types.WeightProfile {
	return r.profile
}

// SkillOverlap returns 0.7*coverage + 0.3*jaccard over the normalized skill sets.
// An empty job skill set scores 0.
func (r *HybridRanker) SkillOverlap(jobSkills, resumeSkills []string) float64 {
	jobSet := parsing.KeySet(jobSkills)
	if len(jobSet) == 0 {
		return 0.0
	}
	resumeSet := parsing.KeySet(resumeSkills)

	intersection := 0
	for skill := range jobSet {
		if resumeSet[skill] {
			intersection++
		}
	}
	union := len(jobSet) + len(resumeSet) - intersection

	coverage := float64(intersection) / float64(len(jobSet))
	jaccard := 0.0
	if union > 0 {
		jaccard = float64(intersection) / float64(union)
	}

	return coverageWeight*coverage + jaccardWeight*jaccard
}

// NERBonus adds independent experience, title, location and organization contributions, capped at 1.0.
func (r *HybridRanker) NERBonus(job, resume types.EntityBundle) float64 {
	bonus := experienceBonus(job.ExperienceYears, resume.ExperienceYears)

	if titlesMatch(job.Titles, resume.Titles) {
		bonus += titleBonus
	}
	if setsIntersect(job.Locations, resume.Locations) {
		bonus += locationBonus
	}
	if setsIntersect(job.Organizations, resume.Organizations) {
		bonus += organizationBonus
	}

	return math.Min(bonus, 1.0)
}

// HybridScore computes the three components and their weighted sum, each rounded to 6 digits.
// The embedding score is used as given.
func (r *HybridRanker) HybridScore(embeddingScore float64, jobSkills, resumeSkills []string, job, resume types.EntityBundle) types.ScoreResult {
	skillOverlap := r.SkillOverlap(jobSkills, resumeSkills)
	nerBonus := r.NERBonus(job, resume)

	final := r.profile.Embedding*embeddingScore +
		r.profile.Skill*skillOverlap +
		r.profile.NER*nerBonus

	return types.ScoreResult{
		Embedding:    round6(embeddingScore),
		SkillOverlap: round6(skillOverlap),
		NERBonus:     round6(nerBonus),
		FinalScore:   round6(final),
	}
}

// MatchedSkills returns the job skills also present in the resume, in job order.
func MatchedSkills(jobSkills, resumeSkills []string) []string {
	resumeSet := parsing.KeySet(resumeSkills)
	seen := make(map[string]bool)
	matched := make([]string, 0)
	for _, skill := range jobSkills {
		key := parsing.NormalizeKey(skill)
		if key == "" || seen[key] || !resumeSet[key] {
			continue
		}
		seen[key] = true
		matched = append(matched, key)
	}
	return matched
}

func experienceBonus(jobYears, resumeYears int) float64 {
	if jobYears <= 0 || resumeYears <= 0 {
		return 0
	}
	switch {
	case resumeYears >= jobYears:
		return experienceMetBonus
	case resumeYears >= jobYears-2:
		return experienceNearBonus
	case resumeYears >= jobYears-4:
		return experienceCloseBonus
	default:
		return 0
	}
}

func titleWords(title string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(title)) {
		if !titleStopWords[w] {
			words[w] = true
		}
	}
	return words
}

// titlesMatch reports whether any job/resume title pair shares at least two non-stop words.
func titlesMatch(jobTitles, resumeTitles []string) bool {
	if len(jobTitles) == 0 || len(resumeTitles) == 0 {
		return false
	}

	resumeWords := make([]map[string]bool, len(resumeTitles))
	for i, title := range resumeTitles {
		resumeWords[i] = titleWords(title)
	}

	for _, jobTitle := range jobTitles {
		jobWords := titleWords(jobTitle)
		for _, words := range resumeWords {
			shared := 0
			for w := range jobWords {
				if words[w] {
					shared++
				}
			}
			if shared >= titleMinSharedWords {
				return true
			}
		}
	}
	return false
}

func setsIntersect(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := parsing.KeySet(a)
	for _, item := range b {
		if set[parsing.NormalizeKey(item)] {
			return true
		}
	}
	return false
}

func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
