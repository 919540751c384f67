package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

// Rank orders results by final score descending; equal scores keep corpus order (Index ascending).
// topK > 0 truncates the result. The input slice is sorted in place.
func Rank(results []types.RankedResult, topK int) []types.RankedResult {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].FinalScore != results[j].FinalScore {
			return results[i].FinalScore > results[j].FinalScore
		}
		return results[i].Index < results[j].Index
	})

	if topK > 0 && topK < len(results) {
		return results[:topK]
	}
	return results
}

// NewRankedResult assembles a result row from a score and its extraction context.
func NewRankedResult(index int, filename string, score types.ScoreResult, matchedSkills []string, job, resume types.EntityBundle) types.RankedResult {
	return types.RankedResult{
		Filename:          filename,
		EmbeddingScore:    score.Embedding,
		SkillOverlap:      score.SkillOverlap,
		NERBonus:          score.NERBonus,
		FinalScore:        score.FinalScore,
		MatchedSkillCount: len(matchedSkills),
		MatchedSkills:     matchedSkills,
		Notes:             generateNotes(score, matchedSkills, job.ExperienceYears, resume.ExperienceYears),
		Index:             index,
	}
}

// generateNotes creates a brief explanation of the score.
func generateNotes(score types.ScoreResult, matchedSkills []string, jobYears, resumeYears int) string {
	var parts []string

	if len(matchedSkills) > 0 {
		if score.SkillOverlap >= 0.7 {
			parts = append(parts, fmt.Sprintf("Strong skill match (%s)", strings.Join(matchedSkills, ", ")))
		} else if score.SkillOverlap >= 0.4 {
			parts = append(parts, fmt.Sprintf("Moderate skill match (%s)", strings.Join(matchedSkills, ", ")))
		} else {
			parts = append(parts, fmt.Sprintf("Weak skill match (%s)", strings.Join(matchedSkills, ", ")))
		}
	} else {
		parts = append(parts, "No skill matches")
	}

	if score.Embedding >= 0.75 {
		parts = append(parts, "High semantic similarity")
	} else if score.Embedding >= 0.5 {
		parts = append(parts, "Medium semantic similarity")
	} else {
		parts = append(parts, "Low semantic similarity")
	}

	if jobYears > 0 && resumeYears > 0 {
		if resumeYears >= jobYears {
			parts = append(parts, "Experience requirement met")
		} else {
			parts = append(parts, fmt.Sprintf("Experience below requirement (%d of %d years)", resumeYears, jobYears))
		}
	}

	return strings.Join(parts, ". ")
}
