package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-screener/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintWeightConfig(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintWeightConfig(types.WeightConfig{
		Mode:        "smart",
		ProfileName: "senior_technical",
		Weights:     types.Weights{Embedding: 0.35, Skill: 0.45, NER: 0.20},
		Analysis: &types.WeightAnalysis{
			Seniority:       "senior",
			RoleType:        "technical",
			ExperienceYears: 7,
			SkillDensity:    6,
			ProfileName:     "senior_technical",
		},
	})
	output := buf.String()

	assert.Contains(t, output, "WEIGHT CONFIGURATION")
	assert.Contains(t, output, "senior_technical")
	assert.Contains(t, output, "45.0%")
	assert.Contains(t, output, "Role type:  technical")
	assert.Contains(t, output, "7+ years")
}

func TestPrintWeightConfig_Explicit(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintWeightConfig(types.WeightConfig{
		Mode:        "balanced",
		ProfileName: "balanced",
		Weights:     types.Weights{Embedding: 0.5, Skill: 0.35, NER: 0.15},
	})
	output := buf.String()

	assert.Contains(t, output, "50.0%")
	assert.NotContains(t, output, "Seniority")
}

func TestPrintQueryFeatures(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintQueryFeatures(types.QueryFeatures{
		Skills: []string{"python", "machine learning"},
		Entities: types.EntityBundle{
			Titles:          []string{"Data Scientist"},
			Locations:       []string{"Berlin", "Remote", "London", "Paris"},
			ExperienceYears: 3,
		},
	})
	output := buf.String()

	assert.Contains(t, output, "JOB DESCRIPTION FEATURES")
	assert.Contains(t, output, "Skills (2):")
	assert.Contains(t, output, "machine learning")
	assert.Contains(t, output, "Titles: Data Scientist")
	assert.Contains(t, output, "(+1)")
	assert.Contains(t, output, "Experience: 3 years")
	assert.NotContains(t, output, "Organizations")
}

func TestPrintExtraction_NoSkills(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExtraction("resume.txt", nil, types.EmptyEntityBundle())
	output := buf.String()

	assert.Contains(t, output, "Source:   resume.txt")
	assert.Contains(t, output, "none found")
	assert.Contains(t, output, "not specified")
}

func TestPrintRankedResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	results := []types.RankedResult{
		{Filename: "alice.pdf", FinalScore: 0.81, EmbeddingScore: 0.9, SkillOverlap: 0.7, NERBonus: 0.4, MatchedSkillCount: 4, Notes: "Strong skill match"},
		{Filename: "bob.pdf", FinalScore: 0.52},
		{Filename: "carol.pdf", FinalScore: 0.10},
	}

	p.PrintRankedResults(results, 2)
	output := buf.String()

	assert.Contains(t, output, "TOP 2 CANDIDATES")
	assert.Contains(t, output, "alice.pdf")
	assert.Contains(t, output, "0.810")
	assert.Contains(t, output, "Strong skill match")
	assert.Contains(t, output, "bob.pdf")
	assert.NotContains(t, output, "carol.pdf")
}

func TestPrintRankedResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRankedResults(nil, 5)

	assert.Equal(t, "No candidates ranked.\n", buf.String())
}

func TestPrintWarnings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintWarnings(nil)
	assert.Empty(t, buf.String())

	warnings := make([]string, 7)
	for i := range warnings {
		warnings[i] = "entity extraction failed"
	}
	p.PrintWarnings(warnings)
	output := buf.String()

	assert.Contains(t, output, "WARNINGS (7)")
	assert.Equal(t, 5, strings.Count(output, "⚠"))
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintEncodeSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintEncodeSummary(40, 32, []string{"c1", "c2"})
	output := buf.String()

	assert.Contains(t, output, "CORPUS ENCODING")
	assert.Contains(t, output, "Skipped:    8")
	assert.Contains(t, output, "c1, c2")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
