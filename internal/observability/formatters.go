// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// tableWidth is the width of the ranked results table
	tableWidth = 92
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintWeightConfig outputs the active weight profile and, for the adaptive mode, the reasoning behind it.
func (p *Printer) PrintWeightConfig(cfg types.WeightConfig) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Mode:     %s\n", cfg.Mode))
	sb.WriteString(fmt.Sprintf("Profile:  %s\n", cfg.ProfileName))
	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf("          %s\n", cfg.Description))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Embedding: %5.1f%%\n", cfg.Weights.Embedding*100))
	sb.WriteString(fmt.Sprintf("Skills:    %5.1f%%\n", cfg.Weights.Skill*100))
	sb.WriteString(fmt.Sprintf("Entities:  %5.1f%%", cfg.Weights.NER*100))

	if cfg.Analysis != nil {
		a := cfg.Analysis
		sb.WriteString("\n\n")
		sb.WriteString(fmt.Sprintf("Seniority:  %s\n", a.Seniority))
		sb.WriteString(fmt.Sprintf("Role type:  %s\n", a.RoleType))
		if a.ExperienceYears > 0 {
			sb.WriteString(fmt.Sprintf("Experience: %d+ years\n", a.ExperienceYears))
		} else {
			sb.WriteString("Experience: not specified\n")
		}
		sb.WriteString(fmt.Sprintf("Technical keywords: %d", a.SkillDensity))
	}

	p.printBox("WEIGHT CONFIGURATION", sb.String())
}

// PrintQueryFeatures outputs the skills and entities extracted from the job description.
func (p *Printer) PrintQueryFeatures(features types.QueryFeatures) {
	var sb strings.Builder
	writeSkills(&sb, features.Skills)
	sb.WriteString("\n")
	writeEntities(&sb, features.Entities)

	p.printBox("JOB DESCRIPTION FEATURES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExtraction outputs a diagnostic summary of the features found in arbitrary text.
func (p *Printer) PrintExtraction(label string, skills []string, entities types.EntityBundle) {
	var sb strings.Builder
	if label != "" {
		sb.WriteString(fmt.Sprintf("Source:   %s\n\n", label))
	}
	writeSkills(&sb, skills)
	sb.WriteString("\n")
	writeEntities(&sb, entities)

	p.printBox("EXTRACTED FEATURES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedResults outputs the top results as a table with the score breakdown.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRankedResults(results []types.RankedResult, topK int) {
	if len(results) == 0 {
		fmt.Fprintln(p.out, "No candidates ranked.")
		return
	}
	if topK <= 0 || topK > len(results) {
		topK = len(results)
	}

	rule := strings.Repeat("=", tableWidth)
	fmt.Fprintln(p.out, rule)
	fmt.Fprintf(p.out, "TOP %d CANDIDATES\n", topK)
	fmt.Fprintln(p.out, rule)
	fmt.Fprintf(p.out, "%-4s %-34s %8s %8s %8s %8s %8s\n", "Rank", "Filename", "Final", "Embed", "Skills", "NER", "Matched")
	fmt.Fprintln(p.out, strings.Repeat("-", tableWidth))

	for i := 0; i < topK; i++ {
		r := results[i]
		name := r.Filename
		if len(name) > 34 {
			name = name[:31] + "..."
		}
		fmt.Fprintf(p.out, "%-4d %-34s %8.3f %8.3f %8.3f %8.3f %8d\n",
			i+1, name, r.FinalScore, r.EmbeddingScore, r.SkillOverlap, r.NERBonus, r.MatchedSkillCount)
		if r.Notes != "" {
			fmt.Fprintf(p.out, "     %s\n", r.Notes)
		}
	}
	fmt.Fprintln(p.out, rule)
}

// PrintWarnings outputs the non-fatal issues collected during a run.
func (p *Printer) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(warnings), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", warnings[i]))
	}
	if len(warnings) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(warnings)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("WARNINGS (%d)", len(warnings)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEncodeSummary outputs how many candidates were embedded.
func (p *Printer) PrintEncodeSummary(total, encoded int, failedIDs []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates: %d\n", total))
	sb.WriteString(fmt.Sprintf("Encoded:    %d\n", encoded))
	sb.WriteString(fmt.Sprintf("Skipped:    %d", total-encoded))
	if len(failedIDs) > 0 {
		shown := failedIDs
		if len(shown) > maxItemsToShow {
			shown = shown[:maxItemsToShow]
		}
		sb.WriteString(fmt.Sprintf("\nFailed:     %s", strings.Join(shown, ", ")))
		if len(failedIDs) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" ... and %d more", len(failedIDs)-maxItemsToShow))
		}
	}

	p.printBox("CORPUS ENCODING", sb.String())
}

func writeSkills(sb *strings.Builder, skills []string) {
	if len(skills) == 0 {
		sb.WriteString("Skills:   none found\n")
		return
	}
	sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(skills)))
	count := min(len(skills), maxItemsToShow*2)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", skills[i]))
	}
	if len(skills) > count {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skills)-count))
	}
}

func writeEntities(sb *strings.Builder, e types.EntityBundle) {
	writeList(sb, "Titles", e.Titles)
	writeList(sb, "Organizations", e.Organizations)
	writeList(sb, "Locations", e.Locations)
	writeList(sb, "Dates", e.Dates)
	if e.ExperienceYears > 0 {
		sb.WriteString(fmt.Sprintf("Experience: %d years\n", e.ExperienceYears))
	} else {
		sb.WriteString("Experience: not specified\n")
	}
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	shown := items
	if len(shown) > 3 {
		shown = shown[:3]
	}
	line := strings.Join(shown, ", ")
	if len(items) > 3 {
		line += fmt.Sprintf(" (+%d)", len(items)-3)
	}
	sb.WriteString(fmt.Sprintf("%s: %s\n", label, line))
}
