// Package output writes the artifacts of a match run: ranked results as JSON and CSV,
// and the weight-configuration record.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/types"
	schemafiles "github.com/jonathan/resume-screener/schemas"
)

// Artifact file names written into the results directory
const (
	ResultsJSONFile  = "match_results_hybrid.json"
	ResultsCSVFile   = "match_results_hybrid.csv"
	WeightConfigFile = "weight_config.json"
)

// CSVHeader is the column layout of the results CSV.
var CSVHeader = []string{"filename", "embedding_score", "skill_overlap", "ner_bonus", "final_score", "matched_skill_count", "matched_skill_names"}

// WeightRecord is the persisted weight configuration of a run.
type WeightRecord struct {
	Mode        string                `json:"mode"`
	ProfileName string                `json:"config_name,omitempty"`
	Weights     types.Weights         `json:"weights"`
	Reasoning   string                `json:"reasoning,omitempty"`
	Analysis    *types.WeightAnalysis `json:"analysis,omitempty"`
	Timestamp   string                `json:"timestamp"`
}

// Paths lists the files written by WriteAll.
type Paths struct {
	ResultsJSON  string
	ResultsCSV   string
	WeightConfig string
}

// NewWeightRecord converts a weight configuration into its on-disk record.
func NewWeightRecord(cfg types.WeightConfig) WeightRecord {
	ts := cfg.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return WeightRecord{
		Mode:        cfg.Mode,
		ProfileName: cfg.ProfileName,
		Weights:     cfg.Weights,
		Reasoning:   cfg.Reasoning,
		Analysis:    cfg.Analysis,
		Timestamp:   ts.UTC().Format(time.RFC3339),
	}
}

// WriteAll writes the results JSON, the results CSV and the weight record into dir.
func WriteAll(dir string, result *types.MatchResult) (Paths, error) {
	if result == nil {
		return Paths{}, fmt.Errorf("match result is nil")
	}
	if err := ensureDir(dir); err != nil {
		return Paths{}, err
	}

	paths := Paths{
		ResultsJSON:  filepath.Join(dir, ResultsJSONFile),
		ResultsCSV:   filepath.Join(dir, ResultsCSVFile),
		WeightConfig: filepath.Join(dir, WeightConfigFile),
	}

	if err := WriteResultsJSON(paths.ResultsJSON, result.Results); err != nil {
		return Paths{}, err
	}
	if err := WriteResultsCSV(paths.ResultsCSV, result.Results); err != nil {
		return Paths{}, err
	}
	if err := WriteWeightConfig(paths.WeightConfig, result.WeightConfig); err != nil {
		return Paths{}, err
	}
	return paths, nil
}

// WriteResultsJSON writes the ranked results as an indented JSON array.
func WriteResultsJSON(path string, results []types.RankedResult) error {
	if results == nil {
		results = []types.RankedResult{}
	}
	if err := writeJSON(path, results); err != nil {
		return fmt.Errorf("failed to write match results: %w", err)
	}
	validateArtifact(schemafiles.MatchResults, path, results)
	return nil
}

// WriteResultsCSV writes one row per result with the CSVHeader columns.
// The skill names are joined with "; " in the trailing column.
func WriteResultsCSV(path string, results []types.RankedResult) error {
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := w.Write(csvRow(r)); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", r.Filename, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file %s: %w", path, err)
	}
	return f.Close()
}

// WriteWeightConfig writes the weight record for cfg.
func WriteWeightConfig(path string, cfg types.WeightConfig) error {
	record := NewWeightRecord(cfg)
	if err := writeJSON(path, record); err != nil {
		return fmt.Errorf("failed to write weight config: %w", err)
	}
	validateArtifact(schemafiles.WeightConfig, path, record)
	return nil
}

func csvRow(r types.RankedResult) []string {
	return []string{
		r.Filename,
		formatScore(r.EmbeddingScore),
		formatScore(r.SkillOverlap),
		formatScore(r.NERBonus),
		formatScore(r.FinalScore),
		strconv.Itoa(r.MatchedSkillCount),
		strings.Join(r.MatchedSkills, "; "),
	}
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// validateArtifact checks a written artifact against its schema.
// Output validation is a safety check, so failures are only logged.
func validateArtifact(schemaName, path string, v interface{}) {
	if err := schemas.ValidateValue(schemaName, v); err != nil {
		log.Printf("Warning: output validation failed for %s: %v", path, err)
	}
}
