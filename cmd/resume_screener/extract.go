package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/jonathan/resume-screener/internal/skills"
	"github.com/jonathan/resume-screener/internal/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Print the skills and entities found in a document",
	Long:  "Run the skill matcher and the entity extractor over a resume or job description and print what they find. Useful for checking the vocabulary and the recognizer.",
	RunE:  runExtract,
}

var (
	extractFile       string
	extractText       string
	extractJSON       bool
	extractVocabulary string
	extractAPIKey     string
)

func init() {
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "Path to a text file")
	extractCmd.Flags().StringVar(&extractText, "text", "", "Literal text")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Print JSON instead of a summary")
	extractCmd.Flags().StringVar(&extractVocabulary, "vocabulary", "", "Path to skill vocabulary file")
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if (extractFile == "") == (extractText == "") {
		return fmt.Errorf("exactly one of --file or --text is required")
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("vocabulary") {
		cfg.VocabularyPath = extractVocabulary
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = extractAPIKey
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	text, label := extractText, "text"
	if extractFile != "" {
		data, err := os.ReadFile(extractFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		text, label = string(data), extractFile
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("input is empty")
	}

	var done cleanup
	defer done.run()

	skillMatcher, err := skills.LoadMatcher(cfg.VocabularyPath)
	if err != nil {
		return err
	}
	extractor, err := newExtractor(ctx, cfg, &done)
	if err != nil {
		return err
	}

	resp := types.ExtractionResponse{Skills: skillMatcher.Extract(text)}
	bundle, err := extractor.Extract(ctx, text)
	if err != nil {
		resp.Warnings = append(resp.Warnings, "entity extraction failed: "+err.Error())
		bundle = types.EmptyEntityBundle()
	}
	resp.Entities = bundle

	out := cmd.OutOrStdout()
	if extractJSON {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}

	printer := observability.NewPrinter(out)
	printer.PrintExtraction(label, resp.Skills, resp.Entities)
	printer.PrintWarnings(resp.Warnings)
	return nil
}
