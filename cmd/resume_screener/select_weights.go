package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/jonathan/resume-screener/internal/output"
	"github.com/jonathan/resume-screener/internal/types"
	"github.com/jonathan/resume-screener/internal/weights"
)

var selectWeightsCmd = &cobra.Command{
	Use:   "select-weights",
	Short: "Show the adaptive weight profile chosen for a job description",
	Long:  "Classify a job description by seniority, role type, required experience and technical keyword density, and print the weight profile the smart mode would use.",
	RunE:  runSelectWeights,
}

var (
	selectJob        string
	selectJobURL     string
	selectText       string
	selectOutput     string
	selectUseBrowser bool
)

func init() {
	selectWeightsCmd.Flags().StringVarP(&selectJob, "job", "j", "", "Path to job description text file")
	selectWeightsCmd.Flags().StringVar(&selectJobURL, "job-url", "", "URL to fetch the job description from")
	selectWeightsCmd.Flags().StringVar(&selectText, "text", "", "Job description text")
	selectWeightsCmd.Flags().StringVarP(&selectOutput, "out", "o", "", "Write the weight configuration JSON to this path")
	selectWeightsCmd.Flags().BoolVar(&selectUseBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")

	rootCmd.AddCommand(selectWeightsCmd)
}

func runSelectWeights(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = selectUseBrowser
	}

	loader := ingestion.NewLoader(cfg.UseBrowser, cfg.Verbose)
	jd, err := loader.Load(cmd.Context(), ingestion.JobInput{Path: selectJob, URL: selectJobURL, Text: selectText})
	if err != nil {
		return fmt.Errorf("failed to load job description: %w", err)
	}

	selection := weights.NewSelector().Select(jd.Text)
	analysis := selection.Analysis
	wc := types.WeightConfig{
		Mode:        string(weights.ModeSmart),
		ProfileName: selection.Profile.Name,
		Description: selection.Profile.Description,
		Weights:     selection.Profile.Weights(),
		Reasoning:   selection.Reasoning,
		Analysis:    &analysis,
		Timestamp:   time.Now().UTC(),
	}

	out := cmd.OutOrStdout()
	observability.NewPrinter(out).PrintWeightConfig(wc)
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, selection.Reasoning)

	if selectOutput != "" {
		if err := output.WriteWeightConfig(selectOutput, wc); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Output: %s\n", selectOutput)
	}
	return nil
}
