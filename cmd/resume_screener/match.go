package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/embedding"
	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/matching"
	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/jonathan/resume-screener/internal/output"
	"github.com/jonathan/resume-screener/internal/skills"
	"github.com/jonathan/resume-screener/internal/weights"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank the candidate corpus against a job description",
	Long: `Rank every candidate in the corpus against a job description given as a file, a URL or literal text.

Weight modes: smart (adaptive, default), balanced, skills, experience, embeddings, custom.
All candidates are written to the results directory as JSON and CSV together with the weight configuration; the top-k are printed.`,
	RunE: runMatch,
}

var (
	matchJob         string
	matchJobURL      string
	matchText        string
	matchMode        string
	matchEmbeddingW  float64
	matchSkillW      float64
	matchNERW        float64
	matchTopK        int
	matchWorkers     int
	matchResultsDir  string
	matchCorpus      string
	matchVocabulary  string
	matchAPIKey      string
	matchDatabaseURL string
	matchUseBrowser  bool
	matchSave        bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchJob, "job", "j", "", "Path to job description text file")
	matchCmd.Flags().StringVar(&matchJobURL, "job-url", "", "URL to fetch the job description from")
	matchCmd.Flags().StringVar(&matchText, "text", "", "Job description text")
	matchCmd.Flags().StringVarP(&matchMode, "mode", "m", "", "Weight mode (smart, balanced, skills, experience, embeddings, custom)")
	matchCmd.Flags().Float64Var(&matchEmbeddingW, "embedding-weight", 0, "Embedding weight for custom mode")
	matchCmd.Flags().Float64Var(&matchSkillW, "skill-weight", 0, "Skill weight for custom mode")
	matchCmd.Flags().Float64Var(&matchNERW, "ner-weight", 0, "Entity weight for custom mode")
	matchCmd.Flags().IntVarP(&matchTopK, "top-k", "k", 0, "Number of candidates to print")
	matchCmd.Flags().IntVar(&matchWorkers, "workers", 0, "Parallel scoring workers (default: number of CPUs)")
	matchCmd.Flags().StringVarP(&matchResultsDir, "out-dir", "o", "", "Directory for result files")
	matchCmd.Flags().StringVar(&matchCorpus, "corpus", "", "Path to encoded corpus JSON")
	matchCmd.Flags().StringVar(&matchVocabulary, "vocabulary", "", "Path to skill vocabulary file")
	matchCmd.Flags().StringVar(&matchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	matchCmd.Flags().StringVar(&matchDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	matchCmd.Flags().BoolVar(&matchUseBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")
	matchCmd.Flags().BoolVar(&matchSave, "save", false, "Save the run to the database")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("mode") {
		cfg.WeightMode = matchMode
	}
	if cmd.Flags().Changed("top-k") {
		cfg.TopK = matchTopK
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = matchWorkers
	}
	if cmd.Flags().Changed("out-dir") {
		cfg.ResultsDir = matchResultsDir
	}
	if cmd.Flags().Changed("corpus") {
		cfg.CorpusPath = matchCorpus
	}
	if cmd.Flags().Changed("vocabulary") {
		cfg.VocabularyPath = matchVocabulary
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = matchAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = matchDatabaseURL
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = matchUseBrowser
	}
	applyWeightFlags(cmd, cfg, matchEmbeddingW, matchSkillW, matchNERW)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if matchSave && cfg.DatabaseURL == "" {
		return fmt.Errorf("--save requires a database (set DATABASE_URL or use --db-url)")
	}

	loader := ingestion.NewLoader(cfg.UseBrowser, cfg.Verbose)
	jd, err := loader.Load(ctx, ingestion.JobInput{Path: matchJob, URL: matchJobURL, Text: matchText})
	if err != nil {
		return fmt.Errorf("failed to load job description: %w", err)
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
	embedder, err := newEmbedder(ctx, cfg, &done)
	if err != nil {
		return err
	}
	database, err := openDatabase(ctx, cfg, &done)
	if err != nil {
		return err
	}

	matcher := matching.NewMatcher(corpusStore(database, cfg), skillMatcher, extractor,
		embedding.NewScorer(embedder), weights.NewSelector())

	opts := matching.Options{
		Mode:    weights.ParseMode(cfg.WeightMode),
		Custom:  customWeights(cfg.CustomWeights),
		Workers: cfg.Workers,
		Verbose: cfg.Verbose,
	}
	if cfg.Verbose {
		opts.OnProgress = func(event matching.ProgressEvent) {
			log.Printf("[MATCH] %s: %s", event.Step, event.Message)
		}
	}

	result, err := matcher.Match(ctx, jd.Text, opts)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if cfg.Verbose {
		printer.PrintWeightConfig(result.WeightConfig)
		printer.PrintQueryFeatures(result.Query)
	}
	printer.PrintRankedResults(result.Results, cfg.TopK)
	printer.PrintWarnings(result.Warnings)

	paths, err := output.WriteAll(cfg.ResultsDir, result)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Results: %s\n", paths.ResultsJSON)
	_, _ = fmt.Fprintf(out, "CSV:     %s\n", paths.ResultsCSV)
	_, _ = fmt.Fprintf(out, "Weights: %s\n", paths.WeightConfig)

	if matchSave {
		runID, err := database.SaveMatchRun(ctx, jd.Text, result)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Saved run: %s\n", runID)
	}

	return nil
}
