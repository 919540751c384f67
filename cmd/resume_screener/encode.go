package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/corpus"
	"github.com/jonathan/resume-screener/internal/observability"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Compute embeddings for the candidate corpus",
	Long: `Read a corpus JSON of {id, raw_text, cleaned_text?} candidates, clean any missing text,
embed every candidate in batches and write the encoded corpus back to a file or into PostgreSQL.

A batch that fails to embed is skipped; its candidates are left out of the output and listed in the summary.`,
	RunE: runEncode,
}

var (
	encodeIn          string
	encodeOut         string
	encodeBatchSize   int
	encodeMaxChars    int
	encodeWorkers     int
	encodeToDatabase  bool
	encodeAPIKey      string
	encodeDatabaseURL string
)

func init() {
	encodeCmd.Flags().StringVarP(&encodeIn, "in", "i", "", "Path to corpus JSON (default: corpus_path)")
	encodeCmd.Flags().StringVarP(&encodeOut, "out", "o", "", "Path to write the encoded corpus (default: overwrite --in)")
	encodeCmd.Flags().IntVar(&encodeBatchSize, "batch-size", corpus.DefaultBatchSize, "Texts per embedding call")
	encodeCmd.Flags().IntVar(&encodeMaxChars, "max-chars", corpus.DefaultMaxChars, "Characters of each text to embed")
	encodeCmd.Flags().IntVar(&encodeWorkers, "workers", 0, "Concurrent embedding calls (default: half the CPUs)")
	encodeCmd.Flags().BoolVar(&encodeToDatabase, "to-db", false, "Upsert the encoded candidates into PostgreSQL instead of writing a file")
	encodeCmd.Flags().StringVar(&encodeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	encodeCmd.Flags().StringVar(&encodeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = encodeAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = encodeDatabaseURL
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = encodeWorkers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if encodeToDatabase && cfg.DatabaseURL == "" {
		return fmt.Errorf("--to-db requires a database (set DATABASE_URL or use --db-url)")
	}

	in := encodeIn
	if in == "" {
		in = cfg.CorpusPath
	}
	out := encodeOut
	if out == "" {
		out = in
	}

	raw, err := corpus.ReadFile(in)
	if err != nil {
		return err
	}

	var done cleanup
	defer done.run()

	embedder, err := newEmbedder(ctx, cfg, &done)
	if err != nil {
		return err
	}

	encoder := corpus.NewEncoder(embedder,
		corpus.WithBatchSize(encodeBatchSize),
		corpus.WithMaxChars(encodeMaxChars),
		corpus.WithWorkers(cfg.Workers),
		corpus.WithVerbose(cfg.Verbose),
	)
	model := embeddingModel(cfg)
	encoded, report, err := encoder.EncodeCorpus(ctx, raw, model)
	if err != nil {
		return fmt.Errorf("encoding failed: %w", err)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintEncodeSummary(report.Total, report.Encoded, report.FailedIDs)

	if encodeToDatabase {
		database, err := openDatabase(ctx, cfg, &done)
		if err != nil {
			return err
		}
		if err := database.UpsertCandidates(ctx, model, encoded.Candidates); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Upserted %d candidates into the database\n", len(encoded.Candidates))
		return nil
	}

	if err := corpus.WriteFile(out, encoded); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", out)
	return nil
}
