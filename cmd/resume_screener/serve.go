package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/embedding"
	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/matching"
	"github.com/jonathan/resume-screener/internal/server"
	"github.com/jonathan/resume-screener/internal/skills"
	"github.com/jonathan/resume-screener/internal/weights"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the matching engine.

Match runs are persisted when a database is configured. Bearer-token auth is enabled when JWT_SECRET is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	jwtCfg, err := config.LoadJWTConfig()
	if err != nil {
		return err
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

	selector := weights.NewSelector()
	srvCfg := server.Config{
		Port:        servePort,
		Matcher:     matching.NewMatcher(corpusStore(database, cfg), skillMatcher, extractor, embedding.NewScorer(embedder), selector),
		Skills:      skillMatcher,
		Extractor:   extractor,
		Selector:    selector,
		Loader:      ingestion.NewLoader(cfg.UseBrowser, cfg.Verbose),
		JWT:         jwtCfg,
		DefaultMode: weights.ParseMode(cfg.WeightMode),
		DefaultTopK: cfg.TopK,
		Workers:     cfg.Workers,
	}
	// Only a non-nil store enables the /runs endpoints.
	if database != nil {
		srvCfg.Runs = database
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
