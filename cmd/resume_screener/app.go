package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/corpus"
	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/embedding"
	"github.com/jonathan/resume-screener/internal/entities"
	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/llm"
	"github.com/jonathan/resume-screener/internal/matching"
	"github.com/jonathan/resume-screener/internal/nlp"
)

// loadSettings reads the --config file, applies the global flags and the environment,
// and fills defaults. Commands apply their own flags before calling Validate.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	cfg.ApplyEnv()

	merged := cfg.MergeWithDefaults(config.Defaults())
	if merged.Verbose && configPath != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Loaded config from: %s\n", configPath)
	}
	return &merged, nil
}

// cleanup collects release functions for the components a command opens.
type cleanup []func()

func (c *cleanup) add(f func()) {
	*c = append(*c, f)
}

func (c cleanup) run() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// newRecognizer builds the entity recognizer named by cfg.NERProvider.
func newRecognizer(ctx context.Context, cfg *config.Config, done *cleanup) (nlp.Recognizer, error) {
	switch cfg.NERProvider {
	case "gazetteer":
		g, err := nlp.LoadGazetteer(cfg.GazetteerPath)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("API key is required for the llm entity recognizer (set GEMINI_API_KEY, use --api-key, or set ner_provider to gazetteer)")
		}
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		done.add(func() { _ = client.Close() })
		return nlp.NewLLMRecognizer(client), nil
	}
}

// newExtractor wires the entity extractor. The recognizer sees the lightly cleaned text.
func newExtractor(ctx context.Context, cfg *config.Config, done *cleanup) (*entities.Extractor, error) {
	recognizer, err := newRecognizer(ctx, cfg, done)
	if err != nil {
		return nil, err
	}
	return entities.NewExtractor(recognizer, entities.WithRecognizerInput(ingestion.CleanForNER)), nil
}

// newEmbedder builds the embedder named by cfg.EmbeddingProvider.
// The OpenAI-compatible provider reads OPENAI_API_KEY; local servers need none.
func newEmbedder(ctx context.Context, cfg *config.Config, done *cleanup) (embedding.Embedder, error) {
	ecfg := embedding.Config{
		Provider: embedding.Provider(cfg.EmbeddingProvider),
		Model:    cfg.EmbeddingModel,
		Host:     cfg.EmbeddingHost,
		APIKey:   cfg.APIKey,
	}
	if ecfg.Provider == embedding.ProviderOpenAI {
		ecfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	embedder, err := embedding.NewEmbedder(ctx, ecfg)
	if err != nil {
		return nil, err
	}
	if c, ok := embedder.(io.Closer); ok {
		done.add(func() { _ = c.Close() })
	}
	return embedder, nil
}

// embeddingModel returns the model name recorded alongside encoded vectors.
func embeddingModel(cfg *config.Config) string {
	if cfg.EmbeddingModel != "" {
		return cfg.EmbeddingModel
	}
	if cfg.EmbeddingProvider == string(embedding.ProviderOpenAI) {
		return embedding.DefaultOpenAIModel
	}
	return embedding.DefaultGeminiModel
}

// openDatabase connects and migrates when a database URL is configured. It returns nil otherwise.
func openDatabase(ctx context.Context, cfg *config.Config, done *cleanup) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	done.add(database.Close)

	if err := database.Migrate(ctx); err != nil {
		return nil, err
	}
	if cfg.Verbose {
		_, _ = fmt.Fprintf(os.Stderr, "[VERBOSE] Using PostgreSQL corpus store\n")
	}
	return database, nil
}

// corpusStore returns the database when one is open, else the corpus file.
func corpusStore(database *db.DB, cfg *config.Config) corpus.Store {
	if database != nil {
		return database
	}
	return corpus.NewFileStore(cfg.CorpusPath)
}

// customWeights converts configured custom weights for the orchestrator.
func customWeights(cw *config.CustomWeights) *matching.CustomWeights {
	if cw == nil {
		return nil
	}
	return &matching.CustomWeights{Embedding: cw.Embedding, Skill: cw.Skill, NER: cw.NER}
}

// applyWeightFlags overrides individual custom weights with the flags that were set.
// The loaded CustomWeights is copied, never modified in place.
func applyWeightFlags(cmd *cobra.Command, cfg *config.Config, embeddingW, skillW, nerW float64) {
	flags := []struct {
		name  string
		value float64
		dst   func(*config.CustomWeights) **float64
	}{
		{"embedding-weight", embeddingW, func(c *config.CustomWeights) **float64 { return &c.Embedding }},
		{"skill-weight", skillW, func(c *config.CustomWeights) **float64 { return &c.Skill }},
		{"ner-weight", nerW, func(c *config.CustomWeights) **float64 { return &c.NER }},
	}

	var cw config.CustomWeights
	if cfg.CustomWeights != nil {
		cw = *cfg.CustomWeights
	}
	changed := false
	for _, f := range flags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v := f.value
		*f.dst(&cw) = &v
		changed = true
	}
	if changed {
		cfg.CustomWeights = &cw
	}
}
