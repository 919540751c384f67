// Package config provides configuration loading and validation for the CLI and the HTTP server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Defaults applied by Defaults.
const (
	DefaultVocabularyPath    = "data/skills.txt"
	DefaultCorpusPath        = "data/corpus.json"
	DefaultEmbeddingProvider = "gemini"
	DefaultNERProvider       = "llm"
	DefaultWeightMode        = "smart"
	DefaultResultsDir        = "results"
	DefaultTopK              = 10
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Data
	VocabularyPath string `json:"vocabulary_path,omitempty"` // Skill vocabulary, one phrase per line
	CorpusPath     string `json:"corpus_path,omitempty"`     // Encoded candidate corpus JSON
	DatabaseURL    string `json:"database_url,omitempty" validate:"omitempty,url"`
	GazetteerPath  string `json:"gazetteer_path,omitempty"` // Gazetteer JSON for the offline recognizer

	// Capabilities
	EmbeddingProvider string `json:"embedding_provider,omitempty" validate:"omitempty,oneof=gemini openai"`
	EmbeddingModel    string `json:"embedding_model,omitempty"`
	EmbeddingHost     string `json:"embedding_host,omitempty" validate:"omitempty,url"`
	NERProvider       string `json:"ner_provider,omitempty" validate:"omitempty,oneof=llm gazetteer"`
	APIKey            string `json:"api_key,omitempty"` // Gemini API key

	// Matching
	Workers       int            `json:"workers,omitempty" validate:"gte=0"`
	TopK          int            `json:"top_k,omitempty" validate:"gte=0"`
	WeightMode    string         `json:"weight_mode,omitempty"` // Unknown modes fall back to balanced at match time
	CustomWeights *CustomWeights `json:"custom_weights,omitempty"`

	// Behavior
	ResultsDir string `json:"results_dir,omitempty"`
	UseBrowser bool   `json:"use_browser,omitempty"` // Use headless browser for SPA job pages
	Verbose    bool   `json:"verbose,omitempty"`     // Print detailed debug information
}

// CustomWeights holds the weight triple used by the custom mode.
// Nil fields are missing keys.
type CustomWeights struct {
	Embedding *float64 `json:"embedding,omitempty" validate:"omitempty,gte=0"`
	Skill     *float64 `json:"skill,omitempty" validate:"omitempty,gte=0"`
	NER       *float64 `json:"ner,omitempty" validate:"omitempty,gte=0"`
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		VocabularyPath:    DefaultVocabularyPath,
		CorpusPath:        DefaultCorpusPath,
		EmbeddingProvider: DefaultEmbeddingProvider,
		NERProvider:       DefaultNERProvider,
		WeightMode:        DefaultWeightMode,
		ResultsDir:        DefaultResultsDir,
		TopK:              DefaultTopK,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overlays values from the environment onto empty fields.
// GEMINI_API_KEY, DATABASE_URL and EMBEDDING_HOST are read.
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.EmbeddingHost == "" {
		c.EmbeddingHost = os.Getenv("EMBEDDING_HOST")
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' validation (got %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if strings.EqualFold(c.WeightMode, "custom") && c.CustomWeights == nil {
		return fmt.Errorf("config error: 'custom_weights' is required when 'weight_mode' is custom")
	}

	if c.NERProvider == "gazetteer" && c.GazetteerPath == "" {
		return fmt.Errorf("config error: 'gazetteer_path' is required when 'ner_provider' is gazetteer")
	}

	// Validate file paths exist (if specified)
	if c.GazetteerPath != "" {
		if _, err := os.Stat(c.GazetteerPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: gazetteer file not found: %s", c.GazetteerPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.VocabularyPath == "" {
		result.VocabularyPath = defaults.VocabularyPath
	}
	if result.CorpusPath == "" {
		result.CorpusPath = defaults.CorpusPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GazetteerPath == "" {
		result.GazetteerPath = defaults.GazetteerPath
	}
	if result.EmbeddingProvider == "" {
		result.EmbeddingProvider = defaults.EmbeddingProvider
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.EmbeddingHost == "" {
		result.EmbeddingHost = defaults.EmbeddingHost
	}
	if result.NERProvider == "" {
		result.NERProvider = defaults.NERProvider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.WeightMode == "" {
		result.WeightMode = defaults.WeightMode
	}
	if result.ResultsDir == "" {
		result.ResultsDir = defaults.ResultsDir
	}
	if result.CustomWeights == nil {
		result.CustomWeights = defaults.CustomWeights
	}

	// Int fields: use default if zero
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
