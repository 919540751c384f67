// Package embedding wraps the text-embedding capability and computes cosine similarity
// between a query vector and the candidate corpus.
package embedding

import (
	"context"
	"fmt"
)

// Embedder turns text into fixed-length vectors.
type Embedder interface {
	// EmbedText embeds a single text.
	EmbedText(ctx context.Context, text string) ([]float32, error)
	// EmbedTexts embeds a batch, returning one vector per input in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider names an embedding backend.
type Provider string

// Supported providers
const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// Default models per provider
const (
	DefaultGeminiModel = "text-embedding-004"
	DefaultOpenAIModel = "text-embedding-3-small"
)

// Config selects and configures an embedding backend.
type Config struct {
	Provider Provider
	Model    string
	// Host is the base URL of an OpenAI-compatible server (Ollama, vLLM, OpenAI).
	Host   string
	APIKey string
}

// NewEmbedder creates the embedder named by cfg.Provider.
func NewEmbedder(ctx context.Context, cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		if cfg.Model == "" {
			cfg.Model = DefaultGeminiModel
		}
		return NewGeminiEmbedder(ctx, cfg.APIKey, cfg.Model)
	case ProviderOpenAI:
		if cfg.Model == "" {
			cfg.Model = DefaultOpenAIModel
		}
		return NewOpenAIEmbedder(cfg.Host, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
