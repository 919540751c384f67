package embedding

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIEmbedder implements Embedder against any OpenAI-compatible embedding endpoint.
type OpenAIEmbedder struct {
	embedder embeddings.Embedder
}

// NewOpenAIEmbedder creates an embedder for model served at host.
// An empty apiKey is sent as "none" for local servers that ignore authentication.
func NewOpenAIEmbedder(host, apiKey, model string) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		apiKey = "none"
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithEmbeddingModel(model),
	}
	if host != "" {
		opts = append(opts, openai.WithBaseURL(host))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	// Newlines are kept so the vector reflects the text exactly as stored.
	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(false))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	return &OpenAIEmbedder{embedder: embedder}, nil
}

// EmbedText embeds one text.
func (e *OpenAIEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, &Error{Message: "embed request failed", Cause: err}
	}
	if len(vectors) == 0 {
		return nil, &Error{Message: "embedder returned no vectors"}
	}
	return vectors[0], nil
}

// EmbedTexts embeds a batch of texts.
func (e *OpenAIEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, &Error{Message: "batch embed request failed", Cause: err}
	}
	if len(vectors) != len(texts) {
		return nil, &Error{Message: fmt.Sprintf("batch returned %d embeddings for %d texts", len(vectors), len(texts))}
	}
	return vectors, nil
}
