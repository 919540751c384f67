package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiEmbedder implements Embedder with the Gemini embedding API.
type GeminiEmbedder struct {
	client *genai.Client
	model  *genai.EmbeddingModel
}

// NewGeminiEmbedder creates an embedder for model
func NewGeminiEmbedder(ctx context.Context, apiKey, model string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	em := client.EmbeddingModel(model)
	em.TaskType = genai.TaskTypeSemanticSimilarity

	return &GeminiEmbedder{client: client, model: em}, nil
}

// EmbedText embeds one text. Empty text is sent as-is.
func (g *GeminiEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	res, err := g.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, &Error{Message: "embed request failed", Cause: err}
	}
	if res.Embedding == nil {
		return nil, &Error{Message: "empty embedding in response"}
	}
	return res.Embedding.Values, nil
}

// EmbedTexts embeds texts with a single batch request.
func (g *GeminiEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	batch := g.model.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	res, err := g.model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, &Error{Message: "batch embed request failed", Cause: err}
	}
	if len(res.Embeddings) != len(texts) {
		return nil, &Error{Message: fmt.Sprintf("batch returned %d embeddings for %d texts", len(res.Embeddings), len(texts))}
	}

	out := make([][]float32, len(texts))
	for i, emb := range res.Embeddings {
		if emb == nil {
			return nil, &Error{Message: fmt.Sprintf("missing embedding at index %d", i)}
		}
		out[i] = emb.Values
	}
	return out, nil
}

// Close releases the underlying client
func (g *GeminiEmbedder) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
