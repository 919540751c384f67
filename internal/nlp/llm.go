package nlp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-screener/internal/llm"
)

// LLMRecognizer tags entities by prompting an LLM with the entity-span schema.
type LLMRecognizer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewLLMRecognizer creates a recognizer over client using the lite tier.
func NewLLMRecognizer(client llm.Client) *LLMRecognizer {
	return &LLMRecognizer{client: client, tier: llm.TierLite}
}

// WithTier returns a copy of the recognizer that uses tier.
func (r *LLMRecognizer) WithTier(tier llm.ModelTier) *LLMRecognizer {
	return &LLMRecognizer{client: r.client, tier: tier}
}

type entityResponse struct {
	Entities []Entity `json:"entities"`
}

// Recognize returns the ORG, GPE, LOC and DATE spans the model finds, in response order.
func (r *LLMRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	prompt := llm.BuildExtractionPrompt(llm.EntitySpansSchema(), text)
	raw, err := r.client.GenerateJSON(ctx, prompt, r.tier)
	if err != nil {
		return nil, &RecognitionError{Message: "entity tagging call failed", Cause: err}
	}

	return parseEntityResponse(raw)
}

func parseEntityResponse(raw string) ([]Entity, error) {
	var resp entityResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &resp); err != nil {
		return nil, &RecognitionError{Message: "failed to parse entity response", Cause: err}
	}

	out := make([]Entity, 0, len(resp.Entities))
	for _, ent := range resp.Entities {
		ent.Label = Label(strings.ToUpper(strings.TrimSpace(string(ent.Label))))
		ent.Text = strings.TrimSpace(ent.Text)
		if ent.Text == "" || !KnownLabel(ent.Label) {
			continue
		}
		out = append(out, ent)
	}
	return out, nil
}
