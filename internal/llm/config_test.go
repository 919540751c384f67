package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, float32(0), config.Temperature)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{TierLite: "ner-model"},
	}

	assert.Equal(t, "ner-model", config.GetModel(TierAdvanced))
	assert.Equal(t, "", (&Config{Models: map[ModelTier]string{}}).GetModel(TierLite))
}

func TestWithModel_DoesNotMutateOriginal(t *testing.T) {
	config := DefaultConfig()
	next := config.WithModel(TierLite, "custom-ner")

	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "custom-ner", next.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", next.GetModel(TierStandard))
}
