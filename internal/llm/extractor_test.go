package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt_EntitySpans(t *testing.T) {
	prompt := BuildExtractionPrompt(EntitySpansSchema(), "Worked at Acme in Berlin since 2019")

	assert.Contains(t, prompt, "named-entity recognizer")
	assert.Contains(t, prompt, `"entities": [{"text": "string", "label": "ORG|GPE|LOC|DATE"}] (required)`)
	assert.Contains(t, prompt, "Input text:\n\"\"\"\nWorked at Acme in Berlin since 2019\n\"\"\"")
	assert.True(t, strings.HasSuffix(prompt, "\"\"\"\n"))
}

func TestBuildExtractionPrompt_DefaultTypeHint(t *testing.T) {
	schema := ExtractionSchema{
		Description: "Extract.",
		Fields: []SchemaField{
			{Name: "a"},
			{Name: "b", Type: "[\"string\"]", Description: "list"},
		},
	}

	prompt := BuildExtractionPrompt(schema, "x")
	assert.Contains(t, prompt, "  \"a\": string,\n")
	assert.Contains(t, prompt, "  \"b\": [\"string\"] // list\n")
}
