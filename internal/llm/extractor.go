package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "EntitySpans")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint shown to the model
	Description string
	Required    bool
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Copy every span exactly as it appears in the text, do not normalize or invent.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// EntitySpansSchema returns the extraction schema for named-entity tagging.
// Labels follow the coarse ORG / GPE / LOC / DATE tag set.
func EntitySpansSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "EntitySpans",
		Description: `You are a named-entity recognizer for resumes and job postings.
Tag every organization, geopolitical place, location and date mentioned in the text.
Use ORG for companies, universities and institutions; GPE for cities, states and countries;
LOC for other physical locations; DATE for dates, years and date ranges.
List entities in the order they appear. Skip anything that is not one of these four labels.`,
		Fields: []SchemaField{
			{
				Name:        "entities",
				Type:        `[{"text": "string", "label": "ORG|GPE|LOC|DATE"}]`,
				Description: "Entity spans copied verbatim with their label",
				Required:    true,
			},
		},
	}
}
