package entities

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/resume-screener/internal/nlp"
	"github.com/jonathan/resume-screener/internal/nlp/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	recognizer := mock.NewMockRecognizer(
		nlp.Entity{Text: "Acme Corp", Label: nlp.LabelOrg},
		nlp.Entity{Text: "Python", Label: nlp.LabelOrg},
		nlp.Entity{Text: "Python Software Foundation", Label: nlp.LabelOrg},
		nlp.Entity{Text: "Berlin", Label: nlp.LabelGPE},
		nlp.Entity{Text: " AWS ", Label: nlp.LabelLoc},
		nlp.Entity{Text: "Bavaria", Label: nlp.LabelLoc},
		nlp.Entity{Text: "2019", Label: nlp.LabelDate},
		nlp.Entity{Text: "Acme Corp", Label: nlp.LabelOrg},
		nlp.Entity{Text: "acme corp", Label: nlp.LabelOrg},
		nlp.Entity{Text: "Jane", Label: "PERSON"},
	)
	extractor := NewExtractor(recognizer)

	text := "Senior Backend Engineer\nBuilt services at Acme Corp in Berlin with 7+ years of Python."
	bundle, err := extractor.Extract(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, []string{"senior backend engineer"}, bundle.Titles)
	assert.Equal(t, []string{"Acme Corp", "Python Software Foundation", "acme corp"}, bundle.Organizations)
	assert.Equal(t, []string{"Berlin", "Bavaria"}, bundle.Locations)
	assert.Equal(t, []string{"2019"}, bundle.Dates)
	assert.Equal(t, 7, bundle.ExperienceYears)
	assert.Equal(t, 1, recognizer.CallCount())
}

func TestExtractor_EmptyTextSkipsRecognizer(t *testing.T) {
	recognizer := mock.NewMockRecognizer(nlp.Entity{Text: "Acme", Label: nlp.LabelOrg})
	extractor := NewExtractor(recognizer)

	for _, text := range []string{"", "   ", "\n\t"} {
		bundle, err := extractor.Extract(context.Background(), text)
		require.NoError(t, err)
		assert.True(t, bundle.IsEmpty())
		assert.NotNil(t, bundle.Titles)
	}
	assert.Equal(t, 0, recognizer.CallCount())
}

func TestExtractor_RecognizerFailure(t *testing.T) {
	recognizer := &mock.MockRecognizer{
		RecognizeFunc: func(context.Context, string) ([]nlp.Entity, error) {
			return nil, errors.New("model unavailable")
		},
	}

	bundle, err := NewExtractor(recognizer).Extract(context.Background(), "Data Analyst")
	require.Error(t, err)
	assert.True(t, bundle.IsEmpty())
}

func TestExtractor_RepeatedCallsIndependent(t *testing.T) {
	extractor := NewExtractor(mock.NewMockRecognizer(nlp.Entity{Text: "Globex", Label: nlp.LabelOrg}))

	first, err := extractor.Extract(context.Background(), "ML Engineer, 3 years")
	require.NoError(t, err)
	second, err := extractor.Extract(context.Background(), "ML Engineer, 3 years")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	first.Organizations[0] = "mutated"
	assert.Equal(t, "Globex", second.Organizations[0])
}

func TestExtractor_WithRecognizerInput(t *testing.T) {
	var seen string
	recognizer := &mock.MockRecognizer{
		RecognizeFunc: func(_ context.Context, text string) ([]nlp.Entity, error) {
			seen = text
			return nil, nil
		},
	}
	extractor := NewExtractor(recognizer, WithRecognizerInput(strings.ToUpper))

	bundle, err := extractor.Extract(context.Background(), "Data Analyst\n4 years at Initech")
	require.NoError(t, err)
	assert.Equal(t, "DATA ANALYST\n4 YEARS AT INITECH", seen)
	assert.Equal(t, []string{"data analyst"}, bundle.Titles)
	assert.Equal(t, 4, bundle.ExperienceYears)
}
