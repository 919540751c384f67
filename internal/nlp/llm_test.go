package nlp

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-screener/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	response string
	err      error
	prompts  []string
	tiers    []llm.ModelTier
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.tiers = append(s.tiers, tier)
	return s.response, s.err
}

func (s *stubClient) Close() error { return nil }

func TestLLMRecognizer_Recognize(t *testing.T) {
	client := &stubClient{response: "```json\n" + `{"entities": [
		{"text": "Acme Corp", "label": "ORG"},
		{"text": " Berlin ", "label": "gpe"},
		{"text": "Python", "label": "LANGUAGE"},
		{"text": "", "label": "ORG"},
		{"text": "2019", "label": "DATE"}
	]}` + "\n```"}

	r := NewLLMRecognizer(client)
	got, err := r.Recognize(context.Background(), "Engineer at Acme Corp in Berlin since 2019")
	require.NoError(t, err)

	assert.Equal(t, []Entity{
		{Text: "Acme Corp", Label: LabelOrg},
		{Text: "Berlin", Label: LabelGPE},
		{Text: "2019", Label: LabelDate},
	}, got)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Engineer at Acme Corp in Berlin since 2019")
	assert.Equal(t, llm.TierLite, client.tiers[0])
}

func TestLLMRecognizer_EmptyTextSkipsCall(t *testing.T) {
	client := &stubClient{}
	got, err := NewLLMRecognizer(client).Recognize(context.Background(), "  \n ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, client.prompts)
}

func TestLLMRecognizer_ClientError(t *testing.T) {
	client := &stubClient{err: errors.New("quota exceeded")}
	_, err := NewLLMRecognizer(client).WithTier(llm.TierStandard).Recognize(context.Background(), "Acme")
	require.Error(t, err)

	var recErr *RecognitionError
	require.ErrorAs(t, err, &recErr)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, llm.TierStandard, client.tiers[0])
}

func TestLLMRecognizer_MalformedResponse(t *testing.T) {
	client := &stubClient{response: "I could not find any entities."}
	_, err := NewLLMRecognizer(client).Recognize(context.Background(), "Acme")

	var recErr *RecognitionError
	require.ErrorAs(t, err, &recErr)
	assert.Contains(t, recErr.Message, "failed to parse")
}
