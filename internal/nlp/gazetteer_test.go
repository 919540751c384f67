package nlp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGazetteer_Recognize(t *testing.T) {
	g := NewGazetteer(GazetteerData{
		Organizations: []string{"Acme Corp", "Globex"},
	})

	text := "Data Engineer at ACME Corp, New York. Previously Globex in Berlin, Jan 2018 to 2021."
	got, err := g.Recognize(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, []Entity{
		{Text: "ACME Corp", Label: LabelOrg},
		{Text: "New York", Label: LabelGPE},
		{Text: "Globex", Label: LabelOrg},
		{Text: "Berlin", Label: LabelGPE},
		{Text: "Jan 2018", Label: LabelDate},
		{Text: "2021", Label: LabelDate},
	}, got)
}

func TestGazetteer_TokenBoundaries(t *testing.T) {
	g := NewGazetteer(GazetteerData{Organizations: []string{"Meta"}})

	got, err := g.Recognize(context.Background(), "Worked on metadata pipelines")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGazetteer_EmptyText(t *testing.T) {
	got, err := NewGazetteer(GazetteerData{}).Recognize(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGazetteer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGazetteer(GazetteerData{}).Recognize(ctx, "London")
	var recErr *RecognitionError
	assert.ErrorAs(t, err, &recErr)
}

func TestLoadGazetteer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gazetteer.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"organizations": ["Initech"], "locations": ["Springfield"]}`), 0644))

	g, err := LoadGazetteer(path)
	require.NoError(t, err)

	got, err := g.Recognize(context.Background(), "Initech, Springfield")
	require.NoError(t, err)
	assert.Equal(t, []Entity{
		{Text: "Initech", Label: LabelOrg},
		{Text: "Springfield", Label: LabelGPE},
	}, got)

	_, err = LoadGazetteer(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
