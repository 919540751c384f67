package matching

import (
	"fmt"
	"log"
	"time"

	"github.com/jonathan/resume-screener/internal/types"
	"github.com/jonathan/resume-screener/internal/weights"
)

// CustomWeights is a caller-supplied weight triple. Nil fields are missing keys.
type CustomWeights struct {
	Embedding *float64 `json:"embedding"`
	Skill     *float64 `json:"skill"`
	NER       *float64 `json:"ner"`
}

// NewCustomWeights builds a complete triple.
func NewCustomWeights(embedding, skill, ner float64) *CustomWeights {
	return &CustomWeights{Embedding: &embedding, Skill: &skill, NER: &ner}
}

func (c *CustomWeights) complete() bool {
	return c != nil && c.Embedding != nil && c.Skill != nil && c.NER != nil
}

// Resolution is the active weight profile plus the audit record of how it was chosen.
type Resolution struct {
	Profile  types.WeightProfile
	Config   types.WeightConfig
	Warnings []string
}

// ResolveWeights picks the weight profile for a match.
//
// Adaptive modes run the selector over query; explicit modes use the fixed
// menu; custom uses the caller's triple. Unknown modes, adaptive mode without
// a selector, and custom weights with missing keys fall back to balanced with a
// warning. Custom weights that are negative or sum to zero are an error.
// Custom weights passed with any other mode are ignored with a warning.
func ResolveWeights(mode weights.Mode, custom *CustomWeights, selector *weights.Selector, query string) (*Resolution, error) {
	res := &Resolution{}
	if custom != nil && mode != weights.ModeCustom {
		msg := fmt.Sprintf("custom weights ignored in %q mode; set the mode to custom to use them", string(mode))
		log.Printf("[MATCH] Warning: %s", msg)
		res.Warnings = append(res.Warnings, msg)
	}
	fallback := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		log.Printf("[MATCH] Warning: %s", msg)
		res.Warnings = append(res.Warnings, msg)
		mode = weights.ModeBalanced
		res.Profile = weights.Balanced()
	}

	switch {
	case mode.IsAdaptive() && selector != nil:
		selection := selector.Select(query)
		analysis := selection.Analysis
		res.Profile = selection.Profile
		res.Config.Reasoning = selection.Reasoning
		res.Config.Analysis = &analysis
	case mode.IsAdaptive():
		fallback("adaptive weight selection unavailable, using balanced weights")
	case mode == weights.ModeCustom:
		if !custom.complete() {
			fallback("custom weights require embedding, skill and ner; using balanced weights")
			break
		}
		profile, err := types.NewWeightProfile(string(weights.ModeCustom), "Caller-supplied weights", *custom.Embedding, *custom.Skill, *custom.NER)
		if err != nil {
			return nil, err
		}
		res.Profile = profile
	default:
		profile, ok := weights.ExplicitProfile(mode)
		if !ok {
			fallback("unknown weight mode %q, using balanced weights", string(mode))
			break
		}
		res.Profile = profile
	}

	res.Config.Mode = string(mode)
	res.Config.ProfileName = res.Profile.Name
	res.Config.Description = res.Profile.Description
	res.Config.Weights = res.Profile.Weights()
	res.Config.Timestamp = time.Now().UTC()
	return res, nil
}
