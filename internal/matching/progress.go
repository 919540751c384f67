package matching

// Progress steps
const (
	StepWeights = "weights"
	StepQuery   = "query"
	StepScoring = "scoring"
	StepRanked  = "ranked"
)

// ProgressEvent represents a progress update during a match.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when match progress occurs.
type ProgressCallback func(event ProgressEvent)

func emitProgress(opts *Options, runID, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   runID,
			Content: content,
		})
	}
}
