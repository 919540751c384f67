package nlp

import "fmt"

// RecognitionError represents a failure of the recognition capability
type RecognitionError struct {
	Message string
	Cause   error
}

func (e *RecognitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("recognition error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("recognition error: %s", e.Message)
}

func (e *RecognitionError) Unwrap() error {
	return e.Cause
}
