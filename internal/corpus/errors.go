package corpus

import (
	"errors"
	"fmt"
)

// ErrDataNotFound matches any DataNotFoundError via errors.Is.
var ErrDataNotFound = errors.New("data not found")

// DataNotFoundError reports a missing corpus or missing precomputed embeddings.
type DataNotFoundError struct {
	Resource string
	Message  string
	Cause    error
}

func (e *DataNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("data not found: %s: %s: %v", e.Resource, e.Message, e.Cause)
	}
	return fmt.Sprintf("data not found: %s: %s", e.Resource, e.Message)
}

func (e *DataNotFoundError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrDataNotFound.
func (e *DataNotFoundError) Is(target error) bool {
	return target == ErrDataNotFound
}
