package dataset

import "fmt"

// LoadError represents a structurally unusable data file: a missing required
// column, a ragged row, or cell text the loader cannot type. Invalid-but-
// well-typed data is not a LoadError; the rules report it.
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("dataset load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("dataset load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
