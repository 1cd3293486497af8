package codebook

import "fmt"

// SchemaError represents a structurally unusable codebook: the input cannot
// be interpreted at all, as opposed to data that merely fails validation.
type SchemaError struct {
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("codebook schema error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("codebook schema error: %s", e.Message)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}
