package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks request input the caller can fix. Handlers wrap it
// so transport code can map the whole family to a 400 with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
