package shop

import "errors"

// Sentinel errors. Match with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid input")
)

// ValidationError carries a backend or local validation message verbatim.
// It matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return ErrValidation.Error()
	}
	return e.Message
}

// Is reports ErrValidation as a match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}
