package domain

import "errors"

var (
	ErrAlertNotFound = errors.New("alert not found")
	ErrUserNotFound  = errors.New("user not found")
)

// ValidationError reports a rejected create/update input. It is
// surfaced synchronously to the caller and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
