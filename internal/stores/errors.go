package stores

import (
	"errors"
	"fmt"
)

// ErrNotFound covers absent entities and malformed ids.
var ErrNotFound = errors.New("not found")

// ValidationError marks a rejected write: missing or malformed fields and
// duplicate unique keys. Handlers surface it as a 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
