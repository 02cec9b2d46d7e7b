package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record does not exist in the hub's scope,
// including soft-deleted rows on default accessors.
var ErrNotFound = errors.New("record not found")

// ValidationError rejects a request before any mutation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
