package models

import "errors"

var (
	// ErrNotFound is returned by writes that matched no document.
	// Reads signal "missing" with a nil result instead.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a create or update violates the
	// unique (title, volume) constraint.
	ErrDuplicate = errors.New("already exists")
)

// ValidationError reports a construction-time invariant failure.
// It never originates from storage.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
