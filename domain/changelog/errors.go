package changelog

import (
	"errors"
	"fmt"
)

var (
	// ErrCannotReplayOnDeleted reports a replay ordering violation:
	// a non-Deleted entry arrived for an id whose stream already ended
	// with Deleted.
	ErrCannotReplayOnDeleted = errors.New("changelog: cannot replay on deleted entity")

	// ErrNoChanges reports a diff between two identical entity states.
	ErrNoChanges = errors.New("changelog: no changes detected")
)

// FieldError reports a field value that could not be parsed or
// converted to its declared type during replay.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("changelog: field %q: %s", e.Field, e.Reason)
}
