package events

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("event not found")

// ErrNotManager is returned when an update is attempted by a requester that
// is not the event's manager. Ownership is checked after validation, so a
// submission can be rejected for its content before ownership is considered.
var ErrNotManager = errors.New("requester is not the event manager")

// ErrAuthenticationRequired is returned when an anonymous requester attempts
// an operation that needs an authenticated identity.
var ErrAuthenticationRequired = errors.New("authentication required")

// ValidationError carries every rule violation found in a submission, in the
// order they were detected. It is never produced partially filled: a
// submission either passes all rules or the full failure list is returned.
type ValidationError struct {
	Failures []Failure
}

func (e *ValidationError) Error() string {
	if len(e.Failures) == 0 {
		return "invalid submission"
	}
	parts := make([]string, 0, len(e.Failures))
	for _, failure := range e.Failures {
		if failure.Field != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", failure.Field, failure.Message))
			continue
		}
		parts = append(parts, failure.Message)
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}
