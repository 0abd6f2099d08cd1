package booking

import (
	"errors"
	"fmt"

	"tutorhub/services/scheduling"
)

// ErrNotFound is returned when a requested profile does not exist.
var ErrNotFound = errors.New("not found")

// LoadError reports that a person's bookings could not be fetched. It wraps
// scheduling.ErrIncompleteData so callers fail closed.
type LoadError struct {
	PersonID string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("bookings for %s unavailable: %v", e.PersonID, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{scheduling.ErrIncompleteData, e.Err}
}
