package scheduling

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTime is wrapped by every ParseError.
	ErrInvalidTime = errors.New("invalid time")
	// ErrIncompleteData means the caller has not loaded existing bookings for a
	// person and date yet. No slots are produced until it has.
	ErrIncompleteData = errors.New("existing bookings not loaded")
)

// ParseError reports an unusable time string. It is never fatal: the window or
// slot carrying it is skipped.
type ParseError struct {
	Input  string
	Reason string
}

func newParseError(input, reason string) *ParseError {
	return &ParseError{Input: input, Reason: reason}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse time %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrInvalidTime }

// InputError is a programmer error: a missing identifier or an impossible argument.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
