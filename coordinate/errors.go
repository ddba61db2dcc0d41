package coordinate

import (
	"errors"
	"fmt"
)

// ErrInvalidCoordinate is the sentinel wrapped by every parse and validation failure.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// ParseError is returned when a string cannot be parsed into a [Coordinate].
type ParseError struct {
	Input  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v %q: %s: %v", ErrInvalidCoordinate, e.Input, e.Reason, e.Err)
	}

	return fmt.Sprintf("%v %q: %s", ErrInvalidCoordinate, e.Input, e.Reason)
}

// Unwrap exposes both the sentinel and the underlying cause, if any.
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidCoordinate, e.Err}
	}

	return []error{ErrInvalidCoordinate}
}
