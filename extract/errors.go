package extract

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is the sentinel matched by every extraction failure.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError reports the first field that could not be extracted.
//
// The underlying parse error (if any) can be accessed via errors.Unwrap.
type MalformedInputError struct {
	Field  string
	Reason string
	cause  error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: field %q %s", e.Field, e.Reason)
}

// Is reports whether target is ErrMalformedInput.
func (e *MalformedInputError) Is(target error) bool { return target == ErrMalformedInput }

func (e *MalformedInputError) Unwrap() error { return e.cause }
