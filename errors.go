package glyphs

import (
	"fmt"

	"github.com/zone42/glyphs/extract"
)

// ErrMalformedInput is returned (wrapped) when EncodeText cannot extract all
// three fields from its input.
var ErrMalformedInput = extract.ErrMalformedInput

// ErrInvalidURLConfig indicates a URL template that cannot be parsed.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidURLConfig struct {
	Field string
	Value string
	cause error
}

func (e *ErrInvalidURLConfig) Error() string {
	return fmt.Sprintf("invalid url config: %s %q", e.Field, e.Value)
}

func (e *ErrInvalidURLConfig) Unwrap() error { return e.cause }
