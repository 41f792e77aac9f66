package record

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is.
var (
	ErrValidation   = errors.New("record: validation failed")
	ErrParse        = errors.New("record: parse failed")
	ErrUnknownField = errors.New("record: unknown field")
)

var (
	ErrTooLong        = fmt.Errorf("%w: string exceeds column max length", ErrValidation)
	ErrOutOfRange     = fmt.Errorf("%w: integer at or above column limit", ErrValidation)
	ErrTypeMismatch   = fmt.Errorf("%w: value type does not match column", ErrValidation)
	ErrSchemaMismatch = fmt.Errorf("%w: schema/values mismatch", ErrValidation)
	ErrUnencodable    = fmt.Errorf("%w: string cannot be written as a text token", ErrValidation)

	ErrTokenCount = fmt.Errorf("%w: unexpected token count", ErrParse)
	ErrBadNumber  = fmt.Errorf("%w: malformed numeric token", ErrParse)
	ErrBadQuote   = fmt.Errorf("%w: unterminated quoted token", ErrParse)
	ErrBadBuffer  = fmt.Errorf("%w: rowcodec buffer underflow/overflow", ErrParse)
)

func unknownField(schema, name string) error {
	return fmt.Errorf("%w: %s has no column %q", ErrUnknownField, schema, name)
}
