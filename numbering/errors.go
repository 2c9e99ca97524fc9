package numbering

import (
	"errors"
	"fmt"
)

// Resolution errors. All of them are recoverable: callers typically render
// the paragraph without a label and surface a diagnostic.
var (
	ErrUnknownAbstractNumbering = errors.New("numbering: unknown abstract numbering")
	ErrUnknownInstance          = errors.New("numbering: unknown numbering instance")
	ErrUnknownLevel             = errors.New("numbering: unknown level")
	ErrDuplicateDefinition      = errors.New("numbering: duplicate definition")
)

// ErrFormatFallback is wrapped by every FallbackError.
var ErrFormatFallback = errors.New("numbering: format fallback")

// FallbackError reports that a value could not be represented in the
// requested format and was rendered as decimal instead.
type FallbackError struct {
	Format Format
	Value  int
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("numbering: value %d not representable as %q, using decimal", e.Value, e.Format)
}

// Unwrap lets errors.Is match ErrFormatFallback.
func (e *FallbackError) Unwrap() error { return ErrFormatFallback }

func unknownAbstract(id int) error {
	return fmt.Errorf("%w: abstractNumId %d", ErrUnknownAbstractNumbering, id)
}

func unknownInstance(id int) error {
	return fmt.Errorf("%w: numId %d", ErrUnknownInstance, id)
}

func unknownLevel(abstractID, level int) error {
	return fmt.Errorf("%w: abstractNumId %d has no level %d", ErrUnknownLevel, abstractID, level)
}
