package attr

import (
	"errors"
	"fmt"

	"github.com/dhamidi/jattr/internal/binary"
)

var (
	// ErrInvalidElementTag is returned for an element_value tag outside
	// e c [ @ B C D F I J S Z s.
	ErrInvalidElementTag = errors.New("invalid element value tag")

	// ErrInvalidTargetType is returned for an unknown type annotation
	// target_type.
	ErrInvalidTargetType = errors.New("invalid type annotation target")

	// ErrNestingTooDeep is returned when element values or attribute
	// tables nest more than maxNesting levels.
	ErrNestingTooDeep = errors.New("nesting too deep")

	// ErrTableFull is returned when an edit would grow a u2-counted table
	// past maxTableLen entries.
	ErrTableFull = errors.New("attribute table full")

	// ErrConstantType is returned when a pool entry has the wrong type for
	// the element value that references it.
	ErrConstantType = errors.New("constant does not match element value tag")
)

const (
	maxNesting  = 255
	maxTableLen = 0xFFFF
)

// DecodeError wraps any failure while decoding one attribute.
type DecodeError struct {
	Attribute string
	Offset    int
	Err       error
}

func newDecodeError(name string, r *binary.Reader, err error) *DecodeError {
	offset := r.Position()
	// Offsets of nested attributes are relative to their own payload.
	var nested *DecodeError
	var pe *binary.ParseError
	if !errors.As(err, &nested) && errors.As(err, &pe) {
		offset = pe.Position
	}
	return &DecodeError{Attribute: name, Offset: offset, Err: err}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s attribute at offset %d: %v", e.Attribute, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
