package xps

import (
	"errors"
	"fmt"
)

// Errors returned by chunked string operations.
var (
	// ErrOutOfRange indicates an index outside [0, Len).
	ErrOutOfRange = errors.New("index out of range")

	// ErrReservedBits indicates a chunk header with any of its high four bits set.
	ErrReservedBits = errors.New("reserved header bits set")

	// ErrTruncated indicates the input ended inside a chunk or before the
	// header that must follow a full chunk.
	ErrTruncated = errors.New("truncated chunked string")

	// ErrMissingTerminator indicates a short chunk in a stream that was not
	// followed by the zero terminator byte.
	ErrMissingTerminator = errors.New("missing terminator after short chunk")
)

// FormatError describes malformed wire data.
type FormatError struct {
	// Pos is the byte position of the offending header or of the end of input.
	Pos int
	// Header is the offending header byte, when there is one.
	Header byte
	Err    error
}

func (e *FormatError) Error() string {
	if errors.Is(e.Err, ErrTruncated) {
		return fmt.Sprintf("xps: %v at byte %d", e.Err, e.Pos)
	}
	return fmt.Sprintf("xps: %v (header 0x%02x at byte %d)", e.Err, e.Header, e.Pos)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// rangeError reports an out-of-range index with the length it was checked against.
func rangeError(index, length int) error {
	if length < 0 {
		return fmt.Errorf("%w: index %d", ErrOutOfRange, index)
	}
	return fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, index, length)
}
