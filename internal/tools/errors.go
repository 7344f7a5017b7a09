package tools

import "errors"

// Errors returned by the line tools.
var (
	// ErrInvalidGeometry indicates truncation settings that cannot produce a line.
	ErrInvalidGeometry = errors.New("invalid truncation geometry")

	// ErrNilFilter indicates Run was called without a filter.
	ErrNilFilter = errors.New("nil filter")
)
