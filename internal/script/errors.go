package script

import "errors"

// Errors for script execution.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrTimeout is returned when a call runs past its deadline.
	ErrTimeout = errors.New("lua execution timeout")

	// ErrNoFilter is returned when a script does not define the filter function.
	ErrNoFilter = errors.New("script does not define a filter function")

	// ErrBadResult is returned when the filter function returns an unusable value.
	ErrBadResult = errors.New("filter returned a value that is not a string")
)
