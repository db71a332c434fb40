package display

import "errors"

var (
	// ErrNotFound is returned when a named mode is not in the store.
	ErrNotFound = errors.New("mode not found")

	// ErrMalformedTimings is returned when cvt output does not have the
	// expected modeline shape. It usually means an incompatible cvt version.
	ErrMalformedTimings = errors.New("malformed cvt output")

	// ErrNoOutputs is returned when no connected output is available to
	// take missing parameters or a fallback mode from.
	ErrNoOutputs = errors.New("no connected output found")
)
