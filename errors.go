package docgo

import "errors"

var (
	// ErrClosed is returned when an operation is attempted on a closed Engine.
	ErrClosed = errors.New("engine is closed")
)
