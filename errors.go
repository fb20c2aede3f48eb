package vectorkit

import "errors"

var (
	// ErrInvalidArgument is returned for malformed input, such as a segment
	// built from the wrong number of points.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState is returned when an operation does not fit the current
	// state of a path, such as appending a segment that does not start where
	// the path ends.
	ErrInvalidState = errors.New("invalid state")
)
