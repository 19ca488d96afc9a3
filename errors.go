package isacfix

import "errors"

var (
	// ErrInvalidFormat indicates an unknown SampleFormat.
	ErrInvalidFormat = errors.New("isacfix: invalid sample format")

	// ErrInvalidArgument indicates a nil packet source or sink.
	ErrInvalidArgument = errors.New("isacfix: invalid argument")
)
