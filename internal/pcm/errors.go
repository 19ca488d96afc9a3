package pcm

import "errors"

var (
	// ErrUnsupportedFormat is returned for file extensions with no decoder.
	ErrUnsupportedFormat = errors.New("pcm: unsupported audio format")

	// ErrInvalidFile is returned when a file does not parse as its format.
	ErrInvalidFile = errors.New("pcm: invalid audio file")
)
