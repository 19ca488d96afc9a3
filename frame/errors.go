package frame

import "errors"

var (
	// ErrInvalidConfig indicates a Config that fails Validate.
	ErrInvalidConfig = errors.New("frame: invalid config")

	// ErrInvalidFrameSize indicates a PCM slice whose length is not
	// Config.FrameSamples.
	ErrInvalidFrameSize = errors.New("frame: invalid frame size")

	// ErrFrameTooLarge indicates the frame did not fit the payload capacity
	// even at the largest down-scaling shift.
	ErrFrameTooLarge = errors.New("frame: frame exceeds payload capacity")

	// ErrCorruptFrame indicates a payload that does not decode to a valid
	// frame.
	ErrCorruptFrame = errors.New("frame: corrupt frame")
)
