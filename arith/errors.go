package arith

import "errors"

// Package-level errors returned by the coder.
var (
	// ErrRange indicates the decoder hit a zero-width interval, walked past
	// the bounds of a CDF table, or found a degenerate logistic bracket.
	// The stream is corrupt or out of sync; the current frame must be dropped.
	ErrRange = errors.New("arith: interval out of range")

	// ErrCapacityExceeded indicates the encoder would write past its
	// configured output capacity. The encoder must be re-initialized.
	ErrCapacityExceeded = errors.New("arith: bitstream capacity exceeded")

	// ErrInvalidArgument indicates a malformed call: mismatched slice
	// lengths, a symbol outside its table, an invalid search size, or a
	// zero envelope.
	ErrInvalidArgument = errors.New("arith: invalid argument")
)
