// Package arith implements the fixed-point arithmetic (range) coder used by
// the iSAC fixed-point speech codec.
//
// The coder keeps a 32-bit interval register per stream: streamval holds the
// bits not yet committed to the output and width (W_upper) is the current
// interval size. Every symbol narrows the interval multiplicatively, and
// whenever the width drops below 2^24 the top byte of streamval is emitted
// and both registers are shifted left by 8 bits.
//
// # Symbol Sources
//
// Two adapters feed intervals into the shared register:
//
//   - Histogram symbols use explicit CDF tables of uint16 values that start
//     at 0 and close at 65535. They are decoded either by bisection (search
//     size a power of two) or by a one-step walk from a caller-supplied
//     starting index.
//   - Logistic samples are signed Q7 amplitudes whose CDF is synthesized per
//     sample from a piecewise-linear table (package piecewise), scaled by an
//     unsigned Q8 envelope. Samples falling in a tail where the model cannot
//     separate adjacent levels are clipped toward zero before coding.
//
// # Wire Format
//
// The output is a sequence of 16-bit words, each holding two bytes with the
// most significant byte written first. The logical byte length may be odd
// and is reported by Encoder.Terminate. A carry out of streamval is
// propagated backward through the emitted words: a byte of 0xFF becomes 0x00
// and passes the carry on, the first smaller byte absorbs it.
//
// # Reading Past the End
//
// Near the end of a stream the decoder's renormalization may need up to
// three bytes more than the encoder emitted. Those bytes are read as zero
// and the read cursor keeps advancing, so Decoder.Consumed reports the same
// length that Terminate returned for the matching encode. This is normal
// behavior and never an error.
//
// # Errors
//
// ErrCapacityExceeded means the encoder ran out of output words. The encoder
// is unusable afterwards; callers typically reduce their data and retry the
// whole frame with a fresh Encoder. ErrRange means the decoder found a
// degenerate interval or walked off a table, which indicates a corrupt or
// mis-synchronized stream.
//
// An Encoder or Decoder must not be shared between goroutines. Use one
// instance per channel and direction.
package arith
