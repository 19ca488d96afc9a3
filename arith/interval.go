package arith

// Interval register constants.
const (
	// widthTopMask selects the top byte of the width register. Outside an
	// update at least one bit in it is set, i.e. width >= 2^24.
	widthTopMask = 0xFF000000

	// terminateSplit decides how many bytes Terminate flushes and which
	// offset Consumed subtracts.
	terminateSplit = 0x01FFFFFF

	// cdfTop is the closing entry of every histogram CDF table. A one-step
	// walk that tries to move past it has run off the table.
	cdfTop = 65535

	// Logistic samples are Q7 integers spaced one quantization step apart.
	// A sample v owns the bracket [v-halfStep, v+halfStep].
	quantStep = 128
	halfStep  = 64

	// maxClipSteps bounds the outlier clipping walk: more steps than there
	// are Q7 levels in an int16 means the model cannot separate levels
	// around zero for this envelope.
	maxClipSteps = 1 << 16 / quantStep
)

// scale returns the width scaled by a 16-bit CDF value, split into high and
// low halves so the 32x16 product never needs 64 bits.
func scale(width, cdf uint32) uint32 {
	return (width>>16)*cdf + ((width&0xFFFF)*cdf)>>16
}

// argQ15 forms the logistic model argument from a Q7 amplitude and a Q8
// envelope, saturating instead of wrapping. The fixed-point reference
// truncates the amplitude to int16 before a 16x16 multiply, so results
// differ only for amplitudes within one half step of the int16 limits.
func argQ15(vQ7 int32, envQ8 uint16) int32 {
	p := int64(vQ7) * int64(envQ8)
	if p > 1<<31-1 {
		return 1<<31 - 1
	}
	if p < -1<<31 {
		return -1 << 31
	}
	return int32(p)
}

// pick returns the shared entry of a one-element slice or the per-position
// entry otherwise. Callers have already checked the lengths.
func pick[T any](s []T, k int) T {
	if len(s) == 1 {
		return s[0]
	}
	return s[k]
}

// sharedOrPerPosition reports whether n side-info entries can serve count
// positions.
func sharedOrPerPosition(n, count int) bool {
	return n == 1 || n == count
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
