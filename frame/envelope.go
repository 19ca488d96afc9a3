package frame

import (
	"math"
	"math/bits"
)

const sqrtIterations = 10

// MagnitudeEnvelope converts inverse powers in Q16 to Q8 magnitude
// envelopes by integer Newton iteration.
//
// The estimate carries over from one entry to the next, so runs of equal
// or similar powers converge in one or two steps. The result is at least 1.
func MagnitudeEnvelope(dst []uint16, invPowerQ16 []int32) {
	if len(invPowerQ16) == 0 {
		return
	}
	res := int32(1) << (bits.Len32(uint32(max(invPowerQ16[0], 1))) >> 1)

	for k, in := range invPowerQ16 {
		if in < 1 {
			in = 1
		}
		for i := 0; i < sqrtIterations; i++ {
			next := (in/res + res) >> 1
			if next == res {
				break
			}
			res = max(next, 1)
		}
		dst[k] = uint16(min(max(res, 1), math.MaxUint16))
	}
}

// levelForPower returns the level whose spread is closest to the RMS of
// powerSteps, measured in squared quantization steps.
func levelForPower(powerSteps float64) int {
	if powerSteps <= 0 {
		return 0
	}
	l := int(math.Round(math.Log2(powerSteps) + 2))
	return min(max(l, 0), Levels-1)
}

// bandEnvelope expands per-band levels into one envelope entry per four
// samples. powers is scratch space of the same length as dst.
func bandEnvelope(dst []uint16, powers []int32, levels []int, bandSamples int) {
	perBand := bandSamples / 4
	for b, l := range levels {
		for i := 0; i < perBand; i++ {
			powers[b*perBand+i] = invPowerQ16[l]
		}
	}
	MagnitudeEnvelope(dst, powers)
}
