package frame

// Dither generator constants.
const (
	lcgMul = 196314165
	lcgAdd = 907633515

	// densePitchGainQ12 is the pitch gain below which every frame gets the
	// dense dither pattern.
	densePitchGainQ12 = 614
)

// nextSeed advances the dither LCG.
func nextSeed(seed uint32) uint32 {
	return seed*lcgMul + lcgAdd
}

// ditherSample maps a seed to a Q7 dither value in [-64, 63].
func ditherSample(seed uint32) int16 {
	return int16((int32(seed) + 1<<24) >> 25)
}

// GenerateDitherQ7 fills buf with Q7 dither values derived from seed.
//
// Below a pitch gain of 614 (Q12) the samples are taken in groups of three:
// two carry dither and one is zero, and the position of the zero depends on
// the seed. From 614 up only one sample of each pair carries dither, scaled
// down by the pitch gain. Samples left over at the end of buf are zero.
func GenerateDitherQ7(buf []int16, seed uint32, pitchGainQ12 int) {
	clear(buf)
	n := len(buf)

	if pitchGainQ12 < densePitchGainQ12 {
		for k := 0; k < n-2; k += 3 {
			seed = nextSeed(seed)
			d1 := ditherSample(seed)
			seed = nextSeed(seed)
			d2 := ditherSample(seed)

			switch shft := (seed >> 25) & 15; {
			case shft < 5:
				buf[k], buf[k+1] = d1, d2
			case shft < 10:
				buf[k], buf[k+2] = d1, d2
			default:
				buf[k+1], buf[k+2] = d1, d2
			}
		}
		return
	}

	gainQ14 := int32(22528 - 10*pitchGainQ12)
	for k := 0; k < n-1; k += 2 {
		seed = nextSeed(seed)
		d := int32(ditherSample(seed))
		shft := int((seed >> 25) & 1)
		buf[k+shft] = int16((gainQ14*d + 8192) >> 14)
	}
}

// QuantizeQ7 rounds the Q7 value x to the grid -d + 128*n.
func QuantizeQ7(x int32, d int16) int16 {
	return int16(((x + int32(d) + 64) &^ 127) - int32(d))
}
