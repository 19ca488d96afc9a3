package frame

// Levels is the number of band levels.
const Levels = 14

// Search parameters for the side-information tables.
const (
	seedHint       = 128
	shiftHint      = 0
	levelBisect    = 16
	deltaHint      = 4
	maxLevelDelta  = 4
	seedSymbols    = 256
	seedCDFEntries = seedSymbols + 1
)

// seedCDF is the flat table for the 8-bit dither seed.
var seedCDF = func() []uint16 {
	cdf := make([]uint16, seedCDFEntries)
	for i := range cdf {
		cdf[i] = uint16((i*65535 + seedSymbols/2) / seedSymbols)
	}
	return cdf
}()

// shiftCDF favors unscaled frames.
var shiftCDF = [...]uint16{0, 52000, 60000, 64000, 65535}

// levelCDF codes the level of the first band, peaked around level 8.
var levelCDF = [Levels + 1]uint16{
	0, 589, 1423, 2763, 5001, 8604, 13947, 21093,
	29623, 38675, 47205, 54351, 59694, 63297, 65535,
}

// deltaCDF codes level changes of -4..4 between adjacent bands.
var deltaCDF = [2*maxLevelDelta + 2]uint16{
	0, 655, 1966, 5898, 16384, 49151, 59637, 63569, 64880, 65535,
}

// invPowerQ16 is the inverse signal power of each level in Q16, scaled so
// that the square root in Q8 maps a sample of that level's spread onto the
// logistic model's unit spread. Level L has a spread of 2^((L-2)/2)
// quantization steps.
var invPowerQ16 = [Levels]int32{
	861184, 430592, 215296, 107648, 53824, 26912, 13456,
	6728, 3364, 1682, 841, 420, 210, 105,
}
