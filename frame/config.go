// Package frame codes fixed-size blocks of audio samples with the arith
// coder.
//
// A frame payload is one arithmetic-coded stream holding, in order:
//
//	seed    8-bit dither seed             uniform table, one-step decode
//	shift   down-scaling exponent 0..3    fixed table, one-step decode
//	level   level of band 0, 0..13        fixed table, bisection decode
//	deltas  level change per later band   fixed table, one-step decode
//	samples dithered Q7 samples           logistic model
//
// Levels select a per-band magnitude envelope. The encoder quantizes each
// sample to the dithered Q7 grid and the decoder regenerates the same
// dither from the seed, so the reconstruction is the coded grid value.
// When a frame does not fit the payload capacity the encoder halves the
// amplitudes and tries again, up to Config.MaxShift times.
package frame

import (
	"fmt"

	"github.com/thesyncim/isacfix/piecewise"
)

// Limits for Config fields.
const (
	// MaxBands is the largest supported band count.
	MaxBands = 32

	// MaxScale keeps a full-scale sample plus dither inside int16.
	MaxScale = 16384

	// MaxPitchGainQ12 keeps the sparse dither gain non-negative.
	MaxPitchGainQ12 = 2252

	// MaxShift is the largest down-scaling exponent the shift table codes.
	MaxShift = len(shiftCDF) - 2
)

// Config describes the frame layout shared by an Encoder and its Decoder.
type Config struct {
	// FrameSamples is the number of samples per frame. It must be a
	// multiple of 4*Bands.
	FrameSamples int

	// Bands is the number of equal-width level bands per frame.
	Bands int

	// CapacityWords is the payload capacity in 16-bit words.
	CapacityWords int

	// Scale maps a full-scale PCM sample (1.0) to Q7 units.
	Scale int

	// PitchGainQ12 is the average pitch gain that selects the dither
	// pattern: dense below 614, sparse and gain-scaled from there up.
	PitchGainQ12 int

	// MaxShift bounds the down-scaling retries.
	MaxShift int

	// Seed starts the per-frame dither seed sequence.
	Seed uint32

	// Model is the sample CDF. Nil selects piecewise.Logistic.
	Model *piecewise.Table
}

// DefaultConfig returns a configuration for 30 ms frames at 16 kHz with a
// 400-byte payload limit.
func DefaultConfig() Config {
	return Config{
		FrameSamples:  480,
		Bands:         8,
		CapacityWords: 200,
		Scale:         8192,
		PitchGainQ12:  0,
		MaxShift:      3,
	}
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	switch {
	case c.Bands < 1 || c.Bands > MaxBands:
		return fmt.Errorf("%w: bands %d outside [1, %d]", ErrInvalidConfig, c.Bands, MaxBands)
	case c.FrameSamples <= 0 || c.FrameSamples%(4*c.Bands) != 0:
		return fmt.Errorf("%w: %d samples is not a multiple of %d", ErrInvalidConfig, c.FrameSamples, 4*c.Bands)
	case c.CapacityWords < 1:
		return fmt.Errorf("%w: capacity %d words", ErrInvalidConfig, c.CapacityWords)
	case c.Scale < 1 || c.Scale > MaxScale:
		return fmt.Errorf("%w: scale %d outside [1, %d]", ErrInvalidConfig, c.Scale, MaxScale)
	case c.PitchGainQ12 < 0 || c.PitchGainQ12 > MaxPitchGainQ12:
		return fmt.Errorf("%w: pitch gain %d outside [0, %d]", ErrInvalidConfig, c.PitchGainQ12, MaxPitchGainQ12)
	case c.MaxShift < 0 || c.MaxShift > MaxShift:
		return fmt.Errorf("%w: max shift %d outside [0, %d]", ErrInvalidConfig, c.MaxShift, MaxShift)
	}
	if c.Model != nil {
		if err := c.Model.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

func (c Config) bandSamples() int {
	return c.FrameSamples / c.Bands
}

func (c Config) model() *piecewise.Table {
	if c.Model != nil {
		return c.Model
	}
	return piecewise.Logistic()
}
