package arith

import (
	"fmt"

	"github.com/thesyncim/isacfix/piecewise"
)

// envelopeStride returns how many samples share one envelope entry:
// 1 for one entry per sample, 4 for one entry per four samples.
func envelopeStride(samples, envelopes int) (int, bool) {
	switch {
	case envelopes == samples:
		return 1, true
	case envelopes*4 == samples:
		return 4, true
	}
	return 0, false
}

// EncodeLogistic encodes Q7 samples with the piecewise logistic model.
//
// env holds unsigned Q8 magnitude envelopes, one per sample or one per four
// samples. Sample v is coded as the model interval
// [F((v-64)*e), F((v+64)*e)). When the two bounds are less than two counts
// apart the sample lies in a tail the model cannot represent, and it is
// moved one Q7 step (128) toward zero until they separate. A sample is also
// moved toward zero while the decoder's search from the dither's zero level
// would cross a bracket whose bounds coincide. That search starts at the
// grid point in [-63, 64], which matches dither offsets in [-64, 63].
// Clipped values are written back to samples so the caller can reconstruct
// exactly what was coded.
func (e *Encoder) EncodeLogistic(samples []int16, env []uint16) error {
	if err := e.ready(); err != nil {
		return err
	}
	stride, ok := envelopeStride(len(samples), len(env))
	if !ok {
		return fmt.Errorf("%w: %d envelopes for %d samples", ErrInvalidArgument, len(env), len(samples))
	}
	for i, v := range env {
		if v == 0 {
			return fmt.Errorf("%w: zero envelope at %d", ErrInvalidArgument, i)
		}
	}

	for k := range samples {
		envQ8 := env[k/stride]
		v, cdfLo, cdfHi, err := clipOutlier(e.model, samples[k], envQ8)
		if err != nil {
			return err
		}
		samples[k] = v
		if err := e.encodeInterval(cdfLo, cdfHi); err != nil {
			return err
		}
	}
	traceEncode("logistic", e)
	return nil
}

// clipOutlier returns the possibly clipped sample and its model interval.
func clipOutlier(model *piecewise.Table, v int16, envQ8 uint16) (int16, uint32, uint32, error) {
	cdfLo := uint32(model.Evaluate(argQ15(int32(v)-halfStep, envQ8)))
	cdfHi := uint32(model.Evaluate(argQ15(int32(v)+halfStep, envQ8)))

	for n := 0; cdfLo+1 >= cdfHi || !searchable(model, v, envQ8); n++ {
		if n == maxClipSteps {
			return v, 0, 0, fmt.Errorf("%w: model cannot separate levels at envelope %d", ErrInvalidArgument, envQ8)
		}
		if v > 0 {
			v -= quantStep
			cdfHi = cdfLo
			cdfLo = uint32(model.Evaluate(argQ15(int32(v)-halfStep, envQ8)))
		} else {
			v += quantStep
			cdfLo = cdfHi
			cdfHi = uint32(model.Evaluate(argQ15(int32(v)+halfStep, envQ8)))
		}
	}
	return v, cdfLo, cdfHi, nil
}

// zeroLevel returns the grid point congruent to v modulo one Q7 step that
// lies in [-63, 64].
func zeroLevel(v int32) int32 {
	return (v+63)&(quantStep-1) - 63
}

// searchable reports whether DecodeLogistic, starting at the zero level,
// reaches v without stepping through a flat bracket. Walking up it checks
// the brackets of levels 2..n, walking down those of levels -1..n.
func searchable(model *piecewise.Table, v int16, envQ8 uint16) bool {
	z := zeroLevel(int32(v))
	n := (int32(v) - z) / quantStep
	var from, to int32
	switch {
	case n >= 2:
		from, to = 2, n
	case n <= -1:
		from, to = n, -1
	default:
		return true
	}

	edge := z + from*quantStep - halfStep
	prev := model.Evaluate(argQ15(edge, envQ8))
	for l := from; l <= to; l++ {
		edge += quantStep
		cur := model.Evaluate(argQ15(edge, envQ8))
		if cur == prev {
			return false
		}
		prev = cur
	}
	return true
}

// DecodeLogistic decodes len(dst) Q7 samples and returns the consumed
// stream length in bytes.
//
// dither holds the offsets the encoder subtracted after quantizing, so each
// sample lies on the grid -dither[k] + 128*n. The search starts at the
// bracket of n = 0 and walks one step at a time in the direction of the
// first comparison until the bracket containing streamval is found. A walk
// that stops making progress returns ErrRange. dst may alias dither.
// env is the same envelope slice the encoder used.
func (d *Decoder) DecodeLogistic(dst, dither []int16, env []uint16) (int, error) {
	if len(dither) != len(dst) {
		return 0, fmt.Errorf("%w: %d dither values for %d samples", ErrInvalidArgument, len(dither), len(dst))
	}
	stride, ok := envelopeStride(len(dst), len(env))
	if !ok {
		return 0, fmt.Errorf("%w: %d envelopes for %d samples", ErrInvalidArgument, len(env), len(dst))
	}
	if err := d.begin(); err != nil {
		return 0, err
	}

	model := d.model
	for k := range dst {
		envQ8 := env[k/stride]
		width := d.width

		var wLower, wUpper uint32
		var out int32
		cand := -int32(dither[k]) + halfStep
		wTmp := logisticBound(model, width, cand, envQ8)

		if d.streamval > wTmp {
			wLower = wTmp
			cand += quantStep
			wTmp = logisticBound(model, width, cand, envQ8)
			for d.streamval > wTmp {
				wLower = wTmp
				cand += quantStep
				wTmp = logisticBound(model, width, cand, envQ8)
				if wLower == wTmp {
					return 0, ErrRange
				}
			}
			wUpper = wTmp
			out = cand - halfStep
		} else {
			wUpper = wTmp
			cand -= quantStep
			wTmp = logisticBound(model, width, cand, envQ8)
			for d.streamval <= wTmp {
				wUpper = wTmp
				cand -= quantStep
				wTmp = logisticBound(model, width, cand, envQ8)
				if wUpper == wTmp {
					return 0, ErrRange
				}
			}
			wLower = wTmp
			out = cand + halfStep
		}

		if out < -1<<15 || out > 1<<15-1 {
			return 0, ErrRange
		}
		dst[k] = int16(out)

		if err := d.decodeInterval(wLower, wUpper); err != nil {
			return 0, err
		}
	}
	traceDecode("logistic", d)
	return d.Consumed(), nil
}

// logisticBound returns the model CDF at a candidate bracket edge, scaled
// to the current width.
func logisticBound(model *piecewise.Table, width uint32, candQ7 int32, envQ8 uint16) uint32 {
	return scale(width, uint32(model.Evaluate(argQ15(candQ7, envQ8))))
}
