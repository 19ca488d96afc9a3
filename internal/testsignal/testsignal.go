// Package testsignal generates deterministic mono signals for exercising
// the frame codec without audio files.
package testsignal

import (
	"fmt"
	"math"
)

// Signal names accepted by Generate.
const (
	Silence   = "silence"
	Multisine = "multisine"
	Chirp     = "chirp"
	Impulses  = "impulses"
	Speech    = "speech"
	Noise     = "noise"
)

var names = []string{Silence, Multisine, Chirp, Impulses, Speech, Noise}

// Names returns the supported signal names.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Generate returns n samples of the named signal at sampleRate. Output is
// kept within ±0.98.
func Generate(name string, sampleRate, n int) ([]float32, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("testsignal: invalid sample rate %d", sampleRate)
	}
	if n < 0 {
		return nil, fmt.Errorf("testsignal: invalid sample count %d", n)
	}
	switch name {
	case Silence:
		return make([]float32, n), nil
	case Multisine:
		return multisine(sampleRate, n), nil
	case Chirp:
		return chirp(sampleRate, n), nil
	case Impulses:
		return impulses(sampleRate, n), nil
	case Speech:
		return speech(sampleRate, n), nil
	case Noise:
		return noise(n), nil
	}
	return nil, fmt.Errorf("testsignal: unknown signal %q", name)
}

// multisine is three amplitude-modulated tones with a cubic onset.
func multisine(sampleRate, n int) []float32 {
	out := make([]float32, n)
	freqs := [...]float64{440, 1000, 2000}
	mods := [...]float64{1.3, 2.7, 0.9}
	onset := int(0.010 * float64(sampleRate))
	for i := range out {
		t := float64(i) / float64(sampleRate)
		var v float64
		for k, f := range freqs {
			depth := 0.5 + 0.5*math.Sin(2*math.Pi*mods[k]*t)
			v += 0.3 * depth * math.Sin(2*math.Pi*f*t)
		}
		if i < onset {
			frac := float64(i) / float64(onset)
			v *= frac * frac * frac
		}
		out[i] = clip(v)
	}
	return out
}

// chirp sweeps exponentially from 60 Hz to 45% of the sample rate.
func chirp(sampleRate, n int) []float32 {
	out := make([]float32, n)
	duration := float64(n) / float64(sampleRate)
	if duration <= 0 {
		return out
	}
	f0, f1 := 60.0, 0.45*float64(sampleRate)
	k := math.Log(f1/f0) / duration
	ramp := 0.005 * float64(sampleRate)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		phase := 2 * math.Pi * f0 * (math.Exp(k*t) - 1) / k
		env := 0.2 + 0.8*(0.5+0.5*math.Sin(2*math.Pi*0.41*t))
		v := 0.85 * env * math.Sin(phase)
		if float64(i) < ramp {
			v *= float64(i) / ramp
		}
		out[i] = clip(v)
	}
	return out
}

// impulses is a 35 ms click train with a decaying ring and a noise floor.
func impulses(sampleRate, n int) []float32 {
	out := make([]float32, n)
	period := max(int(0.035*float64(sampleRate)), 4)
	ringLen := int(0.015 * float64(sampleRate))
	decay := 0.0035 * float64(sampleRate)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		pos := i % period
		v := 0.0
		if pos == 0 {
			v = 0.92
		}
		if pos < ringLen {
			v += 0.75 * math.Exp(-float64(pos)/decay) * math.Sin(2*math.Pi*540*float64(pos)/float64(sampleRate))
		}
		v += 0.02 * hashNoise(i, 17)
		out[i] = clip(v * (0.6 + 0.4*math.Sin(2*math.Pi*0.19*t)))
	}
	return out
}

// speech mixes a gliding harmonic source with pre-emphasized noise under
// a syllable-rate envelope.
func speech(sampleRate, n int) []float32 {
	out := make([]float32, n)
	var phase, prev float64
	for i := range out {
		t := float64(i) / float64(sampleRate)

		pitch := 95 + 28*math.Sin(2*math.Pi*0.63*t) + 16*math.Sin(2*math.Pi*0.17*t)
		phase += 2 * math.Pi * pitch / float64(sampleRate)
		if phase > 2*math.Pi {
			phase -= 2 * math.Pi
		}
		voiced := math.Sin(phase) + 0.35*math.Sin(2*phase) + 0.2*math.Sin(3*phase)
		voicing := 0.5 + 0.5*math.Sin(2*math.Pi*0.78*t+0.25)
		syllable := 0.25 + 0.75*math.Pow(0.5+0.5*math.Sin(2*math.Pi*3.2*t), 2)

		nz := hashNoise(i, 71)
		high := nz - 0.86*prev
		prev = nz
		mix := voicing*voiced + (1-voicing)*(0.38*high+0.22*math.Sin(2*math.Pi*3200*t))
		out[i] = clip(0.82 * syllable * mix)
	}
	return out
}

// noise is white noise at about -12 dBFS RMS.
func noise(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = clip(0.43 * hashNoise(i, 5))
	}
	return out
}

// hashNoise is a xorshift hash of the sample index mapped to [-1, 1].
func hashNoise(i, salt int) float64 {
	x := uint32(i*1664525 + salt*2246822519)
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return float64(int32(x)) / math.MaxInt32
}

func clip(v float64) float32 {
	return float32(min(max(v, -0.98), 0.98))
}
