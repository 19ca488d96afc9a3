// Package pcm loads and stores the mono PCM clips the command-line tools
// feed through the frame codec.
package pcm

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies an audio container.
type Format int

const (
	FormatUnknown Format = iota
	FormatWAV
	FormatAIFF
	FormatMP3
	FormatVorbis
)

func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatAIFF:
		return "aiff"
	case FormatMP3:
		return "mp3"
	case FormatVorbis:
		return "vorbis"
	}
	return "unknown"
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return FormatWAV
	case ".aif", ".aiff":
		return FormatAIFF
	case ".mp3":
		return FormatMP3
	case ".ogg", ".oga":
		return FormatVorbis
	}
	return FormatUnknown
}

// Clip is a mono clip with samples in [-1, 1].
type Clip struct {
	SampleRate int
	Samples    []float32
}

// Frames splits the clip into frames of n samples. The last frame is
// zero-padded.
func (c *Clip) Frames(n int) [][]float32 {
	if n <= 0 {
		return nil
	}
	count := (len(c.Samples) + n - 1) / n
	frames := make([][]float32, count)
	for i := range frames {
		f := make([]float32, n)
		copy(f, c.Samples[i*n:])
		frames[i] = f
	}
	return frames
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// downmix averages interleaved channels into one.
func downmix(interleaved []float32, channels int) []float32 {
	if channels <= 1 {
		return interleaved
	}
	frames := len(interleaved) / channels
	out := make([]float32, frames)
	inv := 1 / float32(channels)
	for f := range out {
		var sum float32
		for _, s := range interleaved[f*channels : (f+1)*channels] {
			sum += s
		}
		out[f] = sum * inv
	}
	return out
}

// intToFloat scales integer samples of the given bit depth to [-1, 1).
func intToFloat(data []int, bitDepth int) []float32 {
	if bitDepth <= 0 || bitDepth > 32 {
		bitDepth = 16
	}
	inv := 1 / float32(int64(1)<<(bitDepth-1))
	out := make([]float32, len(data))
	for i, v := range data {
		out[i] = float32(v) * inv
	}
	return out
}

// floatToInt16 clamps and scales samples to 16-bit integers.
func floatToInt16(samples []float32) []int {
	out := make([]int, len(samples))
	for i, x := range samples {
		x = min(max(x, -1), 1)
		out[i] = int(x * 32767)
	}
	return out
}

func checkClip(c *Clip) error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidFile, c.SampleRate)
	}
	return nil
}
