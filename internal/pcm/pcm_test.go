package pcm

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func sineClip(rate, n int) *Clip {
	c := &Clip{SampleRate: rate, Samples: make([]float32, n)}
	for i := range c.Samples {
		c.Samples[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(rate)))
	}
	return c
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.wav", FormatWAV},
		{"dir/B.WAV", FormatWAV},
		{"x.aiff", FormatAIFF},
		{"x.aif", FormatAIFF},
		{"song.mp3", FormatMP3},
		{"song.ogg", FormatVorbis},
		{"frames.isac", FormatUnknown},
		{"noext", FormatUnknown},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := sineClip(16000, 1000)

	for _, name := range []string{"clip.wav", "clip.aiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.SampleRate != want.SampleRate {
				t.Errorf("SampleRate = %d, want %d", got.SampleRate, want.SampleRate)
			}
			if len(got.Samples) != len(want.Samples) {
				t.Fatalf("got %d samples, want %d", len(got.Samples), len(want.Samples))
			}
			for i := range want.Samples {
				if d := math.Abs(float64(got.Samples[i] - want.Samples[i])); d > 1.0/16384 {
					t.Fatalf("sample %d: got %v, want %v", i, got.Samples[i], want.Samples[i])
				}
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "bad.wav")
	if err := os.WriteFile(garbage, bytes.Repeat([]byte{0x55}, 64), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(filepath.Join(dir, "x.flac")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load(.flac) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
	if _, err := Load(garbage); !errors.Is(err, ErrInvalidFile) {
		t.Errorf("Load(garbage) error = %v, want ErrInvalidFile", err)
	}
	for _, f := range []Format{FormatAIFF, FormatMP3, FormatVorbis} {
		if _, err := Decode(bytes.NewReader(bytes.Repeat([]byte{0x55}, 64)), f); !errors.Is(err, ErrInvalidFile) {
			t.Errorf("Decode(garbage, %v) error = %v, want ErrInvalidFile", f, err)
		}
	}
	if _, err := Decode(bytes.NewReader(nil), FormatUnknown); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Decode(unknown) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSaveErrors(t *testing.T) {
	dir := t.TempDir()
	if err := Save(filepath.Join(dir, "x.mp3"), sineClip(16000, 10)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.mp3) error = %v, want ErrUnsupportedFormat", err)
	}
	if err := Save(filepath.Join(dir, "x.wav"), &Clip{}); !errors.Is(err, ErrInvalidFile) {
		t.Errorf("Save(zero rate) error = %v, want ErrInvalidFile", err)
	}
}

func TestFrames(t *testing.T) {
	c := &Clip{SampleRate: 8000, Samples: []float32{1, 2, 3, 4, 5}}
	frames := c.Frames(2)
	if len(frames) != 3 {
		t.Fatalf("Frames(2) returned %d frames", len(frames))
	}
	if last := frames[2]; last[0] != 5 || last[1] != 0 {
		t.Errorf("last frame = %v, want [5 0]", last)
	}
	if c.Frames(0) != nil {
		t.Errorf("Frames(0) != nil")
	}
	if d := c.Duration(); d != 5.0/8000 {
		t.Errorf("Duration() = %v", d)
	}
}

func TestDownmix(t *testing.T) {
	tests := []struct {
		name     string
		in       []float32
		channels int
		want     []float32
	}{
		{"mono", []float32{0.5, -0.5}, 1, []float32{0.5, -0.5}},
		{"stereo", []float32{1, 0, 0.5, 0.5}, 2, []float32{0.5, 0.5}},
		{"partial frame dropped", []float32{1, 1, 1}, 2, []float32{1}},
		{"quad", []float32{1, 1, -1, -1}, 4, []float32{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := downmix(tt.in, tt.channels)
			if len(got) != len(tt.want) {
				t.Fatalf("downmix() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("downmix()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSampleConversion(t *testing.T) {
	if got := intToFloat([]int{-32768, 16384}, 16); got[0] != -1 || got[1] != 0.5 {
		t.Errorf("intToFloat(16-bit) = %v", got)
	}
	if got := intToFloat([]int{-128, 64}, 8); got[0] != -1 || got[1] != 0.5 {
		t.Errorf("intToFloat(8-bit) = %v", got)
	}
	if got := floatToInt16([]float32{2, -2, 0}); got[0] != 32767 || got[1] != -32767 || got[2] != 0 {
		t.Errorf("floatToInt16 = %v", got)
	}
}
