package pcm

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	outBitDepth  = 16
	wavFormatPCM = 1
)

// Save writes the clip as 16-bit PCM. The format comes from the file
// extension and must be WAV or AIFF.
func Save(path string, c *Clip) (err error) {
	format := FormatFromPath(path)
	if format != FormatWAV && format != FormatAIFF {
		return fmt.Errorf("%w: cannot write %s", ErrUnsupportedFormat, path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if format == FormatAIFF {
		return WriteAIFF(f, c)
	}
	return WriteWAV(f, c)
}

// WriteWAV writes the clip as a mono 16-bit WAV file.
func WriteWAV(w io.WriteSeeker, c *Clip) error {
	if err := checkClip(c); err != nil {
		return err
	}
	enc := wav.NewEncoder(w, c.SampleRate, outBitDepth, 1, wavFormatPCM)
	if err := enc.Write(intBuffer(c)); err != nil {
		return err
	}
	return enc.Close()
}

// WriteAIFF writes the clip as a mono 16-bit AIFF file.
func WriteAIFF(w io.WriteSeeker, c *Clip) error {
	if err := checkClip(c); err != nil {
		return err
	}
	enc := aiff.NewEncoder(w, c.SampleRate, outBitDepth, 1)
	if err := enc.Write(intBuffer(c)); err != nil {
		return err
	}
	return enc.Close()
}

func intBuffer(c *Clip) *audio.IntBuffer {
	return &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: c.SampleRate},
		Data:           floatToInt16(c.Samples),
		SourceBitDepth: outBitDepth,
	}
}
