package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// Load decodes the audio file at path into a mono clip. The format comes
// from the file extension.
func Load(path string) (*Clip, error) {
	format := FormatFromPath(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	clip, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clip, nil
}

// Decode reads a whole stream of the given format into a mono clip.
func Decode(r io.ReadSeeker, format Format) (*Clip, error) {
	switch format {
	case FormatWAV:
		return decodeWAV(r)
	case FormatAIFF:
		return decodeAIFF(r)
	case FormatMP3:
		return decodeMP3(r)
	case FormatVorbis:
		return decodeVorbis(r)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
}

func decodeWAV(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a WAV file", ErrInvalidFile)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	channels := int(dec.NumChans)
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		channels = buf.Format.NumChannels
	}
	clip := &Clip{
		SampleRate: int(dec.SampleRate),
		Samples:    downmix(intToFloat(buf.Data, int(dec.BitDepth)), channels),
	}
	return clip, checkClip(clip)
}

func decodeAIFF(r io.ReadSeeker) (*Clip, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not an AIFF file", ErrInvalidFile)
	}
	dec.ReadInfo()
	format := dec.Format()
	if format == nil {
		return nil, fmt.Errorf("%w: missing COMM chunk", ErrInvalidFile)
	}
	var data []int
	buf := &audio.IntBuffer{Format: format, Data: make([]int, 4096)}
	for {
		n, err := dec.PCMBuffer(buf)
		data = append(data, buf.Data[:n]...)
		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
		}
	}
	clip := &Clip{
		SampleRate: format.SampleRate,
		Samples:    downmix(intToFloat(data, int(dec.BitDepth)), format.NumChannels),
	}
	return clip, checkClip(clip)
}

// decodeMP3 reads go-mp3 output, which is always 16-bit little-endian
// stereo.
func decodeMP3(r io.Reader) (*Clip, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	interleaved := make([]float32, len(raw)/2)
	for i := range interleaved {
		interleaved[i] = float32(int16(binary.LittleEndian.Uint16(raw[2*i:]))) / 32768
	}
	clip := &Clip{SampleRate: dec.SampleRate(), Samples: downmix(interleaved, 2)}
	return clip, checkClip(clip)
}

func decodeVorbis(r io.Reader) (*Clip, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	var interleaved []float32
	buf := make([]float32, 4096*dec.Channels())
	for {
		n, err := dec.Read(buf)
		interleaved = append(interleaved, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
		}
	}
	clip := &Clip{SampleRate: dec.SampleRate(), Samples: downmix(interleaved, dec.Channels())}
	return clip, checkClip(clip)
}
