package isacfix

import (
	"encoding/binary"
	"math"
)

// SampleFormat specifies the byte layout of streamed PCM.
type SampleFormat int

const (
	// FormatFloat32LE is 32-bit float, little-endian (4 bytes per sample).
	FormatFloat32LE SampleFormat = iota
	// FormatInt16LE is 16-bit signed integer, little-endian (2 bytes per sample).
	FormatInt16LE
)

// BytesPerSample returns the number of bytes per sample for the format,
// or 0 for an unknown format.
func (f SampleFormat) BytesPerSample() int {
	switch f {
	case FormatFloat32LE:
		return 4
	case FormatInt16LE:
		return 2
	}
	return 0
}

func (f SampleFormat) valid() bool {
	return f.BytesPerSample() > 0
}

func float32ToInt16(sample float32) int16 {
	scaled := float64(sample) * 32768.0
	if scaled > 32767.0 {
		return 32767
	}
	if scaled < -32768.0 {
		return -32768
	}
	return int16(math.RoundToEven(scaled))
}

// appendPCM appends samples to dst in format f.
func appendPCM(dst []byte, samples []float32, f SampleFormat) []byte {
	switch f {
	case FormatInt16LE:
		for _, s := range samples {
			dst = binary.LittleEndian.AppendUint16(dst, uint16(float32ToInt16(s)))
		}
	default:
		for _, s := range samples {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(s))
		}
	}
	return dst
}

// parsePCM converts len(dst) samples of data in format f.
func parsePCM(dst []float32, data []byte, f SampleFormat) {
	switch f {
	case FormatInt16LE:
		for i := range dst {
			dst[i] = float32(int16(binary.LittleEndian.Uint16(data[2*i:]))) / 32768
		}
	default:
		for i := range dst {
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
		}
	}
}
