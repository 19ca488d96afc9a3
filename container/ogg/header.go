package ogg

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"

	"github.com/thesyncim/isacfix/frame"
)

const (
	isacHeadMagic   = "ISACHead"
	isacTagsMagic   = "ISACTags"
	isacHeadSize    = 24
	isacHeadVersion = 1

	// DefaultVendor is the vendor string written by DefaultISACTags.
	DefaultVendor = "isacfix"
)

// ISACHead is the identification header. It carries every frame.Config
// field a decoder needs.
type ISACHead struct {
	Version       uint8
	Channels      uint8
	SampleRate    uint32
	FrameSamples  uint16
	Bands         uint8
	CapacityWords uint16
	Scale         uint16
	PitchGainQ12  uint16
	MaxShift      uint8
}

// NewISACHead describes a mono stream coded with cfg.
func NewISACHead(cfg frame.Config, sampleRate uint32) *ISACHead {
	return &ISACHead{
		Version:       isacHeadVersion,
		Channels:      1,
		SampleRate:    sampleRate,
		FrameSamples:  uint16(cfg.FrameSamples),
		Bands:         uint8(cfg.Bands),
		CapacityWords: uint16(cfg.CapacityWords),
		Scale:         uint16(cfg.Scale),
		PitchGainQ12:  uint16(cfg.PitchGainQ12),
		MaxShift:      uint8(cfg.MaxShift),
	}
}

// FrameConfig returns the frame layout the header describes.
func (h *ISACHead) FrameConfig() frame.Config {
	return frame.Config{
		FrameSamples:  int(h.FrameSamples),
		Bands:         int(h.Bands),
		CapacityWords: int(h.CapacityWords),
		Scale:         int(h.Scale),
		PitchGainQ12:  int(h.PitchGainQ12),
		MaxShift:      int(h.MaxShift),
	}
}

// Encode serializes the header.
func (h *ISACHead) Encode() []byte {
	data := make([]byte, isacHeadSize)
	copy(data, isacHeadMagic)
	data[8] = h.Version
	data[9] = h.Channels
	binary.LittleEndian.PutUint32(data[10:14], h.SampleRate)
	binary.LittleEndian.PutUint16(data[14:16], h.FrameSamples)
	data[16] = h.Bands
	binary.LittleEndian.PutUint16(data[17:19], h.CapacityWords)
	binary.LittleEndian.PutUint16(data[19:21], h.Scale)
	binary.LittleEndian.PutUint16(data[21:23], h.PitchGainQ12)
	data[23] = h.MaxShift
	return data
}

// ParseISACHead parses and validates an identification header.
func ParseISACHead(data []byte) (*ISACHead, error) {
	if len(data) < isacHeadSize {
		return nil, fmt.Errorf("%w: head is %d bytes", ErrInvalidHeader, len(data))
	}
	if string(data[:8]) != isacHeadMagic {
		return nil, fmt.Errorf("%w: bad head magic", ErrInvalidHeader)
	}
	h := &ISACHead{
		Version:       data[8],
		Channels:      data[9],
		SampleRate:    binary.LittleEndian.Uint32(data[10:14]),
		FrameSamples:  binary.LittleEndian.Uint16(data[14:16]),
		Bands:         data[16],
		CapacityWords: binary.LittleEndian.Uint16(data[17:19]),
		Scale:         binary.LittleEndian.Uint16(data[19:21]),
		PitchGainQ12:  binary.LittleEndian.Uint16(data[21:23]),
		MaxShift:      data[23],
	}
	if h.Version != isacHeadVersion {
		return nil, fmt.Errorf("%w: version %d", ErrInvalidHeader, h.Version)
	}
	if h.Channels != 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidHeader, h.Channels)
	}
	if err := h.FrameConfig().Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	return h, nil
}

// ISACTags is the comment header.
type ISACTags struct {
	Vendor   string
	Comments map[string]string
}

// DefaultISACTags returns tags with the package vendor string and no
// comments.
func DefaultISACTags() *ISACTags {
	return &ISACTags{Vendor: DefaultVendor, Comments: map[string]string{}}
}

// Encode serializes the tags. Comments are written in key order.
func (t *ISACTags) Encode() []byte {
	data := make([]byte, 0, 16+len(t.Vendor))
	data = append(data, isacTagsMagic...)
	data = binary.LittleEndian.AppendUint32(data, uint32(len(t.Vendor)))
	data = append(data, t.Vendor...)
	data = binary.LittleEndian.AppendUint32(data, uint32(len(t.Comments)))
	keys := make([]string, 0, len(t.Comments))
	for k := range t.Comments {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		c := k + "=" + t.Comments[k]
		data = binary.LittleEndian.AppendUint32(data, uint32(len(c)))
		data = append(data, c...)
	}
	return data
}

// ParseISACTags parses a comment header. Comments without '=' are
// ignored.
func ParseISACTags(data []byte) (*ISACTags, error) {
	if len(data) < 16 || string(data[:8]) != isacTagsMagic {
		return nil, fmt.Errorf("%w: bad tags magic", ErrInvalidHeader)
	}
	rest := data[8:]

	next := func() (string, bool) {
		if len(rest) < 4 {
			return "", false
		}
		n := binary.LittleEndian.Uint32(rest)
		rest = rest[4:]
		if uint64(n) > uint64(len(rest)) {
			return "", false
		}
		s := string(rest[:n])
		rest = rest[n:]
		return s, true
	}

	vendor, ok := next()
	if !ok || len(rest) < 4 {
		return nil, fmt.Errorf("%w: truncated vendor", ErrInvalidHeader)
	}
	count := binary.LittleEndian.Uint32(rest)
	rest = rest[4:]

	t := &ISACTags{Vendor: vendor, Comments: map[string]string{}}
	for i := uint32(0); i < count; i++ {
		c, ok := next()
		if !ok {
			return nil, fmt.Errorf("%w: truncated comment %d", ErrInvalidHeader, i)
		}
		if k, v, found := strings.Cut(c, "="); found {
			t.Comments[k] = v
		}
	}
	return t, nil
}
