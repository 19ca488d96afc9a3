package ogg

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/thesyncim/isacfix/frame"
)

// noGranule is the granule position of a page on which no packet ends.
const noGranule = ^uint64(0)

// maxPagePayload is the most packet data one page can carry.
const maxPagePayload = maxSegments * 255

// WriterConfig configures a Writer.
type WriterConfig struct {
	// SampleRate is the PCM sample rate recorded in the header.
	SampleRate uint32

	// Frame is the frame layout recorded in the header.
	Frame frame.Config

	// Serial is the bitstream serial number. Zero picks a random one.
	Serial uint32

	// Tags is the comment header. Nil writes DefaultISACTags.
	Tags *ISACTags
}

// Writer writes frame payloads to an Ogg stream, one payload per page.
type Writer struct {
	w          io.Writer
	head       *ISACHead
	serial     uint32
	pageSeq    uint32
	granulePos uint64
	closed     bool
	buf        []byte
}

// NewWriter validates cfg and writes the ISACHead and ISACTags pages.
func NewWriter(w io.Writer, cfg WriterConfig) (*Writer, error) {
	if err := cfg.Frame.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	if cfg.Frame.FrameSamples > 0xFFFF || cfg.Frame.CapacityWords > 0xFFFF {
		return nil, fmt.Errorf("%w: frame layout does not fit the header", ErrInvalidHeader)
	}

	serial := cfg.Serial
	if serial == 0 {
		serial = rand.New(rand.NewSource(time.Now().UnixNano())).Uint32()
	}
	tags := cfg.Tags
	if tags == nil {
		tags = DefaultISACTags()
	}

	ow := &Writer{
		w:      w,
		head:   NewISACHead(cfg.Frame, cfg.SampleRate),
		serial: serial,
	}
	if err := ow.writePacket(ow.head.Encode(), PageFlagBOS, 0); err != nil {
		return nil, err
	}
	if err := ow.writePacket(tags.Encode(), 0, 0); err != nil {
		return nil, err
	}
	return ow, nil
}

// writePacket writes one packet starting on a fresh page. Packets longer
// than one page continue on following pages; those pages carry no granule
// position because no packet ends on them.
func (ow *Writer) writePacket(packet []byte, flags byte, granule uint64) error {
	for {
		page := Page{
			HeaderType:   flags,
			GranulePos:   granule,
			SerialNumber: ow.serial,
			PageSequence: ow.pageSeq,
		}
		if len(packet) >= maxPagePayload {
			page.GranulePos = noGranule
			page.Segments = make([]byte, maxSegments)
			for i := range page.Segments {
				page.Segments[i] = 255
			}
			page.Payload = packet[:maxPagePayload]
			packet = packet[maxPagePayload:]
		} else {
			page.Segments = BuildSegmentTable(len(packet))
			page.Payload = packet
			packet = nil
		}

		if err := ow.writePage(&page); err != nil {
			return err
		}
		if packet == nil {
			return nil
		}
		flags = PageFlagContinuation
	}
}

func (ow *Writer) writePage(p *Page) error {
	ow.buf = p.AppendEncode(ow.buf[:0])
	if _, err := ow.w.Write(ow.buf); err != nil {
		return err
	}
	ow.pageSeq++
	return nil
}

// WritePacket writes one frame payload that decodes to samples PCM
// samples.
func (ow *Writer) WritePacket(packet []byte, samples int) error {
	if ow.closed {
		return ErrUnexpectedEOS
	}
	ow.granulePos += uint64(samples)
	return ow.writePacket(packet, 0, ow.granulePos)
}

// Close writes an empty EOS page. Further writes fail.
func (ow *Writer) Close() error {
	if ow.closed {
		return nil
	}
	ow.closed = true
	return ow.writePage(&Page{
		HeaderType:   PageFlagEOS,
		GranulePos:   ow.granulePos,
		SerialNumber: ow.serial,
		PageSequence: ow.pageSeq,
	})
}

// Header returns the identification header written at the start.
func (ow *Writer) Header() *ISACHead { return ow.head }

// Serial returns the bitstream serial number.
func (ow *Writer) Serial() uint32 { return ow.serial }

// GranulePos returns the number of samples written so far.
func (ow *Writer) GranulePos() uint64 { return ow.granulePos }

// PageCount returns the number of pages written so far.
func (ow *Writer) PageCount() uint32 { return ow.pageSeq }
