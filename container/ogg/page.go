package ogg

import (
	"encoding/binary"
	"fmt"
)

// Page header flags.
const (
	// PageFlagContinuation marks a page whose first packet began on an
	// earlier page.
	PageFlagContinuation = 0x01

	// PageFlagBOS marks the first page of a logical bitstream.
	PageFlagBOS = 0x02

	// PageFlagEOS marks the last page of a logical bitstream.
	PageFlagEOS = 0x04
)

const (
	pageHeaderSize = 27
	crcOffset      = 22
	maxSegments    = 255
	oggMagic       = "OggS"
)

// errShortPage reports data that ends before the page does.
var errShortPage = fmt.Errorf("%w: truncated", ErrInvalidPage)

// Page is a single Ogg page.
type Page struct {
	HeaderType   byte
	GranulePos   uint64
	SerialNumber uint32
	PageSequence uint32

	// Segments is the lacing table: one length byte per segment.
	Segments []byte

	// Payload is the concatenation of every segment.
	Payload []byte
}

// BuildSegmentTable returns the lacing values for one packet of packetLen
// bytes.
func BuildSegmentTable(packetLen int) []byte {
	segments := make([]byte, packetLen/255+1)
	for i := 0; i < len(segments)-1; i++ {
		segments[i] = 255
	}
	segments[len(segments)-1] = byte(packetLen % 255)
	return segments
}

// ParseSegmentTable returns the lengths of the packets that end in the
// table. A trailing run of 255 values belongs to a packet that continues on
// the next page and is not included.
func ParseSegmentTable(segments []byte) []int {
	var lengths []int
	n := 0
	for _, seg := range segments {
		n += int(seg)
		if seg < 255 {
			lengths = append(lengths, n)
			n = 0
		}
	}
	return lengths
}

// IsBOS reports whether p begins a logical bitstream.
func (p *Page) IsBOS() bool { return p.HeaderType&PageFlagBOS != 0 }

// IsEOS reports whether p ends a logical bitstream.
func (p *Page) IsEOS() bool { return p.HeaderType&PageFlagEOS != 0 }

// IsContinuation reports whether p continues a packet from an earlier page.
func (p *Page) IsContinuation() bool { return p.HeaderType&PageFlagContinuation != 0 }

// Complete reports whether the last packet on p ends on this page.
func (p *Page) Complete() bool {
	return len(p.Segments) == 0 || p.Segments[len(p.Segments)-1] < 255
}

// Packets splits the payload into the packets that end on this page. When
// p is a continuation the first element is the tail of the earlier packet.
func (p *Page) Packets() [][]byte {
	lengths := ParseSegmentTable(p.Segments)
	packets := make([][]byte, 0, len(lengths))
	off := 0
	for _, n := range lengths {
		packets = append(packets, p.Payload[off:off+n])
		off += n
	}
	return packets
}

// Tail returns the bytes of a packet that starts or continues on p and
// carries on to the next page. It is empty when p is complete.
func (p *Page) Tail() []byte {
	if p.Complete() {
		return nil
	}
	n := 0
	for i := len(p.Segments) - 1; i >= 0 && p.Segments[i] == 255; i-- {
		n += 255
	}
	return p.Payload[len(p.Payload)-n:]
}

// Encode serializes the page and fills in its checksum.
func (p *Page) Encode() []byte {
	return p.AppendEncode(nil)
}

// AppendEncode appends the serialized page to dst.
func (p *Page) AppendEncode(dst []byte) []byte {
	start := len(dst)
	dst = append(dst, oggMagic...)
	dst = append(dst, 0, p.HeaderType)
	dst = binary.LittleEndian.AppendUint64(dst, p.GranulePos)
	dst = binary.LittleEndian.AppendUint32(dst, p.SerialNumber)
	dst = binary.LittleEndian.AppendUint32(dst, p.PageSequence)
	dst = append(dst, 0, 0, 0, 0, byte(len(p.Segments)))
	dst = append(dst, p.Segments...)
	dst = append(dst, p.Payload...)

	page := dst[start:]
	binary.LittleEndian.PutUint32(page[crcOffset:], pageCRC(page))
	return dst
}

// ParsePage parses the page at the start of data and returns it with the
// number of bytes it occupies. Truncated data returns ErrInvalidPage so
// callers can read more and retry.
func ParsePage(data []byte) (*Page, int, error) {
	if len(data) < pageHeaderSize {
		return nil, 0, fmt.Errorf("%w header: %d bytes, need %d", errShortPage, len(data), pageHeaderSize)
	}
	if string(data[:4]) != oggMagic {
		return nil, 0, fmt.Errorf("%w: missing capture pattern", ErrInvalidPage)
	}
	if data[4] != 0 {
		return nil, 0, fmt.Errorf("%w: version %d", ErrInvalidPage, data[4])
	}

	nseg := int(data[26])
	headerSize := pageHeaderSize + nseg
	if len(data) < headerSize {
		return nil, 0, fmt.Errorf("%w segment table", errShortPage)
	}
	size := headerSize
	for _, seg := range data[pageHeaderSize:headerSize] {
		size += int(seg)
	}
	if len(data) < size {
		return nil, 0, fmt.Errorf("%w payload", errShortPage)
	}

	raw := data[:size]
	if got, want := pageCRC(raw), binary.LittleEndian.Uint32(raw[crcOffset:]); got != want {
		return nil, 0, fmt.Errorf("%w: computed %08x, stored %08x", ErrBadCRC, got, want)
	}

	p := &Page{
		HeaderType:   raw[5],
		GranulePos:   binary.LittleEndian.Uint64(raw[6:14]),
		SerialNumber: binary.LittleEndian.Uint32(raw[14:18]),
		PageSequence: binary.LittleEndian.Uint32(raw[18:22]),
		Segments:     append([]byte(nil), raw[pageHeaderSize:headerSize]...),
		Payload:      append([]byte(nil), raw[headerSize:]...),
	}
	return p, size, nil
}
