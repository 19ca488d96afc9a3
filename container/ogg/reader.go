package ogg

import (
	"errors"
	"fmt"
	"io"
)

type queuedPacket struct {
	data    []byte
	granule uint64
}

// Reader reads frame payloads from an Ogg stream.
type Reader struct {
	r      io.Reader
	Header *ISACHead // Parsed identification header
	Tags   *ISACTags // Parsed comment header

	serial     uint32
	granulePos uint64
	eos        bool
	buf        []byte
	partial    []byte // Packet continuing on the next page
	queue      []queuedPacket
}

// NewReader reads and parses the ISACHead and ISACTags headers.
func NewReader(r io.Reader) (*Reader, error) {
	or := &Reader{r: r, buf: make([]byte, pageHeaderSize)}

	page, err := or.readPage()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty stream", ErrInvalidPage)
		}
		return nil, err
	}
	if !page.IsBOS() {
		return nil, fmt.Errorf("%w: first page is not BOS", ErrInvalidPage)
	}
	packets := page.Packets()
	if len(packets) == 0 {
		return nil, fmt.Errorf("%w: no identification packet", ErrInvalidHeader)
	}
	if or.Header, err = ParseISACHead(packets[0]); err != nil {
		return nil, err
	}
	or.serial = page.SerialNumber

	tags, _, err := or.ReadPacket()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing comment header", ErrInvalidHeader)
		}
		return nil, err
	}
	if or.Tags, err = ParseISACTags(tags); err != nil {
		return nil, err
	}
	return or, nil
}

// ReadPacket returns the next payload and the granule position of the page
// it ends on. It returns io.EOF after the last packet, and ErrUnexpectedEOS
// when the stream stops inside a packet.
func (or *Reader) ReadPacket() ([]byte, uint64, error) {
	for len(or.queue) == 0 {
		if or.eos {
			return nil, or.granulePos, io.EOF
		}
		page, err := or.readPage()
		if err == io.EOF {
			or.eos = true
			if or.partial != nil {
				return nil, 0, fmt.Errorf("%w: stream ends inside a packet", ErrUnexpectedEOS)
			}
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		if page.SerialNumber != or.serial {
			continue
		}
		if page.IsEOS() {
			or.eos = true
		}
		or.addPage(page)
	}

	p := or.queue[0]
	or.queue = or.queue[1:]
	or.granulePos = p.granule
	return p.data, p.granule, nil
}

// addPage queues the packets that end on page and keeps any unfinished
// tail.
func (or *Reader) addPage(page *Page) {
	cont := page.IsContinuation()
	if !cont {
		// An unfinished packet followed by a fresh page is lost.
		or.partial = nil
	}
	packets := page.Packets()
	tail := page.Tail()

	if len(packets) == 0 {
		switch {
		case cont && or.partial != nil:
			or.partial = append(or.partial, tail...)
		case !cont && len(tail) > 0:
			or.partial = append([]byte(nil), tail...)
		}
		return
	}

	if cont {
		if or.partial != nil {
			packets[0] = append(or.partial, packets[0]...)
		} else {
			// The start of this packet was never seen.
			packets = packets[1:]
		}
	}
	or.partial = nil
	if len(tail) > 0 {
		or.partial = append([]byte(nil), tail...)
	}
	for _, p := range packets {
		or.queue = append(or.queue, queuedPacket{data: p, granule: page.GranulePos})
	}
}

// readPage reads exactly one page. A clean end of input before the page
// starts returns io.EOF.
func (or *Reader) readPage() (*Page, error) {
	hdr := or.buf[:pageHeaderSize]
	if _, err := io.ReadFull(or.r, hdr); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: truncated page header", ErrUnexpectedEOS)
		}
		return nil, err
	}
	if string(hdr[:4]) != oggMagic {
		return nil, fmt.Errorf("%w: missing capture pattern", ErrInvalidPage)
	}

	nseg := int(hdr[26])
	or.grow(pageHeaderSize + nseg)
	if _, err := io.ReadFull(or.r, or.buf[pageHeaderSize:pageHeaderSize+nseg]); err != nil {
		return nil, fmt.Errorf("%w: truncated segment table", ErrUnexpectedEOS)
	}
	size := pageHeaderSize + nseg
	for _, seg := range or.buf[pageHeaderSize : pageHeaderSize+nseg] {
		size += int(seg)
	}
	or.grow(size)
	if _, err := io.ReadFull(or.r, or.buf[pageHeaderSize+nseg:size]); err != nil {
		return nil, fmt.Errorf("%w: truncated page payload", ErrUnexpectedEOS)
	}

	page, _, err := ParsePage(or.buf[:size])
	return page, err
}

// grow makes buf hold at least n bytes, keeping its contents.
func (or *Reader) grow(n int) {
	if len(or.buf) >= n {
		return
	}
	buf := make([]byte, n, max(n, 2*len(or.buf)))
	copy(buf, or.buf)
	or.buf = buf
}

// SampleRate returns the sample rate recorded in the header.
func (or *Reader) SampleRate() uint32 { return or.Header.SampleRate }

// GranulePos returns the granule position of the last returned packet.
func (or *Reader) GranulePos() uint64 { return or.granulePos }

// EOF reports whether the EOS page or the end of input has been reached.
// Queued packets may remain.
func (or *Reader) EOF() bool { return or.eos }

// Serial returns the bitstream serial number.
func (or *Reader) Serial() uint32 { return or.serial }
