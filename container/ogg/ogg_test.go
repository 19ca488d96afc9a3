package ogg

import (
	"bytes"
	"errors"
	"testing"

	"github.com/thesyncim/isacfix/frame"
)

func TestCRC(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := crcUpdate(0, nil); got != 0 {
			t.Errorf("crcUpdate(0, nil) = 0x%08x, want 0", got)
		}
	})

	t.Run("known value", func(t *testing.T) {
		// Polynomial 0x04C11DB7, not the reflected IEEE form.
		if got := crcUpdate(0, []byte("OggS")); got != 0x5fb0a94f {
			t.Errorf("crc(OggS) = 0x%08x, want 0x5fb0a94f", got)
		}
	})

	t.Run("incremental", func(t *testing.T) {
		data := []byte("hello world")
		if full, split := crcUpdate(0, data), crcUpdate(crcUpdate(0, data[:5]), data[5:]); full != split {
			t.Errorf("full=0x%08x split=0x%08x", full, split)
		}
	})

	t.Run("ignores stored checksum", func(t *testing.T) {
		page := (&Page{Payload: []byte{1, 2, 3}, Segments: []byte{3}}).Encode()
		want := pageCRC(page)
		page[crcOffset] ^= 0xFF
		if got := pageCRC(page); got != want {
			t.Errorf("pageCRC depends on the CRC field")
		}
	})
}

func TestBuildSegmentTable(t *testing.T) {
	tests := []struct {
		n    int
		want []byte
	}{
		{0, []byte{0}},
		{1, []byte{1}},
		{254, []byte{254}},
		{255, []byte{255, 0}},
		{256, []byte{255, 1}},
		{510, []byte{255, 255, 0}},
		{600, []byte{255, 255, 90}},
	}
	for _, tt := range tests {
		got := BuildSegmentTable(tt.n)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("BuildSegmentTable(%d) = %v, want %v", tt.n, got, tt.want)
		}
		if lengths := ParseSegmentTable(got); len(lengths) != 1 || lengths[0] != tt.n {
			t.Errorf("ParseSegmentTable(BuildSegmentTable(%d)) = %v", tt.n, lengths)
		}
	}
}

func TestParseSegmentTable(t *testing.T) {
	tests := []struct {
		name string
		segs []byte
		want []int
	}{
		{"empty", nil, nil},
		{"two packets", []byte{10, 20}, []int{10, 20}},
		{"long then short", []byte{255, 45, 7}, []int{300, 7}},
		{"trailing continuation", []byte{12, 255, 255}, []int{12}},
		{"zero-length packet", []byte{0}, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSegmentTable(tt.segs)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSegmentTable(%v) = %v, want %v", tt.segs, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("packet %d length %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPageRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 300)
	p := &Page{
		HeaderType:   PageFlagBOS,
		GranulePos:   48000,
		SerialNumber: 0x12345678,
		PageSequence: 3,
		Segments:     BuildSegmentTable(len(payload)),
		Payload:      payload,
	}
	data := p.Encode()
	if len(data) != pageHeaderSize+2+300 {
		t.Fatalf("encoded size %d", len(data))
	}
	if string(data[:4]) != "OggS" {
		t.Errorf("missing capture pattern")
	}

	got, n, err := ParsePage(append(data, 0xFF, 0xFF))
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if n != len(data) {
		t.Errorf("consumed %d, want %d", n, len(data))
	}
	if got.HeaderType != p.HeaderType || got.GranulePos != p.GranulePos ||
		got.SerialNumber != p.SerialNumber || got.PageSequence != p.PageSequence {
		t.Errorf("header fields = %+v", got)
	}
	if !got.IsBOS() || got.IsEOS() || got.IsContinuation() {
		t.Errorf("flags BOS=%v EOS=%v cont=%v", got.IsBOS(), got.IsEOS(), got.IsContinuation())
	}
	if packets := got.Packets(); len(packets) != 1 || !bytes.Equal(packets[0], payload) {
		t.Errorf("Packets() did not return the payload")
	}
}

func TestParsePageErrors(t *testing.T) {
	good := (&Page{Segments: []byte{4}, Payload: []byte{1, 2, 3, 4}}).Encode()

	corrupt := bytes.Clone(good)
	corrupt[len(corrupt)-1] ^= 1
	badMagic := bytes.Clone(good)
	badMagic[0] = 'X'
	badVersion := bytes.Clone(good)
	badVersion[4] = 1

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", good[:10], ErrInvalidPage},
		{"truncated payload", good[:len(good)-1], ErrInvalidPage},
		{"bad magic", badMagic, ErrInvalidPage},
		{"bad version", badVersion, ErrInvalidPage},
		{"bad crc", corrupt, ErrBadCRC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParsePage(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("ParsePage() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, _, err := ParsePage(good[:10]); !errors.Is(err, errShortPage) {
		t.Errorf("short data error = %v, want errShortPage", err)
	}
}

func TestPageTail(t *testing.T) {
	payload := make([]byte, 10+255+255)
	for i := range payload {
		payload[i] = byte(i)
	}
	p := &Page{Segments: []byte{10, 255, 255}, Payload: payload}
	if p.Complete() {
		t.Fatalf("Complete() = true for a page ending in 255")
	}
	if tail := p.Tail(); !bytes.Equal(tail, payload[10:]) {
		t.Errorf("Tail() has %d bytes, want %d", len(tail), len(payload)-10)
	}
	if packets := p.Packets(); len(packets) != 1 || len(packets[0]) != 10 {
		t.Errorf("Packets() = %d packets", len(packets))
	}
}

func TestISACHeadRoundTrip(t *testing.T) {
	cfg := frame.DefaultConfig()
	cfg.PitchGainQ12 = 1000
	h := NewISACHead(cfg, 16000)
	data := h.Encode()
	if len(data) != isacHeadSize || string(data[:8]) != "ISACHead" {
		t.Fatalf("Encode() = %x", data)
	}

	got, err := ParseISACHead(data)
	if err != nil {
		t.Fatalf("ParseISACHead: %v", err)
	}
	if *got != *h {
		t.Errorf("ParseISACHead = %+v, want %+v", got, h)
	}
	fc := got.FrameConfig()
	if fc.FrameSamples != cfg.FrameSamples || fc.Bands != cfg.Bands || fc.CapacityWords != cfg.CapacityWords ||
		fc.Scale != cfg.Scale || fc.PitchGainQ12 != cfg.PitchGainQ12 || fc.MaxShift != cfg.MaxShift {
		t.Errorf("FrameConfig() = %+v, want %+v", fc, cfg)
	}
}

func TestISACHeadErrors(t *testing.T) {
	good := NewISACHead(frame.DefaultConfig(), 16000).Encode()
	mutate := func(f func(b []byte)) []byte {
		b := bytes.Clone(good)
		f(b)
		return b
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"short", good[:20]},
		{"magic", mutate(func(b []byte) { b[0] = 'X' })},
		{"version", mutate(func(b []byte) { b[8] = 2 })},
		{"stereo", mutate(func(b []byte) { b[9] = 2 })},
		{"zero bands", mutate(func(b []byte) { b[16] = 0 })},
		{"frame not multiple of bands", mutate(func(b []byte) { b[14], b[15] = 0xE4, 0x01 })},
		{"shift too large", mutate(func(b []byte) { b[23] = 9 })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseISACHead(tt.data); !errors.Is(err, ErrInvalidHeader) {
				t.Errorf("ParseISACHead() error = %v, want ErrInvalidHeader", err)
			}
		})
	}
}

func TestISACTagsRoundTrip(t *testing.T) {
	tags := &ISACTags{
		Vendor:   "isacfix test",
		Comments: map[string]string{"TITLE": "sine", "ARTIST": "nobody", "NOTE": "a=b"},
	}
	data := tags.Encode()
	if !bytes.Equal(data, tags.Encode()) {
		t.Errorf("Encode() is not deterministic")
	}

	got, err := ParseISACTags(data)
	if err != nil {
		t.Fatalf("ParseISACTags: %v", err)
	}
	if got.Vendor != tags.Vendor {
		t.Errorf("Vendor = %q, want %q", got.Vendor, tags.Vendor)
	}
	if len(got.Comments) != len(tags.Comments) {
		t.Fatalf("Comments = %v, want %v", got.Comments, tags.Comments)
	}
	for k, v := range tags.Comments {
		if got.Comments[k] != v {
			t.Errorf("Comments[%q] = %q, want %q", k, got.Comments[k], v)
		}
	}
}

func TestISACTagsErrors(t *testing.T) {
	good := DefaultISACTags().Encode()
	withComment := (&ISACTags{Vendor: "v", Comments: map[string]string{"K": "V"}}).Encode()

	tests := []struct {
		name string
		data []byte
	}{
		{"short", good[:10]},
		{"magic", append([]byte("ISACHead"), good[8:]...)},
		{"vendor overruns", append(append([]byte(nil), good[:8]...), 0xFF, 0, 0, 0, 0, 0, 0, 0)},
		{"truncated comment", withComment[:len(withComment)-1]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseISACTags(tt.data); !errors.Is(err, ErrInvalidHeader) {
				t.Errorf("ParseISACTags() error = %v, want ErrInvalidHeader", err)
			}
		})
	}
}
