package arith

import "github.com/thesyncim/isacfix/piecewise"

// Decoder is the decode side of the arithmetic coder.
//
// The decoder mirrors the encoder's interval register. It keeps a 32-bit
// window of the stream in streamval and shifts in one byte per
// renormalization step. Reads beyond the declared stream size return zero
// and still advance the cursor, which keeps Consumed consistent with the
// encoder's Terminate.
type Decoder struct {
	words     []uint16 // Packed input
	size      int      // Declared size in words
	index     int      // Current word; may run past size
	full      bool     // True when the next byte is the high half of words[index]
	width     uint32   // W_upper
	streamval uint32   // Current 32-bit window, relative to the interval start
	phantom   int      // Bytes read past the declared size
	model     *piecewise.Table
}

// NewDecoder returns a Decoder reading the packed bytes of payload.
func NewDecoder(payload []byte) *Decoder {
	d := &Decoder{}
	d.Init(payload)
	return d
}

// Init resets the decoder to read payload. An odd trailing byte is
// completed with a zero low half.
func (d *Decoder) Init(payload []byte) {
	n := (len(payload) + 1) / 2
	words := d.words
	if cap(words) < n {
		words = make([]uint16, n)
	} else {
		words = words[:n]
	}
	for i := range words {
		w := uint16(payload[2*i]) << 8
		if 2*i+1 < len(payload) {
			w |= uint16(payload[2*i+1])
		}
		words[i] = w
	}
	d.InitWords(words, len(payload))
}

// InitWords resets the decoder to read a stream of 16-bit words of which
// the first sizeBytes bytes are valid. The slice is referenced, not copied.
func (d *Decoder) InitWords(words []uint16, sizeBytes int) {
	d.words = words
	d.size = (sizeBytes + 1) / 2
	if d.size > len(words) {
		d.size = len(words)
	}
	if d.size < 0 {
		d.size = 0
	}
	d.index = 0
	d.full = true
	d.width = 0xFFFFFFFF
	d.streamval = 0
	d.phantom = 0
	if d.model == nil {
		d.model = piecewise.Logistic()
	}
}

// SetModel replaces the piecewise CDF used by DecodeLogistic.
// A nil table restores the default logistic table.
func (d *Decoder) SetModel(t *piecewise.Table) {
	if t == nil {
		t = piecewise.Logistic()
	}
	d.model = t
}

// begin checks the register and loads the first 32 bits on the first call
// for a stream.
func (d *Decoder) begin() error {
	if d.width == 0 {
		return ErrRange
	}
	if d.index == 0 {
		d.streamval = uint32(d.word(0))<<16 | uint32(d.word(1))
		d.index = 2
	}
	return nil
}

// word returns the i-th word, or zero past the declared size.
func (d *Decoder) word(i int) uint16 {
	if i < d.size {
		return d.words[i]
	}
	d.phantom += 2
	tracePhantom(i)
	return 0
}

// decodeInterval moves the interval to (wLower, wUpper] of the current
// width and renormalizes. Both bounds are scaled CDF values chosen by a
// search strategy.
func (d *Decoder) decodeInterval(wLower, wUpper uint32) error {
	// The new width is wUpper - wLower - 1; it must be positive.
	if wUpper <= wLower || wUpper-wLower == 1 {
		return ErrRange
	}
	wLower++
	d.width = wUpper - wLower
	d.streamval -= wLower

	for d.width&widthTopMask == 0 {
		d.width <<= 8
		d.streamval = d.streamval<<8 | uint32(d.nextByte())
	}
	return nil
}

// nextByte consumes one byte, high half of a word first. Past the declared
// size it returns zero and the cursor keeps moving.
func (d *Decoder) nextByte() byte {
	var b byte
	if d.index < d.size {
		w := d.words[d.index]
		if d.full {
			b = byte(w >> 8)
		} else {
			b = byte(w)
		}
	} else {
		d.phantom++
		tracePhantom(d.index)
	}
	if d.full {
		d.full = false
	} else {
		d.index++
		d.full = true
	}
	return b
}

// Consumed returns the number of bytes of the original stream that the
// symbols decoded so far occupy. After the last symbol it equals the value
// Terminate returned for the matching encode.
func (d *Decoder) Consumed() int {
	n := 2*d.index + boolToInt(!d.full)
	if d.width > terminateSplit {
		return n - 3
	}
	return n - 2
}

// Phantom returns the number of bytes read past the declared stream size.
func (d *Decoder) Phantom() int {
	return d.phantom
}

// Width returns the interval width register (W_upper).
func (d *Decoder) Width() uint32 {
	return d.width
}

// StreamVal returns the current stream window.
func (d *Decoder) StreamVal() uint32 {
	return d.streamval
}

// Index returns the current word index. It may exceed the declared size.
func (d *Decoder) Index() int {
	return d.index
}

// Full reports whether the next byte is the high half of a fresh word.
func (d *Decoder) Full() bool {
	return d.full
}

// Size returns the declared stream size in words.
func (d *Decoder) Size() int {
	return d.size
}
