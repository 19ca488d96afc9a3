package arith

import (
	"fmt"

	"github.com/thesyncim/isacfix/piecewise"
)

// Encoder is the encode side of the arithmetic coder.
//
// One Encoder holds the interval register and the packed output words of a
// single stream. It persists across all symbol calls of one coded packet
// and is finalized exactly once with Terminate.
type Encoder struct {
	words     []uint16 // Packed output, capacity+1 words so Terminate can always flush
	capacity  int      // Configured maximum in words
	index     int      // Current word
	full      bool     // True when the next byte starts words[index]
	width     uint32   // W_upper
	streamval uint32   // Bits not yet committed to the output
	model     *piecewise.Table
	err       error // Sticky ErrCapacityExceeded
	length    int   // Terminated length in bytes, -1 until Terminate
}

// NewEncoder returns an Encoder that may emit up to capacityWords 16-bit
// words of symbol data.
func NewEncoder(capacityWords int) *Encoder {
	e := &Encoder{}
	e.Init(capacityWords)
	return e
}

// Init resets the encoder for a new stream with the given capacity.
// The word buffer is reused when it is large enough.
func (e *Encoder) Init(capacityWords int) {
	if capacityWords < 1 {
		capacityWords = 1
	}
	if cap(e.words) < capacityWords+1 {
		e.words = make([]uint16, capacityWords+1)
	} else {
		e.words = e.words[:capacityWords+1]
		clear(e.words)
	}
	e.capacity = capacityWords
	e.index = 0
	e.full = true
	e.width = 0xFFFFFFFF
	e.streamval = 0
	e.err = nil
	e.length = -1
	if e.model == nil {
		e.model = piecewise.Logistic()
	}
}

// Reset re-initializes the encoder keeping its capacity and model.
func (e *Encoder) Reset() {
	e.Init(e.capacity)
}

// SetModel replaces the piecewise CDF used by EncodeLogistic.
// A nil table restores the default logistic table.
func (e *Encoder) SetModel(t *piecewise.Table) {
	if t == nil {
		t = piecewise.Logistic()
	}
	e.model = t
}

// ready reports whether the encoder can accept more symbols.
func (e *Encoder) ready() error {
	if e.err != nil {
		return e.err
	}
	if e.length >= 0 {
		return fmt.Errorf("%w: encoder already terminated", ErrInvalidArgument)
	}
	return nil
}

// encodeInterval narrows the interval to [cdfLo, cdfHi) out of 65536 and
// renormalizes. Callers guarantee cdfLo < cdfHi <= 65535.
func (e *Encoder) encodeInterval(cdfLo, cdfHi uint32) error {
	wLower := scale(e.width, cdfLo) + 1
	e.width = scale(e.width, cdfHi) - wLower

	e.streamval += wLower
	if e.streamval < wLower {
		e.propagateCarry()
	}

	for e.width&widthTopMask == 0 {
		e.width <<= 8
		e.emit(byte(e.streamval >> 24))
		if e.index > e.capacity-1 {
			e.err = ErrCapacityExceeded
			return e.err
		}
		e.streamval <<= 8
	}
	return nil
}

// emit packs one byte into the output, high half of a word first.
func (e *Encoder) emit(b byte) {
	if e.full {
		e.words[e.index] = uint16(b) << 8
		e.full = false
		return
	}
	e.words[e.index] += uint16(b)
	e.index++
	e.full = true
}

// propagateCarry adds one to the already emitted bytes. A byte of 0xFF
// wraps to 0x00 and hands the carry to the byte before it.
func (e *Encoder) propagateCarry() {
	i := e.index
	if !e.full {
		// The high byte of the current word is the last emitted byte.
		e.words[i] += 0x0100
		for e.words[i] == 0 && i > 0 {
			i--
			e.words[i]++
		}
	} else {
		for i > 0 {
			i--
			e.words[i]++
			if e.words[i] != 0 {
				break
			}
		}
	}
	traceCarry(e.index, e.index-i)
}

// Terminate flushes the interval and returns the stream length in bytes.
//
// One byte is flushed when the width is above 0x01FFFFFF, two otherwise;
// either way the flushed value lies inside the final interval so a decoder
// reading zeros past the end recovers every symbol. Calling Terminate again
// returns the same length. After ErrCapacityExceeded it returns 0.
func (e *Encoder) Terminate() int {
	if e.err != nil {
		return 0
	}
	if e.length >= 0 {
		return e.length
	}

	if e.width > terminateSplit {
		e.addTail(0x01000000)
		e.emit(byte(e.streamval >> 24))
	} else {
		e.addTail(0x00010000)
		e.emit(byte(e.streamval >> 24))
		e.emit(byte(e.streamval >> 16))
	}

	e.length = 2*e.index + boolToInt(!e.full)
	traceEncode("terminate", e)
	return e.length
}

func (e *Encoder) addTail(v uint32) {
	e.streamval += v
	if e.streamval < v {
		e.propagateCarry()
	}
}

// Len returns the number of bytes emitted so far. It never decreases while
// symbols are added.
func (e *Encoder) Len() int {
	return 2*e.index + boolToInt(!e.full)
}

// Bytes terminates the stream if needed and returns a copy of the packed
// output, most significant byte of each word first.
func (e *Encoder) Bytes() []byte {
	return e.AppendBytes(nil)
}

// AppendBytes terminates the stream if needed and appends the packed output
// to dst.
func (e *Encoder) AppendBytes(dst []byte) []byte {
	n := e.Terminate()
	for i := 0; i < n; i++ {
		w := e.words[i>>1]
		if i&1 == 0 {
			dst = append(dst, byte(w>>8))
		} else {
			dst = append(dst, byte(w))
		}
	}
	return dst
}

// Words returns the 16-bit words written so far, including a partially
// filled final word. Callers must treat the slice as read-only.
func (e *Encoder) Words() []uint16 {
	n := e.index
	if !e.full {
		n++
	}
	if n > len(e.words) {
		n = len(e.words)
	}
	return e.words[:n]
}

// Width returns the interval width register (W_upper).
func (e *Encoder) Width() uint32 {
	return e.width
}

// StreamVal returns the pending low end of the interval.
func (e *Encoder) StreamVal() uint32 {
	return e.streamval
}

// Index returns the current word index.
func (e *Encoder) Index() int {
	return e.index
}

// Full reports whether every started word is complete, so the next byte
// goes into the high half of a fresh word.
func (e *Encoder) Full() bool {
	return e.full
}

// Capacity returns the configured capacity in words.
func (e *Encoder) Capacity() int {
	return e.capacity
}

// Err returns the sticky encode error, if any.
func (e *Encoder) Err() error {
	return e.err
}
