package isacfix

import (
	"io"

	"github.com/thesyncim/isacfix/frame"
)

// PacketSource provides frame payloads for streaming decode.
type PacketSource interface {
	// NextPacket returns the next payload, or io.EOF when the stream ends.
	// A nil payload marks a lost frame.
	NextPacket() ([]byte, error)
}

// PacketSink receives frame payloads from streaming encode.
type PacketSink interface {
	// WritePacket stores one payload. The slice is only valid for the
	// duration of the call.
	WritePacket(packet []byte) (int, error)
}

// Reader decodes a stream of frame payloads, implementing io.Reader.
// Output is PCM in the configured format.
//
// A lost frame (nil payload) decodes to silence.
type Reader struct {
	dec    *frame.Decoder
	source PacketSource
	format SampleFormat

	pcmBuf  []float32 // One decoded frame
	byteBuf []byte    // pcmBuf in the output format
	offset  int       // Read position in byteBuf
	frames  int
	lost    int

	eof bool
}

// NewReader creates a streaming decoder for frames coded with cfg.
func NewReader(cfg frame.Config, source PacketSource, format SampleFormat) (*Reader, error) {
	if source == nil {
		return nil, ErrInvalidArgument
	}
	if !format.valid() {
		return nil, ErrInvalidFormat
	}
	dec, err := frame.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	return &Reader{
		dec:    dec,
		source: source,
		format: format,
		pcmBuf: make([]float32, cfg.FrameSamples),
	}, nil
}

// Read implements io.Reader. It pulls and decodes one payload whenever
// the buffered frame is used up.
func (r *Reader) Read(p []byte) (int, error) {
	if r.offset >= len(r.byteBuf) {
		if r.eof {
			return 0, io.EOF
		}
		packet, err := r.source.NextPacket()
		if err == io.EOF {
			r.eof = true
			return 0, io.EOF
		}
		if err != nil {
			return 0, err
		}

		if packet == nil {
			clear(r.pcmBuf)
			r.lost++
		} else if _, err := r.dec.DecodeFrameInto(r.pcmBuf, packet); err != nil {
			return 0, err
		}
		r.frames++
		r.byteBuf = appendPCM(r.byteBuf[:0], r.pcmBuf, r.format)
		r.offset = 0
	}

	n := copy(p, r.byteBuf[r.offset:])
	r.offset += n
	return n, nil
}

// Frames returns the number of frames decoded so far, lost ones included.
func (r *Reader) Frames() int { return r.frames }

// Lost returns the number of lost frames replaced by silence.
func (r *Reader) Lost() int { return r.lost }

// Config returns the frame layout.
func (r *Reader) Config() frame.Config { return r.dec.Config() }

// Reset drops buffered output so the Reader can serve a new source.
func (r *Reader) Reset(source PacketSource) {
	r.source = source
	r.byteBuf = r.byteBuf[:0]
	r.offset = 0
	r.frames, r.lost = 0, 0
	r.eof = false
}

// Writer encodes PCM to frame payloads, implementing io.Writer.
//
// The Writer buffers input until a complete frame is accumulated, then
// codes it and hands the payload to the sink.
type Writer struct {
	enc    *frame.Encoder
	sink   PacketSink
	format SampleFormat

	sampleBuf  []byte    // Buffered input bytes
	frameBytes int       // Bytes needed for one frame
	pcm        []float32 // One frame of samples
	frames     int
}

// NewWriter creates a streaming encoder that codes frames with cfg.
func NewWriter(cfg frame.Config, sink PacketSink, format SampleFormat) (*Writer, error) {
	if sink == nil {
		return nil, ErrInvalidArgument
	}
	if !format.valid() {
		return nil, ErrInvalidFormat
	}
	enc, err := frame.NewEncoder(cfg)
	if err != nil {
		return nil, err
	}
	frameBytes := cfg.FrameSamples * format.BytesPerSample()
	return &Writer{
		enc:        enc,
		sink:       sink,
		format:     format,
		sampleBuf:  make([]byte, 0, 2*frameBytes),
		frameBytes: frameBytes,
		pcm:        make([]float32, cfg.FrameSamples),
	}, nil
}

// Write implements io.Writer. Complete frames are coded immediately; the
// remainder stays buffered until the next Write or Flush.
//
// A frame that does not fit the payload capacity fails the Write with an
// error wrapping frame.ErrFrameTooLarge; the frame is dropped. On any frame
// error Write returns the bytes of p up to the end of the failed frame and
// discards the rest, so the caller can resume from p[n:].
func (w *Writer) Write(p []byte) (int, error) {
	held := len(w.sampleBuf)
	w.sampleBuf = append(w.sampleBuf, p...)

	off := 0
	var err error
	for len(w.sampleBuf)-off >= w.frameBytes {
		parsePCM(w.pcm, w.sampleBuf[off:off+w.frameBytes], w.format)
		off += w.frameBytes
		if err = w.encode(); err != nil {
			break
		}
	}
	if err != nil {
		w.sampleBuf = w.sampleBuf[:0]
		return off - held, err
	}
	// Keep the partial frame at the front of the buffer.
	n := copy(w.sampleBuf, w.sampleBuf[off:])
	w.sampleBuf = w.sampleBuf[:n]
	return len(p), nil
}

func (w *Writer) encode() error {
	payload, err := w.enc.EncodeFrame(w.pcm)
	if err != nil {
		return err
	}
	if _, err := w.sink.WritePacket(payload); err != nil {
		return err
	}
	w.frames++
	return nil
}

// Flush codes any buffered samples as one zero-padded frame. Call Flush
// before closing the sink so no audio is lost.
func (w *Writer) Flush() error {
	if len(w.sampleBuf) == 0 {
		return nil
	}
	padded := make([]byte, w.frameBytes)
	copy(padded, w.sampleBuf)
	w.sampleBuf = w.sampleBuf[:0]
	parsePCM(w.pcm, padded, w.format)
	return w.encode()
}

// Buffered returns the number of input bytes waiting for a full frame.
func (w *Writer) Buffered() int { return len(w.sampleBuf) }

// Frames returns the number of frames written to the sink.
func (w *Writer) Frames() int { return w.frames }

// Config returns the frame layout.
func (w *Writer) Config() frame.Config { return w.enc.Config() }

// Reset drops buffered input and restarts the dither seed sequence.
func (w *Writer) Reset() {
	w.enc.Reset()
	w.sampleBuf = w.sampleBuf[:0]
	w.frames = 0
}
