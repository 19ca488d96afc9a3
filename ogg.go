package isacfix

import "github.com/thesyncim/isacfix/container/ogg"

// OggSink writes payloads to an Ogg stream, advancing the granule
// position by one frame per packet.
type OggSink struct {
	w       *ogg.Writer
	samples int
}

// NewOggSink wraps w. The frame size comes from the stream header.
func NewOggSink(w *ogg.Writer) *OggSink {
	return &OggSink{w: w, samples: int(w.Header().FrameSamples)}
}

// WritePacket implements PacketSink.
func (s *OggSink) WritePacket(packet []byte) (int, error) {
	if err := s.w.WritePacket(packet, s.samples); err != nil {
		return 0, err
	}
	return len(packet), nil
}

// OggSource reads payloads from an Ogg stream.
type OggSource struct {
	r *ogg.Reader
}

// NewOggSource wraps r.
func NewOggSource(r *ogg.Reader) *OggSource {
	return &OggSource{r: r}
}

// NextPacket implements PacketSource.
func (s *OggSource) NextPacket() ([]byte, error) {
	packet, _, err := s.r.ReadPacket()
	return packet, err
}
