package frame

import (
	"fmt"

	"github.com/thesyncim/isacfix/arith"
)

// Decoder reconstructs PCM frames from payloads.
//
// A Decoder is NOT safe for concurrent use.
type Decoder struct {
	cfg Config
	dec arith.Decoder

	sym    [1]int
	deltas []int
	levels []int
	coded  []int16
	env    []uint16
	powers []int32
}

// NewDecoder creates a frame decoder for cfg.
func NewDecoder(cfg Config) (*Decoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := cfg.FrameSamples
	d := &Decoder{
		cfg:    cfg,
		deltas: make([]int, cfg.Bands-1),
		levels: make([]int, cfg.Bands),
		coded:  make([]int16, n),
		env:    make([]uint16, n/4),
		powers: make([]int32, n/4),
	}
	d.dec.SetModel(cfg.model())
	return d, nil
}

// Config returns the decoder configuration.
func (d *Decoder) Config() Config {
	return d.cfg
}

// DecodeFrame decodes one payload into Config.FrameSamples PCM samples.
// Any coder failure, or a stream that claims more bytes than payload holds,
// returns an error wrapping ErrCorruptFrame.
func (d *Decoder) DecodeFrame(payload []byte) ([]float32, Info, error) {
	pcm := make([]float32, d.cfg.FrameSamples)
	info, err := d.DecodeFrameInto(pcm, payload)
	if err != nil {
		return nil, Info{}, err
	}
	return pcm, info, nil
}

// DecodeFrameInto is DecodeFrame writing into pcm, which must hold
// Config.FrameSamples samples.
func (d *Decoder) DecodeFrameInto(pcm []float32, payload []byte) (Info, error) {
	if len(pcm) != d.cfg.FrameSamples {
		return Info{}, fmt.Errorf("%w: got %d samples, want %d", ErrInvalidFrameSize, len(pcm), d.cfg.FrameSamples)
	}
	d.dec.Init(payload)

	if _, err := d.dec.DecodeSymbolsOneStep(d.sym[:], [][]uint16{seedCDF}, []int{seedHint}); err != nil {
		return Info{}, corrupt("seed", err)
	}
	seed := uint8(d.sym[0])

	if _, err := d.dec.DecodeSymbolsOneStep(d.sym[:], [][]uint16{shiftCDF[:]}, []int{shiftHint}); err != nil {
		return Info{}, corrupt("shift", err)
	}
	shift := d.sym[0]

	if _, err := d.dec.DecodeSymbolsBisect(d.sym[:], [][]uint16{levelCDF[:]}, []int{levelBisect}); err != nil {
		return Info{}, corrupt("level", err)
	}
	d.levels[0] = d.sym[0]

	if len(d.deltas) > 0 {
		if _, err := d.dec.DecodeSymbolsOneStep(d.deltas, [][]uint16{deltaCDF[:]}, []int{deltaHint}); err != nil {
			return Info{}, corrupt("level deltas", err)
		}
	}
	for b, sym := range d.deltas {
		l := d.levels[b] + sym - maxLevelDelta
		if l < 0 || l >= Levels {
			return Info{}, fmt.Errorf("%w: band %d level %d", ErrCorruptFrame, b+1, l)
		}
		d.levels[b+1] = l
	}

	bandEnvelope(d.env, d.powers, d.levels, d.cfg.bandSamples())
	GenerateDitherQ7(d.coded, uint32(seed), d.cfg.PitchGainQ12)
	consumed, err := d.dec.DecodeLogistic(d.coded, d.coded, d.env)
	if err != nil {
		return Info{}, corrupt("samples", err)
	}
	if consumed > len(payload) {
		return Info{}, fmt.Errorf("%w: stream needs %d bytes, payload has %d", ErrCorruptFrame, consumed, len(payload))
	}

	scale := float32(d.cfg.Scale)
	for i, v := range d.coded {
		pcm[i] = float32(int32(v)<<shift) / scale
	}

	return Info{
		Seed:     seed,
		Shift:    shift,
		Levels:   append([]int(nil), d.levels...),
		Consumed: consumed,
	}, nil
}

// Coded returns the Q7 samples of the last decoded frame. The slice is
// overwritten by the next decode.
func (d *Decoder) Coded() []int16 {
	return d.coded
}

func corrupt(field string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrCorruptFrame, field, err)
}
