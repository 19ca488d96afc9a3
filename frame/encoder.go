package frame

import (
	"errors"
	"fmt"
	"math"

	"github.com/thesyncim/isacfix/arith"
)

// Info describes one coded frame.
type Info struct {
	Seed     uint8 // Dither seed coded in the frame
	Shift    int   // Down-scaling exponent; samples were divided by 1<<Shift
	Levels   []int // Band levels as reconstructed by the decoder
	Consumed int   // Payload length in bytes
}

// Encoder codes PCM frames into payloads.
//
// An Encoder is NOT safe for concurrent use. The dither seed advances once
// per frame and every payload carries its own seed, so frames decode
// independently of each other.
type Encoder struct {
	cfg  Config
	enc  *arith.Encoder
	seed uint32

	input   []int32 // Unshifted Q7 input
	coded   []int16 // Q7 samples as coded, after clipping
	dither  []int16
	env     []uint16
	powers  []int32
	targets []int
	levels  []int
	deltas  []int
	info    Info
}

// NewEncoder creates a frame encoder for cfg.
func NewEncoder(cfg Config) (*Encoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := cfg.FrameSamples
	e := &Encoder{
		cfg:     cfg,
		enc:     arith.NewEncoder(cfg.CapacityWords),
		seed:    cfg.Seed,
		input:   make([]int32, n),
		coded:   make([]int16, n),
		dither:  make([]int16, n),
		env:     make([]uint16, n/4),
		powers:  make([]int32, n/4),
		targets: make([]int, cfg.Bands),
		levels:  make([]int, cfg.Bands),
		deltas:  make([]int, cfg.Bands-1),
	}
	e.enc.SetModel(cfg.model())
	return e, nil
}

// Config returns the encoder configuration.
func (e *Encoder) Config() Config {
	return e.cfg
}

// Reset restarts the dither seed sequence.
func (e *Encoder) Reset() {
	e.seed = e.cfg.Seed
	e.enc.Reset()
	e.info = Info{}
}

// EncodeFrame codes one frame of PCM samples in [-1, 1] and returns the
// payload. Samples outside that range are clamped.
//
// When the frame does not fit the capacity it is re-coded with halved
// amplitudes, up to Config.MaxShift times. If it still does not fit the
// error wraps both ErrFrameTooLarge and arith.ErrCapacityExceeded.
func (e *Encoder) EncodeFrame(pcm []float32) ([]byte, error) {
	if len(pcm) != e.cfg.FrameSamples {
		return nil, fmt.Errorf("%w: got %d samples, want %d", ErrInvalidFrameSize, len(pcm), e.cfg.FrameSamples)
	}

	e.seed = nextSeed(e.seed)
	frameSeed := uint8(e.seed >> 24)

	scale := float64(e.cfg.Scale)
	for i, x := range pcm {
		v := math.Round(float64(x) * scale)
		e.input[i] = int32(min(max(v, -scale), scale))
	}
	GenerateDitherQ7(e.dither, uint32(frameSeed), e.cfg.PitchGainQ12)

	var err error
	for shift := 0; shift <= e.cfg.MaxShift; shift++ {
		err = e.encode(frameSeed, shift)
		if err == nil {
			payload := e.enc.Bytes()
			e.info = Info{
				Seed:     frameSeed,
				Shift:    shift,
				Levels:   append([]int(nil), e.levels...),
				Consumed: len(payload),
			}
			return payload, nil
		}
		if !errors.Is(err, arith.ErrCapacityExceeded) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrFrameTooLarge, err)
}

// encode codes the prepared input at one shift from a fresh coder state.
func (e *Encoder) encode(seed uint8, shift int) error {
	e.enc.Reset()

	for i, x := range e.input {
		if shift > 0 {
			x = (x + 1<<(shift-1)) >> shift
		}
		e.coded[i] = QuantizeQ7(x, e.dither[i])
	}
	e.chooseLevels()

	if err := e.enc.EncodeSymbols([]int{int(seed)}, [][]uint16{seedCDF}); err != nil {
		return err
	}
	if err := e.enc.EncodeSymbols([]int{shift}, [][]uint16{shiftCDF[:]}); err != nil {
		return err
	}
	if err := e.enc.EncodeSymbols(e.levels[:1], [][]uint16{levelCDF[:]}); err != nil {
		return err
	}
	if len(e.deltas) > 0 {
		if err := e.enc.EncodeSymbols(e.deltas, [][]uint16{deltaCDF[:]}); err != nil {
			return err
		}
	}

	bandEnvelope(e.env, e.powers, e.levels, e.cfg.bandSamples())
	return e.enc.EncodeLogistic(e.coded, e.env)
}

// chooseLevels picks a level per band from the quantized samples and
// limits the change between adjacent bands to what the delta table codes.
func (e *Encoder) chooseLevels() {
	bs := e.cfg.bandSamples()
	for b := range e.targets {
		var sum float64
		for _, v := range e.coded[b*bs : (b+1)*bs] {
			steps := float64(v) / 128
			sum += steps * steps
		}
		e.targets[b] = levelForPower(sum / float64(bs))
	}

	prev := e.targets[0]
	e.levels[0] = prev
	for b := 1; b < len(e.targets); b++ {
		d := min(max(e.targets[b]-prev, -maxLevelDelta), maxLevelDelta)
		prev += d
		e.levels[b] = prev
		e.deltas[b-1] = d + maxLevelDelta
	}
}

// Info returns the description of the last frame EncodeFrame returned.
func (e *Encoder) Info() Info {
	return e.info
}

// Coded returns the Q7 samples of the last coded frame, after any outlier
// clipping. A decoder reproduces exactly these values. The slice is
// overwritten by the next EncodeFrame call.
func (e *Encoder) Coded() []int16 {
	return e.coded
}
