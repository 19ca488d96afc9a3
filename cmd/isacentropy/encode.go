package main

import (
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/thesyncim/isacfix/container/ogg"
	"github.com/thesyncim/isacfix/frame"
	"github.com/thesyncim/isacfix/internal/pcm"
	"github.com/thesyncim/isacfix/internal/testsignal"
)

// encodeStats summarizes one encode run.
type encodeStats struct {
	frames     int
	samples    int
	payload    int
	maxPayload int
	shifted    int
	zstdBytes  int
	rawQ7Bytes int
	sampleRate int
}

func runEncode(args []string) error {
	cfg := frame.DefaultConfig()
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	in := fs.String("in", "", "input audio file (.wav, .aiff, .mp3, .ogg)")
	synth := fs.String("synth", "", "encode a generated signal instead of -in: "+strings.Join(testsignal.Names(), ", "))
	seconds := fs.Float64("seconds", 1, "length of the -synth signal")
	rate := fs.Int("rate", 16000, "sample rate of the -synth signal")
	out := fs.String("out", "", "output Ogg stream")
	title := fs.String("title", "", "TITLE comment")
	trace := traceFlag(fs)
	frameFlags(fs, &cfg)
	fs.Parse(args)

	if (*in == "") == (*synth == "") || *out == "" {
		fs.Usage()
		return errors.New("encode needs -out and one of -in or -synth")
	}
	defer enableTrace(*trace)()

	clip, err := loadInput(*in, *synth, *rate, *seconds)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	tags := ogg.DefaultISACTags()
	if *title != "" {
		tags.Comments["TITLE"] = *title
	}
	st, err := encodeClip(f, clip, cfg, tags)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	printEncodeStats(st, cfg)
	return nil
}

// loadInput reads path, or generates the named signal when path is empty.
func loadInput(path, synth string, rate int, seconds float64) (*pcm.Clip, error) {
	if path != "" {
		return pcm.Load(path)
	}
	samples, err := testsignal.Generate(synth, rate, int(seconds*float64(rate)))
	if err != nil {
		return nil, err
	}
	return &pcm.Clip{SampleRate: rate, Samples: samples}, nil
}

// encodeClip codes every frame of clip into an Ogg stream on w.
func encodeClip(w io.Writer, clip *pcm.Clip, cfg frame.Config, tags *ogg.ISACTags) (encodeStats, error) {
	st := encodeStats{sampleRate: clip.SampleRate}
	enc, err := frame.NewEncoder(cfg)
	if err != nil {
		return st, err
	}
	ow, err := ogg.NewWriter(w, ogg.WriterConfig{
		SampleRate: uint32(clip.SampleRate),
		Frame:      cfg,
		Tags:       tags,
	})
	if err != nil {
		return st, err
	}

	var rawQ7 []byte
	for i, pcmFrame := range clip.Frames(cfg.FrameSamples) {
		payload, err := enc.EncodeFrame(pcmFrame)
		if err != nil {
			return st, fmt.Errorf("frame %d: %w", i, err)
		}
		if err := ow.WritePacket(payload, cfg.FrameSamples); err != nil {
			return st, err
		}

		st.frames++
		st.samples += cfg.FrameSamples
		st.payload += len(payload)
		st.maxPayload = max(st.maxPayload, len(payload))
		if enc.Info().Shift > 0 {
			st.shifted++
		}
		for _, v := range enc.Coded() {
			rawQ7 = binary.LittleEndian.AppendUint16(rawQ7, uint16(v))
		}
	}
	if err := ow.Close(); err != nil {
		return st, err
	}

	st.rawQ7Bytes = len(rawQ7)
	st.zstdBytes, err = zstdSize(rawQ7)
	return st, err
}

// zstdSize returns the zstd-compressed size of data, a general-purpose
// baseline for the coded samples.
func zstdSize(data []byte) (int, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return 0, err
	}
	defer enc.Close()
	return len(enc.EncodeAll(data, nil)), nil
}

func printEncodeStats(st encodeStats, cfg frame.Config) {
	fmt.Printf("frames:          %d (%d down-scaled)\n", st.frames, st.shifted)
	if st.frames == 0 {
		return
	}
	bitsPerSample := float64(8*st.payload) / float64(st.samples)
	fmt.Printf("payload bytes:   %d (avg %.1f, max %d, limit %d per frame)\n",
		st.payload, float64(st.payload)/float64(st.frames), st.maxPayload, 2*cfg.CapacityWords)
	fmt.Printf("bits/sample:     %.3f\n", bitsPerSample)
	if st.sampleRate > 0 {
		fmt.Printf("bitrate:         %.1f kbit/s\n", bitsPerSample*float64(st.sampleRate)/1000)
	}
	fmt.Printf("zstd baseline:   %d bytes for %d bytes of raw Q7 samples\n", st.zstdBytes, st.rawQ7Bytes)
}
