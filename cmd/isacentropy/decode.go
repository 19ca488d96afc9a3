package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thesyncim/isacfix"
	"github.com/thesyncim/isacfix/container/ogg"
	"github.com/thesyncim/isacfix/frame"
	"github.com/thesyncim/isacfix/internal/pcm"
)

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	in := fs.String("in", "", "input Ogg stream")
	out := fs.String("out", "", "output audio file (.wav, .aiff, or .raw for 16-bit little-endian PCM)")
	trace := traceFlag(fs)
	fs.Parse(args)

	if *in == "" || *out == "" {
		fs.Usage()
		return errors.New("decode needs -in and -out")
	}
	defer enableTrace(*trace)()

	f, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer f.Close()

	if ext := strings.ToLower(filepath.Ext(*out)); ext == ".raw" || ext == ".pcm" {
		return decodeRawFile(*out, f)
	}

	clip, frames, err := decodeStream(f)
	if err != nil {
		return err
	}
	if err := pcm.Save(*out, clip); err != nil {
		return err
	}
	fmt.Printf("decoded %d frames, %.2f s at %d Hz\n", frames, clip.Duration(), clip.SampleRate)
	return nil
}

// decodeStream decodes every packet of an Ogg stream into one clip.
func decodeStream(r io.Reader) (*pcm.Clip, int, error) {
	or, err := ogg.NewReader(r)
	if err != nil {
		return nil, 0, err
	}
	dec, err := frame.NewDecoder(or.Header.FrameConfig())
	if err != nil {
		return nil, 0, err
	}

	clip := &pcm.Clip{SampleRate: int(or.SampleRate())}
	frames := 0
	for {
		packet, _, err := or.ReadPacket()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, frames, err
		}
		samples, _, err := dec.DecodeFrame(packet)
		if err != nil {
			return nil, frames, fmt.Errorf("frame %d: %w", frames, err)
		}
		clip.Samples = append(clip.Samples, samples...)
		frames++
	}
	return clip, frames, nil
}

func decodeRawFile(path string, r io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	n, frames, err := decodeRaw(out, r)
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Printf("decoded %d frames, %d bytes of s16le PCM\n", frames, n)
	return nil
}

// decodeRaw streams an Ogg stream to w as 16-bit little-endian PCM.
func decodeRaw(w io.Writer, r io.Reader) (int64, int, error) {
	or, err := ogg.NewReader(r)
	if err != nil {
		return 0, 0, err
	}
	dec, err := isacfix.NewReader(or.Header.FrameConfig(), isacfix.NewOggSource(or), isacfix.FormatInt16LE)
	if err != nil {
		return 0, 0, err
	}
	n, err := io.Copy(w, dec)
	return n, dec.Frames(), err
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	in := fs.String("in", "", "input Ogg stream")
	fs.Parse(args)
	if *in == "" {
		fs.Usage()
		return errors.New("inspect needs -in")
	}

	f, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer f.Close()
	return inspectStream(os.Stdout, f)
}

// inspectStream prints the headers and one line per frame.
func inspectStream(w io.Writer, r io.Reader) error {
	or, err := ogg.NewReader(r)
	if err != nil {
		return err
	}
	h := or.Header
	fmt.Fprintf(w, "serial %08x, %d Hz, %d samples/frame, %d bands, capacity %d words, scale %d, pitch gain %d\n",
		or.Serial(), h.SampleRate, h.FrameSamples, h.Bands, h.CapacityWords, h.Scale, h.PitchGainQ12)
	fmt.Fprintf(w, "vendor %q\n", or.Tags.Vendor)
	keys := make([]string, 0, len(or.Tags.Comments))
	for k := range or.Tags.Comments {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s=%s\n", k, or.Tags.Comments[k])
	}

	dec, err := frame.NewDecoder(h.FrameConfig())
	if err != nil {
		return err
	}
	for n := 0; ; n++ {
		packet, granule, err := or.ReadPacket()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		_, info, err := dec.DecodeFrame(packet)
		if err != nil {
			fmt.Fprintf(w, "frame %4d granule %8d  %4d bytes  error: %v\n", n, granule, len(packet), err)
			continue
		}
		fmt.Fprintf(w, "frame %4d granule %8d  %4d bytes  seed %3d shift %d levels %s\n",
			n, granule, len(packet), info.Seed, info.Shift, formatLevels(info.Levels))
	}
}

func formatLevels(levels []int) string {
	var sb strings.Builder
	for i, l := range levels {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%2d", l)
	}
	return sb.String()
}
