// Command isacentropy runs audio files through the iSAC frame codec and
// stores the payloads in an Ogg stream.
//
// Usage:
//
//	isacentropy encode -in speech.wav -out speech.isac
//	isacentropy encode -synth chirp -seconds 2 -out chirp.isac
//	isacentropy decode -in speech.isac -out decoded.wav
//	isacentropy inspect -in speech.isac
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/thesyncim/isacfix/arith"
	"github.com/thesyncim/isacfix/frame"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("isacentropy: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "encode":
		err = runEncode(args)
	case "decode":
		err = runDecode(args)
	case "inspect":
		err = runInspect(args)
	case "-h", "-help", "help":
		usage()
		return
	default:
		log.Printf("unknown command %q", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: isacentropy <encode|decode|inspect> [flags]")
	fmt.Fprintln(os.Stderr, "run 'isacentropy <command> -h' for command flags")
}

// frameFlags registers the frame.Config flags on fs.
func frameFlags(fs *flag.FlagSet, cfg *frame.Config) {
	fs.IntVar(&cfg.FrameSamples, "frame", cfg.FrameSamples, "samples per frame")
	fs.IntVar(&cfg.Bands, "bands", cfg.Bands, "level bands per frame")
	fs.IntVar(&cfg.CapacityWords, "capacity", cfg.CapacityWords, "payload capacity in 16-bit words")
	fs.IntVar(&cfg.Scale, "scale", cfg.Scale, "Q7 units per full-scale sample")
	fs.IntVar(&cfg.PitchGainQ12, "pitch", cfg.PitchGainQ12, "average pitch gain (Q12) selecting the dither pattern")
	fs.IntVar(&cfg.MaxShift, "maxshift", cfg.MaxShift, "down-scaling retries before a frame is dropped")
	fs.Func("seed", "initial dither seed (default 0)", func(s string) error {
		v, err := strconv.ParseUint(s, 0, 32)
		cfg.Seed = uint32(v)
		return err
	})
}

// traceFlag registers -trace, which routes coder tracing to stderr.
func traceFlag(fs *flag.FlagSet) *bool {
	return fs.Bool("trace", false, "log every arithmetic coder operation to stderr")
}

func enableTrace(on bool) func() {
	if !on {
		return func() {}
	}
	arith.SetTracer(&arith.LogTracer{W: os.Stderr})
	return func() { arith.SetTracer(nil) }
}
