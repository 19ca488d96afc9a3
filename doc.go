// Package isacfix streams PCM audio through the iSAC fixed-point
// arithmetic coding engine.
//
// The engine itself lives in package arith, with its piecewise-linear
// model tables in package piecewise. Package frame builds a complete frame
// bitstream on top of the engine and container/ogg stores frame payloads
// in an Ogg stream. This package adds io.Reader and io.Writer wrappers
// that handle frame boundaries so audio can be moved with the standard io
// helpers.
//
// # Streaming Encode
//
//	sink := &MyPacketSink{} // implements PacketSink
//	w, err := isacfix.NewWriter(frame.DefaultConfig(), sink, isacfix.FormatInt16LE)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	io.Copy(w, pcmInput)
//	w.Flush() // code any buffered samples as a zero-padded frame
//
// # Streaming Decode
//
//	r, err := isacfix.NewReader(frame.DefaultConfig(), source, isacfix.FormatFloat32LE)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	io.Copy(pcmOutput, r)
//
// NewOggSink and NewOggSource connect the wrappers to an Ogg stream.
package isacfix
