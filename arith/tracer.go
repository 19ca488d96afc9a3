package arith

import (
	"fmt"
	"io"
)

// Tracer receives the interval register after every coder operation.
// The default NoopTracer ensures zero output in production.
type Tracer interface {
	TraceEncode(op string, width, streamval uint32, index int, full bool)
	TraceDecode(op string, width, streamval uint32, index int, full bool)
}

// CarryTracer is an optional interface for logging carry propagation.
// words is the number of words the carry moved back before it was absorbed.
type CarryTracer interface {
	TraceCarry(index, words int)
}

// PhantomTracer is an optional interface for logging reads past the
// declared end of a decoder's stream.
type PhantomTracer interface {
	TracePhantom(index int)
}

// NoopTracer is a no-operation tracer.
type NoopTracer struct{}

func (t *NoopTracer) TraceEncode(op string, width, streamval uint32, index int, full bool) {}
func (t *NoopTracer) TraceDecode(op string, width, streamval uint32, index int, full bool) {}

// DefaultTracer is the global tracer used by every Encoder and Decoder.
var DefaultTracer Tracer = &NoopTracer{}

// SetTracer sets the global tracer. A nil tracer restores the no-op tracer.
// SetTracer is not safe to call while coders are running.
func SetTracer(t Tracer) {
	if t == nil {
		DefaultTracer = &NoopTracer{}
	} else {
		DefaultTracer = t
	}
}

// LogTracer writes one line per traced event to W.
type LogTracer struct {
	W io.Writer
}

func (t *LogTracer) TraceEncode(op string, width, streamval uint32, index int, full bool) {
	fmt.Fprintf(t.W, "[ARITH:enc:%s] width=0x%08X streamval=0x%08X index=%d full=%d\n",
		op, width, streamval, index, boolToInt(full))
}

func (t *LogTracer) TraceDecode(op string, width, streamval uint32, index int, full bool) {
	fmt.Fprintf(t.W, "[ARITH:dec:%s] width=0x%08X streamval=0x%08X index=%d full=%d\n",
		op, width, streamval, index, boolToInt(full))
}

func (t *LogTracer) TraceCarry(index, words int) {
	fmt.Fprintf(t.W, "[ARITH:carry] index=%d words=%d\n", index, words)
}

func (t *LogTracer) TracePhantom(index int) {
	fmt.Fprintf(t.W, "[ARITH:phantom] index=%d\n", index)
}

func traceEncode(op string, e *Encoder) {
	DefaultTracer.TraceEncode(op, e.width, e.streamval, e.index, e.full)
}

func traceDecode(op string, d *Decoder) {
	DefaultTracer.TraceDecode(op, d.width, d.streamval, d.index, d.full)
}

func traceCarry(index, words int) {
	if tracer, ok := DefaultTracer.(CarryTracer); ok {
		tracer.TraceCarry(index, words)
	}
}

func tracePhantom(index int) {
	if tracer, ok := DefaultTracer.(PhantomTracer); ok {
		tracer.TracePhantom(index)
	}
}
