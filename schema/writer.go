package schema

import (
	"github.com/anirudhraja/zipkinwire/model"
	"github.com/anirudhraja/zipkinwire/wire"
)

// SpanWriter drives the two-pass size-then-write protocol: it asks the span
// layout for an exact byte count, presizes one buffer, then writes into it.
// The writer holds no state, so the zero value is ready to use and a single
// writer is safe for any number of concurrent goroutines; only the buffers
// created per call are mutable.
type SpanWriter struct{}

// NewSpanWriter creates a span writer
func NewSpanWriter() *SpanWriter {
	return &SpanWriter{}
}

// SizeInBytes returns the unprefixed payload size of the span: the bytes
// its message content occupies before the enclosing tag and length.
func (w *SpanWriter) SizeInBytes(s *model.Span) int {
	return sizeOfSpan(s)
}

// Write encodes one span as field 1 of an enclosing list message, so a
// single encoded span and a list of one are byte-identical.
func (w *SpanWriter) Write(s *model.Span) []byte {
	n := sizeOfSpan(s)
	buf := wire.NewBuffer(wire.SizeOfLengthDelimited(n))
	spanMessage.WriteHeader(buf, n)
	writeSpan(buf, s)
	return buf.Bytes()
}

// WriteList encodes spans as repeated occurrences of field 1. An empty list
// yields no bytes at all; a list of one is identical to Write; longer lists
// cache each span's payload size from the first pass, presize one buffer for
// the sum, and fill it sequentially, so a list of any length costs a single
// allocation.
func (w *SpanWriter) WriteList(spans []*model.Span) []byte {
	count := len(spans)
	if count == 0 {
		return nil
	}
	if count == 1 {
		return w.Write(spans[0])
	}

	sizes := make([]int, count)
	total := 0
	for i, s := range spans {
		sizes[i] = sizeOfSpan(s)
		total += wire.SizeOfLengthDelimited(sizes[i])
	}

	buf := wire.NewBuffer(total)
	for i, s := range spans {
		spanMessage.WriteHeader(buf, sizes[i])
		writeSpan(buf, s)
	}
	return buf.Bytes()
}

// WriteListInto encodes spans as repeated field 1 into caller-owned memory
// starting at pos and returns the number of bytes written, 0 for an empty
// list. The caller tracks its own cursor across successive calls sharing
// one large buffer.
func (w *SpanWriter) WriteListInto(spans []*model.Span, out []byte, pos int) int {
	if len(spans) == 0 {
		return 0
	}
	buf := wire.WrapBuffer(out, pos)
	for _, s := range spans {
		spanMessage.WriteHeader(buf, sizeOfSpan(s))
		writeSpan(buf, s)
	}
	return buf.Pos() - pos
}
