// Package zipkinwire encodes Zipkin v2 spans into the proto3 binary wire
// format without generated code or a protobuf runtime on the encode path.
// Spans are validated, sized exactly, then written in one pass into a single
// presized buffer; the encoded form is always repeated field 1 of a span
// list, so one span and a list of one are byte-identical.
package zipkinwire

import (
	"errors"
	"fmt"

	"github.com/anirudhraja/zipkinwire/model"
	"github.com/anirudhraja/zipkinwire/schema"
	"github.com/anirudhraja/zipkinwire/wire"
)

var (
	// ErrNilSpan is returned when a nil span is passed to an encode call.
	ErrNilSpan = errors.New("span is nil")

	// ErrShortBuffer is returned by AppendList when the destination cannot
	// hold the encoded list. Nothing is written in that case.
	ErrShortBuffer = errors.New("buffer too small for encoded spans")
)

// writer is stateless and shared by every call in the process.
var writer = schema.NewSpanWriter()

// Marshal encodes one span. The returned bytes decode as a ListOfSpans
// holding a single element.
func Marshal(s *model.Span) ([]byte, error) {
	if s == nil {
		return nil, ErrNilSpan
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return writer.Write(s), nil
}

// MarshalList encodes spans as repeated occurrences of field 1. An empty
// list yields an empty byte slice. Every span is validated before any byte
// is produced; an error names the index of the offending span.
func MarshalList(spans []*model.Span) ([]byte, error) {
	if err := validateAll(spans); err != nil {
		return nil, err
	}
	return writer.WriteList(spans), nil
}

// AppendList encodes spans into caller-owned memory starting at pos and
// returns the number of bytes written, 0 for an empty list. The destination
// is checked against the size pass up front, so a short buffer returns
// ErrShortBuffer with nothing written rather than a partial encode.
func AppendList(spans []*model.Span, out []byte, pos int) (int, error) {
	if err := validateAll(spans); err != nil {
		return 0, err
	}
	if pos < 0 || pos > len(out) {
		return 0, fmt.Errorf("zipkinwire: offset %d outside buffer of %d bytes", pos, len(out))
	}
	if need := SizeOfList(spans); need > len(out)-pos {
		return 0, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrShortBuffer, need, pos, len(out)-pos)
	}
	return writer.WriteListInto(spans, out, pos), nil
}

// SizeOf returns the exact number of bytes Marshal would produce for the
// span. It does not validate; callers sizing a buffer for spans they intend
// to encode validate once at the encode call.
func SizeOf(s *model.Span) int {
	if s == nil {
		return 0
	}
	return wire.SizeOfLengthDelimited(writer.SizeInBytes(s))
}

// SizeOfList returns the exact number of bytes MarshalList would produce,
// which is also the capacity AppendList needs past its offset.
func SizeOfList(spans []*model.Span) int {
	n := 0
	for _, s := range spans {
		n += SizeOf(s)
	}
	return n
}

func validateAll(spans []*model.Span) error {
	for i, s := range spans {
		if s == nil {
			return fmt.Errorf("span %d: %w", i, ErrNilSpan)
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("span %d: %w", i, err)
		}
	}
	return nil
}
