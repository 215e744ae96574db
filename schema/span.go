// Package schema fixes the proto3 field layout of the Zipkin v2 span and
// composes the wire field codecs into whole-span size and write passes.
package schema

import (
	"sort"

	"github.com/anirudhraja/zipkinwire/model"
	"github.com/anirudhraja/zipkinwire/wire"
)

// Endpoint fields.
var (
	endpointServiceName = wire.NewUtf8Field(1)
	endpointIPv4        = wire.NewBytesField(2)
	endpointIPv6        = wire.NewBytesField(3)
	endpointPort        = wire.NewVarintField(4)
)

// Annotation fields.
var (
	annotationTimestamp = wire.NewFixed64Field(1)
	annotationValue     = wire.NewUtf8Field(2)
)

// Span fields. Hex ids encode as their raw bytes, the kind as a 1-based
// enum index, timestamps as fixed64 microseconds, durations as varint
// microseconds.
var (
	spanTraceID        = wire.NewHexField(1)
	spanParentID       = wire.NewHexField(2)
	spanID             = wire.NewHexField(3)
	spanKind           = wire.NewVarintField(4)
	spanName           = wire.NewUtf8Field(5)
	spanTimestamp      = wire.NewFixed64Field(6)
	spanDuration       = wire.NewVarintField(7)
	spanLocalEndpoint  = wire.NewMessageField(8)
	spanRemoteEndpoint = wire.NewMessageField(9)
	spanAnnotation     = wire.NewMessageField(10)
	spanTag            = wire.NewMapEntryField(11)
	spanDebug          = wire.NewVarintField(12)
	spanShared         = wire.NewVarintField(13)
)

// spanMessage is the field each encoded span occupies in its enclosing
// message: field 1, length-delimited, whether one span or many are written.
var spanMessage = wire.NewMessageField(1)

// sizeOfSpan returns the unprefixed payload size of one span. Tag entries
// sum in any order, so this pass iterates the map directly; the write pass
// sorts keys for deterministic output.
func sizeOfSpan(s *model.Span) int {
	n := spanTraceID.SizeInBytes(s.TraceID)
	n += spanParentID.SizeInBytes(s.ParentID)
	n += spanID.SizeInBytes(s.ID)
	n += spanKind.SizeInBytes(s.Kind.Index())
	n += spanName.SizeInBytes(s.Name)
	n += spanTimestamp.SizeInBytes(s.Timestamp)
	n += spanDuration.SizeInBytes(s.Duration)
	n += spanLocalEndpoint.SizeInBytes(sizeOfEndpoint(s.LocalEndpoint))
	n += spanRemoteEndpoint.SizeInBytes(sizeOfEndpoint(s.RemoteEndpoint))
	for _, a := range s.Annotations {
		n += spanAnnotation.SizeInBytes(sizeOfAnnotation(a))
	}
	for k, v := range s.Tags {
		n += spanTag.SizeInBytes(k, v)
	}
	n += spanDebug.SizeInBytes(flag(s.Debug))
	n += spanShared.SizeInBytes(flag(s.Shared))
	return n
}

// writeSpan writes the span payload in ascending field-number order
func writeSpan(b *wire.Buffer, s *model.Span) {
	spanTraceID.Write(b, s.TraceID)
	spanParentID.Write(b, s.ParentID)
	spanID.Write(b, s.ID)
	spanKind.Write(b, s.Kind.Index())
	spanName.Write(b, s.Name)
	spanTimestamp.Write(b, s.Timestamp)
	spanDuration.Write(b, s.Duration)
	writeEndpoint(b, spanLocalEndpoint, s.LocalEndpoint)
	writeEndpoint(b, spanRemoteEndpoint, s.RemoteEndpoint)
	for _, a := range s.Annotations {
		n := sizeOfAnnotation(a)
		if n == 0 {
			continue
		}
		spanAnnotation.WriteHeader(b, n)
		writeAnnotation(b, a)
	}
	for _, k := range sortedTagKeys(s.Tags) {
		spanTag.Write(b, k, s.Tags[k])
	}
	spanDebug.Write(b, flag(s.Debug))
	spanShared.Write(b, flag(s.Shared))
}

// sizeOfEndpoint returns the payload size of an endpoint message, 0 when
// the endpoint is empty and its parent field must be omitted. Emptiness is
// one check against the all-default value, not a walk of encoded sizes.
func sizeOfEndpoint(e *model.Endpoint) int {
	if e.Empty() {
		return 0
	}
	n := endpointServiceName.SizeInBytes(e.ServiceName)
	n += endpointIPv4.SizeInBytes(ipv4Bytes(e))
	n += endpointIPv6.SizeInBytes(ipv6Bytes(e))
	n += endpointPort.SizeInBytes(uint64(e.Port))
	return n
}

// writeEndpoint writes the endpoint under the given span field; a no-op for
// empty endpoints
func writeEndpoint(b *wire.Buffer, f wire.MessageField, e *model.Endpoint) {
	n := sizeOfEndpoint(e)
	if n == 0 {
		return
	}
	f.WriteHeader(b, n)
	endpointServiceName.Write(b, e.ServiceName)
	endpointIPv4.Write(b, ipv4Bytes(e))
	endpointIPv6.Write(b, ipv6Bytes(e))
	endpointPort.Write(b, uint64(e.Port))
}

// ipv4Bytes is the 4-byte wire form of the endpoint's IPv4 address, nil
// when absent or not representable in 4 bytes
func ipv4Bytes(e *model.Endpoint) []byte {
	return e.IPv4.To4()
}

// ipv6Bytes is the 16-byte wire form of the endpoint's IPv6 address, nil
// when absent; v4-representable addresses stay out of this field
func ipv6Bytes(e *model.Endpoint) []byte {
	if len(e.IPv6) == 0 || e.IPv6.To4() != nil {
		return nil
	}
	return e.IPv6.To16()
}

// sizeOfAnnotation is the payload size of one annotation message
func sizeOfAnnotation(a model.Annotation) int {
	return annotationTimestamp.SizeInBytes(a.Timestamp) + annotationValue.SizeInBytes(a.Value)
}

// writeAnnotation writes the annotation payload
func writeAnnotation(b *wire.Buffer, a model.Annotation) {
	annotationTimestamp.Write(b, a.Timestamp)
	annotationValue.Write(b, a.Value)
}

// flag is the varint wire value of a bool
func flag(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

// sortedTagKeys returns tag keys in sorted order. Map iteration order is
// randomized per run; sorting keeps encoded output deterministic.
func sortedTagKeys(tags map[string]string) []string {
	if len(tags) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FieldAssignment names one hand-written field number so tests and tools
// can check it against the canonical definition.
type FieldAssignment struct {
	Message string // "Span"
	Field   string // "trace_id"
	Number  int32  // 1
}

// Layout returns every field number this package assigns, in wire order.
func Layout() []FieldAssignment {
	return []FieldAssignment{
		{"ListOfSpans", "spans", int32(spanMessage.Number)},
		{"Span", "trace_id", int32(spanTraceID.Number)},
		{"Span", "parent_id", int32(spanParentID.Number)},
		{"Span", "id", int32(spanID.Number)},
		{"Span", "kind", int32(spanKind.Number)},
		{"Span", "name", int32(spanName.Number)},
		{"Span", "timestamp", int32(spanTimestamp.Number)},
		{"Span", "duration", int32(spanDuration.Number)},
		{"Span", "local_endpoint", int32(spanLocalEndpoint.Number)},
		{"Span", "remote_endpoint", int32(spanRemoteEndpoint.Number)},
		{"Span", "annotations", int32(spanAnnotation.Number)},
		{"Span", "tags", int32(spanTag.Number)},
		{"Span", "debug", int32(spanDebug.Number)},
		{"Span", "shared", int32(spanShared.Number)},
		{"Endpoint", "service_name", int32(endpointServiceName.Number)},
		{"Endpoint", "ipv4", int32(endpointIPv4.Number)},
		{"Endpoint", "ipv6", int32(endpointIPv6.Number)},
		{"Endpoint", "port", int32(endpointPort.Number)},
		{"Annotation", "timestamp", int32(annotationTimestamp.Number)},
		{"Annotation", "value", int32(annotationValue.Number)},
	}
}
