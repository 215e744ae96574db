package model

import "strconv"

// Kind is the span's role in an RPC or messaging exchange.
type Kind string

const (
	Client   Kind = "CLIENT"
	Server   Kind = "SERVER"
	Producer Kind = "PRODUCER"
	Consumer Kind = "CONSUMER"
)

// Index returns the kind's 1-based wire value. The empty kind maps to 0,
// which encodes as an absent field; unknown kinds also map to 0 and are
// caught by Validate before they reach the encoder.
func (k Kind) Index() uint64 {
	switch k {
	case Client:
		return 1
	case Server:
		return 2
	case Producer:
		return 3
	case Consumer:
		return 4
	}
	return 0
}

// Annotation associates an event that explains latency with a timestamp,
// in epoch microseconds.
type Annotation struct {
	Timestamp uint64 `json:"timestamp,omitempty"`
	Value     string `json:"value,omitempty"`
}

// Span is a single unit of work in a trace, modeled after the Zipkin v2
// span. IDs are lowercase hex strings: 16 or 32 characters for the trace id,
// 16 for the span and parent ids. Timestamps are epoch microseconds and
// durations microseconds.
type Span struct {
	TraceID        string            `json:"traceId"`
	ParentID       string            `json:"parentId,omitempty"`
	ID             string            `json:"id"`
	Kind           Kind              `json:"kind,omitempty"`
	Name           string            `json:"name,omitempty"`
	Timestamp      uint64            `json:"timestamp,omitempty"`
	Duration       uint64            `json:"duration,omitempty"`
	LocalEndpoint  *Endpoint         `json:"localEndpoint,omitempty"`
	RemoteEndpoint *Endpoint         `json:"remoteEndpoint,omitempty"`
	Annotations    []Annotation      `json:"annotations,omitempty"`
	Tags           map[string]string `json:"tags,omitempty"`
	Debug          bool              `json:"debug,omitempty"`
	Shared         bool              `json:"shared,omitempty"`
}

// Validate checks the invariants the encoder assumes: ids are lowercase hex
// of the right length, the kind is known, annotation values and tag keys are
// present, endpoint addresses are well-formed. Spans that pass never trip
// the encoder's internal-invariant panics.
func (s *Span) Validate() error {
	if s.TraceID == "" {
		return wrapField(ErrMissingTraceID, "traceId")
	}
	if err := checkLowerHex(s.TraceID, 16, 32); err != nil {
		return wrapField(err, "traceId")
	}
	if s.ID == "" {
		return wrapField(ErrMissingID, "id")
	}
	if err := checkLowerHex(s.ID, 16, 16); err != nil {
		return wrapField(err, "id")
	}
	if s.ParentID != "" {
		if err := checkLowerHex(s.ParentID, 16, 16); err != nil {
			return wrapField(err, "parentId")
		}
	}
	if s.Kind != "" && s.Kind.Index() == 0 {
		return wrapField(ErrUnknownKind, "kind")
	}
	if err := s.LocalEndpoint.validate(); err != nil {
		return wrapField(err, "localEndpoint")
	}
	if err := s.RemoteEndpoint.validate(); err != nil {
		return wrapField(err, "remoteEndpoint")
	}
	for i, a := range s.Annotations {
		if a.Value == "" {
			return wrapField(ErrEmptyAnnotationValue, "annotations", strconv.Itoa(i), "value")
		}
	}
	for k := range s.Tags {
		if k == "" {
			return wrapField(ErrEmptyTagKey, "tags")
		}
	}
	return nil
}

// checkLowerHex verifies v is lowercase hex of one of the two given lengths
func checkLowerHex(v string, shortLen, longLen int) error {
	if len(v) != shortLen && len(v) != longLen {
		return ErrIDLength
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') {
			continue
		}
		return ErrNotLowerHex
	}
	return nil
}
