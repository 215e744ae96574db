package schema

import (
	"bytes"
	"net"
	"testing"

	"github.com/anirudhraja/zipkinwire/model"
	"google.golang.org/protobuf/encoding/protowire"
)

func testSpan() *model.Span {
	return &model.Span{
		TraceID:   "4d1e00c0db9010db86154a4ba6e91385",
		ParentID:  "86154a4ba6e91385",
		ID:        "4d1e00c0db9010db",
		Kind:      model.Client,
		Name:      "get",
		Timestamp: 1472470996199000,
		Duration:  207000,
		LocalEndpoint: &model.Endpoint{
			ServiceName: "frontend",
			IPv4:        net.ParseIP("127.0.0.1"),
		},
		RemoteEndpoint: &model.Endpoint{
			ServiceName: "backend",
			IPv4:        net.ParseIP("192.168.99.101"),
			Port:        9000,
		},
		Annotations: []model.Annotation{
			{Timestamp: 1472470996238000, Value: "ws"},
			{Timestamp: 1472470996403000, Value: "wr"},
		},
		Tags:   map[string]string{"http.path": "/api", "clnt/finagle.version": "6.45.0"},
		Shared: true,
	}
}

// fieldNumbers walks a message payload and returns its field numbers in
// wire order.
func fieldNumbers(t *testing.T, payload []byte) []int32 {
	t.Helper()
	var numbers []int32
	for len(payload) > 0 {
		num, typ, n := protowire.ConsumeTag(payload)
		if n < 0 {
			t.Fatalf("consume tag: %v", protowire.ParseError(n))
		}
		payload = payload[n:]
		numbers = append(numbers, int32(num))

		n = protowire.ConsumeFieldValue(num, typ, payload)
		if n < 0 {
			t.Fatalf("consume field %d: %v", num, protowire.ParseError(n))
		}
		payload = payload[n:]
	}
	return numbers
}

// spanPayload strips the enclosing field-1 envelope from an encoded span
func spanPayload(t *testing.T, data []byte) []byte {
	t.Helper()
	num, typ, n := protowire.ConsumeTag(data)
	if n < 0 || num != 1 || typ != protowire.BytesType {
		t.Fatalf("expected field 1 length-delimited envelope, got field %d type %v", num, typ)
	}
	payload, m := protowire.ConsumeBytes(data[n:])
	if m < 0 {
		t.Fatalf("consume span payload: %v", protowire.ParseError(m))
	}
	return payload
}

func TestWriteGoldenBytes(t *testing.T) {
	span := &model.Span{TraceID: "0000000000000001", ID: "0000000000000002"}
	got := NewSpanWriter().Write(span)

	want := []byte{
		0x0a, 0x14, // list: field 1, 20-byte span
		0x0a, 0x08, 0, 0, 0, 0, 0, 0, 0, 1, // trace_id
		0x1a, 0x08, 0, 0, 0, 0, 0, 0, 0, 2, // id
	}
	if !bytes.Equal(got, want) {
		t.Errorf("expected % x, got % x", want, got)
	}
}

func TestWriteStartsWithSpanFieldTag(t *testing.T) {
	got := NewSpanWriter().Write(testSpan())
	if got[0] != 0x0a {
		t.Errorf("expected leading byte 0x0a (field 1, length-delimited), got %#x", got[0])
	}
}

func TestWriteFieldsAscendingOrder(t *testing.T) {
	payload := spanPayload(t, NewSpanWriter().Write(testSpan()))
	numbers := fieldNumbers(t, payload)

	for i := 1; i < len(numbers); i++ {
		if numbers[i] < numbers[i-1] {
			t.Fatalf("field %d written after field %d: %v", numbers[i], numbers[i-1], numbers)
		}
	}
}

func TestWriteOmitsDefaultFields(t *testing.T) {
	span := &model.Span{TraceID: "86154a4ba6e91385", ID: "4d1e00c0db9010db"}
	payload := spanPayload(t, NewSpanWriter().Write(span))

	numbers := fieldNumbers(t, payload)
	want := []int32{1, 3} // trace_id and id only
	if len(numbers) != len(want) || numbers[0] != want[0] || numbers[1] != want[1] {
		t.Errorf("expected fields %v, got %v", want, numbers)
	}
}

func TestWriteDropsEmptyEndpoints(t *testing.T) {
	span := &model.Span{
		TraceID:        "86154a4ba6e91385",
		ID:             "4d1e00c0db9010db",
		LocalEndpoint:  &model.Endpoint{},
		RemoteEndpoint: nil,
	}
	payload := spanPayload(t, NewSpanWriter().Write(span))

	for _, num := range fieldNumbers(t, payload) {
		if num == 8 || num == 9 {
			t.Errorf("expected empty endpoints to be omitted, found field %d", num)
		}
	}
}

func TestWriteSkipsEmptyAnnotations(t *testing.T) {
	span := &model.Span{
		TraceID:     "86154a4ba6e91385",
		ID:          "4d1e00c0db9010db",
		Annotations: []model.Annotation{{}},
	}
	payload := spanPayload(t, NewSpanWriter().Write(span))

	for _, num := range fieldNumbers(t, payload) {
		if num == 10 {
			t.Errorf("expected all-default annotation to be omitted, found field %d", num)
		}
	}
}

func TestEndpointAddressWidths(t *testing.T) {
	span := &model.Span{
		TraceID: "86154a4ba6e91385",
		ID:      "4d1e00c0db9010db",
		LocalEndpoint: &model.Endpoint{
			IPv4: net.ParseIP("192.168.99.101"),
			IPv6: net.ParseIP("2001:db8::c001"),
		},
	}
	payload := spanPayload(t, NewSpanWriter().Write(span))

	// skip to field 8 and unwrap the endpoint payload
	var endpoint []byte
	rest := payload
	for len(rest) > 0 {
		num, typ, n := protowire.ConsumeTag(rest)
		if n < 0 {
			t.Fatalf("consume tag: %v", protowire.ParseError(n))
		}
		rest = rest[n:]
		if num == 8 {
			endpoint, n = protowire.ConsumeBytes(rest)
			if n < 0 {
				t.Fatalf("consume endpoint: %v", protowire.ParseError(n))
			}
			break
		}
		n = protowire.ConsumeFieldValue(num, typ, rest)
		if n < 0 {
			t.Fatalf("skip field %d: %v", num, protowire.ParseError(n))
		}
		rest = rest[n:]
	}
	if endpoint == nil {
		t.Fatal("local endpoint field not found")
	}

	widths := map[int32]int{}
	for len(endpoint) > 0 {
		num, _, n := protowire.ConsumeTag(endpoint)
		if n < 0 {
			t.Fatalf("consume tag: %v", protowire.ParseError(n))
		}
		endpoint = endpoint[n:]
		v, n := protowire.ConsumeBytes(endpoint)
		if n < 0 {
			t.Fatalf("consume address: %v", protowire.ParseError(n))
		}
		widths[int32(num)] = len(v)
		endpoint = endpoint[n:]
	}
	if widths[2] != 4 {
		t.Errorf("expected 4-byte ipv4, got %d", widths[2])
	}
	if widths[3] != 16 {
		t.Errorf("expected 16-byte ipv6, got %d", widths[3])
	}
}

func TestKindWireValues(t *testing.T) {
	tests := []struct {
		kind model.Kind
		want uint64
	}{
		{model.Client, 1},
		{model.Server, 2},
		{model.Producer, 3},
		{model.Consumer, 4},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			span := &model.Span{TraceID: "86154a4ba6e91385", ID: "4d1e00c0db9010db", Kind: tt.kind}
			payload := spanPayload(t, NewSpanWriter().Write(span))

			rest := payload
			var got uint64
			found := false
			for len(rest) > 0 {
				num, typ, n := protowire.ConsumeTag(rest)
				if n < 0 {
					t.Fatalf("consume tag: %v", protowire.ParseError(n))
				}
				rest = rest[n:]
				if num == 4 {
					got, n = protowire.ConsumeVarint(rest)
					if n < 0 {
						t.Fatalf("consume kind: %v", protowire.ParseError(n))
					}
					found = true
					break
				}
				n = protowire.ConsumeFieldValue(num, typ, rest)
				if n < 0 {
					t.Fatalf("skip field %d: %v", num, protowire.ParseError(n))
				}
				rest = rest[n:]
			}
			if !found {
				t.Fatal("kind field not found")
			}
			if got != tt.want {
				t.Errorf("expected kind value %d, got %d", tt.want, got)
			}
		})
	}
}

func TestTagOrderDeterministic(t *testing.T) {
	span := &model.Span{
		TraceID: "86154a4ba6e91385",
		ID:      "4d1e00c0db9010db",
		Tags: map[string]string{
			"zeta": "z", "alpha": "a", "mid": "m", "beta": "b", "omega": "o",
		},
	}

	w := NewSpanWriter()
	first := w.Write(span)
	for i := 0; i < 10; i++ {
		if next := w.Write(span); !bytes.Equal(first, next) {
			t.Fatalf("two writes of the same span differ:\n% x\n% x", first, next)
		}
	}
}

func TestSizeOfSpanMatchesWrittenPayload(t *testing.T) {
	spans := []*model.Span{
		testSpan(),
		{TraceID: "86154a4ba6e91385", ID: "4d1e00c0db9010db"},
		{TraceID: "86154a4ba6e91385", ID: "4d1e00c0db9010db", Debug: true},
	}
	for _, span := range spans {
		payload := spanPayload(t, NewSpanWriter().Write(span))
		if got := sizeOfSpan(span); got != len(payload) {
			t.Errorf("size pass said %d bytes, write pass produced %d", got, len(payload))
		}
	}
}
