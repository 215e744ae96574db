package zipkinwire

import (
	"fmt"
	"log"

	"github.com/anirudhraja/zipkinwire/model"
)

// ExampleMarshal encodes a minimal span. The output is a ListOfSpans with
// one element: field 1, a length prefix, then the span payload.
func ExampleMarshal() {
	span := &model.Span{
		TraceID: "0000000000000001",
		ID:      "0000000000000002",
	}

	data, err := Marshal(span)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("% x\n", data)
	// Output: 0a 14 0a 08 00 00 00 00 00 00 00 01 1a 08 00 00 00 00 00 00 00 02
}

func ExampleMarshal_validation() {
	span := &model.Span{
		TraceID: "ABCDEF0123456789", // ids must be lowercase hex
		ID:      "0000000000000002",
	}

	_, err := Marshal(span)
	fmt.Println(err)
	// Output: invalid span field traceId: not a lowercase hex string
}

func ExampleMarshalList() {
	spans := []*model.Span{
		{TraceID: "0000000000000001", ID: "0000000000000002"},
		{TraceID: "0000000000000001", ID: "0000000000000003", Name: "get"},
	}

	data, err := MarshalList(spans)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d bytes, first byte %#x\n", len(data), data[0])
	// Output: 49 bytes, first byte 0xa
}

// ExampleAppendList fills a caller-owned buffer, tracking the cursor across
// calls the way a batching transport would.
func ExampleAppendList() {
	batch1 := []*model.Span{{TraceID: "0000000000000001", ID: "0000000000000002"}}
	batch2 := []*model.Span{{TraceID: "0000000000000001", ID: "0000000000000003"}}

	buf := make([]byte, SizeOfList(batch1)+SizeOfList(batch2))
	pos := 0

	n, err := AppendList(batch1, buf, pos)
	if err != nil {
		log.Fatal(err)
	}
	pos += n

	n, err = AppendList(batch2, buf, pos)
	if err != nil {
		log.Fatal(err)
	}
	pos += n

	fmt.Println(pos, len(buf))
	// Output: 44 44
}

func ExampleSizeOf() {
	span := &model.Span{
		TraceID: "0000000000000001",
		ID:      "0000000000000002",
		Name:    "get",
	}

	fmt.Println(SizeOf(span))
	// Output: 27
}
