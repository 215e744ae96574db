package wire

import "fmt"

// ===== PROTOBUF WIRE FORMAT TYPES =====

// WireType represents protobuf wire format types
type WireType int32

const (
	WireVarint  WireType = 0 // uint32, uint64, bool, enum
	WireFixed64 WireType = 1 // fixed64
	WireBytes   WireType = 2 // string, bytes, embedded messages, map entries
	WireFixed32 WireType = 5 // fixed32
)

// FieldNumber represents a protobuf field number
type FieldNumber int32

// MaxFieldNumber is the largest field number whose tag still fits in one
// byte. Every field this codec emits stays at or below it, so a tag is
// always exactly one byte on the wire.
const MaxFieldNumber FieldNumber = 15

// Tag is the single leading byte of an encoded field: (number << 3) | type.
type Tag byte

// MakeTag creates a tag from field number and wire type. Field numbers
// outside 1..15 cannot fit a single-byte tag and panic at construction,
// which surfaces a bad layout the moment its package initializes.
func MakeTag(fieldNumber FieldNumber, wireType WireType) Tag {
	if fieldNumber < 1 || fieldNumber > MaxFieldNumber {
		panic(fmt.Sprintf("wire: field number %d does not fit a single-byte tag", fieldNumber))
	}
	return Tag(byte(fieldNumber)<<3 | byte(wireType))
}

// ParseTag parses a tag into field number and wire type
func ParseTag(tag Tag) (FieldNumber, WireType) {
	return FieldNumber(tag >> 3), WireType(tag & 0x7)
}

// Field carries the identity of one message field: its number, wire type and
// precomputed tag byte. Fields hold no per-record state and are shared
// across all records and goroutines.
type Field struct {
	Number FieldNumber
	Type   WireType
	Tag    Tag
}

// NewField builds a field, computing its tag once at construction
func NewField(number FieldNumber, wireType WireType) Field {
	return Field{Number: number, Type: wireType, Tag: MakeTag(number, wireType)}
}
