package wire

// VarintSize returns the number of bytes needed to encode the given varint
func VarintSize(v uint64) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	case v < 1<<35:
		return 5
	case v < 1<<42:
		return 6
	case v < 1<<49:
		return 7
	case v < 1<<56:
		return 8
	case v < 1<<63:
		return 9
	default:
		return 10
	}
}

// VarintField encodes an unsigned integer field as a varint. The zero value
// is omitted entirely, per proto3 default-value rules. There is no zigzag
// form: callers pass the non-negative encoding of their domain value (0/1
// flags, 1-based enum indexes, counts), so a value in 128..255 simply takes
// a second varint byte.
type VarintField struct {
	Field
}

// NewVarintField creates a varint field for the given field number
func NewVarintField(number FieldNumber) VarintField {
	return VarintField{NewField(number, WireVarint)}
}

// SizeInBytes returns the encoded size of the field, or 0 when v is zero
func (f VarintField) SizeInBytes(v uint64) int {
	if v == 0 {
		return 0
	}
	return 1 + VarintSize(v)
}

// Write emits the tag byte and the varint value; a no-op when v is zero
func (f VarintField) Write(b *Buffer, v uint64) {
	if v == 0 {
		return
	}
	b.PutByte(byte(f.Tag))
	b.PutVarint(v)
}
