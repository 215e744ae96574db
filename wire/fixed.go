package wire

// Fixed64Field encodes a 64-bit value as 8 little-endian bytes after the
// tag. A zero value is omitted entirely, per proto3 default-value rules, so
// a present field always costs exactly 9 bytes.
type Fixed64Field struct {
	Field
}

// NewFixed64Field creates a fixed64 field for the given field number
func NewFixed64Field(number FieldNumber) Fixed64Field {
	return Fixed64Field{NewField(number, WireFixed64)}
}

// SizeInBytes returns 9 (tag + 8 value bytes), or 0 when v is zero
func (f Fixed64Field) SizeInBytes(v uint64) int {
	if v == 0 {
		return 0
	}
	return 1 + 8
}

// Write emits the tag byte and 8 little-endian bytes; a no-op for zero
func (f Fixed64Field) Write(b *Buffer, v uint64) {
	if v == 0 {
		return
	}
	b.PutByte(byte(f.Tag))
	b.PutFixed64(v)
}

// Fixed32Field is the 4-byte counterpart of Fixed64Field: a present field
// always costs exactly 5 bytes, a zero value costs none.
type Fixed32Field struct {
	Field
}

// NewFixed32Field creates a fixed32 field for the given field number
func NewFixed32Field(number FieldNumber) Fixed32Field {
	return Fixed32Field{NewField(number, WireFixed32)}
}

// SizeInBytes returns 5 (tag + 4 value bytes), or 0 when v is zero
func (f Fixed32Field) SizeInBytes(v uint32) int {
	if v == 0 {
		return 0
	}
	return 1 + 4
}

// Write emits the tag byte and 4 little-endian bytes; a no-op for zero
func (f Fixed32Field) Write(b *Buffer, v uint32) {
	if v == 0 {
		return
	}
	b.PutByte(byte(f.Tag))
	b.PutFixed32(v)
}
