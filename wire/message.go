package wire

// MessageField is the envelope shared by nested length-delimited message
// fields: one tag byte, a varint payload length, then the payload bytes
// written by the concrete message layout. A payload of zero bytes means the
// whole field is omitted.
type MessageField struct {
	Field
}

// NewMessageField creates a message field for the given field number
func NewMessageField(number FieldNumber) MessageField {
	return MessageField{NewField(number, WireBytes)}
}

// SizeInBytes returns the full field cost for a payload of n bytes, or 0
// when the payload is empty and the field is omitted
func (f MessageField) SizeInBytes(n int) int {
	if n == 0 {
		return 0
	}
	return SizeOfLengthDelimited(n)
}

// WriteHeader writes the tag byte and the payload length. The caller writes
// the payload next and must produce exactly n bytes.
func (f MessageField) WriteHeader(b *Buffer, n int) {
	b.PutByte(byte(f.Tag))
	b.PutVarint(uint64(n))
}

// SizeOfLengthDelimited returns the total encoded size of a length-delimited
// field carrying n payload bytes: one tag byte, the length varint, and the
// payload itself.
func SizeOfLengthDelimited(n int) int {
	return 1 + VarintSize(uint64(n)) + n
}
