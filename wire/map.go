package wire

// MapEntryField encodes one key/value string pair as an embedded message
// with two fixed sub-fields (key = 1, value = 2). Every pair of a map is
// emitted as its own occurrence of the same outer field number, which is how
// proto3 encodes maps without a native map type. An entry whose key and
// value are both empty carries no payload and is omitted entirely.
type MapEntryField struct {
	Field
	key   Utf8Field
	value Utf8Field
}

// NewMapEntryField creates a map-entry field for the given field number
func NewMapEntryField(number FieldNumber) MapEntryField {
	return MapEntryField{
		Field: NewField(number, WireBytes),
		key:   NewUtf8Field(1),
		value: NewUtf8Field(2),
	}
}

// SizeInBytes returns the encoded size of one entry, or 0 when both the key
// and the value are empty
func (f MapEntryField) SizeInBytes(key, value string) int {
	n := f.sizeOfEntry(key, value)
	if n == 0 {
		return 0
	}
	return SizeOfLengthDelimited(n)
}

// Write emits the entry's tag, payload length and both sub-fields
func (f MapEntryField) Write(b *Buffer, key, value string) {
	n := f.sizeOfEntry(key, value)
	if n == 0 {
		return
	}
	b.PutByte(byte(f.Tag))
	b.PutVarint(uint64(n))
	f.key.Write(b, key)
	f.value.Write(b, value)
}

// sizeOfEntry is the payload size of the embedded entry message
func (f MapEntryField) sizeOfEntry(key, value string) int {
	return f.key.SizeInBytes(key) + f.value.SizeInBytes(value)
}
