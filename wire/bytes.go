package wire

import (
	"fmt"
)

// BytesField encodes a raw byte sequence as a length-delimited field. A nil
// or empty value is omitted entirely, per proto3 default-value rules.
type BytesField struct {
	Field
}

// NewBytesField creates a bytes field for the given field number
func NewBytesField(number FieldNumber) BytesField {
	return BytesField{NewField(number, WireBytes)}
}

// SizeInBytes returns the encoded size of the field, or 0 for an empty value
func (f BytesField) SizeInBytes(v []byte) int {
	if len(v) == 0 {
		return 0
	}
	return SizeOfLengthDelimited(len(v))
}

// Write emits tag, length and the bytes verbatim; a no-op for empty values
func (f BytesField) Write(b *Buffer, v []byte) {
	if len(v) == 0 {
		return
	}
	b.PutByte(byte(f.Tag))
	b.PutVarint(uint64(len(v)))
	b.PutBytes(v)
}

// Utf8Field encodes a string as a length-delimited UTF-8 field. The empty
// string is omitted entirely.
type Utf8Field struct {
	Field
}

// NewUtf8Field creates a UTF-8 string field for the given field number
func NewUtf8Field(number FieldNumber) Utf8Field {
	return Utf8Field{NewField(number, WireBytes)}
}

// SizeInBytes returns the encoded size of the field, or 0 for an empty string
func (f Utf8Field) SizeInBytes(v string) int {
	if v == "" {
		return 0
	}
	return SizeOfLengthDelimited(Utf8Size(v))
}

// Write emits tag, byte length and the UTF-8 bytes of v
func (f Utf8Field) Write(b *Buffer, v string) {
	if v == "" {
		return
	}
	b.PutByte(byte(f.Tag))
	b.PutVarint(uint64(Utf8Size(v)))
	b.PutUtf8(v)
}

// HexField encodes a lowercase-hex string as the raw bytes it spells out,
// length-delimited. Values reach this layer already validated, so an odd
// length or a character outside [0-9a-f] is an internal invariant failure
// and panics.
type HexField struct {
	Field
}

// NewHexField creates a lower-hex field for the given field number
func NewHexField(number FieldNumber) HexField {
	return HexField{NewField(number, WireBytes)}
}

// SizeInBytes returns the encoded size of the field, or 0 for an empty string
func (f HexField) SizeInBytes(v string) int {
	if v == "" {
		return 0
	}
	return SizeOfLengthDelimited(len(v) / 2)
}

// Write decodes two hex characters per payload byte after tag and length
func (f HexField) Write(b *Buffer, v string) {
	if v == "" {
		return
	}
	if len(v)%2 != 0 {
		panic(fmt.Sprintf("wire: odd-length hex %q", v))
	}
	b.PutByte(byte(f.Tag))
	b.PutVarint(uint64(len(v) / 2))
	for i := 0; i < len(v); i += 2 {
		b.PutByte(hexDigit(v[i])<<4 | hexDigit(v[i+1]))
	}
}

// hexDigit maps one lowercase hex character to its 4-bit value
func hexDigit(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	}
	panic(fmt.Sprintf("wire: %q is not a lowercase hex character", c))
}
