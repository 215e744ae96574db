package wire

import (
	"encoding/binary"
	"fmt"
)

// Buffer is a fixed-capacity byte region with a write cursor. It is either
// presized to an exact encoded size (NewBuffer) or wraps caller-owned memory
// starting at an offset (WrapBuffer). Writes never grow it: running past the
// capacity means the size pass and the write pass disagreed about the same
// record, so the buffer panics instead of reallocating or truncating.
type Buffer struct {
	buf []byte
	pos int
}

// NewBuffer creates a buffer owning a fresh region of exactly size bytes
func NewBuffer(size int) *Buffer {
	return &Buffer{buf: make([]byte, size)}
}

// WrapBuffer creates a buffer over caller-owned memory, writing from pos
func WrapBuffer(buf []byte, pos int) *Buffer {
	if pos < 0 || pos > len(buf) {
		panic(fmt.Sprintf("wire: wrap offset %d outside buffer of %d bytes", pos, len(buf)))
	}
	return &Buffer{buf: buf, pos: pos}
}

// reserve claims n bytes at the cursor and returns their start offset
func (b *Buffer) reserve(n int) int {
	if len(b.buf)-b.pos < n {
		panic(fmt.Sprintf("wire: buffer overflow: need %d bytes at offset %d of %d", n, b.pos, len(b.buf)))
	}
	p := b.pos
	b.pos += n
	return p
}

// PutByte writes a single byte
func (b *Buffer) PutByte(v byte) {
	b.buf[b.reserve(1)] = v
}

// PutBytes writes raw bytes verbatim
func (b *Buffer) PutBytes(v []byte) {
	p := b.reserve(len(v))
	copy(b.buf[p:], v)
}

// PutUtf8 writes the UTF-8 bytes of s with no length prefix; length-delimited
// callers write their own prefix first.
func (b *Buffer) PutUtf8(s string) {
	p := b.reserve(len(s))
	copy(b.buf[p:], s)
}

// PutVarint writes v as a base-128 varint, low groups first, continuation
// bit set on every byte but the last
func (b *Buffer) PutVarint(v uint64) {
	for v >= 0x80 {
		b.PutByte(byte(v) | 0x80)
		v >>= 7
	}
	b.PutByte(byte(v))
}

// PutFixed32 writes exactly 4 little-endian bytes
func (b *Buffer) PutFixed32(v uint32) {
	p := b.reserve(4)
	binary.LittleEndian.PutUint32(b.buf[p:], v)
}

// PutFixed64 writes exactly 8 little-endian bytes
func (b *Buffer) PutFixed64(v uint64) {
	p := b.reserve(8)
	binary.LittleEndian.PutUint64(b.buf[p:], v)
}

// Pos returns the current write position
func (b *Buffer) Pos() int {
	return b.pos
}

// Bytes returns the underlying region
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Utf8Size returns the encoded byte length of s, the size-probe counterpart
// of PutUtf8. Go strings already hold UTF-8 bytes, so this is len(s).
func Utf8Size(s string) int {
	return len(s)
}
