package a2s

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// Builder assembles an outgoing packet from A2S wire primitives. All
// multi-byte values are written little-endian. A Builder is append-only;
// once a request is built it is read back only by the server.
type Builder struct {
	buf []byte
}

// NewBuilder returns an empty packet builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// PutByte appends a single byte.
func (b *Builder) PutByte(v byte) {
	b.buf = append(b.buf, v)
}

// PutShort appends a signed 16-bit integer.
func (b *Builder) PutShort(v int16) {
	b.buf = binary.LittleEndian.AppendUint16(b.buf, uint16(v))
}

// PutLong appends a signed 32-bit integer.
func (b *Builder) PutLong(v int32) {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, uint32(v))
}

// PutLongLong appends an unsigned 64-bit integer.
func (b *Builder) PutLongLong(v uint64) {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, v)
}

// PutFloat appends a 32-bit IEEE-754 float.
func (b *Builder) PutFloat(v float32) {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, math.Float32bits(v))
}

// PutString appends the UTF-8 bytes of s followed by a single NUL
// terminator. An embedded NUL in s desynchronizes the terminator scan on
// the reading side; callers must not pass strings containing one.
func (b *Builder) PutString(s string) {
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, 0)
}

// Bytes returns the accumulated packet. The returned slice aliases the
// builder's buffer and is valid until the next Put call.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Cursor is a forward-only reader over a received packet. Reads that would
// run past the end of the buffer fail without advancing the position, so a
// failed read leaves the cursor where it was.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{buf: data}
}

// Rewind moves the cursor back to the start of the packet.
func (c *Cursor) Rewind() {
	c.pos = 0
}

// Remaining reports how many unread bytes are left.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// take returns the next n bytes and advances the cursor, or fails leaving
// the cursor untouched.
func (c *Cursor) take(n int) ([]byte, error) {
	if c.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes, %d remain", ErrMalformedPacket, n, c.Remaining())
	}
	v := c.buf[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

// Byte reads a single byte.
func (c *Cursor) Byte() (byte, error) {
	v, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

// Short reads a signed little-endian 16-bit integer.
func (c *Cursor) Short() (int16, error) {
	v, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(v)), nil
}

// Long reads a signed little-endian 32-bit integer.
func (c *Cursor) Long() (int32, error) {
	v, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(v)), nil
}

// LongLong reads an unsigned little-endian 64-bit integer.
func (c *Cursor) LongLong() (uint64, error) {
	v, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(v), nil
}

// Float reads a little-endian 32-bit IEEE-754 float.
func (c *Cursor) Float() (float32, error) {
	v, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(v)), nil
}

// String reads bytes up to the next NUL terminator, decodes them as UTF-8
// and advances past the terminator. It fails if no terminator exists before
// the end of the buffer or if the bytes are not valid UTF-8.
func (c *Cursor) String() (string, error) {
	end := bytes.IndexByte(c.buf[c.pos:], 0)
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated string", ErrMalformedPacket)
	}
	raw := c.buf[c.pos : c.pos+end]
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: string is not valid UTF-8", ErrMalformedPacket)
	}
	c.pos += end + 1
	return string(raw), nil
}
