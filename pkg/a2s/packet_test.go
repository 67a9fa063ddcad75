package a2s

import (
	"errors"
	"math"
	"testing"
)

func TestBuilderCursorRoundTrip(t *testing.T) {
	b := NewBuilder()
	b.PutByte(0x7F)
	b.PutShort(-12345)
	b.PutLong(-2)
	b.PutLongLong(math.MaxUint64)
	b.PutFloat(133.25)
	b.PutString("Source Engine Query")
	b.PutString("")
	b.PutString("北风 ßõ")

	c := NewCursor(b.Bytes())

	if v, err := c.Byte(); err != nil || v != 0x7F {
		t.Fatalf("Byte() = %v, %v; want 0x7F", v, err)
	}
	if v, err := c.Short(); err != nil || v != -12345 {
		t.Fatalf("Short() = %v, %v; want -12345", v, err)
	}
	if v, err := c.Long(); err != nil || v != -2 {
		t.Fatalf("Long() = %v, %v; want -2", v, err)
	}
	if v, err := c.LongLong(); err != nil || v != math.MaxUint64 {
		t.Fatalf("LongLong() = %v, %v; want MaxUint64", v, err)
	}
	if v, err := c.Float(); err != nil || v != 133.25 {
		t.Fatalf("Float() = %v, %v; want 133.25", v, err)
	}

	for _, want := range []string{"Source Engine Query", "", "北风 ßõ"} {
		v, err := c.String()
		if err != nil {
			t.Fatalf("String() failed: %v", err)
		}
		if v != want {
			t.Fatalf("String() = %q; want %q", v, want)
		}
	}

	if c.Remaining() != 0 {
		t.Fatalf("Remaining() = %d after reading everything back", c.Remaining())
	}
}

func TestCursorReadPastEnd(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(*Cursor) error
	}{
		{"byte on empty", nil, func(c *Cursor) error { _, err := c.Byte(); return err }},
		{"short on one byte", []byte{1}, func(c *Cursor) error { _, err := c.Short(); return err }},
		{"long on three bytes", []byte{1, 2, 3}, func(c *Cursor) error { _, err := c.Long(); return err }},
		{"longlong on four bytes", []byte{1, 2, 3, 4}, func(c *Cursor) error { _, err := c.LongLong(); return err }},
		{"float on two bytes", []byte{1, 2}, func(c *Cursor) error { _, err := c.Float(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.data)
			err := tt.read(c)
			if !errors.Is(err, ErrMalformedPacket) {
				t.Fatalf("got %v; want ErrMalformedPacket", err)
			}
			if c.Remaining() != len(tt.data) {
				t.Fatalf("cursor advanced on failed read: %d bytes remain of %d", c.Remaining(), len(tt.data))
			}
		})
	}
}

func TestCursorStringErrors(t *testing.T) {
	// No terminator before the end of the buffer.
	c := NewCursor([]byte("no terminator here"))
	if _, err := c.String(); !errors.Is(err, ErrMalformedPacket) {
		t.Fatalf("unterminated string: got %v; want ErrMalformedPacket", err)
	}
	if c.Remaining() != len("no terminator here") {
		t.Fatal("cursor advanced on unterminated string")
	}

	// Terminated but not valid UTF-8.
	c = NewCursor([]byte{0xFF, 0xFE, 0x00})
	if _, err := c.String(); !errors.Is(err, ErrMalformedPacket) {
		t.Fatalf("invalid UTF-8: got %v; want ErrMalformedPacket", err)
	}
}

func TestCursorRewind(t *testing.T) {
	b := NewBuilder()
	b.PutLong(wholeMarker)
	b.PutByte(InfoResponse)

	c := NewCursor(b.Bytes())
	if _, err := c.Long(); err != nil {
		t.Fatal(err)
	}
	c.Rewind()

	v, err := c.Long()
	if err != nil || v != wholeMarker {
		t.Fatalf("Long() after Rewind() = %v, %v; want %d", v, err, wholeMarker)
	}
}
