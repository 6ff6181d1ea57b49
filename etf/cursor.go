package etf

import "encoding/binary"

// Cursor reads big-endian fields from a caller-owned buffer. It never
// reads past the end of the buffer: a read that would cross the end
// fails before the offset moves.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor returns a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int {
	return c.off
}

// Len returns the declared buffer length.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

func (c *Cursor) need(n int) error {
	if n < 0 || n > len(c.buf)-c.off {
		return &BufferOverrunError{Offset: c.off, Need: n, Len: len(c.buf)}
	}
	return nil
}

// ReadU8 consumes one byte.
func (c *Cursor) ReadU8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.buf[c.off]
	c.off++
	return v, nil
}

// ReadU16 consumes a big-endian uint16.
func (c *Cursor) ReadU16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.buf[c.off:])
	c.off += 2
	return v, nil
}

// ReadU32 consumes a big-endian uint32.
func (c *Cursor) ReadU32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.buf[c.off:])
	c.off += 4
	return v, nil
}

// ReadU64 consumes a big-endian uint64.
func (c *Cursor) ReadU64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(c.buf[c.off:])
	c.off += 8
	return v, nil
}

// ReadBytes consumes n bytes and returns them without copying. The
// returned slice aliases the cursor's buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.buf[c.off : c.off+n : c.off+n]
	c.off += n
	return b, nil
}

// Peek returns the next byte without consuming it.
func (c *Cursor) Peek() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	return c.buf[c.off], nil
}

// readLen reads a length field of the given width (1, 2 or 4 bytes).
func (c *Cursor) readLen(width int) (int, error) {
	switch width {
	case 1:
		n, err := c.ReadU8()
		return int(n), err
	case 2:
		n, err := c.ReadU16()
		return int(n), err
	default:
		n, err := c.ReadU32()
		return int(n), err
	}
}
