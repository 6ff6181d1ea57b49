package etf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/klauspost/compress/zlib"
)

// openTerm validates the version byte and returns a cursor positioned
// at the first value tag. For a compressed envelope the cursor reads
// the inflated term instead of data.
func openTerm(data []byte, opts DecodeOptions) (*Cursor, error) {
	if len(data) == 0 {
		return nil, &FormatVersionError{Empty: true}
	}
	if data[0] != FormatVersion {
		return nil, &FormatVersionError{Got: data[0]}
	}
	c := &Cursor{buf: data, off: 1}
	if len(data) > 1 && Tag(data[1]) == TagCompressed {
		c.off++
		inflated, err := inflate(c, opts.maxDecompressed())
		if err != nil {
			return nil, err
		}
		return NewCursor(inflated), nil
	}
	return c, nil
}

// inflate reads the declared size and zlib stream that follow a
// compressed tag. The inflated size must match the declaration exactly.
func inflate(c *Cursor, limit int) ([]byte, error) {
	size, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if uint64(size) > uint64(limit) {
		return nil, &DecompressError{Reason: "declared size exceeds limit"}
	}
	compressed, err := c.ReadBytes(c.Remaining())
	if err != nil {
		return nil, err
	}
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, &DecompressError{Reason: "open zlib stream", Err: err}
	}
	defer zr.Close()

	out := make([]byte, size)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, &DecompressError{Reason: "inflated size smaller than declared", Err: err}
	}
	var probe [1]byte
	n, err := zr.Read(probe[:])
	if n > 0 {
		return nil, &DecompressError{Reason: "inflated size larger than declared"}
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &DecompressError{Reason: "read zlib stream", Err: err}
	}
	return out, nil
}

// deflate wraps an encoded term body (without version byte) in a
// compressed envelope and appends it to dst, which must already hold
// the version byte.
func deflate(dst, body []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(body); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	dst = append(dst, byte(TagCompressed))
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(body)))
	return append(dst, buf.Bytes()...), nil
}
