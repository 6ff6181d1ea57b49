package stream

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Reader reads frames from an io.Reader.
type Reader struct {
	r          *bufio.Reader
	maxPayload int
	verifyCRC  bool
	offset     int64
	zstd       *zstd.Decoder
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithMaxPayload sets the maximum payload size, before and after
// decompression (default: 64 MiB). A limit above MaxPayloadSize gives
// the Reader its own zstd decoder.
func WithMaxPayload(max int) ReaderOption {
	return func(r *Reader) {
		r.maxPayload = max
	}
}

// WithCRCVerification turns CRC verification on or off. It is on by
// default.
func WithCRCVerification(on bool) ReaderOption {
	return func(r *Reader) {
		r.verifyCRC = on
	}
}

// NewReader creates a frame reader.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	reader := &Reader{
		r:          bufio.NewReader(r),
		maxPayload: MaxPayloadSize,
		verifyCRC:  true,
	}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Next reads and returns the next frame. It returns io.EOF when the
// stream ends cleanly between frames.
func (r *Reader) Next() (*Frame, error) {
	start := r.offset

	var prefix [4]byte
	n, err := io.ReadFull(r.r, prefix[:])
	r.offset += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &ParseError{Reason: "truncated length prefix", Offset: start}
		}
		return nil, fmt.Errorf("stream: read length: %w", err)
	}

	size := binary.BigEndian.Uint32(prefix[:])
	if uint64(size) > uint64(r.maxPayload)+maxHeaderSize {
		return nil, &ParseError{Reason: fmt.Sprintf("frame too large: %d bytes", size), Offset: start}
	}
	if size < 3 {
		return nil, &ParseError{Reason: fmt.Sprintf("frame too short: %d bytes", size), Offset: start}
	}

	body := make([]byte, size)
	n, err = io.ReadFull(r.r, body)
	r.offset += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &ParseError{Reason: fmt.Sprintf("truncated frame: have %d of %d bytes", n, size), Offset: start}
		}
		return nil, fmt.Errorf("stream: read frame: %w", err)
	}

	frame, err := r.parseBody(body)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Offset = start
		}
		return nil, err
	}
	return frame, nil
}

// parseBody decodes everything after the length prefix.
func (r *Reader) parseBody(body []byte) (*Frame, error) {
	frame := &Frame{Flags: Flags(body[0])}
	if unknown := frame.Flags &^ knownFlags; unknown != 0 {
		return nil, &ParseError{Reason: fmt.Sprintf("unknown flags 0x%02x", uint8(unknown))}
	}
	off := 1

	sid, k := binary.Uvarint(body[off:])
	if k <= 0 {
		return nil, &ParseError{Reason: "invalid sid"}
	}
	frame.SID = sid
	off += k

	seq, k := binary.Uvarint(body[off:])
	if k <= 0 {
		return nil, &ParseError{Reason: "invalid seq"}
	}
	frame.Seq = seq
	off += k

	if frame.Flags&FlagHasCRC != 0 {
		if len(body)-off < 4 {
			return nil, &ParseError{Reason: "truncated crc"}
		}
		crc := binary.BigEndian.Uint32(body[off:])
		frame.CRC = &crc
		off += 4
	}

	if frame.Flags&FlagHasBase != 0 {
		var base Digest
		if len(body)-off < len(base) {
			return nil, &ParseError{Reason: "truncated base digest"}
		}
		copy(base[:], body[off:])
		frame.Base = &base
		off += len(base)
	}

	payload := body[off:]
	if len(payload) > r.maxPayload {
		return nil, &ParseError{Reason: fmt.Sprintf("payload too large: %d > %d", len(payload), r.maxPayload)}
	}

	if r.verifyCRC && frame.CRC != nil {
		if computed := ComputeCRC(payload); computed != *frame.CRC {
			return nil, &CRCMismatchError{SID: frame.SID, Seq: frame.Seq, Expected: *frame.CRC, Got: computed}
		}
	}

	if frame.Flags&FlagCompressed != 0 {
		dec, err := r.decoder()
		if err != nil {
			return nil, &ParseError{Reason: err.Error()}
		}
		inflated, err := decompressPayload(dec, payload, r.maxPayload)
		if err != nil {
			return nil, &ParseError{Reason: err.Error()}
		}
		payload = inflated
	}
	frame.Payload = payload

	return frame, nil
}

// decoder returns the shared zstd decoder, or one sized for a payload
// limit above MaxPayloadSize.
func (r *Reader) decoder() (*zstd.Decoder, error) {
	if r.maxPayload <= MaxPayloadSize {
		return zstdDecoder, nil
	}
	if r.zstd == nil {
		dec, err := newZstdDecoder(r.maxPayload)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		r.zstd = dec
	}
	return r.zstd, nil
}

// ReadAll reads frames until EOF. On error it returns the frames read
// so far.
func (r *Reader) ReadAll() ([]*Frame, error) {
	var frames []*Frame
	for {
		frame, err := r.Next()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, frame)
	}
}
