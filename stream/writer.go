package stream

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/Neumenon/etfer/etf"
)

// Writer writes frames to an io.Writer. It is not safe for concurrent
// use.
type Writer struct {
	w          io.Writer
	withCRC    bool
	compressAt int
	enc        *etf.Encoder
	buf        []byte
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCRC makes the writer checksum every payload.
func WithCRC() WriterOption {
	return func(w *Writer) {
		w.withCRC = true
	}
}

// WithCompressThreshold compresses payloads of at least n bytes. Zero
// or less disables compression.
func WithCompressThreshold(n int) WriterOption {
	return func(w *Writer) {
		w.compressAt = n
	}
}

// WithEncodeOptions sets how WriteValue encodes terms.
func WithEncodeOptions(opts etf.EncodeOptions) WriterOption {
	return func(w *Writer) {
		w.enc = etf.NewEncoder(opts)
	}
}

// NewWriter creates a frame writer.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	writer := &Writer{
		w:   w,
		enc: etf.NewEncoder(etf.DefaultEncodeOptions()),
	}
	for _, opt := range opts {
		opt(writer)
	}
	return writer
}

// WriteFrame writes f. The CRC and compression flags are derived from
// the writer's configuration and f.CRC; FlagHasBase follows f.Base. A
// caller-supplied f.CRC is written verbatim and leaves the payload
// uncompressed, so it always covers the bytes on the wire.
func (w *Writer) WriteFrame(f *Frame) error {
	payload := f.Payload
	flags := f.Flags &^ (FlagHasCRC | FlagHasBase | FlagCompressed)

	if f.CRC == nil && w.compressAt > 0 && len(payload) >= w.compressAt {
		if compressed, ok := compressPayload(payload); ok {
			payload = compressed
			flags |= FlagCompressed
		}
	}

	crc := f.CRC
	if crc == nil && w.withCRC {
		computed := ComputeCRC(payload)
		crc = &computed
	}
	if crc != nil {
		flags |= FlagHasCRC
	}
	if f.Base != nil {
		flags |= FlagHasBase
	}

	buf := append(w.buf[:0], 0, 0, 0, 0, byte(flags))
	buf = binary.AppendUvarint(buf, f.SID)
	buf = binary.AppendUvarint(buf, f.Seq)
	if crc != nil {
		buf = binary.BigEndian.AppendUint32(buf, *crc)
	}
	if f.Base != nil {
		buf = append(buf, f.Base[:]...)
	}
	buf = append(buf, payload...)

	n := len(buf) - 4
	if uint64(n) > math.MaxUint32 {
		return fmt.Errorf("stream: frame too large: %d bytes", n)
	}
	binary.BigEndian.PutUint32(buf, uint32(n))
	w.buf = buf

	if _, err := w.w.Write(buf); err != nil {
		return fmt.Errorf("stream: write frame: %w", err)
	}
	return nil
}

// WriteValue encodes v and writes it as a frame.
func (w *Writer) WriteValue(sid, seq uint64, v *etf.Value) error {
	return w.writeValue(&Frame{SID: sid, Seq: seq}, v)
}

// WriteFinal writes v as the last frame of sid.
func (w *Writer) WriteFinal(sid, seq uint64, v *etf.Value) error {
	return w.writeValue(&Frame{SID: sid, Seq: seq, Flags: FlagFinal}, v)
}

// WriteBased writes v as a frame that applies to the state with digest
// base.
func (w *Writer) WriteBased(sid, seq uint64, v *etf.Value, base Digest) error {
	return w.writeValue(&Frame{SID: sid, Seq: seq, Base: &base}, v)
}

func (w *Writer) writeValue(f *Frame, v *etf.Value) error {
	payload, err := w.enc.Encode(v)
	if err != nil {
		return fmt.Errorf("stream: encode sid %d seq %d: %w", f.SID, f.Seq, err)
	}
	f.Payload = payload
	return w.WriteFrame(f)
}
