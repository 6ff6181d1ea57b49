// Package stream frames ETF terms for transport over a byte stream.
//
// Each frame carries one encoded term and a small binary header:
//
//	u32 length | u8 flags | uvarint sid | uvarint seq | [u32 crc] | [32B base] | payload
//
// length is big-endian and counts every byte after itself. sid
// multiplexes independent streams over one connection and seq orders
// frames within a stream. The optional CRC-32 (IEEE) covers the payload
// as transmitted. The optional base is the BLAKE3 digest of the state a
// frame applies to, letting a receiver detect that it has drifted.
//
// Payloads larger than the writer's threshold are compressed with
// zstd. Framing is not part of the term: the payload is a complete
// term, version byte included, handed to the etf package unchanged.
package stream

import (
	"fmt"

	"github.com/Neumenon/etfer/etf"
)

// Flags are the frame header flag bits.
type Flags uint8

const (
	FlagHasCRC     Flags = 0x01 // CRC-32 is present
	FlagHasBase    Flags = 0x02 // base digest is present
	FlagFinal      Flags = 0x04 // end of stream for this SID
	FlagCompressed Flags = 0x08 // payload is zstd-compressed

	knownFlags = FlagHasCRC | FlagHasBase | FlagFinal | FlagCompressed
)

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var s string
	for _, bit := range []struct {
		flag Flags
		name string
	}{
		{FlagHasCRC, "crc"},
		{FlagHasBase, "base"},
		{FlagFinal, "final"},
		{FlagCompressed, "zstd"},
	} {
		if f&bit.flag == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += bit.name
	}
	if rest := f &^ knownFlags; rest != 0 {
		if s != "" {
			s += "|"
		}
		s += fmt.Sprintf("0x%02x", uint8(rest))
	}
	return s
}

// Frame is a single decoded frame.
type Frame struct {
	SID   uint64
	Seq   uint64
	Flags Flags

	// CRC is the checksum read from the wire, or one the writer should
	// send verbatim. Nil when absent.
	CRC *uint32

	// Base is the state digest the frame applies to. Nil when absent.
	Base *Digest

	// Payload is the uncompressed term.
	Payload []byte
}

// IsFinal reports whether this is the last frame for its SID.
func (f *Frame) IsFinal() bool {
	return f.Flags&FlagFinal != 0
}

// Value decodes the payload with default options.
func (f *Frame) Value() (*etf.Value, error) {
	return etf.Unmarshal(f.Payload)
}

// MaxPayloadSize is the default maximum payload size (64 MiB).
const MaxPayloadSize = 64 * 1024 * 1024

// maxHeaderSize bounds everything in a frame except the payload.
const maxHeaderSize = 1 + 2*10 + 4 + 32

// ParseError is returned for a malformed frame. Offset is the stream
// offset of the frame's length prefix, or -1 when unknown.
type ParseError struct {
	Reason string
	Offset int64
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("stream: %s (frame at offset %d)", e.Reason, e.Offset)
	}
	return fmt.Sprintf("stream: %s", e.Reason)
}

// CRCMismatchError is returned when CRC verification fails.
type CRCMismatchError struct {
	SID      uint64
	Seq      uint64
	Expected uint32
	Got      uint32
}

func (e *CRCMismatchError) Error() string {
	return fmt.Sprintf("stream: CRC mismatch on sid %d seq %d: expected %08x, got %08x",
		e.SID, e.Seq, e.Expected, e.Got)
}

// DigestMismatchError is returned when a frame's base digest does not
// match the receiver's state.
type DigestMismatchError struct {
	SID      uint64
	Expected Digest
	Got      Digest
}

func (e *DigestMismatchError) Error() string {
	return fmt.Sprintf("stream: base digest mismatch on sid %d: frame wants %s, state is %s",
		e.SID, e.Expected.Short(), e.Got.Short())
}

// SequenceError is returned when a frame arrives out of order.
type SequenceError struct {
	SID      uint64
	Expected uint64
	Got      uint64
}

func (e *SequenceError) Error() string {
	if e.Got < e.Expected {
		return fmt.Sprintf("stream: sid %d: sequence not monotonic: got %d, expected %d", e.SID, e.Got, e.Expected)
	}
	return fmt.Sprintf("stream: sid %d: sequence gap: expected %d, got %d", e.SID, e.Expected, e.Got)
}
