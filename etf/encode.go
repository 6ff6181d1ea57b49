package etf

import (
	"encoding/binary"
	"math"
)

// ============================================================
// Encoder: Value -> wire bytes
// ============================================================

// Encoder serializes Values. Like Decoder it holds only options and is
// safe for concurrent use.
type Encoder struct {
	opts EncodeOptions
}

// NewEncoder creates an encoder with the given options.
func NewEncoder(opts EncodeOptions) *Encoder {
	return &Encoder{opts: opts}
}

// Marshal encodes v with default options, version byte included.
func Marshal(v *Value) ([]byte, error) {
	return NewEncoder(DefaultEncodeOptions()).Encode(v)
}

// Encode returns the full encoding of v: the version byte followed by
// the term, compressed when the options ask for it.
func (e *Encoder) Encode(v *Value) ([]byte, error) {
	out := make([]byte, 1, 64)
	out[0] = FormatVersion
	body, err := e.Append(out, v)
	if err != nil {
		return nil, err
	}
	if !e.opts.Compress {
		return body, nil
	}
	return deflate(out[:1:1], body[1:], e.opts.compressLevel())
}

// AppendValue appends the term encoding of v to dst with default options.
func AppendValue(dst []byte, v *Value) ([]byte, error) {
	return NewEncoder(DefaultEncodeOptions()).Append(dst, v)
}

// Append appends the term encoding of v (no version byte) to dst.
func (e *Encoder) Append(dst []byte, v *Value) ([]byte, error) {
	s := encodeState{out: dst, sortKeys: e.opts.SortKeys, limit: e.opts.maxDepth()}
	if err := s.value(v, 0); err != nil {
		return nil, err
	}
	return s.out, nil
}

// encodeState is the per-call scratch of an encode.
type encodeState struct {
	out      []byte
	sortKeys bool
	limit    int
}

func (s *encodeState) value(v *Value, depth int) error {
	switch v.Kind() {
	case KindObject:
		depth++
		if depthExceeded(depth, s.limit) {
			return &RecursionLimitError{Limit: s.limit, Offset: -1}
		}
		s.out = AppendMapHeader(s.out, uint32(len(v.obj)))
		if s.sortKeys {
			for _, k := range v.Keys() {
				s.out = AppendBinary(s.out, k)
				if err := s.value(v.obj[k], depth); err != nil {
					return err
				}
			}
			return nil
		}
		for k, member := range v.obj {
			s.out = AppendBinary(s.out, k)
			if err := s.value(member, depth); err != nil {
				return err
			}
		}
		return nil

	case KindArray:
		depth++
		if depthExceeded(depth, s.limit) {
			return &RecursionLimitError{Limit: s.limit, Offset: -1}
		}
		s.out = AppendListHeader(s.out, uint32(len(v.arr)))
		for _, elem := range v.arr {
			if err := s.value(elem, depth); err != nil {
				return err
			}
		}
		s.out = AppendNil(s.out)
		return nil

	case KindString:
		s.out = AppendBinary(s.out, v.str)
		return nil

	case KindUint:
		return s.uint(v.u)

	case KindInt:
		return s.int(v.i)

	case KindFloat:
		s.out = AppendFloat(s.out, v.f)
		return nil

	case KindBool:
		s.out = AppendBool(s.out, v.b)
		return nil

	default:
		s.out = AppendAtomNil(s.out)
		return nil
	}
}

func (s *encodeState) uint(u uint64) error {
	switch {
	case u <= math.MaxUint8:
		s.out = append(s.out, byte(TagSmallInteger), byte(u))
	case u <= math.MaxUint32:
		s.out = append(s.out, byte(TagInteger))
		s.out = binary.BigEndian.AppendUint32(s.out, uint32(u))
	default:
		return s.smallBig(false, u)
	}
	return nil
}

// int encodes a signed value. Only non-negative values take the
// single-byte form, since SMALL_INTEGER_EXT is unsigned on the wire.
func (s *encodeState) int(i int64) error {
	switch {
	case i >= 0 && i <= math.MaxInt8:
		s.out = append(s.out, byte(TagSmallInteger), byte(i))
	case i >= math.MinInt32 && i <= math.MaxInt32:
		s.out = append(s.out, byte(TagInteger))
		s.out = binary.BigEndian.AppendUint32(s.out, uint32(int32(i)))
	default:
		mag := uint64(i)
		if i < 0 {
			mag = -mag
		}
		return s.smallBig(i < 0, mag)
	}
	return nil
}

// smallBig writes a SMALL_BIG_EXT with the fewest magnitude bytes.
func (s *encodeState) smallBig(neg bool, mag uint64) error {
	var digits [16]byte
	n := 0
	for m := mag; m > 0; m >>= 8 {
		digits[n] = byte(m)
		n++
	}
	if n > maxBigDigits {
		return &UnsupportedBigIntegerError{Digits: n, Offset: -1}
	}
	sign := byte(0)
	if neg {
		sign = 1
	}
	s.out = append(s.out, byte(TagSmallBig), byte(n), sign)
	s.out = append(s.out, digits[:n]...)
	return nil
}

// ============================================================
// Low-level appenders
// ============================================================

// AppendMapHeader appends a MAP_EXT tag and pair count.
func AppendMapHeader(dst []byte, pairs uint32) []byte {
	dst = append(dst, byte(TagMap))
	return binary.BigEndian.AppendUint32(dst, pairs)
}

// AppendListHeader appends a LIST_EXT tag and element count. The caller
// must follow the elements with AppendNil.
func AppendListHeader(dst []byte, n uint32) []byte {
	dst = append(dst, byte(TagList))
	return binary.BigEndian.AppendUint32(dst, n)
}

// AppendNil appends a NIL_EXT tag.
func AppendNil(dst []byte) []byte {
	return append(dst, byte(TagNil))
}

// AppendBinary appends s as a BINARY_EXT.
func AppendBinary(dst []byte, s string) []byte {
	dst = append(dst, byte(TagBinary))
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(s)))
	return append(dst, s...)
}

// AppendFloat appends f as a NEW_FLOAT_EXT.
func AppendFloat(dst []byte, f float64) []byte {
	dst = append(dst, byte(TagNewFloat))
	return binary.BigEndian.AppendUint64(dst, math.Float64bits(f))
}

// AppendBool appends the atom true or false.
func AppendBool(dst []byte, b bool) []byte {
	if b {
		return append(dst, byte(TagSmallAtom), 4, 't', 'r', 'u', 'e')
	}
	return append(dst, byte(TagSmallAtom), 5, 'f', 'a', 'l', 's', 'e')
}

// AppendAtomNil appends the atom nil.
func AppendAtomNil(dst []byte) []byte {
	return append(dst, byte(TagSmallAtom), 3, 'n', 'i', 'l')
}
