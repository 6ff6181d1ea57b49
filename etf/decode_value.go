package etf

import (
	"math"
	"strconv"
)

// ============================================================
// Decoder: wire bytes -> Value
// ============================================================

// Unmarshal decodes an encoded term into a Value using default options.
func Unmarshal(data []byte) (*Value, error) {
	return NewDecoder(DefaultDecodeOptions()).Value(data)
}

// Value decodes an encoded term into a Value.
//
// SMALL_INTEGER_EXT and INTEGER_EXT become Uint; INTEGER_EXT is read
// as an unsigned field so every Uint up to 2^32-1 survives a round
// trip. SMALL_BIG_EXT becomes Uint or Int by sign. Atoms
// and binaries follow the text rule of ToJSON (true/false become Bool,
// nil/null become Null) but keep their bytes unescaped. STRING_EXT
// becomes a String of its raw bytes and NIL_EXT an empty Array.
func (d *Decoder) Value(data []byte) (*Value, error) {
	c, err := openTerm(data, d.opts)
	if err != nil {
		return nil, err
	}
	v, err := readValue(c, d.opts.maxDepth(), 0)
	if err != nil {
		return nil, err
	}
	if d.opts.RejectTrailing && c.Remaining() > 0 {
		return nil, &TrailingDataError{Offset: c.Offset(), Remaining: c.Remaining()}
	}
	return v, nil
}

// ReadValue decodes the value at the cursor and advances past it.
func ReadValue(c *Cursor, opts DecodeOptions) (*Value, error) {
	return readValue(c, opts.maxDepth(), 0)
}

func readValue(c *Cursor, limit, depth int) (*Value, error) {
	at := c.Offset()
	tag, err := c.ReadU8()
	if err != nil {
		return nil, err
	}

	switch Tag(tag) {
	case TagNewFloat:
		bits, err := c.ReadU64()
		if err != nil {
			return nil, err
		}
		return Float(math.Float64frombits(bits)), nil

	case TagSmallInteger:
		n, err := c.ReadU8()
		if err != nil {
			return nil, err
		}
		return Uint(uint64(n)), nil

	case TagInteger:
		n, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		v := Uint(uint64(n))
		v.int32Wire = true
		return v, nil

	case TagSmallBig:
		neg, mag, err := readSmallBig(c, at)
		if err != nil {
			return nil, err
		}
		if !neg {
			return Uint(mag), nil
		}
		if mag > 1<<63 {
			return nil, &UnsupportedBigIntegerError{Digits: maxBigDigits + 1, Offset: at}
		}
		return Int(int64(-mag)), nil

	case TagAtom, TagSmallAtom, TagBinary:
		payload, err := readTextPayload(c, Tag(tag))
		if err != nil {
			return nil, err
		}
		return textValue(payload), nil

	case TagString:
		n, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		payload, err := c.ReadBytes(int(n))
		if err != nil {
			return nil, err
		}
		return String(string(payload)), nil

	case TagNil:
		return Array(), nil

	case TagList:
		depth++
		if depthExceeded(depth, limit) {
			return nil, &RecursionLimitError{Limit: limit, Offset: at}
		}
		count, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		if uint64(count)+1 > uint64(c.Remaining()) {
			return nil, &BufferOverrunError{Offset: c.Offset(), Need: clampNeed(uint64(count)+1), Len: c.Len()}
		}
		items := make([]*Value, 0, count)
		for i := uint32(0); i < count; i++ {
			item, err := readValue(c, limit, depth)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if _, err := c.ReadU8(); err != nil {
			return nil, err
		}
		return &Value{kind: KindArray, arr: items}, nil

	case TagMap:
		depth++
		if depthExceeded(depth, limit) {
			return nil, &RecursionLimitError{Limit: limit, Offset: at}
		}
		count, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		if uint64(count)*2 > uint64(c.Remaining()) {
			return nil, &BufferOverrunError{Offset: c.Offset(), Need: clampNeed(uint64(count)*2), Len: c.Len()}
		}
		obj := Object()
		for i := uint32(0); i < count; i++ {
			keyAt := c.Offset()
			key, err := readValue(c, limit, depth)
			if err != nil {
				return nil, err
			}
			name, ok := keyString(key)
			if !ok {
				return nil, &InvalidKeyError{Kind: key.Kind(), Offset: keyAt}
			}
			member, err := readValue(c, limit, depth)
			if err != nil {
				return nil, err
			}
			obj.obj[name] = member
		}
		return obj, nil

	default:
		return nil, &UnknownTypeError{Tag: tag, Offset: at}
	}
}

// readTextPayload reads the length and bytes of an atom or binary whose
// tag has already been consumed.
func readTextPayload(c *Cursor, tag Tag) ([]byte, error) {
	width := 4
	switch tag {
	case TagAtom:
		width = 2
	case TagSmallAtom:
		width = 1
	}
	n, err := c.readLen(width)
	if err != nil {
		return nil, err
	}
	return c.ReadBytes(n)
}

func textValue(payload []byte) *Value {
	if lit, ok := atomLiteral(payload); ok {
		switch lit {
		case "true":
			return Bool(true)
		case "false":
			return Bool(false)
		default:
			return Null()
		}
	}
	return String(string(payload))
}

// keyString converts a decoded map key to an object key.
func keyString(k *Value) (string, bool) {
	switch k.Kind() {
	case KindString:
		return k.str, true
	case KindUint:
		return strconv.FormatUint(k.u, 10), true
	case KindInt:
		return strconv.FormatInt(k.i, 10), true
	case KindBool:
		return strconv.FormatBool(k.b), true
	case KindNull:
		return "nil", true
	case KindFloat:
		return strconv.FormatFloat(k.f, 'g', -1, 64), true
	}
	return "", false
}

// ReadText reads one atom, small atom, binary or STRING_EXT term at the
// cursor and returns its bytes as a string. It is meant for map keys.
func ReadText(c *Cursor) (string, error) {
	at := c.Offset()
	tag, err := c.ReadU8()
	if err != nil {
		return "", err
	}
	switch t := Tag(tag); {
	case t.IsText():
		payload, err := readTextPayload(c, t)
		if err != nil {
			return "", err
		}
		return string(payload), nil
	case t == TagString:
		n, err := c.ReadU16()
		if err != nil {
			return "", err
		}
		payload, err := c.ReadBytes(int(n))
		if err != nil {
			return "", err
		}
		return string(payload), nil
	case !t.Valid():
		return "", &UnknownTypeError{Tag: tag, Offset: at}
	default:
		return "", &TypeMismatchError{Want: KindString, Got: t.Kind()}
	}
}
