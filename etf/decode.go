package etf

import (
	"math"
	"strconv"
)

// ============================================================
// Decoder: wire bytes -> JSON text
// ============================================================

// Decoder turns encoded terms into JSON text or Values. A Decoder holds
// only its options; every call builds its own state, so one Decoder may
// be shared between goroutines.
type Decoder struct {
	opts DecodeOptions
}

// NewDecoder creates a decoder with the given options.
func NewDecoder(opts DecodeOptions) *Decoder {
	return &Decoder{opts: opts}
}

// Options returns the decoder's options.
func (d *Decoder) Options() DecodeOptions {
	return d.opts
}

// Open checks the version byte of data and returns a cursor at the
// first value tag. A compressed term is inflated first, so the cursor
// may read a different buffer than data.
func (d *Decoder) Open(data []byte) (*Cursor, error) {
	return openTerm(data, d.opts)
}

// DecodeToJSON converts an encoded term to JSON using default options.
func DecodeToJSON(data []byte) ([]byte, error) {
	return NewDecoder(DefaultDecodeOptions()).ToJSON(data)
}

// ToJSON converts an encoded term to JSON text.
//
// Integers render as bare numbers except Small_Big values, which render
// as quoted decimal strings so consumers limited to 53-bit floats keep
// full precision. Atoms and binaries spelling true, false, nil or null
// render as JSON literals. Object member order is the wire order.
func (d *Decoder) ToJSON(data []byte) ([]byte, error) {
	c, err := openTerm(data, d.opts)
	if err != nil {
		return nil, err
	}
	s := &decodeState{
		cur:   c,
		out:   make([]byte, 0, initialJSONCap(len(data))),
		limit: d.opts.maxDepth(),
	}
	if err := s.value(0); err != nil {
		return nil, err
	}
	if d.opts.RejectTrailing && c.Remaining() > 0 {
		return nil, &TrailingDataError{Offset: c.Offset(), Remaining: c.Remaining()}
	}
	return s.out, nil
}

// initialJSONCap guesses the output size; JSON is usually a little
// larger than the wire form.
func initialJSONCap(n int) int {
	if n < 64 {
		return 64
	}
	return n + n/2
}

// decodeState is the per-call scratch of a JSON decode.
type decodeState struct {
	cur   *Cursor
	out   []byte
	limit int
}

func (s *decodeState) value(depth int) error {
	at := s.cur.Offset()
	tag, err := s.cur.ReadU8()
	if err != nil {
		return err
	}

	switch Tag(tag) {
	case TagNewFloat:
		bits, err := s.cur.ReadU64()
		if err != nil {
			return err
		}
		s.out = appendFloat(s.out, math.Float64frombits(bits))
		return nil

	case TagSmallInteger:
		n, err := s.cur.ReadU8()
		if err != nil {
			return err
		}
		s.out = strconv.AppendUint(s.out, uint64(n), 10)
		return nil

	case TagInteger:
		n, err := s.cur.ReadU32()
		if err != nil {
			return err
		}
		s.out = strconv.AppendUint(s.out, uint64(n), 10)
		return nil

	case TagSmallBig:
		neg, mag, err := readSmallBig(s.cur, at)
		if err != nil {
			return err
		}
		s.out = append(s.out, '"')
		if neg {
			s.out = append(s.out, '-')
		}
		s.out = strconv.AppendUint(s.out, mag, 10)
		s.out = append(s.out, '"')
		return nil

	case TagAtom:
		return s.text(2)

	case TagSmallAtom:
		return s.text(1)

	case TagBinary:
		return s.text(4)

	case TagString:
		return s.charList()

	case TagNil:
		s.out = append(s.out, '[', ']')
		return nil

	case TagList:
		return s.list(depth + 1)

	case TagMap:
		return s.object(depth + 1)

	default:
		return &UnknownTypeError{Tag: tag, Offset: at}
	}
}

// text emits an atom or binary payload under the text-emission rule.
func (s *decodeState) text(width int) error {
	n, err := s.cur.readLen(width)
	if err != nil {
		return err
	}
	payload, err := s.cur.ReadBytes(n)
	if err != nil {
		return err
	}
	s.out = appendText(s.out, payload)
	return nil
}

// charList emits a STRING_EXT payload. Each byte is written as its
// decimal digits inside one pair of quotes, so [1,2,3] becomes "123".
func (s *decodeState) charList() error {
	n, err := s.cur.ReadU16()
	if err != nil {
		return err
	}
	payload, err := s.cur.ReadBytes(int(n))
	if err != nil {
		return err
	}
	s.out = append(s.out, '"')
	for _, b := range payload {
		s.out = strconv.AppendUint(s.out, uint64(b), 10)
	}
	s.out = append(s.out, '"')
	return nil
}

func (s *decodeState) list(depth int) error {
	if depthExceeded(depth, s.limit) {
		return &RecursionLimitError{Limit: s.limit, Offset: s.cur.Offset() - 1}
	}
	count, err := s.cur.ReadU32()
	if err != nil {
		return err
	}
	// Every element takes at least one byte, plus the tail byte.
	if uint64(count)+1 > uint64(s.cur.Remaining()) {
		return &BufferOverrunError{Offset: s.cur.Offset(), Need: clampNeed(uint64(count)+1), Len: s.cur.Len()}
	}
	s.out = append(s.out, '[')
	for i := uint32(0); i < count; i++ {
		if i > 0 {
			s.out = append(s.out, ',')
		}
		if err := s.value(depth); err != nil {
			return err
		}
	}
	// The tail of a proper list is NIL_EXT; it is consumed unchecked.
	if _, err := s.cur.ReadU8(); err != nil {
		return err
	}
	s.out = append(s.out, ']')
	return nil
}

func (s *decodeState) object(depth int) error {
	if depthExceeded(depth, s.limit) {
		return &RecursionLimitError{Limit: s.limit, Offset: s.cur.Offset() - 1}
	}
	count, err := s.cur.ReadU32()
	if err != nil {
		return err
	}
	if uint64(count)*2 > uint64(s.cur.Remaining()) {
		return &BufferOverrunError{Offset: s.cur.Offset(), Need: clampNeed(uint64(count)*2), Len: s.cur.Len()}
	}
	s.out = append(s.out, '{')
	for i := uint32(0); i < count; i++ {
		if i > 0 {
			s.out = append(s.out, ',')
		}
		if err := s.value(depth); err != nil {
			return err
		}
		s.out = append(s.out, ':')
		if err := s.value(depth); err != nil {
			return err
		}
	}
	s.out = append(s.out, '}')
	return nil
}

// readSmallBig reads the payload of a SMALL_BIG_EXT whose tag started at
// offset at. The magnitude must fit in 8 bytes.
func readSmallBig(c *Cursor, at int) (neg bool, mag uint64, err error) {
	digits, err := c.ReadU8()
	if err != nil {
		return false, 0, err
	}
	sign, err := c.ReadU8()
	if err != nil {
		return false, 0, err
	}
	if digits > maxBigDigits {
		return false, 0, &UnsupportedBigIntegerError{Digits: int(digits), Offset: at}
	}
	raw, err := c.ReadBytes(int(digits))
	if err != nil {
		return false, 0, err
	}
	for i := len(raw) - 1; i >= 0; i-- {
		mag = mag<<8 | uint64(raw[i])
	}
	return sign != 0, mag, nil
}

// ============================================================
// Text emission
// ============================================================

// atomLiteral returns the JSON literal an atom spells, if any.
func atomLiteral(b []byte) (string, bool) {
	if len(b) < 3 || len(b) > 5 {
		return "", false
	}
	switch string(b) {
	case "nil", "null":
		return "null", true
	case "true":
		return "true", true
	case "false":
		return "false", true
	}
	return "", false
}

// appendText writes an atom or binary payload as JSON: empty payloads
// become "", the four literal spellings become bare literals, and all
// other payloads become quoted strings.
//
// Quotes are escaped. A backslash that starts \b, \f, \n, \r or \t is
// collapsed to the control character; \" and \\ pass through as
// escapes; any other backslash is escaped.
func appendText(dst, b []byte) []byte {
	if len(b) == 0 {
		return append(dst, '"', '"')
	}
	if lit, ok := atomLiteral(b); ok {
		return append(dst, lit...)
	}
	dst = append(dst, '"')
	for i := 0; i < len(b); i++ {
		switch ch := b[i]; ch {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			if i+1 < len(b) {
				if ctl, ok := collapsedEscape(b[i+1]); ok {
					dst = append(dst, ctl)
					i++
					continue
				}
				if b[i+1] == '"' || b[i+1] == '\\' {
					dst = append(dst, '\\', b[i+1])
					i++
					continue
				}
			}
			dst = append(dst, '\\', '\\')
		default:
			dst = append(dst, ch)
		}
	}
	return append(dst, '"')
}

func collapsedEscape(ch byte) (byte, bool) {
	switch ch {
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// appendFloat writes the shortest decimal that round-trips f. JSON has
// no NaN or infinity, so those are written as quoted strings.
func appendFloat(dst []byte, f float64) []byte {
	switch {
	case math.IsNaN(f):
		return append(dst, `"NaN"`...)
	case math.IsInf(f, 1):
		return append(dst, `"+Inf"`...)
	case math.IsInf(f, -1):
		return append(dst, `"-Inf"`...)
	}
	return strconv.AppendFloat(dst, f, 'g', -1, 64)
}
