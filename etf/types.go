package etf

import "fmt"

// FormatVersion is the mandatory first byte of every encoded term.
const FormatVersion byte = 131

// Tag identifies the payload shape of the bytes that follow it.
type Tag uint8

const (
	TagNewFloat     Tag = 70  // 8-byte IEEE-754 big-endian
	TagCompressed   Tag = 80  // zlib-compressed term (envelope only)
	TagSmallInteger Tag = 97  // 1 unsigned byte
	TagInteger      Tag = 98  // 4-byte big-endian
	TagAtom         Tag = 100 // 2-byte length + bytes
	TagNil          Tag = 106 // empty list
	TagString       Tag = 107 // 2-byte length + bytes
	TagList         Tag = 108 // 4-byte count + elements + tail
	TagBinary       Tag = 109 // 4-byte length + bytes
	TagSmallBig     Tag = 110 // 1-byte digit count + sign + LE magnitude
	TagSmallAtom    Tag = 115 // 1-byte length + bytes
	TagMap          Tag = 116 // 4-byte pair count + pairs
)

// String returns the tag name.
func (t Tag) String() string {
	switch t {
	case TagNewFloat:
		return "NEW_FLOAT_EXT"
	case TagCompressed:
		return "COMPRESSED"
	case TagSmallInteger:
		return "SMALL_INTEGER_EXT"
	case TagInteger:
		return "INTEGER_EXT"
	case TagAtom:
		return "ATOM_EXT"
	case TagNil:
		return "NIL_EXT"
	case TagString:
		return "STRING_EXT"
	case TagList:
		return "LIST_EXT"
	case TagBinary:
		return "BINARY_EXT"
	case TagSmallBig:
		return "SMALL_BIG_EXT"
	case TagSmallAtom:
		return "SMALL_ATOM_EXT"
	case TagMap:
		return "MAP_EXT"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Valid reports whether t is a value tag the codec understands.
// TagCompressed is not a value tag: it may only follow the version byte.
func (t Tag) Valid() bool {
	switch t {
	case TagNewFloat, TagSmallInteger, TagInteger, TagAtom, TagNil,
		TagString, TagList, TagBinary, TagSmallBig, TagSmallAtom, TagMap:
		return true
	}
	return false
}

// IsText reports whether t carries text governed by the atom rule
// (true/false/nil/null become JSON literals).
func (t Tag) IsText() bool {
	return t == TagAtom || t == TagSmallAtom || t == TagBinary
}

// Kind returns the Kind a value with this tag usually decodes to.
// Integer tags report KindUint.
func (t Tag) Kind() Kind {
	switch t {
	case TagNewFloat:
		return KindFloat
	case TagSmallInteger, TagInteger, TagSmallBig:
		return KindUint
	case TagNil, TagList:
		return KindArray
	case TagMap:
		return KindObject
	default:
		return KindString
	}
}

// maxBigDigits is the largest Small_Big magnitude this codec accepts.
const maxBigDigits = 8
