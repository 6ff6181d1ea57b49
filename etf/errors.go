package etf

import (
	"errors"
	"fmt"
)

// ErrNilValue is returned when a mutator is called on a nil *Value,
// such as the result of Get for a missing key.
var ErrNilValue = errors.New("etf: nil value")

// FormatVersionError is returned when the leading byte is not 131.
type FormatVersionError struct {
	Got   byte
	Empty bool // input had no bytes at all
}

func (e *FormatVersionError) Error() string {
	if e.Empty {
		return "etf: empty input, expected format version 131"
	}
	return fmt.Sprintf("etf: incorrect format version %d, expected %d", e.Got, FormatVersion)
}

// BufferOverrunError is returned when a read would cross the end of the
// buffer. Offset is where the read started.
type BufferOverrunError struct {
	Offset int
	Need   int
	Len    int
}

func (e *BufferOverrunError) Error() string {
	return fmt.Sprintf("etf: read of %d bytes at offset %d past end of buffer (len %d)", e.Need, e.Offset, e.Len)
}

// UnknownTypeError is returned for a tag byte outside the catalog.
type UnknownTypeError struct {
	Tag    byte
	Offset int
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("etf: unknown data type in ETF, the type: %d (offset %d)", e.Tag, e.Offset)
}

// UnsupportedBigIntegerError is returned when a Small_Big magnitude does
// not fit the 8-byte budget.
type UnsupportedBigIntegerError struct {
	Digits int
	Offset int // -1 when raised by the encoder
}

func (e *UnsupportedBigIntegerError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("etf: big integers larger than %d bytes not supported (got %d)", maxBigDigits, e.Digits)
	}
	return fmt.Sprintf("etf: big integers larger than %d bytes not supported (got %d at offset %d)", maxBigDigits, e.Digits, e.Offset)
}

// TypeMismatchError is returned by a Value accessor used against the
// wrong kind.
type TypeMismatchError struct {
	Want Kind
	Got  Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("etf: value is %s, not %s", e.Got, e.Want)
}

// RecursionLimitError is returned when nesting exceeds the configured
// maximum depth.
type RecursionLimitError struct {
	Limit  int
	Offset int // -1 when raised by the encoder
}

func (e *RecursionLimitError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("etf: nesting deeper than %d", e.Limit)
	}
	return fmt.Sprintf("etf: nesting deeper than %d at offset %d", e.Limit, e.Offset)
}

// TrailingDataError is returned when bytes remain after the top-level
// term and trailing data is rejected.
type TrailingDataError struct {
	Offset    int
	Remaining int
}

func (e *TrailingDataError) Error() string {
	return fmt.Sprintf("etf: %d trailing bytes after term at offset %d", e.Remaining, e.Offset)
}

// InvalidKeyError is returned when a map key cannot be represented as a
// string key of an Object.
type InvalidKeyError struct {
	Kind   Kind
	Offset int // -1 when not decoding
}

func (e *InvalidKeyError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("etf: map key of kind %s cannot be used as an object key", e.Kind)
	}
	return fmt.Sprintf("etf: map key of kind %s at offset %d cannot be used as an object key", e.Kind, e.Offset)
}

// DecompressError is returned when a compressed term cannot be inflated
// or its size does not match the declared size.
type DecompressError struct {
	Reason string
	Err    error
}

func (e *DecompressError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("etf: compressed term: %s: %v", e.Reason, e.Err)
	}
	return "etf: compressed term: " + e.Reason
}

func (e *DecompressError) Unwrap() error {
	return e.Err
}
