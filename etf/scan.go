package etf

// ============================================================
// Structural scanner
// ============================================================

// Measure reads one value at the cursor and returns its encoded length,
// children included. The cursor ends up just past the value. Bounds,
// tags and nesting are checked exactly as the decoder checks them.
func Measure(c *Cursor) (int, error) {
	return measure(c, DefaultMaxDepth, 0)
}

// Skip advances the cursor past one value.
func Skip(c *Cursor) error {
	_, err := measure(c, DefaultMaxDepth, 0)
	return err
}

// MeasureTerm returns the length of the top-level term in data, not
// counting the version byte. A compressed term is inflated and checked,
// and the whole envelope is reported.
func MeasureTerm(data []byte) (int, error) {
	return NewDecoder(DefaultDecodeOptions()).Measure(data)
}

// Measure is MeasureTerm with the decoder's options.
func (d *Decoder) Measure(data []byte) (int, error) {
	c, err := openTerm(data, d.opts)
	if err != nil {
		return 0, err
	}
	n, err := measure(c, d.opts.maxDepth(), 0)
	if err != nil {
		return 0, err
	}
	if Tag(data[1]) == TagCompressed {
		// The envelope runs to the end of data.
		return len(data) - 1, nil
	}
	return n, nil
}

func measure(c *Cursor, limit, depth int) (int, error) {
	start := c.Offset()
	tag, err := c.ReadU8()
	if err != nil {
		return 0, err
	}

	skip := func(n int) (int, error) {
		if _, err := c.ReadBytes(n); err != nil {
			return 0, err
		}
		return c.Offset() - start, nil
	}

	switch Tag(tag) {
	case TagSmallInteger:
		return skip(1)
	case TagInteger:
		return skip(4)
	case TagNewFloat:
		return skip(8)
	case TagNil:
		return 1, nil

	case TagSmallBig:
		digits, err := c.ReadU8()
		if err != nil {
			return 0, err
		}
		if _, err := c.ReadU8(); err != nil {
			return 0, err
		}
		if digits > maxBigDigits {
			return 0, &UnsupportedBigIntegerError{Digits: int(digits), Offset: start}
		}
		return skip(int(digits))

	case TagAtom, TagSmallAtom, TagBinary:
		if _, err := readTextPayload(c, Tag(tag)); err != nil {
			return 0, err
		}
		return c.Offset() - start, nil

	case TagString:
		n, err := c.ReadU16()
		if err != nil {
			return 0, err
		}
		return skip(int(n))

	case TagList:
		depth++
		if depthExceeded(depth, limit) {
			return 0, &RecursionLimitError{Limit: limit, Offset: start}
		}
		count, err := c.ReadU32()
		if err != nil {
			return 0, err
		}
		if uint64(count)+1 > uint64(c.Remaining()) {
			return 0, &BufferOverrunError{Offset: c.Offset(), Need: clampNeed(uint64(count) + 1), Len: c.Len()}
		}
		for i := uint32(0); i < count; i++ {
			if _, err := measure(c, limit, depth); err != nil {
				return 0, err
			}
		}
		return skip(1)

	case TagMap:
		depth++
		if depthExceeded(depth, limit) {
			return 0, &RecursionLimitError{Limit: limit, Offset: start}
		}
		count, err := c.ReadU32()
		if err != nil {
			return 0, err
		}
		if uint64(count)*2 > uint64(c.Remaining()) {
			return 0, &BufferOverrunError{Offset: c.Offset(), Need: clampNeed(uint64(count) * 2), Len: c.Len()}
		}
		for i := uint64(0); i < uint64(count)*2; i++ {
			if _, err := measure(c, limit, depth); err != nil {
				return 0, err
			}
		}
		return c.Offset() - start, nil

	default:
		return 0, &UnknownTypeError{Tag: tag, Offset: start}
	}
}

// clampNeed converts a container's minimum byte need to an int for
// error reporting.
func clampNeed(n uint64) int {
	const maxInt32 = 1<<31 - 1
	if n > maxInt32 {
		return maxInt32
	}
	return int(n)
}
