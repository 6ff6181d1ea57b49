package etf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure_MatchesBytesConsumed(t *testing.T) {
	terms := map[string][]byte{
		"small integer": term(97, 1),
		"integer":       term(98, 0, 0, 3, 232),
		"float":         floatTerm(2.5),
		"small big":     term(110, 3, 1, 1, 2, 3),
		"atom":          term(100, 0, 2, 'o', 'k'),
		"small atom":    term(115, 1, 'x'),
		"char list":     term(107, 0, 2, 1, 2),
		"binary":        binTerm("payload"),
		"nil":           term(106),
		"list":          term(108, 0, 0, 0, 2, 97, 1, 106, 106),
		"map":           term(116, 0, 0, 0, 1, 115, 1, 'k', 108, 0, 0, 0, 0, 106),
		"ready":         readyPayload,
	}

	for name, data := range terms {
		t.Run(name, func(t *testing.T) {
			n, err := MeasureTerm(data)
			require.NoError(t, err)
			assert.Equal(t, len(data)-1, n)

			c := NewCursor(data[1:])
			n, err = Measure(c)
			require.NoError(t, err)
			assert.Equal(t, c.Offset(), n)
			assert.Equal(t, 0, c.Remaining())
		})
	}
}

func TestSkip_StepsOverOneValue(t *testing.T) {
	// {skip: [1, 2, 3], keep: "yes"}
	buf := []byte{116, 0, 0, 0, 2,
		115, 4, 's', 'k', 'i', 'p',
		108, 0, 0, 0, 3, 97, 1, 97, 2, 97, 3, 106,
		115, 4, 'k', 'e', 'e', 'p',
		109, 0, 0, 0, 3, 'y', 'e', 's',
	}
	c := NewCursor(buf)
	_, err := c.ReadBytes(5)
	require.NoError(t, err)

	key, err := ReadText(c)
	require.NoError(t, err)
	assert.Equal(t, "skip", key)
	require.NoError(t, Skip(c))

	key, err = ReadText(c)
	require.NoError(t, err)
	assert.Equal(t, "keep", key)
	v, err := ReadValue(c, DefaultDecodeOptions())
	require.NoError(t, err)
	assert.True(t, String("yes").Equal(v))
	assert.Equal(t, 0, c.Remaining())
}

func TestMeasure_Errors(t *testing.T) {
	_, err := MeasureTerm([]byte{130})
	var verr *FormatVersionError
	assert.True(t, errors.As(err, &verr))

	_, err = MeasureTerm(term(99))
	var uerr *UnknownTypeError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, byte(99), uerr.Tag)

	_, err = MeasureTerm(term(110, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9))
	var berr *UnsupportedBigIntegerError
	assert.True(t, errors.As(err, &berr))

	_, err = MeasureTerm(nestedLists(DefaultMaxDepth + 1))
	var rerr *RecursionLimitError
	assert.True(t, errors.As(err, &rerr))

	n, err := NewDecoder(DecodeOptions{MaxDepth: -1}).Measure(nestedLists(DefaultMaxDepth + 1))
	require.NoError(t, err)
	assert.Equal(t, (DefaultMaxDepth+1)*6+1, n)

	for i := 1; i < len(readyPayload); i++ {
		_, err := MeasureTerm(readyPayload[:i])
		var overrun *BufferOverrunError
		if !assert.Truef(t, errors.As(err, &overrun), "prefix %d: got %v", i, err) {
			return
		}
	}
}
