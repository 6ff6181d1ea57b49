package etf

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want *Value
	}{
		{"small integer", term(97, 7), Uint(7)},
		{"integer", term(98, 0, 0, 3, 232), Uint(1000)},
		{"integer high bit", term(98, 255, 255, 255, 254), Uint(4294967294)},
		{"float", floatTerm(-0.25), Float(-0.25)},
		{"small big", term(110, 5, 0, 0, 0, 0, 0, 1), Uint(1 << 32)},
		{"small big negative", term(110, 1, 1, 5), Int(-5)},
		{"small big min int64", term(110, 8, 1, 0, 0, 0, 0, 0, 0, 0, 128), Int(math.MinInt64)},
		{"atom true", term(115, 4, 't', 'r', 'u', 'e'), Bool(true)},
		{"binary false", binTerm("false"), Bool(false)},
		{"atom nil", term(115, 3, 'n', 'i', 'l'), Null()},
		{"binary text", binTerm(`a\nb`), String(`a\nb`)},
		{"char list", term(107, 0, 2, 0, 1), String("\x00\x01")},
		{"nil", term(106), Array()},
		{"list", term(108, 0, 0, 0, 2, 97, 1, 115, 1, 'x', 106), Array(Uint(1), String("x"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unmarshal(tt.in)
			require.NoError(t, err)
			assert.Truef(t, tt.want.Equal(got), "want %s %v, got %s %v", tt.want.Kind(), ToAny(tt.want), got.Kind(), ToAny(got))
		})
	}
}

func TestUnmarshal_NegativeBigOutOfRange(t *testing.T) {
	// -(2^63 + 1) does not fit an int64.
	_, err := Unmarshal(term(110, 8, 1, 1, 0, 0, 0, 0, 0, 0, 128))
	var berr *UnsupportedBigIntegerError
	require.True(t, errors.As(err, &berr))
}

func TestUnmarshal_MapKeys(t *testing.T) {
	// {7: 1, true: 2, "s": 3}
	in := term(116, 0, 0, 0, 3,
		97, 7, 97, 1,
		115, 4, 't', 'r', 'u', 'e', 97, 2,
		107, 0, 1, 's', 97, 3)
	v, err := Unmarshal(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "s", "true"}, v.Keys())

	// A list cannot be an object key.
	_, err = Unmarshal(term(116, 0, 0, 0, 1, 106, 97, 1))
	var kerr *InvalidKeyError
	require.True(t, errors.As(err, &kerr))
	assert.Equal(t, KindArray, kerr.Kind)
	assert.Equal(t, 6, kerr.Offset)
}

func TestUnmarshal_ReadyPayload(t *testing.T) {
	v, err := Unmarshal(readyPayload)
	require.NoError(t, err)

	op, err := v.Get("op").AsUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), op)

	eventName, err := v.Get("t").AsString()
	require.NoError(t, err)
	assert.Equal(t, "READY", eventName)

	d := v.Get("d")
	require.Equal(t, KindObject, d.Kind())

	user := d.Get("user")
	id, err := user.Get("id").AsUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(1142733646600614004), id)

	bot, err := user.Get("bot").AsBool()
	require.NoError(t, err)
	assert.True(t, bot)
	assert.True(t, user.Get("email").IsNull())

	shard, err := d.Get("shard").AsString()
	require.NoError(t, err)
	assert.Equal(t, "\x00\x01", shard)

	assert.Equal(t, 7, d.Get("guilds").Len())
	assert.Equal(t, 0, d.Get("presences").Len())
	assert.Equal(t, KindObject, d.Get("auth").Kind())
}

func TestUnmarshal_Errors(t *testing.T) {
	var verr *FormatVersionError
	_, err := Unmarshal(nil)
	assert.True(t, errors.As(err, &verr))

	var uerr *UnknownTypeError
	_, err = Unmarshal(term(116, 0, 0, 0, 1, 115, 1, 'k', 1))
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, 9, uerr.Offset)

	var rerr *RecursionLimitError
	_, err = Unmarshal(nestedLists(DefaultMaxDepth + 1))
	assert.True(t, errors.As(err, &rerr))

	for n := 1; n < len(readyPayload); n++ {
		_, err := Unmarshal(readyPayload[:n])
		var overrun *BufferOverrunError
		if !assert.Truef(t, errors.As(err, &overrun), "prefix %d: got %v", n, err) {
			return
		}
	}
}

func TestReadText(t *testing.T) {
	in := []byte{
		100, 0, 2, 'i', 'd',
		115, 1, 'v',
		109, 0, 0, 0, 3, 'a', 'b', 'c',
		107, 0, 1, 'z',
		97, 1,
	}
	c := NewCursor(in)
	for _, want := range []string{"id", "v", "abc", "z"} {
		got, err := ReadText(c)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ReadText(c)
	var merr *TypeMismatchError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, KindUint, merr.Got)

	_, err = ReadText(NewCursor([]byte{42}))
	var uerr *UnknownTypeError
	assert.True(t, errors.As(err, &uerr))
}

func TestReadValue_Sequence(t *testing.T) {
	in := []byte{97, 1, 115, 2, 'o', 'k', 106}
	c := NewCursor(in)
	var got []*Value
	for c.Remaining() > 0 {
		v, err := ReadValue(c, DefaultDecodeOptions())
		require.NoError(t, err)
		got = append(got, v)
	}
	require.Len(t, got, 3)
	assert.True(t, Uint(1).Equal(got[0]))
	assert.True(t, String("ok").Equal(got[1]))
	assert.True(t, Array().Equal(got[2]))
}
