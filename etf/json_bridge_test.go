package etf

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON_NumberKinds(t *testing.T) {
	v, err := FromJSON([]byte(`{
		"a": 1,
		"b": -2,
		"c": 1.5,
		"d": [true, null, "x"],
		"e": 18446744073709551615,
		"f": 18446744073709551616,
		"g": 1e3
	}`))
	require.NoError(t, err)

	assert.True(t, Uint(1).Equal(v.Get("a")))
	assert.True(t, Int(-2).Equal(v.Get("b")))
	assert.True(t, Float(1.5).Equal(v.Get("c")))
	assert.True(t, Array(Bool(true), Null(), String("x")).Equal(v.Get("d")))
	assert.True(t, Uint(math.MaxUint64).Equal(v.Get("e")))
	assert.Equal(t, KindFloat, v.Get("f").Kind())
	assert.True(t, Float(1000).Equal(v.Get("g")))
}

func TestFromJSON_Errors(t *testing.T) {
	_, err := FromJSON([]byte(`{"a":`))
	assert.Error(t, err)

	_, err = FromJSON([]byte(`1 2`))
	assert.Error(t, err)
}

func TestToJSON_SortedKeys(t *testing.T) {
	v := Object()
	require.NoError(t, v.Put("z", Uint(1)))
	require.NoError(t, v.Put("a", Array(Int(-1), Float(0.5), Null())))
	require.NoError(t, v.Put("m", Bool(false)))

	out, err := ToJSON(v)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[-1,0.5,null],"m":false,"z":1}`, string(out))

	out, err = ToJSON(Float(math.NaN()))
	require.NoError(t, err)
	assert.Equal(t, `"NaN"`, string(out))
}

func TestValue_JSONMarshaler(t *testing.T) {
	type envelope struct {
		Op   int    `json:"op"`
		Data *Value `json:"d"`
	}
	in := envelope{Op: 2, Data: Array(String("a"))}
	out, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `{"op":2,"d":["a"]}`, string(out))

	var back envelope
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, 2, back.Op)
	assert.True(t, in.Data.Equal(back.Data))
}

func TestFromAny_DecoderShapes(t *testing.T) {
	v, err := FromAny(map[any]any{
		1:     "one",
		"two": []any{int8(2), uint16(2), float32(2)},
		true:  nil,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "true", "two"}, v.Keys())

	items, err := v.Get("two").AsArray()
	require.NoError(t, err)
	assert.Equal(t, KindInt, items[0].Kind())
	assert.Equal(t, KindUint, items[1].Kind())
	assert.Equal(t, KindFloat, items[2].Kind())

	_, err = FromAny(struct{}{})
	assert.Error(t, err)

	_, err = FromAny(map[any]any{struct{}{}: 1})
	assert.Error(t, err)
}

func TestToAny_FromAny_RoundTrip(t *testing.T) {
	v, err := Unmarshal(readyPayload)
	require.NoError(t, err)

	back, err := FromAny(ToAny(v))
	require.NoError(t, err)
	assert.True(t, v.Equal(back))
}
