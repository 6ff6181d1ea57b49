package bridge

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Neumenon/etfer/etf"
)

// ToMsgpack encodes v as MessagePack. Map keys are sorted so equal
// values produce identical bytes. Integers keep their full 64-bit
// width (uint 64 or int 64), which preserves the Uint/Int distinction.
func ToMsgpack(v *etf.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(etf.ToAny(v)); err != nil {
		return nil, fmt.Errorf("bridge: encode msgpack: %w", err)
	}
	return buf.Bytes(), nil
}

// FromMsgpack decodes one MessagePack value. Bin values become strings.
func FromMsgpack(data []byte) (*etf.Value, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)

	var x any
	if err := dec.Decode(&x); err != nil {
		return nil, fmt.Errorf("bridge: decode msgpack: %w", err)
	}
	v, err := fromAny(x)
	if err != nil {
		return nil, fmt.Errorf("bridge: decode msgpack: %w", err)
	}
	return v, nil
}
