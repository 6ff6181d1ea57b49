package bridge

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/Neumenon/etfer/etf"
)

// encMode writes Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite lengths. Equal
// values produce identical bytes.
var encMode cbor.EncMode

// decMode decodes untyped maps as map[string]any. Maps with other key
// types fail, since an etf object is keyed by strings.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("bridge: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("bridge: CBOR decoder initialization failed: " + err.Error())
	}
}

// ToCBOR encodes v as deterministic CBOR.
func ToCBOR(v *etf.Value) ([]byte, error) {
	data, err := encMode.Marshal(etf.ToAny(v))
	if err != nil {
		return nil, fmt.Errorf("bridge: encode CBOR: %w", err)
	}
	return data, nil
}

// FromCBOR decodes one CBOR data item. Byte strings become strings;
// tags and non-string map keys are rejected.
func FromCBOR(data []byte) (*etf.Value, error) {
	var x any
	if err := decMode.Unmarshal(data, &x); err != nil {
		return nil, fmt.Errorf("bridge: decode CBOR: %w", err)
	}
	v, err := fromAny(x)
	if err != nil {
		return nil, fmt.Errorf("bridge: decode CBOR: %w", err)
	}
	return v, nil
}

// DiagnoseCBOR returns the RFC 8949 diagnostic notation of v's CBOR
// encoding.
func DiagnoseCBOR(v *etf.Value) (string, error) {
	data, err := ToCBOR(v)
	if err != nil {
		return "", err
	}
	return cbor.Diagnose(data)
}
