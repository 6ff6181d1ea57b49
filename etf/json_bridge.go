package etf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ============================================================
// JSON and Go-native bridge
// ============================================================
//
// These helpers move Values in and out of plain Go data (the shape
// encoding/json, CBOR, MessagePack and YAML decoders produce) and JSON
// text. They do not touch the wire format.

// FromJSON parses JSON text into a Value. Integral numbers become Uint
// when non-negative and Int otherwise; numbers with a fraction or
// exponent, or outside the 64-bit range, become Float.
func FromJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return nil, fmt.Errorf("etf: parse JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("etf: parse JSON: unexpected data after top-level value")
	}
	return FromAny(x)
}

// ToJSON renders v as compact JSON text. Object members come out in key
// order. Unlike the wire decoder, large integers are written as bare
// numbers.
func ToJSON(v *Value) ([]byte, error) {
	return json.Marshal(ToAny(v))
}

// MarshalJSON implements json.Marshaler.
func (v *Value) MarshalJSON() ([]byte, error) {
	return ToJSON(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := FromJSON(data)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

// ToAny converts v to plain Go data: nil, bool, string, float64,
// uint64, int64, []any and map[string]any. NaN and infinities become
// the strings "NaN", "+Inf" and "-Inf".
func ToAny(v *Value) any {
	switch v.Kind() {
	case KindObject:
		m := make(map[string]any, len(v.obj))
		for k, member := range v.obj {
			m[k] = ToAny(member)
		}
		return m
	case KindArray:
		items := make([]any, len(v.arr))
		for i, elem := range v.arr {
			items[i] = ToAny(elem)
		}
		return items
	case KindString:
		return v.str
	case KindFloat:
		switch {
		case math.IsNaN(v.f):
			return "NaN"
		case math.IsInf(v.f, 1):
			return "+Inf"
		case math.IsInf(v.f, -1):
			return "-Inf"
		}
		return v.f
	case KindUint:
		return v.u
	case KindInt:
		return v.i
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// FromAny converts plain Go data to a Value. It accepts what ToAny
// produces plus the other shapes common decoders emit: every integer
// and float width, []byte, json.Number and maps keyed by any scalar.
func FromAny(x any) (*Value, error) {
	switch x := x.(type) {
	case nil:
		return Null(), nil
	case *Value:
		return x.Clone(), nil
	case Value:
		return x.Clone(), nil
	case json.Number:
		return fromNumber(x)
	case []any:
		items := make([]*Value, 0, len(x))
		for i, elem := range x {
			v, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			items = append(items, v)
		}
		return &Value{kind: KindArray, arr: items}, nil
	case map[string]any:
		obj := Object()
		for k, elem := range x {
			v, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj.obj[k] = v
		}
		return obj, nil
	case map[any]any:
		obj := Object()
		for k, elem := range x {
			name, err := anyKey(k)
			if err != nil {
				return nil, err
			}
			v, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", name, err)
			}
			obj.obj[name] = v
		}
		return obj, nil
	}

	v := Null()
	if err := v.Set(x); err != nil {
		return nil, err
	}
	return v, nil
}

func fromNumber(n json.Number) (*Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if strings.HasPrefix(s, "-") {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return Int(i), nil
			}
		} else if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return Uint(u), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("etf: number %q: %w", s, err)
	}
	return Float(f), nil
}

// anyKey turns a non-string map key into an object key.
func anyKey(k any) (string, error) {
	v, err := FromAny(k)
	if err != nil {
		return "", err
	}
	name, ok := keyString(v)
	if !ok {
		return "", &InvalidKeyError{Kind: v.Kind(), Offset: -1}
	}
	return name, nil
}
