// Package bridge converts etf values to and from other self-describing
// formats: CBOR, MessagePack and YAML.
//
// Every conversion goes through plain Go data (etf.ToAny and
// etf.FromAny), so the rules are the same in all directions: objects
// become string-keyed maps, NaN and infinities become strings, and
// integers keep their sign. On the way in, non-negative integers are
// normalized to etf.KindUint, matching etf.FromJSON.
package bridge

import (
	"github.com/Neumenon/etfer/etf"
)

// fromAny builds a value from decoded Go data and normalizes integers.
func fromAny(x any) (*etf.Value, error) {
	v, err := etf.FromAny(x)
	if err != nil {
		return nil, err
	}
	normalize(v)
	return v, nil
}

// normalize rewrites non-negative Int members as Uint, in place.
// Decoders report small positive numbers with whatever signed width the
// wire used, which would otherwise compare unequal to the Uint the etf
// decoder produces for the same number.
func normalize(v *etf.Value) {
	switch v.Kind() {
	case etf.KindInt:
		if n, _ := v.AsInt(); n >= 0 {
			v.SetUint(uint64(n))
		}
	case etf.KindArray:
		items, _ := v.AsArray()
		for _, item := range items {
			normalize(item)
		}
	case etf.KindObject:
		members, _ := v.AsObject()
		for _, member := range members {
			normalize(member)
		}
	}
}
