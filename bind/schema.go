// Package bind maps Go structs onto ETF maps.
//
// A Schema lists the members of a struct by wire name, each with a
// getter and a setter. Schemas can be written by hand with NewSchema
// and Member, or derived from `etf` struct tags with Reflect:
//
//	type Hello struct {
//		Op int    `etf:"op"`
//		T  string `etf:"t,omitempty"`
//	}
//
//	data, err := bind.Marshal(&Hello{Op: 10})
//	err = bind.Unmarshal(data, &hello)
//
// Decoding walks the map member by member. Members the schema does not
// name are stepped over with etf.Skip and never materialized.
package bind

import (
	"fmt"
	"reflect"

	"github.com/Neumenon/etfer/etf"
)

// Field binds one wire member of T.
type Field[T any] struct {
	Name string

	// Get produces the member value. A nil result encodes as nil.
	Get func(*T) (*etf.Value, error)

	// Set stores a decoded member value.
	Set func(*T, *etf.Value) error

	// OmitEmpty leaves the member out when Get yields null, false, zero,
	// or an empty string, array or object.
	OmitEmpty bool
}

// Schema is an ordered set of fields. It is immutable after creation
// and safe for concurrent use.
type Schema[T any] struct {
	fields []Field[T]
	index  map[string]int
}

var (
	defaultDecoder = etf.NewDecoder(etf.DefaultDecodeOptions())
	defaultEncoder = etf.NewEncoder(etf.EncodeOptions{SortKeys: true})
)

// NewSchema builds a schema from fields. It panics on an empty or
// duplicate name, or a field without Get or Set.
func NewSchema[T any](fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{
		fields: make([]Field[T], len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.Name == "" {
			panic("bind: field with empty name")
		}
		if f.Get == nil || f.Set == nil {
			panic(fmt.Sprintf("bind: field %q needs both Get and Set", f.Name))
		}
		if _, dup := s.index[f.Name]; dup {
			panic(fmt.Sprintf("bind: duplicate field %q", f.Name))
		}
		s.fields[i] = f
		s.index[f.Name] = i
	}
	return s
}

// Member binds name to the struct member ptr selects, converting with
// the same rules Reflect uses.
func Member[T, F any](name string, ptr func(*T) *F) Field[T] {
	return Field[T]{
		Name: name,
		Get: func(v *T) (*etf.Value, error) {
			return toValue(reflect.ValueOf(ptr(v)).Elem(), name)
		},
		Set: func(v *T, val *etf.Value) error {
			return fromValue(val, reflect.ValueOf(ptr(v)).Elem(), name)
		},
	}
}

// Nested binds name to a struct member encoded with its own schema.
func Nested[T, U any](name string, inner *Schema[U], ptr func(*T) *U) Field[T] {
	return Field[T]{
		Name: name,
		Get: func(v *T) (*etf.Value, error) {
			return inner.ToValue(ptr(v))
		},
		Set: func(v *T, val *etf.Value) error {
			return inner.FromValue(val, ptr(v))
		},
	}
}

// Names returns the wire names in schema order.
func (s *Schema[T]) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// ============================================================
// Encoding
// ============================================================

type member struct {
	name string
	val  *etf.Value
}

func (s *Schema[T]) members(v *T) ([]member, error) {
	out := make([]member, 0, len(s.fields))
	for _, f := range s.fields {
		val, err := f.Get(v)
		if err != nil {
			return nil, fmt.Errorf("bind: field %q: %w", f.Name, err)
		}
		if val == nil {
			val = etf.Null()
		}
		if f.OmitEmpty && isEmpty(val) {
			continue
		}
		out = append(out, member{name: f.Name, val: val})
	}
	return out, nil
}

// Marshal encodes v as a map whose keys follow schema order.
func (s *Schema[T]) Marshal(v *T) ([]byte, error) {
	return s.Append([]byte{etf.FormatVersion}, v)
}

// Append appends the map term for v (no version byte) to dst.
func (s *Schema[T]) Append(dst []byte, v *T) ([]byte, error) {
	members, err := s.members(v)
	if err != nil {
		return nil, err
	}
	dst = etf.AppendMapHeader(dst, uint32(len(members)))
	for _, m := range members {
		dst = etf.AppendBinary(dst, m.name)
		if dst, err = defaultEncoder.Append(dst, m.val); err != nil {
			return nil, fmt.Errorf("bind: field %q: %w", m.name, err)
		}
	}
	return dst, nil
}

// ToValue converts v to an object value.
func (s *Schema[T]) ToValue(v *T) (*etf.Value, error) {
	members, err := s.members(v)
	if err != nil {
		return nil, err
	}
	obj := etf.Object()
	for _, m := range members {
		if err := obj.Put(m.name, m.val); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// ============================================================
// Decoding
// ============================================================

// Unmarshal decodes a map term into v. Members missing from data leave
// their fields untouched.
func (s *Schema[T]) Unmarshal(data []byte, v *T) error {
	c, err := defaultDecoder.Open(data)
	if err != nil {
		return err
	}
	return s.Decode(c, v)
}

// Decode reads one map at the cursor into v.
func (s *Schema[T]) Decode(c *etf.Cursor, v *T) error {
	at := c.Offset()
	tag, err := c.ReadU8()
	if err != nil {
		return err
	}
	if t := etf.Tag(tag); t != etf.TagMap {
		if !t.Valid() {
			return &etf.UnknownTypeError{Tag: tag, Offset: at}
		}
		return &TypeError{Type: reflect.TypeFor[T](), Got: t.Kind()}
	}
	count, err := c.ReadU32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		name, err := etf.ReadText(c)
		if err != nil {
			return err
		}
		idx, ok := s.index[name]
		if !ok {
			if err := etf.Skip(c); err != nil {
				return err
			}
			continue
		}
		val, err := etf.ReadValue(c, defaultDecoder.Options())
		if err != nil {
			return err
		}
		if err := s.fields[idx].Set(v, val); err != nil {
			return fmt.Errorf("bind: field %q: %w", name, err)
		}
	}
	return nil
}

// FromValue stores the members of an object value into v.
func (s *Schema[T]) FromValue(val *etf.Value, v *T) error {
	obj, err := val.AsObject()
	if err != nil {
		return &TypeError{Type: reflect.TypeFor[T](), Got: val.Kind()}
	}
	for name, m := range obj {
		idx, ok := s.index[name]
		if !ok {
			continue
		}
		if err := s.fields[idx].Set(v, m); err != nil {
			return fmt.Errorf("bind: field %q: %w", name, err)
		}
	}
	return nil
}

// ============================================================
// Reflection shortcuts
// ============================================================

// Marshal encodes v with the schema Reflect derives for T.
func Marshal[T any](v *T) ([]byte, error) {
	return Reflect[T]().Marshal(v)
}

// Unmarshal decodes data into v with the schema Reflect derives for T.
func Unmarshal[T any](data []byte, v *T) error {
	return Reflect[T]().Unmarshal(data, v)
}

func isEmpty(v *etf.Value) bool {
	switch v.Kind() {
	case etf.KindNull:
		return true
	case etf.KindBool:
		b, _ := v.AsBool()
		return !b
	case etf.KindUint:
		u, _ := v.AsUint()
		return u == 0
	case etf.KindInt:
		i, _ := v.AsInt()
		return i == 0
	case etf.KindFloat:
		f, _ := v.AsFloat()
		return f == 0
	default:
		return v.Len() == 0
	}
}
