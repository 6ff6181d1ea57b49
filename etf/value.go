package etf

import (
	"fmt"
	"sort"
)

// Kind is the discriminant of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindObject
	KindArray
	KindString
	KindFloat
	KindUint
	KindInt
	KindBool
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is a dynamically typed term. Exactly one payload is active,
// selected by its Kind; the zero Value is Null.
//
// A Value owns its payload. Containers hold *Value children, and a child
// must not be shared between two containers: use Clone to copy and Take
// to move.
type Value struct {
	kind Kind

	obj map[string]*Value
	arr []*Value
	str string
	f   float64
	u   uint64
	i   int64
	b   bool

	// int32Wire marks a Uint read from an INTEGER_EXT field.
	int32Wire bool
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{}
}

// Object creates an empty object.
func Object() *Value {
	return &Value{kind: KindObject, obj: make(map[string]*Value)}
}

// Array creates an array holding the given elements.
func Array(items ...*Value) *Value {
	arr := make([]*Value, len(items))
	for i, item := range items {
		if item == nil {
			item = Null()
		}
		arr[i] = item
	}
	return &Value{kind: KindArray, arr: arr}
}

// String creates a string value.
func String(s string) *Value {
	return &Value{kind: KindString, str: s}
}

// Float creates a float value.
func Float(f float64) *Value {
	return &Value{kind: KindFloat, f: f}
}

// Uint creates an unsigned integer value.
func Uint(u uint64) *Value {
	return &Value{kind: KindUint, u: u}
}

// Int creates a signed integer value.
func Int(i int64) *Value {
	return &Value{kind: KindInt, i: i}
}

// Bool creates a boolean value.
func Bool(b bool) *Value {
	return &Value{kind: KindBool, b: b}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the discriminant. A nil *Value reports KindNull.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull returns true if this is a null value.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

func (v *Value) expect(k Kind) error {
	if v.Kind() != k {
		return &TypeMismatchError{Want: k, Got: v.Kind()}
	}
	return nil
}

// AsObject returns the object's map. Mutating the map mutates the value.
func (v *Value) AsObject() (map[string]*Value, error) {
	if err := v.expect(KindObject); err != nil {
		return nil, err
	}
	return v.obj, nil
}

// AsArray returns the array's elements. The elements are shared with
// the value; use Append or At to grow it.
func (v *Value) AsArray() ([]*Value, error) {
	if err := v.expect(KindArray); err != nil {
		return nil, err
	}
	return v.arr, nil
}

// AsString returns the string payload.
func (v *Value) AsString() (string, error) {
	if err := v.expect(KindString); err != nil {
		return "", err
	}
	return v.str, nil
}

// AsFloat returns the float payload.
func (v *Value) AsFloat() (float64, error) {
	if err := v.expect(KindFloat); err != nil {
		return 0, err
	}
	return v.f, nil
}

// AsUint returns the unsigned integer payload.
func (v *Value) AsUint() (uint64, error) {
	if err := v.expect(KindUint); err != nil {
		return 0, err
	}
	return v.u, nil
}

// AsInt returns the signed integer payload.
func (v *Value) AsInt() (int64, error) {
	if err := v.expect(KindInt); err != nil {
		return 0, err
	}
	return v.i, nil
}

// AsBool returns the boolean payload.
func (v *Value) AsBool() (bool, error) {
	if err := v.expect(KindBool); err != nil {
		return false, err
	}
	return v.b, nil
}

// WireInt32 reports whether v is a Uint decoded from a 4-byte
// INTEGER_EXT field. Such a value holds the field's raw bit pattern,
// which a signed reader takes as a two's-complement int32.
func (v *Value) WireInt32() bool {
	return v != nil && v.kind == KindUint && v.int32Wire
}

// Len returns the number of entries of an object or elements of an
// array, the byte length of a string, and 0 otherwise.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindObject:
		return len(v.obj)
	case KindArray:
		return len(v.arr)
	case KindString:
		return len(v.str)
	default:
		return 0
	}
}

// Keys returns the object's keys in byte order.
func (v *Value) Keys() []string {
	if v.Kind() != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the member named key, or nil if absent or v is not an
// object. Unlike Key it never mutates v.
func (v *Value) Get(key string) *Value {
	if v.Kind() != KindObject {
		return nil
	}
	return v.obj[key]
}

// ============================================================
// Mutators
// ============================================================

// reset drops the active payload and switches to kind k.
func (v *Value) reset(k Kind) {
	*v = Value{kind: k}
}

// SetNull makes v null.
func (v *Value) SetNull() {
	v.reset(KindNull)
}

// SetObject makes v an empty object.
func (v *Value) SetObject() {
	v.reset(KindObject)
	v.obj = make(map[string]*Value)
}

// SetArray makes v an empty array.
func (v *Value) SetArray() {
	v.reset(KindArray)
}

// SetString makes v a string.
func (v *Value) SetString(s string) {
	v.reset(KindString)
	v.str = s
}

// SetFloat makes v a float.
func (v *Value) SetFloat(f float64) {
	v.reset(KindFloat)
	v.f = f
}

// SetUint makes v an unsigned integer.
func (v *Value) SetUint(u uint64) {
	v.reset(KindUint)
	v.u = u
}

// SetInt makes v a signed integer.
func (v *Value) SetInt(i int64) {
	v.reset(KindInt)
	v.i = i
}

// SetBool makes v a boolean.
func (v *Value) SetBool(b bool) {
	v.reset(KindBool)
	v.b = b
}

// Set assigns a Go primitive, replacing the current payload. Signed
// integer types become Int, unsigned become Uint, float32/64 become
// Float, nil becomes Null. A *Value argument is deep-copied.
func (v *Value) Set(x any) error {
	switch x := x.(type) {
	case nil:
		v.SetNull()
	case bool:
		v.SetBool(x)
	case string:
		v.SetString(x)
	case []byte:
		v.SetString(string(x))
	case float64:
		v.SetFloat(x)
	case float32:
		v.SetFloat(float64(x))
	case int:
		v.SetInt(int64(x))
	case int8:
		v.SetInt(int64(x))
	case int16:
		v.SetInt(int64(x))
	case int32:
		v.SetInt(int64(x))
	case int64:
		v.SetInt(x)
	case uint:
		v.SetUint(uint64(x))
	case uint8:
		v.SetUint(uint64(x))
	case uint16:
		v.SetUint(uint64(x))
	case uint32:
		v.SetUint(uint64(x))
	case uint64:
		v.SetUint(x)
	case *Value:
		*v = *x.Clone()
	default:
		return fmt.Errorf("etf: cannot assign %T to a value", x)
	}
	return nil
}

// Key returns the member named key, creating it as Null if absent. A
// null v is promoted to an empty object first.
func (v *Value) Key(key string) (*Value, error) {
	if v == nil {
		return nil, ErrNilValue
	}
	if v.kind == KindNull {
		v.SetObject()
	}
	if err := v.expect(KindObject); err != nil {
		return nil, err
	}
	member, ok := v.obj[key]
	if !ok || member == nil {
		member = Null()
		v.obj[key] = member
	}
	return member, nil
}

// Put stores member under key, promoting a null v to an object.
func (v *Value) Put(key string, member *Value) error {
	if v == nil {
		return ErrNilValue
	}
	if v.kind == KindNull {
		v.SetObject()
	}
	if err := v.expect(KindObject); err != nil {
		return err
	}
	if member == nil {
		member = Null()
	}
	v.obj[key] = member
	return nil
}

// Delete removes key from an object. It is a no-op for other kinds.
func (v *Value) Delete(key string) {
	if v.Kind() == KindObject {
		delete(v.obj, key)
	}
}

// At returns the element at index, promoting a null v to an array and
// growing the array with null elements when index is past the end.
func (v *Value) At(index int) (*Value, error) {
	if index < 0 {
		return nil, fmt.Errorf("etf: negative array index %d", index)
	}
	if v == nil {
		return nil, ErrNilValue
	}
	if v.kind == KindNull {
		v.SetArray()
	}
	if err := v.expect(KindArray); err != nil {
		return nil, err
	}
	for len(v.arr) <= index {
		v.arr = append(v.arr, Null())
	}
	return v.arr[index], nil
}

// Append adds elem to the end of an array, promoting a null v first.
func (v *Value) Append(elem *Value) error {
	if v == nil {
		return ErrNilValue
	}
	if v.kind == KindNull {
		v.SetArray()
	}
	if err := v.expect(KindArray); err != nil {
		return err
	}
	if elem == nil {
		elem = Null()
	}
	v.arr = append(v.arr, elem)
	return nil
}

// ============================================================
// Copy, move, compare
// ============================================================

// Clone returns a deep, independent copy of v.
func (v *Value) Clone() *Value {
	if v == nil {
		return Null()
	}
	out := *v
	switch v.kind {
	case KindObject:
		out.obj = make(map[string]*Value, len(v.obj))
		for k, member := range v.obj {
			out.obj[k] = member.Clone()
		}
	case KindArray:
		out.arr = make([]*Value, len(v.arr))
		for i, elem := range v.arr {
			out.arr[i] = elem.Clone()
		}
	}
	return &out
}

// Take moves v's payload into a new Value and leaves v null.
func (v *Value) Take() *Value {
	if v == nil {
		return Null()
	}
	out := *v
	v.reset(KindNull)
	return &out
}

// Equal reports whether v and other have the same kind and structurally
// equal payloads. Values of different kinds are never equal, so Uint(1)
// does not equal Int(1).
func (v *Value) Equal(other *Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	switch v.Kind() {
	case KindNull:
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, member := range v.obj {
			theirs, ok := other.obj[k]
			if !ok || !member.Equal(theirs) {
				return false
			}
		}
		return true
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindString:
		return v.str == other.str
	case KindFloat:
		return v.f == other.f
	case KindUint:
		return v.u == other.u
	case KindInt:
		return v.i == other.i
	case KindBool:
		return v.b == other.b
	}
	return false
}
