package bind

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Neumenon/etfer/etf"
)

// TagName is the struct tag Reflect reads.
const TagName = "etf"

var (
	// Read-copy-update caches: readers load the current map without
	// locking; writers copy it under the mutex and swap the pointer.
	structInfoCachePtr atomic.Pointer[map[reflect.Type]*structInfo]
	structInfoCacheMu  sync.Mutex

	schemaCachePtr atomic.Pointer[map[reflect.Type]any]
	schemaCacheMu  sync.Mutex
)

var (
	valueType    = reflect.TypeFor[etf.Value]()
	valuePtrType = reflect.TypeFor[*etf.Value]()
)

type fieldInfo struct {
	name      string
	index     []int
	omitEmpty bool
}

type structInfo struct {
	fields []fieldInfo
	byName map[string]int
}

// loadOrStore returns the cached entry for typ, building it at most
// once per type.
func loadOrStore[V any](ptr *atomic.Pointer[map[reflect.Type]V], mu *sync.Mutex, typ reflect.Type, build func() V) V {
	if m := ptr.Load(); m != nil {
		if v, ok := (*m)[typ]; ok {
			return v
		}
	}

	mu.Lock()
	defer mu.Unlock()

	m := ptr.Load()
	if m != nil {
		if v, ok := (*m)[typ]; ok {
			return v
		}
	}

	v := build()
	size := 1
	if m != nil {
		size += len(*m)
	}
	next := make(map[reflect.Type]V, size)
	if m != nil {
		maps.Copy(next, *m)
	}
	next[typ] = v
	ptr.Store(&next)
	return v
}

// Reflect returns the schema for struct type T derived from its `etf`
// tags. The schema is built once per type and cached.
//
// Exported fields bind under their tag name, or their Go name when
// untagged. A tag of "-" skips the field and the option omitempty sets
// Field.OmitEmpty. Untagged embedded structs contribute their fields
// as if declared inline; the first field to claim a name wins.
func Reflect[T any]() *Schema[T] {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		panic(fmt.Sprintf("bind: Reflect expects a struct type, got %s", typ))
	}
	s := loadOrStore(&schemaCachePtr, &schemaCacheMu, typ, func() any {
		return buildSchema[T](typ)
	})
	return s.(*Schema[T])
}

func buildSchema[T any](typ reflect.Type) *Schema[T] {
	si := getStructInfo(typ)
	fields := make([]Field[T], len(si.fields))
	for i, fi := range si.fields {
		fields[i] = Field[T]{
			Name:      fi.name,
			OmitEmpty: fi.omitEmpty,
			Get: func(v *T) (*etf.Value, error) {
				return toValue(reflect.ValueOf(v).Elem().FieldByIndex(fi.index), fi.name)
			},
			Set: func(v *T, val *etf.Value) error {
				return fromValue(val, reflect.ValueOf(v).Elem().FieldByIndex(fi.index), fi.name)
			},
		}
	}
	return NewSchema(fields...)
}

func getStructInfo(typ reflect.Type) *structInfo {
	return loadOrStore(&structInfoCachePtr, &structInfoCacheMu, typ, func() *structInfo {
		return parseStructInfo(typ)
	})
}

func parseStructInfo(typ reflect.Type) *structInfo {
	si := &structInfo{byName: make(map[string]int)}
	collectFields(si, typ, nil)
	return si
}

func collectFields(si *structInfo, typ reflect.Type, parent []int) {
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get(TagName)
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")

		index := make([]int, len(parent)+1)
		copy(index, parent)
		index[len(parent)] = i

		if f.Anonymous && name == "" && f.Type.Kind() == reflect.Struct {
			collectFields(si, f.Type, index)
			continue
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if _, dup := si.byName[name]; dup {
			continue
		}

		fi := fieldInfo{name: name, index: index}
		for _, opt := range strings.Split(opts, ",") {
			if opt == "omitempty" {
				fi.omitEmpty = true
			}
		}
		si.byName[name] = len(si.fields)
		si.fields = append(si.fields, fi)
	}
}

// ============================================================
// Go -> Value
// ============================================================

func toValue(rv reflect.Value, path string) (*etf.Value, error) {
	switch rv.Type() {
	case valueType:
		v := rv.Interface().(etf.Value)
		return v.Clone(), nil
	case valuePtrType:
		return rv.Interface().(*etf.Value).Clone(), nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return etf.Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return etf.Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return etf.Uint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return etf.Float(rv.Float()), nil
	case reflect.String:
		return etf.String(rv.String()), nil

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return etf.String(string(rv.Bytes())), nil
		}
		return sequenceToValue(rv, path)

	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return etf.String(string(b)), nil
		}
		return sequenceToValue(rv, path)

	case reflect.Map:
		obj := etf.Object()
		iter := rv.MapRange()
		for iter.Next() {
			key, err := mapKeyString(iter.Key(), path)
			if err != nil {
				return nil, err
			}
			member, err := toValue(iter.Value(), joinPath(path, key))
			if err != nil {
				return nil, err
			}
			if err := obj.Put(key, member); err != nil {
				return nil, err
			}
		}
		return obj, nil

	case reflect.Struct:
		si := getStructInfo(rv.Type())
		obj := etf.Object()
		for _, fi := range si.fields {
			member, err := toValue(rv.FieldByIndex(fi.index), joinPath(path, fi.name))
			if err != nil {
				return nil, err
			}
			if fi.omitEmpty && isEmpty(member) {
				continue
			}
			if err := obj.Put(fi.name, member); err != nil {
				return nil, err
			}
		}
		return obj, nil

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return etf.Null(), nil
		}
		return toValue(rv.Elem(), path)
	}

	return nil, fmt.Errorf("bind: unsupported type %s at %s", rv.Type(), path)
}

func sequenceToValue(rv reflect.Value, path string) (*etf.Value, error) {
	arr := etf.Array()
	for i := 0; i < rv.Len(); i++ {
		elem, err := toValue(rv.Index(i), indexPath(path, i))
		if err != nil {
			return nil, err
		}
		if err := arr.Append(elem); err != nil {
			return nil, err
		}
	}
	return arr, nil
}

func mapKeyString(k reflect.Value, path string) (string, error) {
	switch k.Kind() {
	case reflect.String:
		return k.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", fmt.Errorf("bind: unsupported map key type %s at %s", k.Type(), path)
}

// ============================================================
// Value -> Go
// ============================================================

// fromValue stores val into the settable rv. Null resets rv to its
// zero value. Numbers convert between widths when they fit. Signed
// destinations read an INTEGER_EXT Uint in [2^31, 2^32) as a negative
// 32-bit integer, and those of 32 bits or fewer do so for any Uint in
// that range. Strings accept integers (written as decimal) and integers
// accept decimal strings, since snowflake ids travel both ways.
func fromValue(val *etf.Value, rv reflect.Value, path string) error {
	switch rv.Type() {
	case valueType:
		rv.Set(reflect.ValueOf(*val.Clone()))
		return nil
	case valuePtrType:
		rv.Set(reflect.ValueOf(val.Clone()))
		return nil
	}

	if val.IsNull() {
		rv.SetZero()
		return nil
	}

	mismatch := func() error {
		return &TypeError{Path: path, Type: rv.Type(), Got: val.Kind()}
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return fromValue(val, rv.Elem(), path)

	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return mismatch()
		}
		rv.Set(reflect.ValueOf(etf.ToAny(val)))
		return nil

	case reflect.Bool:
		b, err := val.AsBool()
		if err != nil {
			return mismatch()
		}
		rv.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := asInt64(val)
		if !ok {
			return mismatch()
		}
		if u, err := val.AsUint(); err == nil && u > math.MaxInt32 && u <= math.MaxUint32 &&
			(val.WireInt32() || rv.Type().Bits() <= 32) {
			// INTEGER_EXT decodes unsigned; signed destinations take
			// it back as two's complement.
			n = int64(int32(uint32(u)))
		}
		if rv.OverflowInt(n) {
			return &OverflowError{Path: path, Type: rv.Type(), Value: strconv.FormatInt(n, 10)}
		}
		rv.SetInt(n)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, ok := asUint64(val)
		if !ok {
			return mismatch()
		}
		if rv.OverflowUint(n) {
			return &OverflowError{Path: path, Type: rv.Type(), Value: strconv.FormatUint(n, 10)}
		}
		rv.SetUint(n)
		return nil

	case reflect.Float32, reflect.Float64:
		f, ok := asFloat64(val)
		if !ok {
			return mismatch()
		}
		rv.SetFloat(f)
		return nil

	case reflect.String:
		switch val.Kind() {
		case etf.KindString:
			s, _ := val.AsString()
			rv.SetString(s)
		case etf.KindUint:
			u, _ := val.AsUint()
			rv.SetString(strconv.FormatUint(u, 10))
		case etf.KindInt:
			i, _ := val.AsInt()
			rv.SetString(strconv.FormatInt(i, 10))
		default:
			return mismatch()
		}
		return nil

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 && val.Kind() == etf.KindString {
			s, _ := val.AsString()
			rv.SetBytes([]byte(s))
			return nil
		}
		items, err := val.AsArray()
		if err != nil {
			return mismatch()
		}
		out := reflect.MakeSlice(rv.Type(), len(items), len(items))
		for i, item := range items {
			if err := fromValue(item, out.Index(i), indexPath(path, i)); err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil

	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 && val.Kind() == etf.KindString {
			s, _ := val.AsString()
			rv.SetZero()
			reflect.Copy(rv, reflect.ValueOf([]byte(s)))
			return nil
		}
		items, err := val.AsArray()
		if err != nil {
			return mismatch()
		}
		rv.SetZero()
		for i := 0; i < len(items) && i < rv.Len(); i++ {
			if err := fromValue(items[i], rv.Index(i), indexPath(path, i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		obj, err := val.AsObject()
		if err != nil {
			return mismatch()
		}
		if rv.IsNil() {
			rv.Set(reflect.MakeMapWithSize(rv.Type(), len(obj)))
		}
		keyType, elemType := rv.Type().Key(), rv.Type().Elem()
		for k, member := range obj {
			key := reflect.New(keyType).Elem()
			if err := setMapKey(key, k, path); err != nil {
				return err
			}
			elem := reflect.New(elemType).Elem()
			if err := fromValue(member, elem, joinPath(path, k)); err != nil {
				return err
			}
			rv.SetMapIndex(key, elem)
		}
		return nil

	case reflect.Struct:
		obj, err := val.AsObject()
		if err != nil {
			return mismatch()
		}
		si := getStructInfo(rv.Type())
		for name, member := range obj {
			idx, ok := si.byName[name]
			if !ok {
				continue
			}
			if err := fromValue(member, rv.FieldByIndex(si.fields[idx].index), joinPath(path, name)); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("bind: unsupported type %s at %s", rv.Type(), path)
}

func setMapKey(key reflect.Value, s, path string) error {
	switch key.Kind() {
	case reflect.String:
		key.SetString(s)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, key.Type().Bits())
		if err != nil {
			return fmt.Errorf("bind: map key %q at %s: %w", s, path, err)
		}
		key.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, key.Type().Bits())
		if err != nil {
			return fmt.Errorf("bind: map key %q at %s: %w", s, path, err)
		}
		key.SetUint(n)
		return nil
	}
	return fmt.Errorf("bind: unsupported map key type %s at %s", key.Type(), path)
}

func asInt64(v *etf.Value) (int64, bool) {
	switch v.Kind() {
	case etf.KindInt:
		i, _ := v.AsInt()
		return i, true
	case etf.KindUint:
		u, _ := v.AsUint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case etf.KindString:
		s, _ := v.AsString()
		i, err := strconv.ParseInt(s, 10, 64)
		return i, err == nil
	}
	return 0, false
}

func asUint64(v *etf.Value) (uint64, bool) {
	switch v.Kind() {
	case etf.KindUint:
		u, _ := v.AsUint()
		return u, true
	case etf.KindInt:
		i, _ := v.AsInt()
		if i < 0 {
			return 0, false
		}
		return uint64(i), true
	case etf.KindString:
		s, _ := v.AsString()
		u, err := strconv.ParseUint(s, 10, 64)
		return u, err == nil
	}
	return 0, false
}

func asFloat64(v *etf.Value) (float64, bool) {
	switch v.Kind() {
	case etf.KindFloat:
		f, _ := v.AsFloat()
		return f, true
	case etf.KindUint:
		u, _ := v.AsUint()
		return float64(u), true
	case etf.KindInt:
		i, _ := v.AsInt()
		return float64(i), true
	}
	return 0, false
}
