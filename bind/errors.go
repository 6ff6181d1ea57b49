package bind

import (
	"fmt"
	"reflect"

	"github.com/Neumenon/etfer/etf"
)

// TypeError is returned when a decoded value cannot be stored in the
// Go value bound to it.
type TypeError struct {
	Path string       // dotted member path, empty for the top-level term
	Type reflect.Type // destination type
	Got  etf.Kind
}

func (e *TypeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("bind: cannot decode %s into %s", e.Got, e.Type)
	}
	return fmt.Sprintf("bind: cannot decode %s into %s at %s", e.Got, e.Type, e.Path)
}

// OverflowError is returned when a number does not fit its destination.
type OverflowError struct {
	Path  string
	Type  reflect.Type
	Value string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("bind: %s overflows %s at %s", e.Value, e.Type, e.Path)
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}
