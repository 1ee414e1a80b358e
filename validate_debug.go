//go:build debug_rel_ptr

package relptr

import (
	"fmt"
	"reflect"
	"unsafe"
)

// debugAssertResolvable panics when an unchecked accessor runs against a null relative
// pointer. This check no-ops unless the debug_rel_ptr build tag is present.
func debugAssertResolvable(offset int64) {
	if offset == 0 {
		panic("relptr: unchecked access through a null relative pointer")
	}
}

// debugAssertInRange verifies that the distance an unchecked setter is about to store
// actually fits the offset type, and panics if it does not. This check no-ops unless the
// debug_rel_ptr build tag is present.
func debugAssertInRange[I Offset](target, base unsafe.Pointer) {
	_, err := DeltaBetween[I](target, base)
	if err != nil {
		panic(err)
	}
}

// debugAssertIfaceKind verifies that the type parameter handed to IfacePointer is an
// interface type, and panics if it is not. This check no-ops unless the debug_rel_ptr
// build tag is present; reflection is kept out of release builds entirely.
func debugAssertIfaceKind[T any]() {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("relptr: IfacePointer requires an interface type parameter, got %s", t))
	}
}

// DebugValidate will call Validate on the provided object and panics if any errors are
// returned. This method no-ops unless the debug_rel_ptr build tag is present
func DebugValidate(validatable Validatable) {
	err := validatable.Validate()
	if err != nil {
		panic(err)
	}
}
