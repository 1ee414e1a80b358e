// Package relptr implements relative pointers: references stored as a signed byte offset
// from their own storage address rather than as an absolute address.
//
// Because the encoding is relative, moving a relative pointer and its target together by
// the same displacement never invalidates the reference. That makes it possible to build
// aggregates that point into themselves and still copy them, return them by value, or move
// them to the heap freely. The usual construction sequence is: build the aggregate with a
// null pointer field, call Set to link the pointer to a sibling field, and never touch the
// pointer's storage again. After that, the target's address is a fixed function of the
// aggregate's own address, and the unchecked accessors become safe to use.
//
// The package provides no synchronization and no relocation tracking. Keeping pointer and
// pointee at a fixed relative distance is a structural obligation of the consumer, not
// something this package can enforce or verify at runtime.
package relptr

import (
	"unsafe"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"golang.org/x/exp/slog"
)

// Pointer is a relative pointer to a value of type T, storing its target as a byte offset
// of type I from the Pointer's own address. The zero value is a null pointer.
//
// Pointer does not own its target. It is intended to live in the same aggregate as the
// value it references, so that any relocation moves both by the same displacement. Nothing
// prevents a consumer from pointing it at unrelated memory, but such a pointer is
// invalidated by the first relocation of either side.
//
// Resolving an address through a Pointer reads the stored offset, so the consumer must
// ensure the Pointer is not concurrently mutated during any accessor call.
type Pointer[T any, I Offset] struct {
	offset I
}

// Null returns a null relative pointer. It is equivalent to the zero value.
func Null[T any, I Offset]() Pointer[T, I] {
	return Pointer[T, I]{}
}

// IsNull returns true when no target has been set.
func (p *Pointer[T, I]) IsNull() bool {
	return IsNullOffset(p.offset)
}

// Offset returns the stored offset. A null pointer reports the sentinel value 0.
func (p *Pointer[T, I]) Offset() I {
	return p.offset
}

// Set points this Pointer at target by storing the signed byte distance from the Pointer's
// own address to target's address. Only the target's address is consulted; its value is
// never read or written.
//
// When the distance does not fit I, Set returns OffsetOutOfRangeError and the previously
// stored offset is left unchanged. Retry with a wider offset type or move the target
// closer. Pointing a Pointer at its own storage returns SelfTargetError, since the zero
// offset is reserved as the null sentinel.
func (p *Pointer[T, I]) Set(target *T) error {
	delta, err := DeltaBetween[I](unsafe.Pointer(target), unsafe.Pointer(p))
	if err != nil {
		return err
	}

	p.offset = delta
	return nil
}

// SetUnchecked points this Pointer at target without range-checking the distance. The
// consumer must guarantee the distance fits I and is not zero; a distance outside that
// domain stores a corrupt offset. Debug builds (build tag debug_rel_ptr) verify the
// precondition and panic on violation.
func (p *Pointer[T, I]) SetUnchecked(target *T) {
	debugAssertInRange[I](unsafe.Pointer(target), unsafe.Pointer(p))
	p.offset = I(int(uintptr(unsafe.Pointer(target)) - uintptr(unsafe.Pointer(p))))
}

// Get resolves the current target address and returns it as a typed reference, or nil when
// the Pointer is null. The consumer must independently guarantee the target is live and
// actually holds a T.
func (p *Pointer[T, I]) Get() *T {
	if p.IsNull() {
		return nil
	}

	return p.GetUnchecked()
}

// GetUnchecked resolves the current target address without the null check. It is
// well-defined only when a prior Set succeeded and pointer and target have only been
// relocated together since. Calling it on a null Pointer resolves to the Pointer's own
// address reinterpreted as a *T, which is never valid. Debug builds (build tag
// debug_rel_ptr) panic in that case instead.
func (p *Pointer[T, I]) GetUnchecked() *T {
	debugAssertResolvable(int64(p.offset))
	return (*T)(ApplyDelta(unsafe.Pointer(p), p.offset))
}

// UnsafePointer returns the resolved target address as an untyped pointer, or nil when the
// Pointer is null.
func (p *Pointer[T, I]) UnsafePointer() unsafe.Pointer {
	if p.IsNull() {
		return nil
	}

	return ApplyDelta(unsafe.Pointer(p), p.offset)
}

// LogValue implements slog.LogValuer, reporting the stored offset and null state.
func (p *Pointer[T, I]) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("Offset", int64(p.offset)),
		slog.Bool("Null", p.IsNull()),
	)
}

// PointerJsonData populates a json object with diagnostic information about this Pointer.
func (p *Pointer[T, I]) PointerJsonData(json jwriter.ObjectState) {
	min, max := OffsetRange[I]()
	json.Name("Offset").Int(int(p.offset))
	json.Name("OffsetMin").Int(int(min))
	json.Name("OffsetMax").Int(int(max))
	json.Name("Null").Bool(p.IsNull())
}
