package relptr

import (
	"unsafe"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/pkg/errors"
	"golang.org/x/exp/slog"
)

// ifaceHeader mirrors the runtime representation of an interface value: a descriptor word
// (the itab, carrying the dynamic type's size, alignment, and method table) followed by a
// data word addressing the boxed value.
type ifaceHeader struct {
	tab  unsafe.Pointer
	data unsafe.Pointer
}

// IfacePointer is a relative pointer to a dynamically-typed value accessed through the
// interface type T. An interface value cannot be stored as a single relative offset, so
// IfacePointer decomposes it: the data word is compacted into a relative pointer, keeping
// the reference relocation-tolerant, while the descriptor word is address-independent and
// is stored verbatim. The zero value is a null IfacePointer.
//
// T must itself be an interface type. Instantiating IfacePointer with a concrete type is a
// precondition violation; debug builds (build tag debug_rel_ptr) panic when Set or
// GetUnchecked run against a non-interface T.
//
// As with Pointer, the dynamic value must be boxed inside the same aggregate as the
// IfacePointer and only ever relocated together with it.
type IfacePointer[T any, I Offset] struct {
	addr Pointer[byte, I]
	tab  unsafe.Pointer
}

// NullIface returns a null IfacePointer. It is equivalent to the zero value.
func NullIface[T any, I Offset]() IfacePointer[T, I] {
	return IfacePointer[T, I]{}
}

// IsNull returns true when no target has been set.
func (p *IfacePointer[T, I]) IsNull() bool {
	return p.addr.IsNull()
}

// Set decomposes the interface value val and points this IfacePointer at the value it
// boxes. On success the descriptor word is retained alongside the stored offset. When the
// byte distance to the boxed value does not fit I, Set returns OffsetOutOfRangeError and
// the IfacePointer is left unchanged, descriptor included.
//
// val must hold a value. Passing the nil interface is a precondition violation: a nil
// reference has no address to take a distance to.
func (p *IfacePointer[T, I]) Set(val T) error {
	debugAssertIfaceKind[T]()

	header := (*ifaceHeader)(unsafe.Pointer(&val))
	err := p.addr.Set((*byte)(header.data))
	if err != nil {
		return err
	}

	p.tab = header.tab
	DebugValidate(p)
	return nil
}

// SetUnchecked decomposes val and stores its offset without range-checking the distance,
// under the same preconditions as Pointer.SetUnchecked.
func (p *IfacePointer[T, I]) SetUnchecked(val T) {
	debugAssertIfaceKind[T]()

	header := (*ifaceHeader)(unsafe.Pointer(&val))
	p.addr.SetUnchecked((*byte)(header.data))
	p.tab = header.tab
	DebugValidate(p)
}

// Get reassembles the currently resolved address and the stored descriptor into a usable
// interface value. It returns the zero value of T and false when the IfacePointer is null;
// the descriptor is not consulted in that case.
func (p *IfacePointer[T, I]) Get() (T, bool) {
	if p.addr.IsNull() {
		var empty T
		return empty, false
	}

	return p.GetUnchecked(), true
}

// GetUnchecked reassembles the interface value without the null check. It is well-defined
// only when a prior Set succeeded and the relocate-together discipline has held since. On
// a null IfacePointer the stored descriptor has never been populated and the result is
// never a valid interface value. Debug builds (build tag debug_rel_ptr) panic in that case
// instead.
func (p *IfacePointer[T, I]) GetUnchecked() T {
	debugAssertIfaceKind[T]()
	debugAssertResolvable(int64(p.addr.offset))

	var val T
	header := (*ifaceHeader)(unsafe.Pointer(&val))
	header.tab = p.tab
	header.data = unsafe.Pointer(p.addr.GetUnchecked())
	return val
}

// Descriptor returns the stored descriptor word. Reading the descriptor before a
// successful Set is a precondition violation: there is deliberately no default descriptor
// value. Debug builds (build tag debug_rel_ptr) panic when the IfacePointer is null.
func (p *IfacePointer[T, I]) Descriptor() unsafe.Pointer {
	debugAssertResolvable(int64(p.addr.offset))
	return p.tab
}

// Validate performs internal consistency checks on this IfacePointer. A correctly used
// IfacePointer stores its offset and descriptor atomically with respect to Set, so this
// should never return an error, but it may assist in diagnosing aggregates whose pointer
// storage has been overwritten out-of-band.
func (p *IfacePointer[T, I]) Validate() error {
	if p.addr.IsNull() && p.tab != nil {
		return errors.New("descriptor is present on a null pointer")
	}
	if !p.addr.IsNull() && p.tab == nil {
		return errors.New("offset is set but no descriptor is present")
	}

	return nil
}

// LogValue implements slog.LogValuer, reporting the stored offset, descriptor, and null
// state.
func (p *IfacePointer[T, I]) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("Offset", int64(p.addr.offset)),
		slog.Uint64("Descriptor", uint64(uintptr(p.tab))),
		slog.Bool("Null", p.IsNull()),
	)
}

// PointerJsonData populates a json object with diagnostic information about this
// IfacePointer.
func (p *IfacePointer[T, I]) PointerJsonData(json jwriter.ObjectState) {
	p.addr.PointerJsonData(json)
	json.Name("HasDescriptor").Bool(p.tab != nil)
}
