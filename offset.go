package relptr

import (
	"math"
	"unsafe"

	cerrors "github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// Offset is satisfied by any signed integer type used to store a relative pointer's byte
// distance. The width of the chosen type bounds the pointer's reach: an int8 offset can
// only target addresses within roughly 127 bytes of the pointer's own storage.
type Offset interface {
	constraints.Signed
}

// OffsetRange returns the smallest and largest byte distance representable by the offset
// type I.
func OffsetRange[I Offset]() (min, max int64) {
	bits := unsafe.Sizeof(I(0)) * 8
	max = math.MaxInt64 >> (64 - bits)
	min = -max - 1
	return min, max
}

// IsNullOffset returns true when the provided offset is the null sentinel. Zero is the
// sentinel for every offset type: a successful DeltaBetween never produces it, because a
// zero-distance self-reference is rejected as a valid target.
func IsNullOffset[I Offset](offset I) bool {
	return offset == 0
}

// DeltaBetween computes the signed byte distance from base to target as an offset of type
// I. It returns SelfTargetError when the two addresses are equal and OffsetOutOfRangeError
// when the true distance does not fit I. The distance is never silently truncated.
func DeltaBetween[I Offset](target, base unsafe.Pointer) (I, error) {
	delta := int64(int(uintptr(target) - uintptr(base)))
	if delta == 0 {
		return 0, cerrors.Wrapf(SelfTargetError, "target address is 0x%x", uintptr(target))
	}

	min, max := OffsetRange[I]()
	if delta < min || delta > max {
		return 0, cerrors.Wrapf(OffsetOutOfRangeError, "distance %d is outside [%d, %d]", delta, min, max)
	}

	return I(delta), nil
}

// ApplyDelta resolves a stored offset against a base address, producing the target address.
func ApplyDelta[I Offset](base unsafe.Pointer, offset I) unsafe.Pointer {
	return unsafe.Add(base, int(offset))
}
