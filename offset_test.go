package relptr_test

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/relptr"
)

func TestOffsetRange(t *testing.T) {
	min8, max8 := relptr.OffsetRange[int8]()
	require.Equal(t, int64(math.MinInt8), min8)
	require.Equal(t, int64(math.MaxInt8), max8)

	min16, max16 := relptr.OffsetRange[int16]()
	require.Equal(t, int64(math.MinInt16), min16)
	require.Equal(t, int64(math.MaxInt16), max16)

	min32, max32 := relptr.OffsetRange[int32]()
	require.Equal(t, int64(math.MinInt32), min32)
	require.Equal(t, int64(math.MaxInt32), max32)

	min64, max64 := relptr.OffsetRange[int64]()
	require.Equal(t, int64(math.MinInt64), min64)
	require.Equal(t, int64(math.MaxInt64), max64)
}

func TestDeltaBetween(t *testing.T) {
	var buf [512]byte
	base := unsafe.Pointer(&buf[256])

	tests := []struct {
		name     string
		distance int
		err      error
	}{
		{"forward", 100, nil},
		{"backward", -100, nil},
		{"max", 127, nil},
		{"min", -128, nil},
		{"past max", 128, relptr.OffsetOutOfRangeError},
		{"past min", -129, relptr.OffsetOutOfRangeError},
		{"far forward", 255, relptr.OffsetOutOfRangeError},
		{"far backward", -256, relptr.OffsetOutOfRangeError},
		{"self", 0, relptr.SelfTargetError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			target := unsafe.Pointer(&buf[256+test.distance])

			delta, err := relptr.DeltaBetween[int8](target, base)
			if test.err != nil {
				require.ErrorIs(t, err, test.err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, int8(test.distance), delta)
			require.Equal(t, target, relptr.ApplyDelta(base, delta))
		})
	}
}

func TestDeltaBetweenWideOffsets(t *testing.T) {
	var buf [512]byte
	base := unsafe.Pointer(&buf[0])
	target := unsafe.Pointer(&buf[511])

	delta16, err := relptr.DeltaBetween[int16](target, base)
	require.NoError(t, err)
	require.Equal(t, int16(511), delta16)
	require.Equal(t, target, relptr.ApplyDelta(base, delta16))

	delta32, err := relptr.DeltaBetween[int32](base, target)
	require.NoError(t, err)
	require.Equal(t, int32(-511), delta32)
	require.Equal(t, base, relptr.ApplyDelta(target, delta32))

	delta64, err := relptr.DeltaBetween[int64](target, base)
	require.NoError(t, err)
	require.Equal(t, int64(511), delta64)

	deltaNative, err := relptr.DeltaBetween[int](target, base)
	require.NoError(t, err)
	require.Equal(t, 511, deltaNative)
}

func TestIsNullOffset(t *testing.T) {
	require.True(t, relptr.IsNullOffset(int8(0)))
	require.True(t, relptr.IsNullOffset(int64(0)))
	require.False(t, relptr.IsNullOffset(int8(-1)))
	require.False(t, relptr.IsNullOffset(int16(32767)))
}
