package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHugeArrayLinearIteration(t *testing.T) {
	const n = int64(5000)
	arr := NewHugeArray[int64](n)
	arr.SetAll(func(i int64) int64 { return i * 3 })

	var got []int64
	arr.Each(0, n, func(i int64, v int64) {
		got = append(got, v)
	})

	require.Len(t, got, int(n))
	for i := int64(0); i < n; i++ {
		assert.Equal(t, arr.Get(i), got[i])
	}
}

func TestHugeArrayOutOfRange(t *testing.T) {
	arr := NewHugeArray[int64](10)
	_, err := arr.GetChecked(10)
	require.Error(t, err)
	_, err = arr.GetChecked(-1)
	require.Error(t, err)
}

// n stays far below PageThreshold, so the array is a single flat slice; this checks
// indices around PageSize multiples, not the paged layout.
func TestHugeArrayPageSizeOffsets(t *testing.T) {
	n := int64(PageSize*2 + 7)
	arr := NewHugeArray[int64](n)
	arr.SetAll(func(i int64) int64 { return i })
	for _, i := range []int64{0, PageSize - 1, PageSize, PageSize + 1, n - 1} {
		assert.Equal(t, i, arr.Get(i))
	}
}

func TestBinarySearch(t *testing.T) {
	arr := NewHugeArray[int64](10)
	arr.SetAll(func(i int64) int64 { return i * 2 })

	idx, found := BinarySearch(arr, int64(8))
	require.True(t, found)
	assert.Equal(t, int64(4), idx)

	_, found = BinarySearch(arr, int64(9))
	assert.False(t, found)
}

func TestSparseArrayDefault(t *testing.T) {
	sa := NewSparseArray[int64](64, -1)
	assert.Equal(t, int64(-1), sa.Get(1000))
	sa.Set(1000, 42)
	assert.Equal(t, int64(42), sa.Get(1000))
	assert.Equal(t, int64(-1), sa.Get(1001))
	assert.Equal(t, int64(1000), sa.MaxTouched())
}

func TestSparseArrayFreezeRoundTrip(t *testing.T) {
	sa := NewSparseArray[float64](16, 0)
	for i := int64(0); i < 16; i++ {
		sa.Set(i, float64(i)*1.5)
	}
	sa.Freeze(0)
	for i := int64(0); i < 16; i++ {
		assert.InDelta(t, float64(i)*1.5, sa.Get(i), 1e-12)
	}
}

func TestHugeAtomicBitSet(t *testing.T) {
	bs := NewHugeAtomicBitSet(130)
	assert.False(t, bs.AllSet())
	for i := int64(0); i < 130; i++ {
		bs.Set(i)
	}
	assert.True(t, bs.AllSet())
	assert.Equal(t, int64(130), bs.Cardinality())
	bs.Clear(5)
	assert.False(t, bs.Get(5))
	assert.False(t, bs.AllSet())
}

func TestAtomicDoubleArrayAdd(t *testing.T) {
	a := NewAtomicDoubleArray(4)
	a.Store(0, 1.5)
	got := a.Add(0, 2.5)
	assert.InDelta(t, 4.0, got, 1e-12)
	assert.InDelta(t, 4.0, a.Load(0), 1e-12)
}
