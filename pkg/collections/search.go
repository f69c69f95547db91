package collections

// Ordered restricts BinarySearch to the numeric element types that have a total order
// (excludes bool).
type Ordered interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64 | ~uint8
}

// BinarySearch searches a sorted HugeArray for v, returning (index, true) on an exact
// match or (insertionPoint, false) otherwise (spec.md §4.1 "binary_search(v) -> Result<i,
// i>").
func BinarySearch[T Ordered](a *HugeArray[T], v T) (int64, bool) {
	lo, hi := int64(0), a.Len()
	for lo < hi {
		mid := lo + (hi-lo)/2
		mv := a.Get(mid)
		switch {
		case mv == v:
			return mid, true
		case mv < v:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return lo, false
}
