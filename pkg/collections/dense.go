package collections

// Numeric is the set of primitive element types a HugeArray may hold. spec.md §3.2:
// "T ∈ {i8,i16,i32,i64,f32,f64,bool,u8}". This union constraint lists exactly those
// types, and one generic engine (NewHugeArray[T]) serves all of them instead of a
// code-gen macro (Go has no macros); adding a new element type means adding one term
// to this union.
type Numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64 | ~bool | ~uint8
}

// HugeArray is a logically contiguous sequence of up to 2^40+ elements of type T,
// internally either a single flat slice (len <= PageThreshold) or a sequence of
// fixed-size pages (spec.md §3.2).
type HugeArray[T Numeric] struct {
	length int64
	single []T   // used when len(pages) == 0
	pages  [][]T // used when length > PageThreshold
}

// NewHugeArray allocates a HugeArray of the given length, zero-initialized.
func NewHugeArray[T Numeric](length int64) *HugeArray[T] {
	a := &HugeArray[T]{length: length}
	if length <= PageThreshold {
		a.single = make([]T, length)
		return a
	}
	n := pageCount(length)
	a.pages = make([][]T, n)
	for p := 0; p < n; p++ {
		sz := PageSize
		if p == n-1 {
			last := int(length & PageMask)
			if last != 0 {
				sz = last
			}
		}
		a.pages[p] = make([]T, sz)
	}
	return a
}

// FromSlice wraps an existing slice as a single-page dense HugeArray (spec.md §4.1
// "from_vec(Vec<T>)").
func FromSlice[T Numeric](values []T) *HugeArray[T] {
	return &HugeArray[T]{length: int64(len(values)), single: values}
}

func (a *HugeArray[T]) Len() int64 { return a.length }

func (a *HugeArray[T]) paged() bool { return a.pages != nil }

// Get returns the element at i. Callers that need a checked variant should use GetChecked.
func (a *HugeArray[T]) Get(i int64) T {
	if !a.paged() {
		return a.single[i]
	}
	p, o := pageIndex(i)
	return a.pages[p][o]
}

// GetChecked returns an error instead of panicking when i is out of range
// (spec.md §4.1 "no unchecked unwrap in the public API").
func (a *HugeArray[T]) GetChecked(i int64) (T, error) {
	var zero T
	if err := checkIndex(i, a.length); err != nil {
		return zero, err
	}
	return a.Get(i), nil
}

// Set stores v at index i.
func (a *HugeArray[T]) Set(i int64, v T) {
	if !a.paged() {
		a.single[i] = v
		return
	}
	p, o := pageIndex(i)
	a.pages[p][o] = v
}

func (a *HugeArray[T]) SetChecked(i int64, v T) error {
	if err := checkIndex(i, a.length); err != nil {
		return err
	}
	a.Set(i, v)
	return nil
}

// Fill sets every element to v.
func (a *HugeArray[T]) Fill(v T) {
	if !a.paged() {
		for i := range a.single {
			a.single[i] = v
		}
		return
	}
	for _, page := range a.pages {
		for i := range page {
			page[i] = v
		}
	}
}

// SetAll assigns every element from a generator function of its index.
func (a *HugeArray[T]) SetAll(gen func(i int64) T) {
	if !a.paged() {
		for i := range a.single {
			a.single[i] = gen(int64(i))
		}
		return
	}
	idx := int64(0)
	for _, page := range a.pages {
		for i := range page {
			page[i] = gen(idx)
			idx++
		}
	}
}

// CopyTo bulk-copies the first n elements into dst, using page-contiguous slice copies.
func (a *HugeArray[T]) CopyTo(dst *HugeArray[T], n int64) {
	var copied int64
	for copied < n {
		p, o := pageIndex(copied)
		var srcPage []T
		if a.paged() {
			srcPage = a.pages[p][o:]
		} else {
			srcPage = a.single[copied:]
		}
		remaining := n - copied
		if int64(len(srcPage)) > remaining {
			srcPage = srcPage[:remaining]
		}
		for k, v := range srcPage {
			dst.Set(copied+int64(k), v)
		}
		copied += int64(len(srcPage))
		if len(srcPage) == 0 {
			break // defensive: avoid infinite loop on malformed pages
		}
	}
}
