package collections

import (
	"sync"

	"github.com/golang/snappy"
)

// SparseArray allocates pages on demand and returns a configured default for any index
// whose page was never written (spec.md §3.2 "Sparse"). It is safe for concurrent use:
// one array-wide mutex is taken by every Get and Set, so reads are never lock-free and
// writers to different pages still serialize. Two usage modes map onto the same struct: a mutable "list" (repeated Set calls)
// and an append-once "array" (built once, then read-only) — the spec leaves the
// distinction to the caller's discipline, not the type.
type SparseArray[T Numeric] struct {
	defaultValue T
	pageSize     int64

	mu    sync.Mutex // guards the page directory and every page read and write
	pages map[int64][]T

	// coldPages holds snappy-compressed encodings of pages a caller has passed to
	// Freeze, trading CPU for RSS on very sparse, very large arrays. This is an
	// in-memory space/time tradeoff only — never a durable format (spec.md §1
	// Non-goals forbid on-disk persistence, which this is not).
	coldPages map[int64][]byte

	maxTouched int64 // running maximum index touched, for the "list" conceptual length
}

// NewSparseArray creates a sparse array with the given per-page size (elements) and
// default value returned for unallocated pages.
func NewSparseArray[T Numeric](pageSize int64, defaultValue T) *SparseArray[T] {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	return &SparseArray[T]{
		defaultValue: defaultValue,
		pageSize:     pageSize,
		pages:        make(map[int64][]T),
		coldPages:    make(map[int64][]byte),
		maxTouched:   -1,
	}
}

func (s *SparseArray[T]) pageOf(i int64) (page int64, offset int64) {
	return i / s.pageSize, i % s.pageSize
}

// Get returns the value at i, or the configured default if i's page was never written
// (spec.md §8 invariant 4).
func (s *SparseArray[T]) Get(i int64) T {
	page, offset := s.pageOf(i)
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pages[page]; ok {
		return p[offset]
	}
	if blob, ok := s.coldPages[page]; ok {
		p := s.decode(blob)
		s.pages[page] = p
		delete(s.coldPages, page)
		return p[offset]
	}
	return s.defaultValue
}

// Set writes v at i, allocating i's page on first write.
func (s *SparseArray[T]) Set(i int64, v T) {
	page, offset := s.pageOf(i)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[page]
	if !ok {
		if blob, ok := s.coldPages[page]; ok {
			p = s.decode(blob)
			delete(s.coldPages, page)
		} else {
			p = make([]T, s.pageSize)
			for k := range p {
				p[k] = s.defaultValue
			}
		}
		s.pages[page] = p
	}
	p[offset] = v
	if i > s.maxTouched {
		s.maxTouched = i
	}
}

// MaxTouched returns the highest index ever written, or -1 if none. This is the
// "conceptual length" of a sparse list (spec.md §3.2).
func (s *SparseArray[T]) MaxTouched() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxTouched
}

// Freeze compresses the single hot page with index page into its cold encoding,
// releasing the uncompressed backing array; it does nothing if that page is not hot.
// The next Get or Set on the page decodes it back. Callers that know a page is done
// being written can call this to cut steady-state memory for wide, mostly-static
// sparse columns.
func (s *SparseArray[T]) Freeze(page int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[page]
	if !ok {
		return
	}
	s.coldPages[page] = s.encode(p)
	delete(s.pages, page)
}

func (s *SparseArray[T]) encode(p []T) []byte {
	raw := toBytes(p)
	return snappy.Encode(nil, raw)
}

func (s *SparseArray[T]) decode(blob []byte) []T {
	raw, err := snappy.Decode(nil, blob)
	if err != nil {
		// Cold page corruption is unreachable in practice (we wrote it ourselves);
		// fall back to a fresh default page rather than propagating a panic.
		p := make([]T, s.pageSize)
		for k := range p {
			p[k] = s.defaultValue
		}
		return p
	}
	return fromBytes[T](raw, int(s.pageSize))
}
