package concurrency

import (
	"math"
	"sync/atomic"
)

// AtomicDoubleAdder is a CAS-based lock-free f64 accumulator (spec.md §4.2).
type AtomicDoubleAdder struct {
	bits atomic.Uint64
}

func (a *AtomicDoubleAdder) Add(delta float64) float64 {
	for {
		old := a.bits.Load()
		oldF := math.Float64frombits(old)
		newF := oldF + delta
		if a.bits.CompareAndSwap(old, math.Float64bits(newF)) {
			return newF
		}
	}
}

func (a *AtomicDoubleAdder) Get() float64 {
	return math.Float64frombits(a.bits.Load())
}

// AtomicMax is a CAS-based lock-free i64 max accumulator. spec.md §8 invariant 5: the
// final Get() equals max(values) regardless of interleaving.
type AtomicMax struct {
	value atomic.Int64
}

// NewAtomicMax creates an AtomicMax seeded with the minimum possible int64, so the first
// Update always wins.
func NewAtomicMax() *AtomicMax {
	m := &AtomicMax{}
	m.value.Store(math.MinInt64)
	return m
}

func (m *AtomicMax) Update(v int64) {
	for {
		old := m.value.Load()
		if v <= old {
			return
		}
		if m.value.CompareAndSwap(old, v) {
			return
		}
	}
}

func (m *AtomicMax) Get() int64 { return m.value.Load() }
