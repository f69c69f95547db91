package concurrency

import (
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangePartitionCompleteness(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("partitions cover [0,total) disjointly", prop.ForAll(
		func(total int64, n int) bool {
			parts := RangePartition(total, n)
			covered := make([]bool, total)
			for _, p := range parts {
				for i := p.Start; i < p.End(); i++ {
					if covered[i] {
						return false // overlap
					}
					covered[i] = true
				}
			}
			for _, c := range covered {
				if !c {
					return false // gap
				}
			}
			return true
		},
		gen.Int64Range(0, 5000),
		gen.IntRange(1, 32),
	))

	properties.TestingRun(t)
}

func TestDegreePartitionCoversRange(t *testing.T) {
	const total = int64(500)
	degree := func(i int64) int64 { return (i % 7) + 1 }
	parts := DegreePartition(total, 8, degree)

	var covered int64
	var prevEnd int64
	for _, p := range parts {
		require.Equal(t, prevEnd, p.Start, "partitions must be contiguous")
		covered += p.Length
		prevEnd = p.End()
	}
	assert.Equal(t, total, covered)
	assert.Equal(t, total, prevEnd)
}

func TestAtomicMaxMonotonicUnderConcurrency(t *testing.T) {
	m := NewAtomicMax()
	var wg sync.WaitGroup
	values := []int64{4, 19, 2, 99, 7, 50, -5, 100, 1}
	for _, v := range values {
		v := v
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Update(v)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(100), m.Get())
}

func TestTerminationFlag(t *testing.T) {
	tf := NewTerminationFlag()
	require.NoError(t, tf.Check("test"))
	tf.Cancel()
	require.True(t, tf.IsCancelled())
	err := tf.Check("test")
	require.Error(t, err)
}
