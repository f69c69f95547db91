package autodiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformSamplerRespectsK(t *testing.T) {
	items := []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	s := NewUniformSampler(3, 42)
	out := s.Sample(items)
	assert.Len(t, out, 3)

	seen := map[int64]bool{}
	for _, v := range out {
		assert.False(t, seen[v], "reservoir sampling must not repeat an item")
		seen[v] = true
		assert.Contains(t, items, v)
	}
}

func TestUniformSamplerFewerItemsThanK(t *testing.T) {
	items := []int64{0, 1}
	s := NewUniformSampler(5, 7)
	out := s.Sample(items)
	assert.Len(t, out, 2)
}

func TestUniformSamplerDeterministicForSameSeed(t *testing.T) {
	items := []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	a := NewUniformSampler(4, 99).Sample(items)
	b := NewUniformSampler(4, 99).Sample(items)
	assert.Equal(t, a, b)
}

func TestWeightedSamplerRespectsK(t *testing.T) {
	items := []int64{0, 1, 2, 3, 4}
	weight := func(id int64) float64 { return float64(id) + 1 }
	s := NewWeightedSampler(2, 11)
	out := s.Sample(items, weight)
	assert.Len(t, out, 2)
	seen := map[int64]bool{}
	for _, v := range out {
		assert.False(t, seen[v])
		seen[v] = true
	}
}

func TestWeightedSamplerFewerItemsThanK(t *testing.T) {
	items := []int64{10, 20}
	s := NewWeightedSampler(5, 1)
	out := s.Sample(items, func(int64) float64 { return 1 })
	assert.Equal(t, items, out)
}
