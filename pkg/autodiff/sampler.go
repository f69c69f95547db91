package autodiff

import (
	"math"
	"math/rand"
)

// UniformSampler yields k items uniformly without replacement from a stream of up to N
// items, via reservoir sampling seeded by a 64-bit seed (spec.md §4.6).
type UniformSampler struct {
	k   int
	rng *rand.Rand
}

func NewUniformSampler(k int, seed int64) *UniformSampler {
	return &UniformSampler{k: k, rng: rand.New(rand.NewSource(seed))}
}

// Sample drains items and returns up to k of them, each equally likely to survive
// (Algorithm R).
func (s *UniformSampler) Sample(items []int64) []int64 {
	reservoir := make([]int64, 0, s.k)
	for i, item := range items {
		if i < s.k {
			reservoir = append(reservoir, item)
			continue
		}
		j := s.rng.Intn(i + 1)
		if j < s.k {
			reservoir[j] = item
		}
	}
	return reservoir
}

// WeightedSampler is the weighted analogue of UniformSampler, using weighted reservoir
// sampling (A-Res): each item gets a key `u^(1/weight)` and the k largest keys survive.
type WeightedSampler struct {
	k   int
	rng *rand.Rand
}

func NewWeightedSampler(k int, seed int64) *WeightedSampler {
	return &WeightedSampler{k: k, rng: rand.New(rand.NewSource(seed))}
}

type weightedCandidate struct {
	item int64
	key  float64
}

func (s *WeightedSampler) Sample(items []int64, weight func(int64) float64) []int64 {
	if len(items) <= s.k {
		out := make([]int64, len(items))
		copy(out, items)
		return out
	}
	candidates := make([]weightedCandidate, len(items))
	for i, item := range items {
		w := weight(item)
		if w <= 0 {
			w = 1e-12 // guarantee a finite key even for a zero-weight edge
		}
		u := s.rng.Float64()
		candidates[i] = weightedCandidate{item: item, key: math.Pow(u, 1.0/w)}
	}
	// partial selection sort for the top-k keys; k is small (batch fan-out), so O(n*k) is fine
	out := make([]int64, 0, s.k)
	used := make([]bool, len(candidates))
	for sel := 0; sel < s.k; sel++ {
		best := -1
		for i, c := range candidates {
			if used[i] {
				continue
			}
			if best == -1 || c.key > candidates[best].key {
				best = i
			}
		}
		used[best] = true
		out = append(out, candidates[best].item)
	}
	return out
}
