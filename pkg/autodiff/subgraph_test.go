package autodiff

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deterministicGraph builds a 100-node directed graph with edge probability p from a
// fixed seed, returning an adjacency lookup and an edge-existence check.
func deterministicGraph(nodeCount int, p float64, seed int64) (adjacency map[int64][]int64, exists func(s, t int64) bool) {
	rng := rand.New(rand.NewSource(seed))
	adjacency = make(map[int64][]int64, nodeCount)
	edgeSet := map[[2]int64]bool{}
	for s := int64(0); s < int64(nodeCount); s++ {
		for t := int64(0); t < int64(nodeCount); t++ {
			if s == t {
				continue
			}
			if rng.Float64() < p {
				adjacency[s] = append(adjacency[s], t)
				edgeSet[[2]int64{s, t}] = true
			}
		}
	}
	exists = func(s, t int64) bool { return edgeSet[[2]int64{s, t}] }
	return adjacency, exists
}

// TestBuildSubGraphS6 reproduces the S6 scenario: node_count=100, edge probability 0.1,
// fixed seed, NeighborhoodFunction samples up to k=5 neighbors uniformly (same seed).
func TestBuildSubGraphS6(t *testing.T) {
	adjacency, edgeExists := deterministicGraph(100, 0.1, 1234)
	neighborsOf := func(node int64) []int64 { return adjacency[node] }
	nf := NewSampledNeighborhood(neighborsOf, 5, 1234)

	batch := []int64{0, 1, 2, 3, 4}
	sg := BuildSubGraph(batch, nf, UNWEIGHTED)

	assert.Equal(t, 5, len(batch))
	assert.GreaterOrEqual(t, sg.IDs.Size(), 5)

	for local := 0; local < len(sg.Neighbors); local++ {
		orig := sg.IDs.ToOriginal(int64(local))
		for _, edge := range sg.Neighbors[local] {
			originalTarget := sg.IDs.ToOriginal(edge.Target)
			require.True(t, edgeExists(orig, originalTarget),
				"local edge (%d,%d) must remap to an existing original edge (%d,%d)",
				local, edge.Target, orig, originalTarget)
			assert.Equal(t, 1.0, edge.Weight)
		}
	}
}

func TestLocalIdMapAssignsDenseFirstSeenIds(t *testing.T) {
	m := NewLocalIdMap()
	assert.Equal(t, int64(0), m.ToLocal(42))
	assert.Equal(t, int64(1), m.ToLocal(7))
	assert.Equal(t, int64(0), m.ToLocal(42)) // repeat lookup returns the same local id
	assert.Equal(t, int64(42), m.ToOriginal(0))
	assert.Equal(t, int64(7), m.ToOriginal(1))
	assert.Equal(t, 2, m.Size())
}

func TestUnweightedAlwaysReturnsOne(t *testing.T) {
	assert.Equal(t, 1.0, UNWEIGHTED.Weight(0, 1))
	assert.Equal(t, 1.0, UNWEIGHTED.Weight(99, 3))
}
