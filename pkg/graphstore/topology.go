package graphstore

import "sync"

// Topology is the adjacency representation for one RelationshipType (spec.md §6
// "Relationship topology input"): a Vec<Vec<MappedNodeId>> of length node_count, plus an
// optional parallel weight list for the single designated "weight" relationship
// property, plus a lazily-built inverse index.
type Topology struct {
	Outgoing [][]int64   // Outgoing[s] = targets of s's out-edges of this type
	Weights  [][]float64 // parallel to Outgoing; nil if this type has no weight property

	inverseOnce sync.Once
	inverse     [][]int64 // inverse[t] = sources of t's in-edges of this type
}

// NewTopology builds a Topology from an adjacency list and optional parallel weights.
func NewTopology(outgoing [][]int64, weights [][]float64) *Topology {
	return &Topology{Outgoing: outgoing, Weights: weights}
}

func (t *Topology) NodeCount() int64 { return int64(len(t.Outgoing)) }

func (t *Topology) Degree(node int64) int {
	if node < 0 || node >= int64(len(t.Outgoing)) {
		return 0
	}
	return len(t.Outgoing[node])
}

func (t *Topology) RelationshipCount() int64 {
	var n int64
	for _, adj := range t.Outgoing {
		n += int64(len(adj))
	}
	return n
}

// Inverse returns the incoming-adjacency view, building it lazily on first use (Open
// Question resolved in DESIGN.md: inverse index is built lazily and cached on the
// GraphStore's Topology, not per Graph view, so concurrent snapshot views share the
// build without violating snapshot semantics — the build is a pure function of
// already-frozen Outgoing data).
func (t *Topology) Inverse() [][]int64 {
	t.inverseOnce.Do(func() {
		inv := make([][]int64, len(t.Outgoing))
		for s, targets := range t.Outgoing {
			for _, tgt := range targets {
				inv[tgt] = append(inv[tgt], int64(s))
			}
		}
		t.inverse = inv
	})
	return t.inverse
}

// Exists reports whether relationship (s, t) exists in this topology. O(degree(s))
// unless the caller has already forced Inverse() to build a sorted structure; this
// kernel does not sort adjacency lists, so Exists is always a linear scan of s's
// out-edges, matching the "unless an inverse index or sorted adjacency allows better"
// escape clause in spec.md §4.4 literally (no sorted-adjacency fast path is implemented).
func (t *Topology) Exists(s, target int64) bool {
	if s < 0 || s >= int64(len(t.Outgoing)) {
		return false
	}
	for _, tgt := range t.Outgoing[s] {
		if tgt == target {
			return true
		}
	}
	return false
}
