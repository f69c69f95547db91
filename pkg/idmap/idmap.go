// Package idmap implements the bijection between external (original) and internal
// (mapped) node ids, plus per-node label sets (spec.md §3.1, §4.3).
//
// Grounded on the teacher's node-id allocation in pkg/storage (pools.go's uint64 id
// pool, storage.go's nextNodeID counter) generalized from "always dense, assigned by an
// atomic counter" to "externally supplied, possibly sparse, ids hashed to a dense
// internal range" — the shape the spec requires.
package idmap

import (
	"golang.org/x/exp/maps"
)

// NotFound is the sentinel mapped id meaning "no mapping" (spec.md §3.1).
const NotFound int64 = -1

// NodeLabel is an interned string handle. Equality is value equality on the underlying
// key; the pool guarantees a single canonical string per distinct label so comparisons
// and map lookups stay cheap.
type NodeLabel struct {
	key string
}

func (l NodeLabel) String() string { return l.key }

// labelPool interns NodeLabel keys, mirroring the teacher's string-handle reuse idiom
// for edge types/labels (pkg/storage nodesByLabel/edgesByType keys).
var labelPool = map[string]NodeLabel{}

// Label interns s as a NodeLabel.
func Label(s string) NodeLabel {
	if l, ok := labelPool[s]; ok {
		return l
	}
	l := NodeLabel{key: s}
	labelPool[s] = l
	return l
}

// IdMap is the bijection between OriginalNodeId and MappedNodeId (spec.md §3.1, §4.3).
// Mapped ids are assigned by construction order: the i-th original id in the input list
// becomes mapped id i.
type IdMap struct {
	originalByMapped []int64
	mappedByOriginal map[int64]int64 // nil when ids were already dense [0, n)
	dense            bool

	labelsByMapped  [][]NodeLabel
	availableLabels map[NodeLabel]struct{}
}

// Builder accumulates original ids (and optional label sets) before Build().
type Builder struct {
	originals []int64
	labels    [][]NodeLabel
}

func NewBuilder() *Builder { return &Builder{} }

// Add registers one original node id with its label set (labels may be nil/empty).
func (b *Builder) Add(original int64, labels ...NodeLabel) {
	b.originals = append(b.originals, original)
	b.labels = append(b.labels, append([]NodeLabel(nil), labels...))
}

// Build constructs the immutable IdMap. Mapped ids are assigned in the order ids were
// added, per spec.md §4.3.
func (b *Builder) Build() *IdMap {
	n := len(b.originals)
	m := &IdMap{
		originalByMapped: append([]int64(nil), b.originals...),
		labelsByMapped:   b.labels,
		availableLabels:  map[NodeLabel]struct{}{},
	}

	dense := true
	for i, o := range b.originals {
		if o != int64(i) {
			dense = false
			break
		}
	}
	m.dense = dense
	if !dense {
		m.mappedByOriginal = make(map[int64]int64, n)
		for i, o := range b.originals {
			m.mappedByOriginal[o] = int64(i)
		}
	}
	for _, labels := range b.labels {
		for _, l := range labels {
			m.availableLabels[l] = struct{}{}
		}
	}
	return m
}

// NodeCount returns the number of mapped nodes.
func (m *IdMap) NodeCount() int64 { return int64(len(m.originalByMapped)) }

// ToMapped resolves an original id to its mapped id, O(1) average (spec.md §4.3).
func (m *IdMap) ToMapped(original int64) int64 {
	if m.dense {
		if original < 0 || original >= int64(len(m.originalByMapped)) {
			return NotFound
		}
		return original
	}
	if mapped, ok := m.mappedByOriginal[original]; ok {
		return mapped
	}
	return NotFound
}

// ToOriginal resolves a mapped id back to its original id.
func (m *IdMap) ToOriginal(mapped int64) int64 {
	if mapped < 0 || mapped >= int64(len(m.originalByMapped)) {
		return NotFound
	}
	return m.originalByMapped[mapped]
}

// Iter returns every mapped node id in [0, NodeCount()).
func (m *IdMap) Iter() []int64 {
	out := make([]int64, m.NodeCount())
	for i := range out {
		out[i] = int64(i)
	}
	return out
}

// IterWithLabels returns every mapped node id carrying at least one of the given labels.
func (m *IdMap) IterWithLabels(set ...NodeLabel) []int64 {
	wanted := make(map[NodeLabel]struct{}, len(set))
	for _, l := range set {
		wanted[l] = struct{}{}
	}
	var out []int64
	for mapped, labels := range m.labelsByMapped {
		for _, l := range labels {
			if _, ok := wanted[l]; ok {
				out = append(out, int64(mapped))
				break
			}
		}
	}
	return out
}

// NodeLabels returns the label set for a mapped node.
func (m *IdMap) NodeLabels(mapped int64) []NodeLabel {
	if mapped < 0 || mapped >= int64(len(m.labelsByMapped)) {
		return nil
	}
	return m.labelsByMapped[mapped]
}

// HasLabel reports whether a mapped node carries the given label.
func (m *IdMap) HasLabel(mapped int64, label NodeLabel) bool {
	for _, l := range m.NodeLabels(mapped) {
		if l == label {
			return true
		}
	}
	return false
}

// AvailableNodeLabels returns every distinct label present in the map.
func (m *IdMap) AvailableNodeLabels() []NodeLabel {
	return maps.Keys(m.availableLabels)
}
