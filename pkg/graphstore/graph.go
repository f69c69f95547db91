package graphstore

import (
	"github.com/patmonardo/gds-kernel/pkg/idmap"
	"github.com/patmonardo/gds-kernel/pkg/kernelerrors"
	"github.com/patmonardo/gds-kernel/pkg/values"
)

// RelationshipCursor is one (source, target, weight) tuple produced while streaming a
// node's relationships (spec.md §3.5).
type RelationshipCursor struct {
	Source int64
	Target int64
	Weight float64
}

// Graph is an immutable, cheaply-cloneable handle over a frozen snapshot of a
// GraphStore's topology and properties (spec.md §3.5). Copying a Graph value copies only
// slice/map headers, never the underlying columnar data.
type Graph struct {
	idMap          *idmap.IdMap
	nodeProperties map[LabelSetKey]map[string]values.PropertyValues
	relProperties  map[RelationshipType]map[string]values.PropertyValues
	topologies     map[RelationshipType]*Topology
	caps           Capabilities
	types          []RelationshipType // relationship types this view exposes
}

func (g *Graph) NodeCount() int64 { return g.idMap.NodeCount() }

// RelationshipCount returns the count for a specific type, or the total across every
// type this view exposes when typ is nil.
func (g *Graph) RelationshipCount(typ *RelationshipType) int64 {
	if typ != nil {
		if topo, ok := g.topologies[*typ]; ok {
			return topo.RelationshipCount()
		}
		return 0
	}
	var total int64
	for _, t := range g.types {
		total += g.topologies[t].RelationshipCount()
	}
	return total
}

func (g *Graph) Degree(node int64, typ *RelationshipType) int {
	if typ != nil {
		if topo, ok := g.topologies[*typ]; ok {
			return topo.Degree(node)
		}
		return 0
	}
	total := 0
	for _, t := range g.types {
		total += g.topologies[t].Degree(node)
	}
	return total
}

// Iter returns every mapped node id.
func (g *Graph) Iter() []int64 { return g.idMap.Iter() }

// InDegree returns node's in-degree for typ, forcing the lazy inverse-adjacency build on
// its underlying Topology the first time any view asks for it (spec.md §4.4 "degree" is
// O(1) for out-degree; in-degree needs the inverse index).
func (g *Graph) InDegree(node int64, typ RelationshipType) int {
	topo, ok := g.topologies[typ]
	if !ok {
		return 0
	}
	inv := topo.Inverse()
	if node < 0 || node >= int64(len(inv)) {
		return 0
	}
	return len(inv[node])
}

// StreamInverseRelationships yields (source, target, weight) for every incoming
// relationship of node for typ, using the Topology's lazily-built inverse index.
func (g *Graph) StreamInverseRelationships(node int64, typ RelationshipType, defaultWeight float64) []RelationshipCursor {
	topo, ok := g.topologies[typ]
	if !ok {
		return nil
	}
	inv := topo.Inverse()
	if node < 0 || node >= int64(len(inv)) {
		return nil
	}
	weightCol := g.weightColumn(typ)
	out := make([]RelationshipCursor, 0, len(inv[node]))
	for _, src := range inv[node] {
		w := defaultWeight
		for i, t := range topo.Outgoing[src] {
			if t != node {
				continue
			}
			if topo.Weights != nil && i < len(topo.Weights[src]) {
				w = topo.Weights[src][i]
			} else if weightCol != nil {
				if v, err := weightCol.DoubleValue(relPropertyOffset(topo, src, i)); err == nil {
					w = v
				}
			}
			break
		}
		out = append(out, RelationshipCursor{Source: src, Target: node, Weight: w})
	}
	return out
}

func (g *Graph) ToMapped(original int64) int64 { return g.idMap.ToMapped(original) }
func (g *Graph) ToOriginal(mapped int64) int64 { return g.idMap.ToOriginal(mapped) }
func (g *Graph) HasLabel(mapped int64, label idmap.NodeLabel) bool {
	return g.idMap.HasLabel(mapped, label)
}

// StreamRelationships yields (source, target, weight) for every outgoing relationship
// of node across every type this view exposes, using defaultWeight when no "weight"
// relationship property is configured for a type (spec.md §4.4).
func (g *Graph) StreamRelationships(node int64, defaultWeight float64) []RelationshipCursor {
	var out []RelationshipCursor
	for _, t := range g.types {
		topo := g.topologies[t]
		if node < 0 || node >= topo.NodeCount() {
			continue
		}
		weightCol := g.weightColumn(t)
		for i, target := range topo.Outgoing[node] {
			w := defaultWeight
			if topo.Weights != nil && i < len(topo.Weights[node]) {
				w = topo.Weights[node][i]
			} else if weightCol != nil {
				if v, err := weightCol.DoubleValue(relPropertyOffset(topo, node, i)); err == nil {
					w = v
				}
			}
			out = append(out, RelationshipCursor{Source: node, Target: target, Weight: w})
		}
	}
	return out
}

// weightColumn returns the PropertyValues backing the conventional "weight" relationship
// property for t, if one is declared.
func (g *Graph) weightColumn(t RelationshipType) values.PropertyValues {
	cols, ok := g.relProperties[t]
	if !ok {
		return nil
	}
	return cols["weight"]
}

// relPropertyOffset computes the flat relationship-property row index for the i-th
// out-edge of node within topo, assuming row-major (node, edge-index) layout matching
// how relationship property columns are built (spec.md §3.4: length equals the
// relationship count for that type, laid out in topology iteration order).
func relPropertyOffset(topo *Topology, node int64, edgeIndex int) int64 {
	var offset int64
	for n := int64(0); n < node; n++ {
		offset += int64(len(topo.Outgoing[n]))
	}
	return offset + int64(edgeIndex)
}

// Exists reports whether relationship (s, t) exists for the given type, or across any
// exposed type when typ is nil.
func (g *Graph) Exists(s, t int64, typ *RelationshipType) bool {
	if typ != nil {
		topo, ok := g.topologies[*typ]
		return ok && topo.Exists(s, t)
	}
	for _, rt := range g.types {
		if g.topologies[rt].Exists(s, t) {
			return true
		}
	}
	return false
}

// NodeProperties returns the PropertyValues column for key scoped to the given label
// set, or an error if undeclared.
func (g *Graph) NodeProperties(labels LabelSetKey, key string) (values.PropertyValues, error) {
	cols, ok := g.nodeProperties[labels]
	if !ok {
		return nil, kernelerrors.New(kernelerrors.SchemaViolation, "NodeProperties").
			Key(key).Cause(kernelerrors.ErrUnknownProperty).Build()
	}
	col, ok := cols[key]
	if !ok {
		return nil, kernelerrors.New(kernelerrors.SchemaViolation, "NodeProperties").
			Key(key).Cause(kernelerrors.ErrUnknownProperty).Build()
	}
	return col, nil
}

// RelationshipTypeFilteredGraph returns another Graph view restricted to the given
// relationship types (spec.md §3.5 "filtering").
func (g *Graph) RelationshipTypeFilteredGraph(types []RelationshipType) *Graph {
	filtered := &Graph{
		idMap:          g.idMap,
		nodeProperties: g.nodeProperties,
		relProperties:  g.relProperties,
		topologies:     g.topologies,
		caps:           g.caps,
		types:          append([]RelationshipType(nil), types...),
	}
	return filtered
}

func (g *Graph) Capabilities() Capabilities { return g.caps }
