// Package graphstore implements the triadic property graph model (spec.md §3.4, §3.5,
// §4.4): GraphStore (the mutable property owner), GraphSchema, Capabilities, and the
// immutable Graph view handed out for reading.
//
// Grounded on the teacher's pkg/storage/storage.go (sharded RWMutex, Statistics
// counters) generalized from map[uint64]*Node/*Edge to columnar property storage over
// pkg/idmap and pkg/values, and pkg/constraints for schema-violation reporting.
package graphstore

import (
	"github.com/patmonardo/gds-kernel/pkg/idmap"
	"github.com/patmonardo/gds-kernel/pkg/kernelerrors"
	"github.com/patmonardo/gds-kernel/pkg/values"
)

// RelationshipType is an interned string handle, analogous to idmap.NodeLabel but kept
// as a distinct type so relationship-keyed and label-keyed maps can't be confused at
// compile time (spec.md §3.1: "NodeLabel / RelationshipType: interned strings").
type RelationshipType struct{ key string }

func (t RelationshipType) String() string { return t.key }

var relTypePool = map[string]RelationshipType{}

func RelType(s string) RelationshipType {
	if t, ok := relTypePool[s]; ok {
		return t
	}
	t := RelationshipType{key: s}
	relTypePool[s] = t
	return t
}

// LabelSetKey canonicalizes a set of NodeLabels into a comparable map key. Two label
// sets are the same property scope iff their canonical keys match (spec.md §3.4: node
// properties are "keyed by (NodeLabel-set, property_key)").
type LabelSetKey string

func CanonicalLabelSet(labels []idmap.NodeLabel) LabelSetKey {
	// Small sets; a simple insertion sort by label string is fine at the scale schemas
	// operate (a handful of labels per node type).
	sorted := append([]idmap.NodeLabel(nil), labels...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].String() > sorted[j].String(); j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	key := ""
	for _, l := range sorted {
		key += "|" + l.String()
	}
	return LabelSetKey(key)
}

// AggregationStrategy decides how duplicate (s, t) edges of the same type and property
// are collapsed into a single stored value (spec.md §4.4).
type AggregationStrategy uint8

const (
	AggregationNone AggregationStrategy = iota
	AggregationSum
	AggregationMin
	AggregationMax
	AggregationSingle
	AggregationCount
)

// PropertySchema describes one declared property: its value type, default, and (for
// relationship properties) aggregation strategy.
type PropertySchema struct {
	Key         string
	Type        values.ValueType
	Default     values.GdsValue
	Aggregation AggregationStrategy
}

// GraphSchema holds the full set of declared node and relationship properties (spec.md
// §3.4).
type GraphSchema struct {
	NodeProperties         map[LabelSetKey]map[string]PropertySchema
	RelationshipProperties map[RelationshipType]map[string]PropertySchema
}

func NewGraphSchema() *GraphSchema {
	return &GraphSchema{
		NodeProperties:         map[LabelSetKey]map[string]PropertySchema{},
		RelationshipProperties: map[RelationshipType]map[string]PropertySchema{},
	}
}

func (s *GraphSchema) DeclareNodeProperty(labels LabelSetKey, schema PropertySchema) {
	m, ok := s.NodeProperties[labels]
	if !ok {
		m = map[string]PropertySchema{}
		s.NodeProperties[labels] = m
	}
	m[schema.Key] = schema
}

func (s *GraphSchema) DeclareRelationshipProperty(t RelationshipType, schema PropertySchema) {
	m, ok := s.RelationshipProperties[t]
	if !ok {
		m = map[string]PropertySchema{}
		s.RelationshipProperties[t] = m
	}
	m[schema.Key] = schema
}

func (s *GraphSchema) RemoveNodeProperty(labels LabelSetKey, key string) error {
	m, ok := s.NodeProperties[labels]
	if !ok {
		return kernelerrors.New(kernelerrors.SchemaViolation, "RemoveNodeProperty").
			Key(key).Cause(kernelerrors.ErrUnknownProperty).Build()
	}
	if _, ok := m[key]; !ok {
		return kernelerrors.New(kernelerrors.SchemaViolation, "RemoveNodeProperty").
			Key(key).Cause(kernelerrors.ErrUnknownProperty).Build()
	}
	delete(m, key)
	return nil
}

// Capabilities is an advisory descriptor of the GraphStore's structural properties
// (spec.md §3.4).
type Capabilities struct {
	Directed       bool
	InverseIndexed bool
	MultiGraph     bool
}

func DefaultCapabilities() Capabilities {
	return Capabilities{Directed: true, InverseIndexed: false, MultiGraph: false}
}
