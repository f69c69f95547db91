package graphstore

import (
	"fmt"
	"sync"

	"github.com/patmonardo/gds-kernel/pkg/idmap"
	"github.com/patmonardo/gds-kernel/pkg/kernelerrors"
	"github.com/patmonardo/gds-kernel/pkg/validation"
	"github.com/patmonardo/gds-kernel/pkg/values"
)

// Statistics tracks store-level counters, mirroring pkg/storage/storage.go's
// Statistics struct (node/edge counts, average query time) re-themed to the property
// model: property-column and view counts instead of WAL/query timings.
type Statistics struct {
	NodeCount            uint64
	RelationshipCount     uint64
	NodePropertyCount     uint64
	RelationshipPropertyCount uint64
	GraphsViewed          uint64
}

// GraphStore owns the three disjoint property namespaces plus the IdMap, schema, and
// per-type topologies (spec.md §3.4). Property maps are replaced wholesale (not mutated
// in place) on every Add/Remove so that a Graph view taken before a mutation keeps
// observing its old map header after the mutation — this is the copy-on-write choice
// the spec leaves to the implementer for snapshot semantics (spec.md §3.5, §8 invariant
// 10). Grounded on pkg/storage/storage.go's shard-lock + Statistics idiom.
type GraphStore struct {
	mu sync.RWMutex

	graphName string
	idMap     *idmap.IdMap
	schema    *GraphSchema
	caps      Capabilities

	nodeProperties map[LabelSetKey]map[string]values.PropertyValues
	relProperties  map[RelationshipType]map[string]values.PropertyValues
	graphProperties map[string]values.GdsValue

	topologies map[RelationshipType]*Topology

	stats Statistics
}

// Config is the mandatory-field builder input for NewGraphStore (spec.md §6:
// "a builder accepting (graph_name, database_info, schema, capabilities, id_map,
// per_type_topologies)... all fields are mandatory except capabilities"). GraphName,
// Schema and IdMap are checked; a nil Topologies map is accepted and treated as empty.
type Config struct {
	GraphName    string
	Schema       *GraphSchema
	Capabilities *Capabilities // nil -> DefaultCapabilities()
	IdMap        *idmap.IdMap
	Topologies   map[RelationshipType]*Topology
}

// NewGraphStore validates and constructs a GraphStore from a Config (spec.md §6, §3.4).
func NewGraphStore(cfg Config) (*GraphStore, error) {
	if cfg.GraphName == "" {
		return nil, kernelerrors.New(kernelerrors.ConfigErrorKind, "NewGraphStore").
			Key("graphName").Cause(fmt.Errorf("must not be empty")).Build()
	}
	if cfg.Schema == nil {
		return nil, kernelerrors.New(kernelerrors.ConfigErrorKind, "NewGraphStore").
			Key("schema").Cause(fmt.Errorf("must not be nil")).Build()
	}
	if cfg.IdMap == nil {
		return nil, kernelerrors.New(kernelerrors.ConfigErrorKind, "NewGraphStore").
			Key("idMap").Cause(fmt.Errorf("must not be nil")).Build()
	}

	caps := DefaultCapabilities()
	if cfg.Capabilities != nil {
		caps = *cfg.Capabilities
	}

	topologies := cfg.Topologies
	if topologies == nil {
		topologies = map[RelationshipType]*Topology{}
	}

	// Invariant (spec.md §3.4): "the set of relationship types in the topology equals
	// the set in the schema."
	for t := range cfg.Schema.RelationshipProperties {
		if _, ok := topologies[t]; !ok {
			return nil, kernelerrors.New(kernelerrors.SchemaViolation, "NewGraphStore").
				Key(t.String()).
				Cause(fmt.Errorf("relationship type declared in schema but missing a topology")).
				Build()
		}
	}

	gs := &GraphStore{
		graphName:       cfg.GraphName,
		idMap:           cfg.IdMap,
		schema:          cfg.Schema,
		caps:            caps,
		nodeProperties:  map[LabelSetKey]map[string]values.PropertyValues{},
		relProperties:   map[RelationshipType]map[string]values.PropertyValues{},
		graphProperties: map[string]values.GdsValue{},
		topologies:      topologies,
	}
	gs.stats.NodeCount = uint64(cfg.IdMap.NodeCount())
	for _, topo := range topologies {
		gs.stats.RelationshipCount += uint64(topo.RelationshipCount())
	}
	return gs, nil
}

func (gs *GraphStore) GraphName() string       { return gs.graphName }
func (gs *GraphStore) Capabilities() Capabilities { return gs.caps }
func (gs *GraphStore) Schema() *GraphSchema    { return gs.schema }
func (gs *GraphStore) NodeCount() int64        { return gs.idMap.NodeCount() }

func (gs *GraphStore) Statistics() Statistics {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.stats
}

// AddNodeProperty validates and installs a node property column (spec.md §4.4).
func (gs *GraphStore) AddNodeProperty(labels LabelSetKey, key string, col values.PropertyValues) error {
	if err := validation.ValidatePropertyKey(key); err != nil {
		return kernelerrors.New(kernelerrors.SchemaViolation, "AddNodeProperty").
			Key(key).Cause(err).Build()
	}

	expected := gs.NodeCount() // all labels share the global dense id space in this model
	if col.Len() != expected {
		return kernelerrors.New(kernelerrors.SchemaViolation, "AddNodeProperty").
			Key(key).
			ValidRange(fmt.Sprintf("length == %d", expected)).
			Cause(fmt.Errorf("got length %d", col.Len())).
			Build()
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if existing, ok := gs.nodeProperties[labels]; ok {
		if prior, ok := existing[key]; ok && prior.ValueType() != col.ValueType() {
			return kernelerrors.New(kernelerrors.SchemaViolation, "AddNodeProperty").
				Key(key).
				ValidRange(prior.ValueType().String()).
				Cause(fmt.Errorf("incompatible value type %s", col.ValueType())).
				Build()
		}
	}

	next := cloneColumnMap(gs.nodeProperties[labels])
	next[key] = col
	gs.nodeProperties = cloneOuterMap(gs.nodeProperties)
	gs.nodeProperties[labels] = next
	gs.schema.DeclareNodeProperty(labels, PropertySchema{Key: key, Type: col.ValueType()})
	gs.stats.NodePropertyCount++
	return nil
}

// RemoveNodeProperty detaches a property column atomically across all label scopes that
// declare it (spec.md §3.4: "removing a property from the schema removes all its values
// atomically").
func (gs *GraphStore) RemoveNodeProperty(key string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	found := false
	next := cloneOuterMap(gs.nodeProperties)
	for labels, cols := range next {
		if _, ok := cols[key]; ok {
			found = true
			clone := cloneColumnMap(cols)
			delete(clone, key)
			next[labels] = clone
			_ = gs.schema.RemoveNodeProperty(labels, key)
		}
	}
	if !found {
		return kernelerrors.New(kernelerrors.SchemaViolation, "RemoveNodeProperty").
			Key(key).Cause(kernelerrors.ErrUnknownProperty).Build()
	}
	gs.nodeProperties = next
	gs.stats.NodePropertyCount--
	return nil
}

// AddRelationshipProperty validates and installs a relationship property column against
// the relationship count for that type.
func (gs *GraphStore) AddRelationshipProperty(t RelationshipType, key string, col values.PropertyValues) error {
	if err := validation.ValidatePropertyKey(key); err != nil {
		return kernelerrors.New(kernelerrors.SchemaViolation, "AddRelationshipProperty").
			Key(key).Cause(err).Build()
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	topo, ok := gs.topologies[t]
	if !ok {
		return kernelerrors.New(kernelerrors.SchemaViolation, "AddRelationshipProperty").
			Key(t.String()).Cause(kernelerrors.ErrUnknownType).Build()
	}
	expected := topo.RelationshipCount()
	if col.Len() != expected {
		return kernelerrors.New(kernelerrors.SchemaViolation, "AddRelationshipProperty").
			Key(key).
			ValidRange(fmt.Sprintf("length == %d", expected)).
			Cause(fmt.Errorf("got length %d", col.Len())).
			Build()
	}

	next := cloneColumnMap(gs.relProperties[t])
	next[key] = col
	gs.relProperties = cloneOuterMapRel(gs.relProperties)
	gs.relProperties[t] = next
	gs.schema.DeclareRelationshipProperty(t, PropertySchema{Key: key, Type: col.ValueType()})
	gs.stats.RelationshipPropertyCount++
	return nil
}

func (gs *GraphStore) RemoveRelationshipProperty(t RelationshipType, key string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	cols, ok := gs.relProperties[t]
	if !ok {
		return kernelerrors.New(kernelerrors.SchemaViolation, "RemoveRelationshipProperty").
			Key(key).Cause(kernelerrors.ErrUnknownProperty).Build()
	}
	if _, ok := cols[key]; !ok {
		return kernelerrors.New(kernelerrors.SchemaViolation, "RemoveRelationshipProperty").
			Key(key).Cause(kernelerrors.ErrUnknownProperty).Build()
	}
	next := cloneOuterMapRel(gs.relProperties)
	clone := cloneColumnMap(cols)
	delete(clone, key)
	next[t] = clone
	gs.relProperties = next
	if m, ok := gs.schema.RelationshipProperties[t]; ok {
		delete(m, key)
	}
	gs.stats.RelationshipPropertyCount--
	return nil
}

// SetGraphProperty installs a single scalar graph-level property.
func (gs *GraphStore) SetGraphProperty(key string, v values.GdsValue) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	next := map[string]values.GdsValue{}
	for k, v := range gs.graphProperties {
		next[k] = v
	}
	next[key] = v
	gs.graphProperties = next
}

func (gs *GraphStore) GraphProperty(key string) (values.GdsValue, bool) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	v, ok := gs.graphProperties[key]
	return v, ok
}

// Graph returns an immutable Graph view pinned to the GraphStore's current state
// (spec.md §4.4 "graph() returns a Graph view pinned to the current state"). Because
// every property map is replaced wholesale on mutation rather than edited in place, the
// maps captured here remain valid forever regardless of later GraphStore mutation
// (spec.md §8 invariant 10).
func (gs *GraphStore) Graph() *Graph {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	gs.stats.GraphsViewed++
	return &Graph{
		idMap:          gs.idMap,
		nodeProperties: gs.nodeProperties,
		relProperties:  gs.relProperties,
		topologies:     gs.topologies,
		caps:           gs.caps,
		types:          allTypes(gs.topologies),
	}
}

func allTypes(m map[RelationshipType]*Topology) []RelationshipType {
	out := make([]RelationshipType, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	return out
}

func cloneColumnMap(m map[string]values.PropertyValues) map[string]values.PropertyValues {
	next := make(map[string]values.PropertyValues, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	return next
}

func cloneOuterMap(m map[LabelSetKey]map[string]values.PropertyValues) map[LabelSetKey]map[string]values.PropertyValues {
	next := make(map[LabelSetKey]map[string]values.PropertyValues, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	return next
}

func cloneOuterMapRel(m map[RelationshipType]map[string]values.PropertyValues) map[RelationshipType]map[string]values.PropertyValues {
	next := make(map[RelationshipType]map[string]values.PropertyValues, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	return next
}
