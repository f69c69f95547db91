package constraints

import (
	"testing"

	"github.com/patmonardo/gds-kernel/pkg/collections"
	"github.com/patmonardo/gds-kernel/pkg/graphstore"
	"github.com/patmonardo/gds-kernel/pkg/idmap"
	"github.com/patmonardo/gds-kernel/pkg/values"
)

func setupTestGraph(t *testing.T, propValues []float64) *graphstore.Graph {
	t.Helper()
	b := idmap.NewBuilder()
	for i := int64(0); i < int64(len(propValues)); i++ {
		b.Add(i)
	}
	rel := graphstore.RelType("FOLLOWS")
	outgoing := make([][]int64, len(propValues))
	for i := range outgoing {
		if i+1 < len(propValues) {
			outgoing[i] = []int64{int64(i + 1)}
		}
	}
	topo := graphstore.NewTopology(outgoing, nil)

	schema := graphstore.NewGraphSchema()
	schema.RelationshipProperties[rel] = map[string]graphstore.PropertySchema{}

	gs, err := graphstore.NewGraphStore(graphstore.Config{
		GraphName:  "test",
		Schema:     schema,
		IdMap:      b.Build(),
		Topologies: map[graphstore.RelationshipType]*graphstore.Topology{rel: topo},
	})
	if err != nil {
		t.Fatalf("failed to create GraphStore: %v", err)
	}

	page := collections.NewHugeArray[float64](int64(len(propValues)))
	for i, v := range propValues {
		page.Set(int64(i), v)
	}
	if err := gs.AddNodeProperty(graphstore.LabelSetKey(""), "value", values.NewDoubleColumn(page)); err != nil {
		t.Fatalf("failed to attach property: %v", err)
	}

	return gs.Graph()
}

func TestPropertyConstraintRequired(t *testing.T) {
	graph := setupTestGraph(t, []float64{1, 2, 3})

	c := &PropertyConstraint{Labels: graphstore.LabelSetKey(""), PropertyName: "value", Required: true}
	violations, err := c.Validate(graph)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}

	missing := &PropertyConstraint{Labels: graphstore.LabelSetKey(""), PropertyName: "missing", Required: true}
	violations, err = missing.Validate(graph)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(violations) != 1 || violations[0].Type != MissingProperty {
		t.Fatalf("expected one MissingProperty violation, got %v", violations)
	}
}

func TestPropertyConstraintRange(t *testing.T) {
	graph := setupTestGraph(t, []float64{1, 5, 10})

	min, max := 2.0, 8.0
	c := &PropertyConstraint{Labels: graphstore.LabelSetKey(""), PropertyName: "value", Min: &min, Max: &max}
	violations, err := c.Validate(graph)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(violations) != 2 {
		t.Fatalf("expected 2 out-of-range violations (nodes 0 and 2), got %d: %v", len(violations), violations)
	}
	for _, v := range violations {
		if v.Type != OutOfRange {
			t.Fatalf("expected OutOfRange, got %v", v.Type)
		}
	}
}

func TestCardinalityConstraintMaxDegree(t *testing.T) {
	graph := setupTestGraph(t, []float64{1, 2, 3})

	c := &CardinalityConstraint{RelType: graphstore.RelType("FOLLOWS"), Direction: Any, Max: 1}
	// Max == 0 means no ceiling, so the bound is Max=1 on in- plus out-degree: the middle
	// node (1) has one incoming and one outgoing edge (degree 2); nodes 0 and 2 have 1.
	violations, err := c.Validate(graph)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("expected 1 max-cardinality violation (node 1 has degree 2), got %d", len(violations))
	}
}

func TestCardinalityConstraintMinOutDegree(t *testing.T) {
	graph := setupTestGraph(t, []float64{1, 2, 3})

	c := &CardinalityConstraint{RelType: graphstore.RelType("FOLLOWS"), Direction: Outgoing, Min: 1}
	violations, err := c.Validate(graph)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	// the tail node (2) has out-degree 0, below Min=1.
	if len(violations) != 1 {
		t.Fatalf("expected 1 min-cardinality violation (the tail node), got %d: %v", len(violations), violations)
	}
}

func TestUniquePropertyConstraintDetectsDuplicates(t *testing.T) {
	graph := setupTestGraph(t, []float64{1, 2, 2, 3})

	c := &UniquePropertyConstraint{Labels: graphstore.LabelSetKey(""), PropertyName: "value"}
	violations, err := c.Validate(graph)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(violations) != 1 || violations[0].Type != UniquenessViolation {
		t.Fatalf("expected one uniqueness violation, got %v", violations)
	}
}

func TestUniquePropertyConstraintAllUnique(t *testing.T) {
	graph := setupTestGraph(t, []float64{1, 2, 3, 4})

	c := &UniquePropertyConstraint{Labels: graphstore.LabelSetKey(""), PropertyName: "value"}
	violations, err := c.Validate(graph)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestValidatorAggregatesAcrossConstraints(t *testing.T) {
	graph := setupTestGraph(t, []float64{1, 2, 2})

	min := 0.0
	v := NewValidator()
	v.AddConstraints([]Constraint{
		&PropertyConstraint{Labels: graphstore.LabelSetKey(""), PropertyName: "value", Required: true, Min: &min},
		&UniquePropertyConstraint{Labels: graphstore.LabelSetKey(""), PropertyName: "value"},
	})

	result, err := v.Validate(graph)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Valid {
		t.Fatalf("expected Valid=false given a duplicate value")
	}
	if len(result.ViolationsByType(UniquenessViolation)) != 1 {
		t.Fatalf("expected exactly one uniqueness violation, got %v", result.Violations)
	}
}
