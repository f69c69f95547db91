package kernelalgo

import (
	"testing"

	"github.com/patmonardo/gds-kernel/pkg/algorithm"
	"github.com/patmonardo/gds-kernel/pkg/concurrency"
	"github.com/patmonardo/gds-kernel/pkg/graphstore"
	"github.com/patmonardo/gds-kernel/pkg/idmap"
	"github.com/stretchr/testify/require"
)

// lineGraphStore builds 0 -> 1 -> 2 -> 3, the topology used by spec.md §8 S1.
func lineGraphStore(t *testing.T) *graphstore.GraphStore {
	t.Helper()
	b := idmap.NewBuilder()
	for i := int64(0); i < 4; i++ {
		b.Add(i)
	}
	rel := graphstore.RelType("FOLLOWS")
	outgoing := [][]int64{{1}, {2}, {3}, {}}
	topo := graphstore.NewTopology(outgoing, nil)

	schema := graphstore.NewGraphSchema()
	schema.RelationshipProperties[rel] = map[string]graphstore.PropertySchema{}

	gs, err := graphstore.NewGraphStore(graphstore.Config{
		GraphName:  "line",
		Schema:     schema,
		IdMap:      b.Build(),
		Topologies: map[graphstore.RelationshipType]*graphstore.Topology{rel: topo},
	})
	require.NoError(t, err)
	return gs
}

// spec.md §8 S1: PageRank on a 4-node line graph converges before max_iterations and
// produces a strictly increasing rank along the chain (each node inherits its
// predecessor's rank plus the base teleport mass; node 0 has no incoming edges so it
// only ever holds the teleport floor).
func TestPageRankAlgorithmS1(t *testing.T) {
	gs := lineGraphStore(t)

	spec := &PageRankSpec{}
	_, err := spec.ParseConfig(map[string]any{
		"dampingFactor": 0.85,
		"maxIterations": 50,
		"tolerance":     1e-6,
	})
	require.NoError(t, err)

	for _, v := range spec.ValidationConfig().BeforeLoad {
		require.NoError(t, v(algorithm.Config{}))
	}

	result, err := spec.Execute(gs.Graph(), algorithm.Config{}, concurrency.NewTerminationFlag())
	require.NoError(t, err)
	require.True(t, result.DidConverge)
	require.Less(t, result.RanIterations, 50)

	ranks, ok := result.Output.([]float64)
	require.True(t, ok)
	require.Len(t, ranks, 4)
	require.Less(t, ranks[0], ranks[1])
	require.Less(t, ranks[1], ranks[2])
	require.Less(t, ranks[2], ranks[3])

	out, err := spec.ConsumeResult(result, algorithm.Stats)
	require.NoError(t, err)
	require.Equal(t, ranks, out)
}

func TestPageRankAlgorithmRejectsBadDampingFactor(t *testing.T) {
	spec := &PageRankSpec{}
	_, err := spec.ParseConfig(map[string]any{"dampingFactor": 1.5, "maxIterations": 10, "tolerance": 1e-3})
	require.Error(t, err)
}
