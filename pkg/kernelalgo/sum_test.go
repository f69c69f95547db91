package kernelalgo

import (
	"testing"

	"github.com/patmonardo/gds-kernel/pkg/algorithm"
	"github.com/patmonardo/gds-kernel/pkg/collections"
	"github.com/patmonardo/gds-kernel/pkg/concurrency"
	"github.com/patmonardo/gds-kernel/pkg/graphstore"
	"github.com/patmonardo/gds-kernel/pkg/idmap"
	"github.com/patmonardo/gds-kernel/pkg/values"
	"github.com/stretchr/testify/require"
)

func fiveNodeStore(t *testing.T, propertyKey string, vals []float64) *graphstore.GraphStore {
	t.Helper()
	b := idmap.NewBuilder()
	for i := int64(0); i < int64(len(vals)); i++ {
		b.Add(i)
	}
	schema := graphstore.NewGraphSchema()
	gs, err := graphstore.NewGraphStore(graphstore.Config{
		GraphName: "g",
		Schema:    schema,
		IdMap:     b.Build(),
	})
	require.NoError(t, err)

	page := collections.NewHugeArray[float64](int64(len(vals)))
	for i, v := range vals {
		page.Set(int64(i), v)
	}
	require.NoError(t, gs.AddNodeProperty(graphstore.LabelSetKey(""), propertyKey, values.NewDoubleColumn(page)))
	return gs
}

// spec.md §8 S2: sum("value") over 5 nodes valued [1,2,3,4,5] yields 15.
func TestSumAlgorithmS2(t *testing.T) {
	gs := fiveNodeStore(t, "value", []float64{1, 2, 3, 4, 5})

	spec := &SumSpec{}
	_, err := spec.ParseConfig(map[string]any{"propertyKey": "value"})
	require.NoError(t, err)

	for _, v := range spec.ValidationConfig().AfterLoad {
		require.NoError(t, v(algorithm.Config{}, gs.Graph()))
	}

	result, err := spec.Execute(gs.Graph(), algorithm.Config{}, concurrency.NewTerminationFlag())
	require.NoError(t, err)
	require.Equal(t, 15.0, result.Output)

	out, err := spec.ConsumeResult(result, algorithm.Stream)
	require.NoError(t, err)
	require.Equal(t, 15.0, out)
}

// S2's missing-property behavior: an AfterLoad validator fails, not Execute.
func TestSumAlgorithmMissingPropertyFailsAtValidation(t *testing.T) {
	gs := fiveNodeStore(t, "value", []float64{1, 2, 3, 4, 5})

	spec := &SumSpec{}
	_, err := spec.ParseConfig(map[string]any{"propertyKey": "nonexistent"})
	require.NoError(t, err)

	var validationErr error
	for _, v := range spec.ValidationConfig().AfterLoad {
		if err := v(algorithm.Config{}, gs.Graph()); err != nil {
			validationErr = err
		}
	}
	require.Error(t, validationErr)
}

func TestSumAlgorithmRejectsWriteMode(t *testing.T) {
	spec := &SumSpec{}
	_, err := spec.ConsumeResult(algorithm.ComputationResult[any]{Output: 1.0}, algorithm.Write)
	require.Error(t, err)
}
