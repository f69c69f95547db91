package pregel

import (
	"testing"

	"github.com/patmonardo/gds-kernel/pkg/concurrency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// haltImmediately reproduces spec.md §8 scenario S4: vote to halt in init, do nothing
// in compute, on a 3-node graph with no edges.
type haltImmediately struct{}

func (haltImmediately) Init(ctx *InitContext, node int64)                          { ctx.VoteToHalt(node) }
func (haltImmediately) Compute(ctx *ComputeContext, node int64, msgs *MessageIterator) {}

func TestExecutorVoteToHaltInInit(t *testing.T) {
	schema := NewSchema()
	result, err := Run(3, schema, haltImmediately{}, Config{
		MaxIterations: 50,
		Concurrency:   concurrency.New(2),
		Neighbors:     func(int64) []int64 { return nil },
	}, nil)
	require.NoError(t, err)
	assert.True(t, result.DidConverge)
	assert.Equal(t, 1, result.RanIterations)
}

// propagateOnce sends a single pulse to every out-neighbor on the first superstep, then
// votes to halt as soon as it has nothing new to say.
type propagateOnce struct{ neighbors NeighborsFunc }

func (propagateOnce) Init(ctx *InitContext, node int64) {}

func (p propagateOnce) Compute(ctx *ComputeContext, node int64, msgs *MessageIterator) {
	if ctx.IsInitialSuperstep() {
		ctx.SendToNeighbors(node, 1.0)
		ctx.VoteToHalt(node)
		return
	}
	ctx.VoteToHalt(node)
}

func TestExecutorMessagePropagationConverges(t *testing.T) {
	// line graph 0 -> 1 -> 2
	adj := map[int64][]int64{0: {1}, 1: {2}, 2: {}}
	neighbors := func(n int64) []int64 { return adj[n] }

	schema := NewSchema()
	result, err := Run(3, schema, propagateOnce{neighbors: neighbors}, Config{
		MaxIterations: 50,
		Concurrency:   concurrency.New(1),
		Neighbors:     neighbors,
	}, nil)
	require.NoError(t, err)
	assert.True(t, result.DidConverge)
	assert.Equal(t, 2, result.RanIterations)
}

func TestExecutorMaxIterationsCapsRun(t *testing.T) {
	// A computation that never votes to halt and never sends forces the cap.
	schema := NewSchema()
	result, err := Run(2, schema, neverHalts{}, Config{
		MaxIterations: 5,
		Concurrency:   concurrency.New(1),
		Neighbors:     func(int64) []int64 { return nil },
	}, nil)
	require.NoError(t, err)
	assert.False(t, result.DidConverge)
	assert.Equal(t, 5, result.RanIterations)
}

type neverHalts struct{}

func (neverHalts) Init(ctx *InitContext, node int64)                             {}
func (neverHalts) Compute(ctx *ComputeContext, node int64, msgs *MessageIterator) {}
