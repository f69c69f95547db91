package pregel

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/patmonardo/gds-kernel/pkg/collections"
	"github.com/patmonardo/gds-kernel/pkg/concurrency"
	"github.com/patmonardo/gds-kernel/pkg/metrics"
)

// NeighborsFunc returns the out-neighbor mapped node ids of node, used by
// ComputeContext.SendToNeighbors (spec.md §4.5).
type NeighborsFunc func(node int64) []int64

// Computation is the user-supplied algorithm kernel (spec.md §4.5): Init runs once per
// node on the initial superstep; Compute runs once per active node per superstep.
type Computation interface {
	Init(ctx *InitContext, node int64)
	Compute(ctx *ComputeContext, node int64, messages *MessageIterator)
}

// InitContext is the handle passed to Computation.Init.
type InitContext struct {
	NodeValue *NodeValue

	voteBits *collections.HugeAtomicBitSet
}

// VoteToHalt lets an algorithm halt a node from its very first (init) pass — used by
// computations with no message-driven work at all (spec.md §8 scenario S4).
func (c *InitContext) VoteToHalt(node int64) { c.voteBits.Set(node) }

// ComputeContext is the handle passed to Computation.Compute, exposing the send/vote
// primitives named in spec.md §4.5.
type ComputeContext struct {
	NodeValue *NodeValue

	messenger *Messenger
	voteBits  *collections.HugeAtomicBitSet
	neighbors NeighborsFunc
	superstep int
	sentFlag  *atomic.Bool
	self      int64 // the node currently executing compute(); the sender for SendTo
}

func (c *ComputeContext) SendTo(target int64, value float64) {
	c.messenger.SendTo(c.self, target, value)
	c.sentFlag.Store(true)
	metrics.DefaultRegistry().RecordPregelMessagesSent(1)
}

// SendToNeighbors sends value to every out-neighbor of node, per NeighborsFunc.
func (c *ComputeContext) SendToNeighbors(node int64, value float64) {
	for _, t := range c.neighbors(node) {
		c.SendTo(t, value)
	}
}

func (c *ComputeContext) VoteToHalt(node int64) { c.voteBits.Set(node) }

func (c *ComputeContext) Superstep() int           { return c.superstep }
func (c *ComputeContext) IsInitialSuperstep() bool { return c.superstep == 0 }

// leafThreshold is the partition size below which a ComputeStep processes sequentially
// instead of forking (spec.md §4.5 default of 1000 nodes).
const leafThreshold = 1000

// computeStep processes one partition of one superstep, recursively splitting
// partitions above leafThreshold (spec.md §4.5 "Work splitting") via an errgroup.Group
// two-way fork, grounded on pkg/parallel/traverse_bfs.go's chunked fan-out — generalized
// from a bare sync.WaitGroup to errgroup so a termination error raised in one half of
// the split actually surfaces at Wait() instead of being dropped on the floor. errgroup
// does not recover panics: a panic in a leaf's Compute call is not turned into an error.
func computeStep(
	part concurrency.Partition,
	comp Computation,
	nv *NodeValue,
	messenger *Messenger,
	voteBits *collections.HugeAtomicBitSet,
	neighbors NeighborsFunc,
	superstep int,
	sentFlag *atomic.Bool,
	term *concurrency.TerminationFlag,
) error {
	if part.Length > leafThreshold {
		mid := part.Length / 2
		left := concurrency.Partition{Start: part.Start, Length: mid}
		right := concurrency.Partition{Start: part.Start + mid, Length: part.Length - mid}

		var g errgroup.Group
		g.Go(func() error {
			return computeStep(left, comp, nv, messenger, voteBits, neighbors, superstep, sentFlag, term)
		})
		g.Go(func() error {
			return computeStep(right, comp, nv, messenger, voteBits, neighbors, superstep, sentFlag, term)
		})
		return g.Wait()
	}

	if err := term.Check(""); err != nil {
		return err
	}

	ctx := &ComputeContext{
		NodeValue: nv,
		messenger: messenger,
		voteBits:  voteBits,
		neighbors: neighbors,
		superstep: superstep,
		sentFlag:  sentFlag,
	}

	for node := part.Start; node < part.End(); node++ {
		if superstep == 0 {
			comp.Init(&InitContext{NodeValue: nv, voteBits: voteBits}, node)
		}
		messages := messenger.Receive(node)
		if messages.IsEmpty() && voteBits.Get(node) {
			continue
		}
		voteBits.Clear(node)
		ctx.self = node
		comp.Compute(ctx, node, messages)
	}
	return nil
}
