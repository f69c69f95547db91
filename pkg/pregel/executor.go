package pregel

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/patmonardo/gds-kernel/pkg/collections"
	"github.com/patmonardo/gds-kernel/pkg/concurrency"
	"github.com/patmonardo/gds-kernel/pkg/metrics"
)

// PartitionMode selects how the executor splits [0, node_count) across ComputeSteps
// (spec.md §4.5).
type PartitionMode uint8

const (
	PartitionRange PartitionMode = iota
	PartitionDegree
)

// Config configures one Pregel run.
type Config struct {
	MaxIterations int
	Concurrency   concurrency.Concurrency
	Mode          PartitionMode
	DegreeFn      concurrency.DegreeFunction // used when Mode == PartitionDegree; nil falls back to range partitioning
	Reducer       Reducer
	Neighbors     NeighborsFunc
}

// Result summarizes one Pregel run (spec.md §8 scenario S4: did_converge, ran_iterations).
type Result struct {
	DidConverge   bool
	RanIterations int
	NodeValue     *NodeValue
}

// Run executes comp over a graph of nodeCount nodes per the BSP state machine in
// spec.md §4.5: a node is scheduled in superstep k+1 iff it received a message in k, or
// it never voted to halt. Global termination fires when every node has halted and the
// send buffer is empty, or when MaxIterations is reached.
func Run(nodeCount int64, schema *Schema, comp Computation, cfg Config, term *concurrency.TerminationFlag) (*Result, error) {
	nv := NewNodeValue(schema, nodeCount)
	messenger := NewMessenger(nodeCount, cfg.Reducer)
	voteBits := collections.NewHugeAtomicBitSet(nodeCount)

	if term == nil {
		term = concurrency.NewTerminationFlag()
	}

	partitions := partitionsFor(nodeCount, cfg)

	ran := 0
	converged := false
	for iteration := 0; iteration < cfg.MaxIterations; iteration++ {
		if err := term.Check("superstep"); err != nil {
			return &Result{DidConverge: false, RanIterations: ran, NodeValue: nv}, err
		}

		messenger.InitIteration(iteration)
		var sentFlag atomic.Bool

		var g errgroup.Group
		for _, p := range partitions {
			p := p
			g.Go(func() error {
				return computeStep(p, comp, nv, messenger, voteBits, cfg.Neighbors, iteration, &sentFlag, term)
			})
		}
		if err := g.Wait(); err != nil {
			return &Result{DidConverge: false, RanIterations: ran, NodeValue: nv}, err
		}
		ran++
		metrics.DefaultRegistry().SetPregelActiveNodes(int(nodeCount - voteBits.Cardinality()))

		if !sentFlag.Load() && voteBits.AllSet() {
			converged = true
			break
		}
	}

	metrics.DefaultRegistry().RecordPregelRun(ran, converged)
	return &Result{DidConverge: converged, RanIterations: ran, NodeValue: nv}, nil
}

func partitionsFor(nodeCount int64, cfg Config) []concurrency.Partition {
	n := cfg.Concurrency.Value()
	if n < 1 {
		n = 1
	}
	switch cfg.Mode {
	case PartitionDegree:
		if cfg.DegreeFn != nil {
			return concurrency.DegreePartition(nodeCount, n, cfg.DegreeFn)
		}
		fallthrough
	default:
		return concurrency.RangePartition(nodeCount, n)
	}
}
