// Package pregel implements the kernel's BSP (bulk synchronous parallel) runtime
// (spec.md §3.6, §4.5): a PregelSchema-described NodeValue store, a double-buffered
// Messenger with optional reducers, VoteBits, and a ComputeStep executor that forks
// partitions exceeding a size threshold.
//
// Grounded on pkg/parallel/worker_pool.go (panic-recovering worker loop) and
// pkg/parallel/traverse_bfs.go (level-by-level fan-out over a sync.WaitGroup, the direct
// ancestor of superstep-by-superstep fan-out here), generalized from a fixed BFS
// traversal into a user-supplied init/compute callback pair.
package pregel

import "github.com/patmonardo/gds-kernel/pkg/values"

// Visibility controls whether a Pregel-maintained node property survives after
// execution (spec.md §3.6).
type Visibility uint8

const (
	Public Visibility = iota
	Private
)

// PropertyDescriptor is one PregelSchema entry.
type PropertyDescriptor struct {
	Key        string
	Type       values.ValueType
	Visibility Visibility
	Default    values.GdsValue
}

// Schema enumerates the per-node properties a Pregel computation maintains.
type Schema struct {
	Properties []PropertyDescriptor
}

func NewSchema(props ...PropertyDescriptor) *Schema {
	return &Schema{Properties: props}
}

// PublicKeys returns the keys of properties visible after execution, in schema order.
func (s *Schema) PublicKeys() []string {
	var out []string
	for _, p := range s.Properties {
		if p.Visibility == Public {
			out = append(out, p.Key)
		}
	}
	return out
}
