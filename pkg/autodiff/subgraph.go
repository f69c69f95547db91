package autodiff

// NeighborhoodFunction samples (or exhaustively lists) the mapped-id neighbors of a
// node for subgraph batching (spec.md §4.6).
type NeighborhoodFunction interface {
	Sample(node int64) []int64
}

// ExhaustiveNeighborhood returns every neighbor via neighbors(node), unsampled.
type ExhaustiveNeighborhood struct {
	neighbors func(node int64) []int64
}

func NewExhaustiveNeighborhood(neighbors func(node int64) []int64) *ExhaustiveNeighborhood {
	return &ExhaustiveNeighborhood{neighbors: neighbors}
}

func (n *ExhaustiveNeighborhood) Sample(node int64) []int64 { return n.neighbors(node) }

// SampledNeighborhood draws up to k neighbors uniformly per node via reservoir sampling.
type SampledNeighborhood struct {
	neighbors func(node int64) []int64
	sampler   *UniformSampler
}

func NewSampledNeighborhood(neighbors func(node int64) []int64, k int, seed int64) *SampledNeighborhood {
	return &SampledNeighborhood{neighbors: neighbors, sampler: NewUniformSampler(k, seed)}
}

func (n *SampledNeighborhood) Sample(node int64) []int64 {
	return n.sampler.Sample(n.neighbors(node))
}

// RelationshipWeights supplies per-edge weight lookups for subgraph construction
// (spec.md §4.6).
type RelationshipWeights interface {
	Weight(source, target int64) float64
}

type unweighted struct{}

// UNWEIGHTED always returns 1.0, regardless of (source, target).
var UNWEIGHTED RelationshipWeights = unweighted{}

func (unweighted) Weight(source, target int64) float64 { return 1.0 }

// LocalIdMap assigns dense local ids to original mapped node ids in first-seen order
// (spec.md §3.7, §4.6).
type LocalIdMap struct {
	toLocal    map[int64]int64
	toOriginal []int64
}

func NewLocalIdMap() *LocalIdMap {
	return &LocalIdMap{toLocal: map[int64]int64{}}
}

// ToLocal returns orig's local id, assigning a new one on first sight.
func (m *LocalIdMap) ToLocal(orig int64) int64 {
	if local, ok := m.toLocal[orig]; ok {
		return local
	}
	local := int64(len(m.toOriginal))
	m.toLocal[orig] = local
	m.toOriginal = append(m.toOriginal, orig)
	return local
}

func (m *LocalIdMap) ToOriginal(local int64) int64 { return m.toOriginal[local] }
func (m *LocalIdMap) Size() int                    { return len(m.toOriginal) }

// SubGraphEdge is a local-id edge with its resolved weight.
type SubGraphEdge struct {
	Target int64
	Weight float64
}

// SubGraph is a batch-local slice of a Graph: a LocalIdMap plus, per local node, its
// sampled neighbor list remapped to local ids with resolved weights (spec.md §3.7).
type SubGraph struct {
	IDs       *LocalIdMap
	Neighbors [][]SubGraphEdge
}

// BuildSubGraph materializes a SubGraph rooted at batch, sampling each node's
// neighborhood via neighborhoodFn and resolving per-edge weight via weights (spec.md
// §4.6 "build_subgraph"). Neighbors outside the batch are still added to the LocalIdMap
// (growing it past the initial batch) and are then expanded in turn, so the result
// covers every node reachable from batch through sampled neighbors, not just one hop.
func BuildSubGraph(batch []int64, neighborhoodFn NeighborhoodFunction, weights RelationshipWeights) *SubGraph {
	ids := NewLocalIdMap()
	for _, orig := range batch {
		ids.ToLocal(orig)
	}

	// ids.Size() grows while this loop runs (neighbors outside batch get appended), so the
	// loop condition re-reads it each iteration and naturally visits those too.
	neighborLists := make([][]SubGraphEdge, 0, len(batch))
	for i := 0; i < ids.Size(); i++ {
		orig := ids.ToOriginal(int64(i))
		origNeighbors := neighborhoodFn.Sample(orig)
		edges := make([]SubGraphEdge, 0, len(origNeighbors))
		for _, n := range origNeighbors {
			local := ids.ToLocal(n)
			edges = append(edges, SubGraphEdge{Target: local, Weight: weights.Weight(orig, n)})
		}
		neighborLists = append(neighborLists, edges)
	}

	return &SubGraph{IDs: ids, Neighbors: neighborLists}
}
