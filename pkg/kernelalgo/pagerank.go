package kernelalgo

import (
	"github.com/patmonardo/gds-kernel/pkg/algorithm"
	"github.com/patmonardo/gds-kernel/pkg/catalog"
	"github.com/patmonardo/gds-kernel/pkg/concurrency"
	"github.com/patmonardo/gds-kernel/pkg/graphstore"
	"github.com/patmonardo/gds-kernel/pkg/kernelerrors"
	"github.com/patmonardo/gds-kernel/pkg/pregel"
	"github.com/patmonardo/gds-kernel/pkg/validation"
	"github.com/patmonardo/gds-kernel/pkg/values"
)

func init() {
	catalog.DefaultRegistry().MustRegister(catalog.ProcedureDescriptor{
		Name:     "pagerank",
		Category: "centrality",
		SupportedModes: []algorithm.ExecutionMode{algorithm.Stream, algorithm.Stats, algorithm.Mutate},
		Spec:     &PageRankSpec{},
	})
}

// PageRankConfig mirrors pkg/algorithms/pagerank.go's PageRankOptions (spec.md §8 S1).
type PageRankConfig struct {
	DampingFactor float64 `yaml:"dampingFactor" validate:"gt=0,lt=1"`
	MaxIterations int     `yaml:"maxIterations" validate:"gt=0"`
	Tolerance     float64 `yaml:"tolerance" validate:"gt=0"`
}

func DefaultPageRankConfig() PageRankConfig {
	return PageRankConfig{DampingFactor: 0.85, MaxIterations: 50, Tolerance: 1e-6}
}

type PageRankSpec struct {
	config PageRankConfig
}

func (s *PageRankSpec) Name() string { return "pagerank" }

func (s *PageRankSpec) ParseConfig(raw map[string]any) (algorithm.Config, error) {
	cfg := DefaultPageRankConfig()
	if len(raw) > 0 {
		if err := algorithm.DecodeConfig(raw, &cfg, "pagerank.ParseConfig"); err != nil {
			return nil, err
		}
	}
	s.config = cfg
	return algorithm.Config(raw), nil
}

// ValidationConfig runs the fluent validator (pkg/validation.ConfigValidator) over the
// three PageRankConfig fields before load: an open interval for dampingFactor, and
// positivity for maxIterations/tolerance. These are the same bounds the struct tags
// enforce when ParseConfig decodes a non-empty config.
func (s *PageRankSpec) ValidationConfig() algorithm.ValidationConfiguration {
	return algorithm.ValidationConfiguration{
		BeforeLoad: []func(algorithm.Config) error{
			func(algorithm.Config) error {
				cv := validation.NewConfigValidator("pagerank").
					Custom("dampingFactor", func() error {
						if s.config.DampingFactor <= 0 || s.config.DampingFactor >= 1 {
							return kernelerrors.New(kernelerrors.ValidationErrorKind, "pagerank").
								Stage(kernelerrors.StageValidate).
								Key("dampingFactor").
								ValidRange("(0, 1)").
								Build()
						}
						return nil
					}).
					Positive("maxIterations", s.config.MaxIterations).
					PositiveFloat("tolerance", s.config.Tolerance)
				return cv.Validate()
			},
		},
	}
}

// pageRankComputation re-hosts pkg/algorithms/pagerank.go's iteration formula
// (newScore = (1-d)/N + d * sum(incoming rank/outDegree)) as a Pregel vertex program in
// delta form. Every rank starts at (1-d)/N and the initial superstep sends rank/outDegree
// to each out-neighbor; after that a node adds d times its summed incoming shares to its
// rank and forwards only that increase, split over its out-degree, until the increase
// falls below the tolerance. The reducer sums incoming contributions so compute() need
// not iterate senders itself.
type pageRankComputation struct {
	nodeCount     int64
	damping       float64
	tolerance     float64
	outDegree     func(node int64) int
	neighbors     func(node int64) []int64
}

func (c *pageRankComputation) Init(ctx *pregel.InitContext, node int64) {
	ctx.NodeValue.SetDouble("rank", node, (1.0-c.damping)/float64(c.nodeCount))
}

func (c *pageRankComputation) Compute(ctx *pregel.ComputeContext, node int64, messages *pregel.MessageIterator) {
	if ctx.IsInitialSuperstep() {
		rank, _ := ctx.NodeValue.Double("rank", node)
		c.distribute(ctx, node, rank)
		return
	}

	incoming := 0.0
	for {
		v, ok := messages.Next()
		if !ok {
			break
		}
		incoming += v
	}

	delta := c.damping * incoming
	oldRank, _ := ctx.NodeValue.Double("rank", node)
	ctx.NodeValue.SetDouble("rank", node, oldRank+delta)

	if delta < c.tolerance {
		ctx.VoteToHalt(node)
		return
	}
	c.distribute(ctx, node, delta)
}

func (c *pageRankComputation) distribute(ctx *pregel.ComputeContext, node int64, rank float64) {
	outCount := c.outDegree(node)
	if outCount == 0 {
		return
	}
	share := rank / float64(outCount)
	for _, target := range c.neighbors(node) {
		ctx.SendTo(target, share)
	}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

var pageRankSchema = pregel.NewSchema(pregel.PropertyDescriptor{
	Key: "rank", Type: values.Double, Visibility: pregel.Public,
})

func (s *PageRankSpec) Execute(graph *graphstore.Graph, config algorithm.Config, term *concurrency.TerminationFlag) (algorithm.ComputationResult[any], error) {
	nodeCount := graph.NodeCount()
	neighborsOf := func(node int64) []int64 {
		cursors := graph.StreamRelationships(node, 1.0)
		out := make([]int64, len(cursors))
		for i, c := range cursors {
			out[i] = c.Target
		}
		return out
	}
	outDegree := func(node int64) int { return graph.Degree(node, nil) }

	comp := &pageRankComputation{
		nodeCount: nodeCount,
		damping:   s.config.DampingFactor,
		tolerance: s.config.Tolerance,
		outDegree: outDegree,
		neighbors: neighborsOf,
	}

	result, err := pregel.Run(nodeCount, pageRankSchema, comp, pregel.Config{
		MaxIterations: s.config.MaxIterations,
		Concurrency:   concurrency.New(1),
		Reducer:       pregel.ReducerSum,
		Neighbors:     neighborsOf,
	}, term)
	if err != nil {
		return algorithm.ComputationResult[any]{}, err
	}

	ranks := make([]float64, nodeCount)
	col := result.NodeValue.DoubleColumn("rank")
	for i := int64(0); i < nodeCount; i++ {
		ranks[i] = col.Get(i)
	}

	return algorithm.ComputationResult[any]{
		Output:        ranks,
		DidConverge:   result.DidConverge,
		RanIterations: result.RanIterations,
	}, nil
}

func (s *PageRankSpec) ConsumeResult(result algorithm.ComputationResult[any], mode algorithm.ExecutionMode) (any, error) {
	switch mode {
	case algorithm.Stream, algorithm.Stats, algorithm.Mutate:
		return result.Output, nil
	default:
		return nil, kernelerrors.New(kernelerrors.ConsumerErrorKind, "pagerank.ConsumeResult").
			Stage(kernelerrors.StageConsume).
			Build()
	}
}

func (s *PageRankSpec) ProjectionHint() algorithm.ProjectionHint {
	return algorithm.ProjectionHint{PreferredConcurrency: 1}
}
