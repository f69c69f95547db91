// Package kernelalgo hosts the two reference AlgorithmSpecs named by the end-to-end
// scenarios (spec.md §8 S1, S2): sum aggregation and PageRank, both driven by
// pkg/pregel rather than a bespoke loop, per pkg/algorithms/pagerank.go's iteration
// formula re-hosted on the BSP runtime instead of GetIncomingEdges map lookups.
package kernelalgo

import (
	"fmt"

	"github.com/patmonardo/gds-kernel/pkg/algorithm"
	"github.com/patmonardo/gds-kernel/pkg/catalog"
	"github.com/patmonardo/gds-kernel/pkg/concurrency"
	"github.com/patmonardo/gds-kernel/pkg/constraints"
	"github.com/patmonardo/gds-kernel/pkg/graphstore"
	"github.com/patmonardo/gds-kernel/pkg/kernelerrors"
	"github.com/patmonardo/gds-kernel/pkg/pregel"
	"github.com/patmonardo/gds-kernel/pkg/values"
)

func init() {
	catalog.DefaultRegistry().MustRegister(catalog.ProcedureDescriptor{
		Name:     "sum",
		Category: "aggregation",
		SupportedModes: []algorithm.ExecutionMode{algorithm.Stream, algorithm.Stats},
		Spec:     &SumSpec{},
	})
}

// SumConfig is "sum"'s accepted config: the node property key to total (spec.md §8 S2).
type SumConfig struct {
	PropertyKey string `yaml:"propertyKey" validate:"required"`
}

// SumSpec totals a Double node property across every node, via a single-superstep
// Pregel run: Init copies the property into NodeValue and votes to halt immediately
// (the S4 vote-to-halt-in-init shape), so the sum is read back from NodeValue's
// column after Run returns.
type SumSpec struct {
	config      SumConfig
	propertyCol values.PropertyValues
}

func (s *SumSpec) Name() string { return "sum" }

func (s *SumSpec) ParseConfig(raw map[string]any) (algorithm.Config, error) {
	var cfg SumConfig
	if err := algorithm.DecodeConfig(raw, &cfg, "sum.ParseConfig"); err != nil {
		return nil, err
	}
	s.config = cfg
	return algorithm.Config(raw), nil
}

// ValidationConfig runs the property through a constraints.PropertyConstraint rather
// than hand-rolling an existence check: the same Required-property rule a caller could
// compose into a constraints.Validator alongside range/cardinality/uniqueness checks.
func (s *SumSpec) ValidationConfig() algorithm.ValidationConfiguration {
	return algorithm.ValidationConfiguration{
		AfterLoad: []func(algorithm.Config, *graphstore.Graph) error{
			func(_ algorithm.Config, g *graphstore.Graph) error {
				propertyConstraint := &constraints.PropertyConstraint{
					Labels:       graphstore.LabelSetKey(""),
					PropertyName: s.config.PropertyKey,
					Required:     true,
				}
				violations, err := propertyConstraint.Validate(g)
				if err != nil {
					return kernelerrors.New(kernelerrors.ConfigErrorKind, "sum").
						Stage(kernelerrors.StageValidate).
						Key(s.config.PropertyKey).
						Cause(err).
						Build()
				}
				if len(violations) > 0 {
					return kernelerrors.New(kernelerrors.ConfigErrorKind, "sum").
						Stage(kernelerrors.StageValidate).
						Key(s.config.PropertyKey).
						Cause(fmt.Errorf("%s", violations[0].Message)).
						Build()
				}

				col, err := g.NodeProperties(graphstore.LabelSetKey(""), s.config.PropertyKey)
				if err != nil {
					return kernelerrors.New(kernelerrors.ConfigErrorKind, "sum").
						Stage(kernelerrors.StageValidate).
						Key(s.config.PropertyKey).
						Cause(err).
						Build()
				}
				s.propertyCol = col
				return nil
			},
		},
	}
}

type sumComputation struct {
	property values.PropertyValues
}

func (c *sumComputation) Init(ctx *pregel.InitContext, node int64) {
	v, err := c.property.DoubleValue(node)
	if err != nil {
		v = 0
	}
	ctx.NodeValue.SetDouble("value", node, v)
	ctx.VoteToHalt(node)
}

func (c *sumComputation) Compute(ctx *pregel.ComputeContext, node int64, messages *pregel.MessageIterator) {
	// never scheduled again: every node halts in superstep 0 and no one sends
}

var sumSchema = pregel.NewSchema(pregel.PropertyDescriptor{
	Key: "value", Type: values.Double, Visibility: pregel.Public,
})

func (s *SumSpec) Execute(graph *graphstore.Graph, config algorithm.Config, term *concurrency.TerminationFlag) (algorithm.ComputationResult[any], error) {
	result, err := pregel.Run(graph.NodeCount(), sumSchema, &sumComputation{property: s.propertyCol},
		pregel.Config{MaxIterations: 1, Concurrency: concurrency.New(1)}, term)
	if err != nil {
		return algorithm.ComputationResult[any]{}, err
	}

	col := result.NodeValue.DoubleColumn("value")
	var total float64
	for i := int64(0); i < graph.NodeCount(); i++ {
		total += col.Get(i)
	}

	return algorithm.ComputationResult[any]{
		Output:        total,
		DidConverge:   result.DidConverge,
		RanIterations: result.RanIterations,
	}, nil
}

func (s *SumSpec) ConsumeResult(result algorithm.ComputationResult[any], mode algorithm.ExecutionMode) (any, error) {
	switch mode {
	case algorithm.Stream, algorithm.Stats:
		return result.Output, nil
	default:
		return nil, kernelerrors.New(kernelerrors.ConsumerErrorKind, "sum.ConsumeResult").
			Stage(kernelerrors.StageConsume).
			ValidRange(fmt.Sprintf("%v, %v", algorithm.Stream, algorithm.Stats)).
			Build()
	}
}

func (s *SumSpec) ProjectionHint() algorithm.ProjectionHint { return algorithm.ProjectionHint{} }
