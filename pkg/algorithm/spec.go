// Package algorithm defines the kernel's plugin contract (spec.md §4.7): every
// algorithm implements AlgorithmSpec, and a single ProcedureExecutor drives every
// invocation through the same linear pipeline, so no algorithm can bypass validation,
// catalog access, or result consumption. Grounded on the teacher's staged query
// executor (pkg/query/executor.go's context-driven plan execution with panic
// recovery and cancellation checks at every stage boundary); DecodeConfig shares its
// go-playground/validator registry with pkg/validation for the validate-before/after-load
// split.
package algorithm

import (
	"github.com/patmonardo/gds-kernel/pkg/concurrency"
	"github.com/patmonardo/gds-kernel/pkg/graphstore"
)

// ExecutionMode selects how a ComputationResult is formatted for the caller (spec.md §6).
type ExecutionMode uint8

const (
	Stream ExecutionMode = iota
	Stats
	Write
	Mutate
)

func (m ExecutionMode) String() string {
	switch m {
	case Stream:
		return "Stream"
	case Stats:
		return "Stats"
	case Write:
		return "Write"
	case Mutate:
		return "Mutate"
	default:
		return "Unknown"
	}
}

// ProjectionHint is an optional advisory an AlgorithmSpec gives the catalog about the
// storage layout it prefers (spec.md §4.7). The kernel is free to ignore it.
type ProjectionHint struct {
	PreferInverseIndex bool
	PreferredConcurrency int
}

// ValidationConfiguration declares which validators run before the graph is loaded
// (config-only) versus after (config-plus-graph), per spec.md §4.7.
type ValidationConfiguration struct {
	BeforeLoad []func(config Config) error
	AfterLoad  []func(config Config, graph *graphstore.Graph) error
}

// Config is the kernel's JSON-like hierarchical algorithm configuration (spec.md §6):
// every AlgorithmSpec defines and parses the schema it accepts out of this map.
type Config map[string]any

func (c Config) String(key string) (string, bool) {
	v, ok := c[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (c Config) Float64(key string) (float64, bool) {
	v, ok := c[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func (c Config) Int(key string) (int, bool) {
	v, ok := c[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}

// ComputationResult is the typed outcome of AlgorithmSpec.Execute, generic over the
// algorithm's own result shape (spec.md §4.7).
type ComputationResult[Output any] struct {
	Output        Output
	DidConverge   bool
	RanIterations int
}

// AlgorithmSpec is the kernel's plugin trait (spec.md §4.7). Output is carried as `any`
// at this interface boundary because Go interfaces cannot be generic over a method's
// own type parameter; concrete specs store and assert their own Output type internally.
type AlgorithmSpec interface {
	Name() string
	ParseConfig(raw map[string]any) (Config, error)
	ValidationConfig() ValidationConfiguration
	Execute(graph *graphstore.Graph, config Config, term *concurrency.TerminationFlag) (ComputationResult[any], error)
	ConsumeResult(result ComputationResult[any], mode ExecutionMode) (any, error)
	ProjectionHint() ProjectionHint
}
