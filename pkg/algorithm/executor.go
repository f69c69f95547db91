package algorithm

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/patmonardo/gds-kernel/pkg/concurrency"
	"github.com/patmonardo/gds-kernel/pkg/graphstore"
	"github.com/patmonardo/gds-kernel/pkg/kernelerrors"
	"github.com/patmonardo/gds-kernel/pkg/logging"
	"github.com/patmonardo/gds-kernel/pkg/metrics"
)

// GraphCatalog is the narrow slice of pkg/catalog.GraphCatalog the executor needs —
// declared here (not imported from pkg/catalog) so pkg/catalog can depend on
// pkg/algorithm for AlgorithmSpec without an import cycle.
type GraphCatalog interface {
	LoadGraph(name string) (*graphstore.GraphStore, error)
}

// ProcedureExecutor is the kernel's single execution path (spec.md §4.7): "the executor
// is the only place that touches the graph catalog, logging, and timing." No algorithm
// invokes the catalog, a validator, or a logger directly.
type ProcedureExecutor struct {
	catalog               GraphCatalog
	logger                logging.Logger
	requireNonEmptyGraph  bool
}

func NewProcedureExecutor(catalog GraphCatalog, logger logging.Logger) *ProcedureExecutor {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ProcedureExecutor{catalog: catalog, logger: logger, requireNonEmptyGraph: true}
}

// Invocation names the (graph, algorithm) pair plus raw config and requested mode for
// a single Run call.
type Invocation struct {
	GraphName string
	RawConfig map[string]any
	Mode      ExecutionMode
}

// Run drives spec through the exact seven-stage pipeline of spec.md §4.7:
// parse_config -> validate_before_load -> load_graph -> node_count check ->
// validate_after_load -> execute -> consume_result. Each stage's error passes through
// wrapStage, so it comes back as a *kernelerrors.KernelError naming the stage that
// failed, and callers can tell which stage failed without inspecting the executor.
func (e *ProcedureExecutor) Run(spec AlgorithmSpec, inv Invocation, term *concurrency.TerminationFlag) (result any, err error) {
	startedAt := time.Now()
	ranIterations := 0

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("algorithm panicked", logging.Algorithm(spec.Name()),
				logging.Any("panic", r), logging.String("stack", string(debug.Stack())))
			err = kernelerrors.New(kernelerrors.AlgorithmErrorKind, spec.Name()).
				Stage(kernelerrors.StageExecute).
				Cause(fmt.Errorf("panic: %v", r)).
				Build()
			result = nil
		}

		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.DefaultRegistry().RecordAlgorithmRun(spec.Name(), inv.Mode.String(), status, time.Since(startedAt), ranIterations)
	}()

	if term == nil {
		term = concurrency.NewTerminationFlag()
	}

	timer := logging.StartTimer(e.logger, "procedure execute", logging.Algorithm(spec.Name()),
		logging.GraphName(inv.GraphName), logging.Mode(inv.Mode.String()))

	config, err := spec.ParseConfig(inv.RawConfig)
	if err != nil {
		timer.EndError(err)
		return nil, wrapStage(err, kernelerrors.StageParse)
	}

	validation := spec.ValidationConfig()
	for _, v := range validation.BeforeLoad {
		if err := v(config); err != nil {
			timer.EndError(err)
			return nil, wrapStage(err, kernelerrors.StageValidate)
		}
	}

	if err := term.Check(kernelerrors.StageLoad); err != nil {
		timer.EndError(err)
		return nil, err
	}

	graphStore, err := e.catalog.LoadGraph(inv.GraphName)
	if err != nil {
		timer.EndError(err)
		return nil, wrapStage(err, kernelerrors.StageLoad)
	}

	graph := graphStore.Graph()
	if e.requireNonEmptyGraph && graph.NodeCount() == 0 {
		err := kernelerrors.New(kernelerrors.ValidationErrorKind, spec.Name()).
			Stage(kernelerrors.StageValidate).
			Key(inv.GraphName).
			Cause(kernelerrors.ErrGraphEmpty).
			Build()
		timer.EndError(err)
		return nil, err
	}

	for _, v := range validation.AfterLoad {
		if err := v(config, graph); err != nil {
			timer.EndError(err)
			return nil, wrapStage(err, kernelerrors.StageValidate)
		}
	}

	if err := term.Check(kernelerrors.StageExecute); err != nil {
		timer.EndError(err)
		return nil, err
	}

	computationResult, err := spec.Execute(graph, config, term)
	if err != nil {
		timer.EndError(err)
		return nil, wrapStage(err, kernelerrors.StageExecute)
	}
	ranIterations = computationResult.RanIterations

	output, err := spec.ConsumeResult(computationResult, inv.Mode)
	if err != nil {
		timer.EndError(err)
		return nil, wrapStage(err, kernelerrors.StageConsume)
	}

	timer.End()
	return output, nil
}

// wrapStage tags err with stage if it is not already a *kernelerrors.KernelError, and
// fills in stage on a KernelError still carrying the builder's default StageRuntime
// (AlgorithmSpec implementations are free to return plain errors; the executor is the
// one place that guarantees every returned error names its pipeline stage).
func wrapStage(err error, stage kernelerrors.Stage) error {
	if ke, ok := err.(*kernelerrors.KernelError); ok {
		if ke.Stage == "" || ke.Stage == kernelerrors.StageRuntime {
			tagged := *ke
			tagged.Stage = stage
			return &tagged
		}
		return err
	}
	return kernelerrors.New(kernelerrors.AlgorithmErrorKind, string(stage)).
		Stage(stage).
		Cause(err).
		Build()
}
