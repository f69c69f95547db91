package metrics

import (
	"strconv"
	"time"
)

// RecordAlgorithmRun records one ProcedureExecutor.Run invocation.
func (r *Registry) RecordAlgorithmRun(algorithm, mode, status string, duration time.Duration, iterations int) {
	r.AlgorithmRunsTotal.WithLabelValues(algorithm, mode, status).Inc()
	r.AlgorithmRunDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
	r.AlgorithmIterations.WithLabelValues(algorithm).Observe(float64(iterations))
}

// RecordPregelRun records one pregel.Run call's superstep count and convergence.
func (r *Registry) RecordPregelRun(supersteps int, didConverge bool) {
	r.PregelSuperstepsTotal.WithLabelValues(strconv.FormatBool(didConverge)).Observe(float64(supersteps))
}

// RecordPregelMessagesSent increments the total SendTo call count by n.
func (r *Registry) RecordPregelMessagesSent(n int) {
	r.PregelMessagesSentTotal.Add(float64(n))
}

// SetPregelActiveNodes sets the most recent superstep's not-yet-halted node count.
func (r *Registry) SetPregelActiveNodes(n int) {
	r.PregelActiveNodes.Set(float64(n))
}

// RecordCatalogGraphLoad records one GraphCatalog.Put call.
func (r *Registry) RecordCatalogGraphLoad(status string, duration time.Duration) {
	r.CatalogGraphLoadsTotal.WithLabelValues(status).Inc()
	r.CatalogGraphLoadDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// SetCatalogGauges sets the catalog's current graph and procedure counts.
func (r *Registry) SetCatalogGauges(graphs, procedures int) {
	r.CatalogGraphsLoaded.Set(float64(graphs))
	r.CatalogProceduresRegistered.Set(float64(procedures))
}

// RecordAutodiffForward records one ComputationContext.Forward pass.
func (r *Registry) RecordAutodiffForward(duration time.Duration, graphNodes int) {
	r.AutodiffForwardDuration.Observe(duration.Seconds())
	r.AutodiffGraphNodes.Observe(float64(graphNodes))
}

// RecordAutodiffBackward records one ComputationContext.Backward pass.
func (r *Registry) RecordAutodiffBackward(duration time.Duration) {
	r.AutodiffBackwardDuration.Observe(duration.Seconds())
}

// SetSystemGauges updates the process-level gauges; the caller supplies the already
// read runtime.MemStats/runtime.NumGoroutine values so this package stays free of a
// runtime-sampling goroutine of its own.
func (r *Registry) SetSystemGauges(uptime time.Duration, goroutines int, allocBytes, sysBytes uint64) {
	r.UptimeSeconds.Set(uptime.Seconds())
	r.GoRoutines.Set(float64(goroutines))
	r.MemoryAllocBytes.Set(float64(allocBytes))
	r.MemorySysBytes.Set(float64(sysBytes))
}
