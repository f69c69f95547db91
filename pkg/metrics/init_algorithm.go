package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAlgorithmMetrics() {
	r.AlgorithmRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "kernel_algorithm_runs_total",
			Help: "Total number of ProcedureExecutor.Run invocations",
		},
		[]string{"algorithm", "mode", "status"},
	)

	r.AlgorithmRunDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kernel_algorithm_run_duration_seconds",
			Help:    "AlgorithmSpec.Execute duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 30.0},
		},
		[]string{"algorithm"},
	)

	r.AlgorithmIterations = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kernel_algorithm_iterations",
			Help:    "RanIterations reported by a ComputationResult, per algorithm",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"algorithm"},
	)
}
