package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAutodiffMetrics() {
	r.AutodiffForwardDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kernel_autodiff_forward_duration_seconds",
			Help:    "ComputationContext.Forward duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
		},
	)

	r.AutodiffBackwardDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kernel_autodiff_backward_duration_seconds",
			Help:    "ComputationContext.Backward duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
		},
	)

	r.AutodiffGraphNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kernel_autodiff_graph_nodes",
			Help:    "Number of Variable nodes visited by one Forward pass",
			Buckets: []float64{1, 10, 100, 1000, 10000},
		},
	)
}
