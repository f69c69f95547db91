package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPregelMetrics() {
	r.PregelSuperstepsTotal = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kernel_pregel_supersteps",
			Help:    "Supersteps run per pregel.Run call before convergence or max_iterations",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"converged"},
	)

	r.PregelActiveNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "kernel_pregel_active_nodes",
			Help: "Nodes that have not voted to halt in the most recent superstep",
		},
	)

	r.PregelMessagesSentTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "kernel_pregel_messages_sent_total",
			Help: "Total number of SendTo calls across all pregel.Run invocations",
		},
	)
}
