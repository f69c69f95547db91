package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initCatalogMetrics() {
	r.CatalogGraphsLoaded = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "kernel_catalog_graphs_loaded",
			Help: "Number of GraphStores currently held by the catalog",
		},
	)

	r.CatalogProceduresRegistered = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "kernel_catalog_procedures_registered",
			Help: "Number of algorithms registered in the procedure registry",
		},
	)

	r.CatalogGraphLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "kernel_catalog_graph_loads_total",
			Help: "Total number of GraphCatalog.Put calls",
		},
		[]string{"status"},
	)

	r.CatalogGraphLoadDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kernel_catalog_graph_load_duration_seconds",
			Help:    "GraphCatalog.Put duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"status"},
	)
}
