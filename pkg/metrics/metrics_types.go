package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every Prometheus metric the kernel exposes.
type Registry struct {
	// Catalog metrics
	CatalogGraphsLoaded        prometheus.Gauge
	CatalogProceduresRegistered prometheus.Gauge
	CatalogGraphLoadsTotal     *prometheus.CounterVec
	CatalogGraphLoadDuration   *prometheus.HistogramVec

	// Algorithm (ProcedureExecutor) metrics
	AlgorithmRunsTotal    *prometheus.CounterVec
	AlgorithmRunDuration  *prometheus.HistogramVec
	AlgorithmIterations   *prometheus.HistogramVec

	// Pregel (BSP runtime) metrics
	PregelSuperstepsTotal   *prometheus.HistogramVec
	PregelActiveNodes       prometheus.Gauge
	PregelMessagesSentTotal prometheus.Counter

	// Autodiff (computation-graph) metrics
	AutodiffForwardDuration  prometheus.Histogram
	AutodiffBackwardDuration prometheus.Histogram
	AutodiffGraphNodes       prometheus.Histogram

	// System metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide metrics registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with every metric initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initCatalogMetrics()
	r.initAlgorithmMetrics()
	r.initPregelMetrics()
	r.initAutodiffMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
