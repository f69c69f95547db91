package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.AlgorithmRunsTotal == nil {
		t.Error("AlgorithmRunsTotal not initialized")
	}
	if r.PregelSuperstepsTotal == nil {
		t.Error("PregelSuperstepsTotal not initialized")
	}
	if r.AutodiffForwardDuration == nil {
		t.Error("AutodiffForwardDuration not initialized")
	}
	if r.CatalogGraphsLoaded == nil {
		t.Error("CatalogGraphsLoaded not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordAlgorithmRun(t *testing.T) {
	r := NewRegistry()

	r.RecordAlgorithmRun("pagerank", "stream", "success", 50*time.Millisecond, 12)
	r.RecordAlgorithmRun("pagerank", "stream", "success", 80*time.Millisecond, 20)
	r.RecordAlgorithmRun("pagerank", "stream", "error", 5*time.Millisecond, 0)

	successCounter, err := r.AlgorithmRunsTotal.GetMetricWithLabelValues("pagerank", "stream", "success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := successCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Errorf("Success counter = %v, want 2", metric.Counter.GetValue())
	}

	errorCounter, err := r.AlgorithmRunsTotal.GetMetricWithLabelValues("pagerank", "stream", "error")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if err := errorCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1 {
		t.Errorf("Error counter = %v, want 1", metric.Counter.GetValue())
	}
}

func TestRecordPregelRun(t *testing.T) {
	r := NewRegistry()

	r.RecordPregelRun(7, true)

	hist, err := r.PregelSuperstepsTotal.GetMetricWithLabelValues("true")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := hist.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 1 {
		t.Errorf("Histogram sample count = %v, want 1", metric.Histogram.GetSampleCount())
	}
}

func TestRecordPregelMessagesSent(t *testing.T) {
	r := NewRegistry()

	r.RecordPregelMessagesSent(3)
	r.RecordPregelMessagesSent(4)

	var metric dto.Metric
	if err := r.PregelMessagesSentTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 7 {
		t.Errorf("Messages sent = %v, want 7", metric.Counter.GetValue())
	}
}

func TestSetCatalogGauges(t *testing.T) {
	r := NewRegistry()

	r.SetCatalogGauges(3, 2)

	var metric dto.Metric
	if err := r.CatalogGraphsLoaded.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 3 {
		t.Errorf("CatalogGraphsLoaded = %v, want 3", metric.Gauge.GetValue())
	}

	if err := r.CatalogProceduresRegistered.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 2 {
		t.Errorf("CatalogProceduresRegistered = %v, want 2", metric.Gauge.GetValue())
	}
}

func TestRecordAutodiffForwardAndBackward(t *testing.T) {
	r := NewRegistry()

	r.RecordAutodiffForward(2*time.Millisecond, 6)
	r.RecordAutodiffBackward(1 * time.Millisecond)

	var metric dto.Metric
	if err := r.AutodiffForwardDuration.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 1 {
		t.Errorf("Forward sample count = %v, want 1", metric.Histogram.GetSampleCount())
	}
}

func TestSetSystemGauges(t *testing.T) {
	r := NewRegistry()

	r.SetSystemGauges(10*time.Second, 5, 1024, 2048)

	var metric dto.Metric
	if err := r.UptimeSeconds.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 10 {
		t.Errorf("UptimeSeconds = %v, want 10", metric.Gauge.GetValue())
	}

	if err := r.GoRoutines.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 5 {
		t.Errorf("GoRoutines = %v, want 5", metric.Gauge.GetValue())
	}
}
