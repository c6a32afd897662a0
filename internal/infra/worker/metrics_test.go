package worker

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewWorkerMetrics_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWorkerMetrics(reg)
	m.RecordRun("success", 1.5)
	m.RecordLoadTimestamp()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"worker_ingest_runs_total",
		"worker_ingest_run_duration_seconds",
		"worker_config_load_timestamp",
	} {
		if !names[want] {
			t.Errorf("metric %s not registered", want)
		}
	}
}

func TestWorkerMetrics_RecordSources(t *testing.T) {
	m := NewWorkerMetrics(prometheus.NewRegistry())

	m.RecordSources(2, 1, 15)
	m.RecordSources(3, 0, 5)

	if got := testutil.ToFloat64(m.SourcesTotal.WithLabelValues("success")); got != 5 {
		t.Errorf("success sources = %v, want 5", got)
	}
	if got := testutil.ToFloat64(m.SourcesTotal.WithLabelValues("failure")); got != 1 {
		t.Errorf("failed sources = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ArticlesInserted); got != 20 {
		t.Errorf("inserted = %v, want 20", got)
	}
}

func TestWorkerMetrics_RecordRun(t *testing.T) {
	m := NewWorkerMetrics(prometheus.NewRegistry())

	m.RecordRun("partial", 3)
	m.RecordRun("partial", 4)
	m.RecordRun("failure", 1)

	if got := testutil.ToFloat64(m.RunsTotal.WithLabelValues("partial")); got != 2 {
		t.Errorf("partial runs = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(m.RunDurationSeconds); got != 1 {
		t.Errorf("expected one histogram series, got %d", got)
	}
}

func TestWorkerMetrics_RecordLastSuccess(t *testing.T) {
	m := NewWorkerMetrics(prometheus.NewRegistry())

	m.RecordLastSuccess()

	if got := testutil.ToFloat64(m.LastSuccessTimestamp); got <= 0 {
		t.Errorf("expected a timestamp, got %v", got)
	}
}
