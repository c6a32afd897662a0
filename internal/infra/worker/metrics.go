package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"newsdesk/internal/pkg/config"
)

// WorkerMetrics are the Prometheus metrics of the ingestion worker.
//
// Besides the embedded worker_config_* metrics it exposes:
//   - worker_ingest_runs_total{status}: scheduled runs by outcome
//   - worker_ingest_run_duration_seconds: run duration
//   - worker_ingest_sources_total{result}: per-source outcomes
//   - worker_ingest_articles_inserted_total: drafts stored by scheduled runs
//   - worker_ingest_last_success_timestamp: end of the last run with no failed source
type WorkerMetrics struct {
	*config.ConfigMetrics

	RunsTotal            *prometheus.CounterVec
	RunDurationSeconds   prometheus.Histogram
	SourcesTotal         *prometheus.CounterVec
	ArticlesInserted     prometheus.Counter
	LastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics registers the worker metrics with reg; nil means the
// default registerer, so call it once per process.
func NewWorkerMetrics(reg prometheus.Registerer) *WorkerMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker", reg),

		RunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_ingest_runs_total",
			Help: "Total number of scheduled ingestion runs by status (success/partial/failure)",
		}, []string{"status"}),

		RunDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_ingest_run_duration_seconds",
			Help:    "Duration of scheduled ingestion runs in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),

		SourcesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_ingest_sources_total",
			Help: "Total number of sources processed by scheduled runs by result",
		}, []string{"result"}),

		ArticlesInserted: f.NewCounter(prometheus.CounterOpts{
			Name: "worker_ingest_articles_inserted_total",
			Help: "Total number of draft articles stored by scheduled runs",
		}),

		LastSuccessTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "worker_ingest_last_success_timestamp",
			Help: "Unix timestamp of the last run in which every source succeeded",
		}),
	}
}

// RecordRun records the outcome of one run.
func (m *WorkerMetrics) RecordRun(status string, seconds float64) {
	m.RunsTotal.WithLabelValues(status).Inc()
	m.RunDurationSeconds.Observe(seconds)
}

// RecordSources adds per-source counts and inserted articles.
func (m *WorkerMetrics) RecordSources(succeeded, failed, inserted int) {
	m.SourcesTotal.WithLabelValues("success").Add(float64(succeeded))
	m.SourcesTotal.WithLabelValues("failure").Add(float64(failed))
	m.ArticlesInserted.Add(float64(inserted))
}

// RecordLastSuccess stamps the current time.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.LastSuccessTimestamp.SetToCurrentTime()
}
