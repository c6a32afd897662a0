package worker

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/pkg/config"
)

// WorkerConfig controls the scheduled ingestion worker.
//
// Environment variables:
//   - CRON_SCHEDULE: five-field cron expression (default "*/30 * * * *")
//   - WORKER_TIMEZONE: IANA timezone of the schedule (default "UTC")
//   - INGEST_TIMEOUT: deadline of one run, 1m..2h (default 10m)
//   - WORKER_HEALTH_PORT: port of /health and /ready, 1024..65535 (default 9091)
//   - METRICS_PORT: port of /metrics and /health/breakers, 1024..65535 (default 9090)
//   - INGEST_SOURCES: comma separated source ids (default: every source)
type WorkerConfig struct {
	CronSchedule  string
	Timezone      string
	IngestTimeout time.Duration
	HealthPort    int
	MetricsPort   int
	Sources       []string
}

// DefaultConfig returns a fresh WorkerConfig with default values.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:  "*/30 * * * *",
		Timezone:      "UTC",
		IngestTimeout: 10 * time.Minute,
		HealthPort:    9091,
		MetricsPort:   9090,
		Sources:       entity.SourceIDs(),
	}
}

var (
	validIngestTimeout = config.DurationBetween(time.Minute, 2*time.Hour)
	validPort          = config.IntBetween(1024, 65535)
)

// Validate reports every invalid field at once.
func (c *WorkerConfig) Validate() error {
	var errs []string

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, "cron schedule: "+err.Error())
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, "timezone: "+err.Error())
	}
	if err := validIngestTimeout(c.IngestTimeout); err != nil {
		errs = append(errs, "ingest timeout: "+err.Error())
	}
	if err := validPort(c.HealthPort); err != nil {
		errs = append(errs, "health port: "+err.Error())
	}
	if err := validPort(c.MetricsPort); err != nil {
		errs = append(errs, "metrics port: "+err.Error())
	}
	if c.HealthPort == c.MetricsPort {
		errs = append(errs, "health port and metrics port must differ")
	}
	if len(c.Sources) == 0 {
		errs = append(errs, "sources: at least one source is required")
	}
	for _, id := range c.Sources {
		if _, err := entity.LookupSource(id); err != nil {
			errs = append(errs, "sources: "+err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: [%s]", strings.Join(errs, "; "))
	}
	return nil
}

// LoadConfigFromEnv reads WorkerConfig from the environment. It never fails
// on a bad value: the default is kept, a warning is logged and the config
// fallback metrics are updated. The only error is a health and metrics port
// collision, which no single default can fix.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallback := false

	note := func(field, warning string) {
		fallback = true
		metrics.RecordValidationError(field)
		logger.Warn("Configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}

	if r := config.LoadEnv("CRON_SCHEDULE", cfg.CronSchedule, config.ParseString, config.ValidateCronSchedule); r.FallbackApplied {
		note("cron_schedule", r.Warning)
	} else {
		cfg.CronSchedule = r.Value
	}

	if r := config.LoadEnv("WORKER_TIMEZONE", cfg.Timezone, config.ParseString, config.ValidateTimezone); r.FallbackApplied {
		note("timezone", r.Warning)
	} else {
		cfg.Timezone = r.Value
	}

	if r := config.LoadEnv("INGEST_TIMEOUT", cfg.IngestTimeout, config.ParseDuration, validIngestTimeout); r.FallbackApplied {
		note("ingest_timeout", r.Warning)
	} else {
		cfg.IngestTimeout = r.Value
	}

	if r := config.LoadEnv("WORKER_HEALTH_PORT", cfg.HealthPort, config.ParseInt, validPort); r.FallbackApplied {
		note("health_port", r.Warning)
	} else {
		cfg.HealthPort = r.Value
	}

	if r := config.LoadEnv("METRICS_PORT", cfg.MetricsPort, config.ParseInt, validPort); r.FallbackApplied {
		note("metrics_port", r.Warning)
	} else {
		cfg.MetricsPort = r.Value
	}

	// 不明なソース ID が一つでもあれば全ソースに戻す
	if r := config.LoadEnv("INGEST_SOURCES", cfg.Sources, entity.ParseSourceList, nil); r.FallbackApplied {
		note("sources", r.Warning)
	} else {
		cfg.Sources = r.Value
	}

	metrics.SetFallbackActive(fallback)
	metrics.RecordLoadTimestamp()

	if cfg.HealthPort == cfg.MetricsPort {
		return nil, fmt.Errorf("WORKER_HEALTH_PORT and METRICS_PORT must differ (both %d)", cfg.HealthPort)
	}
	return &cfg, nil
}
