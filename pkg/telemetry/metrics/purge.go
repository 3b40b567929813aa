package metrics

import (
	"mercator-hq/chatlogger/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// PurgeMetrics tracks the retention purge.
//
// Metrics:
//   - chatlog_purge_runs_total: purge runs, by status
//   - chatlog_purge_deleted_total: records deleted by purges
//   - chatlog_retention_scheduled: 1 while a daily purge is registered
type PurgeMetrics struct {
	runs      *prometheus.CounterVec
	deleted   prometheus.Counter
	scheduled prometheus.Gauge
}

// NewPurgeMetrics creates and registers purge metrics with registry.
func NewPurgeMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *PurgeMetrics {
	pm := &PurgeMetrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "purge_runs_total",
				Help:      "Total number of retention purge runs",
			},
			[]string{"status"},
		),
		deleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "purge_deleted_total",
				Help:      "Total number of chat records deleted by retention purges",
			},
		),
		scheduled: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "retention_scheduled",
				Help:      "Whether a daily retention purge is scheduled (1) or not (0)",
			},
		),
	}

	registry.MustRegister(pm.runs, pm.deleted, pm.scheduled)
	return pm
}
