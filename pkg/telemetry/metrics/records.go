package metrics

import (
	"mercator-hq/chatlogger/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordMetrics tracks chat records flowing into the store.
//
// Metrics:
//   - chatlog_records_written_total: records persisted, by kind
//   - chatlog_records_dropped_total: records not persisted, by reason
type RecordMetrics struct {
	written *prometheus.CounterVec
	dropped *prometheus.CounterVec
}

// NewRecordMetrics creates and registers record metrics with registry.
func NewRecordMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RecordMetrics {
	rm := &RecordMetrics{
		written: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "records_written_total",
				Help:      "Total number of chat records persisted",
			},
			[]string{"kind"},
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "records_dropped_total",
				Help:      "Total number of chat events not persisted",
			},
			[]string{"reason"},
		),
	}

	registry.MustRegister(rm.written, rm.dropped)
	return rm
}
