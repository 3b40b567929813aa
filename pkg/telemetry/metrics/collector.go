package metrics

import (
	"fmt"
	"sync"

	"mercator-hq/chatlogger/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric exported by the chat logger.
//
// All recording methods are safe to call on a nil *Collector, so components
// can hold an optional collector without guarding each call.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	recordMetrics *RecordMetrics
	purgeMetrics  *PurgeMetrics

	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a collector registering on registry. If registry is
// nil a private registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "chatlog"
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		recordMetrics:      NewRecordMetrics(cfg, registry),
		purgeMetrics:       NewPurgeMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(100),
	}
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordWritten counts a persisted record of the given kind ("ALL", "TEAM", "PM").
func (c *Collector) RecordWritten(kind string) {
	if !c.enabled() {
		return
	}
	c.recordMetrics.written.WithLabelValues(kind).Inc()
}

// RecordDropped counts a record that was not persisted.
//
// Reasons: "ignored", "contract_violation", "store_error", "not_inserted".
func (c *Collector) RecordDropped(reason string) {
	if !c.enabled() {
		return
	}
	if !c.cardinalityLimiter.Allow(fmt.Sprintf("dropped:%s", reason)) {
		reason = "other"
	}
	c.recordMetrics.dropped.WithLabelValues(reason).Inc()
}

// RecordPurge counts a purge run and the records it deleted.
//
// Statuses: "success", "error", "skipped".
func (c *Collector) RecordPurge(status string, deleted int64) {
	if !c.enabled() {
		return
	}
	c.purgeMetrics.runs.WithLabelValues(status).Inc()
	if deleted > 0 {
		c.purgeMetrics.deleted.Add(float64(deleted))
	}
}

// SetRetentionScheduled sets the retention gauge: 1 when a purge trigger
// is registered, 0 otherwise.
func (c *Collector) SetRetentionScheduled(scheduled bool) {
	if !c.enabled() {
		return
	}
	if scheduled {
		c.purgeMetrics.scheduled.Set(1)
	} else {
		c.purgeMetrics.scheduled.Set(0)
	}
}

// RecordsWritten exposes the written counter vector.
func (c *Collector) RecordsWritten() *prometheus.CounterVec { return c.recordMetrics.written }

// RecordsDropped exposes the dropped counter vector.
func (c *Collector) RecordsDropped() *prometheus.CounterVec { return c.recordMetrics.dropped }

// PurgeRuns exposes the purge run counter vector.
func (c *Collector) PurgeRuns() *prometheus.CounterVec { return c.purgeMetrics.runs }

// PurgeDeleted exposes the purged record counter.
func (c *Collector) PurgeDeleted() prometheus.Counter { return c.purgeMetrics.deleted }

// RetentionScheduled exposes the retention gauge.
func (c *Collector) RetentionScheduled() prometheus.Gauge { return c.purgeMetrics.scheduled }

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter caps the number of unique label values a metric
// may grow to.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a limiter allowing maxCardinality label sets.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether labelSet is already known or still fits under
// the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}
	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
