// Package service wires the chat log together: it owns the current table
// binding and retention policy, writes adapted host events, and keeps the
// daily purge trigger in step with configuration reloads.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mercator-hq/chatlogger/pkg/chatlog"
	"mercator-hq/chatlogger/pkg/chatlog/adapter"
	"mercator-hq/chatlogger/pkg/chatlog/retention"
	"mercator-hq/chatlogger/pkg/chatlog/storage"
	"mercator-hq/chatlogger/pkg/telemetry/metrics"
	"mercator-hq/chatlogger/pkg/telemetry/tracing"
)

// DefaultTable is the table used when none is configured.
const DefaultTable = "chatlog"

// Config is the raw configuration consumed on each (re)load.
type Config struct {
	// TableName is the table all records are written to.
	TableName string

	// MaxAge is the retention period ("30d", "6m", "1y", "0" = forever).
	MaxAge string

	// Hour and Minute are the daily purge time in TimeZone.
	Hour   int
	Minute int

	// TimeZone is the host-global zone name.
	TimeZone string

	// Migrate creates the table if it does not exist.
	Migrate bool
}

// state is one immutable configuration snapshot. Reload replaces it as a
// whole; readers load it once per operation.
type state struct {
	writer *chatlog.Writer
	policy retention.Policy
}

// Service is the chat logger.
type Service struct {
	store   storage.Store
	binding *retention.Binding
	purger  *retention.Purger
	clock   func() time.Time
	metrics *metrics.Collector
	tracer  trace.Tracer
	base    *slog.Logger
	logger  *slog.Logger

	// reloadMu serializes Reload and Close.
	reloadMu sync.Mutex
	current  atomic.Pointer[state]
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for message_time and purge cutoffs.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets the base logger. The service, writer and purger each
// derive their own component logger from it.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.base = logger
		}
	}
}

// WithMetrics records activity on collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(s *Service) {
		s.metrics = collector
	}
}

// WithTracerProvider records spans on provider instead of the global one.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(s *Service) {
		if provider != nil {
			s.tracer = provider.Tracer(tracing.InstrumentationName)
		}
	}
}

// New creates a service writing to store and scheduling purges on
// scheduler. Call Reload before handling events.
func New(store storage.Store, scheduler retention.Scheduler, opts ...Option) *Service {
	s := &Service{
		store:   store,
		binding: retention.NewBinding(scheduler),
		clock:   time.Now,
		tracer:  otel.Tracer(tracing.InstrumentationName),
		base:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.base.With("component", "chatlog.service")

	s.purger = retention.NewPurger(store,
		retention.WithPurgeClock(s.clock),
		retention.WithPurgeLogger(s.base.With("component", "chatlog.purger")),
	)
	return s
}

// Reload applies cfg: it resolves the table, recomputes the retention
// policy, and replaces the purge trigger.
//
// Configuration problems are recovered with defaults and logged. Reload
// only fails when the table cannot be prepared or the trigger cannot be
// registered; in both cases retention is left unscheduled.
func (s *Service) Reload(ctx context.Context, cfg Config) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	table := cfg.TableName
	if table == "" {
		table = DefaultTable
		s.logger.Debug("using default value for table name", "table", table)
	} else {
		s.logger.Debug("using table to store log", "table", table)
	}
	if err := chatlog.ValidateTableName(table); err != nil {
		return err
	}

	policy, err := retention.ComputePolicy(cfg.MaxAge, cfg.Hour, cfg.Minute, cfg.TimeZone)
	if err != nil {
		s.logger.Warn("retention configuration recovered with defaults",
			"max_age", cfg.MaxAge,
			"time_zone", cfg.TimeZone,
			"error", err,
		)
	}
	s.logger.Debug("max age resolved", "max_age", cfg.MaxAge, "days", policy.MaxAgeDays)

	// The old trigger goes before anything else changes.
	s.binding.Clear()
	s.metrics.SetRetentionScheduled(false)

	if cfg.Migrate {
		if err := s.store.Migrate(ctx, table); err != nil {
			return fmt.Errorf("failed to prepare table %q: %w", table, err)
		}
	}

	writer := chatlog.NewWriter(s.store, s.store.Dialect(), table,
		chatlog.WithClock(s.clock),
		chatlog.WithLogger(s.base.With("component", "chatlog.writer")),
	)
	s.current.Store(&state{writer: writer, policy: policy})

	if err := s.binding.Apply(policy, s.scheduledPurge); err != nil {
		return err
	}
	s.metrics.SetRetentionScheduled(s.binding.Scheduled())

	return nil
}

// HandleEvent logs one host event. It is called serially by the event
// source.
//
// Write failures are logged and the record is dropped; HandleEvent still
// returns nil for them. A private message without a target is a broken
// event contract and is returned as an error.
func (s *Service) HandleEvent(ctx context.Context, ev adapter.Event) (err error) {
	ctx, span := s.tracer.Start(ctx, "chatlog.handle_event",
		trace.WithAttributes(attribute.String("chat.event_type", string(ev.Type))))
	defer func() { tracing.End(span, err) }()

	st := s.current.Load()
	if st == nil {
		return errors.New("chat logger not configured: call Reload first")
	}

	rec, err := adapter.Adapt(ev)
	if err != nil {
		s.logger.Error("chat event violates the event contract",
			"event_type", ev.Type,
			"error", err,
		)
		s.metrics.RecordDropped("contract_violation")
		return err
	}
	if rec == nil {
		span.SetAttributes(attribute.Bool("chat.ignored", true))
		s.metrics.RecordDropped("ignored")
		return nil
	}
	span.SetAttributes(
		attribute.String("chat.kind", string(rec.Kind())),
		attribute.String("chat.table", st.writer.Table()),
	)

	if _, saveErr := st.writer.Save(ctx, rec); saveErr != nil {
		reason := "store_error"
		if errors.Is(saveErr, chatlog.ErrNotInserted) {
			reason = "not_inserted"
		}
		span.RecordError(saveErr)
		span.SetAttributes(attribute.String("chat.dropped", reason))
		s.metrics.RecordDropped(reason)
		return nil
	}

	s.metrics.RecordWritten(string(rec.Kind()))
	return nil
}

// Purge runs the retention purge against the current snapshot and reports
// success. It is the job bound to the daily trigger.
func (s *Service) Purge(ctx context.Context) bool {
	_, err := s.PurgeNow(ctx)
	return err == nil
}

// PurgeNow runs the retention purge and returns the number of deleted
// records.
func (s *Service) PurgeNow(ctx context.Context) (deleted int64, err error) {
	ctx, span := s.tracer.Start(ctx, "chatlog.purge")
	defer func() { tracing.End(span, err) }()

	st := s.current.Load()
	if st == nil {
		s.logger.Warn("purge requested before configuration was loaded")
		s.metrics.RecordPurge("skipped", 0)
		return 0, retention.ErrRetentionDisabled
	}
	span.SetAttributes(
		attribute.String("chat.table", st.writer.Table()),
		attribute.Int("chat.max_age_days", st.policy.MaxAgeDays),
	)

	start := time.Now()
	deleted, err = s.purger.Purge(ctx, st.writer.Table(), st.policy.MaxAgeDays)
	switch {
	case errors.Is(err, retention.ErrRetentionDisabled):
		s.metrics.RecordPurge("skipped", 0)
	case err != nil:
		s.logger.Warn("purge failed", "error", err, "duration", time.Since(start))
		s.metrics.RecordPurge("error", 0)
	default:
		span.SetAttributes(attribute.Int64("chat.deleted_count", deleted))
		s.metrics.RecordPurge("success", deleted)
	}
	return deleted, err
}

// Policy returns the current retention policy.
func (s *Service) Policy() retention.Policy {
	if st := s.current.Load(); st != nil {
		return st.policy
	}
	return retention.Policy{}
}

// Table returns the current table name.
func (s *Service) Table() string {
	if st := s.current.Load(); st != nil {
		return st.writer.Table()
	}
	return ""
}

// Scheduled reports whether a purge trigger is registered.
func (s *Service) Scheduled() bool {
	return s.binding.Scheduled()
}

// NextPurge returns the next scheduled purge time, if known.
func (s *Service) NextPurge() *time.Time {
	return s.binding.Next()
}

// CheckStore reports whether the store is reachable.
func (s *Service) CheckStore(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// CheckRetention reports an error when the current policy deletes
// messages but no purge trigger is registered.
func (s *Service) CheckRetention(ctx context.Context) error {
	st := s.current.Load()
	if st == nil {
		return errors.New("chat logger not configured")
	}
	if st.policy.Enabled() && !s.binding.Scheduled() {
		return fmt.Errorf("retention of %d days has no purge trigger", st.policy.MaxAgeDays)
	}
	return nil
}

// Close removes the purge trigger. The store is owned by the caller.
func (s *Service) Close() {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	s.binding.Clear()
	s.metrics.SetRetentionScheduled(false)
}

func (s *Service) scheduledPurge() {
	s.logger.Info("starting scheduled chat log purge")
	s.Purge(context.Background())
}
