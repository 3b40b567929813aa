// Package metrics provides Prometheus metrics for the chat logger.
//
// # Metrics
//
//   - chatlog_records_written_total{kind}: records persisted
//   - chatlog_records_dropped_total{reason}: events not persisted
//   - chatlog_purge_runs_total{status}: retention purge runs
//   - chatlog_purge_deleted_total: records deleted by purges
//   - chatlog_retention_scheduled: 1 while a daily purge is registered
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	svc := service.New(store, scheduler, service.WithMetrics(collector))
//
//	go collector.Serve(ctx, ":9090", "/metrics", func(mux *http.ServeMux) {
//		health.Mount(mux, checker, info)
//	})
//
// The collector uses its own registry so tests can create as many
// collectors as they need.
package metrics
