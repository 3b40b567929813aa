// Package tracing exports OpenTelemetry spans for chat event writes and
// retention purges.
//
// Spans are sent over OTLP gRPC. When tracing is disabled New returns a
// tracer backed by a no-op provider, so callers never need to check.
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//		return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	svc := service.New(store, scheduler, service.WithTracerProvider(tracer.Provider()))
//
// Span names:
//
//   - chatlog.handle_event: one host event, with chat.event_type and chat.kind
//   - chatlog.purge: one retention purge, with chat.table and chat.deleted_count
package tracing
