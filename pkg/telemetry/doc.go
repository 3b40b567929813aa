// Package telemetry groups the chat logger's observability packages.
//
//   - logging: slog construction with credential and chat text redaction
//   - metrics: Prometheus counters for writes, drops and purges
//   - tracing: OpenTelemetry spans for event handling and purges
//   - health: liveness and readiness probes served next to /metrics
//
// Each package stands alone; cmd/chatlogger wires them from the
// telemetry section of the configuration.
package telemetry
