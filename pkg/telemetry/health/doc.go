// Package health serves liveness and readiness probes for the chat logger.
//
// The process is live as long as it answers /health. It is ready when every
// registered check passes; the run command registers two:
//
//   - store: the configured database answers a ping
//   - retention: a purge trigger exists whenever the policy deletes messages
//
// Mount adds /health, /ready and /version to an existing mux, so the probes
// share the metrics listener:
//
//	checker := health.New(2 * time.Second)
//	checker.Register("store", svc.CheckStore)
//	checker.Register("retention", svc.CheckRetention)
//	health.Mount(mux, checker, health.BuildInfo{Version: "0.1.0"})
package health
