// Package telemetry groups folio's observability packages.
//
//   - logging: slog setup from configuration, with context helpers that tag
//     records with the command, document and operation
//   - metrics: Prometheus counters and histograms for containment checks,
//     edits, watch reloads and the decision journal
//   - health: liveness and readiness endpoints served by the watch command
//
// Metrics and health endpoints share one HTTP server:
//
//	checker := health.New(2 * time.Second)
//	go collector.Serve(ctx, func(mux *http.ServeMux) {
//	    checker.Register(mux, version, commit, buildDate)
//	})
package telemetry
