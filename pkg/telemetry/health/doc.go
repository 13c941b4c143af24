// Package health reports whether a long-running folio process is alive and
// whether the things it depends on still work.
//
// The watch command registers one check per dependency and mounts the
// handlers next to the metrics endpoint:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("journal", func(ctx context.Context) error {
//	    _, err := store.Count(ctx, nil)
//	    return err
//	})
//	mux.Handle("/health", checker.LivenessHandler())
//	mux.Handle("/ready", checker.ReadinessHandler())
//	mux.Handle("/version", health.VersionHandler(version, commit, buildDate))
//
// Liveness always answers 200 while the process serves HTTP. Readiness runs
// every registered check concurrently, each under its own timeout, and
// answers 503 when any of them fails.
package health
