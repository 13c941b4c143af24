// Package metrics provides Prometheus metrics for folio.
//
// # Metrics
//
//   - containment_checks_total{api,element_type,result}
//   - containment_check_duration_seconds{api}
//   - containment_violations_total{code}
//   - edits_total{operation,result}
//   - watch_reloads_total{result}
//   - journal_writes_total{backend,status}
//   - journal_records_pruned_total, journal_prune_duration_seconds
//
// Names are prefixed with the configured namespace and subsystem
// (folio_design_ by default).
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordCheck("element", "Label", true, 3*time.Microsecond, nil)
//
//	go collector.Serve(ctx) // exposes cfg.Telemetry.Metrics.Path
//
// Element type labels pass through a CardinalityLimiter; once the limit is
// reached new types are counted as "other".
package metrics
