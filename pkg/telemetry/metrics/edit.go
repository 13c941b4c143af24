package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/folio/pkg/config"
)

// EditMetrics tracks structural edits and watched-file re-checks.
type EditMetrics struct {
	editsTotal   *prometheus.CounterVec
	reloadsTotal *prometheus.CounterVec
}

// NewEditMetrics creates and registers edit metrics.
func NewEditMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *EditMetrics {
	em := &EditMetrics{
		editsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "edits_total",
				Help:      "Total number of structural edits by operation and result",
			},
			[]string{"operation", "result"},
		),

		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_reloads_total",
				Help:      "Total number of watched design files re-checked",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(em.editsTotal, em.reloadsTotal)
	return em
}

// RecordEdit records one edit outcome.
func (em *EditMetrics) RecordEdit(operation, result string) {
	em.editsTotal.WithLabelValues(operation, result).Inc()
}

// RecordReload records one re-check.
func (em *EditMetrics) RecordReload(result string) {
	em.reloadsTotal.WithLabelValues(result).Inc()
}

// JournalMetrics tracks the decision journal.
type JournalMetrics struct {
	writesTotal   *prometheus.CounterVec
	prunedTotal   prometheus.Counter
	pruneDuration prometheus.Histogram
}

// NewJournalMetrics creates and registers journal metrics.
func NewJournalMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *JournalMetrics {
	jm := &JournalMetrics{
		writesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "journal_writes_total",
				Help:      "Total number of journal writes by backend and status",
			},
			[]string{"backend", "status"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "journal_records_pruned_total",
				Help:      "Total number of journal records removed by retention",
			},
		),

		pruneDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "journal_prune_duration_seconds",
				Help:      "Duration of journal retention runs in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}

	registry.MustRegister(jm.writesTotal, jm.prunedTotal, jm.pruneDuration)
	return jm
}

// RecordWrite records one journal write.
func (jm *JournalMetrics) RecordWrite(backend string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	jm.writesTotal.WithLabelValues(backend, status).Inc()
}

// RecordPrune records one retention run.
func (jm *JournalMetrics) RecordPrune(n int64, duration time.Duration) {
	jm.prunedTotal.Add(float64(n))
	jm.pruneDuration.Observe(duration.Seconds())
}
