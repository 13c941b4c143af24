package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/folio/pkg/config"
)

// ContainmentMetrics tracks validator decisions.
//
// Metrics:
//   - folio_design_containment_checks_total: decisions by api, element type and result
//   - folio_design_containment_check_duration_seconds: validator latency by api
//   - folio_design_containment_violations_total: refusals by violation code
type ContainmentMetrics struct {
	checksTotal    *prometheus.CounterVec
	checkDuration  *prometheus.HistogramVec
	violationTotal *prometheus.CounterVec
}

// NewContainmentMetrics creates and registers containment metrics.
func NewContainmentMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ContainmentMetrics {
	cm := &ContainmentMetrics{
		checksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "containment_checks_total",
				Help:      "Total number of containment checks",
			},
			[]string{"api", "element_type", "result"},
		),

		checkDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "containment_check_duration_seconds",
				Help:      "Duration of containment checks in seconds",
				Buckets:   cfg.CheckDurationBuckets,
			},
			[]string{"api"},
		),

		violationTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "containment_violations_total",
				Help:      "Total number of containment violations by code",
			},
			[]string{"code"},
		),
	}

	registry.MustRegister(
		cm.checksTotal,
		cm.checkDuration,
		cm.violationTotal,
	)

	return cm
}

// RecordCheck records one decision and the codes that refused it.
func (cm *ContainmentMetrics) RecordCheck(api, elementType string, allowed bool, duration time.Duration, codes []string) {
	result := "allowed"
	if !allowed {
		result = "refused"
	}

	cm.checksTotal.WithLabelValues(api, elementType, result).Inc()
	cm.checkDuration.WithLabelValues(api).Observe(duration.Seconds())
	for _, code := range codes {
		cm.violationTotal.WithLabelValues(code).Inc()
	}
}
