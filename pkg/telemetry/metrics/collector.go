package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/folio/pkg/config"
)

// Collector owns every folio metric and the registry they are registered
// with. All Record methods are no-ops when metrics are disabled.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	containmentMetrics *ContainmentMetrics
	editMetrics        *EditMetrics
	journalMetrics     *JournalMetrics

	// Cardinality tracking for element type labels, which come from the
	// dictionary and may be user defined.
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a collector registering its metrics with registry.
// If registry is nil, a new registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "folio", Subsystem: "design"}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if cfg.Path == "" {
		cfg.Path = config.DefaultMetricsPath
	}
	if len(cfg.CheckDurationBuckets) == 0 {
		cfg.CheckDurationBuckets = prometheus.ExponentialBuckets(0.000001, 2, 15) // 1µs to 16ms
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		containmentMetrics: NewContainmentMetrics(cfg, registry),
		editMetrics:        NewEditMetrics(cfg, registry),
		journalMetrics:     NewJournalMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(500),
	}
}

// RecordCheck records one containment decision.
//
// Parameters:
//   - api: "element" for a concrete element, "type" for a type-only query
//   - elementType: definition name of the candidate
//   - allowed: whether the candidate was accepted
//   - duration: time spent in the validator
//   - codes: violation codes of a refusal
func (c *Collector) RecordCheck(api, elementType string, allowed bool, duration time.Duration, codes []string) {
	if !c.config.Enabled {
		return
	}

	if !c.cardinalityLimiter.Allow(elementType) {
		elementType = "other"
	}
	c.containmentMetrics.RecordCheck(api, elementType, allowed, duration, codes)
}

// RecordEdit records the outcome of an edit operation.
//
// Parameters:
//   - operation: "insert", "move" or "remove"
//   - result: "applied", "refused" or "failed"
func (c *Collector) RecordEdit(operation, result string) {
	if !c.config.Enabled {
		return
	}

	c.editMetrics.RecordEdit(operation, result)
}

// RecordReload records a watched design file being re-checked.
func (c *Collector) RecordReload(result string) {
	if !c.config.Enabled {
		return
	}

	c.editMetrics.RecordReload(result)
}

// RecordJournalWrite records a journal write.
func (c *Collector) RecordJournalWrite(backend string, err error) {
	if !c.config.Enabled {
		return
	}

	c.journalMetrics.RecordWrite(backend, err)
}

// RecordPrune records a retention run that deleted n records.
func (c *Collector) RecordPrune(n int64, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.journalMetrics.RecordPrune(n, duration)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a limiter admitting at most maxCardinality
// distinct values.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether value may be used as a label: it was seen before or
// the limit has not been reached.
func (cl *CardinalityLimiter) Allow(value string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[value]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[value]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[value] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
