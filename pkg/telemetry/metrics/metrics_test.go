package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"mercator-hq/folio/pkg/config"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:              true,
		Namespace:            "test",
		Subsystem:            "design",
		CheckDurationBuckets: []float64{0.00001, 0.0001, 0.001},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
	if cfg.Path != config.DefaultMetricsPath {
		t.Errorf("expected default path, got %q", cfg.Path)
	}
}

func TestCollector_RecordCheck(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	tests := []struct {
		name        string
		api         string
		elementType string
		allowed     bool
		codes       []string
		wantResult  string
	}{
		{name: "allowed element", api: "element", elementType: "Label", allowed: true, wantResult: "allowed"},
		{name: "refused type", api: "type", elementType: "Row", allowed: false, codes: []string{"INVALID_CONTEXT_CONTAINMENT"}, wantResult: "refused"},
		{name: "refused with rule code", api: "element", elementType: "Row", allowed: false, codes: []string{"ROW_CELL_OVERFLOW"}, wantResult: "refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector.RecordCheck(tt.api, tt.elementType, tt.allowed, 5*time.Microsecond, tt.codes)

			count := testutil.ToFloat64(collector.containmentMetrics.checksTotal.WithLabelValues(tt.api, tt.elementType, tt.wantResult))
			if count < 1 {
				t.Errorf("Expected check counter >= 1, got %f", count)
			}
			for _, code := range tt.codes {
				if testutil.ToFloat64(collector.containmentMetrics.violationTotal.WithLabelValues(code)) < 1 {
					t.Errorf("violation %s not counted", code)
				}
			}
		})
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, nil)

	collector.RecordCheck("element", "Label", true, time.Microsecond, nil)
	collector.RecordEdit("insert", "applied")
	collector.RecordPrune(3, time.Millisecond)

	if got := testutil.ToFloat64(collector.containmentMetrics.checksTotal.WithLabelValues("element", "Label", "allowed")); got != 0 {
		t.Errorf("disabled collector recorded a check: %f", got)
	}
	if got := testutil.ToFloat64(collector.editMetrics.editsTotal.WithLabelValues("insert", "applied")); got != 0 {
		t.Errorf("disabled collector recorded an edit: %f", got)
	}
	if got := testutil.ToFloat64(collector.journalMetrics.prunedTotal); got != 0 {
		t.Errorf("disabled collector recorded a prune: %f", got)
	}
}

func TestCollector_EditAndJournal(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordEdit("move", "rejected")
	collector.RecordReload("error")
	collector.RecordJournalWrite("sqlite", nil)
	collector.RecordJournalWrite("sqlite", errors.New("disk full"))
	collector.RecordPrune(7, 20*time.Millisecond)

	if got := testutil.ToFloat64(collector.editMetrics.editsTotal.WithLabelValues("move", "rejected")); got != 1 {
		t.Errorf("edits_total = %f, want 1", got)
	}
	if got := testutil.ToFloat64(collector.editMetrics.reloadsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("watch_reloads_total = %f, want 1", got)
	}
	if got := testutil.ToFloat64(collector.journalMetrics.writesTotal.WithLabelValues("sqlite", "error")); got != 1 {
		t.Errorf("journal_writes_total{error} = %f, want 1", got)
	}
	if got := testutil.ToFloat64(collector.journalMetrics.prunedTotal); got != 7 {
		t.Errorf("journal_records_pruned_total = %f, want 7", got)
	}
}

func TestCollector_CardinalityLimit(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.cardinalityLimiter = NewCardinalityLimiter(1)

	collector.RecordCheck("type", "Label", true, time.Microsecond, nil)
	collector.RecordCheck("type", "Grid", true, time.Microsecond, nil)

	if got := testutil.ToFloat64(collector.containmentMetrics.checksTotal.WithLabelValues("type", "other", "allowed")); got != 1 {
		t.Errorf("overflow type should be counted as other, got %f", got)
	}
}

func TestCardinalityLimiter(t *testing.T) {
	cl := NewCardinalityLimiter(2)

	if !cl.Allow("a") || !cl.Allow("b") {
		t.Fatal("values under the limit should be allowed")
	}
	if cl.Allow("c") {
		t.Error("value over the limit should be refused")
	}
	if !cl.Allow("a") {
		t.Error("known value should stay allowed")
	}
	if cl.Count() != 2 {
		t.Errorf("Count() = %d, want 2", cl.Count())
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordCheck("element", "Label", true, time.Microsecond, nil)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "test_design_containment_checks_total") {
		t.Errorf("exposition missing checks metric:\n%s", rec.Body.String())
	}
}
