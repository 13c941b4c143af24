package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{name: "default", timeout: 0, want: DefaultCheckTimeout},
		{name: "negative", timeout: -time.Second, want: DefaultCheckTimeout},
		{name: "custom", timeout: time.Second, want: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.timeout)
			if c.timeout != tt.want {
				t.Errorf("timeout = %v, want %v", c.timeout, tt.want)
			}
			if len(c.Checks()) != 0 {
				t.Errorf("Checks() = %v, want none", c.Checks())
			}
		})
	}
}

func TestChecker_RegisterCheck(t *testing.T) {
	c := New(time.Second)
	c.RegisterCheck("journal", func(context.Context) error { return nil })
	c.RegisterCheck("document", func(context.Context) error { return nil })
	c.RegisterCheck("journal", func(context.Context) error { return errors.New("replaced") })

	got := c.Checks()
	if len(got) != 2 || got[0] != "document" || got[1] != "journal" {
		t.Errorf("Checks() = %v", got)
	}
	if r := c.Readiness(context.Background()); r.Checks["journal"].Message != "replaced" {
		t.Errorf("journal check was not replaced: %+v", r.Checks["journal"])
	}

	c.UnregisterCheck("journal")
	if got := c.Checks(); len(got) != 1 {
		t.Errorf("Checks() after unregister = %v", got)
	}
}

func TestChecker_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]CheckFunc
		wantStatus string
		wantFailed []string
	}{
		{
			name:       "no checks",
			wantStatus: StatusReady,
		},
		{
			name: "all healthy",
			checks: map[string]CheckFunc{
				"journal":  func(context.Context) error { return nil },
				"document": func(context.Context) error { return nil },
			},
			wantStatus: StatusReady,
		},
		{
			name: "one failing",
			checks: map[string]CheckFunc{
				"journal":  func(context.Context) error { return errors.New("database is locked") },
				"document": func(context.Context) error { return nil },
			},
			wantStatus: StatusDegraded,
			wantFailed: []string{"journal"},
		},
		{
			name: "timeout",
			checks: map[string]CheckFunc{
				"slow": func(ctx context.Context) error {
					<-ctx.Done()
					time.Sleep(10 * time.Millisecond)
					return nil
				},
			},
			wantStatus: StatusDegraded,
			wantFailed: []string{"slow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(20 * time.Millisecond)
			for name, check := range tt.checks {
				c.RegisterCheck(name, check)
			}

			r := c.Readiness(context.Background())
			if r.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", r.Status, tt.wantStatus)
			}
			if len(r.Checks) != len(tt.checks) {
				t.Errorf("len(Checks) = %d, want %d", len(r.Checks), len(tt.checks))
			}
			for _, name := range tt.wantFailed {
				if r.Checks[name].Status != StatusUnhealthy || r.Checks[name].Message == "" {
					t.Errorf("check %s = %+v, want unhealthy", name, r.Checks[name])
				}
			}
		})
	}
}

func TestLivenessHandler(t *testing.T) {
	c := New(time.Second)
	c.RegisterCheck("failing", func(context.Context) error { return errors.New("down") })

	rec := httptest.NewRecorder()
	c.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	var r Report
	if err := json.NewDecoder(rec.Body).Decode(&r); err != nil {
		t.Fatal(err)
	}
	if r.Status != StatusOK {
		t.Errorf("Status = %q", r.Status)
	}
}

func TestReadinessHandler(t *testing.T) {
	healthy := true
	c := New(time.Second)
	c.RegisterCheck("document", func(context.Context) error {
		if !healthy {
			return errors.New("document does not load")
		}
		return nil
	})

	tests := []struct {
		name    string
		healthy bool
		method  string
		want    int
	}{
		{name: "ready", healthy: true, method: http.MethodGet, want: http.StatusOK},
		{name: "degraded", healthy: false, method: http.MethodGet, want: http.StatusServiceUnavailable},
		{name: "head", healthy: true, method: http.MethodHead, want: http.StatusOK},
		{name: "post", healthy: true, method: http.MethodPost, want: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			healthy = tt.healthy
			rec := httptest.NewRecorder()
			c.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(tt.method, "/ready", nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.method == http.MethodHead && rec.Body.Len() != 0 {
				t.Error("HEAD response has a body")
			}
		})
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	New(time.Second).Register(mux, "1.2.3", "abc123", "2026-01-01")

	for _, path := range []string{"/health", "/ready", "/version"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("%s Content-Type = %q", path, ct)
		}
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	var info VersionInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.Version != "1.2.3" || info.Commit != "abc123" || info.GoVersion == "" {
		t.Errorf("version = %+v", info)
	}
}
