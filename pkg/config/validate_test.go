package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Errorf("default configuration should be valid: %v", err)
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	cfg := &Config{}
	cfg.Journal.Retention.Days = 9
	ApplyDefaults(cfg)
	ApplyDefaults(cfg)

	if cfg.Journal.Retention.Days != 9 {
		t.Errorf("explicit value overwritten: %d", cfg.Journal.Retention.Days)
	}
	if cfg.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("expected default debounce, got %v", cfg.Watch.Debounce)
	}
	if len(cfg.Telemetry.Metrics.CheckDurationBuckets) == 0 {
		t.Error("expected default buckets")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{
			name:   "valid",
			modify: func(c *Config) {},
		},
		{
			name:      "non-positive max file size",
			modify:    func(c *Config) { c.Design.MaxFileSize = 0 },
			wantField: "design.max_file_size",
		},
		{
			name:      "include depth below one",
			modify:    func(c *Config) { c.Design.MaxIncludeDepth = 0 },
			wantField: "design.max_include_depth",
		},
		{
			name: "disabled journal skips backend checks",
			modify: func(c *Config) {
				c.Journal.Enabled = false
				c.Journal.Backend = "redis"
			},
		},
		{
			name: "sqlite without path",
			modify: func(c *Config) {
				c.Journal.Enabled = true
				c.Journal.SQLite.Path = ""
			},
			wantField: "journal.sqlite.path",
		},
		{
			name: "negative retention",
			modify: func(c *Config) {
				c.Journal.Enabled = true
				c.Journal.Retention.Days = -1
			},
			wantField: "journal.retention.days",
		},
		{
			name: "negative max records",
			modify: func(c *Config) {
				c.Journal.Enabled = true
				c.Journal.Retention.MaxRecords = -5
			},
			wantField: "journal.retention.max_records",
		},
		{
			name:      "negative debounce",
			modify:    func(c *Config) { c.Watch.Debounce = -time.Second },
			wantField: "watch.debounce",
		},
		{
			name: "metrics path without slash",
			modify: func(c *Config) {
				c.Telemetry.Metrics.Enabled = true
				c.Telemetry.Metrics.Path = "metrics"
			},
			wantField: "telemetry.metrics.path",
		},
		{
			name:      "unsorted buckets",
			modify:    func(c *Config) { c.Telemetry.Metrics.CheckDurationBuckets = []float64{0.1, 0.01} },
			wantField: "telemetry.metrics.check_duration_buckets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}

			verr, ok := err.(ValidationError)
			if !ok {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() errors = %v, want field %s", verr.Errors, tt.wantField)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}}}
	if got := single.Error(); got != "configuration validation failed: a: bad" {
		t.Errorf("single error = %q", got)
	}

	multi := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	if got := multi.Error(); !strings.Contains(got, "2 errors") || !strings.Contains(got, "b: worse") {
		t.Errorf("multi error = %q", got)
	}
}
