package config

import "time"

// Default values for configuration fields.
const (
	// Design defaults
	DefaultDesignMaxFileSize     = int64(10 * 1024 * 1024) // 10MB
	DefaultDesignMaxIncludeDepth = 8

	// Journal defaults
	DefaultJournalBackend             = "sqlite"
	DefaultJournalSQLitePath          = "data/journal.db"
	DefaultJournalSQLiteMaxOpenConns  = 4
	DefaultJournalSQLiteBusyTimeout   = 5 * time.Second
	DefaultJournalRetentionDays       = 30
	DefaultJournalRetentionSchedule   = "0 3 * * *"
	DefaultJournalRetentionMaxRecords = int64(0)

	// Watch defaults
	DefaultWatchDebounce = 100 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "text"
	DefaultMetricsNamespace     = "folio"
	DefaultMetricsSubsystem     = "design"
	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsPath          = "/metrics"
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Design defaults
	if cfg.Design.MaxFileSize == 0 {
		cfg.Design.MaxFileSize = DefaultDesignMaxFileSize
	}
	if cfg.Design.MaxIncludeDepth == 0 {
		cfg.Design.MaxIncludeDepth = DefaultDesignMaxIncludeDepth
	}

	// Journal defaults
	if cfg.Journal.Backend == "" {
		cfg.Journal.Backend = DefaultJournalBackend
	}
	if cfg.Journal.SQLite.Path == "" {
		cfg.Journal.SQLite.Path = DefaultJournalSQLitePath
	}
	if cfg.Journal.SQLite.MaxOpenConns == 0 {
		cfg.Journal.SQLite.MaxOpenConns = DefaultJournalSQLiteMaxOpenConns
	}
	if cfg.Journal.SQLite.BusyTimeout == 0 {
		cfg.Journal.SQLite.BusyTimeout = DefaultJournalSQLiteBusyTimeout
	}
	if cfg.Journal.Retention.Days == 0 {
		cfg.Journal.Retention.Days = DefaultJournalRetentionDays
	}
	if cfg.Journal.Retention.Schedule == "" {
		cfg.Journal.Retention.Schedule = DefaultJournalRetentionSchedule
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if len(cfg.Telemetry.Metrics.CheckDurationBuckets) == 0 {
		// Containment checks are in-memory tree walks (1µs - 16ms)
		cfg.Telemetry.Metrics.CheckDurationBuckets = []float64{
			0.000001, 0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.016,
		}
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
