package config

import "time"

// Config is the root configuration structure for folio.
type Config struct {
	// Dictionary selects the metadata dictionary element types are
	// resolved against.
	Dictionary DictionaryConfig `yaml:"dictionary"`

	// Design contains limits applied when loading design documents.
	Design DesignConfig `yaml:"design"`

	// Journal contains configuration for the containment decision journal
	// including backend selection and retention.
	Journal JournalConfig `yaml:"journal"`

	// Watch contains configuration for watching design files.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DictionaryConfig selects the metadata dictionary.
type DictionaryConfig struct {
	// Path is a dictionary YAML file. Empty selects the builtin dictionary.
	Path string `yaml:"path"`
}

// DesignConfig contains limits for design documents.
type DesignConfig struct {
	// MaxFileSize is the largest document the loader reads, in bytes.
	// Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size"`

	// MaxIncludeDepth bounds library include nesting.
	// Default: 8
	MaxIncludeDepth int `yaml:"max_include_depth"`
}

// JournalConfig contains configuration for the decision journal.
type JournalConfig struct {
	// Enabled turns on journaling of edit decisions.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend is the storage backend: "memory" or "sqlite".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite backend configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention contains pruning configuration.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains configuration for the SQLite journal backend.
type SQLiteConfig struct {
	// Path is the database file.
	// Default: "data/journal.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// BusyTimeout is how long a writer waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig contains journal pruning configuration.
type RetentionConfig struct {
	// Days is how long records are kept. 0 keeps them forever.
	// Default: 30
	Days int `yaml:"days"`

	// Schedule is the cron expression for pruning runs.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`

	// MaxRecords caps the number of records kept. 0 means no cap.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`
}

// WatchConfig contains configuration for the design file watcher.
type WatchConfig struct {
	// Debounce is the quiet period before a changed file is re-checked.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains configuration for structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource adds source file and line to log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains configuration for Prometheus metrics.
type MetricsConfig struct {
	// Enabled turns on metrics collection.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "folio"
	Namespace string `yaml:"namespace"`

	// Subsystem is the second metric name component.
	// Default: "design"
	Subsystem string `yaml:"subsystem"`

	// ListenAddress is where long-running commands serve metrics.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// CheckDurationBuckets are the histogram buckets for containment check
	// durations, in seconds.
	CheckDurationBuckets []float64 `yaml:"check_duration_buckets"`
}
