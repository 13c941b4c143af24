// Package config provides configuration management for folio.
//
// Configuration is read from a YAML file, completed with defaults, overridden
// by environment variables and validated:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("folio.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention FOLIO_SECTION_FIELD:
//
//   - FOLIO_DICTIONARY_PATH overrides dictionary.path
//   - FOLIO_JOURNAL_BACKEND overrides journal.backend
//   - FOLIO_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	dictionary:
//	  path: ""            # builtin report vocabulary
//
//	journal:
//	  enabled: true
//	  backend: sqlite
//	  sqlite:
//	    path: data/journal.db
//	  retention:
//	    days: 30
//	    schedule: "0 3 * * *"
//
//	telemetry:
//	  logging:
//	    level: info
//	    format: text
//	  metrics:
//	    enabled: true
//	    listen_address: 127.0.0.1:9090
//
// Validation errors name the offending field:
//
//	configuration validation failed with 2 errors:
//	  - journal.backend: invalid backend "redis": must be 'memory' or 'sqlite'
//	  - telemetry.logging.level: invalid logging level "loud": ...
package config
