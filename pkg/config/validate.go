package config

import (
	"fmt"
	"strings"

	"mercator-hq/chatlogger/pkg/chatlog"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "database.table_name").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any rule fails. All errors are collected and returned together.
//
// The purge section is not validated here: a bad max age or an out of
// range hour is recovered when the retention policy is computed.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateDatabase(&cfg.Database)...)
	errs = append(errs, validateBus(&cfg.Bus)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

// validateDatabase validates storage configuration.
func validateDatabase(cfg *DatabaseConfig) []FieldError {
	var errs []FieldError

	if err := chatlog.ValidateTableName(cfg.TableName); err != nil {
		errs = append(errs, FieldError{
			Field:   "database.table_name",
			Message: "must be a plain identifier (letters, digits, underscore; not starting with a digit)",
		})
	}

	switch cfg.Backend {
	case "sqlite":
		if cfg.SQLite.Path == "" {
			errs = append(errs, FieldError{
				Field:   "database.sqlite.path",
				Message: "path is required for the sqlite backend",
			})
		}
		if cfg.SQLite.Driver != "sqlite" && cfg.SQLite.Driver != "sqlite3" {
			errs = append(errs, FieldError{
				Field:   "database.sqlite.driver",
				Message: fmt.Sprintf("must be \"sqlite\" or \"sqlite3\", got %q", cfg.SQLite.Driver),
			})
		}
		if cfg.SQLite.BusyTimeout < 0 {
			errs = append(errs, FieldError{
				Field:   "database.sqlite.busy_timeout",
				Message: "must not be negative",
			})
		}
	case "mysql":
		if cfg.MySQL.DSN == "" {
			errs = append(errs, FieldError{
				Field:   "database.mysql.dsn",
				Message: "dsn is required for the mysql backend",
			})
		}
		if cfg.MySQL.MaxOpenConns < 0 {
			errs = append(errs, FieldError{
				Field:   "database.mysql.max_open_conns",
				Message: "must not be negative",
			})
		}
		if cfg.MySQL.MaxIdleConns > cfg.MySQL.MaxOpenConns && cfg.MySQL.MaxOpenConns > 0 {
			errs = append(errs, FieldError{
				Field:   "database.mysql.max_idle_conns",
				Message: "must not exceed max_open_conns",
			})
		}
	default:
		errs = append(errs, FieldError{
			Field:   "database.backend",
			Message: fmt.Sprintf("must be \"sqlite\" or \"mysql\", got %q", cfg.Backend),
		})
	}

	return errs
}

// validateBus validates the event source configuration.
func validateBus(cfg *BusConfig) []FieldError {
	var errs []FieldError

	switch cfg.Source {
	case "stdin", "none":
	case "redis":
		if cfg.Redis.Addr == "" {
			errs = append(errs, FieldError{
				Field:   "bus.redis.addr",
				Message: "addr is required for the redis source",
			})
		}
		if cfg.Redis.Channel == "" {
			errs = append(errs, FieldError{
				Field:   "bus.redis.channel",
				Message: "channel is required for the redis source",
			})
		}
		if cfg.Redis.DB < 0 {
			errs = append(errs, FieldError{
				Field:   "bus.redis.db",
				Message: "must not be negative",
			})
		}
	default:
		errs = append(errs, FieldError{
			Field:   "bus.source",
			Message: fmt.Sprintf("must be one of stdin, redis, none; got %q", cfg.Source),
		})
	}

	return errs
}

// validateTelemetry validates logging, metrics and tracing configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error; got %q", cfg.Logging.Level),
		})
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "text", "console":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be one of json, text, console; got %q", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.ListenAddress == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.listen_address",
				Message: "listen address is required when metrics are enabled",
			})
		}
		if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "path must start with /",
			})
		}
	}

	if cfg.Tracing.Enabled {
		if cfg.Tracing.Endpoint == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.endpoint",
				Message: "endpoint is required when tracing is enabled",
			})
		}
		switch cfg.Tracing.Sampler {
		case "always", "never":
		case "ratio":
			if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
				errs = append(errs, FieldError{
					Field:   "telemetry.tracing.sample_ratio",
					Message: fmt.Sprintf("must be between 0 and 1; got %g", cfg.Tracing.SampleRatio),
				})
			}
		default:
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.sampler",
				Message: fmt.Sprintf("must be one of always, never, ratio; got %q", cfg.Tracing.Sampler),
			})
		}
	}

	return errs
}
