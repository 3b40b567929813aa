package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CHATLOGGER_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// Environment variables are not consulted; use LoadConfigWithEnvOverrides
// for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML and applies defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention CHATLOGGER_SECTION_FIELD (e.g., CHATLOGGER_PURGE_MAX_AGE).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Malformed numeric, boolean or duration values are ignored.
func applyEnvOverrides(cfg *Config) {
	// Host overrides
	envString("HOST_TIME_ZONE", &cfg.Host.TimeZone)

	// Database overrides
	envString("DATABASE_TABLE_NAME", &cfg.Database.TableName)
	envString("DATABASE_BACKEND", &cfg.Database.Backend)
	envBoolPtr("DATABASE_AUTO_MIGRATE", &cfg.Database.AutoMigrate)
	envString("DATABASE_SQLITE_PATH", &cfg.Database.SQLite.Path)
	envString("DATABASE_SQLITE_DRIVER", &cfg.Database.SQLite.Driver)
	envDuration("DATABASE_SQLITE_BUSY_TIMEOUT", &cfg.Database.SQLite.BusyTimeout)
	envBoolPtr("DATABASE_SQLITE_WAL_MODE", &cfg.Database.SQLite.WALMode)
	envString("DATABASE_MYSQL_DSN", &cfg.Database.MySQL.DSN)
	envInt("DATABASE_MYSQL_MAX_OPEN_CONNS", &cfg.Database.MySQL.MaxOpenConns)
	envInt("DATABASE_MYSQL_MAX_IDLE_CONNS", &cfg.Database.MySQL.MaxIdleConns)
	envDuration("DATABASE_MYSQL_CONN_MAX_LIFETIME", &cfg.Database.MySQL.ConnMaxLifetime)

	// Purge overrides
	envString("PURGE_MAX_AGE", &cfg.Purge.MaxAge)
	envInt("PURGE_HOUR", &cfg.Purge.Hour)
	envInt("PURGE_MINUTE", &cfg.Purge.Minute)

	// Bus overrides
	envString("BUS_SOURCE", &cfg.Bus.Source)
	envString("BUS_REDIS_ADDR", &cfg.Bus.Redis.Addr)
	envString("BUS_REDIS_PASSWORD", &cfg.Bus.Redis.Password)
	envInt("BUS_REDIS_DB", &cfg.Bus.Redis.DB)
	envString("BUS_REDIS_CHANNEL", &cfg.Bus.Redis.Channel)

	// Telemetry overrides
	envString("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	envString("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	envBool("TELEMETRY_LOGGING_REDACT_MESSAGES", &cfg.Telemetry.Logging.RedactMessages)
	envBool("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	envString("TELEMETRY_METRICS_LISTEN_ADDRESS", &cfg.Telemetry.Metrics.ListenAddress)
	envString("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	envBool("TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	envString("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	envBool("TELEMETRY_TRACING_INSECURE", &cfg.Telemetry.Tracing.Insecure)
	envString("TELEMETRY_TRACING_SAMPLER", &cfg.Telemetry.Tracing.Sampler)
	envFloat("TELEMETRY_TRACING_SAMPLE_RATIO", &cfg.Telemetry.Tracing.SampleRatio)
}

func envString(name string, dst *string) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		*dst = val
	}
}

func envInt(name string, dst *int) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func envFloat(name string, dst *float64) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			*dst = f
		}
	}
}

func envBool(name string, dst *bool) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func envBoolPtr(name string, dst **bool) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = &b
		}
	}
}

func envDuration(name string, dst *time.Duration) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}
