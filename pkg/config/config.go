package config

import "time"

// Config is the root configuration for the chat logger.
// It is loaded from a YAML file and can be overridden by environment
// variables.
type Config struct {
	// Host contains settings shared with the host bot.
	Host HostConfig `yaml:"host"`

	// Database configures where chat records are stored.
	Database DatabaseConfig `yaml:"database"`

	// Purge configures the daily retention purge.
	Purge PurgeConfig `yaml:"purge"`

	// Bus configures where host chat events come from.
	Bus BusConfig `yaml:"bus"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// HostConfig contains host-global settings.
type HostConfig struct {
	// TimeZone is the host's named time zone (e.g. "CET", "EST").
	// The purge hour is interpreted in this zone.
	// Default: "UTC"
	TimeZone string `yaml:"time_zone"`
}

// DatabaseConfig configures chat record storage.
type DatabaseConfig struct {
	// TableName is the table chat records are written to. Several bots can
	// share one database by using different tables.
	// Default: "chatlog"
	TableName string `yaml:"table_name"`

	// Backend selects the storage backend.
	// Options: "sqlite", "mysql"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// AutoMigrate creates the table on startup and reload.
	// Default: true
	AutoMigrate *bool `yaml:"auto_migrate"`

	// SQLite contains SQLite-specific configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// MySQL contains MySQL-specific configuration.
	MySQL MySQLConfig `yaml:"mysql"`
}

// Migrate reports whether tables are created automatically.
func (c *DatabaseConfig) Migrate() bool {
	return c.AutoMigrate == nil || *c.AutoMigrate
}

// SQLiteConfig configures the SQLite backend.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/chatlog.db"
	Path string `yaml:"path"`

	// Driver selects the database/sql driver.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// BusyTimeout is how long to wait on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// WALMode enables write-ahead logging.
	// Default: true
	WALMode *bool `yaml:"wal_mode"`
}

// MySQLConfig configures the MySQL backend.
type MySQLConfig struct {
	// DSN is the go-sql-driver/mysql data source name,
	// e.g. "b3:secret@tcp(db:3306)/b3".
	DSN string `yaml:"dsn"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// ConnMaxLifetime is the maximum lifetime of a connection.
	// Default: 30m
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// PurgeConfig configures retention.
type PurgeConfig struct {
	// MaxAge is how long messages are kept: a number followed by d, w, m
	// or y ("30d", "2w", "6m", "1y"). "0" keeps messages forever.
	// Unparseable values are treated as "0" and reported in the log.
	// Default: "0"
	MaxAge string `yaml:"max_age"`

	// Hour is the local hour of the daily purge, clamped to [0,23].
	// Default: 0
	Hour int `yaml:"hour"`

	// Minute is the minute of the daily purge, clamped to [0,59].
	// Default: 0
	Minute int `yaml:"minute"`
}

// BusConfig configures the host event source.
type BusConfig struct {
	// Source selects where events are read from.
	// Options: "stdin", "redis", "none"
	// Default: "stdin"
	Source string `yaml:"source"`

	// Redis configures the Redis pub/sub source.
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig configures the Redis pub/sub event source.
type RedisConfig struct {
	// Addr is the Redis server address.
	// Default: "localhost:6379"
	Addr string `yaml:"addr"`

	// Password is the Redis password, if any.
	Password string `yaml:"password"`

	// DB is the Redis database number.
	DB int `yaml:"db"`

	// Channel is the pub/sub channel the host publishes chat events on.
	// Default: "chatlog:events"
	Channel string `yaml:"channel"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactMessages hides chat text in debug logs.
	// Default: false
	RedactMessages bool `yaml:"redact_messages"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is where the metrics endpoint is served.
	// Default: ":9090"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace prefixes every metric name.
	// Default: "chatlog"
	Namespace string `yaml:"namespace"`
}

// TracingConfig configures OpenTelemetry tracing of event writes and purges.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector address.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS to the collector.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// Sampler selects which traces are kept.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces kept by the "ratio" sampler.
	SampleRatio float64 `yaml:"sample_ratio"`

	// ServiceName is reported as service.name.
	// Default: "chatlogger"
	ServiceName string `yaml:"service_name"`
}
