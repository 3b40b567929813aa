package config

import "time"

// Default values for configuration fields.
const (
	// Host defaults
	DefaultTimeZone = "UTC"

	// Database defaults
	DefaultTableName            = "chatlog"
	DefaultBackend              = "sqlite"
	DefaultAutoMigrate          = true
	DefaultSQLitePath           = "data/chatlog.db"
	DefaultSQLiteDriver         = "sqlite"
	DefaultSQLiteBusyTimeout    = 5 * time.Second
	DefaultSQLiteWALMode        = true
	DefaultMySQLMaxOpenConns    = 10
	DefaultMySQLMaxIdleConns    = 5
	DefaultMySQLConnMaxLifetime = 30 * time.Minute

	// Purge defaults
	DefaultMaxAge = "0"

	// Bus defaults
	DefaultBusSource    = "stdin"
	DefaultRedisAddr    = "localhost:6379"
	DefaultRedisChannel = "chatlog:events"

	// Telemetry defaults
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultMetricsAddress  = ":9090"
	DefaultMetricsPath     = "/metrics"
	DefaultMetricsPrefix   = "chatlog"
	DefaultTracingEndpoint = "localhost:4317"
	DefaultTracingTimeout  = 10 * time.Second
	DefaultTracingSampler  = "always"
	DefaultServiceName     = "chatlogger"
)

// ApplyDefaults fills unset fields of cfg with default values.
// Purge hour and minute default to their zero values (midnight).
func ApplyDefaults(cfg *Config) {
	// Host defaults
	if cfg.Host.TimeZone == "" {
		cfg.Host.TimeZone = DefaultTimeZone
	}

	// Database defaults
	if cfg.Database.TableName == "" {
		cfg.Database.TableName = DefaultTableName
	}
	if cfg.Database.Backend == "" {
		cfg.Database.Backend = DefaultBackend
	}
	if cfg.Database.AutoMigrate == nil {
		v := DefaultAutoMigrate
		cfg.Database.AutoMigrate = &v
	}
	if cfg.Database.SQLite.Path == "" {
		cfg.Database.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Database.SQLite.Driver == "" {
		cfg.Database.SQLite.Driver = DefaultSQLiteDriver
	}
	if cfg.Database.SQLite.BusyTimeout == 0 {
		cfg.Database.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}
	if cfg.Database.SQLite.WALMode == nil {
		v := DefaultSQLiteWALMode
		cfg.Database.SQLite.WALMode = &v
	}
	if cfg.Database.MySQL.MaxOpenConns == 0 {
		cfg.Database.MySQL.MaxOpenConns = DefaultMySQLMaxOpenConns
	}
	if cfg.Database.MySQL.MaxIdleConns == 0 {
		cfg.Database.MySQL.MaxIdleConns = DefaultMySQLMaxIdleConns
	}
	if cfg.Database.MySQL.ConnMaxLifetime == 0 {
		cfg.Database.MySQL.ConnMaxLifetime = DefaultMySQLConnMaxLifetime
	}

	// Purge defaults
	if cfg.Purge.MaxAge == "" {
		cfg.Purge.MaxAge = DefaultMaxAge
	}

	// Bus defaults
	if cfg.Bus.Source == "" {
		cfg.Bus.Source = DefaultBusSource
	}
	if cfg.Bus.Redis.Addr == "" {
		cfg.Bus.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Bus.Redis.Channel == "" {
		cfg.Bus.Redis.Channel = DefaultRedisChannel
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsPrefix
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.Timeout == 0 {
		cfg.Telemetry.Tracing.Timeout = DefaultTracingTimeout
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultServiceName
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}
