package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"mercator-hq/chatlogger/pkg/bus"
	"mercator-hq/chatlogger/pkg/chatlog/service"
	"mercator-hq/chatlogger/pkg/chatlog/storage"
	"mercator-hq/chatlogger/pkg/cli"
	"mercator-hq/chatlogger/pkg/config"
	"mercator-hq/chatlogger/pkg/telemetry/logging"
)

// loadConfig loads path with environment overrides and stores it as the
// global configuration.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.ReloadConfig(path)
	if err != nil {
		var verr config.ValidationError
		if errors.As(err, &verr) && len(verr.Errors) > 0 {
			return nil, cli.NewConfigError(verr.Errors[0].Field, err.Error())
		}
		return nil, cli.NewConfigError(path, err.Error())
	}
	return cfg, nil
}

// setupLogging installs the configured logger as the slog default.
func setupLogging(cfg *config.LoggingConfig) error {
	level := cfg.Level
	if verbose {
		level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:          level,
		Format:         cfg.Format,
		AddSource:      cfg.AddSource,
		RedactMessages: cfg.RedactMessages,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)
	return nil
}

// openStore opens the configured storage backend.
func openStore(cfg *config.DatabaseConfig) (storage.Store, error) {
	switch cfg.Backend {
	case "mysql":
		return storage.NewMySQLStore(&storage.MySQLConfig{
			DSN:             cfg.MySQL.DSN,
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
		})
	case "sqlite", "":
		sc := storage.DefaultSQLiteConfig()
		sc.Path = cfg.SQLite.Path
		sc.Driver = cfg.SQLite.Driver
		sc.BusyTimeout = cfg.SQLite.BusyTimeout
		sc.WALMode = cfg.SQLite.WALMode == nil || *cfg.SQLite.WALMode
		return storage.NewSQLiteStore(sc)
	default:
		return nil, cli.NewConfigError("database.backend", fmt.Sprintf("unsupported backend %q", cfg.Backend))
	}
}

// serviceConfig extracts what the chat logger reloads from cfg.
func serviceConfig(cfg *config.Config) service.Config {
	return service.Config{
		TableName: cfg.Database.TableName,
		MaxAge:    cfg.Purge.MaxAge,
		Hour:      cfg.Purge.Hour,
		Minute:    cfg.Purge.Minute,
		TimeZone:  cfg.Host.TimeZone,
		Migrate:   cfg.Database.Migrate(),
	}
}

// newSource builds the configured event source and a function releasing it.
func newSource(cfg *config.BusConfig) (bus.Source, func(), error) {
	switch cfg.Source {
	case "redis":
		src, err := bus.NewRedisSource(bus.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Channel:  cfg.Redis.Channel,
		}, nil)
		if err != nil {
			return nil, nil, cli.NewConfigError("bus.redis", err.Error())
		}
		return src, func() { src.Close() }, nil
	case "none":
		return bus.Nop{}, func() {}, nil
	case "stdin", "":
		return bus.NewStreamSource(os.Stdin, nil), func() {}, nil
	default:
		return nil, nil, cli.NewConfigError("bus.source", fmt.Sprintf("unsupported source %q", cfg.Source))
	}
}
