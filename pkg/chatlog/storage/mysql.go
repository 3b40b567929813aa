package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"

	"mercator-hq/chatlogger/pkg/chatlog"
)

// MySQLConfig contains configuration for the MySQL storage backend.
type MySQLConfig struct {
	// DSN is the go-sql-driver data source name,
	// e.g. "b3:secret@tcp(127.0.0.1:3306)/b3".
	DSN string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// ConnMaxLifetime is the maximum time a connection may be reused.
	// Default: 30 minutes
	ConnMaxLifetime time.Duration

	// PingTimeout bounds the connectivity check on open.
	// Default: 2 seconds
	PingTimeout time.Duration
}

// MySQLStore implements Store using MySQL.
type MySQLStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewMySQLStore connects to MySQL and verifies the connection.
func NewMySQLStore(config *MySQLConfig) (*MySQLStore, error) {
	cfg := *config
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 10
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = 5
	}
	if cfg.ConnMaxLifetime == 0 {
		cfg.ConnMaxLifetime = 30 * time.Minute
	}
	if cfg.PingTimeout == 0 {
		cfg.PingTimeout = 2 * time.Second
	}

	dsn, err := normalizeDSN(cfg.DSN, cfg.PingTimeout)
	if err != nil {
		return nil, chatlog.NewStorageError("mysql", "parse_dsn", err)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, chatlog.NewStorageError("mysql", "open", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, chatlog.NewStorageError("mysql", "ping", err)
	}

	logger := slog.Default().With("component", "chatlog.storage.mysql")
	logger.Info("MySQL storage initialized", "max_open_conns", cfg.MaxOpenConns)

	return &MySQLStore{db: db, logger: logger}, nil
}

// normalizeDSN validates dsn and bounds the dial timeout.
func normalizeDSN(dsn string, dialTimeout time.Duration) (string, error) {
	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	if parsed.Timeout == 0 {
		parsed.Timeout = dialTimeout
	}
	return parsed.FormatDSN(), nil
}

// Execute implements chatlog.Executor.
func (s *MySQLStore) Execute(ctx context.Context, statement string) (chatlog.Result, error) {
	return execute(ctx, s.db, "mysql", statement)
}

// Dialect implements Store.
func (s *MySQLStore) Dialect() chatlog.Dialect {
	return chatlog.MySQL
}

// Migrate implements Store.
func (s *MySQLStore) Migrate(ctx context.Context, table string) error {
	for _, stmt := range mysqlSchema(table) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return chatlog.NewStorageError("mysql", "migrate", err)
		}
	}
	s.logger.Debug("chat table ready", "table", table)
	return nil
}

// Ping implements Store.
func (s *MySQLStore) Ping(ctx context.Context) error {
	return ping(ctx, s.db, "mysql")
}

// Close implements Store.
func (s *MySQLStore) Close() error {
	if err := s.db.Close(); err != nil {
		return chatlog.NewStorageError("mysql", "close", err)
	}
	s.logger.Info("MySQL storage closed")
	return nil
}
