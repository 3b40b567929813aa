package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // registers "sqlite" (pure Go)

	"mercator-hq/chatlogger/pkg/chatlog"
)

const (
	// DriverModernc selects the pure-Go modernc.org/sqlite driver.
	DriverModernc = "sqlite"

	// DriverMattn selects the cgo github.com/mattn/go-sqlite3 driver.
	DriverMattn = "sqlite3"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// Driver is the database/sql driver name: "sqlite" or "sqlite3".
	// Default: "sqlite"
	Driver string

	// MaxOpenConns is the maximum number of open connections.
	// PRAGMAs below are per connection, so the default keeps one.
	// Default: 1
	MaxOpenConns int

	// WALMode enables Write-Ahead Logging mode.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/chatlog.db",
		Driver:       DriverModernc,
		MaxOpenConns: 1,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if needed) the SQLite database at
// config.Path.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Driver == "" {
		config.Driver = DriverModernc
	}
	if config.MaxOpenConns <= 0 {
		config.MaxOpenConns = 1
	}

	switch config.Driver {
	case DriverModernc, DriverMattn:
	default:
		return nil, chatlog.NewStorageError("sqlite", "open",
			fmt.Errorf("unsupported sqlite driver %q", config.Driver))
	}

	logger := slog.Default().With("component", "chatlog.storage.sqlite")

	if dir := filepath.Dir(config.Path); config.Path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, chatlog.NewStorageError("sqlite", "open", err)
		}
	}

	db, err := sql.Open(config.Driver, config.Path)
	if err != nil {
		return nil, chatlog.NewStorageError("sqlite", "open", err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite storage initialized",
		"path", config.Path,
		"driver", config.Driver,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize applies connection PRAGMAs.
func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return chatlog.NewStorageError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return chatlog.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	return nil
}

// Execute implements chatlog.Executor.
func (s *SQLiteStore) Execute(ctx context.Context, statement string) (chatlog.Result, error) {
	return execute(ctx, s.db, "sqlite", statement)
}

// Dialect implements Store.
func (s *SQLiteStore) Dialect() chatlog.Dialect {
	return chatlog.SQLite
}

// Migrate implements Store.
func (s *SQLiteStore) Migrate(ctx context.Context, table string) error {
	for _, stmt := range sqliteSchema(table) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return chatlog.NewStorageError("sqlite", "migrate", err)
		}
	}
	s.logger.Debug("chat table ready", "table", table)
	return nil
}

// DB returns the underlying database handle.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Ping implements Store.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return ping(ctx, s.db, "sqlite")
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return chatlog.NewStorageError("sqlite", "close", err)
	}
	s.logger.Info("SQLite storage closed")
	return nil
}
