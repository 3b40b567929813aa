package storage

import (
	"context"
	"database/sql"

	"mercator-hq/chatlogger/pkg/chatlog"
)

// Store is the storage collaborator used by the chat logger.
type Store interface {
	chatlog.Executor

	// Dialect returns the quoting rules for this store's SQL grammar.
	Dialect() chatlog.Dialect

	// Migrate creates table and its indexes if they do not exist.
	Migrate(ctx context.Context, table string) error

	// Ping verifies the database is reachable.
	Ping(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}

// ping checks db connectivity.
func ping(ctx context.Context, db *sql.DB, backend string) error {
	if err := db.PingContext(ctx); err != nil {
		return chatlog.NewStorageError(backend, "ping", err)
	}
	return nil
}

// execute runs statement on db and converts the driver result.
func execute(ctx context.Context, db *sql.DB, backend, statement string) (chatlog.Result, error) {
	res, err := db.ExecContext(ctx, statement)
	if err != nil {
		return chatlog.Result{}, chatlog.NewStorageError(backend, "execute", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return chatlog.Result{}, chatlog.NewStorageError(backend, "rows_affected", err)
	}

	// Not every statement produces an id; a failure here is not an error.
	lastID, _ := res.LastInsertId()

	return chatlog.Result{RowsAffected: affected, LastInsertID: lastID}, nil
}
