// Package storage provides statement-based stores for chat records.
//
// A Store executes complete statement strings and reports the affected row
// count and last inserted id. There is no parameter binding: record text is
// quoted by the store's chatlog.Dialect before it reaches Execute.
//
// # Backends
//
//   - SQLite: embedded database file. The pure-Go modernc.org/sqlite driver
//     ("sqlite") is the default; the cgo github.com/mattn/go-sqlite3 driver
//     ("sqlite3") can be selected instead.
//   - MySQL: github.com/go-sql-driver/mysql. The server must not run with
//     ANSI_QUOTES in sql_mode, since records use double-quoted literals.
//
// # Schema
//
// Migrate creates the chat table (and its message_time index) if it does
// not exist. Every instance may use its own table name, so several bots can
// share one database.
//
//	store, err := storage.NewSQLiteStore(&storage.SQLiteConfig{Path: "data/chatlog.db"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	if err := store.Migrate(ctx, "chatlog"); err != nil {
//	    log.Fatal(err)
//	}
package storage
