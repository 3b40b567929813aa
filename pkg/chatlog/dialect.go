package chatlog

import "strings"

// Dialect turns untrusted text into a string literal for one store's SQL
// grammar. Quote must return a literal that the store parses back to
// exactly s.
type Dialect interface {
	// Name identifies the dialect ("mysql", "sqlite").
	Name() string

	// Quote returns s as a complete, quoted string literal.
	Quote(s string) string
}

var (
	// MySQL quotes with double quotes and backslash escapes.
	MySQL Dialect = mysqlDialect{}

	// SQLite quotes with single quotes, doubling embedded single quotes.
	SQLite Dialect = sqliteDialect{}
)

// Escape neutralizes backslashes and double quotes for embedding inside a
// double-quoted MySQL string literal. Backslashes are escaped first so the
// backslashes introduced for quotes are not escaped a second time.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string { return "mysql" }

func (mysqlDialect) Quote(s string) string {
	return `"` + Escape(s) + `"`
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }

// Quote does not apply Escape: SQLite string literals treat backslashes
// literally, so escaping them would store doubled backslashes.
func (sqliteDialect) Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
