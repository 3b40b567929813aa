package chatlog

import (
	"context"
	"log/slog"
	"time"
)

// Result reports the outcome of a single statement.
type Result struct {
	RowsAffected int64
	LastInsertID int64
}

// Executor runs a single statement against the store.
type Executor interface {
	Execute(ctx context.Context, statement string) (Result, error)
}

// Writer persists chat records into one table with fire-and-forget
// semantics: each record gets exactly one insert attempt.
type Writer struct {
	exec    Executor
	dialect Dialect
	table   string
	clock   func() time.Time
	logger  *slog.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithClock sets the clock used to stamp message_time.
func WithClock(clock func() time.Time) WriterOption {
	return func(w *Writer) {
		if clock != nil {
			w.clock = clock
		}
	}
}

// WithLogger sets the writer's logger.
func WithLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWriter creates a writer for table using the given executor and dialect.
func NewWriter(exec Executor, dialect Dialect, table string, opts ...WriterOption) *Writer {
	w := &Writer{
		exec:    exec,
		dialect: dialect,
		table:   table,
		clock:   time.Now,
		logger:  slog.Default().With("component", "chatlog.writer"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Table returns the table this writer inserts into.
func (w *Writer) Table() string {
	return w.table
}

// Save inserts r, stamping message_time from the writer's clock.
//
// A zero affected-row count returns ErrNotInserted; a store failure returns
// the executor's error. Both are logged as warnings and the record is
// dropped.
func (w *Writer) Save(ctx context.Context, r Record) (Result, error) {
	from := r.Source()
	w.logger.Debug("saving chat message",
		"kind", r.Kind(),
		"source_id", from.ID,
		"source_name", from.Name,
		"text", r.Text(),
	)

	stmt := InsertStatement(w.dialect, w.table, w.clock().Unix(), r)
	w.logger.Debug("insert statement", "query", stmt)

	res, err := w.exec.Execute(ctx, stmt)
	if err != nil {
		w.logger.Warn("inserting chat failed",
			"kind", r.Kind(),
			"table", w.table,
			"error", err,
		)
		return Result{}, err
	}

	if res.RowsAffected <= 0 {
		w.logger.Warn("inserting chat failed",
			"kind", r.Kind(),
			"table", w.table,
			"rows_affected", res.RowsAffected,
		)
		return res, ErrNotInserted
	}

	w.logger.Debug("chat message saved",
		"rows_affected", res.RowsAffected,
		"id", res.LastInsertID,
	)
	return res, nil
}
