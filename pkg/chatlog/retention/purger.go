package retention

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"mercator-hq/chatlogger/pkg/chatlog"
)

// ErrRetentionDisabled is returned when a purge runs without a positive
// max age. No statement is issued in that case.
var ErrRetentionDisabled = errors.New("max age is not a positive number of days")

const secondsPerDay = 24 * 60 * 60

// Purger deletes chat records older than a retention period.
type Purger struct {
	exec   chatlog.Executor
	clock  func() time.Time
	logger *slog.Logger
}

// PurgerOption configures a Purger.
type PurgerOption func(*Purger)

// WithPurgeClock sets the clock used to compute the cutoff.
func WithPurgeClock(clock func() time.Time) PurgerOption {
	return func(p *Purger) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithPurgeLogger sets the purger's logger.
func WithPurgeLogger(logger *slog.Logger) PurgerOption {
	return func(p *Purger) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPurger creates a purger issuing deletes through exec.
func NewPurger(exec chatlog.Executor, opts ...PurgerOption) *Purger {
	p := &Purger{
		exec:   exec,
		clock:  time.Now,
		logger: slog.Default().With("component", "chatlog.purger"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Cutoff returns the message_time below which records are deleted.
// Results saturate at the int64 range instead of wrapping.
func Cutoff(now time.Time, maxAgeDays int) int64 {
	unix := now.Unix()
	days := int64(maxAgeDays)
	if days > math.MaxInt64/secondsPerDay {
		return math.MinInt64
	}
	if days < -(math.MaxInt64 / secondsPerDay) {
		return math.MaxInt64
	}
	offset := days * secondsPerDay
	if offset > 0 && unix < math.MinInt64+offset {
		return math.MinInt64
	}
	if offset < 0 && unix > math.MaxInt64+offset {
		return math.MaxInt64
	}
	return unix - offset
}

// DeleteStatement renders the bulk delete for table and cutoff.
func DeleteStatement(table string, cutoff int64) string {
	return fmt.Sprintf("DELETE FROM %s WHERE message_time < %d", table, cutoff)
}

// Purge deletes every record in table with message_time older than
// maxAgeDays days and returns the number of deleted rows.
//
// Records stamped after the cutoff was computed are never touched, and a
// second run with no new inserts deletes nothing.
func (p *Purger) Purge(ctx context.Context, table string, maxAgeDays int) (int64, error) {
	if maxAgeDays <= 0 {
		p.logger.Warn("max_age is invalid", "max_age_days", maxAgeDays)
		return 0, chatlog.NewRetentionError(table, maxAgeDays, ErrRetentionDisabled)
	}

	runID := uuid.New().String()
	logger := p.logger.With("run_id", runID, "table", table)
	logger.Info("purge of chat messages older than max age", "max_age_days", maxAgeDays)

	stmt := DeleteStatement(table, Cutoff(p.clock(), maxAgeDays))
	logger.Debug("delete statement", "query", stmt)

	res, err := p.exec.Execute(ctx, stmt)
	if err != nil {
		return 0, chatlog.NewRetentionError(table, maxAgeDays, err)
	}

	if res.RowsAffected == 0 {
		logger.Debug("no chat messages purged")
	} else {
		logger.Info("chat messages purged", "deleted_count", res.RowsAffected)
	}

	return res.RowsAffected, nil
}
