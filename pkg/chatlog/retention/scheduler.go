package retention

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Handle identifies a registered trigger.
type Handle int

// Scheduler is the host's calendar-based trigger facility.
type Scheduler interface {
	// Register installs job to run every day at hour:minute UTC.
	Register(hour, minute int, job func()) (Handle, error)

	// Deregister removes a trigger. Unknown handles are ignored.
	Deregister(h Handle)
}

// CronScheduler implements Scheduler on top of robfig/cron, evaluating
// every trigger in UTC.
type CronScheduler struct {
	cron    *cron.Cron
	mu      sync.Mutex
	logger  *slog.Logger
	running bool
}

// NewCronScheduler creates a stopped scheduler. Triggers may be registered
// before Start.
func NewCronScheduler() *CronScheduler {
	return &CronScheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		logger: slog.Default().With("component", "chatlog.scheduler"),
	}
}

// Register implements Scheduler.
func (s *CronScheduler) Register(hour, minute int, job func()) (Handle, error) {
	spec := fmt.Sprintf("%d %d * * *", minute, hour)

	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return 0, fmt.Errorf("failed to schedule purge %q: %w", spec, err)
	}

	s.logger.Debug("trigger registered", "handle", int(id), "schedule", spec)
	return Handle(id), nil
}

// Deregister implements Scheduler.
func (s *CronScheduler) Deregister(h Handle) {
	s.cron.Remove(cron.EntryID(h))
	s.logger.Debug("trigger deregistered", "handle", int(h))
}

// Next returns the next fire time of h, or nil if h is unknown or the
// scheduler has not been started.
func (s *CronScheduler) Next(h Handle) *time.Time {
	entry := s.cron.Entry(cron.EntryID(h))
	if !entry.Valid() || entry.Next.IsZero() {
		return nil
	}
	next := entry.Next
	return &next
}

// Len returns the number of registered triggers.
func (s *CronScheduler) Len() int {
	return len(s.cron.Entries())
}

// Start begins firing triggers in a background goroutine.
func (s *CronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
	s.logger.Info("retention scheduler started")
}

// Stop stops the scheduler and waits for any running jobs to complete.
func (s *CronScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info("retention scheduler stopped")
}

// IsRunning returns true if the scheduler is running.
func (s *CronScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}
