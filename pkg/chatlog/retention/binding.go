package retention

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Binding keeps at most one purge trigger registered on a Scheduler.
//
// States: unscheduled (no trigger) and scheduled (exactly one trigger).
// Every Apply passes through unscheduled before registering again.
type Binding struct {
	scheduler Scheduler
	logger    *slog.Logger

	mu         sync.Mutex
	handle     Handle
	registered bool
}

// NewBinding creates an unscheduled binding on scheduler.
func NewBinding(scheduler Scheduler) *Binding {
	return &Binding{
		scheduler: scheduler,
		logger:    slog.Default().With("component", "chatlog.binding"),
	}
}

// Apply replaces the current trigger with one for policy. When the policy
// is disabled no trigger is registered.
func (b *Binding) Apply(policy Policy, job func()) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clearLocked()

	if !policy.Enabled() {
		b.logger.Info(policy.String())
		return nil
	}

	h, err := b.scheduler.Register(policy.TriggerHourUTC, policy.TriggerMinuteUTC, job)
	if err != nil {
		return fmt.Errorf("failed to register purge trigger: %w", err)
	}
	b.handle = h
	b.registered = true

	b.logger.Debug("purge time converted",
		"local", fmt.Sprintf("%02d:%02d %s", policy.LocalHour, policy.LocalMinute, policy.TimeZone),
		"utc", fmt.Sprintf("%02d:%02d UTC", policy.TriggerHourUTC, policy.TriggerMinuteUTC),
	)
	b.logger.Info(policy.String())
	return nil
}

// Clear deregisters the current trigger, if any.
func (b *Binding) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clearLocked()
}

// Scheduled reports whether a trigger is currently registered.
func (b *Binding) Scheduled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.registered
}

// Next returns the next fire time of the current trigger when the
// scheduler can report it.
func (b *Binding) Next() *time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.registered {
		return nil
	}
	if n, ok := b.scheduler.(interface{ Next(Handle) *time.Time }); ok {
		return n.Next(b.handle)
	}
	return nil
}

func (b *Binding) clearLocked() {
	if !b.registered {
		return
	}
	b.scheduler.Deregister(b.handle)
	b.registered = false
	b.handle = 0
}
