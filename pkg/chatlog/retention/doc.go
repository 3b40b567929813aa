// Package retention enforces the chat log retention policy.
//
// # Retention Policy
//
// A Policy is computed from raw configuration on every load:
//
//	policy, err := retention.ComputePolicy("30d", 3, 0, "CET")
//	// policy.MaxAgeDays == 30
//	// policy.TriggerHourUTC == 2, policy.TriggerMinuteUTC == 0
//	// err reports recovered configuration problems; policy is still usable
//
// Max age accepts a day count with an optional unit suffix: d (days),
// w (weeks, 7 days), m (months, 30 days) or y (years, 365 days). A value of
// 0 keeps messages forever and disables the scheduled purge.
//
// The purge hour is local to the host's named timezone. Offsets come from a
// fixed, whole-hour zone table with no daylight saving adjustment.
//
// # Scheduling
//
// A Binding owns at most one daily trigger on a Scheduler. Apply always
// removes the previous trigger before installing the next one:
//
//	sched := retention.NewCronScheduler()
//	sched.Start()
//	defer sched.Stop()
//
//	binding := retention.NewBinding(sched)
//	if err := binding.Apply(policy, func() { svc.Purge(ctx) }); err != nil {
//	    log.Fatal(err)
//	}
//
// # Purging
//
// A Purger issues one bulk delete for every record whose message_time is
// older than now minus MaxAgeDays days:
//
//	deleted, err := retention.NewPurger(store).Purge(ctx, "chatlog", 30)
package retention
