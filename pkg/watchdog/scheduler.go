package watchdog

import "time"

// Timer is a scheduled callback that can be stopped.
type Timer interface {
	// Stop prevents the callback from running if it has not started.
	// It reports whether the call stopped the timer.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer

	// Now returns the scheduler's current time.
	Now() time.Time
}

// RealScheduler schedules on the wall clock with time.AfterFunc.
type RealScheduler struct{}

// AfterFunc schedules f on its own goroutine after d.
func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Now returns time.Now.
func (RealScheduler) Now() time.Time {
	return time.Now()
}

// Compile-time interface satisfaction check.
var _ Scheduler = RealScheduler{}
