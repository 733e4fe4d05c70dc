// Package watchdogtest provides a manually advanced Scheduler for tests.
package watchdogtest

import (
	"sort"
	"sync"
	"time"

	"github.com/stactl/stactl-go/pkg/watchdog"
)

// Scheduler is a fake clock. Callbacks run synchronously inside Advance, in
// deadline order.
type Scheduler struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*timer
}

type timer struct {
	s        *Scheduler
	deadline time.Time
	seq      int
	f        func()
	stopped  bool
	fired    bool
}

// NewScheduler returns a scheduler whose clock starts at start.
func NewScheduler(start time.Time) *Scheduler {
	return &Scheduler{now: start}
}

// AfterFunc registers f to run once the clock reaches now+d.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) watchdog.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &timer{s: s, deadline: s.now.Add(d), seq: s.seq, f: f}
	s.pending = append(s.pending, t)
	return t
}

// Now returns the fake time.
func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Advance moves the clock forward by d and runs every due callback.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDueLocked(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.deadline
		next.fired = true
		s.mu.Unlock()
		next.f()
	}
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// FireAll runs every live callback regardless of deadline, as if each
// Stop had lost its race. The clock does not move.
func (s *Scheduler) FireAll() {
	s.mu.Lock()
	var due []*timer
	for _, t := range s.pending {
		if !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	s.pending = nil
	s.mu.Unlock()
	for _, t := range due {
		t.f()
	}
}

func (s *Scheduler) nextDueLocked(target time.Time) *timer {
	live := s.pending[:0]
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.pending = live
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].deadline.Equal(s.pending[j].deadline) {
			return s.pending[i].seq < s.pending[j].seq
		}
		return s.pending[i].deadline.Before(s.pending[j].deadline)
	})
	if len(s.pending) == 0 || s.pending[0].deadline.After(target) {
		return nil
	}
	return s.pending[0]
}

func (t *timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Compile-time interface satisfaction check.
var _ watchdog.Scheduler = (*Scheduler)(nil)
