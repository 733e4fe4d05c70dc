package watchdog

import (
	"fmt"
	"sync"
	"time"
)

// Purpose identifies what a guard timer protects.
type Purpose uint8

const (
	// PurposeRoam bounds how long a roam may take.
	PurposeRoam Purpose = iota

	// PurposeDisconnecting bounds the wait for driver disconnect confirmation.
	PurposeDisconnecting

	// PurposeP2PDisable bounds the wait for the peer-to-peer stack to release
	// the radio.
	PurposeP2PDisable

	// PurposeRSSIPoll paces the software RSSI poll loop.
	PurposeRSSIPoll

	// PurposeConnectTimeout bounds a whole connection attempt.
	PurposeConnectTimeout

	numPurposes
)

// String returns the purpose name.
func (p Purpose) String() string {
	switch p {
	case PurposeRoam:
		return "ROAM"
	case PurposeDisconnecting:
		return "DISCONNECTING"
	case PurposeP2PDisable:
		return "P2P_DISABLE"
	case PurposeRSSIPoll:
		return "RSSI_POLL"
	case PurposeConnectTimeout:
		return "CONNECT_TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Token identifies one generation of a guard timer.
type Token struct {
	Counter uint64
	Purpose Purpose
}

// String returns "PURPOSE#counter".
func (t Token) String() string {
	return fmt.Sprintf("%s#%d", t.Purpose, t.Counter)
}

// FireFunc receives tokens from timers that have fired. It runs on the
// scheduler's goroutine and must not block.
type FireFunc func(Token)

// Registry owns the generation counters and the outstanding timers.
// It is safe for concurrent use.
type Registry struct {
	mu sync.Mutex

	sched Scheduler
	fire  FireFunc

	counters [numPurposes]uint64
	timers   [numPurposes]Timer
}

// NewRegistry creates a registry that schedules on sched and delivers fired
// tokens to fire.
func NewRegistry(sched Scheduler, fire FireFunc) *Registry {
	if sched == nil {
		sched = RealScheduler{}
	}
	return &Registry{
		sched: sched,
		fire:  fire,
	}
}

// Arm mints a new token for p and schedules it to fire after d. Any earlier
// token for p stops being live; its timer is stopped if it has not fired yet.
func (r *Registry) Arm(p Purpose, d time.Duration) Token {
	r.mu.Lock()
	defer r.mu.Unlock()

	tok := r.mintLocked(p)
	fire := r.fire
	r.timers[p] = r.sched.AfterFunc(d, func() {
		if fire != nil {
			fire(tok)
		}
	})
	return tok
}

// Mint advances the counter for p without scheduling anything and returns the
// new live token.
func (r *Registry) Mint(p Purpose) Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mintLocked(p)
}

// Invalidate makes the current token for p stale.
func (r *Registry) Invalidate(p Purpose) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mintLocked(p)
}

// IsLive reports whether tok is the current generation for its purpose.
func (r *Registry) IsLive(tok Token) bool {
	if tok.Purpose >= numPurposes {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters[tok.Purpose] == tok.Counter
}

// Current returns the live token for p.
func (r *Registry) Current(p Purpose) Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Token{Counter: r.counters[p], Purpose: p}
}

// Now returns the scheduler's clock.
func (r *Registry) Now() time.Time {
	return r.sched.Now()
}

// Stop stops every outstanding timer and invalidates every purpose.
func (r *Registry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for p := Purpose(0); p < numPurposes; p++ {
		r.mintLocked(p)
	}
}

func (r *Registry) mintLocked(p Purpose) Token {
	if t := r.timers[p]; t != nil {
		t.Stop()
		r.timers[p] = nil
	}
	r.counters[p]++
	return Token{Counter: r.counters[p], Purpose: p}
}
