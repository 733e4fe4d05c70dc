package linkquality

import (
	"errors"
	"strings"
)

// ErrInvalidSuspendReason is returned for anything but a single known reason
// bit.
var ErrInvalidSuspendReason = errors.New("invalid suspend optimization reason")

// SuspendReason is one inhibitor of driver suspend optimizations.
type SuspendReason uint8

const (
	// SuspendDHCP is set while DHCP is in progress.
	SuspendDHCP SuspendReason = 1 << iota
	// SuspendHighPerf is set while high performance mode is requested.
	SuspendHighPerf
	// SuspendScreen is set while the screen is on.
	SuspendScreen

	suspendAll = SuspendDHCP | SuspendHighPerf | SuspendScreen
)

// String returns the reason name, or a "|" separated list for a mask.
func (r SuspendReason) String() string {
	if r == 0 {
		return "NONE"
	}
	var parts []string
	if r&SuspendDHCP != 0 {
		parts = append(parts, "DHCP")
	}
	if r&SuspendHighPerf != 0 {
		parts = append(parts, "HIGH_PERF")
	}
	if r&SuspendScreen != 0 {
		parts = append(parts, "SCREEN")
	}
	if r&^suspendAll != 0 {
		parts = append(parts, "UNKNOWN")
	}
	return strings.Join(parts, "|")
}

func (r SuspendReason) valid() bool {
	return r == SuspendDHCP || r == SuspendHighPerf || r == SuspendScreen
}

// SuspendArbiter holds the inhibitor mask and the user's preference.
// Suspend optimizations are enabled only when no inhibitor is set and the
// user allows them. Owned by the dispatch goroutine.
type SuspendArbiter struct {
	mask      SuspendReason
	userWants bool
}

// NewSuspendArbiter returns an arbiter with no inhibitors.
func NewSuspendArbiter(userWants bool) *SuspendArbiter {
	return &SuspendArbiter{userWants: userWants}
}

// Inhibit sets reason's bit.
func (a *SuspendArbiter) Inhibit(reason SuspendReason) error {
	if !reason.valid() {
		return ErrInvalidSuspendReason
	}
	a.mask |= reason
	return nil
}

// Allow clears reason's bit.
func (a *SuspendArbiter) Allow(reason SuspendReason) error {
	if !reason.valid() {
		return ErrInvalidSuspendReason
	}
	a.mask &^= reason
	return nil
}

// Set inhibits reason when inhibit is true and allows it otherwise.
func (a *SuspendArbiter) Set(reason SuspendReason, inhibit bool) error {
	if inhibit {
		return a.Inhibit(reason)
	}
	return a.Allow(reason)
}

// SetUserPreference records whether the user allows suspend optimizations.
func (a *SuspendArbiter) SetUserPreference(allow bool) {
	a.userWants = allow
}

// Mask returns the current inhibitor bits.
func (a *SuspendArbiter) Mask() SuspendReason {
	return a.mask
}

// Enabled reports whether suspend optimizations should be on.
func (a *SuspendArbiter) Enabled() bool {
	return a.mask == 0 && a.userWants
}
