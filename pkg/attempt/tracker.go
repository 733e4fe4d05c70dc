package attempt

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Target identifies the network an attempt is for.
type Target struct {
	NetworkID int
	SSID      string
	BSSID     string
	RoamType  RoamType
}

// Config configures a Tracker.
type Config struct {
	// Reporters receive every start and end, in order.
	Reporters []Reporter

	// Guard is called after an attempt opens; typically it arms the
	// connect-timeout watchdog.
	Guard func(a Attempt)

	// Release is called after an attempt ends; typically it invalidates
	// the connect-timeout watchdog.
	Release func(o Outcome)

	// Now defaults to time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// Tracker enforces one open attempt at a time and one report per attempt.
// It is owned by the dispatch goroutine and is not safe for concurrent use.
type Tracker struct {
	cfg  Config
	open *Attempt

	begun uint64
	ended uint64
}

// NewTracker creates a tracker.
func NewTracker(cfg Config) *Tracker {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Tracker{cfg: cfg}
}

// Begin opens an attempt for target. It fails with ErrAttemptOpen, leaving
// the open attempt untouched, if one is already open.
func (t *Tracker) Begin(target Target) (Attempt, error) {
	if t.open != nil {
		t.cfg.Logger.Warn("attempt begin refused, attempt already open",
			"open_attempt", t.open.ID.String(),
			"network_id", target.NetworkID)
		return Attempt{}, ErrAttemptOpen
	}

	a := Attempt{
		ID:        uuid.New(),
		NetworkID: target.NetworkID,
		SSID:      target.SSID,
		BSSID:     target.BSSID,
		RoamType:  target.RoamType,
		Started:   t.cfg.Now(),
	}
	t.open = &a
	t.begun++

	t.cfg.Logger.Debug("attempt started",
		"attempt_id", a.ID.String(),
		"network_id", a.NetworkID,
		"bssid", a.BSSID,
		"roam_type", a.RoamType.String())

	if t.cfg.Guard != nil {
		t.cfg.Guard(a)
	}
	for _, r := range t.cfg.Reporters {
		r.AttemptStarted(a)
	}
	return a, nil
}

// End closes the open attempt with code and reports it. It returns false
// when no attempt was open.
func (t *Tracker) End(code FailureCode) (Outcome, bool) {
	if t.open == nil {
		return Outcome{}, false
	}

	o := Outcome{Attempt: *t.open, Code: code, Ended: t.cfg.Now()}
	t.open = nil
	t.ended++

	t.cfg.Logger.Debug("attempt ended",
		"attempt_id", o.ID.String(),
		"network_id", o.NetworkID,
		"code", code.String(),
		"duration", o.Duration())

	if t.cfg.Release != nil {
		t.cfg.Release(o)
	}
	for _, r := range t.cfg.Reporters {
		r.AttemptEnded(o)
	}
	return o, true
}

// Open returns the open attempt, if any.
func (t *Tracker) Open() (Attempt, bool) {
	if t.open == nil {
		return Attempt{}, false
	}
	return *t.open, true
}

// Counts returns how many attempts were begun and ended.
func (t *Tracker) Counts() (begun, ended uint64) {
	return t.begun, t.ended
}
