package sim

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/stactl/stactl-go/pkg/attempt"
	"github.com/stactl/stactl-go/pkg/clientmode"
	"github.com/stactl/stactl-go/pkg/watchdog"
	"github.com/stactl/stactl-go/pkg/wifi"
)

// Blocklist defaults.
const (
	DefaultBlocklistThreshold = 3
	DefaultBlocklistTTL       = 5 * time.Minute
	DefaultBlocklistSize      = 64
)

// Connector starts a connection. *clientmode.Machine implements it.
type Connector interface {
	Connect(networkID int, bssid string) error
}

// PolicyConfig configures a Policy.
type PolicyConfig struct {
	World     *World
	Profiles  *Profiles
	Scheduler watchdog.Scheduler

	// BlocklistThreshold is the number of consecutive failures after
	// which a BSSID is blocklisted.
	BlocklistThreshold int
	BlocklistTTL       time.Duration
	BlocklistSize      int

	Backoff BackoffConfig
	Logger  *slog.Logger
}

// Policy is a simulated network selection policy. It implements
// clientmode.SelectionPolicy and, while auto-join is enabled, reconnects
// to the best saved network whenever the machine reports Disconnected.
type Policy struct {
	cfg       PolicyConfig
	log       *slog.Logger
	blocklist *expirable.LRU[string, wifi.ReasonCode]
	backoff   *Backoff

	mu        sync.Mutex
	connector Connector
	failures  map[string]int
	wifiOn    bool
	autoJoin  bool
	untrusted bool
	screenOn  bool
	state     wifi.ConnectionState
	timer     watchdog.Timer
	scans     int
	started   int
	last      *attempt.Outcome
}

var _ clientmode.SelectionPolicy = (*Policy)(nil)

// NewPolicy returns a policy with auto-join disabled.
func NewPolicy(cfg PolicyConfig) *Policy {
	if cfg.BlocklistThreshold <= 0 {
		cfg.BlocklistThreshold = DefaultBlocklistThreshold
	}
	if cfg.BlocklistTTL <= 0 {
		cfg.BlocklistTTL = DefaultBlocklistTTL
	}
	if cfg.BlocklistSize <= 0 {
		cfg.BlocklistSize = DefaultBlocklistSize
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = watchdog.RealScheduler{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Policy{
		cfg:       cfg,
		log:       cfg.Logger.With("component", "policy"),
		blocklist: expirable.NewLRU[string, wifi.ReasonCode](cfg.BlocklistSize, nil, cfg.BlocklistTTL),
		backoff:   NewBackoff(cfg.Backoff),
		failures:  make(map[string]int),
		screenOn:  true,
		state:     wifi.ConnectionStateDisconnected,
	}
}

// SetConnector sets where auto-join connections are requested.
func (p *Policy) SetConnector(c Connector) {
	p.mu.Lock()
	p.connector = c
	p.mu.Unlock()
}

// TrackBSSID records an association result and reports whether bssid is
// now blocklisted.
func (p *Policy) TrackBSSID(bssid string, connected bool, reason wifi.ReasonCode) bool {
	if bssid == "" || bssid == wifi.BSSIDAny {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if connected {
		delete(p.failures, bssid)
		p.blocklist.Remove(bssid)
		return false
	}
	p.failures[bssid]++
	if p.failures[bssid] < p.cfg.BlocklistThreshold {
		return false
	}
	delete(p.failures, bssid)
	p.blocklist.Add(bssid, reason)
	p.log.Info("bssid blocklisted", "bssid", bssid, "reason", reason.String())
	return true
}

// Blocklisted reports whether bssid is currently blocklisted.
func (p *Policy) Blocklisted(bssid string) bool {
	return p.blocklist.Contains(bssid)
}

// Blocklist returns the blocklisted BSSIDs, oldest first.
func (p *Policy) Blocklist() []string {
	return p.blocklist.Keys()
}

func (p *Policy) AttemptStarted(attempt.Attempt) {
	p.mu.Lock()
	p.started++
	p.mu.Unlock()
}

func (p *Policy) AttemptEnded(o attempt.Outcome) {
	p.mu.Lock()
	p.last = &o
	p.mu.Unlock()
}

func (p *Policy) SetWifiEnabled(enabled bool) {
	p.mu.Lock()
	p.wifiOn = enabled
	if !enabled {
		p.stopTimerLocked()
	}
	p.mu.Unlock()
}

func (p *Policy) SetAutoJoinEnabled(enabled bool) {
	p.mu.Lock()
	p.autoJoin = enabled
	if !enabled {
		p.stopTimerLocked()
	} else if p.state == wifi.ConnectionStateDisconnected {
		p.scheduleLocked()
	}
	p.mu.Unlock()
}

func (p *Policy) SetUntrustedAllowed(allowed bool) {
	p.mu.Lock()
	p.untrusted = allowed
	p.mu.Unlock()
}

// ConnectionStateChanged schedules an auto-join attempt on Disconnected
// and resets the retry delay on Connected.
func (p *Policy) ConnectionStateChanged(state wifi.ConnectionState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = state
	switch state {
	case wifi.ConnectionStateConnected:
		p.backoff.Reset()
		p.stopTimerLocked()
	case wifi.ConnectionStateDisconnected:
		p.scheduleLocked()
	default:
		p.stopTimerLocked()
	}
}

func (p *Policy) ScreenStateChanged(on bool) {
	p.mu.Lock()
	p.screenOn = on
	p.mu.Unlock()
}

// ForceConnectivityScan runs a selection pass now if the machine is
// disconnected.
func (p *Policy) ForceConnectivityScan() {
	p.mu.Lock()
	p.scans++
	run := p.eligibleLocked()
	if run {
		p.stopTimerLocked()
	}
	p.mu.Unlock()
	if run {
		p.autoJoinNow()
	}
}

// Candidate is a network the policy would join.
type Candidate struct {
	NetworkID int
	BSSID     string
	RSSI      int
}

// Select returns the strongest AP of a selectable saved network that is
// not blocklisted.
func (p *Policy) Select() (Candidate, bool) {
	p.mu.Lock()
	untrusted := p.untrusted
	p.mu.Unlock()

	profiles := p.cfg.Profiles.List()
	for _, ap := range p.cfg.World.Scan() {
		if p.blocklist.Contains(ap.BSSID) {
			continue
		}
		for _, prof := range profiles {
			c := prof.Config
			if c.SSID != ap.SSID || c.Security != ap.Security {
				continue
			}
			if c.Ephemeral && !untrusted {
				continue
			}
			if !p.cfg.Profiles.Selectable(c.NetworkID) {
				continue
			}
			return Candidate{NetworkID: c.NetworkID, BSSID: ap.BSSID, RSSI: ap.RSSI}, true
		}
	}
	return Candidate{}, false
}

// PolicyState is a snapshot of the policy.
type PolicyState struct {
	WifiEnabled      bool
	AutoJoin         bool
	UntrustedAllowed bool
	ScreenOn         bool
	State            wifi.ConnectionState
	Scans            int
	AttemptsStarted  int
	RetryScheduled   bool
	NextDelay        time.Duration
	LastOutcome      *attempt.Outcome
}

// State returns a snapshot of the policy.
func (p *Policy) State() PolicyState {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := PolicyState{
		WifiEnabled:      p.wifiOn,
		AutoJoin:         p.autoJoin,
		UntrustedAllowed: p.untrusted,
		ScreenOn:         p.screenOn,
		State:            p.state,
		Scans:            p.scans,
		AttemptsStarted:  p.started,
		RetryScheduled:   p.timer != nil,
		NextDelay:        p.backoff.Current(),
	}
	if p.last != nil {
		o := *p.last
		s.LastOutcome = &o
	}
	return s
}

func (p *Policy) eligibleLocked() bool {
	return p.wifiOn && p.autoJoin && p.state == wifi.ConnectionStateDisconnected && p.connector != nil
}

func (p *Policy) scheduleLocked() {
	if !p.eligibleLocked() || p.timer != nil {
		return
	}
	delay := p.backoff.Next()
	var t watchdog.Timer
	t = p.cfg.Scheduler.AfterFunc(delay, func() {
		p.mu.Lock()
		if p.timer != t {
			p.mu.Unlock()
			return
		}
		p.timer = nil
		run := p.eligibleLocked()
		p.mu.Unlock()
		if run {
			p.autoJoinNow()
		}
	})
	p.timer = t
	p.log.Debug("auto-join scheduled", "delay", delay, "attempt", p.backoff.Attempts())
}

func (p *Policy) stopTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Policy) autoJoinNow() {
	cand, ok := p.Select()
	if !ok {
		p.log.Debug("auto-join found no candidate")
		p.mu.Lock()
		p.scheduleLocked()
		p.mu.Unlock()
		return
	}
	p.mu.Lock()
	c := p.connector
	p.mu.Unlock()
	p.log.Info("auto-join", "network_id", cand.NetworkID, "bssid", cand.BSSID, "rssi", cand.RSSI)
	if err := c.Connect(cand.NetworkID, cand.BSSID); err != nil {
		p.log.Warn("auto-join connect failed", "error", err)
	}
}
