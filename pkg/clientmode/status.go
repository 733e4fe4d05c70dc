package clientmode

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/stactl/stactl-go/pkg/attempt"
	"github.com/stactl/stactl-go/pkg/capability"
	"github.com/stactl/stactl-go/pkg/linkquality"
	"github.com/stactl/stactl-go/pkg/wifi"
)

// connectionContext is the bookkeeping that survives state changes.
type connectionContext struct {
	mode wifi.OperationalMode

	// pendingMode is a mode change waiting for the peer-to-peer stack to
	// release the radio.
	pendingMode    wifi.OperationalMode
	hasPendingMode bool

	currentNetworkID int
	currentBSSID     string
	targetNetworkID  int
	targetBSSID      string

	isAutoRoaming bool
	roamFailCount int

	// associated is set once the roam target answered.
	associated bool

	lastDriverRoamAttempt time.Time
	lastConnectAttempt    time.Time
	disconnectedAt        time.Time

	screenOn      bool
	initialized   bool
	bootCompleted bool
}

func newConnectionContext() connectionContext {
	return connectionContext{
		mode:             wifi.ModeDisabled,
		currentNetworkID: wifi.InvalidNetworkID,
		targetNetworkID:  wifi.InvalidNetworkID,
		targetBSSID:      wifi.BSSIDAny,
		screenOn:         true,
	}
}

// Status is a point-in-time copy of the machine, safe to read from any
// goroutine.
type Status struct {
	State StateID
	Path  []StateID
	Mode  wifi.OperationalMode

	Info wifi.Info

	CurrentNetworkID int
	CurrentBSSID     string
	TargetNetworkID  int
	TargetBSSID      string

	AutoRoaming   bool
	RoamFailCount int

	// Attempt is the open connection attempt, if any.
	Attempt *attempt.Attempt

	SuspendMask    linkquality.SuspendReason
	SuspendEnabled bool
	PollEnabled    bool
	OffloadActive  bool
	Thresholds     []int
	SignalLevel    int

	AgentID        uuid.UUID
	Capabilities   capability.Capabilities
	Available      bool
	LinkProperties capability.LinkProperties

	DisconnectedSince     time.Time
	LastDriverRoamAttempt time.Time
	LastConnectAttempt    time.Time

	ScreenOn bool
}

func (m *Machine) publishStatus() {
	s := Status{
		State:                 m.hsm.Current(),
		Path:                  m.hsm.Path(),
		Mode:                  m.conn.mode,
		Info:                  m.info.Snapshot(),
		CurrentNetworkID:      m.conn.currentNetworkID,
		CurrentBSSID:          m.conn.currentBSSID,
		TargetNetworkID:       m.conn.targetNetworkID,
		TargetBSSID:           m.conn.targetBSSID,
		AutoRoaming:           m.conn.isAutoRoaming,
		RoamFailCount:         m.conn.roamFailCount,
		SuspendMask:           m.suspend.Mask(),
		SuspendEnabled:        m.suspend.Enabled(),
		PollEnabled:           m.monitor.PollEnabled(),
		OffloadActive:         m.monitor.OffloadActive(),
		Thresholds:            m.monitor.Thresholds().Ints(),
		SignalLevel:           m.monitor.Level(),
		AgentID:               m.publisher.AgentID(),
		Available:             m.publisher.Available(),
		LinkProperties:        m.linkProps.Clone(),
		LastDriverRoamAttempt: m.conn.lastDriverRoamAttempt,
		LastConnectAttempt:    m.conn.lastConnectAttempt,
		ScreenOn:              m.conn.screenOn,
	}
	if a, ok := m.tracker.Open(); ok {
		s.Attempt = &a
	}
	if caps, ok := m.publisher.Current(); ok && m.publisher.HasAgent() {
		s.Capabilities = caps
	}
	if s.State == StateDisconnected {
		s.DisconnectedSince = m.conn.disconnectedAt
	}

	m.mu.Lock()
	m.status = s
	m.mu.Unlock()
}

// Status returns a copy of the snapshot taken after the last dispatched
// event. Callers may modify it freely.
func (m *Machine) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.clone()
}

func (s Status) clone() Status {
	s.Path = slices.Clone(s.Path)
	s.Thresholds = slices.Clone(s.Thresholds)
	s.LinkProperties = s.LinkProperties.Clone()
	if s.Attempt != nil {
		a := *s.Attempt
		s.Attempt = &a
	}
	return s
}

// DisconnectedDuration returns how long the machine has been in
// Disconnected, or zero in any other state.
func (m *Machine) DisconnectedDuration() time.Duration {
	s := m.Status()
	if s.State != StateDisconnected || s.DisconnectedSince.IsZero() {
		return 0
	}
	return m.watchdogs.Now().Sub(s.DisconnectedSince)
}
