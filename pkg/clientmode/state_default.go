package clientmode

import (
	"fmt"

	"github.com/stactl/stactl-go/pkg/hsm"
	"github.com/stactl/stactl-go/pkg/linkquality"
	"github.com/stactl/stactl-go/pkg/log"
	"github.com/stactl/stactl-go/pkg/watchdog"
	"github.com/stactl/stactl-go/pkg/wifi"
)

// defaultHandle is the root handler. Anything that reaches it without a
// case here is a defect.
func (m *Machine) defaultHandle(ev Event) hsm.Result {
	if whatOf(ev) == WhatNone {
		m.defect("invalid event", fmt.Sprintf("event with no kind: %T", ev))
		return hsm.Handled
	}

	switch e := ev.(type) {
	case Initialize:
		m.conn.initialized = true
		m.log.Info("client mode initialized")
	case BootCompleted:
		m.conn.bootCompleted = true
	case SetOperationalMode:
		m.setOperationalMode(e.Mode)
	case P2PReleased:
		if !m.conn.hasPendingMode {
			return m.discard()
		}
		m.applyOperationalMode(m.conn.pendingMode)
	case ScreenStateChanged:
		m.handleScreenState(e.On)
	case SetHighPerfMode:
		m.setSuspendOptimization(linkquality.SuspendHighPerf, !e.On)
	case SetSuspendOptimizations:
		m.setSuspendOptimization(e.Reason, e.Enabled)
	case SetSuspendPreference:
		before := m.suspend.Enabled()
		m.suspend.SetUserPreference(e.Allow)
		m.pushSuspend(before)
	case EnableRSSIPoll:
		m.monitor.SetPollEnabled(e.On)
	case InstallPacketFilter:
		m.issue(log.LayerLink, "install_packet_filter", m.c.Link.InstallPacketFilter(m.ctx, e.Program))
	case ReadPacketFilter:
		data, err := m.c.Link.ReadPacketFilter(m.ctx)
		if m.issue(log.LayerLink, "read_packet_filter", err) {
			m.c.IP.PacketFilterRead(data)
		}
	case StartKeepalive:
		reply(e.Reply, ErrInvalidNetwork)
	case StopKeepalive:
		reply(e.Reply, ErrInvalidNetwork)
	case StartRSSIMonitoring:
		reply(e.Reply, ErrInvalidNetwork)
		return m.discard()
	case StopRSSIMonitoring:
		return m.discard()
	case requestsChanged:
		if m.hsm.IsIn(StateConnectMode) {
			m.applyRequests()
		}
	case connectionInfoRequest:
		e.reply <- m.info.Snapshot()
	case WatchdogFired:
		if m.liveFire(e, watchdog.PurposeP2PDisable) && m.conn.hasPendingMode {
			m.log.Warn("peer-to-peer release timed out, switching mode anyway")
			m.applyOperationalMode(m.conn.pendingMode)
			return hsm.Handled
		}
		if !m.watchdogs.IsLive(e.Token) {
			return m.stale()
		}
		return m.discard()
	case InterfaceDown:
		m.classifier.InterfaceDown(m.cfg.Interface)
	case StartConnect, StartRoam, Disconnect, Reconnect, Reassociate, SaveNetwork, AcceptUnvalidated:
		return m.discard()
	default:
		if layerOf(ev) != log.LayerCore {
			return m.discard()
		}
		return hsm.NotHandled
	}
	return hsm.Handled
}

// setOperationalMode leaves or enters connect mode. Leaving waits for the
// peer-to-peer stack to release the radio, bounded by the P2P guard.
func (m *Machine) setOperationalMode(mode wifi.OperationalMode) {
	if mode != wifi.ModeConnect && m.hsm.IsIn(StateConnectMode) && m.c.PeerToPeer != nil {
		m.conn.pendingMode = mode
		m.conn.hasPendingMode = true
		m.watchdogs.Arm(watchdog.PurposeP2PDisable, m.cfg.P2PDisableGuard)
		m.c.PeerToPeer.Release()
		m.issue(log.LayerCore, "p2p_release", nil)
		return
	}
	m.applyOperationalMode(mode)
}

func (m *Machine) applyOperationalMode(mode wifi.OperationalMode) {
	m.conn.hasPendingMode = false
	m.watchdogs.Invalidate(watchdog.PurposeP2PDisable)

	old := m.conn.mode
	m.conn.mode = mode
	if old != mode {
		m.log.Info("operational mode changed", "from", old.String(), "to", mode.String())
		m.emit(log.Event{
			Direction:   log.DirectionIn,
			Layer:       log.LayerCore,
			Category:    log.CategoryState,
			StateChange: &log.StateChangeEvent{Entity: log.StateEntityMode, OldState: old.String(), NewState: mode.String()},
		})
	}

	if mode == wifi.ModeConnect {
		if !m.hsm.IsIn(StateConnectMode) {
			m.hsm.TransitionTo(StateDisconnected)
		}
		return
	}
	m.hsm.TransitionTo(StateDefault)
}

func (m *Machine) handleScreenState(on bool) {
	m.conn.screenOn = on
	m.setSuspendOptimization(linkquality.SuspendScreen, !on)
	m.monitor.SetPollEnabled(on)
	if on && m.hsm.IsIn(StateL2Connected) {
		m.startRSSIPoll()
	}
	m.c.Policy.ScreenStateChanged(on)
}

// setSuspendOptimization records reason's vote. Inside connect mode the
// driver follows the combined result.
func (m *Machine) setSuspendOptimization(reason linkquality.SuspendReason, enabled bool) {
	before := m.suspend.Enabled()
	if err := m.suspend.Set(reason, !enabled); err != nil {
		m.defect("suspend optimization", err.Error())
		return
	}
	m.pushSuspend(before)
}

// pushSuspend tells the driver when the arbiter's verdict moved away from
// before. Outside connect mode the verdict is applied on entry.
func (m *Machine) pushSuspend(before bool) {
	after := m.suspend.Enabled()
	if before != after && m.hsm.IsIn(StateConnectMode) {
		m.issue(log.LayerLink, "set_suspend_optimizations", m.c.Link.SetSuspendOptimizations(m.ctx, after))
	}
}

func (m *Machine) applyRequests() {
	m.c.Policy.SetAutoJoinEnabled(m.requests.Active(RequestConnection))
	m.c.Policy.SetUntrustedAllowed(m.requests.Active(RequestUntrusted))
}

func reply(fn func(error), err error) {
	if fn != nil {
		fn(err)
	}
}
