package clientmode

import (
	"github.com/stactl/stactl-go/pkg/capability"
	"github.com/stactl/stactl-go/pkg/hsm"
	"github.com/stactl/stactl-go/pkg/log"
	"github.com/stactl/stactl-go/pkg/watchdog"
	"github.com/stactl/stactl-go/pkg/wifi"
)

func (m *Machine) disconnectingEnter() {
	m.watchdogs.Arm(watchdog.PurposeDisconnecting, m.cfg.DisconnectingGuard)
}

func (m *Machine) disconnectingExit() {
	m.watchdogs.Invalidate(watchdog.PurposeDisconnecting)
}

func (m *Machine) disconnectingHandle(ev Event) hsm.Result {
	switch e := ev.(type) {
	case Disconnect:
		return m.discard()

	case WatchdogFired:
		if e.Token.Purpose != watchdog.PurposeDisconnecting {
			return hsm.NotHandled
		}
		if !m.watchdogs.IsLive(e.Token) {
			return m.stale()
		}
		m.log.Warn("disconnect not confirmed in time")
		m.cleanup()
		m.hsm.TransitionTo(StateDisconnected)

	case SupplicantStateChanged:
		m.cleanup()
		m.hsm.TransitionTo(StateDisconnected)
		return m.deferEvent(e)

	default:
		return hsm.NotHandled
	}
	return hsm.Handled
}

func (m *Machine) disconnectedEnter() {
	m.conn.isAutoRoaming = false
	m.conn.disconnectedAt = m.watchdogs.Now()
	m.c.Policy.ConnectionStateChanged(wifi.ConnectionStateDisconnected)
}

func (m *Machine) disconnectedExit() {
	m.c.Policy.ConnectionStateChanged(wifi.ConnectionStateTransitioning)
}

func (m *Machine) disconnectedHandle(ev Event) hsm.Result {
	switch ev.(type) {
	case Disconnect:
		m.issue(log.LayerLink, "disconnect", m.c.Link.Disconnect(m.ctx))
	case NetworkDisconnected:
		return m.discard()
	default:
		return hsm.NotHandled
	}
	return hsm.Handled
}

// cleanup returns the link to the disconnected baseline. It is idempotent.
func (m *Machine) cleanup() {
	if err := m.monitor.StopOffload(); err != nil {
		m.fail(log.LayerLink, "stop rssi monitoring", err)
	}
	m.conn.targetBSSID = wifi.BSSIDAny
	m.c.IP.Stop()
	m.info.Score = 0
	m.info.Reset()
	m.conn.isAutoRoaming = false
	m.publisher.Disconnected(m.info.Snapshot())
	m.linkProps = capability.LinkProperties{InterfaceName: m.cfg.Interface}
	m.monitor.ResetLevel()
	m.conn.currentBSSID = ""
	m.conn.currentNetworkID = wifi.InvalidNetworkID
}
