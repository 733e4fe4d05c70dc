package clientmode

import (
	"github.com/stactl/stactl-go/pkg/attempt"
	"github.com/stactl/stactl-go/pkg/hsm"
	"github.com/stactl/stactl-go/pkg/log"
	"github.com/stactl/stactl-go/pkg/watchdog"
	"github.com/stactl/stactl-go/pkg/wifi"
)

func (m *Machine) roamingEnter() {
	m.conn.associated = false
	m.watchdogs.Arm(watchdog.PurposeRoam, m.cfg.RoamGuard)
}

func (m *Machine) roamingExit() {
	m.watchdogs.Invalidate(watchdog.PurposeRoam)
}

func (m *Machine) roamingHandle(ev Event) hsm.Result {
	switch e := ev.(type) {
	case WatchdogFired:
		if e.Token.Purpose != watchdog.PurposeRoam {
			return hsm.NotHandled
		}
		if !m.watchdogs.IsLive(e.Token) {
			return m.stale()
		}
		m.log.Warn("roam timed out", "target_bssid", m.conn.targetBSSID)
		m.tracker.End(attempt.FailureRoamTimeout)
		m.conn.roamFailCount++
		m.cleanup()
		m.issue(log.LayerLink, "disconnect", m.c.Link.Disconnect(m.ctx))
		m.hsm.TransitionTo(StateDisconnected)

	case SupplicantStateChanged:
		target := m.conn.targetBSSID
		m.applySupplicantState(e)
		switch e.State {
		case wifi.SupplicantAssociated:
			if !m.roamTarget(e.BSSID) {
				m.log.Debug("association with non-target bssid ignored", "bssid", e.BSSID, "target_bssid", target)
				break
			}
			m.conn.associated = true
			if e.BSSID != "" {
				m.conn.targetBSSID = e.BSSID
			}
		case wifi.SupplicantDisconnected, wifi.SupplicantInactive, wifi.SupplicantInterfaceDisabled:
			if e.BSSID != "" && e.BSSID == target {
				m.tracker.End(attempt.FailureNetworkDisconnectedDuringSetup)
				m.cleanup()
				m.hsm.TransitionTo(StateDisconnected)
			}
		}

	case NetworkConnected:
		if !m.conn.associated || !m.roamTarget(e.BSSID) {
			return m.discard()
		}
		m.conn.currentNetworkID = e.NetworkID
		m.conn.currentBSSID = e.BSSID
		m.info.NetworkID = e.NetworkID
		m.info.BSSID = e.BSSID
		m.info.UpdatedAt = m.watchdogs.Now()
		m.c.Policy.TrackBSSID(e.BSSID, true, 0)
		m.tracker.End(attempt.FailureNone)
		m.conn.targetBSSID = wifi.BSSIDAny
		m.hsm.TransitionTo(StateConnected)

	case NetworkDisconnected:
		if e.BSSID != m.conn.targetBSSID {
			return m.discard()
		}
		m.tracker.End(attempt.FailureNetworkDisconnectedDuringSetup)
		m.cleanup()
		m.hsm.TransitionTo(StateDisconnected)

	case NetworkUnwanted:
		return m.discard()

	default:
		return hsm.NotHandled
	}
	return hsm.Handled
}

// roamTarget reports whether bssid is where the roam is headed. A roam
// towards "any" accepts the first BSSID that associates.
func (m *Machine) roamTarget(bssid string) bool {
	if m.conn.targetBSSID == wifi.BSSIDAny {
		return bssid != ""
	}
	return bssid == m.conn.targetBSSID
}
