package clientmode

import (
	"fmt"
	"time"

	"github.com/stactl/stactl-go/pkg/attempt"
	"github.com/stactl/stactl-go/pkg/capability"
	"github.com/stactl/stactl-go/pkg/hsm"
	"github.com/stactl/stactl-go/pkg/log"
	"github.com/stactl/stactl-go/pkg/wifi"
)

func (m *Machine) obtainingIPEnter() {
	cfg, ok := m.c.Profiles.Network(m.conn.currentNetworkID)
	m.c.IP.Stop()

	pc := ProvisioningConfig{PreDHCPAction: true}
	if ok {
		m.c.IP.SetHTTPProxy(cfg.HTTPProxy)
		pc.DisplayName = cfg.SSID
		pc.RandomizedMAC = m.cfg.ConnectedMACRandomization && cfg.RandomizeMAC
		if cfg.IPAssignment == wifi.IPAssignmentStatic && cfg.Static != nil {
			static := *cfg.Static
			pc.Static = &static
			pc.PreDHCPAction = false
		}
	}
	if err := m.c.IP.Start(pc); !m.issue(log.LayerIP, "start_provisioning", err) {
		_ = m.box.Post(ProvisioningFailure{Err: err})
	}
	m.publisher.SendNetworkInfo(capability.DetailedObtainingIPAddr, m.info.Snapshot())
}

func (m *Machine) obtainingIPHandle(ev Event) hsm.Result {
	switch ev.(type) {
	case SaveNetwork, SetHighPerfMode:
		return m.deferEvent(ev)
	case StartConnect, StartRoam:
		return m.discard()
	case NetworkDisconnected:
		m.tracker.End(attempt.FailureNetworkDisconnectedDuringSetup)
		return hsm.NotHandled
	}
	return hsm.NotHandled
}

func (m *Machine) connectedEnter() {
	netID := m.conn.currentNetworkID
	m.tracker.End(attempt.FailureNone)

	m.c.Policy.ConnectionStateChanged(wifi.ConnectionStateConnected)
	m.c.Profiles.NoteConnected(netID, m.conn.currentBSSID)
	m.classifier.Connected(netID)

	m.conn.isAutoRoaming = false
	m.conn.roamFailCount = 0
	m.conn.lastDriverRoamAttempt = time.Time{}
	m.conn.targetNetworkID = wifi.InvalidNetworkID

	m.c.Recovery.ConnectedStateTransition(true)
	m.publisher.SendNetworkInfo(capability.DetailedConnected, m.info.Snapshot())
	m.publishCapabilities()
}

func (m *Machine) connectedExit() {
	m.c.Policy.ConnectionStateChanged(wifi.ConnectionStateTransitioning)
	m.c.Recovery.ConnectedStateTransition(false)
}

func (m *Machine) connectedHandle(ev Event) hsm.Result {
	switch e := ev.(type) {
	case NetworkUnwanted:
		if !m.publisher.IsCurrent(e.AgentID) {
			return m.stale()
		}
		reason, err := capability.ParseUnwantedReason(e.Reason)
		if err != nil {
			m.defect("network unwanted", err.Error())
			return hsm.Handled
		}
		m.handleUnwanted(reason)

	case NetworkValidation:
		if !m.publisher.IsCurrent(e.AgentID) {
			return m.stale()
		}
		if e.Valid {
			m.c.Profiles.EnableNetwork(m.conn.currentNetworkID)
			m.c.Profiles.SetValidatedInternetAccess(m.conn.currentNetworkID, true)
		}

	case AcceptUnvalidated:
		if !m.publisher.IsCurrent(e.AgentID) {
			return m.stale()
		}
		m.c.Profiles.SetNoInternetAccessExpected(m.conn.currentNetworkID, e.Accept)

	case AssociatedBSSID:
		m.conn.lastDriverRoamAttempt = m.watchdogs.Now()
		return hsm.NotHandled

	case NetworkDisconnected:
		m.tracker.End(attempt.FailureNetworkDisconnectedDuringSetup)
		m.classifier.Disconnected(m.conn.currentNetworkID, e.BSSID, e.Reason)
		return hsm.NotHandled

	case StartRoam:
		cfg, ok := m.c.Profiles.Network(e.NetworkID)
		if !ok {
			m.fail(log.LayerCore, "roam refused", fmt.Errorf("%w: %d", ErrUnknownNetwork, e.NetworkID))
			return hsm.Handled
		}
		bssid := e.BSSID
		if bssid == "" {
			bssid = wifi.BSSIDAny
		}
		m.conn.targetNetworkID = e.NetworkID
		m.conn.targetBSSID = bssid
		m.conn.isAutoRoaming = true
		m.beginAttempt(cfg, bssid, attempt.RoamEnterprise)
		if !m.issue(log.LayerLink, "roam", m.c.Link.Roam(m.ctx, cfg, bssid)) {
			m.tracker.End(attempt.FailureRedundantOrRejectedByDriver)
			m.conn.isAutoRoaming = false
			return hsm.Handled
		}
		m.hsm.TransitionTo(StateRoaming)

	default:
		return hsm.NotHandled
	}
	return hsm.Handled
}

// handleUnwanted applies the connectivity stack's verdict on the current
// network.
func (m *Machine) handleUnwanted(reason capability.UnwantedReason) {
	id := m.conn.currentNetworkID
	m.log.Info("network unwanted", "network_id", id, "reason", reason.String())

	switch reason {
	case capability.UnwantedDisconnect:
		m.issue(log.LayerLink, "disconnect", m.c.Link.Disconnect(m.ctx))
		m.hsm.TransitionTo(StateDisconnecting)

	case capability.UnwantedValidationFailed:
		m.c.Profiles.ReportNoInternetAccess(id)
		cfg, ok := m.c.Profiles.Network(id)
		if !ok || cfg.NoInternetExpected {
			return
		}
		lastID, at := m.c.Profiles.LastSelected()
		if lastID == id && m.watchdogs.Now().Sub(at) < m.cfg.LastSelectedExpiry {
			return
		}
		m.c.Profiles.UpdateSelectionStatus(id, wifi.DisableNoInternetTemporary)

	case capability.UnwantedDisableAutojoin:
		m.c.Profiles.SetValidatedInternetAccess(id, false)
		m.c.Profiles.UpdateSelectionStatus(id, wifi.DisableNoInternetPermanent)
	}
}
