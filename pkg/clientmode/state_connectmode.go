package clientmode

import (
	"fmt"
	"net"

	"github.com/google/uuid"

	"github.com/stactl/stactl-go/pkg/attempt"
	"github.com/stactl/stactl-go/pkg/failure"
	"github.com/stactl/stactl-go/pkg/hsm"
	"github.com/stactl/stactl-go/pkg/log"
	"github.com/stactl/stactl-go/pkg/watchdog"
	"github.com/stactl/stactl-go/pkg/wifi"
)

var macNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("stactl:connected-mac"))

func (m *Machine) connectModeEnter() {
	if !m.issue(log.LayerLink, "setup_client_mode", m.c.Link.SetupClientMode(m.ctx)) {
		m.conn.mode = wifi.ModeDisabled
		m.hsm.TransitionTo(StateDefault)
		return
	}
	m.c.IP.SetMulticastFilter(true)
	m.issue(log.LayerLink, "set_suspend_optimizations", m.c.Link.SetSuspendOptimizations(m.ctx, m.suspend.Enabled()))
	m.issue(log.LayerLink, "set_power_save", m.c.Link.SetPowerSave(m.ctx, true))
	m.issue(log.LayerLink, "remove_all_networks", m.c.Link.RemoveAllNetworks(m.ctx))

	m.info.Reset()
	m.resetTargets()

	m.publisher.SetAvailable(true)
	m.c.Policy.SetWifiEnabled(true)
	m.applyRequests()
}

func (m *Machine) connectModeExit() {
	m.tracker.End(attempt.FailureNetworkDisconnectedDuringSetup)

	m.publisher.SetAvailable(false)
	m.c.Policy.SetAutoJoinEnabled(false)
	m.c.Policy.SetWifiEnabled(false)

	m.issue(log.LayerLink, "remove_all_networks", m.c.Link.RemoveAllNetworks(m.ctx))
	m.issue(log.LayerLink, "stop_client_mode", m.c.Link.StopClientMode(m.ctx))

	if m.conn.currentBSSID != "" || m.conn.currentNetworkID != wifi.InvalidNetworkID {
		m.cleanup()
	}
	m.info.Reset()
	m.resetTargets()
}

func (m *Machine) connectModeHandle(ev Event) hsm.Result {
	switch e := ev.(type) {
	case AssociationRejected:
		d := m.classifier.AssociationRejected(m.conn.targetNetworkID, failure.Rejection{
			BSSID:    e.BSSID,
			Status:   e.Status,
			TimedOut: e.TimedOut,
		}, m.conn.targetBSSID)
		m.tracker.End(d.Code)

	case AuthenticationFailed:
		d := m.classifier.AuthenticationFailed(m.conn.targetNetworkID, e.Reason)
		m.tracker.End(d.Code)

	case SupplicantStateChanged:
		m.applySupplicantState(e)
		switch {
		case e.State == wifi.SupplicantDisconnected && !m.hsm.IsIn(StateDisconnected):
			m.cleanup()
			m.hsm.TransitionTo(StateDisconnected)
		case e.State == wifi.SupplicantCompleted:
			m.c.IP.ConfirmConfiguration()
		}

	case StartConnect:
		m.startConnect(e)

	case NetworkConnected:
		cfg, ok := m.c.Profiles.Network(e.NetworkID)
		if !ok {
			m.fail(log.LayerLink, "connected to unknown network", fmt.Errorf("%w: %d", ErrUnknownNetwork, e.NetworkID))
			m.issue(log.LayerLink, "disconnect", m.c.Link.Disconnect(m.ctx))
			return hsm.Handled
		}
		m.conn.currentNetworkID = e.NetworkID
		m.conn.currentBSSID = e.BSSID
		m.info.NetworkID = e.NetworkID
		m.info.BSSID = e.BSSID
		m.info.SSID = cfg.SSID
		m.info.MeteredHint = cfg.Metered
		m.info.Ephemeral = cfg.Ephemeral
		m.info.UpdatedAt = m.watchdogs.Now()
		m.c.Policy.TrackBSSID(e.BSSID, true, 0)
		m.hsm.TransitionTo(StateObtainingIP)

	case NetworkDisconnected:
		m.log.Info("network disconnected",
			"bssid", e.BSSID,
			"reason", e.Reason.String(),
			"locally_generated", e.LocallyGenerated)
		m.cleanup()
		m.hsm.TransitionTo(StateDisconnected)

	case Reconnect:
		m.c.Policy.ForceConnectivityScan()

	case Reassociate:
		m.issue(log.LayerLink, "reassociate", m.c.Link.Reassociate(m.ctx))

	case SIMIdentityRequested:
		identity, err := m.c.Profiles.SIMIdentity(e.NetworkID)
		if err != nil {
			m.fail(log.LayerLink, "sim identity unavailable", err)
			m.issue(log.LayerLink, "disconnect", m.c.Link.Disconnect(m.ctx))
			return hsm.Handled
		}
		m.issue(log.LayerLink, "sim_identity_response", m.c.Link.SIMIdentityResponse(m.ctx, e.NetworkID, identity))

	case WatchdogFired:
		if e.Token.Purpose != watchdog.PurposeConnectTimeout {
			return hsm.NotHandled
		}
		if !m.watchdogs.IsLive(e.Token) {
			return m.stale()
		}
		m.log.Warn("connection attempt timed out", "network_id", m.conn.targetNetworkID)
		m.tracker.End(attempt.FailureAssociationTimedOut)
		m.issue(log.LayerLink, "disconnect", m.c.Link.Disconnect(m.ctx))
		m.cleanup()
		m.hsm.TransitionTo(StateDisconnected)

	case InterfaceDown:
		m.classifier.InterfaceDown(m.cfg.Interface)
		m.tracker.End(attempt.FailureNetworkDisconnectedDuringSetup)
		if !m.hsm.IsIn(StateDisconnected) {
			m.cleanup()
			m.hsm.TransitionTo(StateDisconnected)
		}

	default:
		return hsm.NotHandled
	}
	return hsm.Handled
}

func (m *Machine) startConnect(e StartConnect) {
	cfg, ok := m.c.Profiles.Network(e.NetworkID)
	if !ok {
		m.fail(log.LayerCore, "connect refused", fmt.Errorf("%w: %d", ErrUnknownNetwork, e.NetworkID))
		return
	}
	bssid := e.BSSID
	if bssid == "" {
		bssid = wifi.BSSIDAny
	}
	m.conn.targetNetworkID = e.NetworkID
	m.conn.targetBSSID = bssid
	m.conn.lastConnectAttempt = m.watchdogs.Now()
	m.beginAttempt(cfg, bssid, attempt.RoamUnrelated)

	if m.cfg.ConnectedMACRandomization && cfg.RandomizeMAC {
		mac := randomizedMAC(cfg)
		if m.issue(log.LayerLink, "set_mac_address", m.c.Link.SetMACAddress(m.ctx, mac)) {
			m.info.MACAddress = mac.String()
		}
	}

	if !m.issue(log.LayerLink, "connect", m.c.Link.Connect(m.ctx, cfg, bssid)) {
		m.tracker.End(attempt.FailureRedundantOrRejectedByDriver)
		return
	}
	m.hsm.TransitionTo(StateDisconnecting)
}

// beginAttempt opens a connection attempt, first closing any attempt the
// new one supersedes.
func (m *Machine) beginAttempt(cfg *wifi.NetworkConfig, bssid string, roam attempt.RoamType) {
	if _, open := m.tracker.Open(); open {
		m.tracker.End(attempt.FailureRedundantOrRejectedByDriver)
	}
	_, err := m.tracker.Begin(attempt.Target{
		NetworkID: cfg.NetworkID,
		SSID:      cfg.SSID,
		BSSID:     bssid,
		RoamType:  roam,
	})
	if err != nil {
		m.defect("attempt begin", err.Error())
	}
}

func (m *Machine) applySupplicantState(e SupplicantStateChanged) {
	old := m.info.SupplicantState
	m.info.SupplicantState = e.State
	if e.State.IsConnecting() || e.State == wifi.SupplicantCompleted {
		if e.BSSID != "" {
			m.info.BSSID = e.BSSID
		}
		if e.SSID != "" {
			m.info.SSID = e.SSID
		}
	}
	m.info.UpdatedAt = m.watchdogs.Now()
	if old == e.State {
		return
	}
	m.emit(log.Event{
		Direction:   log.DirectionIn,
		Layer:       log.LayerLink,
		Category:    log.CategoryState,
		BSSID:       e.BSSID,
		StateChange: &log.StateChangeEvent{Entity: log.StateEntitySupplicant, OldState: old.String(), NewState: e.State.String()},
	})
	m.c.Broadcaster.SupplicantStateChanged(e.State)
}

// resetTargets forgets the pending target. The current network is only ever
// cleared by cleanup.
func (m *Machine) resetTargets() {
	m.conn.targetNetworkID = wifi.InvalidNetworkID
	m.conn.targetBSSID = wifi.BSSIDAny
	m.conn.isAutoRoaming = false
}

// randomizedMAC derives a stable, locally administered unicast address for
// cfg.
func randomizedMAC(cfg *wifi.NetworkConfig) net.HardwareAddr {
	u := uuid.NewSHA1(macNamespace, []byte(cfg.SSID+"/"+cfg.Security.String()))
	mac := make(net.HardwareAddr, 6)
	copy(mac, u[:6])
	mac[0] = mac[0]&^0x01 | 0x02
	return mac
}
