package clientmode

import (
	"errors"

	"github.com/stactl/stactl-go/pkg/attempt"
	"github.com/stactl/stactl-go/pkg/capability"
	"github.com/stactl/stactl-go/pkg/hsm"
	"github.com/stactl/stactl-go/pkg/linkquality"
	"github.com/stactl/stactl-go/pkg/log"
	"github.com/stactl/stactl-go/pkg/watchdog"
	"github.com/stactl/stactl-go/pkg/wifi"
)

var errProvisioningFailed = errors.New("ip provisioning failed")

func (m *Machine) l2ConnectedEnter() {
	cfg, _ := m.c.Profiles.Network(m.conn.currentNetworkID)
	id := m.publisher.Register(m.info.Snapshot(), cfg, m.linkProps)
	m.log.Debug("link established", "agent_id", id.String(), "bssid", m.conn.currentBSSID)
	m.conn.targetBSSID = wifi.BSSIDAny
	if m.monitor.PollEnabled() {
		m.startRSSIPoll()
	}
}

func (m *Machine) l2ConnectedExit() {
	m.watchdogs.Invalidate(watchdog.PurposeRSSIPoll)
	m.c.IP.Stop()
	if m.conn.currentBSSID != "" || m.conn.currentNetworkID != wifi.InvalidNetworkID {
		m.cleanup()
	}
}

func (m *Machine) l2ConnectedHandle(ev Event) hsm.Result {
	switch e := ev.(type) {
	case PreDHCPAction:
		m.setSuspendOptimization(linkquality.SuspendDHCP, false)
		m.issue(log.LayerLink, "set_power_save", m.c.Link.SetPowerSave(m.ctx, false))
		m.c.IP.CompletedPreDHCPAction()

	case PostDHCPAction:
		m.setSuspendOptimization(linkquality.SuspendDHCP, true)
		m.issue(log.LayerLink, "set_power_save", m.c.Link.SetPowerSave(m.ctx, true))

	case ProvisioningSuccess:
		m.setLinkProperties(e.LinkProperties)
		m.hsm.TransitionTo(StateConnected)

	case ProvisioningFailure:
		err := e.Err
		if err == nil {
			err = errProvisioningFailed
		}
		m.fail(log.LayerIP, "ip provisioning failed", err)
		m.classifier.IPConfigurationLost(m.conn.currentNetworkID)
		m.tracker.End(attempt.FailureDHCPFailed)
		m.issue(log.LayerLink, "disconnect", m.c.Link.Disconnect(m.ctx))
		m.hsm.TransitionTo(StateDisconnecting)

	case LinkPropertiesChanged:
		m.setLinkProperties(e.LinkProperties)

	case ReachabilityLost:
		if !m.cfg.DisconnectOnReachabilityLoss {
			m.log.Info("ip reachability lost, staying connected", "detail", e.Detail)
			return hsm.Handled
		}
		m.log.Warn("ip reachability lost, disconnecting", "detail", e.Detail)
		m.issue(log.LayerLink, "disconnect", m.c.Link.Disconnect(m.ctx))
		m.hsm.TransitionTo(StateDisconnecting)

	case Disconnect:
		m.issue(log.LayerLink, "disconnect", m.c.Link.Disconnect(m.ctx))
		m.hsm.TransitionTo(StateDisconnecting)

	case WatchdogFired:
		if e.Token.Purpose != watchdog.PurposeRSSIPoll {
			return hsm.NotHandled
		}
		if !m.watchdogs.IsLive(e.Token) {
			return m.stale()
		}
		if !m.monitor.PollEnabled() {
			return hsm.Handled
		}
		m.pollSignal()
		m.watchdogs.Arm(watchdog.PurposeRSSIPoll, m.monitor.PollInterval())

	case EnableRSSIPoll:
		m.monitor.SetPollEnabled(e.On)
		if e.On {
			m.startRSSIPoll()
		} else {
			m.watchdogs.Invalidate(watchdog.PurposeRSSIPoll)
		}

	case StartRSSIMonitoring:
		err := m.monitor.StartOffload(e.Thresholds)
		if err != nil {
			m.fail(log.LayerLink, "start rssi monitoring", err)
		} else {
			m.issue(log.LayerLink, "start_rssi_monitoring", nil)
		}
		reply(e.Reply, err)

	case StopRSSIMonitoring:
		m.issue(log.LayerLink, "stop_rssi_monitoring", m.monitor.StopOffload())

	case RSSIThresholdBreached:
		lo, hi, err := m.monitor.Breach(e.RSSI)
		if err != nil {
			m.fail(log.LayerLink, "rssi threshold breach", err)
		} else {
			m.log.Debug("rssi bracket moved", "rssi", e.RSSI, "min", lo, "max", hi)
		}
		m.publishCapabilities()

	case StartKeepalive:
		err := m.c.Link.StartKeepalive(m.ctx, e.Slot, e.Packet, e.Interval)
		m.issue(log.LayerLink, "start_keepalive", err)
		reply(e.Reply, err)

	case StopKeepalive:
		err := m.c.Link.StopKeepalive(m.ctx, e.Slot)
		m.issue(log.LayerLink, "stop_keepalive", err)
		reply(e.Reply, err)

	case SaveNetwork:
		if e.NetworkID != m.conn.currentNetworkID {
			return hsm.NotHandled
		}
		if cfg, ok := m.c.Profiles.Network(e.NetworkID); ok {
			m.c.IP.SetHTTPProxy(cfg.HTTPProxy)
		}
		m.publishCapabilities()

	case AssociatedBSSID:
		m.conn.currentBSSID = e.BSSID
		m.info.BSSID = e.BSSID
		m.info.UpdatedAt = m.watchdogs.Now()

	default:
		return hsm.NotHandled
	}
	return hsm.Handled
}

// startRSSIPoll begins a new poll chain. Any earlier chain goes stale.
func (m *Machine) startRSSIPoll() {
	tok := m.watchdogs.Mint(watchdog.PurposeRSSIPoll)
	_ = m.box.Post(WatchdogFired{Token: tok})
}

func (m *Machine) pollSignal() {
	change, err := m.monitor.Poll(m.ctx, m.c.Link)
	if err != nil {
		m.fail(log.LayerLink, "signal poll", err)
		return
	}
	if change.LevelChanged {
		m.publishCapabilities()
		m.c.Broadcaster.SignalChanged(m.info.RSSI, change.Level)
	}
}

// publishCapabilities recomputes the capability set and sends it if it
// changed.
func (m *Machine) publishCapabilities() {
	cfg, _ := m.c.Profiles.Network(m.conn.currentNetworkID)
	m.publisher.Update(m.info.Snapshot(), cfg)
}

func (m *Machine) setLinkProperties(lp capability.LinkProperties) {
	m.linkProps = lp.Clone()
	if m.linkProps.InterfaceName == "" {
		m.linkProps.InterfaceName = m.cfg.Interface
	}
	for _, p := range m.linkProps.Addresses {
		if p.Addr().Is4() {
			m.info.IPAddress = p.Addr()
			break
		}
	}
	m.publisher.SendLinkProperties(m.linkProps)
}
