package sim_test

import (
	"errors"
	"log/slog"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stactl/stactl-go/internal/sim"
	"github.com/stactl/stactl-go/pkg/attempt"
	"github.com/stactl/stactl-go/pkg/clientmode"
	"github.com/stactl/stactl-go/pkg/failure"
	"github.com/stactl/stactl-go/pkg/watchdog/watchdogtest"
	"github.com/stactl/stactl-go/pkg/wifi"
)

const (
	homeID = 1
	cafeID = 2
	corpID = 3

	homeStrong = "aa:aa:aa:aa:aa:01"
	homeWeak   = "aa:aa:aa:aa:aa:02"
	cafeBSSID  = "cc:cc:cc:cc:cc:01"
	corpBSSID  = "ee:ee:ee:ee:ee:01"

	homePass = "correct horse battery"
)

var epoch = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func accessPoints() []sim.AccessPoint {
	return []sim.AccessPoint{
		{SSID: "home", BSSID: homeStrong, Security: wifi.SecurityWPA2PSK, Passphrase: homePass,
			RSSI: -50, FrequencyMHz: 5180, LinkSpeedMbps: 866, Internet: true},
		{SSID: "home", BSSID: homeWeak, Security: wifi.SecurityWPA2PSK, Passphrase: homePass,
			RSSI: -65, FrequencyMHz: 2437, LinkSpeedMbps: 144, Internet: true},
		{SSID: "cafe", BSSID: cafeBSSID, Security: wifi.SecurityOpen,
			RSSI: -70, FrequencyMHz: 2412, LinkSpeedMbps: 72},
		{SSID: "corp", BSSID: corpBSSID, Security: wifi.SecurityEAP,
			RSSI: -60, FrequencyMHz: 5500, LinkSpeedMbps: 433, Internet: true},
	}
}

func savedNetworks() []wifi.NetworkConfig {
	return []wifi.NetworkConfig{
		{NetworkID: homeID, SSID: "home", Security: wifi.SecurityWPA2PSK, Passphrase: homePass},
		{NetworkID: cafeID, SSID: "cafe", Security: wifi.SecurityOpen},
		{NetworkID: corpID, SSID: "corp", Security: wifi.SecurityEAP},
	}
}

type rig struct {
	t     *testing.T
	env   *sim.Environment
	m     *clientmode.Machine
	sched *watchdogtest.Scheduler
}

func newRig(t *testing.T, opts ...func(*sim.Config)) *rig {
	t.Helper()
	sched := watchdogtest.NewScheduler(epoch)
	logger := slog.New(slog.DiscardHandler)

	cfg := sim.Config{
		Interface:     "wlan0",
		AccessPoints:  accessPoints(),
		Networks:      savedNetworks(),
		SIMIdentities: map[int]string{corpID: "0001010123456789@wlan.mnc001.mcc001.3gppnetwork.org"},
		Backoff:       sim.BackoffConfig{Seed: 1},
		Scheduler:     sched,
		Logger:        logger,
	}
	for _, o := range opts {
		o(&cfg)
	}
	env := sim.New(cfg)

	mc := clientmode.DefaultConfig()
	mc.Interface = cfg.Interface
	mc.Scheduler = sched
	mc.Logger = logger
	mc.BugReportInterval = -1
	m, err := clientmode.New(mc, env.Collaborators())
	require.NoError(t, err)
	env.Attach(m)
	t.Cleanup(m.Shutdown)

	return &rig{t: t, env: env, m: m, sched: sched}
}

func (r *rig) advance(d time.Duration) {
	r.sched.Advance(d)
	r.m.Drain()
}

func (r *rig) requireState(want clientmode.StateID) {
	r.t.Helper()
	require.Equal(r.t, want, r.m.Status().State, "path %v", r.m.Status().Path)
}

func (r *rig) enterConnectMode() {
	r.t.Helper()
	require.NoError(r.t, r.m.SetOperationalMode(wifi.ModeConnect))
	r.m.Drain()
	r.requireState(clientmode.StateDisconnected)
}

func (r *rig) connect(id int) {
	r.t.Helper()
	require.NoError(r.t, r.m.Connect(id, ""))
	r.m.Drain()
}

func (r *rig) lastOutcome() attempt.Outcome {
	r.t.Helper()
	out := r.env.Diagnostics.Outcomes()
	require.NotEmpty(r.t, out)
	return out[len(out)-1]
}

func TestConnectEndToEnd(t *testing.T) {
	r := newRig(t)
	r.enterConnectMode()
	r.connect(homeID)

	r.requireState(clientmode.StateConnected)
	st := r.m.Status()
	assert.Equal(t, homeID, st.CurrentNetworkID)
	assert.Equal(t, homeStrong, st.CurrentBSSID)
	assert.Equal(t, netip.MustParseAddr("192.168.42.2"), st.Info.IPAddress)
	assert.Equal(t, -50, st.Info.RSSI)
	assert.Equal(t, wifi.SupplicantCompleted, st.Info.SupplicantState)

	radio := r.env.Radio.State()
	assert.Equal(t, homeStrong, radio.BSSID)
	assert.True(t, radio.PowerSave)

	dhcp := r.env.DHCP.State()
	assert.True(t, dhcp.Running)
	assert.False(t, dhcp.WaitingPreDHCP)
	assert.Positive(t, dhcp.Confirmations)

	prof, ok := r.env.Profiles.Profile(homeID)
	require.True(t, ok)
	assert.True(t, prof.Config.HasEverConnected)
	assert.True(t, prof.ValidatedInternet)
	assert.Equal(t, homeStrong, prof.LastConnectedBSSID)

	agent, ok := r.env.Connectivity.Agent()
	require.True(t, ok)
	assert.Equal(t, st.AgentID, agent.ID())
	assert.True(t, agent.State().Validated)
	assert.True(t, r.env.Connectivity.Available())

	o := r.lastOutcome()
	assert.Equal(t, attempt.FailureNone, o.Code)
	assert.Equal(t, attempt.RoamUnrelated, o.RoamType)
}

func TestWrongPasswordDisablesNetwork(t *testing.T) {
	r := newRig(t, func(c *sim.Config) {
		c.Networks[0].Passphrase = "tr0ub4dor&3"
	})
	r.enterConnectMode()
	r.connect(homeID)

	r.requireState(clientmode.StateDisconnected)
	assert.Equal(t, []string{"home"}, r.env.Notifier.Shown())
	prof, _ := r.env.Profiles.Profile(homeID)
	assert.Equal(t, wifi.DisableWrongPassword, prof.Disabled)
	assert.Equal(t, attempt.FailureAuthenticationFailed, r.lastOutcome().Code)

	cand, ok := r.env.Policy.Select()
	require.True(t, ok)
	assert.NotEqual(t, homeID, cand.NetworkID)
}

func TestRoamBetweenAccessPoints(t *testing.T) {
	r := newRig(t)
	r.enterConnectMode()
	r.connect(homeID)
	r.requireState(clientmode.StateConnected)
	agentID := r.m.Status().AgentID

	require.NoError(t, r.m.Roam(homeID, homeWeak))
	r.m.Drain()

	r.requireState(clientmode.StateConnected)
	st := r.m.Status()
	assert.Equal(t, homeWeak, st.CurrentBSSID)
	assert.Equal(t, agentID, st.AgentID, "roaming keeps the agent")
	assert.Equal(t, homeWeak, r.env.Radio.State().BSSID)

	o := r.lastOutcome()
	assert.Equal(t, attempt.RoamEnterprise, o.RoamType)
	assert.Equal(t, attempt.FailureNone, o.Code)
}

func TestRoamToUnknownBSSIDTimesOut(t *testing.T) {
	r := newRig(t)
	r.enterConnectMode()
	r.connect(homeID)

	require.NoError(t, r.m.Roam(homeID, "de:ad:be:ef:00:00"))
	r.m.Drain()
	r.requireState(clientmode.StateRoaming)

	r.advance(clientmode.DefaultRoamGuard)
	r.requireState(clientmode.StateDisconnected)
	assert.Equal(t, attempt.FailureAssociationRejected, r.lastOutcome().Code)
}

func TestAutoJoinReconnectsAfterKick(t *testing.T) {
	r := newRig(t)
	h := r.m.Requests().Acquire(clientmode.RequestConnection)
	defer h.Release()

	r.enterConnectMode()
	assert.True(t, r.env.Policy.State().RetryScheduled)

	r.advance(sim.InitialBackoff)
	r.requireState(clientmode.StateConnected)
	assert.Equal(t, homeStrong, r.m.Status().CurrentBSSID)

	require.NoError(t, r.env.Radio.Kick(wifi.ReasonDisassocDueToInactivity))
	r.m.Drain()
	r.requireState(clientmode.StateDisconnected)

	r.advance(sim.InitialBackoff)
	r.requireState(clientmode.StateConnected)
	assert.Equal(t, 2, r.env.Policy.State().AttemptsStarted)
}

func TestEAPConnectAnswersIdentity(t *testing.T) {
	r := newRig(t)
	r.enterConnectMode()
	r.connect(corpID)

	r.requireState(clientmode.StateConnected)
	assert.Equal(t, corpID, r.m.Status().CurrentNetworkID)
	assert.Equal(t, corpBSSID, r.env.Radio.State().BSSID)
}

func TestEAPWithoutIdentityDisconnects(t *testing.T) {
	r := newRig(t, func(c *sim.Config) { c.SIMIdentities = nil })
	r.enterConnectMode()
	r.connect(corpID)

	r.requireState(clientmode.StateDisconnected)
	assert.Empty(t, r.env.Radio.State().BSSID)
}

func TestValidationFailure(t *testing.T) {
	t.Run("disables network", func(t *testing.T) {
		r := newRig(t)
		r.enterConnectMode()
		r.connect(cafeID)

		r.requireState(clientmode.StateConnected)
		prof, _ := r.env.Profiles.Profile(cafeID)
		assert.Equal(t, 1, prof.NoInternetReports)
		assert.Equal(t, wifi.DisableNoInternetTemporary, prof.Disabled)
		assert.False(t, r.env.Profiles.Selectable(cafeID))
	})

	t.Run("freshly selected network is spared", func(t *testing.T) {
		r := newRig(t)
		r.env.Profiles.Select(cafeID)
		r.enterConnectMode()
		r.connect(cafeID)

		prof, _ := r.env.Profiles.Profile(cafeID)
		assert.Equal(t, 1, prof.NoInternetReports)
		assert.Equal(t, wifi.DisableNone, prof.Disabled)
	})
}

func TestDHCPFailuresDisableAfterThreshold(t *testing.T) {
	r := newRig(t)
	require.NoError(t, r.env.World.Update(homeStrong, func(ap *sim.AccessPoint) { ap.DHCPBroken = true }))
	r.enterConnectMode()

	for i := 1; i <= sim.DefaultDHCPFailureThreshold; i++ {
		r.connect(homeID)
		r.requireState(clientmode.StateDisconnected)
		assert.Equal(t, attempt.FailureDHCPFailed, r.lastOutcome().Code)

		prof, _ := r.env.Profiles.Profile(homeID)
		if i < sim.DefaultDHCPFailureThreshold {
			assert.Equal(t, wifi.DisableNone, prof.Disabled, "attempt %d", i)
			assert.Equal(t, i, prof.Failures[wifi.DisableDHCPFailure])
		} else {
			assert.Equal(t, wifi.DisableDHCPFailure, prof.Disabled)
		}
	}
}

func TestRSSIBreachRearmsFirmware(t *testing.T) {
	r := newRig(t)
	r.enterConnectMode()
	r.connect(homeID)

	var replied error = errors.New("no reply")
	require.NoError(t, r.m.Post(clientmode.StartRSSIMonitoring{
		Thresholds: []int{-80, -70},
		Reply:      func(err error) { replied = err },
	}))
	r.m.Drain()
	require.NoError(t, replied)

	radio := r.env.Radio.State()
	require.True(t, radio.Offload)
	assert.Equal(t, int8(-70), radio.OffloadMin)
	assert.Equal(t, int8(127), radio.OffloadMax)

	require.NoError(t, r.env.Radio.SetRSSI(homeStrong, -75))
	r.m.Drain()

	radio = r.env.Radio.State()
	assert.True(t, radio.Offload)
	assert.Equal(t, int8(-80), radio.OffloadMin)
	assert.Equal(t, int8(-70), radio.OffloadMax)
	assert.Equal(t, -75, r.m.Status().Info.RSSI)
}

func TestInterfaceDownRequestsRecovery(t *testing.T) {
	r := newRig(t)
	r.enterConnectMode()
	r.connect(homeID)

	r.env.Radio.InterfaceDown()
	r.m.Drain()

	r.requireState(clientmode.StateDisconnected)
	assert.Equal(t, []failure.RecoveryReason{failure.RecoveryInterfaceDown}, r.env.Recovery.Triggers())
	assert.False(t, r.env.Recovery.Connected())
}

func TestModeChangeWaitsForPeerToPeer(t *testing.T) {
	r := newRig(t, func(c *sim.Config) { c.P2P = true })
	r.enterConnectMode()
	r.connect(homeID)

	require.NoError(t, r.m.SetOperationalMode(wifi.ModeDisabled))
	r.m.Drain()
	r.requireState(clientmode.StateConnected)
	assert.Equal(t, 1, r.env.P2P.Releases())

	r.advance(sim.DefaultP2PDelay)
	r.requireState(clientmode.StateDefault)
	assert.False(t, r.env.Radio.State().Up)
	assert.False(t, r.env.Connectivity.Available())
}

func TestSetupFailureStaysInDefault(t *testing.T) {
	r := newRig(t)
	r.env.Radio.FailSetup(errors.New("firmware crashed"))

	require.NoError(t, r.m.SetOperationalMode(wifi.ModeConnect))
	r.m.Drain()

	r.requireState(clientmode.StateDefault)
	assert.Equal(t, wifi.ModeDisabled, r.m.Status().Mode)
}

func TestStaticAddressing(t *testing.T) {
	static := &wifi.StaticIPConfig{
		Address: netip.MustParsePrefix("10.1.2.3/24"),
		Gateway: netip.MustParseAddr("10.1.2.1"),
		DNS:     []netip.Addr{netip.MustParseAddr("10.1.2.53")},
	}
	r := newRig(t, func(c *sim.Config) {
		c.Networks[0].IPAssignment = wifi.IPAssignmentStatic
		c.Networks[0].Static = static
	})
	r.enterConnectMode()
	r.connect(homeID)

	r.requireState(clientmode.StateConnected)
	assert.Equal(t, netip.MustParseAddr("10.1.2.3"), r.m.Status().Info.IPAddress)
	assert.Equal(t, static.Gateway, r.m.Status().LinkProperties.Gateway)
}
