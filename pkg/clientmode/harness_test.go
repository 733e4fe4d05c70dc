package clientmode_test

import (
	"errors"
	"log/slog"
	"net/netip"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stactl/stactl-go/pkg/attempt"
	"github.com/stactl/stactl-go/pkg/capability"
	"github.com/stactl/stactl-go/pkg/clientmode"
	"github.com/stactl/stactl-go/pkg/clientmode/mocks"
	"github.com/stactl/stactl-go/pkg/failure"
	"github.com/stactl/stactl-go/pkg/linkquality"
	"github.com/stactl/stactl-go/pkg/log"
	"github.com/stactl/stactl-go/pkg/watchdog/watchdogtest"
	"github.com/stactl/stactl-go/pkg/wifi"
)

const (
	homeID    = 5
	homeSSID  = "home"
	homeBSSID = "aa:bb:cc:dd:ee:ff"
	roamBSSID = "11:22:33:44:55:66"
	guestID   = 7
	panicID   = 666
)

var epoch = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

type harness struct {
	t *testing.T
	m *clientmode.Machine

	link     *mocks.MockLinkLayer
	ip       *mocks.MockIPClient
	policy   *fakePolicy
	profiles *fakeProfiles
	agents   *fakeAgents
	diag     *fakeDiagnostics
	recovery *fakeRecovery
	notifier *fakeNotifier
	observer *fakeObserver
	reporter *pairingReporter
	sched    *watchdogtest.Scheduler
	trace    *log.MemoryLogger
	collab   clientmode.Collaborators
	cfg      clientmode.Config
	p2p      *fakeP2P
}

type option func(h *harness)

// withExpectations registers specific mock expectations ahead of the
// permissive defaults so they match first.
func withExpectations(fn func(h *harness)) option {
	return fn
}

func withP2P() option {
	return func(h *harness) {
		h.p2p = &fakeP2P{}
		h.collab.PeerToPeer = h.p2p
	}
}

func withConfig(fn func(cfg *clientmode.Config)) option {
	return func(h *harness) { fn(&h.cfg) }
}

func newHarness(t *testing.T, opts ...option) *harness {
	t.Helper()
	h := &harness{
		t:        t,
		link:     mocks.NewMockLinkLayer(t),
		ip:       mocks.NewMockIPClient(t),
		policy:   &fakePolicy{},
		profiles: newFakeProfiles(),
		agents:   &fakeAgents{},
		diag:     &fakeDiagnostics{},
		recovery: &fakeRecovery{},
		notifier: &fakeNotifier{},
		observer: &fakeObserver{},
		sched:    watchdogtest.NewScheduler(epoch),
		trace:    log.NewMemoryLogger(0),
	}
	h.reporter = &pairingReporter{t: t}
	h.cfg = clientmode.DefaultConfig()
	h.cfg.Scheduler = h.sched
	h.cfg.Trace = h.trace
	h.cfg.BugReportInterval = -1
	h.cfg.Logger = slog.New(slog.DiscardHandler)
	h.collab = clientmode.Collaborators{
		Link:         h.link,
		IP:           h.ip,
		Policy:       h.policy,
		Profiles:     h.profiles,
		Agents:       h.agents,
		Availability: h.agents,
		Diagnostics:  h.diag,
		Recovery:     h.recovery,
		Notifier:     h.notifier,
		Observer:     h.observer,
		Reporters:    []attempt.Reporter{h.reporter},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.defaultExpectations()

	m, err := clientmode.New(h.cfg, h.collab)
	require.NoError(t, err)
	h.m = m
	t.Cleanup(m.Shutdown)
	return h
}

func (h *harness) defaultExpectations() {
	l := h.link.EXPECT()
	l.SetupClientMode(mock.Anything).Return(nil).Maybe()
	l.StopClientMode(mock.Anything).Return(nil).Maybe()
	l.SetPowerSave(mock.Anything, mock.Anything).Return(nil).Maybe()
	l.SetSuspendOptimizations(mock.Anything, mock.Anything).Return(nil).Maybe()
	l.RemoveAllNetworks(mock.Anything).Return(nil).Maybe()
	l.Connect(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	l.Roam(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	l.Disconnect(mock.Anything).Return(nil).Maybe()
	l.Reassociate(mock.Anything).Return(nil).Maybe()
	l.SetMACAddress(mock.Anything, mock.Anything).Return(nil).Maybe()
	l.SIMIdentityResponse(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	l.InstallPacketFilter(mock.Anything, mock.Anything).Return(nil).Maybe()
	l.ReadPacketFilter(mock.Anything).Return([]byte{0x01}, nil).Maybe()
	l.StartKeepalive(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	l.StopKeepalive(mock.Anything, mock.Anything).Return(nil).Maybe()
	l.SignalPoll(mock.Anything).Return(linkquality.SignalPoll{RSSI: -60, LinkSpeedMbps: 433, FrequencyMHz: 5180}, nil).Maybe()
	l.StartRSSIMonitoring(mock.Anything, mock.Anything).Return(nil).Maybe()
	l.StopRSSIMonitoring().Return(nil).Maybe()

	i := h.ip.EXPECT()
	i.Start(mock.Anything).Return(nil).Maybe()
	i.Stop().Return().Maybe()
	i.ConfirmConfiguration().Return().Maybe()
	i.CompletedPreDHCPAction().Return().Maybe()
	i.SetHTTPProxy(mock.Anything).Return().Maybe()
	i.SetMulticastFilter(mock.Anything).Return().Maybe()
	i.PacketFilterRead(mock.Anything).Return().Maybe()
}

func (h *harness) post(evs ...clientmode.Event) {
	h.t.Helper()
	for _, ev := range evs {
		require.NoError(h.t, h.m.Post(ev))
	}
	h.m.Drain()
}

func (h *harness) advance(d time.Duration) {
	h.sched.Advance(d)
	h.m.Drain()
}

func (h *harness) requireState(want clientmode.StateID) {
	h.t.Helper()
	require.Equal(h.t, want.String(), h.m.Status().State.String())
}

func (h *harness) enterConnectMode() {
	h.t.Helper()
	require.NoError(h.t, h.m.SetOperationalMode(wifi.ModeConnect))
	h.m.Drain()
	h.requireState(clientmode.StateDisconnected)
}

func (h *harness) connect(id int, bssid string) {
	h.t.Helper()
	require.NoError(h.t, h.m.Connect(id, bssid))
	h.m.Drain()
}

// connectFully walks the default network through association and DHCP.
func (h *harness) connectFully() {
	h.t.Helper()
	h.enterConnectMode()
	h.connect(homeID, wifi.BSSIDAny)
	h.requireState(clientmode.StateDisconnecting)
	h.post(clientmode.NetworkConnected{NetworkID: homeID, BSSID: homeBSSID})
	h.requireState(clientmode.StateObtainingIP)
	h.post(clientmode.ProvisioningSuccess{LinkProperties: leasedLink()})
	h.requireState(clientmode.StateConnected)
}

// roamTo moves a connected machine into Roaming towards bssid.
func (h *harness) roamTo(bssid string) {
	h.t.Helper()
	require.NoError(h.t, h.m.Roam(homeID, bssid))
	h.m.Drain()
	h.requireState(clientmode.StateRoaming)
}

func (h *harness) dispatches(what clientmode.What) []log.DispatchEvent {
	cat := log.CategoryDispatch
	var out []log.DispatchEvent
	for _, ev := range h.trace.Events(log.Filter{Category: &cat}) {
		if ev.Dispatch != nil && ev.Dispatch.What == what.String() {
			out = append(out, *ev.Dispatch)
		}
	}
	return out
}

func (h *harness) lastOutcome(what clientmode.What) log.Outcome {
	h.t.Helper()
	d := h.dispatches(what)
	require.NotEmpty(h.t, d, "no dispatch of %s", what)
	return d[len(d)-1].Outcome
}

func (h *harness) defects() []log.Event {
	return h.trace.Events(log.Filter{DefectsOnly: true})
}

func leasedLink() capability.LinkProperties {
	return capability.LinkProperties{
		InterfaceName: "wlan0",
		Addresses:     []netip.Prefix{netip.MustParsePrefix("192.168.1.23/24")},
		Gateway:       netip.MustParseAddr("192.168.1.1"),
		DNS:           []netip.Addr{netip.MustParseAddr("192.168.1.1")},
	}
}

// Fakes.

type fakePolicy struct {
	started     []attempt.Attempt
	ended       []attempt.Outcome
	states      []wifi.ConnectionState
	autoJoin    []bool
	untrusted   []bool
	wifiEnabled bool
	screen      []bool
	scans       int
	tracked     []string
}

func (p *fakePolicy) TrackBSSID(bssid string, connected bool, _ wifi.ReasonCode) bool {
	p.tracked = append(p.tracked, bssid)
	return !connected
}
func (p *fakePolicy) AttemptStarted(a attempt.Attempt)              { p.started = append(p.started, a) }
func (p *fakePolicy) AttemptEnded(o attempt.Outcome)                { p.ended = append(p.ended, o) }
func (p *fakePolicy) SetWifiEnabled(enabled bool)                   { p.wifiEnabled = enabled }
func (p *fakePolicy) SetAutoJoinEnabled(enabled bool)               { p.autoJoin = append(p.autoJoin, enabled) }
func (p *fakePolicy) SetUntrustedAllowed(allowed bool)              { p.untrusted = append(p.untrusted, allowed) }
func (p *fakePolicy) ConnectionStateChanged(s wifi.ConnectionState) { p.states = append(p.states, s) }
func (p *fakePolicy) ScreenStateChanged(on bool)                    { p.screen = append(p.screen, on) }
func (p *fakePolicy) ForceConnectivityScan()                        { p.scans++ }

func (p *fakePolicy) endCodes() []attempt.FailureCode {
	out := make([]attempt.FailureCode, len(p.ended))
	for i, o := range p.ended {
		out[i] = o.Code
	}
	return out
}

func (p *fakePolicy) lastState() wifi.ConnectionState {
	if len(p.states) == 0 {
		return wifi.ConnectionStateDisconnected
	}
	return p.states[len(p.states)-1]
}

type statusUpdate struct {
	id     int
	reason wifi.DisableReason
}

type fakeProfiles struct {
	networks     map[int]*wifi.NetworkConfig
	updates      []statusUpdate
	connected    []int
	enabled      []int
	validated    map[int]bool
	noInternet   []int
	expected     map[int]bool
	lastSelected int
	selectedAt   time.Time
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{
		networks: map[int]*wifi.NetworkConfig{
			homeID: {
				NetworkID:    homeID,
				SSID:         homeSSID,
				Security:     wifi.SecurityWPA2PSK,
				Passphrase:   "correct horse",
				IPAssignment: wifi.IPAssignmentDHCP,
				HTTPProxy:    "proxy.home:3128",
			},
			guestID: {
				NetworkID:    guestID,
				SSID:         "guest",
				Security:     wifi.SecurityOpen,
				IPAssignment: wifi.IPAssignmentDHCP,
				RandomizeMAC: true,
				Metered:      true,
			},
		},
		validated:    map[int]bool{},
		expected:     map[int]bool{},
		lastSelected: wifi.InvalidNetworkID,
	}
}

func (p *fakeProfiles) Network(id int) (*wifi.NetworkConfig, bool) {
	if id == panicID {
		panic("profile store corrupted")
	}
	cfg, ok := p.networks[id]
	if !ok {
		return nil, false
	}
	return cfg.Clone(), true
}

func (p *fakeProfiles) UpdateSelectionStatus(id int, reason wifi.DisableReason) {
	p.updates = append(p.updates, statusUpdate{id, reason})
}

func (p *fakeProfiles) NoteConnected(id int, _ string) {
	p.connected = append(p.connected, id)
	if cfg, ok := p.networks[id]; ok {
		cfg.HasEverConnected = true
	}
}

func (p *fakeProfiles) EnableNetwork(id int)                       { p.enabled = append(p.enabled, id) }
func (p *fakeProfiles) SetValidatedInternetAccess(id int, v bool)  { p.validated[id] = v }
func (p *fakeProfiles) SetNoInternetAccessExpected(id int, v bool) { p.expected[id] = v }
func (p *fakeProfiles) ReportNoInternetAccess(id int)              { p.noInternet = append(p.noInternet, id) }
func (p *fakeProfiles) LastSelected() (int, time.Time)             { return p.lastSelected, p.selectedAt }

func (p *fakeProfiles) SIMIdentity(id int) (string, error) {
	if id == guestID {
		return "", errors.New("no sim")
	}
	return "0310260000000000@wlan.mnc260.mcc310.3gppnetwork.org", nil
}

func (p *fakeProfiles) reasons(id int) []wifi.DisableReason {
	var out []wifi.DisableReason
	for _, u := range p.updates {
		if u.id == id {
			out = append(out, u.reason)
		}
	}
	return out
}

type fakeAgent struct {
	id     uuid.UUID
	caps   []capability.Capabilities
	links  []capability.LinkProperties
	states []capability.DetailedState
	scores []int
}

func (a *fakeAgent) SendCapabilities(c capability.Capabilities) { a.caps = append(a.caps, c) }
func (a *fakeAgent) SendLinkProperties(lp capability.LinkProperties) {
	a.links = append(a.links, lp)
}
func (a *fakeAgent) SendNetworkInfo(s capability.DetailedState, _ wifi.Info) {
	a.states = append(a.states, s)
}
func (a *fakeAgent) SendScore(score int) { a.scores = append(a.scores, score) }

type fakeAgents struct {
	agents    []*fakeAgent
	available []bool
}

func (f *fakeAgents) NewAgent(id uuid.UUID, caps capability.Capabilities, lp capability.LinkProperties) capability.NetworkAgent {
	a := &fakeAgent{id: id, caps: []capability.Capabilities{caps}, links: []capability.LinkProperties{lp}}
	f.agents = append(f.agents, a)
	return a
}

func (f *fakeAgents) SetNetworkAvailable(v bool) { f.available = append(f.available, v) }

func (f *fakeAgents) last() *fakeAgent {
	if len(f.agents) == 0 {
		return nil
	}
	return f.agents[len(f.agents)-1]
}

type fakeDiagnostics struct {
	reports []string
}

func (d *fakeDiagnostics) AttemptStarted(attempt.Attempt) {}
func (d *fakeDiagnostics) AttemptEnded(attempt.Outcome)   {}
func (d *fakeDiagnostics) CaptureBugReport(title, _ string) {
	d.reports = append(d.reports, title)
}

type fakeRecovery struct {
	triggers  []failure.RecoveryReason
	connected []bool
}

func (r *fakeRecovery) Trigger(reason failure.RecoveryReason) {
	r.triggers = append(r.triggers, reason)
}
func (r *fakeRecovery) ConnectedStateTransition(c bool) { r.connected = append(r.connected, c) }

type fakeNotifier struct {
	ssids []string
}

func (n *fakeNotifier) WrongPassword(ssid string) { n.ssids = append(n.ssids, ssid) }

type fakeP2P struct {
	releases int
}

func (p *fakeP2P) Release() { p.releases++ }

type fakeObserver struct {
	transitions []string
	defects     []string
}

func (o *fakeObserver) StateChanged(from, to string) {
	o.transitions = append(o.transitions, from+">"+to)
}
func (o *fakeObserver) EventDispatched(string, string, time.Duration) {}
func (o *fakeObserver) Defect(kind string)                            { o.defects = append(o.defects, kind) }

// pairingReporter fails the test as soon as attempt starts and ends stop
// alternating.
type pairingReporter struct {
	t      *testing.T
	open   bool
	begun  int
	closed int
}

func (r *pairingReporter) AttemptStarted(attempt.Attempt) {
	r.t.Helper()
	if r.open {
		r.t.Errorf("attempt started while another is open")
	}
	r.open = true
	r.begun++
}

func (r *pairingReporter) AttemptEnded(attempt.Outcome) {
	r.t.Helper()
	if !r.open {
		r.t.Errorf("attempt ended with none open")
	}
	r.open = false
	r.closed++
}
