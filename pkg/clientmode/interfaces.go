package clientmode

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/stactl/stactl-go/pkg/attempt"
	"github.com/stactl/stactl-go/pkg/capability"
	"github.com/stactl/stactl-go/pkg/failure"
	"github.com/stactl/stactl-go/pkg/linkquality"
	"github.com/stactl/stactl-go/pkg/wifi"
)

// ErrMissingCollaborator is returned by New when a required collaborator is
// nil.
var ErrMissingCollaborator = errors.New("missing collaborator")

// ErrInvalidNetwork is the reply to requests that need a connected network
// when there is none.
var ErrInvalidNetwork = errors.New("invalid network")

// ErrUnknownNetwork is logged when a command names a network the profile
// store does not know.
var ErrUnknownNetwork = errors.New("unknown network")

// LinkLayer controls the supplicant and driver. Calls must not block for
// long: completions arrive later as events.
type LinkLayer interface {
	linkquality.Poller
	linkquality.Offloader

	SetupClientMode(ctx context.Context) error
	StopClientMode(ctx context.Context) error
	SetPowerSave(ctx context.Context, enabled bool) error
	SetSuspendOptimizations(ctx context.Context, enabled bool) error
	RemoveAllNetworks(ctx context.Context) error

	Connect(ctx context.Context, cfg *wifi.NetworkConfig, bssid string) error
	Roam(ctx context.Context, cfg *wifi.NetworkConfig, bssid string) error
	Disconnect(ctx context.Context) error
	Reassociate(ctx context.Context) error
	SetMACAddress(ctx context.Context, mac net.HardwareAddr) error
	SIMIdentityResponse(ctx context.Context, networkID int, identity string) error

	InstallPacketFilter(ctx context.Context, program []byte) error
	ReadPacketFilter(ctx context.Context) ([]byte, error)
	StartKeepalive(ctx context.Context, slot int, packet []byte, interval time.Duration) error
	StopKeepalive(ctx context.Context, slot int) error
}

// ProvisioningConfig starts the IP client.
type ProvisioningConfig struct {
	// Static is nil for DHCP.
	Static *wifi.StaticIPConfig

	// DisplayName is used as the DHCP hostname hint.
	DisplayName string

	// PreDHCPAction asks the client to post PreDHCPAction before the first
	// DHCP packet and wait for CompletedPreDHCPAction.
	PreDHCPAction bool

	RandomizedMAC bool
}

// IPClient provisions addresses on the link. Outcomes arrive as
// ProvisioningSuccess or ProvisioningFailure events.
type IPClient interface {
	Start(cfg ProvisioningConfig) error

	// Stop must be idempotent.
	Stop()

	ConfirmConfiguration()
	CompletedPreDHCPAction()
	SetHTTPProxy(proxy string)
	SetMulticastFilter(enabled bool)
	PacketFilterRead(data []byte)
}

// SelectionPolicy decides which network to join and when. It also tracks
// per-BSSID health and hears about every connection attempt.
type SelectionPolicy interface {
	failure.BSSIDTracker
	attempt.Reporter

	SetWifiEnabled(enabled bool)
	SetAutoJoinEnabled(enabled bool)
	SetUntrustedAllowed(allowed bool)
	ConnectionStateChanged(state wifi.ConnectionState)
	ScreenStateChanged(on bool)
	ForceConnectivityScan()
}

// ProfileStore holds saved network profiles and their selection status.
type ProfileStore interface {
	failure.Profiles

	// NoteConnected marks the network as having connected and clears its
	// failure counters.
	NoteConnected(networkID int, bssid string)
	EnableNetwork(networkID int)
	SetValidatedInternetAccess(networkID int, validated bool)
	SetNoInternetAccessExpected(networkID int, expected bool)
	ReportNoInternetAccess(networkID int)

	// LastSelected returns the network the user chose last, and when.
	LastSelected() (networkID int, at time.Time)

	SIMIdentity(networkID int) (string, error)
}

// Diagnostics records connection events and captures bug reports.
type Diagnostics interface {
	attempt.Reporter
	failure.BugReporter
}

// Recovery restarts the stack when it wedges.
type Recovery interface {
	failure.SelfRecovery

	// ConnectedStateTransition tells the last-resort watchdog whether the
	// interface has a working connection.
	ConnectedStateTransition(connected bool)
}

// PeerToPeer is the peer-to-peer stack sharing the radio. Release asks it
// to let go; it answers with a P2PReleased event.
type PeerToPeer interface {
	Release()
}

// Broadcaster announces link changes to interested listeners.
type Broadcaster interface {
	SignalChanged(rssi, level int)
	SupplicantStateChanged(state wifi.SupplicantState)
}

// Observer receives machine-level telemetry.
type Observer interface {
	StateChanged(from, to string)
	EventDispatched(what, outcome string, elapsed time.Duration)
	Defect(kind string)
}

// Collaborators are the machine's dependencies. Link, IP, Policy and
// Profiles are required.
type Collaborators struct {
	Link     LinkLayer
	IP       IPClient
	Policy   SelectionPolicy
	Profiles ProfileStore

	Agents       capability.AgentFactory
	Availability capability.AvailabilitySink
	Diagnostics  Diagnostics
	Recovery     Recovery
	Notifier     failure.WrongPasswordNotifier
	PeerToPeer   PeerToPeer
	Broadcaster  Broadcaster
	Observer     Observer

	// Reporters also receive every attempt start and end.
	Reporters []attempt.Reporter
}

func (c *Collaborators) validate() error {
	switch {
	case c.Link == nil:
		return fmt.Errorf("%w: link layer", ErrMissingCollaborator)
	case c.IP == nil:
		return fmt.Errorf("%w: ip client", ErrMissingCollaborator)
	case c.Policy == nil:
		return fmt.Errorf("%w: selection policy", ErrMissingCollaborator)
	case c.Profiles == nil:
		return fmt.Errorf("%w: profile store", ErrMissingCollaborator)
	}
	if c.Diagnostics == nil {
		c.Diagnostics = nopDiagnostics{}
	}
	if c.Recovery == nil {
		c.Recovery = nopRecovery{}
	}
	if c.Broadcaster == nil {
		c.Broadcaster = nopBroadcaster{}
	}
	if c.Observer == nil {
		c.Observer = nopObserver{}
	}
	return nil
}

type nopDiagnostics struct{}

func (nopDiagnostics) AttemptStarted(attempt.Attempt)  {}
func (nopDiagnostics) AttemptEnded(attempt.Outcome)    {}
func (nopDiagnostics) CaptureBugReport(string, string) {}

type nopRecovery struct{}

func (nopRecovery) Trigger(failure.RecoveryReason) {}
func (nopRecovery) ConnectedStateTransition(bool)  {}

type nopBroadcaster struct{}

func (nopBroadcaster) SignalChanged(int, int)                      {}
func (nopBroadcaster) SupplicantStateChanged(wifi.SupplicantState) {}

type nopObserver struct{}

func (nopObserver) StateChanged(string, string)                   {}
func (nopObserver) EventDispatched(string, string, time.Duration) {}
func (nopObserver) Defect(string)                                 {}
