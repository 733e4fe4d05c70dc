package sim

import (
	"log/slog"
	"net/netip"
	"time"

	"github.com/stactl/stactl-go/pkg/clientmode"
	"github.com/stactl/stactl-go/pkg/watchdog"
	"github.com/stactl/stactl-go/pkg/wifi"
)

// DefaultP2PDelay is how long the simulated peer-to-peer stack takes to
// release the radio.
const DefaultP2PDelay = 200 * time.Millisecond

// Config describes a simulated environment.
type Config struct {
	Interface string

	AccessPoints  []AccessPoint
	Networks      []wifi.NetworkConfig
	SIMIdentities map[int]string

	Profiles ProfilesConfig

	BlocklistThreshold int
	BlocklistTTL       time.Duration
	BlocklistSize      int
	Backoff            BackoffConfig

	// P2P adds a peer-to-peer stack that must release the radio before
	// mode changes.
	P2P      bool
	P2PDelay time.Duration

	Subnet netip.Prefix

	Scheduler watchdog.Scheduler
	Logger    *slog.Logger
}

// Environment is a full set of machine collaborators sharing one world.
type Environment struct {
	Relay        *Relay
	World        *World
	Radio        *Radio
	DHCP         *DHCP
	Profiles     *Profiles
	Policy       *Policy
	Connectivity *Connectivity
	Diagnostics  *Diagnostics
	Recovery     *Recovery
	Notifier     *Notifier
	P2P          *PeerToPeer
}

// New builds an environment. Attach a machine before driving it.
func New(cfg Config) *Environment {
	if cfg.Scheduler == nil {
		cfg.Scheduler = watchdog.RealScheduler{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.P2PDelay <= 0 {
		cfg.P2PDelay = DefaultP2PDelay
	}

	e := &Environment{Relay: &Relay{}}
	e.World = NewWorld(cfg.AccessPoints...)
	e.Radio = NewRadio(RadioConfig{World: e.World, Sink: e.Relay, Logger: cfg.Logger})
	e.DHCP = NewDHCP(DHCPConfig{
		Interface: cfg.Interface,
		World:     e.World,
		Radio:     e.Radio,
		Sink:      e.Relay,
		Subnet:    cfg.Subnet,
		Logger:    cfg.Logger,
	})

	pc := cfg.Profiles
	pc.Now = cfg.Scheduler.Now
	pc.Logger = cfg.Logger
	e.Profiles = NewProfiles(pc)
	for _, n := range cfg.Networks {
		e.Profiles.Save(n)
	}
	for id, identity := range cfg.SIMIdentities {
		if err := e.Profiles.SetSIMIdentity(id, identity); err != nil {
			cfg.Logger.Warn("sim identity for unknown network", "network_id", id)
		}
	}

	e.Policy = NewPolicy(PolicyConfig{
		World:              e.World,
		Profiles:           e.Profiles,
		Scheduler:          cfg.Scheduler,
		BlocklistThreshold: cfg.BlocklistThreshold,
		BlocklistTTL:       cfg.BlocklistTTL,
		BlocklistSize:      cfg.BlocklistSize,
		Backoff:            cfg.Backoff,
		Logger:             cfg.Logger,
	})
	e.Connectivity = NewConnectivity(ConnectivityConfig{World: e.World, Sink: e.Relay, Logger: cfg.Logger})
	e.Diagnostics = NewDiagnostics(cfg.Scheduler.Now, cfg.Logger)
	e.Recovery = NewRecovery(cfg.Logger)
	e.Notifier = NewNotifier(cfg.Logger)
	if cfg.P2P {
		e.P2P = NewPeerToPeer(cfg.Scheduler, e.Relay, cfg.P2PDelay)
	}
	return e
}

// Collaborators returns the machine dependencies backed by e.
func (e *Environment) Collaborators() clientmode.Collaborators {
	c := clientmode.Collaborators{
		Link:         e.Radio,
		IP:           e.DHCP,
		Policy:       e.Policy,
		Profiles:     e.Profiles,
		Agents:       e.Connectivity,
		Availability: e.Connectivity,
		Diagnostics:  e.Diagnostics,
		Recovery:     e.Recovery,
		Notifier:     e.Notifier,
	}
	if e.P2P != nil {
		c.PeerToPeer = e.P2P
	}
	return c
}

// Attach routes events to m and lets the policy start connections on it.
func (e *Environment) Attach(m *clientmode.Machine) {
	e.Relay.Attach(m)
	e.Policy.SetConnector(m)
}
