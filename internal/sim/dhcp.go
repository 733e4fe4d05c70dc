package sim

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"sync"

	"github.com/stactl/stactl-go/pkg/capability"
	"github.com/stactl/stactl-go/pkg/clientmode"
)

// Errors reported through ProvisioningFailure.
var (
	ErrNoOffer       = errors.New("sim: no dhcp offer")
	ErrPoolExhausted = errors.New("sim: address pool exhausted")
)

// DefaultSubnet is the subnet leases are drawn from.
var DefaultSubnet = netip.MustParsePrefix("192.168.42.0/24")

// DHCPConfig configures a DHCP client.
type DHCPConfig struct {
	Interface string
	World     *World
	Radio     *Radio
	Sink      Sink

	// Subnet defaults to DefaultSubnet. The first host address is the
	// gateway and resolver.
	Subnet netip.Prefix

	Logger *slog.Logger
}

// DHCP is a simulated IP client. It implements clientmode.IPClient.
type DHCP struct {
	cfg DHCPConfig
	log *slog.Logger

	mu        sync.Mutex
	running   bool
	waiting   *clientmode.ProvisioningConfig
	leases    map[string]netip.Addr
	next      netip.Addr
	proxy     string
	multicast bool
	confirmed int
	filter    []byte
	starts    int
}

var _ clientmode.IPClient = (*DHCP)(nil)

// NewDHCP returns a stopped client.
func NewDHCP(cfg DHCPConfig) *DHCP {
	if !cfg.Subnet.IsValid() {
		cfg.Subnet = DefaultSubnet
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &DHCP{
		cfg:    cfg,
		log:    cfg.Logger.With("component", "dhcp"),
		leases: make(map[string]netip.Addr),
		next:   cfg.Subnet.Masked().Addr().Next().Next(),
	}
}

// Start begins provisioning. Static configurations succeed at once; DHCP
// waits for CompletedPreDHCPAction when the caller asked for it.
func (d *DHCP) Start(pc clientmode.ProvisioningConfig) error {
	d.mu.Lock()
	d.running = true
	d.waiting = nil
	d.starts++

	if pc.Static != nil {
		lp := capability.LinkProperties{
			InterfaceName: d.cfg.Interface,
			Addresses:     []netip.Prefix{pc.Static.Address},
			Gateway:       pc.Static.Gateway,
			DNS:           append([]netip.Addr(nil), pc.Static.DNS...),
			HTTPProxy:     d.proxy,
		}
		d.mu.Unlock()
		d.post(clientmode.ProvisioningSuccess{LinkProperties: lp})
		return nil
	}
	if pc.PreDHCPAction {
		d.waiting = &pc
		d.mu.Unlock()
		d.post(clientmode.PreDHCPAction{})
		return nil
	}
	d.mu.Unlock()
	d.lease(pc)
	return nil
}

// Stop abandons provisioning. It is idempotent.
func (d *DHCP) Stop() {
	d.mu.Lock()
	d.running = false
	d.waiting = nil
	d.mu.Unlock()
}

func (d *DHCP) ConfirmConfiguration() {
	d.mu.Lock()
	d.confirmed++
	d.mu.Unlock()
}

// CompletedPreDHCPAction releases a Start that is waiting for the link to
// be prepared.
func (d *DHCP) CompletedPreDHCPAction() {
	d.mu.Lock()
	pc := d.waiting
	d.waiting = nil
	d.mu.Unlock()
	if pc == nil {
		return
	}
	d.post(clientmode.PostDHCPAction{})
	d.lease(*pc)
}

func (d *DHCP) SetHTTPProxy(proxy string) {
	d.mu.Lock()
	d.proxy = proxy
	d.mu.Unlock()
}

func (d *DHCP) SetMulticastFilter(enabled bool) {
	d.mu.Lock()
	d.multicast = enabled
	d.mu.Unlock()
}

// PacketFilterRead receives the packet filter program read back from the
// firmware.
func (d *DHCP) PacketFilterRead(data []byte) {
	d.mu.Lock()
	d.filter = bytes.Clone(data)
	d.mu.Unlock()
}

// DHCPState is a snapshot of the client.
type DHCPState struct {
	Running         bool
	WaitingPreDHCP  bool
	Proxy           string
	MulticastFilter bool
	Confirmations   int
	Starts          int
	PacketFilter    []byte
}

// State returns a snapshot of the client.
func (d *DHCP) State() DHCPState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DHCPState{
		Running:         d.running,
		WaitingPreDHCP:  d.waiting != nil,
		Proxy:           d.proxy,
		MulticastFilter: d.multicast,
		Confirmations:   d.confirmed,
		Starts:          d.starts,
		PacketFilter:    bytes.Clone(d.filter),
	}
}

// LoseReachability reports that the gateway stopped answering.
func (d *DHCP) LoseReachability(detail string) {
	d.post(clientmode.ReachabilityLost{Detail: detail})
}

func (d *DHCP) lease(pc clientmode.ProvisioningConfig) {
	ap, err := d.servingAP()
	if err == nil && ap.DHCPBroken {
		err = fmt.Errorf("%w on %q", ErrNoOffer, ap.SSID)
	}

	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	var addr netip.Addr
	if err == nil {
		addr, err = d.allocateLocked(ap.SSID)
	}
	proxy := d.proxy
	d.mu.Unlock()

	if err != nil {
		d.log.Info("lease failed", "name", pc.DisplayName, "error", err)
		d.post(clientmode.ProvisioningFailure{Err: err})
		return
	}
	gw := d.cfg.Subnet.Masked().Addr().Next()
	d.log.Debug("lease acquired", "name", pc.DisplayName, "addr", addr.String())
	d.post(clientmode.ProvisioningSuccess{LinkProperties: capability.LinkProperties{
		InterfaceName: d.cfg.Interface,
		Addresses:     []netip.Prefix{netip.PrefixFrom(addr, d.cfg.Subnet.Bits())},
		Gateway:       gw,
		DNS:           []netip.Addr{gw},
		HTTPProxy:     proxy,
	}})
}

// allocateLocked returns the lease held for ssid, or a fresh one.
func (d *DHCP) allocateLocked(ssid string) (netip.Addr, error) {
	if addr, ok := d.leases[ssid]; ok {
		return addr, nil
	}
	addr := d.next
	if !d.cfg.Subnet.Contains(addr) || !d.cfg.Subnet.Contains(addr.Next()) {
		return netip.Addr{}, ErrPoolExhausted
	}
	d.next = addr.Next()
	d.leases[ssid] = addr
	return addr, nil
}

func (d *DHCP) servingAP() (AccessPoint, error) {
	if d.cfg.Radio == nil {
		return AccessPoint{}, ErrNotAssociated
	}
	bssid := d.cfg.Radio.State().BSSID
	if bssid == "" {
		return AccessPoint{}, ErrNotAssociated
	}
	ap, ok := d.cfg.World.AP(bssid)
	if !ok {
		return AccessPoint{}, fmt.Errorf("%w: %s", ErrUnknownAP, bssid)
	}
	return ap, nil
}

func (d *DHCP) post(ev clientmode.Event) {
	if err := d.cfg.Sink.Post(ev); err != nil {
		d.log.Debug("event dropped", "event", ev.What().String(), "error", err)
	}
}
