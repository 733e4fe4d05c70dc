package sim

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/stactl/stactl-go/pkg/clientmode"
	"github.com/stactl/stactl-go/pkg/linkquality"
	"github.com/stactl/stactl-go/pkg/wifi"
)

// Errors returned by the radio.
var (
	ErrRadioDown         = errors.New("sim: client mode not set up")
	ErrNotAssociated     = errors.New("sim: not associated")
	ErrInvalidSlot       = errors.New("sim: invalid keepalive slot")
	ErrNoIdentityRequest = errors.New("sim: no identity request outstanding")
)

// MaxKeepaliveSlots is the number of hardware keepalive slots.
const MaxKeepaliveSlots = 4

// IEEE 802.11 status codes used in association rejections.
const (
	StatusUnspecified      uint16 = 1
	StatusSecurityMismatch uint16 = 43
)

// Keepalive is an offloaded keepalive packet.
type Keepalive struct {
	Packet   []byte
	Interval time.Duration
}

// RadioConfig configures a Radio.
type RadioConfig struct {
	World  *World
	Sink   Sink
	Logger *slog.Logger
}

// Radio is a simulated supplicant and driver. It implements
// clientmode.LinkLayer; every command completes by posting the events a
// real supplicant would report.
type Radio struct {
	world *World
	sink  Sink
	log   *slog.Logger

	mu         sync.Mutex
	up         bool
	setupErr   error
	powerSave  bool
	suspendOpt bool
	mac        net.HardwareAddr
	link       *association
	pendingEAP *association
	offload    bool
	lo, hi     int8
	filter     []byte
	keepalives map[int]Keepalive
}

type association struct {
	networkID int
	ap        AccessPoint
}

var _ clientmode.LinkLayer = (*Radio)(nil)

// NewRadio returns a radio with client mode torn down.
func NewRadio(cfg RadioConfig) *Radio {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Radio{
		world:      cfg.World,
		sink:       cfg.Sink,
		log:        cfg.Logger.With("component", "radio"),
		keepalives: make(map[int]Keepalive),
	}
}

// RadioState is a snapshot of the radio.
type RadioState struct {
	Up                   bool
	PowerSave            bool
	SuspendOptimizations bool
	MAC                  string
	BSSID                string
	NetworkID            int
	Offload              bool
	OffloadMin           int8
	OffloadMax           int8
	Keepalives           int
}

// State returns a snapshot of the radio.
func (r *Radio) State() RadioState {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := RadioState{
		Up:                   r.up,
		PowerSave:            r.powerSave,
		SuspendOptimizations: r.suspendOpt,
		NetworkID:            wifi.InvalidNetworkID,
		Offload:              r.offload,
		OffloadMin:           r.lo,
		OffloadMax:           r.hi,
		Keepalives:           len(r.keepalives),
	}
	if r.mac != nil {
		s.MAC = r.mac.String()
	}
	if r.link != nil {
		s.BSSID = r.link.ap.BSSID
		s.NetworkID = r.link.networkID
	}
	return s
}

// FailSetup makes the next SetupClientMode calls fail with err. A nil err
// clears the fault.
func (r *Radio) FailSetup(err error) {
	r.mu.Lock()
	r.setupErr = err
	r.mu.Unlock()
}

func (r *Radio) SetupClientMode(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setupErr != nil {
		return r.setupErr
	}
	r.up = true
	return nil
}

func (r *Radio) StopClientMode(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.up = false
	r.link = nil
	r.pendingEAP = nil
	r.offload = false
	clear(r.keepalives)
	return nil
}

func (r *Radio) SetPowerSave(_ context.Context, enabled bool) error {
	r.mu.Lock()
	r.powerSave = enabled
	r.mu.Unlock()
	return nil
}

func (r *Radio) SetSuspendOptimizations(_ context.Context, enabled bool) error {
	r.mu.Lock()
	r.suspendOpt = enabled
	r.mu.Unlock()
	return nil
}

func (r *Radio) RemoveAllNetworks(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.up {
		return ErrRadioDown
	}
	return nil
}

// Connect associates with the strongest AP advertising cfg.SSID, or with
// bssid when it is not wifi.BSSIDAny.
func (r *Radio) Connect(_ context.Context, cfg *wifi.NetworkConfig, bssid string) error {
	r.mu.Lock()
	if !r.up {
		r.mu.Unlock()
		return ErrRadioDown
	}
	var evs []clientmode.Event
	if r.link != nil {
		evs = append(evs, clientmode.NetworkDisconnected{
			BSSID:            r.link.ap.BSSID,
			Reason:           wifi.ReasonDeauthLeaving,
			LocallyGenerated: true,
		})
		r.link = nil
	}
	r.pendingEAP = nil

	ap, ok := r.pick(cfg.SSID, bssid)
	switch {
	case !ok:
		rej := clientmode.AssociationRejected{TimedOut: true}
		if bssid != wifi.BSSIDAny {
			rej.BSSID = bssid
		}
		evs = append(evs, rej, clientmode.SupplicantStateChanged{State: wifi.SupplicantDisconnected})

	case ap.Security != cfg.Security:
		evs = append(evs,
			supplicant(wifi.SupplicantAssociating, ap),
			clientmode.AssociationRejected{BSSID: ap.BSSID, Status: StatusSecurityMismatch},
			supplicant(wifi.SupplicantDisconnected, ap))

	case ap.Security == wifi.SecurityEAP:
		evs = append(evs,
			supplicant(wifi.SupplicantAssociating, ap),
			supplicant(wifi.SupplicantAssociated, ap),
			clientmode.SIMIdentityRequested{NetworkID: cfg.NetworkID})
		r.pendingEAP = &association{networkID: cfg.NetworkID, ap: ap}

	default:
		evs = append(evs,
			supplicant(wifi.SupplicantAssociating, ap),
			supplicant(wifi.SupplicantAssociated, ap))
		matched := true
		if ap.Security != wifi.SecurityOpen {
			evs = append(evs, supplicant(wifi.SupplicantFourWayHandshake, ap))
			var err error
			if matched, err = fourWayHandshake(cfg.Passphrase, ap); err != nil {
				r.mu.Unlock()
				return fmt.Errorf("four-way handshake: %w", err)
			}
		}
		if matched {
			evs = append(evs, r.completeLocked(cfg.NetworkID, ap)...)
		} else {
			evs = append(evs,
				clientmode.AuthenticationFailed{Reason: wifi.AuthFailureWrongPassword},
				supplicant(wifi.SupplicantDisconnected, ap))
		}
	}
	r.mu.Unlock()

	r.post(evs...)
	return nil
}

// Roam moves the current association to bssid.
func (r *Radio) Roam(_ context.Context, cfg *wifi.NetworkConfig, bssid string) error {
	r.mu.Lock()
	if !r.up {
		r.mu.Unlock()
		return ErrRadioDown
	}
	if r.link == nil {
		r.mu.Unlock()
		return ErrNotAssociated
	}
	var evs []clientmode.Event
	ap, ok := r.world.AP(bssid)
	if !ok || ap.SSID != cfg.SSID {
		evs = append(evs, clientmode.AssociationRejected{BSSID: bssid, Status: StatusUnspecified})
	} else {
		evs = append(evs,
			supplicant(wifi.SupplicantAssociating, ap),
			supplicant(wifi.SupplicantAssociated, ap))
		evs = append(evs, r.completeLocked(cfg.NetworkID, ap)...)
	}
	r.mu.Unlock()

	r.post(evs...)
	return nil
}

// Disconnect drops the association, if any, and reports the supplicant
// idle.
func (r *Radio) Disconnect(context.Context) error {
	r.mu.Lock()
	if !r.up {
		r.mu.Unlock()
		return ErrRadioDown
	}
	var evs []clientmode.Event
	if r.link != nil {
		evs = append(evs, clientmode.NetworkDisconnected{
			BSSID:            r.link.ap.BSSID,
			Reason:           wifi.ReasonDeauthLeaving,
			LocallyGenerated: true,
		})
		r.link = nil
	}
	r.pendingEAP = nil
	r.offload = false
	clear(r.keepalives)
	evs = append(evs, clientmode.SupplicantStateChanged{State: wifi.SupplicantDisconnected})
	r.mu.Unlock()

	r.post(evs...)
	return nil
}

func (r *Radio) Reassociate(context.Context) error {
	r.mu.Lock()
	if r.link == nil {
		r.mu.Unlock()
		return ErrNotAssociated
	}
	ap := r.link.ap
	r.mu.Unlock()

	r.post(
		supplicant(wifi.SupplicantAssociating, ap),
		supplicant(wifi.SupplicantAssociated, ap),
		clientmode.AssociatedBSSID{BSSID: ap.BSSID},
		supplicant(wifi.SupplicantCompleted, ap))
	return nil
}

func (r *Radio) SetMACAddress(_ context.Context, mac net.HardwareAddr) error {
	if len(mac) != 6 {
		return fmt.Errorf("sim: bad mac address %q", mac.String())
	}
	r.mu.Lock()
	r.mac = bytes.Clone(mac)
	r.mu.Unlock()
	return nil
}

// SIMIdentityResponse completes an EAP association waiting for identity.
func (r *Radio) SIMIdentityResponse(_ context.Context, networkID int, identity string) error {
	r.mu.Lock()
	p := r.pendingEAP
	if p == nil || p.networkID != networkID || identity == "" {
		r.mu.Unlock()
		return ErrNoIdentityRequest
	}
	r.pendingEAP = nil
	evs := append([]clientmode.Event{supplicant(wifi.SupplicantFourWayHandshake, p.ap)},
		r.completeLocked(networkID, p.ap)...)
	r.mu.Unlock()

	r.post(evs...)
	return nil
}

func (r *Radio) InstallPacketFilter(_ context.Context, program []byte) error {
	r.mu.Lock()
	r.filter = bytes.Clone(program)
	r.mu.Unlock()
	return nil
}

func (r *Radio) ReadPacketFilter(context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return bytes.Clone(r.filter), nil
}

func (r *Radio) StartKeepalive(_ context.Context, slot int, packet []byte, interval time.Duration) error {
	if slot < 0 || slot >= MaxKeepaliveSlots {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if interval <= 0 {
		return fmt.Errorf("sim: keepalive interval %v", interval)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.link == nil {
		return ErrNotAssociated
	}
	r.keepalives[slot] = Keepalive{Packet: bytes.Clone(packet), Interval: interval}
	return nil
}

func (r *Radio) StopKeepalive(_ context.Context, slot int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.keepalives[slot]; !ok {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	delete(r.keepalives, slot)
	return nil
}

func (r *Radio) SignalPoll(context.Context) (linkquality.SignalPoll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.link == nil {
		return linkquality.SignalPoll{}, ErrNotAssociated
	}
	ap := r.link.ap
	if cur, ok := r.world.AP(ap.BSSID); ok {
		ap = cur
	}
	return linkquality.SignalPoll{
		RSSI:          ap.RSSI,
		LinkSpeedMbps: ap.LinkSpeedMbps,
		FrequencyMHz:  ap.FrequencyMHz,
	}, nil
}

func (r *Radio) StartRSSIMonitoring(lo, hi int8) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.up {
		return ErrRadioDown
	}
	r.offload = true
	r.lo, r.hi = lo, hi
	return nil
}

func (r *Radio) StopRSSIMonitoring() error {
	r.mu.Lock()
	r.offload = false
	r.mu.Unlock()
	return nil
}

// SetRSSI changes how strongly bssid is heard. When bssid is the associated
// AP and the armed bracket no longer contains rssi, the firmware reports a
// breach.
func (r *Radio) SetRSSI(bssid string, rssi int) error {
	if err := r.world.SetRSSI(bssid, rssi); err != nil {
		return err
	}
	r.mu.Lock()
	breach := false
	if r.link != nil && r.link.ap.BSSID == bssid {
		r.link.ap.RSSI = rssi
		breach = r.offload && (rssi < int(r.lo) || rssi >= int(r.hi))
		if breach {
			r.offload = false
		}
	}
	r.mu.Unlock()

	if breach {
		r.post(clientmode.RSSIThresholdBreached{RSSI: rssi})
	}
	return nil
}

// Kick simulates the AP deauthenticating the station.
func (r *Radio) Kick(reason wifi.ReasonCode) error {
	r.mu.Lock()
	if r.link == nil {
		r.mu.Unlock()
		return ErrNotAssociated
	}
	ap := r.link.ap
	r.link = nil
	r.offload = false
	clear(r.keepalives)
	r.mu.Unlock()

	r.post(
		clientmode.NetworkDisconnected{BSSID: ap.BSSID, Reason: reason},
		supplicant(wifi.SupplicantDisconnected, ap))
	return nil
}

// InterfaceDown simulates the interface disappearing under the stack.
func (r *Radio) InterfaceDown() {
	r.mu.Lock()
	r.up = false
	r.link = nil
	r.pendingEAP = nil
	r.offload = false
	clear(r.keepalives)
	r.mu.Unlock()

	r.post(clientmode.InterfaceDown{})
}

// pick chooses the AP to associate with. Callers hold r.mu.
func (r *Radio) pick(ssid, bssid string) (AccessPoint, bool) {
	if bssid != "" && bssid != wifi.BSSIDAny {
		ap, ok := r.world.AP(bssid)
		if !ok || ap.SSID != ssid {
			return AccessPoint{}, false
		}
		return ap, true
	}
	aps := r.world.BySSID(ssid)
	if len(aps) == 0 {
		return AccessPoint{}, false
	}
	return aps[0], true
}

func (r *Radio) completeLocked(networkID int, ap AccessPoint) []clientmode.Event {
	r.link = &association{networkID: networkID, ap: ap}
	return []clientmode.Event{
		supplicant(wifi.SupplicantCompleted, ap),
		clientmode.NetworkConnected{NetworkID: networkID, BSSID: ap.BSSID},
	}
}

func (r *Radio) post(evs ...clientmode.Event) {
	for _, ev := range evs {
		if err := r.sink.Post(ev); err != nil {
			r.log.Debug("event dropped", "event", ev.What().String(), "error", err)
			return
		}
	}
}

func supplicant(state wifi.SupplicantState, ap AccessPoint) clientmode.SupplicantStateChanged {
	return clientmode.SupplicantStateChanged{State: state, BSSID: ap.BSSID, SSID: ap.SSID}
}
