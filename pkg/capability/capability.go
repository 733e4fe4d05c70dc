// Package capability computes and publishes the externally visible
// description of the current network: its capability set, link properties
// and availability.
//
// Publishing goes through a NetworkAgent, created when the link layer
// reaches the connected state and dropped on disconnect. Every agent has an
// identity token so that late callbacks from a dropped agent can be told
// apart from callbacks of the live one.
package capability

import (
	"errors"
	"fmt"
	"net/netip"

	"github.com/stactl/stactl-go/pkg/wifi"
)

// ErrUnknownUnwantedReason is returned for a network-unwanted reason outside
// the three defined values.
var ErrUnknownUnwantedReason = errors.New("unknown network unwanted reason")

// SignalStrengthUnspecified marks a capability set without a usable RSSI.
const SignalStrengthUnspecified = wifi.InvalidRSSI

// Capabilities is the capability set announced for the current network.
type Capabilities struct {
	Trusted        bool
	NotMetered     bool
	SignalStrength int
	SSID           string
}

// HasSignalStrength reports whether SignalStrength carries a reading.
func (c Capabilities) HasSignalStrength() bool {
	return c.SignalStrength != SignalStrengthUnspecified
}

// String renders the set compactly for logs.
func (c Capabilities) String() string {
	return fmt.Sprintf("trusted=%t not_metered=%t signal=%d ssid=%q",
		c.Trusted, c.NotMetered, c.SignalStrength, c.SSID)
}

// Compute derives the capability set from the live link identity and the
// network's profile. cfg may be nil.
func Compute(info wifi.Info, cfg *wifi.NetworkConfig) Capabilities {
	c := Capabilities{SignalStrength: SignalStrengthUnspecified}
	ephemeral := info.Ephemeral
	metered := info.MeteredHint
	if cfg != nil {
		ephemeral = ephemeral || cfg.Ephemeral
		metered = metered || cfg.Metered
	}
	c.Trusted = !ephemeral
	c.NotMetered = !metered
	if info.HasValidRSSI() {
		c.SignalStrength = info.RSSI
	}
	c.SSID = info.SSID
	return c
}

// LinkProperties is the IP-layer description of the link.
type LinkProperties struct {
	InterfaceName string
	Addresses     []netip.Prefix
	Gateway       netip.Addr
	DNS           []netip.Addr
	HTTPProxy     string
}

// Clone returns a deep copy.
func (lp LinkProperties) Clone() LinkProperties {
	out := lp
	out.Addresses = append([]netip.Prefix(nil), lp.Addresses...)
	out.DNS = append([]netip.Addr(nil), lp.DNS...)
	return out
}

// IsProvisioned reports whether the link has an address and a gateway.
func (lp LinkProperties) IsProvisioned() bool {
	return len(lp.Addresses) > 0 && lp.Gateway.IsValid()
}

// DetailedState is the connection state reported to the connectivity stack.
type DetailedState uint8

const (
	DetailedIdle DetailedState = iota
	DetailedConnecting
	DetailedObtainingIPAddr
	DetailedConnected
	DetailedDisconnected
)

// String returns the state name.
func (s DetailedState) String() string {
	switch s {
	case DetailedIdle:
		return "IDLE"
	case DetailedConnecting:
		return "CONNECTING"
	case DetailedObtainingIPAddr:
		return "OBTAINING_IPADDR"
	case DetailedConnected:
		return "CONNECTED"
	case DetailedDisconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}

// UnwantedReason is why the connectivity stack no longer wants the network.
type UnwantedReason uint8

const (
	// UnwantedDisconnect asks for a plain disconnect.
	UnwantedDisconnect UnwantedReason = 0
	// UnwantedValidationFailed reports that internet validation failed.
	UnwantedValidationFailed UnwantedReason = 1
	// UnwantedDisableAutojoin asks to stop auto-joining the network.
	UnwantedDisableAutojoin UnwantedReason = 2
)

// String returns the reason name.
func (r UnwantedReason) String() string {
	switch r {
	case UnwantedDisconnect:
		return "DISCONNECT"
	case UnwantedValidationFailed:
		return "VALIDATION_FAILED"
	case UnwantedDisableAutojoin:
		return "DISABLE_AUTOJOIN"
	default:
		return fmt.Sprintf("UNWANTED_%d", uint8(r))
	}
}

// ParseUnwantedReason validates a raw reason value.
func ParseUnwantedReason(v int) (UnwantedReason, error) {
	switch v {
	case 0, 1, 2:
		return UnwantedReason(v), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownUnwantedReason, v)
}
