package wifi

import (
	"net/netip"
	"strings"
)

// IPAssignment selects how the interface obtains its address.
type IPAssignment uint8

const (
	IPAssignmentDHCP IPAssignment = iota
	IPAssignmentStatic
)

// String returns the assignment name.
func (a IPAssignment) String() string {
	if a == IPAssignmentStatic {
		return "STATIC"
	}
	return "DHCP"
}

// Security identifies the key management used by a network.
type Security uint8

const (
	SecurityOpen Security = iota
	SecurityWPA2PSK
	SecurityWPA3SAE
	SecurityEAP
)

// String returns the security name.
func (s Security) String() string {
	switch s {
	case SecurityOpen:
		return "OPEN"
	case SecurityWPA2PSK:
		return "WPA2-PSK"
	case SecurityWPA3SAE:
		return "WPA3-SAE"
	case SecurityEAP:
		return "EAP"
	default:
		return "UNKNOWN"
	}
}

// ParseSecurity parses a security name as printed by String, case
// insensitively. "psk", "wpa2", "sae", "wpa3" and "none" are accepted too.
func ParseSecurity(s string) (Security, bool) {
	switch strings.ToLower(s) {
	case "open", "none", "":
		return SecurityOpen, true
	case "wpa2-psk", "wpa2", "psk":
		return SecurityWPA2PSK, true
	case "wpa3-sae", "wpa3", "sae":
		return SecurityWPA3SAE, true
	case "eap":
		return SecurityEAP, true
	}
	return SecurityOpen, false
}

// StaticIPConfig is the address configuration used when IPAssignment is
// static.
type StaticIPConfig struct {
	Address netip.Prefix
	Gateway netip.Addr
	DNS     []netip.Addr
}

// NetworkConfig is a saved network profile as seen by the client-mode core.
// Profiles are owned by the profile store; the core only reads them.
type NetworkConfig struct {
	NetworkID  int
	SSID       string
	Security   Security
	Passphrase string
	Hidden     bool

	IPAssignment IPAssignment
	Static       *StaticIPConfig
	HTTPProxy    string

	Metered          bool
	Ephemeral        bool
	RandomizeMAC     bool
	HasEverConnected bool

	// NoInternetExpected suppresses temporary disabling when validation
	// fails on networks known not to provide internet access.
	NoInternetExpected bool
}

// Clone returns a deep copy.
func (c *NetworkConfig) Clone() *NetworkConfig {
	if c == nil {
		return nil
	}
	out := *c
	if c.Static != nil {
		st := *c.Static
		st.DNS = append([]netip.Addr(nil), c.Static.DNS...)
		out.Static = &st
	}
	return &out
}
