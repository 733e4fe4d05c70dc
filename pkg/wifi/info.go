package wifi

import (
	"net/netip"
	"time"
)

// Sentinel values used by Info and the network configuration.
const (
	// InvalidNetworkID marks the absence of a network profile.
	InvalidNetworkID = -1

	// BSSIDAny is the wildcard target BSSID that lets the supplicant pick.
	BSSIDAny = "any"

	// InvalidRSSI is reported when no signal measurement is available.
	InvalidRSSI = -127

	// MaxRSSI is the upper bound (exclusive) of a plausible RSSI reading.
	MaxRSSI = 200
)

// Info is the live link identity of the interface.
//
// The zero value is not reset; use NewInfo or Reset.
type Info struct {
	SSID            string
	BSSID           string
	NetworkID       int
	RSSI            int
	LinkSpeedMbps   int
	FrequencyMHz    int
	SupplicantState SupplicantState
	IPAddress       netip.Addr
	MACAddress      string
	MeteredHint     bool
	Ephemeral       bool

	// Score is the link score handed to the connectivity stack.
	Score int

	// UpdatedAt is the time of the last mutation.
	UpdatedAt time.Time
}

// NewInfo returns an Info in its reset state.
func NewInfo() *Info {
	i := &Info{}
	i.Reset()
	return i
}

// Reset clears everything learned about the current association. The MAC
// address belongs to the interface and survives.
func (i *Info) Reset() {
	mac := i.MACAddress
	*i = Info{
		NetworkID:       InvalidNetworkID,
		RSSI:            InvalidRSSI,
		SupplicantState: SupplicantDisconnected,
		MACAddress:      mac,
	}
}

// Snapshot returns a copy that does not alias the live record.
func (i *Info) Snapshot() Info {
	return *i
}

// HasValidRSSI reports whether the last reading is usable.
func (i *Info) HasValidRSSI() bool {
	return ValidRSSI(i.RSSI)
}

// ValidRSSI reports whether rssi lies inside the plausible range.
func ValidRSSI(rssi int) bool {
	return rssi > InvalidRSSI && rssi < MaxRSSI
}

// NormalizeRSSI converts a positive driver reading into dBm. Some drivers
// report the unsigned byte value.
func NormalizeRSSI(rssi int) int {
	if rssi > 0 {
		return rssi - 256
	}
	return rssi
}
