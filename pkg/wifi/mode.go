package wifi

import "strings"

// OperationalMode selects what the interface is allowed to do.
type OperationalMode uint8

const (
	ModeDisabled OperationalMode = iota
	ModeConnect
	ModeScanOnly
	ModeScanOnlyRadioOff
)

// String returns the mode name.
func (m OperationalMode) String() string {
	switch m {
	case ModeDisabled:
		return "DISABLED"
	case ModeConnect:
		return "CONNECT"
	case ModeScanOnly:
		return "SCAN_ONLY"
	case ModeScanOnlyRadioOff:
		return "SCAN_ONLY_RADIO_OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseOperationalMode parses a mode name as printed by String, case
// insensitively. Short forms "connect", "scan", "off" are accepted.
func ParseOperationalMode(s string) (OperationalMode, bool) {
	switch strings.ToLower(s) {
	case "connect":
		return ModeConnect, true
	case "scan", "scan_only":
		return ModeScanOnly, true
	case "scan_only_radio_off":
		return ModeScanOnlyRadioOff, true
	case "off", "disabled":
		return ModeDisabled, true
	}
	return ModeDisabled, false
}
