package failure

import "github.com/stactl/stactl-go/pkg/wifi"

// BSSIDTracker is the blocklist part of the selection policy.
type BSSIDTracker interface {
	// TrackBSSID records the result of an association with bssid and
	// reports whether the BSSID is now blocklisted.
	TrackBSSID(bssid string, connected bool, reason wifi.ReasonCode) bool
}

// Profiles is the part of the profile store the classifier reads and
// updates.
type Profiles interface {
	Network(id int) (*wifi.NetworkConfig, bool)
	UpdateSelectionStatus(id int, reason wifi.DisableReason)
}

// WrongPasswordNotifier shows the user-visible wrong-password notification.
type WrongPasswordNotifier interface {
	WrongPassword(ssid string)
}

// BugReporter captures a diagnostic bug report.
type BugReporter interface {
	CaptureBugReport(title, detail string)
}

// RecoveryReason says why self recovery was requested.
type RecoveryReason uint8

const (
	RecoveryInterfaceDown RecoveryReason = iota + 1
	RecoveryLastResortWatchdog
)

// String returns the reason name.
func (r RecoveryReason) String() string {
	switch r {
	case RecoveryInterfaceDown:
		return "STA_IFACE_DOWN"
	case RecoveryLastResortWatchdog:
		return "LAST_RESORT_WATCHDOG"
	default:
		return "UNKNOWN"
	}
}

// SelfRecovery restarts the wireless stack. The core never restarts the
// interface itself.
type SelfRecovery interface {
	Trigger(reason RecoveryReason)
}
