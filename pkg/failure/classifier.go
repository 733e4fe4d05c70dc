package failure

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/stactl/stactl-go/pkg/attempt"
	"github.com/stactl/stactl-go/pkg/wifi"
)

// DefaultBugReportInterval spaces out automatic bug report captures.
const DefaultBugReportInterval = 30 * time.Minute

// unexpectedReasons are disconnect reasons that point at authentication or
// key exchange trouble rather than ordinary departure.
var unexpectedReasons = map[wifi.ReasonCode]struct{}{
	wifi.ReasonPrevAuthNotValid:        {},
	wifi.ReasonClass2FrameFromNonAuth:  {},
	wifi.ReasonClass3FrameFromNonAssoc: {},
	wifi.ReasonDisassocStaHasLeft:      {},
	wifi.ReasonStaReqAssocWithoutAuth:  {},
	wifi.ReasonMichaelMICFailure:       {},
	wifi.ReasonFourWayHandshakeTimeout: {},
	wifi.ReasonGroupKeyUpdateTimeout:   {},
	wifi.ReasonInvalidGroupCipher:      {},
	wifi.ReasonInvalidPairwiseCipher:   {},
	wifi.ReasonIEEE8021XAuthFailed:     {},
	wifi.ReasonDisassocLowAck:          {},
}

// IsUnexpectedDisconnect reports whether reason warrants a bug report.
func IsUnexpectedDisconnect(reason wifi.ReasonCode) bool {
	_, ok := unexpectedReasons[reason]
	return ok
}

// Config configures a Classifier. Nil collaborators are skipped.
type Config struct {
	Tracker    BSSIDTracker
	Profiles   Profiles
	Notifier   WrongPasswordNotifier
	BugReports BugReporter
	Recovery   SelfRecovery

	// BugReportInterval is the minimum spacing of automatic captures with
	// the same title.
	// Defaults to DefaultBugReportInterval; negative disables throttling.
	BugReportInterval time.Duration

	// Now is the clock the throttle runs on. Defaults to time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// Classifier turns raw failure events into decisions and side effects.
// It is owned by the dispatch goroutine.
type Classifier struct {
	cfg      Config
	limit    rate.Limit
	limiters map[string]*rate.Limiter
	notified map[int]struct{}
}

// NewClassifier creates a classifier.
func NewClassifier(cfg Config) *Classifier {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.BugReportInterval == 0 {
		cfg.BugReportInterval = DefaultBugReportInterval
	}
	limit := rate.Inf
	if cfg.BugReportInterval > 0 {
		limit = rate.Every(cfg.BugReportInterval)
	}
	return &Classifier{
		cfg:      cfg,
		limit:    limit,
		limiters: make(map[string]*rate.Limiter),
		notified: make(map[int]struct{}),
	}
}

// Rejection is an association rejection reported by the supplicant.
type Rejection struct {
	BSSID    string
	Status   uint16
	TimedOut bool
}

// RejectionDecision is the classifier's verdict on a rejection.
type RejectionDecision struct {
	// BSSID is the BSSID the rejection was attributed to.
	BSSID       string
	Blocklisted bool
	Code        attempt.FailureCode
}

// AssociationRejected blocklists the rejecting BSSID, falling back to
// roamTarget when the supplicant did not say which BSSID rejected, and
// records the failure against the profile.
func (c *Classifier) AssociationRejected(networkID int, r Rejection, roamTarget string) RejectionDecision {
	bssid := r.BSSID
	if bssid == "" {
		bssid = roamTarget
	}

	d := RejectionDecision{BSSID: bssid, Code: attempt.FailureAssociationRejected}
	if r.TimedOut {
		d.Code = attempt.FailureAssociationTimedOut
	}
	if c.cfg.Tracker != nil && bssid != "" && bssid != wifi.BSSIDAny {
		d.Blocklisted = c.cfg.Tracker.TrackBSSID(bssid, false, wifi.ReasonCode(r.Status))
	}
	if c.cfg.Profiles != nil {
		c.cfg.Profiles.UpdateSelectionStatus(networkID, wifi.DisableAssociationRejection)
	}

	c.cfg.Logger.Info("association rejected",
		"network_id", networkID,
		"bssid", bssid,
		"status", r.Status,
		"timed_out", r.TimedOut,
		"blocklisted", d.Blocklisted)
	c.captureBugReport("association rejection", fmt.Sprintf("network %d bssid %s status %d", networkID, bssid, r.Status))
	return d
}

// AuthDecision is the classifier's verdict on an authentication failure.
type AuthDecision struct {
	Permanent bool

	// Notified is true when this failure raised the user notification.
	Notified bool

	Code attempt.FailureCode
}

// AuthenticationFailed classifies an authentication failure. Only a wrong
// password on a network that has never connected is permanent, and the user
// is told at most once per failure streak.
func (c *Classifier) AuthenticationFailed(networkID int, reason wifi.AuthFailureReason) AuthDecision {
	d := AuthDecision{Code: attempt.FailureAuthenticationFailed}

	var cfg *wifi.NetworkConfig
	if c.cfg.Profiles != nil {
		cfg, _ = c.cfg.Profiles.Network(networkID)
	}
	d.Permanent = reason == wifi.AuthFailureWrongPassword && cfg != nil && !cfg.HasEverConnected

	status := wifi.DisableAuthenticationFailure
	if d.Permanent {
		status = wifi.DisableWrongPassword
		if _, done := c.notified[networkID]; !done {
			c.notified[networkID] = struct{}{}
			if c.cfg.Notifier != nil {
				c.cfg.Notifier.WrongPassword(cfg.SSID)
			}
			d.Notified = true
		}
	}
	if c.cfg.Profiles != nil {
		c.cfg.Profiles.UpdateSelectionStatus(networkID, status)
	}

	c.cfg.Logger.Info("authentication failed",
		"network_id", networkID,
		"reason", reason.String(),
		"permanent", d.Permanent,
		"notified", d.Notified)
	return d
}

// IPConfigurationLost counts a DHCP failure against the network.
func (c *Classifier) IPConfigurationLost(networkID int) {
	if c.cfg.Profiles != nil {
		c.cfg.Profiles.UpdateSelectionStatus(networkID, wifi.DisableDHCPFailure)
	}
	c.cfg.Logger.Info("ip configuration lost", "network_id", networkID)
}

// Connected ends the wrong password streak of networkID. BSSID success is
// recorded by the caller when the link comes up.
func (c *Classifier) Connected(networkID int) {
	delete(c.notified, networkID)
}

// Disconnected inspects a link-layer disconnect and captures a bug report
// for unexpected reasons. It reports whether the reason was unexpected.
func (c *Classifier) Disconnected(networkID int, bssid string, reason wifi.ReasonCode) bool {
	if !IsUnexpectedDisconnect(reason) {
		return false
	}
	c.cfg.Logger.Warn("unexpected disconnect",
		"network_id", networkID,
		"bssid", bssid,
		"reason", reason.String())
	c.captureBugReport("unexpected disconnect", fmt.Sprintf("network %d bssid %s reason %s", networkID, bssid, reason))
	return true
}

// InterfaceDown escalates the loss of the interface to self recovery.
func (c *Classifier) InterfaceDown(iface string) {
	c.cfg.Logger.Error("interface down, triggering self recovery", "iface", iface)
	if c.cfg.Recovery != nil {
		c.cfg.Recovery.Trigger(RecoveryInterfaceDown)
	}
}

func (c *Classifier) captureBugReport(title, detail string) {
	if c.cfg.BugReports == nil {
		return
	}
	l, ok := c.limiters[title]
	if !ok {
		l = rate.NewLimiter(c.limit, 1)
		c.limiters[title] = l
	}
	if !l.AllowN(c.cfg.Now(), 1) {
		c.cfg.Logger.Debug("bug report suppressed", "title", title)
		return
	}
	c.cfg.BugReports.CaptureBugReport(title, detail)
}
