// Package attempt tracks connection attempts and reports each outcome
// exactly once.
//
// An attempt is one try to associate, authenticate and provision a network.
// The Tracker allows at most one open attempt. Begin on an open tracker is
// refused, End on a closed tracker is a no-op, so racing terminal events
// cannot double-report.
package attempt

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrAttemptOpen is returned by Begin while another attempt is open.
var ErrAttemptOpen = errors.New("connection attempt already open")

// FailureCode is the terminal outcome of an attempt.
type FailureCode uint8

const (
	// FailureNone means the attempt succeeded.
	FailureNone FailureCode = iota
	FailureAssociationRejected
	FailureAssociationTimedOut
	FailureAuthenticationFailed
	FailureDHCPFailed
	FailureNetworkDisconnectedDuringSetup
	FailureRoamTimeout
	FailureRedundantOrRejectedByDriver
)

// String returns the code name.
func (c FailureCode) String() string {
	switch c {
	case FailureNone:
		return "NONE"
	case FailureAssociationRejected:
		return "ASSOCIATION_REJECTED"
	case FailureAssociationTimedOut:
		return "ASSOCIATION_TIMED_OUT"
	case FailureAuthenticationFailed:
		return "AUTHENTICATION_FAILED"
	case FailureDHCPFailed:
		return "DHCP_FAILED"
	case FailureNetworkDisconnectedDuringSetup:
		return "NETWORK_DISCONNECTED_DURING_SETUP"
	case FailureRoamTimeout:
		return "ROAM_TIMEOUT"
	case FailureRedundantOrRejectedByDriver:
		return "REDUNDANT_OR_REJECTED_BY_DRIVER"
	default:
		return "UNKNOWN"
	}
}

// Succeeded reports whether the code is FailureNone.
func (c FailureCode) Succeeded() bool {
	return c == FailureNone
}

// RoamType distinguishes fresh connections from roams.
type RoamType uint8

const (
	// RoamUnrelated is a connection to a network not currently associated.
	RoamUnrelated RoamType = iota
	// RoamEnterprise is a roam between BSSIDs of the associated network.
	RoamEnterprise
)

// String returns the roam type name.
func (r RoamType) String() string {
	switch r {
	case RoamUnrelated:
		return "UNRELATED"
	case RoamEnterprise:
		return "ENTERPRISE"
	default:
		return "UNKNOWN"
	}
}

// Attempt describes one open connection attempt.
type Attempt struct {
	ID        uuid.UUID
	NetworkID int
	SSID      string
	BSSID     string
	RoamType  RoamType
	Started   time.Time
}

// Outcome is the terminal report of an attempt.
type Outcome struct {
	Attempt
	Code  FailureCode
	Ended time.Time
}

// Duration returns the time from start to end.
func (o Outcome) Duration() time.Duration {
	return o.Ended.Sub(o.Started)
}

// Reporter receives attempt lifecycle reports. Implementations must not
// block; they are called from the dispatch goroutine.
type Reporter interface {
	AttemptStarted(a Attempt)
	AttemptEnded(o Outcome)
}
