package clientmode

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stactl/stactl-go/pkg/capability"
	"github.com/stactl/stactl-go/pkg/linkquality"
	"github.com/stactl/stactl-go/pkg/log"
	"github.com/stactl/stactl-go/pkg/watchdog"
	"github.com/stactl/stactl-go/pkg/wifi"
)

// What identifies an event kind.
type What uint16

const (
	// WhatNone is never valid; receiving it is a defect.
	WhatNone What = iota

	// Commands.
	WhatInitialize
	WhatBootCompleted
	WhatSetOperationalMode
	WhatStartConnect
	WhatStartRoam
	WhatDisconnect
	WhatReconnect
	WhatReassociate
	WhatScreenStateChanged
	WhatSetHighPerfMode
	WhatSetSuspendOptimizations
	WhatSetSuspendPreference
	WhatEnableRSSIPoll
	WhatStartRSSIMonitoring
	WhatStopRSSIMonitoring
	WhatSaveNetwork
	WhatStartKeepalive
	WhatStopKeepalive
	WhatInstallPacketFilter
	WhatReadPacketFilter
	WhatAcceptUnvalidated
	WhatRequestsChanged
	WhatConnectionInfo
	WhatP2PReleased

	// Timers.
	WhatWatchdogFired

	// Link layer.
	WhatAssociationRejected
	WhatAuthenticationFailed
	WhatSupplicantStateChanged
	WhatNetworkConnected
	WhatNetworkDisconnected
	WhatSIMIdentityRequested
	WhatRSSIThresholdBreached
	WhatAssociatedBSSID
	WhatInterfaceDown

	// IP provisioning.
	WhatPreDHCPAction
	WhatPostDHCPAction
	WhatProvisioningSuccess
	WhatProvisioningFailure
	WhatLinkPropertiesChanged
	WhatReachabilityLost

	// Connectivity stack.
	WhatNetworkUnwanted
	WhatNetworkValidation
)

var whatNames = map[What]string{
	WhatNone:                    "NONE",
	WhatInitialize:              "INITIALIZE",
	WhatBootCompleted:           "BOOT_COMPLETED",
	WhatSetOperationalMode:      "SET_OPERATIONAL_MODE",
	WhatStartConnect:            "START_CONNECT",
	WhatStartRoam:               "START_ROAM",
	WhatDisconnect:              "DISCONNECT",
	WhatReconnect:               "RECONNECT",
	WhatReassociate:             "REASSOCIATE",
	WhatScreenStateChanged:      "SCREEN_STATE_CHANGED",
	WhatSetHighPerfMode:         "SET_HIGH_PERF_MODE",
	WhatSetSuspendOptimizations: "SET_SUSPEND_OPT_ENABLED",
	WhatSetSuspendPreference:    "SET_SUSPEND_PREFERENCE",
	WhatEnableRSSIPoll:          "ENABLE_RSSI_POLL",
	WhatStartRSSIMonitoring:     "START_RSSI_MONITORING_OFFLOAD",
	WhatStopRSSIMonitoring:      "STOP_RSSI_MONITORING_OFFLOAD",
	WhatSaveNetwork:             "SAVE_NETWORK",
	WhatStartKeepalive:          "START_IP_PACKET_OFFLOAD",
	WhatStopKeepalive:           "STOP_IP_PACKET_OFFLOAD",
	WhatInstallPacketFilter:     "INSTALL_PACKET_FILTER",
	WhatReadPacketFilter:        "READ_PACKET_FILTER",
	WhatAcceptUnvalidated:       "ACCEPT_UNVALIDATED",
	WhatRequestsChanged:         "REQUESTS_CHANGED",
	WhatConnectionInfo:          "CONNECTION_INFO",
	WhatP2PReleased:             "P2P_DISABLED",
	WhatWatchdogFired:           "WATCHDOG_FIRED",
	WhatAssociationRejected:     "ASSOCIATION_REJECTION",
	WhatAuthenticationFailed:    "AUTHENTICATION_FAILURE",
	WhatSupplicantStateChanged:  "SUPPLICANT_STATE_CHANGE",
	WhatNetworkConnected:        "NETWORK_CONNECTION",
	WhatNetworkDisconnected:     "NETWORK_DISCONNECTION",
	WhatSIMIdentityRequested:    "SIM_IDENTITY_REQUEST",
	WhatRSSIThresholdBreached:   "RSSI_THRESHOLD_BREACHED",
	WhatAssociatedBSSID:         "ASSOCIATED_BSSID",
	WhatInterfaceDown:           "INTERFACE_DOWN",
	WhatPreDHCPAction:           "PRE_DHCP_ACTION",
	WhatPostDHCPAction:          "POST_DHCP_ACTION",
	WhatProvisioningSuccess:     "IP_CONFIGURATION_SUCCESSFUL",
	WhatProvisioningFailure:     "IP_CONFIGURATION_LOST",
	WhatLinkPropertiesChanged:   "UPDATE_LINKPROPERTIES",
	WhatReachabilityLost:        "IP_REACHABILITY_LOST",
	WhatNetworkUnwanted:         "NETWORK_UNWANTED",
	WhatNetworkValidation:       "NETWORK_STATUS",
}

// String returns the event name.
func (w What) String() string {
	if s, ok := whatNames[w]; ok {
		return s
	}
	return fmt.Sprintf("WHAT(%d)", uint16(w))
}

// Event is anything posted to the machine's mailbox.
type Event interface {
	What() What
}

func whatOf(ev Event) What {
	if ev == nil {
		return WhatNone
	}
	return ev.What()
}

// detail renders the event's arguments for the trace.
func detail(ev Event) string {
	if ev == nil {
		return ""
	}
	s := fmt.Sprintf("%+v", ev)
	s = strings.TrimPrefix(s, "&")
	if s == "{}" {
		return ""
	}
	return s
}

// layerOf maps an event to the boundary it came from.
func layerOf(ev Event) log.Layer {
	switch w := whatOf(ev); {
	case w >= WhatAssociationRejected && w <= WhatInterfaceDown:
		return log.LayerLink
	case w >= WhatPreDHCPAction && w <= WhatReachabilityLost:
		return log.LayerIP
	case w >= WhatNetworkUnwanted:
		return log.LayerConnectivity
	default:
		return log.LayerCore
	}
}

// Commands.

type Initialize struct{}

type BootCompleted struct{}

// SetOperationalMode switches between connect mode and the idle modes. Use
// Machine.SetOperationalMode, which queues it ahead of pending events.
type SetOperationalMode struct {
	Mode wifi.OperationalMode
}

// StartConnect asks for a connection to a saved network. BSSID may be
// wifi.BSSIDAny.
type StartConnect struct {
	NetworkID int
	BSSID     string
}

// StartRoam asks for a roam to BSSID within the current network.
type StartRoam struct {
	NetworkID int
	BSSID     string
}

type Disconnect struct{}

type Reconnect struct{}

type Reassociate struct{}

type ScreenStateChanged struct {
	On bool
}

type SetHighPerfMode struct {
	On bool
}

// SetSuspendOptimizations allows (Enabled) or inhibits suspend optimizations
// on behalf of Reason.
type SetSuspendOptimizations struct {
	Reason  linkquality.SuspendReason
	Enabled bool
}

// SetSuspendPreference records whether the user allows suspend optimizations
// at all. Inhibitors still apply while it is set.
type SetSuspendPreference struct {
	Allow bool
}

type EnableRSSIPoll struct {
	On bool
}

// StartRSSIMonitoring arms the hardware RSSI monitor with Thresholds. Reply,
// if set, receives the result on the dispatch goroutine.
type StartRSSIMonitoring struct {
	Thresholds []int
	Reply      func(error)
}

type StopRSSIMonitoring struct{}

type SaveNetwork struct {
	NetworkID int
}

// StartKeepalive starts a hardware keepalive in Slot.
type StartKeepalive struct {
	Slot     int
	Interval time.Duration
	Packet   []byte
	Reply    func(error)
}

type StopKeepalive struct {
	Slot  int
	Reply func(error)
}

type InstallPacketFilter struct {
	Program []byte
}

type ReadPacketFilter struct{}

// AcceptUnvalidated records the user's answer to "stay connected without
// internet?" for the agent AgentID.
type AcceptUnvalidated struct {
	AgentID uuid.UUID
	Accept  bool
}

type requestsChanged struct {
	Kind   RequestKind
	Active bool
}

type connectionInfoRequest struct {
	reply chan wifi.Info
}

// P2PReleased is posted by the peer-to-peer stack once it has let go of
// the radio.
type P2PReleased struct{}

// Timers.

// WatchdogFired is posted by the watchdog registry when a guard expires.
type WatchdogFired struct {
	Token watchdog.Token
}

// Link layer.

type AssociationRejected struct {
	BSSID    string
	Status   uint16
	TimedOut bool
}

type AuthenticationFailed struct {
	Reason wifi.AuthFailureReason
}

type SupplicantStateChanged struct {
	State wifi.SupplicantState
	BSSID string
	SSID  string
}

type NetworkConnected struct {
	NetworkID int
	BSSID     string
}

type NetworkDisconnected struct {
	BSSID            string
	Reason           wifi.ReasonCode
	LocallyGenerated bool
}

type SIMIdentityRequested struct {
	NetworkID int
}

type RSSIThresholdBreached struct {
	RSSI int
}

type AssociatedBSSID struct {
	BSSID string
}

// InterfaceDown reports that the wireless interface disappeared.
type InterfaceDown struct{}

// IP provisioning.

type PreDHCPAction struct{}

type PostDHCPAction struct{}

type ProvisioningSuccess struct {
	LinkProperties capability.LinkProperties
}

type ProvisioningFailure struct {
	Err error
}

type LinkPropertiesChanged struct {
	LinkProperties capability.LinkProperties
}

type ReachabilityLost struct {
	Detail string
}

// Connectivity stack.

// NetworkUnwanted is posted by a network agent. Reason is the raw wire value.
type NetworkUnwanted struct {
	AgentID uuid.UUID
	Reason  int
}

type NetworkValidation struct {
	AgentID uuid.UUID
	Valid   bool
}

func (Initialize) What() What              { return WhatInitialize }
func (BootCompleted) What() What           { return WhatBootCompleted }
func (SetOperationalMode) What() What      { return WhatSetOperationalMode }
func (StartConnect) What() What            { return WhatStartConnect }
func (StartRoam) What() What               { return WhatStartRoam }
func (Disconnect) What() What              { return WhatDisconnect }
func (Reconnect) What() What               { return WhatReconnect }
func (Reassociate) What() What             { return WhatReassociate }
func (ScreenStateChanged) What() What      { return WhatScreenStateChanged }
func (SetHighPerfMode) What() What         { return WhatSetHighPerfMode }
func (SetSuspendOptimizations) What() What { return WhatSetSuspendOptimizations }
func (SetSuspendPreference) What() What    { return WhatSetSuspendPreference }
func (EnableRSSIPoll) What() What          { return WhatEnableRSSIPoll }
func (StartRSSIMonitoring) What() What     { return WhatStartRSSIMonitoring }
func (StopRSSIMonitoring) What() What      { return WhatStopRSSIMonitoring }
func (SaveNetwork) What() What             { return WhatSaveNetwork }
func (StartKeepalive) What() What          { return WhatStartKeepalive }
func (StopKeepalive) What() What           { return WhatStopKeepalive }
func (InstallPacketFilter) What() What     { return WhatInstallPacketFilter }
func (ReadPacketFilter) What() What        { return WhatReadPacketFilter }
func (AcceptUnvalidated) What() What       { return WhatAcceptUnvalidated }
func (requestsChanged) What() What         { return WhatRequestsChanged }
func (connectionInfoRequest) What() What   { return WhatConnectionInfo }
func (P2PReleased) What() What             { return WhatP2PReleased }
func (WatchdogFired) What() What           { return WhatWatchdogFired }
func (AssociationRejected) What() What     { return WhatAssociationRejected }
func (AuthenticationFailed) What() What    { return WhatAuthenticationFailed }
func (SupplicantStateChanged) What() What  { return WhatSupplicantStateChanged }
func (NetworkConnected) What() What        { return WhatNetworkConnected }
func (NetworkDisconnected) What() What     { return WhatNetworkDisconnected }
func (SIMIdentityRequested) What() What    { return WhatSIMIdentityRequested }
func (RSSIThresholdBreached) What() What   { return WhatRSSIThresholdBreached }
func (AssociatedBSSID) What() What         { return WhatAssociatedBSSID }
func (InterfaceDown) What() What           { return WhatInterfaceDown }
func (PreDHCPAction) What() What           { return WhatPreDHCPAction }
func (PostDHCPAction) What() What          { return WhatPostDHCPAction }
func (ProvisioningSuccess) What() What     { return WhatProvisioningSuccess }
func (ProvisioningFailure) What() What     { return WhatProvisioningFailure }
func (LinkPropertiesChanged) What() What   { return WhatLinkPropertiesChanged }
func (ReachabilityLost) What() What        { return WhatReachabilityLost }
func (NetworkUnwanted) What() What         { return WhatNetworkUnwanted }
func (NetworkValidation) What() What       { return WhatNetworkValidation }
