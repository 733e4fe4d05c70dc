package wifi

// SupplicantState is the link-layer association sub-state reported by the
// supplicant.
type SupplicantState uint8

const (
	SupplicantDisconnected SupplicantState = iota
	SupplicantInterfaceDisabled
	SupplicantInactive
	SupplicantScanning
	SupplicantAuthenticating
	SupplicantAssociating
	SupplicantAssociated
	SupplicantFourWayHandshake
	SupplicantGroupHandshake
	SupplicantCompleted
	SupplicantDormant
	SupplicantUninitialized
	SupplicantInvalid
)

// String returns the supplicant state name.
func (s SupplicantState) String() string {
	switch s {
	case SupplicantDisconnected:
		return "DISCONNECTED"
	case SupplicantInterfaceDisabled:
		return "INTERFACE_DISABLED"
	case SupplicantInactive:
		return "INACTIVE"
	case SupplicantScanning:
		return "SCANNING"
	case SupplicantAuthenticating:
		return "AUTHENTICATING"
	case SupplicantAssociating:
		return "ASSOCIATING"
	case SupplicantAssociated:
		return "ASSOCIATED"
	case SupplicantFourWayHandshake:
		return "FOUR_WAY_HANDSHAKE"
	case SupplicantGroupHandshake:
		return "GROUP_HANDSHAKE"
	case SupplicantCompleted:
		return "COMPLETED"
	case SupplicantDormant:
		return "DORMANT"
	case SupplicantUninitialized:
		return "UNINITIALIZED"
	default:
		return "INVALID"
	}
}

// IsConnecting reports whether the supplicant is between scanning and
// completion.
func (s SupplicantState) IsConnecting() bool {
	switch s {
	case SupplicantAuthenticating, SupplicantAssociating, SupplicantAssociated,
		SupplicantFourWayHandshake, SupplicantGroupHandshake:
		return true
	}
	return false
}

// AuthFailureReason classifies an authentication failure reported by the
// supplicant.
type AuthFailureReason uint8

const (
	AuthFailureNone AuthFailureReason = iota
	AuthFailureTimeout
	AuthFailureWrongPassword
	AuthFailureEAP
)

// String returns the reason name.
func (r AuthFailureReason) String() string {
	switch r {
	case AuthFailureNone:
		return "NONE"
	case AuthFailureTimeout:
		return "TIMEOUT"
	case AuthFailureWrongPassword:
		return "WRONG_PASSWORD"
	case AuthFailureEAP:
		return "EAP_FAILURE"
	default:
		return "UNKNOWN"
	}
}
