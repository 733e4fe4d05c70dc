package wifi

// DisableReason is a network selection status update recorded against a
// profile. The profile store counts them and decides when a network is
// temporarily or permanently excluded from auto-join.
type DisableReason uint8

const (
	DisableNone DisableReason = iota
	DisableAssociationRejection
	DisableAuthenticationFailure
	DisableDHCPFailure
	DisableWrongPassword
	DisableNoInternetTemporary
	DisableNoInternetPermanent
	DisableByUser
)

// String returns the reason name.
func (r DisableReason) String() string {
	switch r {
	case DisableNone:
		return "NONE"
	case DisableAssociationRejection:
		return "ASSOCIATION_REJECTION"
	case DisableAuthenticationFailure:
		return "AUTHENTICATION_FAILURE"
	case DisableDHCPFailure:
		return "DHCP_FAILURE"
	case DisableWrongPassword:
		return "WRONG_PASSWORD"
	case DisableNoInternetTemporary:
		return "NO_INTERNET_TEMPORARY"
	case DisableNoInternetPermanent:
		return "NO_INTERNET_PERMANENT"
	case DisableByUser:
		return "BY_USER"
	default:
		return "UNKNOWN"
	}
}

// Permanent reports whether the reason disables the network until the user
// intervenes.
func (r DisableReason) Permanent() bool {
	switch r {
	case DisableWrongPassword, DisableNoInternetPermanent, DisableByUser:
		return true
	}
	return false
}

// ConnectionState is what the selection policy is told about the link.
type ConnectionState uint8

const (
	ConnectionStateDisconnected ConnectionState = iota
	ConnectionStateConnected
	ConnectionStateTransitioning
)

// String returns the state name.
func (s ConnectionState) String() string {
	switch s {
	case ConnectionStateDisconnected:
		return "DISCONNECTED"
	case ConnectionStateConnected:
		return "CONNECTED"
	case ConnectionStateTransitioning:
		return "TRANSITIONING"
	default:
		return "UNKNOWN"
	}
}
