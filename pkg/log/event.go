package log

import "time"

// Event is one entry of the client-mode trace.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Interface is the wireless interface name.
	Interface string `cbor:"2,keyasint"`

	// Direction distinguishes events received from commands issued.
	Direction Direction `cbor:"3,keyasint"`

	// Layer the event originated from or was sent to.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the payload.
	Category Category `cbor:"5,keyasint"`

	// State is the active leaf state when the event was recorded.
	State string `cbor:"6,keyasint,omitempty"`

	// AttemptID is the open connection attempt, if any.
	AttemptID string `cbor:"7,keyasint,omitempty"`

	// NetworkID of the current or target network.
	NetworkID *int `cbor:"8,keyasint,omitempty"`

	// BSSID of the current or target access point.
	BSSID string `cbor:"9,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Dispatch    *DispatchEvent    `cbor:"10,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"11,keyasint,omitempty"`
	Attempt     *AttemptEvent     `cbor:"12,keyasint,omitempty"`
	Command     *CommandEvent     `cbor:"13,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"`
}

// Direction indicates which way an event flows.
type Direction uint8

const (
	// DirectionIn is an event delivered to the state machine.
	DirectionIn Direction = 0
	// DirectionOut is a command issued by the state machine.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer identifies the collaborator boundary of an event.
type Layer uint8

const (
	// LayerCore is the state machine itself (commands, timers).
	LayerCore Layer = 0
	// LayerLink is the link-layer control adapter.
	LayerLink Layer = 1
	// LayerIP is the IP-provisioning client.
	LayerIP Layer = 2
	// LayerConnectivity is the capability publisher boundary.
	LayerConnectivity Layer = 3
	// LayerPolicy is the selection policy.
	LayerPolicy Layer = 4
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerCore:
		return "CORE"
	case LayerLink:
		return "LINK"
	case LayerIP:
		return "IP"
	case LayerConnectivity:
		return "CONNECTIVITY"
	case LayerPolicy:
		return "POLICY"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryDispatch is an event offered to the state machine.
	CategoryDispatch Category = 0
	// CategoryState is a state change.
	CategoryState Category = 1
	// CategoryAttempt is a connection attempt start or end.
	CategoryAttempt Category = 2
	// CategoryCommand is a command to a collaborator.
	CategoryCommand Category = 3
	// CategoryError is a failure or defect.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryDispatch:
		return "DISPATCH"
	case CategoryState:
		return "STATE"
	case CategoryAttempt:
		return "ATTEMPT"
	case CategoryCommand:
		return "COMMAND"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Outcome is how the state machine disposed of an event.
type Outcome uint8

const (
	OutcomeHandled   Outcome = 0
	OutcomeDeferred  Outcome = 1
	OutcomeDiscarded Outcome = 2
	OutcomeUnhandled Outcome = 3
	OutcomeStale     Outcome = 4
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeHandled:
		return "HANDLED"
	case OutcomeDeferred:
		return "DEFERRED"
	case OutcomeDiscarded:
		return "DISCARDED"
	case OutcomeUnhandled:
		return "UNHANDLED"
	case OutcomeStale:
		return "STALE"
	default:
		return "UNKNOWN"
	}
}

// DispatchEvent records one event processed by the dispatch loop.
type DispatchEvent struct {
	// What is the event name.
	What string `cbor:"1,keyasint"`

	// Outcome of processing.
	Outcome Outcome `cbor:"2,keyasint"`

	// Detail is a short human-readable rendering of the event arguments.
	Detail string `cbor:"3,keyasint,omitempty"`

	// ProcessingTime from dequeue to completion, in nanoseconds.
	ProcessingTime *time.Duration `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what changed state.
type StateEntity uint8

const (
	// StateEntityMachine is the client-mode state machine.
	StateEntityMachine StateEntity = 0
	// StateEntitySupplicant is the supplicant association state.
	StateEntitySupplicant StateEntity = 1
	// StateEntityMode is the operational mode.
	StateEntityMode StateEntity = 2
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityMachine:
		return "MACHINE"
	case StateEntitySupplicant:
		return "SUPPLICANT"
	case StateEntityMode:
		return "MODE"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures a state change.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// AttemptPhase distinguishes attempt start from end.
type AttemptPhase uint8

const (
	AttemptStarted AttemptPhase = 0
	AttemptEnded   AttemptPhase = 1
)

// String returns the phase name.
func (p AttemptPhase) String() string {
	switch p {
	case AttemptStarted:
		return "STARTED"
	case AttemptEnded:
		return "ENDED"
	default:
		return "UNKNOWN"
	}
}

// AttemptEvent captures a connection attempt boundary.
type AttemptEvent struct {
	Phase    AttemptPhase `cbor:"1,keyasint"`
	SSID     string       `cbor:"2,keyasint,omitempty"`
	RoamType string       `cbor:"3,keyasint,omitempty"`

	// Code is the failure code name (end only).
	Code string `cbor:"4,keyasint,omitempty"`

	// Duration of the attempt (end only).
	Duration *time.Duration `cbor:"5,keyasint,omitempty"`
}

// CommandEvent captures a command issued to a collaborator.
type CommandEvent struct {
	Name   string `cbor:"1,keyasint"`
	Detail string `cbor:"2,keyasint,omitempty"`

	// Err is the error returned by the collaborator, if any.
	Err string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the error code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`

	// Defect marks programming or invariant violations.
	Defect bool `cbor:"5,keyasint,omitempty"`
}
