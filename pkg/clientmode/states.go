package clientmode

import "github.com/stactl/stactl-go/pkg/hsm"

// StateID names a state of the client-mode machine.
type StateID uint8

const (
	StateDefault StateID = iota
	StateConnectMode
	StateL2Connected
	StateObtainingIP
	StateConnected
	StateRoaming
	StateDisconnecting
	StateDisconnected
)

// String returns the state name.
func (s StateID) String() string {
	switch s {
	case StateDefault:
		return "Default"
	case StateConnectMode:
		return "ConnectMode"
	case StateL2Connected:
		return "L2Connected"
	case StateObtainingIP:
		return "ObtainingIp"
	case StateConnected:
		return "Connected"
	case StateRoaming:
		return "Roaming"
	case StateDisconnecting:
		return "Disconnecting"
	case StateDisconnected:
		return "Disconnected"
	default:
		return "Unknown"
	}
}

// definition builds the state graph:
//
//	Default
//	└─ ConnectMode
//	   ├─ L2Connected
//	   │  ├─ ObtainingIp
//	   │  ├─ Connected
//	   │  └─ Roaming
//	   ├─ Disconnecting
//	   └─ Disconnected
func (m *Machine) definition() *hsm.Definition[StateID, Event] {
	return hsm.NewDefinition[StateID, Event]().
		State(StateDefault, hsm.Actions[Event]{
			Handle: m.defaultHandle,
		}).
		Child(StateConnectMode, StateDefault, hsm.Actions[Event]{
			Enter:  m.connectModeEnter,
			Exit:   m.connectModeExit,
			Handle: m.connectModeHandle,
		}).
		Child(StateL2Connected, StateConnectMode, hsm.Actions[Event]{
			Enter:  m.l2ConnectedEnter,
			Exit:   m.l2ConnectedExit,
			Handle: m.l2ConnectedHandle,
		}).
		Child(StateObtainingIP, StateL2Connected, hsm.Actions[Event]{
			Enter:  m.obtainingIPEnter,
			Handle: m.obtainingIPHandle,
		}).
		Child(StateConnected, StateL2Connected, hsm.Actions[Event]{
			Enter:  m.connectedEnter,
			Exit:   m.connectedExit,
			Handle: m.connectedHandle,
		}).
		Child(StateRoaming, StateL2Connected, hsm.Actions[Event]{
			Enter:  m.roamingEnter,
			Exit:   m.roamingExit,
			Handle: m.roamingHandle,
		}).
		Child(StateDisconnecting, StateConnectMode, hsm.Actions[Event]{
			Enter:  m.disconnectingEnter,
			Exit:   m.disconnectingExit,
			Handle: m.disconnectingHandle,
		}).
		Child(StateDisconnected, StateConnectMode, hsm.Actions[Event]{
			Enter:  m.disconnectedEnter,
			Exit:   m.disconnectedExit,
			Handle: m.disconnectedHandle,
		})
}
