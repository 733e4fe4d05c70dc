// Package clientmode is the connection lifecycle of one client-mode
// wireless interface.
//
// A Machine serializes driver callbacks, IP provisioning results, user and
// policy requests and guard timers through a single mailbox into a
// hierarchical state machine:
//
//	Default
//	└─ ConnectMode
//	   ├─ L2Connected
//	   │  ├─ ObtainingIp
//	   │  ├─ Connected
//	   │  └─ Roaming
//	   ├─ Disconnecting
//	   └─ Disconnected
//
// The radio, IP client, selection policy, profile store and the other
// collaborators are supplied as interfaces through Collaborators. Run
// consumes the mailbox on its own goroutine; tests call Drain instead.
package clientmode
