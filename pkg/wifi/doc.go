// Package wifi holds the vocabulary shared by the client-mode packages:
// supplicant states, IEEE 802.11 reason codes, network configuration as seen
// by the state machine, and the live link identity record.
//
// # Link Identity
//
// Info is the single long-lived record of what the interface is attached to.
// The state machine mutates one instance in place; external readers only
// ever receive copies made with Snapshot.
package wifi
