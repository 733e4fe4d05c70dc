// Package sim is an in-process model of the world around a client-mode
// machine: access points on the air, a supplicant and driver, a DHCP
// client, a selection policy, a profile store and the connectivity stack.
//
// Every collaborator reports back to the machine by posting events through
// a Relay, exactly as a real driver or IP client would. Nothing in this
// package calls into the machine synchronously, so it can be driven from
// Drain in tests or from Run in the CLI.
package sim
