// Package persistence saves network selection status across restarts.
//
// Saved network profiles come from the config file; what changes at run
// time (disable reasons, failure counters, whether a network ever
// connected, the user's last choice) is kept in a separate JSON state file.
package persistence
