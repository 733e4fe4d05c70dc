// Package failure classifies connection failures and drives the recovery
// side effects that follow from them: BSSID blocklisting, profile failure
// counters, the one-shot wrong-password notification, diagnostic bug
// reports and escalation to the self-recovery collaborator.
//
// The Classifier does not change connection state itself. It returns a
// decision that the state machine turns into a transition.
package failure
