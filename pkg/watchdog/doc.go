// Package watchdog schedules guard timers tagged with generation tokens.
//
// Every purpose (roam guard, disconnecting guard, RSSI poll, ...) owns a
// monotonically increasing counter. Arming a timer mints a new token and the
// timer delivers that token when it fires. The receiver asks the registry
// whether the token is still live before acting on it, so a timer that
// fires after its state was left, or after it was superseded, is harmless.
//
// Cancellation is best-effort. Correctness never depends on Stop winning a
// race with the fire callback; it depends only on the token comparison.
//
// # Usage
//
//	reg := watchdog.NewRegistry(watchdog.RealScheduler{}, func(tok watchdog.Token) {
//	    mailbox.Post(WatchdogFired{Token: tok})
//	})
//
//	tok := reg.Arm(watchdog.PurposeRoam, 15*time.Second)
//	...
//	// on the consumer goroutine
//	if reg.IsLive(ev.Token) {
//	    // roam timed out
//	}
package watchdog
