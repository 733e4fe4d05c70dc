// Package linkquality tracks the signal quality of the associated link.
//
// It covers three concerns:
//
//   - Monitor turns RSSI poll results and hardware threshold breaches into
//     updates of the live link identity, and reports when the coarse signal
//     level changes so consumers are not flooded on every 1 dBm wobble.
//   - ThresholdSet is the sentinel-bounded, ascending list of RSSI
//     boundaries that hardware offload is armed with, one bracket at a time.
//   - SuspendArbiter combines the independent reasons to keep driver
//     suspend optimizations off.
//
// Scheduling of software polls is left to the caller; see the RSSIPoll
// purpose of package watchdog.
package linkquality
