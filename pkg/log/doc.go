// Package log provides the machine-readable event trace of the client-mode
// state machine.
//
// The trace is separate from operational logging (slog). It records every
// dispatched event and how it was handled, every state transition, every
// connection attempt and every defect, so a session can be replayed and
// analysed offline with stactl-log.
//
// # Basic Usage
//
//	// For development: trace to console via slog
//	cfg.Trace = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.Trace, _ = log.NewFileLogger("/var/log/stactl/wlan0.stlog")
//
//	// Both: use MultiLogger
//	cfg.Trace = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Each Event carries exactly one payload:
//   - DispatchEvent: an event offered to the state machine and its outcome
//   - StateChangeEvent: a state machine or supplicant state change
//   - AttemptEvent: start or end of a connection attempt
//   - CommandEvent: a command issued to a collaborator
//   - ErrorEventData: a failure or a defect
//
// # File Format
//
// Trace files are a stream of CBOR-encoded events with integer keys and the
// .stlog extension.
package log
