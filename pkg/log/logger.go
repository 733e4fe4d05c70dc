package log

// Logger is the sink for the machine's dispatch trace: one Event per
// dispatched message, state change, outbound call and defect. A nil Logger
// turns tracing off.
type Logger interface {
	// Log is called from the dispatch goroutine while an event is being
	// handled, so it must return promptly and tolerate concurrent callers.
	Log(event Event)
}

// NoopLogger drops the trace. The zero value is ready to use.
type NoopLogger struct{}

func (NoopLogger) Log(Event) {}

var _ Logger = NoopLogger{}
