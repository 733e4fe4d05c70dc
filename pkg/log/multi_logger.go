package log

// MultiLogger tees the trace. cmd/stactl pairs the slog view with the CBOR
// capture file.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger drops nil entries so optional sinks can be passed as is.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// Log hands event to each sink in order.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

var _ Logger = (*MultiLogger)(nil)
