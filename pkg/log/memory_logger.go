package log

import "sync"

// MemoryLogger keeps events in memory. Used by tests and by the console's
// "trace" command.
type MemoryLogger struct {
	mu     sync.Mutex
	events []Event
	limit  int
}

// NewMemoryLogger keeps at most limit events, dropping the oldest. A limit
// of zero keeps everything.
func NewMemoryLogger(limit int) *MemoryLogger {
	return &MemoryLogger{limit: limit}
}

// Log stores the event.
func (m *MemoryLogger) Log(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	if m.limit > 0 && len(m.events) > m.limit {
		m.events = append(m.events[:0:0], m.events[len(m.events)-m.limit:]...)
	}
}

// Events returns a copy of the stored events that match f.
func (m *MemoryLogger) Events(f Filter) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Event
	for _, ev := range m.events {
		if f.Matches(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// Compile-time interface satisfaction check.
var _ Logger = (*MemoryLogger)(nil)
