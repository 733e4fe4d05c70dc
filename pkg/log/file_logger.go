package log

import (
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger appends the trace to a capture file as a stream of CBOR items,
// readable later with Reader or stactl-log.
type FileLogger struct {
	file    *os.File
	encoder *cbor.Encoder
	mu      sync.Mutex
	closed  bool
	dropped uint64
}

// NewFileLogger opens the capture at path. An existing capture is extended,
// so one file can span several runs.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{
		file:    f,
		encoder: NewEncoder(f),
	}, nil
}

// Log encodes event under the file lock.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	// Counted, not returned: the dispatch loop has nobody to hand it to.
	if err := l.encoder.Encode(event); err != nil {
		l.dropped++
	}
}

// Dropped counts events lost to encode or write errors.
func (l *FileLogger) Dropped() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

// Close releases the file. Later Log calls are no-ops and a second Close
// returns nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}

	l.closed = true
	return l.file.Close()
}

var _ Logger = (*FileLogger)(nil)
