package log

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter specifies criteria for filtering trace events.
// Empty/nil fields match all events for that criterion.
type Filter struct {
	// Interface filters by exact interface name.
	Interface string

	// AttemptID filters by exact attempt ID.
	AttemptID string

	// State filters by the active leaf state name.
	State string

	// NetworkID filters by network profile.
	NetworkID *int

	Direction *Direction
	Layer     *Layer
	Category  *Category

	// DefectsOnly keeps only error events flagged as defects.
	DefectsOnly bool

	// TimeStart filters events at or after this time.
	TimeStart *time.Time

	// TimeEnd filters events before this time.
	TimeEnd *time.Time
}

// Matches reports whether the event matches all filter criteria.
func (f *Filter) Matches(event Event) bool {
	if f.Interface != "" && event.Interface != f.Interface {
		return false
	}
	if f.AttemptID != "" && event.AttemptID != f.AttemptID {
		return false
	}
	if f.State != "" && event.State != f.State {
		return false
	}
	if f.NetworkID != nil && (event.NetworkID == nil || *event.NetworkID != *f.NetworkID) {
		return false
	}
	if f.Direction != nil && event.Direction != *f.Direction {
		return false
	}
	if f.Layer != nil && event.Layer != *f.Layer {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	if f.DefectsOnly && (event.Error == nil || !event.Error.Defect) {
		return false
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	return true
}

// Reader streams trace events from a CBOR-encoded file.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
	filter  Filter
}

// NewReader creates a Reader that reads all events from the specified file.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader creates a Reader that reads events matching the filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:    f,
		decoder: NewDecoder(f),
		filter:  filter,
	}, nil
}

// Next returns the next event that matches the filter.
// Returns io.EOF when no more events are available, and an error wrapping
// ErrTruncated when the file ends inside an event.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, decodeErr(err)
		}
		if r.filter.Matches(event) {
			return event, nil
		}
	}
}

// ReadAll drains the reader. On error the events read so far are returned
// with it.
func (r *Reader) ReadAll() ([]Event, error) {
	var out []Event
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, ev)
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
