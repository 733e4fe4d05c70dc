package sim

import (
	"errors"
	"sync"

	"github.com/stactl/stactl-go/pkg/clientmode"
)

// ErrDetached is returned by Relay.Post before a sink is attached.
var ErrDetached = errors.New("sim: no machine attached")

// Sink accepts events for a machine. *clientmode.Machine implements it.
type Sink interface {
	Post(ev clientmode.Event) error
}

// Relay forwards events to the attached sink. Collaborators are built
// before the machine exists, so they hold the relay and the machine is
// attached afterwards.
type Relay struct {
	mu   sync.RWMutex
	sink Sink
}

// Attach sets the destination of posted events.
func (r *Relay) Attach(s Sink) {
	r.mu.Lock()
	r.sink = s
	r.mu.Unlock()
}

// Post forwards ev.
func (r *Relay) Post(ev clientmode.Event) error {
	r.mu.RLock()
	s := r.sink
	r.mu.RUnlock()
	if s == nil {
		return ErrDetached
	}
	return s.Post(ev)
}
