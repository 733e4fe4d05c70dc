package sim_test

import (
	"sync"

	"github.com/stactl/stactl-go/pkg/clientmode"
)

type recorder struct {
	mu  sync.Mutex
	evs []clientmode.Event
}

func (r *recorder) Post(ev clientmode.Event) error {
	r.mu.Lock()
	r.evs = append(r.evs, ev)
	r.mu.Unlock()
	return nil
}

func (r *recorder) whats() []clientmode.What {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]clientmode.What, len(r.evs))
	for i, ev := range r.evs {
		out[i] = ev.What()
	}
	return out
}

func (r *recorder) events() []clientmode.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]clientmode.Event(nil), r.evs...)
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.evs = nil
	r.mu.Unlock()
}

type connectCall struct {
	networkID int
	bssid     string
}

type fakeConnector struct {
	mu    sync.Mutex
	calls []connectCall
}

func (f *fakeConnector) Connect(networkID int, bssid string) error {
	f.mu.Lock()
	f.calls = append(f.calls, connectCall{networkID, bssid})
	f.mu.Unlock()
	return nil
}
