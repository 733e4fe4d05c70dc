package clientmode

import "sync"

// RequestKind distinguishes the reference-counted requests that gate the
// selection policy.
type RequestKind uint8

const (
	// RequestConnection keeps auto-join enabled while held.
	RequestConnection RequestKind = iota
	// RequestUntrusted allows untrusted networks while held.
	RequestUntrusted

	numRequestKinds
)

// String returns the kind name.
func (k RequestKind) String() string {
	switch k {
	case RequestConnection:
		return "CONNECTION"
	case RequestUntrusted:
		return "UNTRUSTED"
	default:
		return "UNKNOWN"
	}
}

// Requests counts outstanding request handles. It is safe for concurrent
// use; activity changes are reported through onChange, outside the lock.
type Requests struct {
	mu       sync.Mutex
	counts   [numRequestKinds]int
	onChange func(kind RequestKind, active bool)
}

func newRequests(onChange func(RequestKind, bool)) *Requests {
	return &Requests{onChange: onChange}
}

// Acquire takes a handle of the given kind.
func (r *Requests) Acquire(kind RequestKind) *Handle {
	r.mu.Lock()
	r.counts[kind]++
	first := r.counts[kind] == 1
	r.mu.Unlock()
	if first && r.onChange != nil {
		r.onChange(kind, true)
	}
	return &Handle{r: r, kind: kind}
}

// Active reports whether at least one handle of kind is held.
func (r *Requests) Active(kind RequestKind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[kind] > 0
}

func (r *Requests) release(kind RequestKind) {
	r.mu.Lock()
	r.counts[kind]--
	last := r.counts[kind] == 0
	r.mu.Unlock()
	if last && r.onChange != nil {
		r.onChange(kind, false)
	}
}

// Handle is one outstanding request.
type Handle struct {
	r    *Requests
	kind RequestKind
	once sync.Once
}

// Kind returns the handle's kind.
func (h *Handle) Kind() RequestKind { return h.kind }

// Release gives the handle back. Releasing twice is a no-op.
func (h *Handle) Release() {
	h.once.Do(func() { h.r.release(h.kind) })
}
