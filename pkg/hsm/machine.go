package hsm

import (
	"fmt"
	"log/slog"
)

// maxChainedTransitions bounds transitions requested from entry actions
// during one dispatch.
const maxChainedTransitions = 32

// Options configures a Machine.
type Options[S StateID, E any] struct {
	// OnTransition is called after each completed transition.
	OnTransition func(from, to S)

	// OnUnhandled is called when no state in the chain handles an event.
	OnUnhandled func(state S, ev E)

	// Requeue receives deferred events after a transition. Without it
	// deferred events are dropped.
	Requeue func(deferred []E)

	// Logger for engine diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Machine runs a Definition. It is not safe for concurrent use; the owner
// serializes all calls, typically from a single dispatch goroutine.
type Machine[S StateID, E any] struct {
	def  *Definition[S, E]
	opts Options[S, E]

	current S
	started bool

	dest    S
	hasDest bool

	deferred []E
}

// New validates def and returns a machine that will start in initial.
func New[S StateID, E any](def *Definition[S, E], initial S, opts Options[S, E]) (*Machine[S, E], error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if _, ok := def.nodes[initial]; !ok {
		return nil, fmt.Errorf("%w: initial %s", ErrUnknownState, initial)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Machine[S, E]{def: def, opts: opts, current: initial}, nil
}

// Start enters the initial state and its ancestors, root first.
func (m *Machine[S, E]) Start() {
	if m.started {
		return
	}
	m.started = true
	chain := m.def.chain(m.current)
	for i := len(chain) - 1; i >= 0; i-- {
		if enter := chain[i].actions.Enter; enter != nil {
			enter()
		}
	}
	m.performTransitions()
}

// Stop exits every active state, leaf first. The machine can be started
// again afterwards.
func (m *Machine[S, E]) Stop() {
	if !m.started {
		return
	}
	for _, n := range m.def.chain(m.current) {
		if exit := n.actions.Exit; exit != nil {
			exit()
		}
	}
	m.started = false
	m.hasDest = false
	m.deferred = nil
}

// Dispatch offers ev to the current state and then its ancestors until one
// handles it, and performs any transition requested along the way. It
// reports whether some state handled the event.
//
// If a handler or a state action panics, the pending transition and any
// events deferred during this dispatch are dropped before the panic
// continues, so a caller that recovers sees no leftover work.
func (m *Machine[S, E]) Dispatch(ev E) bool {
	done := false
	defer func() {
		if !done {
			m.hasDest = false
			m.deferred = nil
		}
	}()

	handled := false
	for _, n := range m.def.chain(m.current) {
		if h := n.actions.Handle; h != nil && h(ev) == Handled {
			handled = true
			break
		}
	}
	if !handled && m.opts.OnUnhandled != nil {
		m.opts.OnUnhandled(m.current, ev)
	}
	m.performTransitions()
	done = true
	return handled
}

// TransitionTo requests a transition to dest once the current handler or
// entry action returns. A later request replaces an earlier one.
func (m *Machine[S, E]) TransitionTo(dest S) {
	if _, ok := m.def.nodes[dest]; !ok {
		m.opts.Logger.Error("hsm: transition to unknown state", "state", dest.String())
		return
	}
	m.dest = dest
	m.hasDest = true
}

// Defer holds ev until the next transition.
func (m *Machine[S, E]) Defer(ev E) {
	m.deferred = append(m.deferred, ev)
}

// Current returns the active leaf state.
func (m *Machine[S, E]) Current() S {
	return m.current
}

// IsIn reports whether s is the active leaf or one of its ancestors.
func (m *Machine[S, E]) IsIn(s S) bool {
	for _, n := range m.def.chain(m.current) {
		if n.id == s {
			return true
		}
	}
	return false
}

// Path returns the active states, root first.
func (m *Machine[S, E]) Path() []S {
	chain := m.def.chain(m.current)
	out := make([]S, len(chain))
	for i, n := range chain {
		out[len(chain)-1-i] = n.id
	}
	return out
}

func (m *Machine[S, E]) performTransitions() {
	for i := 0; m.hasDest; i++ {
		if i == maxChainedTransitions {
			m.opts.Logger.Error("hsm: transition loop aborted", "state", m.current.String())
			m.hasDest = false
			return
		}
		dest := m.dest
		m.hasDest = false
		m.switchTo(dest)
	}
}

// switchTo moves from the current leaf to dest. A state counts as exited
// once its exit action starts and as entered once its entry action starts;
// if an action panics, current is left at the last state reached.
func (m *Machine[S, E]) switchTo(dest S) {
	from := m.current
	if dest != from {
		srcChain := m.def.chain(from)
		dstChain := m.def.chain(dest)

		reached, done := from, false
		defer func() {
			if !done {
				m.current = reached
			}
		}()

		inDst := make(map[S]bool, len(dstChain))
		for _, n := range dstChain {
			inDst[n.id] = true
		}

		for i, n := range srcChain {
			if inDst[n.id] {
				break
			}
			if i+1 < len(srcChain) {
				reached = srcChain[i+1].id
			}
			if exit := n.actions.Exit; exit != nil {
				exit()
			}
		}

		inSrc := make(map[S]bool, len(srcChain))
		for _, n := range srcChain {
			inSrc[n.id] = true
		}
		var enter []*node[S, E]
		for _, n := range dstChain {
			if inSrc[n.id] {
				break
			}
			enter = append(enter, n)
		}

		m.current = dest
		for i := len(enter) - 1; i >= 0; i-- {
			reached = enter[i].id
			if fn := enter[i].actions.Enter; fn != nil {
				fn()
			}
		}
		done = true
	}

	if len(m.deferred) > 0 {
		deferred := m.deferred
		m.deferred = nil
		if m.opts.Requeue != nil {
			m.opts.Requeue(deferred)
		}
	}

	if m.opts.OnTransition != nil {
		m.opts.OnTransition(from, dest)
	}
}
