package hsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sid uint8

const (
	sRoot sid = iota
	sA
	sA1
	sA2
	sB
)

func (s sid) String() string {
	return [...]string{"Root", "A", "A1", "A2", "B"}[s]
}

type ev string

// harness records entry/exit order and lets each test plug in handlers.
type harness struct {
	log      []string
	handlers map[sid]func(ev) Result
	onEnter  map[sid]func()
	m        *Machine[sid, ev]
	requeued []ev
}

func newHarness(t *testing.T, initial sid) *harness {
	t.Helper()
	h := &harness{handlers: map[sid]func(ev) Result{}, onEnter: map[sid]func(){}}
	actions := func(s sid) Actions[ev] {
		return Actions[ev]{
			Enter: func() {
				h.log = append(h.log, "enter "+s.String())
				if fn := h.onEnter[s]; fn != nil {
					fn()
				}
			},
			Exit: func() { h.log = append(h.log, "exit "+s.String()) },
			Handle: func(e ev) Result {
				if fn := h.handlers[s]; fn != nil {
					return fn(e)
				}
				return NotHandled
			},
		}
	}
	def := NewDefinition[sid, ev]().
		State(sRoot, actions(sRoot)).
		Child(sA, sRoot, actions(sA)).
		Child(sA1, sA, actions(sA1)).
		Child(sA2, sA, actions(sA2)).
		Child(sB, sRoot, actions(sB))

	m, err := New(def, initial, Options[sid, ev]{
		Requeue: func(d []ev) { h.requeued = append(h.requeued, d...) },
	})
	require.NoError(t, err)
	h.m = m
	return h
}

func TestStartEntersRootFirst(t *testing.T) {
	h := newHarness(t, sA1)
	h.m.Start()

	assert.Equal(t, []string{"enter Root", "enter A", "enter A1"}, h.log)
	assert.Equal(t, []sid{sRoot, sA, sA1}, h.m.Path())
	assert.True(t, h.m.IsIn(sA))
	assert.False(t, h.m.IsIn(sB))
}

func TestUnhandledWalksParentChain(t *testing.T) {
	h := newHarness(t, sA1)
	var seenBy []sid
	for _, s := range []sid{sA1, sA, sRoot} {
		s := s
		h.handlers[s] = func(e ev) Result {
			seenBy = append(seenBy, s)
			return Result(s == sRoot)
		}
	}
	h.m.Start()

	assert.True(t, h.m.Dispatch("x"))
	assert.Equal(t, []sid{sA1, sA, sRoot}, seenBy)
}

func TestOnUnhandledHook(t *testing.T) {
	def := NewDefinition[sid, ev]().State(sRoot, Actions[ev]{})
	var got ev
	m, err := New(def, sRoot, Options[sid, ev]{
		OnUnhandled: func(s sid, e ev) { got = e },
	})
	require.NoError(t, err)
	m.Start()

	assert.False(t, m.Dispatch("lost"))
	assert.Equal(t, ev("lost"), got)
}

func TestTransitionExitsToCommonAncestor(t *testing.T) {
	h := newHarness(t, sA1)
	h.handlers[sA1] = func(e ev) Result {
		h.m.TransitionTo(sA2)
		return Handled
	}
	h.m.Start()
	h.log = nil

	h.m.Dispatch("go")

	assert.Equal(t, []string{"exit A1", "enter A2"}, h.log)
	assert.Equal(t, sA2, h.m.Current())
}

func TestTransitionAcrossSubtrees(t *testing.T) {
	h := newHarness(t, sA1)
	h.handlers[sA] = func(e ev) Result {
		h.m.TransitionTo(sB)
		return Handled
	}
	h.m.Start()
	h.log = nil

	h.m.Dispatch("go")

	assert.Equal(t, []string{"exit A1", "exit A", "enter B"}, h.log)
}

func TestTransitionToAncestor(t *testing.T) {
	h := newHarness(t, sA1)
	h.handlers[sA1] = func(e ev) Result {
		h.m.TransitionTo(sA)
		return Handled
	}
	h.m.Start()
	h.log = nil

	h.m.Dispatch("up")

	assert.Equal(t, []string{"exit A1"}, h.log)
	assert.Equal(t, sA, h.m.Current())
}

func TestSelfTransitionIsQuiet(t *testing.T) {
	h := newHarness(t, sA1)
	h.handlers[sA1] = func(e ev) Result {
		h.m.TransitionTo(sA1)
		return Handled
	}
	h.m.Start()
	h.log = nil

	h.m.Dispatch("self")
	assert.Empty(t, h.log)
}

func TestTransitionFromEnterIsChained(t *testing.T) {
	h := newHarness(t, sA1)
	def := h.m.def
	def.nodes[sA2].actions.Enter = func() {
		h.log = append(h.log, "enter A2")
		h.m.TransitionTo(sB)
	}
	h.handlers[sA1] = func(e ev) Result {
		h.m.TransitionTo(sA2)
		return Handled
	}
	h.m.Start()
	h.log = nil

	h.m.Dispatch("go")

	assert.Equal(t, []string{"exit A1", "enter A2", "exit A2", "exit A", "enter B"}, h.log)
	assert.Equal(t, sB, h.m.Current())
}

func TestDeferredReleasedAfterTransition(t *testing.T) {
	h := newHarness(t, sA1)
	h.handlers[sA1] = func(e ev) Result {
		switch e {
		case "later1", "later2":
			h.m.Defer(e)
		case "go":
			h.m.TransitionTo(sA2)
		}
		return Handled
	}
	h.m.Start()

	h.m.Dispatch("later1")
	h.m.Dispatch("later2")
	assert.Empty(t, h.requeued, "nothing released without a transition")

	h.m.Dispatch("go")
	assert.Equal(t, []ev{"later1", "later2"}, h.requeued)
}

func TestStopExitsLeafFirst(t *testing.T) {
	h := newHarness(t, sA1)
	h.m.Start()
	h.log = nil

	h.m.Stop()
	assert.Equal(t, []string{"exit A1", "exit A", "exit Root"}, h.log)
}

func TestDefinitionValidation(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		def := NewDefinition[sid, ev]().State(sRoot, Actions[ev]{}).State(sRoot, Actions[ev]{})
		_, err := New(def, sRoot, Options[sid, ev]{})
		assert.ErrorIs(t, err, ErrDuplicateState)
	})

	t.Run("unknown parent", func(t *testing.T) {
		def := NewDefinition[sid, ev]().Child(sA, sRoot, Actions[ev]{})
		_, err := New(def, sA, Options[sid, ev]{})
		assert.ErrorIs(t, err, ErrUnknownParent)
	})

	t.Run("cycle", func(t *testing.T) {
		def := NewDefinition[sid, ev]().Child(sA, sB, Actions[ev]{}).Child(sB, sA, Actions[ev]{})
		_, err := New(def, sA, Options[sid, ev]{})
		assert.ErrorIs(t, err, ErrCycle)
	})

	t.Run("unknown initial", func(t *testing.T) {
		def := NewDefinition[sid, ev]().State(sRoot, Actions[ev]{})
		_, err := New(def, sB, Options[sid, ev]{})
		assert.ErrorIs(t, err, ErrUnknownState)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := New(NewDefinition[sid, ev](), sRoot, Options[sid, ev]{})
		assert.ErrorIs(t, err, ErrEmpty)
	})
}

// dispatchRecovered dispatches e and swallows a panic the way the
// client-mode loop does.
func dispatchRecovered(m *Machine[sid, ev], e ev) (panicked bool) {
	defer func() {
		if recover() != nil {
			panicked = true
		}
	}()
	m.Dispatch(e)
	return false
}

func TestPanickingHandlerLeavesNoPendingWork(t *testing.T) {
	h := newHarness(t, sA1)
	h.m.Start()
	h.handlers[sA1] = func(e ev) Result {
		if e != "boom" {
			return NotHandled
		}
		h.m.Defer("held")
		h.m.TransitionTo(sB)
		panic("handler failed")
	}

	require.True(t, dispatchRecovered(h.m, "boom"))
	assert.Equal(t, sA1, h.m.Current())

	h.log = nil
	assert.False(t, h.m.Dispatch("unrelated"))
	assert.Equal(t, sA1, h.m.Current(), "the aborted transition must not run later")
	assert.Empty(t, h.log)
	assert.Empty(t, h.requeued)
}

func TestPanickingEntryStopsAtReachedState(t *testing.T) {
	h := newHarness(t, sB)
	h.m.Start()
	h.handlers[sB] = func(e ev) Result {
		h.m.TransitionTo(sA1)
		return Handled
	}
	h.onEnter[sA] = func() { panic("entry failed") }

	h.log = nil
	require.True(t, dispatchRecovered(h.m, "go"))
	assert.Equal(t, []string{"exit B", "enter A"}, h.log)
	assert.Equal(t, sA, h.m.Current(), "A1 was never entered")

	// Nothing left over: a later unrelated event is a no-op.
	delete(h.onEnter, sA)
	h.log = nil
	h.m.Dispatch("unrelated")
	assert.Equal(t, sA, h.m.Current())
	assert.Empty(t, h.log)
}
