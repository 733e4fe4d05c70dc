// Package hsm is a small hierarchical state machine engine.
//
// States are identified by a comparable enum and arranged in a tree through
// an explicit parent table. Each state may have an entry action, an exit
// action and an event handler. Dispatch offers an event to the current leaf
// state; a handler that returns NotHandled passes the event to its parent,
// and so on up to the root.
//
// # Transitions
//
// Handlers and entry actions request a transition with TransitionTo. The
// transition runs after the handler (or entry action) returns: states are
// exited from the current leaf up to, but not including, the lowest common
// ancestor of source and destination, then entered from below that ancestor
// down to the destination. A transition to the current state does nothing
// beyond releasing deferred events.
//
// # Deferral
//
// A handler may Defer the event it is processing. Deferred events are handed
// back, in deferral order, through Options.Requeue once the next transition
// completes, so they are seen by the new state before anything queued later.
//
// # Example
//
//	def := hsm.NewDefinition[StateID, Event]().
//	    State(StateIdle, hsm.Actions[Event]{Handle: idle}).
//	    Child(StateBusy, StateIdle, hsm.Actions[Event]{Enter: startWork, Handle: busy})
//
//	m, err := hsm.New(def, StateIdle, hsm.Options[StateID, Event]{})
//	m.Start()
//	m.Dispatch(ev)
package hsm
