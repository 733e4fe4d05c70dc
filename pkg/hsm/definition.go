package hsm

import (
	"errors"
	"fmt"
)

// Definition errors.
var (
	ErrDuplicateState = errors.New("duplicate state")
	ErrUnknownParent  = errors.New("unknown parent state")
	ErrUnknownState   = errors.New("unknown state")
	ErrCycle          = errors.New("state parent cycle")
	ErrEmpty          = errors.New("definition has no states")
)

// StateID is the constraint for state identifiers.
type StateID interface {
	comparable
	String() string
}

// Result tells the dispatcher whether a handler consumed an event.
type Result bool

const (
	// Handled stops the walk up the parent chain.
	Handled Result = true

	// NotHandled passes the event to the parent state.
	NotHandled Result = false
)

// Actions are the behaviours attached to a state. Any of them may be nil;
// a nil Handle behaves as if it returned NotHandled.
type Actions[E any] struct {
	Enter  func()
	Exit   func()
	Handle func(E) Result
}

type node[S StateID, E any] struct {
	id        S
	parent    S
	hasParent bool
	actions   Actions[E]
}

type childLink[S StateID] struct {
	id, parent S
}

// Definition is the static state table. Build one with NewDefinition, State
// and Child, then pass it to New.
type Definition[S StateID, E any] struct {
	nodes    map[S]*node[S, E]
	order    []S
	children []childLink[S]
	err      error
}

// NewDefinition returns an empty definition.
func NewDefinition[S StateID, E any]() *Definition[S, E] {
	return &Definition[S, E]{nodes: make(map[S]*node[S, E])}
}

// State adds a root state.
func (d *Definition[S, E]) State(id S, actions Actions[E]) *Definition[S, E] {
	d.add(&node[S, E]{id: id, actions: actions})
	return d
}

// Child adds a state nested inside parent. The parent may be added later.
func (d *Definition[S, E]) Child(id, parent S, actions Actions[E]) *Definition[S, E] {
	d.add(&node[S, E]{id: id, parent: parent, hasParent: true, actions: actions})
	d.children = append(d.children, childLink[S]{id: id, parent: parent})
	return d
}

func (d *Definition[S, E]) add(n *node[S, E]) {
	if d.err != nil {
		return
	}
	if _, ok := d.nodes[n.id]; ok {
		d.err = fmt.Errorf("%w: %s", ErrDuplicateState, n.id)
		return
	}
	d.nodes[n.id] = n
	d.order = append(d.order, n.id)
}

// Validate checks that every parent exists and the parent table is acyclic.
func (d *Definition[S, E]) Validate() error {
	if d.err != nil {
		return d.err
	}
	if len(d.nodes) == 0 {
		return ErrEmpty
	}
	for _, c := range d.children {
		if _, ok := d.nodes[c.parent]; !ok {
			return fmt.Errorf("%w: %s (parent of %s)", ErrUnknownParent, c.parent, c.id)
		}
	}
	for _, id := range d.order {
		seen := map[S]bool{}
		for n := d.nodes[id]; n != nil; n = d.parentOf(n) {
			if seen[n.id] {
				return fmt.Errorf("%w: through %s", ErrCycle, n.id)
			}
			seen[n.id] = true
		}
	}
	return nil
}

// Parent returns the parent of id and whether it has one.
func (d *Definition[S, E]) Parent(id S) (S, bool) {
	n, ok := d.nodes[id]
	if !ok || !n.hasParent {
		var zero S
		return zero, false
	}
	return n.parent, true
}

func (d *Definition[S, E]) parentOf(n *node[S, E]) *node[S, E] {
	if !n.hasParent {
		return nil
	}
	return d.nodes[n.parent]
}

// chain returns id and its ancestors, leaf first.
func (d *Definition[S, E]) chain(id S) []*node[S, E] {
	var out []*node[S, E]
	for n := d.nodes[id]; n != nil; n = d.parentOf(n) {
		out = append(out, n)
	}
	return out
}
