package fsm

import (
	"strconv"

	"github.com/matzehuels/statecraft/pkg/errors"
)

// Cursor executes input symbols against a machine, tracking the current
// state and acceptance status. It reads the machine but never mutates it, so
// several cursors may run over one machine concurrently as long as nothing
// mutates the machine underneath them.
type Cursor struct {
	m      *Machine
	state  int
	accept bool
}

// Cursor returns a cursor positioned at the start state.
// Returns an invalid-definition error if pruning has removed the start state.
func (m *Machine) Cursor() (*Cursor, error) {
	start := m.StartState()
	if start == -1 {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "machine has no start state")
	}
	return &Cursor{m: m, state: start, accept: m.states[start].Accept}, nil
}

// Feed consumes the symbols in order, advancing the current state after each
// one. Pass a prepared sequence with Feed(seq...). The cursor supports both
// one-shot and incremental feeding; acceptance is inspectable after any
// prefix.
//
// A symbol with no entry on the current state, or an entry with multiple
// targets (the engine does not resolve nondeterminism), yields an
// invalid-transition error. Symbols consumed before the failing one remain
// applied.
func (c *Cursor) Feed(symbols ...Symbol) error {
	for _, sym := range symbols {
		t, ok := c.m.Target(c.state, sym)
		if !ok {
			return errors.New(errors.ErrCodeInvalidTransition,
				"state %s has no transition on %q", Label(c.state), sym)
		}
		if !t.IsSingle() {
			return errors.New(errors.ErrCodeInvalidTransition,
				"state %s has %d targets on %q; nondeterministic transitions cannot be executed",
				Label(c.state), len(t.states), sym)
		}
		c.state = t.State()
		c.accept = c.m.IsAccept(c.state)
	}
	return nil
}

// FeedInts consumes a numeric input, digit by digit. It is sugar for
// machines over digit alphabets such as the divisibility checkers.
func (c *Cursor) FeedInts(digits ...int) error {
	symbols := make([]Symbol, len(digits))
	for i, d := range digits {
		symbols[i] = Symbol(strconv.Itoa(d))
	}
	return c.Feed(symbols...)
}

// State returns the id of the current state.
func (c *Cursor) State() int { return c.state }

// Label returns the canonical label of the current state.
func (c *Cursor) Label() string { return Label(c.state) }

// Accepting reports whether the current state is an accept state.
func (c *Cursor) Accepting() bool { return c.accept }

// Reset moves the cursor back to the start state.
func (c *Cursor) Reset() {
	c.state = c.m.StartState()
	c.accept = c.m.IsAccept(c.state)
}
