// Package fsm models finite-state automata (DFA and NFA) as an in-memory
// transition table and implements the algorithmic core: symbol-driven
// transition execution, canonical state renaming, unreachable-state pruning,
// table-filling DFA minimization, and manual NFA-state merging.
//
// A Machine is built once from a label-keyed Definition and normalized
// immediately: states are renamed to a dense canonical numbering S0..Sn-1,
// ordered by the numeric suffix of their original labels. Structural
// mutations (Prune, Minimize) operate in place; Normalize restores dense
// numbering after states have been removed. Combine, CompressLabels, and
// Project are read-only and never touch their source machine.
//
// The transition engine (Cursor) resolves deterministic transitions only.
// Multi-target and epsilon transitions can be represented, but automatic
// NFA→DFA conversion via powerset construction is out of scope.
//
// Machines are not safe for concurrent mutation; callers needing concurrent
// access must serialize mutations or work on independent Clones.
package fsm

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/matzehuels/statecraft/pkg/errors"
)

// Definition is the raw, label-keyed form of an automaton: each state label
// maps to its transitions plus the two reserved start/accept flags. This is
// the sole structure exchanged with callers and codecs.
type Definition map[string]StateDef

// StateDef describes one state of a raw definition.
type StateDef struct {
	Start  bool
	Accept bool
	On     map[Symbol]Targets
}

// Targets is one or more target state labels. A single label is a DFA-style
// transition; several labels form an NFA-style multi-target transition.
type Targets []string

// State is one state of a built machine: an ordered symbol→target table plus
// separate start and accept flags. Booleans and state references never share
// a value space.
type State struct {
	On     map[Symbol]Target
	Start  bool
	Accept bool
}

// Machine is an automaton over dense integer state ids. State 0..n-1 are
// canonical after construction and after every Normalize. The minimal flag
// caches a completed minimization and makes further Minimize calls no-ops.
type Machine struct {
	states  []State
	removed *bitset.BitSet // states deleted by Prune/Minimize, compacted away by Normalize
	start   int            // id of the start state, -1 if none remains
	minimal bool
}

// orderKeyRe extracts the numeric suffix used to order raw state labels.
var orderKeyRe = regexp.MustCompile(`(\d+)$`)

// orderKey parses the numeric suffix of a label ("S12" → 12).
func orderKey(label string) (int, error) {
	match := orderKeyRe.FindStringSubmatch(label)
	if match == nil {
		return 0, errors.New(errors.ErrCodeInvalidDefinition,
			"state label %q has no numeric suffix to order by", label)
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidDefinition, err,
			"state label %q", label)
	}
	return n, nil
}

// New builds a machine from a raw definition and normalizes it immediately.
//
// Validation is eager: the definition must be non-empty, every label must
// carry a numeric suffix (the normalization ordering key), every transition
// target must reference a defined state, and at least one state must be
// flagged as start. When several states carry the start flag, the cursor
// starts at the lowest-ordered one.
func New(def Definition) (*Machine, error) {
	if len(def) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "definition has no states")
	}

	type ordered struct {
		label string
		key   int
	}
	labels := make([]ordered, 0, len(def))
	for label := range def {
		key, err := orderKey(label)
		if err != nil {
			return nil, err
		}
		labels = append(labels, ordered{label: label, key: key})
	}
	slices.SortFunc(labels, func(a, b ordered) int {
		if a.key != b.key {
			return a.key - b.key
		}
		return strings.Compare(a.label, b.label)
	})

	ids := make(map[string]int, len(labels))
	for i, l := range labels {
		ids[l.label] = i
	}

	states := make([]State, len(labels))
	for i, l := range labels {
		sd := def[l.label]
		st := State{
			On:     make(map[Symbol]Target, len(sd.On)),
			Start:  sd.Start,
			Accept: sd.Accept,
		}
		for sym, targets := range sd.On {
			if len(targets) == 0 {
				return nil, errors.New(errors.ErrCodeInvalidDefinition,
					"state %q has no target on symbol %q", l.label, sym)
			}
			dests := make([]int, len(targets))
			for j, target := range targets {
				id, ok := ids[target]
				if !ok {
					return nil, errors.New(errors.ErrCodeInvalidState,
						"transition from %q on %q references unknown state %q", l.label, sym, target)
				}
				dests[j] = id
			}
			if len(dests) == 1 {
				st.On[sym] = Single(dests[0])
			} else {
				st.On[sym] = Multiple(dests...)
			}
		}
		states[i] = st
	}

	m := &Machine{
		states:  states,
		removed: bitset.New(uint(len(states))),
		start:   -1,
	}
	for i := range m.states {
		if m.states[i].Start {
			m.start = i
			break
		}
	}
	if m.start == -1 {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "no start state defined")
	}
	return m, nil
}

// Label returns the canonical display label for a state id ("S3").
func Label(id int) string { return fmt.Sprintf("S%d", id) }

// alive reports whether the id names a state that has not been pruned.
func (m *Machine) alive(id int) bool {
	return id >= 0 && id < len(m.states) && !m.removed.Test(uint(id))
}

// NumStates returns the number of remaining states.
func (m *Machine) NumStates() int {
	return len(m.states) - int(m.removed.Count())
}

// TransitionCount returns the number of transition entries across all states.
// A Multiple target counts once per destination.
func (m *Machine) TransitionCount() int {
	count := 0
	for id := range m.states {
		if !m.alive(id) {
			continue
		}
		for _, t := range m.states[id].On {
			count += len(t.states)
		}
	}
	return count
}

// Minimal reports whether a minimization has completed on this machine.
func (m *Machine) Minimal() bool { return m.minimal }

// StartState returns the id of the start state, or -1 if pruning removed it.
func (m *Machine) StartState() int {
	if m.alive(m.start) {
		return m.start
	}
	return -1
}

// IsAccept reports whether the state is an accept state.
// Unknown or removed states are never accepting.
func (m *Machine) IsAccept(id int) bool {
	return m.alive(id) && m.states[id].Accept
}

// State returns a copy of the state record for the given id.
func (m *Machine) State(id int) (State, bool) {
	if !m.alive(id) {
		return State{}, false
	}
	st := m.states[id]
	out := State{On: make(map[Symbol]Target, len(st.On)), Start: st.Start, Accept: st.Accept}
	for sym, t := range st.On {
		out.On[sym] = Target{states: slices.Clone(t.states), multi: t.multi}
	}
	return out, true
}

// StateIDs returns the ids of all remaining states in ascending order.
func (m *Machine) StateIDs() []int {
	ids := make([]int, 0, m.NumStates())
	for id := range m.states {
		if m.alive(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Symbols returns the transition symbols defined on a state, ordered by the
// shared total order (numeric symbols by value, others by leading rune).
func (m *Machine) Symbols(id int) []Symbol {
	if !m.alive(id) {
		return nil
	}
	symbols := make([]Symbol, 0, len(m.states[id].On))
	for sym := range m.states[id].On {
		symbols = append(symbols, sym)
	}
	sortSymbols(symbols)
	return symbols
}

// Target returns the transition target for a state and symbol.
func (m *Machine) Target(id int, sym Symbol) (Target, bool) {
	if !m.alive(id) {
		return Target{}, false
	}
	t, ok := m.states[id].On[sym]
	return t, ok
}

// Alphabet returns the union of all transition symbols, in the shared total
// order.
func (m *Machine) Alphabet() []Symbol {
	seen := make(map[Symbol]struct{})
	for id := range m.states {
		if !m.alive(id) {
			continue
		}
		for sym := range m.states[id].On {
			seen[sym] = struct{}{}
		}
	}
	symbols := make([]Symbol, 0, len(seen))
	for sym := range seen {
		symbols = append(symbols, sym)
	}
	sortSymbols(symbols)
	return symbols
}

// stateByLabel resolves a canonical "S<id>" label to a live state id.
func (m *Machine) stateByLabel(label string) (int, bool) {
	if !strings.HasPrefix(label, "S") {
		return 0, false
	}
	id, err := strconv.Atoi(label[1:])
	if err != nil || !m.alive(id) {
		return 0, false
	}
	return id, true
}

// Normalize renames the remaining states to a dense canonical numbering,
// preserving their relative order, and rewrites every transition target.
// Normalizing an already-canonical machine is a no-op, so the operation is
// idempotent.
//
// Returns an invalid-state error if a transition still references a removed
// state; in that case the machine is left unchanged.
func (m *Machine) Normalize() error {
	if m.removed.Count() == 0 {
		return nil
	}

	mapping := make(map[int]int, m.NumStates())
	next := 0
	for id := range m.states {
		if m.alive(id) {
			mapping[id] = next
			next++
		}
	}

	// Dangling references would silently alias a fresh id; reject first.
	for id := range m.states {
		if !m.alive(id) {
			continue
		}
		for sym, t := range m.states[id].On {
			for _, dest := range t.states {
				if !m.alive(dest) {
					return errors.New(errors.ErrCodeInvalidState,
						"transition from %s on %q references removed state %s", Label(id), sym, Label(dest))
				}
			}
		}
	}

	states := make([]State, 0, next)
	for id := range m.states {
		if !m.alive(id) {
			continue
		}
		st := m.states[id]
		renamed := State{On: make(map[Symbol]Target, len(st.On)), Start: st.Start, Accept: st.Accept}
		for sym, t := range st.On {
			renamed.On[sym] = t.remap(mapping)
		}
		states = append(states, renamed)
	}

	m.states = states
	m.removed = bitset.New(uint(len(states)))
	m.start = -1
	for i := range m.states {
		if m.states[i].Start {
			m.start = i
			break
		}
	}
	return nil
}

// Definition exports the machine back into its raw label-keyed form, using
// the current canonical labels.
func (m *Machine) Definition() Definition {
	def := make(Definition, m.NumStates())
	for _, id := range m.StateIDs() {
		st := m.states[id]
		sd := StateDef{Start: st.Start, Accept: st.Accept, On: make(map[Symbol]Targets, len(st.On))}
		for sym, t := range st.On {
			targets := make(Targets, len(t.states))
			for i, dest := range t.states {
				targets[i] = Label(dest)
			}
			sd.On[sym] = targets
		}
		def[Label(id)] = sd
	}
	return def
}

// Clone returns an independent deep copy. The copy can be mutated without
// affecting the original, which is the supported way to minimize a machine
// while other goroutines keep reading the source.
func (m *Machine) Clone() *Machine {
	states := make([]State, len(m.states))
	for i, st := range m.states {
		cp := State{On: make(map[Symbol]Target, len(st.On)), Start: st.Start, Accept: st.Accept}
		for sym, t := range st.On {
			cp.On[sym] = Target{states: slices.Clone(t.states), multi: t.multi}
		}
		states[i] = cp
	}
	return &Machine{
		states:  states,
		removed: m.removed.Clone(),
		start:   m.start,
		minimal: m.minimal,
	}
}

// String renders the transition table one state per line:
//
//	S0: | 0: S1, 1: S2, start: true, accept: false |
func (m *Machine) String() string {
	var b strings.Builder
	for _, id := range m.StateIDs() {
		st := m.states[id]
		parts := make([]string, 0, len(st.On)+2)
		for _, sym := range m.Symbols(id) {
			t := st.On[sym]
			if t.IsSingle() {
				parts = append(parts, fmt.Sprintf("%s: %s", sym, Label(t.State())))
			} else {
				labels := make([]string, len(t.states))
				for i, dest := range t.states {
					labels[i] = Label(dest)
				}
				parts = append(parts, fmt.Sprintf("%s: [%s]", sym, strings.Join(labels, ", ")))
			}
		}
		parts = append(parts,
			fmt.Sprintf("start: %t", st.Start),
			fmt.Sprintf("accept: %t", st.Accept),
		)
		fmt.Fprintf(&b, "%s: | %s |\n", Label(id), strings.Join(parts, ", "))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
