package fsm

import (
	"slices"
	"strconv"
	"strings"
)

// Symbol is one input symbol of an automaton's alphabet. Symbols are free-form
// strings; the divisibility constructor uses decimal digits ("0".."9"), other
// machines commonly use single letters.
type Symbol string

// Target is the destination of a transition: either a single state (DFA-style)
// or an ordered set of states (NFA-style). The two shapes are kept as an
// explicit tag rather than inferred from the state count, so a Multiple with
// one member (as a raw definition may contain) stays distinguishable from a
// Single.
type Target struct {
	states []int
	multi  bool
}

// Single returns a DFA-style target pointing at one state.
func Single(id int) Target {
	return Target{states: []int{id}}
}

// Multiple returns an NFA-style target. The given states are deduplicated and
// stored in ascending order.
func Multiple(ids ...int) Target {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return Target{states: slices.Compact(sorted), multi: true}
}

// IsSingle reports whether the target is DFA-style.
func (t Target) IsSingle() bool { return !t.multi }

// State returns the first (for a Single, the only) destination state.
func (t Target) State() int { return t.states[0] }

// States returns all destination states in ascending order.
// The returned slice is a copy.
func (t Target) States() []int { return slices.Clone(t.states) }

// Equal reports whether two targets have the same shape and destinations.
func (t Target) Equal(o Target) bool {
	return t.multi == o.multi && slices.Equal(t.states, o.states)
}

// remap rewrites every destination through the given id mapping.
// States absent from the mapping are kept as-is.
func (t Target) remap(ids map[int]int) Target {
	out := Target{states: make([]int, len(t.states)), multi: t.multi}
	for i, s := range t.states {
		if n, ok := ids[s]; ok {
			out.states[i] = n
		} else {
			out.states[i] = s
		}
	}
	slices.Sort(out.states)
	out.states = slices.Compact(out.states)
	return out
}

// symbolKey is the shared total order over mixed alphabets: numeric symbols
// compare by value, anything else by its leading rune. This keeps alphabets
// like {0..9} and {a, b} deterministically ordered even when combined.
func symbolKey(s Symbol) int {
	if n, err := strconv.Atoi(string(s)); err == nil {
		return n
	}
	for _, r := range string(s) {
		return int(r)
	}
	return -1
}

// sortSymbols orders symbols by symbolKey, breaking ties lexically.
func sortSymbols(symbols []Symbol) {
	slices.SortFunc(symbols, func(a, b Symbol) int {
		if ka, kb := symbolKey(a), symbolKey(b); ka != kb {
			return ka - kb
		}
		return strings.Compare(string(a), string(b))
	})
}
