package fsm

import "github.com/bits-and-blooms/bitset"

// Prune removes states that never appear as a transition target, repeating
// until a pass deletes nothing. It mutates the machine in place and does not
// renumber; call Normalize afterwards to restore dense ids.
//
// This is a target-membership test, not a walk from the start state: a state
// with no incoming edges is deleted even when it is the declared start state,
// and states that only reference each other in a dead cycle survive. Use
// PruneUnreachable for start-state reachability semantics.
//
// Returns the number of states removed.
func (m *Machine) Prune() int {
	removed := 0
	for {
		targets := bitset.New(uint(len(m.states)))
		for id := range m.states {
			if !m.alive(id) {
				continue
			}
			for _, t := range m.states[id].On {
				for _, dest := range t.states {
					targets.Set(uint(dest))
				}
			}
		}

		changed := false
		for id := range m.states {
			if m.alive(id) && !targets.Test(uint(id)) {
				m.removed.Set(uint(id))
				removed++
				changed = true
			}
		}
		if !changed {
			return removed
		}
	}
}

// PruneUnreachable removes states that cannot be reached by a forward walk
// from the start state. This is the textbook reachability semantics; Prune
// keeps the historical target-membership behavior instead.
//
// A machine whose start state was already pruned away has no reachable
// states, so everything is removed. Does not renumber; returns the number of
// states removed.
func (m *Machine) PruneUnreachable() int {
	reachable := bitset.New(uint(len(m.states)))
	if start := m.StartState(); start != -1 {
		queue := []int{start}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			if reachable.Test(uint(id)) {
				continue
			}
			reachable.Set(uint(id))
			for _, t := range m.states[id].On {
				for _, dest := range t.states {
					if m.alive(dest) && !reachable.Test(uint(dest)) {
						queue = append(queue, dest)
					}
				}
			}
		}
	}

	removed := 0
	for id := range m.states {
		if m.alive(id) && !reachable.Test(uint(id)) {
			m.removed.Set(uint(id))
			removed++
		}
	}
	return removed
}
