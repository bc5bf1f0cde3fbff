package fsm

import (
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/matzehuels/statecraft/pkg/errors"
)

// Minimize reduces the machine to the minimal equivalent DFA using the
// table-filling algorithm. It prunes unreferenced states, normalizes, marks
// distinguishable state pairs to a fixed point, collapses each equivalence
// class onto its smallest member, and renormalizes. The machine is mutated
// in place.
//
// A machine already marked minimal returns immediately, which also makes the
// operation idempotent. Transitions are assumed deterministic; a Multiple
// target contributes its first destination, mirroring how the table treats
// unresolved NFA entries.
//
// A minimization error reports a violated internal invariant and should not
// occur for machines built through New.
func (m *Machine) Minimize() error {
	if m.minimal {
		return nil
	}

	m.Prune()
	if err := m.Normalize(); err != nil {
		return errors.Wrap(errors.ErrCodeMinimization, err, "normalize before table filling")
	}

	table, err := m.fillTable()
	if err != nil {
		return err
	}

	classes := equivalenceClasses(table, len(m.states))
	if err := m.mergeClasses(classes); err != nil {
		return err
	}

	if err := m.Normalize(); err != nil {
		return errors.Wrap(errors.ErrCodeMinimization, err, "normalize after merging")
	}
	m.minimal = true
	return nil
}

// fillTable builds the n×n symmetric distinguishability table and relaxes it
// to a fixed point. Row i holds a bit per column j; a set bit means states i
// and j are provably distinct.
//
// Entry (i,j) starts at 1 iff exactly one of the two states accepts. Each
// scan then marks every still-equal pair whose targets on some shared symbol
// are already distinguished. The count of set bits grows monotonically and
// is bounded by n², so the scans terminate.
func (m *Machine) fillTable() ([]*bitset.BitSet, error) {
	n := len(m.states)
	table := make([]*bitset.BitSet, n)
	for i := range table {
		table[i] = bitset.New(uint(n))
	}

	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			if m.states[i].Accept != m.states[j].Accept {
				table[i].Set(uint(j))
				table[j].Set(uint(i))
			}
		}
	}

	for changed := true; changed; {
		changed = false
		for row := 0; row < n; row++ {
			for col := 0; col < row; col++ {
				if table[row].Test(uint(col)) {
					continue
				}
				for sym, t := range m.states[row].On {
					other, ok := m.states[col].On[sym]
					if !ok {
						continue
					}
					a, b := t.State(), other.State()
					if a < 0 || a >= n || b < 0 || b >= n {
						return nil, errors.New(errors.ErrCodeMinimization,
							"transition target out of range: %s on %q", Label(row), sym)
					}
					if table[a].Test(uint(b)) {
						table[row].Set(uint(col))
						table[col].Set(uint(row))
						changed = true
						break
					}
				}
			}
		}
	}
	return table, nil
}

// equivalenceClasses turns the unmarked pairs of the filled table into
// disjoint groups of mutually indistinguishable states. Pairs sharing a
// state are merged until all groups are pairwise disjoint; states in no pair
// are implicitly their own class and are not reported.
func equivalenceClasses(table []*bitset.BitSet, n int) [][]int {
	var groups []map[int]struct{}
	for row := 0; row < n; row++ {
		for col := 0; col < row; col++ {
			if !table[row].Test(uint(col)) {
				groups = append(groups, map[int]struct{}{col: {}, row: {}})
			}
		}
	}

	for merged := true; merged; {
		merged = false
		var result []map[int]struct{}
		for len(groups) > 0 {
			common := groups[0]
			rest := groups[1:]
			groups = nil
			for _, group := range rest {
				if disjoint(common, group) {
					groups = append(groups, group)
				} else {
					for s := range group {
						common[s] = struct{}{}
					}
					merged = true
				}
			}
			result = append(result, common)
		}
		groups = result
	}

	classes := make([][]int, len(groups))
	for i, group := range groups {
		class := make([]int, 0, len(group))
		for s := range group {
			class = append(class, s)
		}
		slices.Sort(class)
		classes[i] = class
	}
	return classes
}

func disjoint(a, b map[int]struct{}) bool {
	for s := range b {
		if _, ok := a[s]; ok {
			return false
		}
	}
	return true
}

// mergeClasses collapses every multi-member class onto its smallest member:
// the other members are deleted and every remaining transition target is
// rewritten through the redundancy mapping.
func (m *Machine) mergeClasses(classes [][]int) error {
	redundant := make(map[int]int)
	for _, class := range classes {
		keep := class[0]
		for _, id := range class[1:] {
			if !m.alive(id) || !m.alive(keep) {
				return errors.New(errors.ErrCodeMinimization,
					"equivalence class references removed state %s", Label(id))
			}
			redundant[id] = keep
			if m.states[id].Start {
				m.states[keep].Start = true
			}
			m.removed.Set(uint(id))
		}
	}
	if len(redundant) == 0 {
		return nil
	}

	for id := range m.states {
		if !m.alive(id) {
			continue
		}
		for sym, t := range m.states[id].On {
			m.states[id].On[sym] = t.remap(redundant)
		}
	}
	return nil
}
