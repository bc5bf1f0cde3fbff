package fsm

import (
	"slices"
	"strings"

	"github.com/matzehuels/statecraft/pkg/errors"
)

// Combine merges two or more existing states into one new, detached state
// definition — the manual building block for NFA-state union. The source
// machine is never mutated; the returned label/StateDef pair belongs to no
// machine until a caller splices it into a Definition.
//
// The synthesized label is the sorted, comma-joined concatenation of the
// input labels. For every symbol in the union of the merged states'
// alphabets, the distinct targets reachable across the members (flattening
// Multiple entries) become a Single when only one remains and an ascending
// Multiple otherwise. Start and accept combine by OR.
func (m *Machine) Combine(labels ...string) (string, StateDef, error) {
	if len(labels) < 2 {
		return "", StateDef{}, errors.New(errors.ErrCodeInvalidInput,
			"combine needs at least two states, got %d", len(labels))
	}

	ids := make([]int, len(labels))
	for i, label := range labels {
		id, ok := m.stateByLabel(label)
		if !ok {
			return "", StateDef{}, errors.New(errors.ErrCodeInvalidState,
				"unknown state %q", label)
		}
		ids[i] = id
	}

	sorted := slices.Clone(labels)
	slices.Sort(sorted)
	name := strings.Join(sorted, ",")

	def := StateDef{On: make(map[Symbol]Targets)}
	for _, id := range ids {
		st := m.states[id]
		def.Start = def.Start || st.Start
		def.Accept = def.Accept || st.Accept

		for sym := range st.On {
			if _, done := def.On[sym]; done {
				continue
			}
			dests := make(map[int]struct{})
			for _, member := range ids {
				t, ok := m.states[member].On[sym]
				if !ok {
					continue
				}
				for _, dest := range t.states {
					dests[dest] = struct{}{}
				}
			}

			distinct := make([]int, 0, len(dests))
			for dest := range dests {
				distinct = append(distinct, dest)
			}
			slices.Sort(distinct)

			targets := make(Targets, len(distinct))
			for i, dest := range distinct {
				targets[i] = Label(dest)
			}
			def.On[sym] = targets
		}
	}
	return name, def, nil
}
