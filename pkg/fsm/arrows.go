package fsm

import "strings"

// CompressLabels returns a display-only copy of the transition table where
// symbols leading to the identical target are grouped into one comma-joined
// label ("0,2,4,6,8"), with an optional space after each comma. Grouped
// symbols follow the shared total order, so the output is deterministic for
// mixed alphabets. Start and accept flags pass through untouched.
//
// The result is meant for the rendering collaborator; the machine itself is
// never mutated and no other operation consumes the compressed form.
func (m *Machine) CompressLabels(spaced bool) Definition {
	separator := ","
	if spaced {
		separator = ", "
	}

	def := make(Definition, m.NumStates())
	for _, id := range m.StateIDs() {
		st := m.states[id]
		sd := StateDef{Start: st.Start, Accept: st.Accept, On: make(map[Symbol]Targets)}

		// Group symbols by their (shape-sensitive) target.
		grouped := make([]Target, 0, len(st.On))
		members := make([][]Symbol, 0, len(st.On))
		for sym, t := range st.On {
			idx := -1
			for i, seen := range grouped {
				if seen.Equal(t) {
					idx = i
					break
				}
			}
			if idx == -1 {
				grouped = append(grouped, t)
				members = append(members, nil)
				idx = len(grouped) - 1
			}
			members[idx] = append(members[idx], sym)
		}

		for i, t := range grouped {
			symbols := members[i]
			sortSymbols(symbols)
			parts := make([]string, len(symbols))
			for j, sym := range symbols {
				parts[j] = string(sym)
			}

			targets := make(Targets, len(t.states))
			for j, dest := range t.states {
				targets[j] = Label(dest)
			}
			sd.On[Symbol(strings.Join(parts, separator))] = targets
		}
		def[Label(id)] = sd
	}
	return def
}
