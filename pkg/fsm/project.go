package fsm

import (
	"slices"
	"strings"
)

// Node is one state in the read-only rendering projection.
type Node struct {
	ID     int
	Label  string
	Start  bool
	Accept bool
}

// Edge is one labeled transition in the rendering projection. Multi-target
// transitions appear as one edge per destination carrying the same label.
type Edge struct {
	From  int
	To    int
	Label string
}

// Projection is the node/edge view consumed by the diagram renderer. It is
// computed once from a machine and holds no reference back to it.
type Projection struct {
	Nodes []Node
	Edges []Edge
}

// ProjectOptions controls how the projection is derived.
type ProjectOptions struct {
	// Compress groups symbols with an identical target into one edge label.
	Compress bool
	// Spaced inserts a space after each comma in compressed labels.
	Spaced bool
}

// Project emits the read-only node/edge view for the rendering collaborator.
// Nodes are ordered by id; edges by source, then label order.
func (m *Machine) Project(opts ProjectOptions) Projection {
	var p Projection

	for _, id := range m.StateIDs() {
		st := m.states[id]
		p.Nodes = append(p.Nodes, Node{
			ID:     id,
			Label:  Label(id),
			Start:  id == m.StartState(),
			Accept: st.Accept,
		})
	}

	if opts.Compress {
		compressed := m.CompressLabels(opts.Spaced)
		for _, n := range p.Nodes {
			sd := compressed[n.Label]
			labels := make([]Symbol, 0, len(sd.On))
			for sym := range sd.On {
				labels = append(labels, sym)
			}
			sortSymbols(labels)
			for _, sym := range labels {
				for _, target := range sd.On[sym] {
					p.Edges = append(p.Edges, Edge{From: n.ID, To: mustID(target), Label: string(sym)})
				}
			}
		}
		return p
	}

	for _, n := range p.Nodes {
		for _, sym := range m.Symbols(n.ID) {
			t := m.states[n.ID].On[sym]
			for _, dest := range t.states {
				p.Edges = append(p.Edges, Edge{From: n.ID, To: dest, Label: string(sym)})
			}
		}
	}
	return p
}

// mustID parses a canonical "S<id>" label produced by this package.
func mustID(label string) int {
	id := 0
	for _, r := range strings.TrimPrefix(label, "S") {
		id = id*10 + int(r-'0')
	}
	return id
}

// EdgesFrom returns the projection's edges leaving the given node, in the
// projection's deterministic order.
func (p Projection) EdgesFrom(id int) []Edge {
	var out []Edge
	for _, e := range p.Edges {
		if e.From == id {
			out = append(out, e)
		}
	}
	return out
}

// StartNode returns the projection's start node, if any.
func (p Projection) StartNode() (Node, bool) {
	idx := slices.IndexFunc(p.Nodes, func(n Node) bool { return n.Start })
	if idx == -1 {
		return Node{}, false
	}
	return p.Nodes[idx], true
}
