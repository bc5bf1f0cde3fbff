package statechart

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/statecraft/pkg/fsm"
)

// Options configures state-diagram rendering.
type Options struct {
	// Circular uses the circo layout engine instead of the default
	// left-to-right ranked layout. Useful for cyclic machines such as
	// remainder checkers.
	Circular bool
}

// ToDOT converts a machine projection to Graphviz DOT format. Accept states
// draw as double circles, the start state gets an arrow from an invisible
// entry point, and every transition becomes a labeled edge. The resulting
// DOT string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(p fsm.Projection, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph statechart {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  size=\"8,5\";\n")
	if opts.Circular {
		buf.WriteString("  layout=circo;\n")
	}
	buf.WriteString("\n")

	if start, ok := p.StartNode(); ok {
		buf.WriteString("  entry [shape=point, width=0.1];\n")
		fmt.Fprintf(&buf, "  entry -> %q;\n", start.Label)
	}
	for _, n := range p.Nodes {
		fmt.Fprintf(&buf, "  %q [shape=%s];\n", n.Label, shapeFor(n))
	}

	buf.WriteString("\n")
	for _, e := range p.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n",
			fsm.Label(e.From), fsm.Label(e.To), e.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func shapeFor(n fsm.Node) string {
	if n.Accept {
		return "doublecircle"
	}
	return "circle"
}
