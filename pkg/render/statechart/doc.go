// Package statechart renders automata as Graphviz state diagrams.
//
// The package consumes only the read-only [fsm.Projection] view; it never
// touches the transition table itself. [ToDOT] produces a left-to-right
// diagram with an invisible entry arrow into the start state and double
// circles around accept states. [RenderSVG] and [RenderPNG] rasterize the
// DOT text with the embedded Graphviz engine, so no external binary is
// required.
//
// Compressed edge labels (grouping symbols that share a target, e.g.
// "0,2,4,6,8") are a projection concern: pass
// [fsm.ProjectOptions].Compress when deriving the projection.
//
// [fsm.Projection]: github.com/matzehuels/statecraft/pkg/fsm.Projection
// [fsm.ProjectOptions]: github.com/matzehuels/statecraft/pkg/fsm.ProjectOptions
package statechart
