package statechart

import (
	"strings"
	"testing"

	"github.com/matzehuels/statecraft/pkg/fsm"
)

func evenChecker(t *testing.T) *fsm.Machine {
	t.Helper()
	m, err := fsm.DivisibilityChecker(10, 2)
	if err != nil {
		t.Fatalf("DivisibilityChecker() error: %v", err)
	}
	return m
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(evenChecker(t).Project(fsm.ProjectOptions{}), Options{})

	for _, want := range []string{
		"digraph statechart {",
		"rankdir=LR;",
		`size="8,5";`,
		`entry -> "S0";`,
		`"S0" [shape=doublecircle];`,
		`"S1" [shape=circle];`,
		`"S0" -> "S1" [label="1"];`,
		`"S1" -> "S0" [label="0"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "layout=circo") {
		t.Error("circo layout set without Circular option")
	}
}

func TestToDOT_Circular(t *testing.T) {
	dot := ToDOT(evenChecker(t).Project(fsm.ProjectOptions{}), Options{Circular: true})
	if !strings.Contains(dot, "layout=circo;") {
		t.Errorf("DOT output missing circo layout:\n%s", dot)
	}
}

func TestToDOT_CompressedLabels(t *testing.T) {
	p := evenChecker(t).Project(fsm.ProjectOptions{Compress: true})
	dot := ToDOT(p, Options{})
	if !strings.Contains(dot, `[label="0,2,4,6,8"];`) {
		t.Errorf("DOT output missing grouped label:\n%s", dot)
	}
}

func TestToDOT_NoStartNoEntry(t *testing.T) {
	m, err := fsm.New(fsm.Definition{
		"S0": {Start: true, On: map[fsm.Symbol]fsm.Targets{"a": {"S1"}}},
		"S1": {Accept: true},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	p := m.Project(fsm.ProjectOptions{})
	for i := range p.Nodes {
		p.Nodes[i].Start = false
	}
	if dot := ToDOT(p, Options{}); strings.Contains(dot, "entry") {
		t.Errorf("entry arrow emitted without a start node:\n%s", dot)
	}
}
