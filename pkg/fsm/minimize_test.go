package fsm

import (
	"reflect"
	"testing"
)

// wikipediaDFA is the 6-state minimization example: accepting {S2,S3,S4},
// minimal form has exactly 3 states.
func wikipediaDFA() Definition {
	return Definition{
		"S0": {Start: true, On: map[Symbol]Targets{"0": {"S1"}, "1": {"S2"}}},
		"S1": {On: map[Symbol]Targets{"0": {"S0"}, "1": {"S3"}}},
		"S2": {Accept: true, On: map[Symbol]Targets{"0": {"S4"}, "1": {"S5"}}},
		"S3": {Accept: true, On: map[Symbol]Targets{"0": {"S4"}, "1": {"S5"}}},
		"S4": {Accept: true, On: map[Symbol]Targets{"0": {"S4"}, "1": {"S5"}}},
		"S5": {On: map[Symbol]Targets{"0": {"S5"}, "1": {"S5"}}},
	}
}

func TestMinimize_WikipediaExample(t *testing.T) {
	m, err := New(wikipediaDFA())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := m.Minimize(); err != nil {
		t.Fatalf("Minimize() error: %v", err)
	}

	want := Definition{
		"S0": {Start: true, On: map[Symbol]Targets{"0": {"S0"}, "1": {"S1"}}},
		"S1": {Accept: true, On: map[Symbol]Targets{"0": {"S1"}, "1": {"S2"}}},
		"S2": {On: map[Symbol]Targets{"0": {"S2"}, "1": {"S2"}}},
	}
	if got := m.Definition(); !reflect.DeepEqual(got, want) {
		t.Errorf("minimized definition =\n%v\nwant\n%v", got, want)
	}
	if !m.Minimal() {
		t.Error("Minimal() = false after Minimize")
	}

	// The merged machine still runs: 1 then 0 lands on the accept class.
	c, err := m.Cursor()
	if err != nil {
		t.Fatalf("Cursor() error: %v", err)
	}
	if err := c.Feed("1", "0"); err != nil {
		t.Fatalf("Feed() error: %v", err)
	}
	if !c.Accepting() {
		t.Error("Accepting() = false, want true after 1,0")
	}
}

func TestMinimize_MaltaExample(t *testing.T) {
	// S3 is unreferenced and pruned; the remaining 3 states are already
	// pairwise distinguishable.
	m, err := New(Definition{
		"S0": {Start: true, Accept: true, On: map[Symbol]Targets{"a": {"S1"}, "b": {"S0"}}},
		"S1": {Accept: true, On: map[Symbol]Targets{"a": {"S0"}, "b": {"S2"}}},
		"S2": {On: map[Symbol]Targets{"a": {"S2"}, "b": {"S1"}}},
		"S3": {On: map[Symbol]Targets{"a": {"S1"}, "b": {"S2"}}},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := m.Minimize(); err != nil {
		t.Fatalf("Minimize() error: %v", err)
	}

	want := Definition{
		"S0": {Start: true, Accept: true, On: map[Symbol]Targets{"a": {"S1"}, "b": {"S0"}}},
		"S1": {Accept: true, On: map[Symbol]Targets{"a": {"S0"}, "b": {"S2"}}},
		"S2": {On: map[Symbol]Targets{"a": {"S2"}, "b": {"S1"}}},
	}
	if got := m.Definition(); !reflect.DeepEqual(got, want) {
		t.Errorf("minimized definition =\n%v\nwant\n%v", got, want)
	}

	c, err := m.Cursor()
	if err != nil {
		t.Fatalf("Cursor() error: %v", err)
	}
	if err := c.Feed("a", "b"); err != nil {
		t.Fatalf("Feed() error: %v", err)
	}
	if c.Accepting() {
		t.Error("Accepting() = true, want false after a,b")
	}
}

func TestMinimize_Idempotent(t *testing.T) {
	m, err := New(wikipediaDFA())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := m.Minimize(); err != nil {
		t.Fatalf("Minimize() error: %v", err)
	}

	once := m.Definition()
	if err := m.Minimize(); err != nil {
		t.Fatalf("second Minimize() error: %v", err)
	}
	if got := m.Definition(); !reflect.DeepEqual(got, once) {
		t.Errorf("second Minimize changed the machine:\ngot  %v\nwant %v", got, once)
	}
}

func TestMinimize_DivisibilityChecker(t *testing.T) {
	// div-by-8 in base 2 needs only the remainder classes that survive the
	// distinguishability table; the minimal machine still recognizes the
	// same language.
	m, err := DivisibilityChecker(2, 8)
	if err != nil {
		t.Fatalf("DivisibilityChecker() error: %v", err)
	}
	before := m.NumStates()
	if err := m.Minimize(); err != nil {
		t.Fatalf("Minimize() error: %v", err)
	}
	if m.NumStates() > before {
		t.Errorf("NumStates() grew from %d to %d", before, m.NumStates())
	}

	for n := 0; n < 64; n++ {
		c, err := m.Cursor()
		if err != nil {
			t.Fatalf("Cursor() error: %v", err)
		}
		var digits []int
		for shift := 5; shift >= 0; shift-- {
			digits = append(digits, (n>>shift)&1)
		}
		if err := c.FeedInts(digits...); err != nil {
			t.Fatalf("FeedInts(%v) error: %v", digits, err)
		}
		if want := n%8 == 0; c.Accepting() != want {
			t.Errorf("n=%d: Accepting() = %t, want %t", n, c.Accepting(), want)
		}
	}
}

func TestMinimize_NoDanglingTargets(t *testing.T) {
	m, err := New(wikipediaDFA())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := m.Minimize(); err != nil {
		t.Fatalf("Minimize() error: %v", err)
	}

	for _, id := range m.StateIDs() {
		for _, sym := range m.Symbols(id) {
			tgt, _ := m.Target(id, sym)
			for _, dest := range tgt.States() {
				if _, ok := m.State(dest); !ok {
					t.Errorf("dangling target %s from %s on %q", Label(dest), Label(id), sym)
				}
			}
		}
	}
}

func TestMinimize_SingleState(t *testing.T) {
	m, err := New(Definition{
		"S0": {Start: true, Accept: true, On: map[Symbol]Targets{"a": {"S0"}}},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := m.Minimize(); err != nil {
		t.Fatalf("Minimize() error: %v", err)
	}
	if m.NumStates() != 1 {
		t.Errorf("NumStates() = %d, want 1", m.NumStates())
	}
}
