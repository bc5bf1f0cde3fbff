package fsm

import (
	"reflect"
	"testing"
)

func TestCompressLabels_DecimalEvenChecker(t *testing.T) {
	m, err := DivisibilityChecker(10, 2)
	if err != nil {
		t.Fatalf("DivisibilityChecker() error: %v", err)
	}

	def := m.CompressLabels(false)
	want := Definition{
		"S0": {Start: true, Accept: true, On: map[Symbol]Targets{
			"0,2,4,6,8": {"S0"},
			"1,3,5,7,9": {"S1"},
		}},
		"S1": {On: map[Symbol]Targets{
			"0,2,4,6,8": {"S0"},
			"1,3,5,7,9": {"S1"},
		}},
	}
	if !reflect.DeepEqual(def, want) {
		t.Errorf("CompressLabels() =\n%v\nwant\n%v", def, want)
	}
}

func TestCompressLabels_Spaced(t *testing.T) {
	m, err := DivisibilityChecker(10, 2)
	if err != nil {
		t.Fatalf("DivisibilityChecker() error: %v", err)
	}

	def := m.CompressLabels(true)
	if _, ok := def["S0"].On["0, 2, 4, 6, 8"]; !ok {
		t.Errorf("spaced labels missing, got %v", def["S0"].On)
	}
}

func TestCompressLabels_KeepsDistinctTargetsApart(t *testing.T) {
	m, err := New(threeCycle())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	// S0 sends 0 and 1 to different states, so nothing groups.
	def := m.CompressLabels(false)
	if got := len(def["S0"].On); got != 2 {
		t.Errorf("len(S0.On) = %d, want 2", got)
	}
	// S2 sends both symbols to itself, so they collapse.
	if got := def["S2"].On; !reflect.DeepEqual(got, map[Symbol]Targets{"0,1": {"S2"}}) {
		t.Errorf("S2.On = %v, want {0,1: [S2]}", got)
	}
}

func TestCompressLabels_MultiTargetShape(t *testing.T) {
	m, err := New(Definition{
		"S0": {Start: true, On: map[Symbol]Targets{
			"a": {"S1", "S2"},
			"b": {"S1", "S2"},
			"c": {"S1"},
		}},
		"S1": {Accept: true},
		"S2": {},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	def := m.CompressLabels(false)
	on := def["S0"].On
	if got, want := on["a,b"], (Targets{"S1", "S2"}); !reflect.DeepEqual(got, want) {
		t.Errorf("On[a,b] = %v, want %v", got, want)
	}
	// The single-target c must not group with the multi-target pair even
	// though S1 is a shared destination.
	if got, want := on["c"], (Targets{"S1"}); !reflect.DeepEqual(got, want) {
		t.Errorf("On[c] = %v, want %v", got, want)
	}
}

func TestCompressLabels_DoesNotMutateSource(t *testing.T) {
	m, err := DivisibilityChecker(10, 2)
	if err != nil {
		t.Fatalf("DivisibilityChecker() error: %v", err)
	}
	before := m.Definition()

	m.CompressLabels(false)
	if got := m.Definition(); !reflect.DeepEqual(got, before) {
		t.Errorf("CompressLabels mutated the machine:\ngot  %v\nwant %v", got, before)
	}
}
