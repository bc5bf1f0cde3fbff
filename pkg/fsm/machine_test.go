package fsm

import (
	"reflect"
	"testing"

	"github.com/matzehuels/statecraft/pkg/errors"
)

// threeCycle is a small DFA over {0,1} used across tests:
// it accepts words whose last symbol path ends in S1.
func threeCycle() Definition {
	return Definition{
		"S0": {Start: true, On: map[Symbol]Targets{"0": {"S0"}, "1": {"S1"}}},
		"S1": {Accept: true, On: map[Symbol]Targets{"0": {"S1"}, "1": {"S2"}}},
		"S2": {On: map[Symbol]Targets{"0": {"S2"}, "1": {"S2"}}},
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		def      Definition
		wantCode errors.Code
	}{
		{
			name:     "Empty",
			def:      Definition{},
			wantCode: errors.ErrCodeInvalidDefinition,
		},
		{
			name: "NoNumericSuffix",
			def: Definition{
				"start": {Start: true},
			},
			wantCode: errors.ErrCodeInvalidDefinition,
		},
		{
			name: "UnknownTarget",
			def: Definition{
				"S0": {Start: true, On: map[Symbol]Targets{"a": {"S9"}}},
			},
			wantCode: errors.ErrCodeInvalidState,
		},
		{
			name: "NoStartState",
			def: Definition{
				"S0": {Accept: true},
			},
			wantCode: errors.ErrCodeInvalidDefinition,
		},
		{
			name: "EmptyTargetList",
			def: Definition{
				"S0": {Start: true, On: map[Symbol]Targets{"a": {}}},
			},
			wantCode: errors.ErrCodeInvalidDefinition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.def)
			if err == nil {
				t.Fatal("New() succeeded, want error")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("error code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestNew_NormalizesLabelOrder(t *testing.T) {
	// Sparse, unordered labels must map onto dense ids by numeric suffix:
	// q2 < q10 even though "q10" sorts first lexically.
	def := Definition{
		"q10": {Accept: true, On: map[Symbol]Targets{"a": {"q2"}}},
		"q2":  {Start: true, On: map[Symbol]Targets{"a": {"q10"}}},
	}
	m, err := New(def)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if m.NumStates() != 2 {
		t.Fatalf("NumStates() = %d, want 2", m.NumStates())
	}
	if m.StartState() != 0 {
		t.Errorf("StartState() = %d, want 0 (q2 has the smaller suffix)", m.StartState())
	}
	if !m.IsAccept(1) {
		t.Error("IsAccept(1) = false, want true (q10 accepts)")
	}
	tgt, ok := m.Target(0, "a")
	if !ok || !tgt.IsSingle() || tgt.State() != 1 {
		t.Errorf("Target(0, a) = %+v, %t; want Single(1)", tgt, ok)
	}
}

func TestNew_MultipleStartStates(t *testing.T) {
	// Several start flags are accepted; the cursor begins at the
	// lowest-ordered one.
	def := Definition{
		"S0": {Start: true, On: map[Symbol]Targets{"a": {"S1"}}},
		"S1": {Start: true, Accept: true, On: map[Symbol]Targets{"a": {"S0"}}},
	}
	m, err := New(def)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if m.StartState() != 0 {
		t.Errorf("StartState() = %d, want 0", m.StartState())
	}
}

func TestNew_MultiTargetTransition(t *testing.T) {
	def := Definition{
		"S0": {Start: true, On: map[Symbol]Targets{"a": {"S1", "S0"}}},
		"S1": {Accept: true},
	}
	m, err := New(def)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	tgt, ok := m.Target(0, "a")
	if !ok {
		t.Fatal("Target(0, a) missing")
	}
	if tgt.IsSingle() {
		t.Error("IsSingle() = true, want Multiple shape")
	}
	if got := tgt.States(); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("States() = %v, want [0 1]", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	m, err := New(threeCycle())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	before := m.Definition()
	if err := m.Normalize(); err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if err := m.Normalize(); err != nil {
		t.Fatalf("second Normalize() error: %v", err)
	}
	if got := m.Definition(); !reflect.DeepEqual(got, before) {
		t.Errorf("Normalize changed a canonical machine:\ngot  %v\nwant %v", got, before)
	}
}

func TestDefinition_RoundTrip(t *testing.T) {
	m, err := New(threeCycle())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	m2, err := New(m.Definition())
	if err != nil {
		t.Fatalf("New(Definition()) error: %v", err)
	}
	if !reflect.DeepEqual(m2.Definition(), m.Definition()) {
		t.Errorf("round-tripped definition differs:\ngot  %v\nwant %v", m2.Definition(), m.Definition())
	}
}

func TestClone_Independent(t *testing.T) {
	m, err := New(threeCycle())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	clone := m.Clone()
	if err := clone.Minimize(); err != nil {
		t.Fatalf("Minimize() error: %v", err)
	}

	if m.Minimal() {
		t.Error("minimizing the clone marked the original minimal")
	}
	if m.NumStates() != 3 {
		t.Errorf("original NumStates() = %d, want 3", m.NumStates())
	}
}

func TestSymbols_TotalOrder(t *testing.T) {
	// Numeric symbols order by value, letters by rune, mixed stays stable.
	def := Definition{
		"S0": {Start: true, On: map[Symbol]Targets{
			"10": {"S0"}, "2": {"S0"}, "b": {"S0"}, "a": {"S0"},
		}},
	}
	m, err := New(def)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	want := []Symbol{"2", "10", "a", "b"}
	if got := m.Symbols(0); !reflect.DeepEqual(got, want) {
		t.Errorf("Symbols(0) = %v, want %v", got, want)
	}
}

func TestString_Table(t *testing.T) {
	m, err := New(threeCycle())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	want := "S0: | 0: S0, 1: S1, start: true, accept: false |\n" +
		"S1: | 0: S1, 1: S2, start: false, accept: true |\n" +
		"S2: | 0: S2, 1: S2, start: false, accept: false |"
	if got := m.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}
