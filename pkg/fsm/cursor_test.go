package fsm

import (
	"testing"

	"github.com/matzehuels/statecraft/pkg/errors"
)

func TestCursor_DivisibilityBase2Div3(t *testing.T) {
	tests := []struct {
		name   string
		digits []int
		want   bool
	}{
		{name: "Three", digits: []int{1, 1}, want: true},
		{name: "Five", digits: []int{1, 0, 1}, want: false},
		{name: "Six", digits: []int{1, 1, 0}, want: true},
		{name: "LeadingZero", digits: []int{0, 1, 1}, want: true},
		{name: "Zero", digits: []int{0}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := DivisibilityChecker(2, 3)
			if err != nil {
				t.Fatalf("DivisibilityChecker() error: %v", err)
			}
			c, err := m.Cursor()
			if err != nil {
				t.Fatalf("Cursor() error: %v", err)
			}
			if err := c.FeedInts(tt.digits...); err != nil {
				t.Fatalf("FeedInts(%v) error: %v", tt.digits, err)
			}
			if c.Accepting() != tt.want {
				t.Errorf("Accepting() = %t, want %t", c.Accepting(), tt.want)
			}
		})
	}
}

func TestCursor_IncrementalFeeding(t *testing.T) {
	m, err := DivisibilityChecker(2, 3)
	if err != nil {
		t.Fatalf("DivisibilityChecker() error: %v", err)
	}
	c, err := m.Cursor()
	if err != nil {
		t.Fatalf("Cursor() error: %v", err)
	}

	// Acceptance must be inspectable after every prefix.
	if !c.Accepting() {
		t.Error("empty input: Accepting() = false, want true (0 divides)")
	}
	if err := c.Feed("1"); err != nil {
		t.Fatalf("Feed(1) error: %v", err)
	}
	if c.Accepting() {
		t.Error("after 1: Accepting() = true, want false")
	}
	if err := c.Feed("1"); err != nil {
		t.Fatalf("Feed(1) error: %v", err)
	}
	if !c.Accepting() {
		t.Error("after 11: Accepting() = false, want true")
	}
	if c.Label() != "S0" {
		t.Errorf("Label() = %q, want S0", c.Label())
	}
}

func TestCursor_FeedSlice(t *testing.T) {
	m, err := DivisibilityChecker(2, 8)
	if err != nil {
		t.Fatalf("DivisibilityChecker() error: %v", err)
	}
	if err := m.Minimize(); err != nil {
		t.Fatalf("Minimize() error: %v", err)
	}

	c, err := m.Cursor()
	if err != nil {
		t.Fatalf("Cursor() error: %v", err)
	}
	seq := []Symbol{"1", "1", "1", "0"} // 14, not divisible by 8
	if err := c.Feed(seq...); err != nil {
		t.Fatalf("Feed(seq...) error: %v", err)
	}
	if c.Accepting() {
		t.Error("Accepting() = true, want false for 14 mod 8")
	}
}

func TestCursor_UndefinedSymbol(t *testing.T) {
	m, err := New(Definition{
		"S0": {Start: true, On: map[Symbol]Targets{"a": {"S0"}}},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	c, err := m.Cursor()
	if err != nil {
		t.Fatalf("Cursor() error: %v", err)
	}

	err = c.Feed("a", "z")
	if !errors.Is(err, errors.ErrCodeInvalidTransition) {
		t.Fatalf("Feed() error = %v, want INVALID_TRANSITION", err)
	}
	// The successfully consumed prefix stays applied.
	if c.State() != 0 {
		t.Errorf("State() = %d, want 0", c.State())
	}
}

func TestCursor_NondeterministicTarget(t *testing.T) {
	m, err := New(Definition{
		"S0": {Start: true, On: map[Symbol]Targets{"a": {"S0", "S1"}}},
		"S1": {Accept: true, On: map[Symbol]Targets{"a": {"S0"}}},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	c, err := m.Cursor()
	if err != nil {
		t.Fatalf("Cursor() error: %v", err)
	}

	err = c.Feed("a")
	if !errors.Is(err, errors.ErrCodeInvalidTransition) {
		t.Fatalf("Feed() error = %v, want INVALID_TRANSITION for multi-target entry", err)
	}
}

func TestCursor_Reset(t *testing.T) {
	m, err := DivisibilityChecker(2, 3)
	if err != nil {
		t.Fatalf("DivisibilityChecker() error: %v", err)
	}
	c, err := m.Cursor()
	if err != nil {
		t.Fatalf("Cursor() error: %v", err)
	}

	if err := c.FeedInts(1, 0); err != nil {
		t.Fatalf("FeedInts() error: %v", err)
	}
	c.Reset()
	if c.State() != m.StartState() {
		t.Errorf("State() after Reset = %d, want %d", c.State(), m.StartState())
	}
	if !c.Accepting() {
		t.Error("Accepting() after Reset = false, want true (S0 accepts)")
	}
}
