package fsm

import (
	"testing"

	"github.com/matzehuels/statecraft/pkg/errors"
)

func TestDivisibilityChecker_Shape(t *testing.T) {
	m, err := DivisibilityChecker(2, 3)
	if err != nil {
		t.Fatalf("DivisibilityChecker() error: %v", err)
	}

	if got := m.NumStates(); got != 3 {
		t.Errorf("NumStates() = %d, want 3", got)
	}
	if got := m.StartState(); got != 0 {
		t.Errorf("StartState() = %d, want 0", got)
	}
	if !m.IsAccept(0) {
		t.Error("IsAccept(0) = false, want true")
	}
	for id := 1; id < 3; id++ {
		if m.IsAccept(id) {
			t.Errorf("IsAccept(%d) = true, want false", id)
		}
	}
	// Every state carries one transition per digit.
	for _, id := range m.StateIDs() {
		if got := len(m.Symbols(id)); got != 2 {
			t.Errorf("len(Symbols(%d)) = %d, want 2", id, got)
		}
	}
}

func TestDivisibilityChecker_AcceptsMultiples(t *testing.T) {
	for _, base := range []int{2, 3, 4} {
		for _, divisor := range []int{1, 2, 3, 5, 7} {
			m, err := DivisibilityChecker(base, divisor)
			if err != nil {
				t.Fatalf("DivisibilityChecker(%d, %d) error: %v", base, divisor, err)
			}
			for n := 0; n < 50; n++ {
				c, err := m.Cursor()
				if err != nil {
					t.Fatalf("Cursor() error: %v", err)
				}
				for _, d := range digitsOf(n, base) {
					if err := c.FeedInts(d); err != nil {
						t.Fatalf("FeedInts(%d) error: %v", d, err)
					}
				}
				want := n%divisor == 0
				if got := c.Accepting(); got != want {
					t.Errorf("base %d div %d: n=%d accepting = %v, want %v",
						base, divisor, n, got, want)
				}
			}
		}
	}
}

// digitsOf returns n's base-b digits, most significant first. Zero is the
// single digit 0.
func digitsOf(n, base int) []int {
	if n == 0 {
		return []int{0}
	}
	var out []int
	for n > 0 {
		out = append([]int{n % base}, out...)
		n /= base
	}
	return out
}

func TestDivisibilityChecker_Validation(t *testing.T) {
	tests := []struct {
		name          string
		base, divisor int
	}{
		{"BaseOne", 1, 3},
		{"BaseZero", 0, 3},
		{"DivisorZero", 2, 0},
		{"DivisorNegative", 2, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DivisibilityChecker(tt.base, tt.divisor); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("DivisibilityChecker(%d, %d) error = %v, want INVALID_INPUT",
					tt.base, tt.divisor, err)
			}
		})
	}
}

func TestDivisibilityChecker_DivisorOne(t *testing.T) {
	// Everything is divisible by one: a single accepting state.
	m, err := DivisibilityChecker(2, 1)
	if err != nil {
		t.Fatalf("DivisibilityChecker() error: %v", err)
	}
	if got := m.NumStates(); got != 1 {
		t.Errorf("NumStates() = %d, want 1", got)
	}

	c, err := m.Cursor()
	if err != nil {
		t.Fatalf("Cursor() error: %v", err)
	}
	if err := c.FeedInts(1, 0, 1, 1); err != nil {
		t.Fatalf("FeedInts() error: %v", err)
	}
	if !c.Accepting() {
		t.Error("Accepting() = false, want true")
	}
}
