package fsm

import (
	"strconv"

	"github.com/matzehuels/statecraft/pkg/errors"
)

// DivisibilityChecker builds the DFA that accepts exactly the base-b numbers
// divisible by m: one state per remainder over the digit alphabet 0..base-1,
// where state r on digit s moves to (base*r + s) mod divisor. S0 is both the
// start and the only accept state.
//
// Base must be at least 2 and divisor at least 1.
func DivisibilityChecker(base, divisor int) (*Machine, error) {
	if base < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "base must be at least 2, got %d", base)
	}
	if divisor < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "divisor must be at least 1, got %d", divisor)
	}

	def := make(Definition, divisor)
	for r := 0; r < divisor; r++ {
		on := make(map[Symbol]Targets, base)
		for s := 0; s < base; s++ {
			on[Symbol(strconv.Itoa(s))] = Targets{Label((base*r + s) % divisor)}
		}
		def[Label(r)] = StateDef{Start: r == 0, Accept: r == 0, On: on}
	}
	return New(def)
}
