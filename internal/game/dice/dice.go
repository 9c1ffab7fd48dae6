// Package dice supplies the randomness capability used by combat resolution,
// resource growth and heritable inheritance.
//
// Nothing in the game packages calls a random number generator directly;
// everything goes through a Source so simulations can be replayed.
package dice

import (
	"fmt"
	"strings"
)

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// RollResult records a single evaluated expression.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string
	Dice       []int
	Modifier   int
}

// Total returns the sum of all faces plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String renders the roll as "2d6+1 = [3 4] +1 = 8".
func (r RollResult) String() string {
	faces := make([]string, len(r.Dice))
	for i, d := range r.Dice {
		faces[i] = fmt.Sprint(d)
	}
	return fmt.Sprintf("%s = [%s] %+d = %d", r.Expression, strings.Join(faces, " "), r.Modifier, r.Total())
}
