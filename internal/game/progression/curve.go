// Package progression tracks accumulated experience (or mana spent) against
// a level curve and reports when a level boundary is crossed.
package progression

import (
	"fmt"
	"math"
	"math/bits"
)

// Saturated is the value every curve returns once the true amount no longer
// fits in a uint64. A saturated threshold can never be reached.
const Saturated = math.MaxUint64

// Curve maps a level to the total amount needed to reach it.
//
// Invariant: implementations are pure and non-decreasing for level >= 1.
type Curve func(level int) uint64

// Experience is the character level curve
// f(level) = (50·level³ − 150·level² + 400·level) / 3, truncated.
//
// Postcondition: Experience(level) == 0 for level <= 0; Experience(level) ==
// Saturated when the true value exceeds the uint64 range.
func Experience(level int) uint64 {
	if level <= 0 {
		return 0
	}
	// 50·l³ − 150·l² + 400·l == 50·l·(l² − 3l + 8), and l² − 3l + 8 > 0.
	l := uint64(level)
	sq := mulSat(l, l)
	if sq == Saturated {
		return Saturated
	}
	inner := sq - 3*l + 8
	hi, lo := bits.Mul64(mulSat(50, l), inner)
	if hi >= 3 {
		return Saturated
	}
	q, _ := bits.Div64(hi, lo, 3)
	return q
}

// mulSat returns a·b, or Saturated on overflow.
func mulSat(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return Saturated
	}
	return lo
}

// addSat returns a+b, or Saturated on overflow.
func addSat(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return Saturated
	}
	return sum
}

// ManaLinear is the magic level curve g(level) = 1600·level.
func ManaLinear(level int) uint64 {
	if level <= 0 {
		return 0
	}
	return mulSat(1600, uint64(level))
}

// ManaQuadratic is the cumulative magic level curve g(level) = 800·level² + 800·level.
func ManaQuadratic(level int) uint64 {
	if level <= 0 {
		return 0
	}
	l := uint64(level)
	return mulSat(800, addSat(mulSat(l, l), l))
}

// MagicCurve names a magic level curve in configuration.
type MagicCurve string

const (
	MagicCurveLinear    MagicCurve = "linear"
	MagicCurveQuadratic MagicCurve = "quadratic"
)

// Curve resolves the named curve.
func (m MagicCurve) Curve() (Curve, error) {
	switch m {
	case MagicCurveLinear, "":
		return ManaLinear, nil
	case MagicCurveQuadratic:
		return ManaQuadratic, nil
	default:
		return nil, fmt.Errorf("progression: unknown magic curve %q", string(m))
	}
}
