package progression_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/charsim/internal/game/progression"
)

func TestExperience_KnownValues(t *testing.T) {
	tests := map[int]uint64{0: 0, -4: 0, 1: 100, 2: 200, 3: 400, 4: 800, 10: 13000}
	for level, want := range tests {
		assert.Equal(t, want, progression.Experience(level), "level %d", level)
	}
}

func TestExperience_Property_FormulaAndMonotone(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 1000).Draw(rt, "level")
		l := int64(n)
		want := uint64((50*l*l*l - 150*l*l + 400*l) / 3)
		require.Equal(rt, want, progression.Experience(n))
		if n > 1 {
			assert.GreaterOrEqual(rt, progression.Experience(n), progression.Experience(n-1))
		}
	})
}

// bigExperience evaluates the level curve exactly.
func bigExperience(level int) *big.Int {
	l := big.NewInt(int64(level))
	sq := new(big.Int).Mul(l, l)
	n := new(big.Int).Mul(big.NewInt(50), new(big.Int).Mul(sq, l))
	n.Sub(n, new(big.Int).Mul(big.NewInt(150), sq))
	n.Add(n, new(big.Int).Mul(big.NewInt(400), l))
	return n.Quo(n, big.NewInt(3))
}

func TestExperience_LargeLevels(t *testing.T) {
	assert.Equal(t, uint64(3_599_982_000_080_000_000), progression.Experience(600_000))
	assert.Equal(t, uint64(progression.Saturated), progression.Experience(2_000_000))
	assert.Equal(t, uint64(progression.Saturated), progression.Experience(math.MaxInt))
}

func TestExperience_Property_ExactOrSaturated(t *testing.T) {
	limit := new(big.Int).SetUint64(math.MaxUint64)
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 5_000_000).Draw(rt, "level")
		want := bigExperience(n)
		got := progression.Experience(n)
		if want.Cmp(limit) >= 0 {
			require.Equal(rt, uint64(progression.Saturated), got)
		} else {
			require.Equal(rt, want.Uint64(), got)
		}
		assert.GreaterOrEqual(rt, got, progression.Experience(n-1))
	})
}

func TestManaCurves_Saturate(t *testing.T) {
	assert.Equal(t, uint64(progression.Saturated), progression.ManaLinear(math.MaxInt))
	assert.Equal(t, uint64(progression.Saturated), progression.ManaQuadratic(math.MaxInt))
	assert.Equal(t, uint64(progression.Saturated), progression.ManaQuadratic(1<<32))
}

func TestManaCurves(t *testing.T) {
	assert.Equal(t, uint64(1600), progression.ManaLinear(1))
	assert.Equal(t, uint64(4800), progression.ManaLinear(3))
	assert.Equal(t, uint64(1600), progression.ManaQuadratic(1))
	assert.Equal(t, uint64(4800), progression.ManaQuadratic(2))
	assert.Equal(t, uint64(0), progression.ManaQuadratic(0))

	c, err := progression.MagicCurve("").Curve()
	require.NoError(t, err)
	assert.Equal(t, uint64(3200), c(2))
	c, err = progression.MagicCurveQuadratic.Curve()
	require.NoError(t, err)
	assert.Equal(t, uint64(4800), c(2))
	_, err = progression.MagicCurve("cubic").Curve()
	assert.Error(t, err)
}

func TestLedger_AddLoseRemaining(t *testing.T) {
	l := progression.NewLedger(progression.Experience, 1)
	assert.Equal(t, uint64(200), l.Threshold())
	l.Add(150)
	assert.Equal(t, uint64(50), l.Remaining())
	assert.False(t, l.HasLeveledUp())
	l.Add(50)
	assert.True(t, l.HasLeveledUp())
	assert.Equal(t, uint64(0), l.Remaining())

	assert.Equal(t, uint64(200), l.Lose(1000))
	assert.Equal(t, uint64(0), l.Current())

	l.Add(math.MaxUint64)
	l.Add(10)
	assert.Equal(t, uint64(math.MaxUint64), l.Current())
}

func TestLedger_Penalty(t *testing.T) {
	tests := map[uint64]uint64{0: 0, 1: 1, 4: 1, 100: 25, 101: 26, 200: 50, 399: 100}
	for exp, want := range tests {
		l := progression.NewLedger(progression.Experience, 1)
		l.Add(exp)
		assert.Equal(t, want, l.Penalty(25), "experience %d", exp)
	}
}

func TestLedger_Property_PenaltyIsCeiling(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		exp := rapid.Uint64Range(0, 1<<40).Draw(rt, "exp")
		l := progression.NewLedger(progression.Experience, 1)
		l.Add(exp)
		want := (exp*25 + 99) / 100
		assert.Equal(rt, want, l.Penalty(25))
	})
}

func TestTrack_GainExactlyOneLevel(t *testing.T) {
	tr := progression.NewTrack(progression.Experience)
	var seen []int
	gained := tr.Gain(progression.Experience(2), func(level int) { seen = append(seen, level) })
	assert.Equal(t, 1, gained)
	assert.Equal(t, 2, tr.Level())
	assert.Equal(t, []int{2}, seen)
	assert.Equal(t, progression.Experience(3), tr.Ledger().Threshold())
}

func TestTrack_Property_RemainingGapIsOneLevel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := progression.NewTrack(progression.Experience)
		tr.Gain(rapid.Uint64Range(0, 5_000_000).Draw(rt, "start"), nil)
		before := tr.Level()
		tr.Gain(tr.Ledger().Remaining(), nil)
		assert.Equal(rt, before+1, tr.Level())
	})
}

func TestTrack_Property_CascadeReachesTargetLevel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := progression.NewTrack(progression.Experience)
		tr.Gain(rapid.Uint64Range(0, 1_000_000).Draw(rt, "start"), nil)
		start := tr.Level()
		k := rapid.IntRange(1, 20).Draw(rt, "k")
		need := progression.Experience(start+k) - tr.Ledger().Current()
		gained := tr.Gain(need, nil)
		assert.GreaterOrEqual(rt, gained, k)
		assert.Equal(rt, start+k, tr.Level())
		assert.False(rt, tr.Ledger().HasLeveledUp())
	})
}

func TestTrack_RollbackAfterPenalty(t *testing.T) {
	tr := progression.NewTrack(progression.Experience)
	tr.Gain(progression.Experience(2), nil)
	require.Equal(t, 2, tr.Level())

	penalty := tr.Penalty(25)
	assert.Equal(t, uint64(50), tr.Lose(penalty))
	var lost []int
	n := tr.Rollback(func(level int) { lost = append(lost, level) })

	assert.Equal(t, 1, n)
	assert.Equal(t, 1, tr.Level())
	assert.Equal(t, []int{2}, lost)
	assert.Equal(t, uint64(150), tr.Ledger().Current())
	assert.Equal(t, progression.Experience(2), tr.Ledger().Threshold())
}

func TestTrack_Property_RollbackSettlesLevel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := progression.NewTrack(progression.Experience)
		tr.Gain(rapid.Uint64Range(0, 10_000_000).Draw(rt, "exp"), nil)
		tr.Lose(rapid.Uint64Range(0, 10_000_000).Draw(rt, "loss"))
		tr.Rollback(nil)

		level := tr.Level()
		exp := tr.Ledger().Current()
		require.GreaterOrEqual(rt, level, progression.MinLevel)
		if level > progression.MinLevel {
			assert.GreaterOrEqual(rt, exp, progression.Experience(level))
		}
		assert.Less(rt, exp, progression.Experience(level+1))
	})
}

func TestTrack_GainStopsAtSaturatedThreshold(t *testing.T) {
	tr := progression.NewTrack(progression.Experience)
	gained := tr.Gain(math.MaxUint64, nil)
	require.Equal(t, tr.Level()-1, gained)
	assert.Equal(t, uint64(progression.Saturated), tr.Ledger().Threshold())
	assert.Less(t, progression.Experience(tr.Level()), uint64(progression.Saturated))
	assert.False(t, tr.Ledger().HasLeveledUp())

	assert.Zero(t, tr.Gain(math.MaxUint64, nil))
}
