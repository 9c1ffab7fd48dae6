package character

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/charsim/internal/game/dice"
	"github.com/cory-johannsen/charsim/internal/game/event"
	"github.com/cory-johannsen/charsim/internal/game/resource"
)

func TestMaxima_Property_MatchesGrowthHistory(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		env := DefaultEnvironment()
		env.Roller = dice.NewLoggedRoller(dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")), nil)
		env.Events = event.Discard
		c := New("ledger", env)

		steps := rapid.IntRange(1, 12).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(rt, "die") {
				c.TakeDamage(c.MaxHealth())
				c.Respawn()
			} else {
				c.GainExperience(rapid.IntRange(1, 200_000).Draw(rt, "exp"))
			}
			require.Equal(rt, resource.Total(c.base, c.growth), c.maxima)
			require.Equal(rt, c.Level(), 1+len(c.growth))
			require.Equal(rt, c.maxima.Health, c.MaxHealth())
		}
	})
}
