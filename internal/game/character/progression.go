package character

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/charsim/internal/game/event"
)

// GainExperience adds amount and levels up once per threshold crossed.
// Every level-up rolls growth for all four resources. Non-positive amounts
// are logged and ignored.
//
// Postcondition: Experience() < NextLevelExperience().
func (c *Character) GainExperience(amount int) {
	if amount <= 0 {
		c.ignored("GainExperience", amount)
		return
	}
	before := c.Experience()
	gained := c.experience.Gain(uint64(amount), c.levelUp)
	c.publish(event.ExperienceGained,
		event.KeyAmount, amount,
		event.KeyBefore, before,
		event.KeyAfter, c.Experience(),
		event.KeyLevel, c.Level(),
	)
	if gained > 0 {
		c.logger.Info("level up", zap.Int("level", c.Level()), zap.Int("levels", gained))
	}
}

func (c *Character) levelUp(level int) {
	g := c.env.Rules.Growth.Roll(level, c.heritables, c.env.Roller)
	c.growth = append(c.growth, g)
	c.maxima = c.maxima.Add(g)
	c.applyMaxima()
	c.publish(event.LevelUp,
		event.KeyLevel, level,
		"max_health", c.health.Max(),
		"max_mana", c.mana.Max(),
	)
}

func (c *Character) levelDown(lost int) {
	if n := len(c.growth); n > 0 {
		c.maxima = c.maxima.Sub(c.growth[n-1])
		c.growth = c.growth[:n-1]
	}
	c.applyMaxima()
	c.publish(event.LevelDown, event.KeyLevel, lost-1)
}

func (c *Character) magicLevelUp(level int) {
	c.publish(event.MagicLevelUp, event.KeyLevel, level)
	c.logger.Info("magic level up", zap.Int("magic_level", level))
}

// die marks the character dead, takes the experience penalty and rolls the
// level back until the remaining experience covers it.
func (c *Character) die() {
	c.dead = true
	penalty := c.experience.Penalty(uint64(c.env.Rules.DeathPenaltyPercent))
	lost := c.experience.Lose(penalty)
	levels := c.experience.Rollback(c.levelDown)
	c.publish(event.CharacterDied,
		event.KeyPenalty, lost,
		event.KeyLevelsLost, levels,
		event.KeyLevel, c.Level(),
	)
	c.logger.Info("character died",
		zap.Uint64("penalty", lost),
		zap.Int("levels_lost", levels),
		zap.Uint64("experience", c.Experience()),
	)
}

// Respawn clears the death flag, recomputes maxima for the current level and
// refills health and mana. The experience penalty stays applied.
//
// Postcondition: !IsDead(); CurrentHealth() == MaxHealth(); CurrentMana() == MaxMana().
func (c *Character) Respawn() {
	c.dead = false
	c.applyMaxima()
	c.health.Fill()
	c.mana.Fill()
	c.publish(event.CharacterRespawned, event.KeyLevel, c.Level())
}

// applyMaxima sets every maximum to the running total of baseline plus
// growth and clamps or recomputes the current values.
//
// Invariant: c.maxima == resource.Total(c.base, c.growth).
func (c *Character) applyMaxima() {
	t := c.maxima
	c.health.SetMax(t.Health)
	c.mana.SetMax(t.Mana)
	c.capacity.SetMax(t.Capacity)
	c.speed.SetBase(t.Speed)
	c.recomputeLoad()
}

// recomputeLoad derives remaining capacity and current speed from the
// carried weight.
func (c *Character) recomputeLoad() {
	w := c.inventory.Weight()
	c.capacity.Recompute(w)
	c.speed.Recompute(w)
}
