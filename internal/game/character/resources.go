package character

import (
	"github.com/cory-johannsen/charsim/internal/game/event"
)

// TakeDamage removes amount from health, clamped at zero. Reaching zero
// health kills the character once; further damage to a dead character only
// keeps health at zero. Non-positive amounts are logged and ignored.
func (c *Character) TakeDamage(amount int) {
	if amount <= 0 {
		c.ignored("TakeDamage", amount)
		return
	}
	before := c.health.Current()
	taken := c.health.Spend(amount)
	c.publish(event.DamageTaken,
		event.KeyAmount, taken,
		event.KeyBefore, before,
		event.KeyAfter, c.health.Current(),
	)
	if c.health.IsDepleted() && !c.dead {
		c.die()
	}
}

// GainHealth heals up to MaxHealth. Dead characters cannot be healed; use
// Respawn.
func (c *Character) GainHealth(amount int) {
	if amount <= 0 {
		c.ignored("GainHealth", amount)
		return
	}
	if c.dead {
		c.logger.Warn("cannot heal a dead character")
		return
	}
	before := c.health.Current()
	if c.health.Gain(amount) == 0 {
		return
	}
	c.publish(event.HealthChanged, event.KeyBefore, before, event.KeyAfter, c.health.Current())
}

// UseMana spends up to amount mana, clamped at zero. The mana actually spent
// feeds the magic level.
//
// Postcondition: returns the mana spent.
func (c *Character) UseMana(amount int) int {
	if amount <= 0 {
		c.ignored("UseMana", amount)
		return 0
	}
	before := c.mana.Current()
	spent := c.mana.Spend(amount)
	if spent == 0 {
		return 0
	}
	c.magic.Gain(uint64(spent), c.magicLevelUp)
	c.publish(event.ManaChanged, event.KeyBefore, before, event.KeyAfter, c.mana.Current())
	return spent
}

// GainMana restores up to MaxMana.
func (c *Character) GainMana(amount int) {
	if amount <= 0 {
		c.ignored("GainMana", amount)
		return
	}
	before := c.mana.Current()
	if c.mana.Gain(amount) == 0 {
		return
	}
	c.publish(event.ManaChanged, event.KeyBefore, before, event.KeyAfter, c.mana.Current())
}
