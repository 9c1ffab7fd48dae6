package character

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/charsim/internal/game/combat"
	"github.com/cory-johannsen/charsim/internal/game/event"
	"github.com/cory-johannsen/charsim/internal/game/skill"
)

// Attack resolves one attack against target with the current strategy and
// weapon. A hit spends the strategy's mana cost, trains the relevant skill
// and hands the damage to target.Defense; a miss changes nothing.
//
// Precondition: target is a different, living character; the attacker is alive.
// Postcondition: the returned result describes the roll; Damage == 0 on a miss.
func (c *Character) Attack(target *Character) combat.Result {
	switch {
	case target == nil:
		c.logger.Warn("attack without a target")
		return combat.Result{}
	case target == c:
		c.logger.Warn("character cannot attack itself")
		return combat.Result{}
	case c.dead:
		c.logger.Warn("dead character cannot attack")
		return combat.Result{}
	case target.dead:
		c.logger.Warn("target already dead", zap.String("target", target.name))
		return combat.Result{}
	}

	weapon := c.inventory.Weapon()
	damage := c.strategy.CalculateDamage(c, weapon)
	result := c.strategy.Last()
	if damage <= 0 {
		c.publish(event.AttackMissed,
			event.KeyTarget, target.name,
			event.KeyTargetID, target.id,
			event.KeyStrategy, c.strategy.Kind().String(),
		)
		return result
	}

	if cost := c.strategy.ManaCost(); cost > 0 {
		c.UseMana(cost)
	}
	if cat := c.strategy.RelevantSkill(weapon); cat != skill.None {
		c.train(cat)
	}
	m := target.Defense(damage)
	c.publish(event.DamageDealt,
		event.KeyTarget, target.name,
		event.KeyTargetID, target.id,
		event.KeyAmount, m.Damage,
		"rolled", damage,
		event.KeyCritical, result.Critical(),
		event.KeyStrategy, c.strategy.Kind().String(),
		event.KeyKilled, target.dead,
	)
	return result
}

// Defense mitigates incoming damage with the flat shielding defense. An
// absorbed hit trains shielding; otherwise the remainder is taken as damage.
func (c *Character) Defense(incoming int) combat.Mitigation {
	if incoming <= 0 {
		c.ignored("Defense", incoming)
		return combat.Mitigation{Incoming: incoming}
	}
	m := combat.Mitigate(incoming, c.DefenseValue())
	if m.Absorbed {
		c.train(skill.Shielding)
		c.publish(event.AttackBlocked, event.KeyAmount, incoming)
		return m
	}
	c.TakeDamage(m.Damage)
	return m
}

// DefenseValue returns the flat defense derived from the shielding skill.
func (c *Character) DefenseValue() int {
	return c.env.Rules.Combat.Defense.Value(c.skills.Level(skill.Shielding))
}

func (c *Character) train(cat skill.Category) {
	if !c.skills.RecordAttempt(cat) {
		return
	}
	level := c.skills.Level(cat)
	c.publish(event.SkillImproved, event.KeySkill, cat.String(), event.KeyLevel, level)
	c.logger.Debug("skill improved", zap.Stringer("skill", cat), zap.Int("level", level))
}
