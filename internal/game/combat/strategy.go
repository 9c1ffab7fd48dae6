package combat

import (
	"fmt"

	"github.com/cory-johannsen/charsim/internal/game/dice"
	"github.com/cory-johannsen/charsim/internal/game/heritable"
	"github.com/cory-johannsen/charsim/internal/game/inventory"
	"github.com/cory-johannsen/charsim/internal/game/skill"
)

// New returns a fresh strategy of the given kind.
//
// Precondition: roller is non-nil.
func New(kind Kind, rules Rules, roller *dice.Roller) (Strategy, error) {
	switch kind {
	case KindMelee:
		return NewMelee(rules.Melee, roller), nil
	case KindRanged:
		return NewRanged(rules.Ranged, roller), nil
	case KindMagic:
		return NewMagic(rules.Magic, roller), nil
	case KindCriticalMagic:
		return NewCriticalMagic(rules.CriticalMagic, roller), nil
	default:
		return nil, fmt.Errorf("combat: New: unknown strategy kind %d", int(kind))
	}
}

// strike resolves melee and ranged attacks. The two differ only in their
// rules, the trained skill and the attribute feeding the bonus.
type strike struct {
	kind   Kind
	rules  StrikeRules
	roller *dice.Roller
	last   Result
}

// NewMelee returns the melee strategy. Unarmed attacks use rules.UnarmedDie
// and train the fist skill; armed attacks use the weapon die and skill.
// Strength feeds the attribute bonus.
func NewMelee(rules StrikeRules, roller *dice.Roller) Strategy {
	return &strike{kind: KindMelee, rules: rules, roller: roller}
}

// NewRanged returns the ranged strategy. It needs a real weapon, always
// trains distance and takes its bonus from dexterity.
func NewRanged(rules StrikeRules, roller *dice.Roller) Strategy {
	return &strike{kind: KindRanged, rules: rules, roller: roller}
}

func (s *strike) Kind() Kind          { return s.kind }
func (s *strike) SuccessfulHit() bool { return s.last.Hit() }
func (s *strike) CriticalHit() bool   { return s.last.Critical() }
func (s *strike) ManaCost() int       { return 0 }
func (s *strike) Last() Result        { return s.last }

func (s *strike) RelevantSkill(weapon *inventory.Item) skill.Category {
	if s.kind == KindRanged {
		return skill.Distance
	}
	if !armed(weapon) {
		return skill.Fist
	}
	return weapon.Weapon().Skill
}

func (s *strike) attribute() heritable.Attribute {
	if s.kind == KindRanged {
		return heritable.Dexterity
	}
	return heritable.Strength
}

func (s *strike) damageDie(weapon *inventory.Item) int {
	if !armed(weapon) {
		return s.rules.UnarmedDie
	}
	return weapon.Weapon().DieFaces
}

func (s *strike) CalculateDamage(a Attacker, weapon *inventory.Item) int {
	cat := s.RelevantSkill(weapon)
	s.last = Result{Outcome: Miss, Skill: cat}
	if s.kind == KindRanged && !armed(weapon) {
		return 0
	}

	roll := s.roller.Die(s.rules.HitDie)
	s.last.Roll = roll
	if roll <= s.rules.MissAtOrBelow {
		return 0
	}

	r := Result{Outcome: Hit, Roll: roll, Skill: cat}
	r.BaseDamage = s.roller.Die(s.damageDie(weapon))
	if roll >= s.rules.CriticalAtOrAbove {
		r.Outcome = Critical
		r.BaseDamage *= s.rules.CriticalMultiplier
	}
	r.SkillBonus = a.Skill(cat)
	r.AttributeBonus = a.Heritable(s.attribute()) / s.rules.AttributeDivisor
	r.Damage = max(0, r.BaseDamage+r.SkillBonus+r.AttributeBonus)
	s.last = r
	return r.Damage
}

// spell resolves magic attacks. It never trains a weapon skill.
type spell struct {
	kind   Kind
	rules  SpellRules
	roller *dice.Roller
	last   Result
}

// NewMagic returns the magic strategy: magic level dice plus an intelligence
// bonus, provided the caster has the mana.
func NewMagic(rules SpellRules, roller *dice.Roller) Strategy {
	rules.CriticalDivisor = 0
	return &spell{kind: KindMagic, rules: rules, roller: roller}
}

// NewCriticalMagic returns the magic strategy with an extra critical check:
// a d100 at or under intelligence / rules.CriticalDivisor multiplies the damage.
func NewCriticalMagic(rules SpellRules, roller *dice.Roller) Strategy {
	return &spell{kind: KindCriticalMagic, rules: rules, roller: roller}
}

func (s *spell) Kind() Kind                                   { return s.kind }
func (s *spell) SuccessfulHit() bool                          { return s.last.Hit() }
func (s *spell) CriticalHit() bool                            { return s.last.Critical() }
func (s *spell) ManaCost() int                                { return s.rules.ManaCost }
func (s *spell) Last() Result                                 { return s.last }
func (s *spell) RelevantSkill(*inventory.Item) skill.Category { return skill.None }

func (s *spell) CalculateDamage(a Attacker, weapon *inventory.Item) int {
	s.last = Result{Outcome: Miss, Skill: skill.None}
	if a.CurrentMana() < s.rules.ManaCost {
		return 0
	}

	r := Result{Outcome: Hit, Skill: skill.None}
	r.BaseDamage = s.roller.Dice(a.MagicLevel(), s.rules.Die)
	r.AttributeBonus = a.Heritable(heritable.Intelligence) / s.rules.IntelligenceDivisor
	if armed(weapon) {
		r.WeaponBonus = s.rules.WeaponBonus
	}
	r.Damage = max(0, r.BaseDamage+r.AttributeBonus+r.WeaponBonus)

	if s.rules.CriticalDivisor > 0 && r.Damage > 0 {
		chance := a.Heritable(heritable.Intelligence) / s.rules.CriticalDivisor
		r.Roll = s.roller.Percent()
		if r.Roll <= chance {
			r.Outcome = Critical
			r.Damage *= s.rules.CriticalMultiplier
		}
	}
	s.last = r
	return r.Damage
}
