package combat

import (
	"errors"
	"fmt"
)

// StrikeRules tunes a weapon strategy. A hit roll at or below MissAtOrBelow
// misses; at or above CriticalAtOrAbove the base damage is multiplied.
type StrikeRules struct {
	HitDie             int `mapstructure:"hit_die"`
	MissAtOrBelow      int `mapstructure:"miss_at_or_below"`
	CriticalAtOrAbove  int `mapstructure:"critical_at_or_above"`
	CriticalMultiplier int `mapstructure:"critical_multiplier"`
	AttributeDivisor   int `mapstructure:"attribute_divisor"`
	// UnarmedDie is the damage die for bare hands. Ranged ignores it.
	UnarmedDie int `mapstructure:"unarmed_die"`
}

// SpellRules tunes a magic strategy. CriticalDivisor 0 disables the
// critical check.
type SpellRules struct {
	ManaCost            int `mapstructure:"mana_cost"`
	Die                 int `mapstructure:"die"`
	IntelligenceDivisor int `mapstructure:"intelligence_divisor"`
	WeaponBonus         int `mapstructure:"weapon_bonus"`
	CriticalDivisor     int `mapstructure:"critical_divisor"`
	CriticalMultiplier  int `mapstructure:"critical_multiplier"`
}

// DefenseRules computes the flat defense value
// Base + (shielding + ShieldingOffset) / ShieldingDivisor.
type DefenseRules struct {
	Base             int `mapstructure:"base"`
	ShieldingOffset  int `mapstructure:"shielding_offset"`
	ShieldingDivisor int `mapstructure:"shielding_divisor"`
}

// Rules groups every combat tunable.
type Rules struct {
	Melee         StrikeRules  `mapstructure:"melee"`
	Ranged        StrikeRules  `mapstructure:"ranged"`
	Magic         SpellRules   `mapstructure:"magic"`
	CriticalMagic SpellRules   `mapstructure:"critical_magic"`
	Defense       DefenseRules `mapstructure:"defense"`
}

// DefaultRules returns the stock combat numbers.
func DefaultRules() Rules {
	return Rules{
		Melee: StrikeRules{
			HitDie: 20, MissAtOrBelow: 1, CriticalAtOrAbove: 20, CriticalMultiplier: 2,
			AttributeDivisor: 10, UnarmedDie: 4,
		},
		Ranged: StrikeRules{
			HitDie: 20, MissAtOrBelow: 2, CriticalAtOrAbove: 19, CriticalMultiplier: 3,
			AttributeDivisor: 10,
		},
		Magic: SpellRules{
			ManaCost: 10, Die: 6, IntelligenceDivisor: 5, WeaponBonus: 2,
		},
		CriticalMagic: SpellRules{
			ManaCost: 15, Die: 6, IntelligenceDivisor: 5, WeaponBonus: 2,
			CriticalDivisor: 10, CriticalMultiplier: 2,
		},
		Defense: DefenseRules{Base: 10, ShieldingOffset: 10, ShieldingDivisor: 40},
	}
}

// Validate reports every rule that would make combat math undefined.
//
// Postcondition: returns nil iff all divisors and dice are positive.
func (r Rules) Validate() error {
	var errs []error
	strike := func(name string, s StrikeRules) {
		if s.HitDie < 1 {
			errs = append(errs, fmt.Errorf("%s.hit_die must be >= 1", name))
		}
		if s.AttributeDivisor < 1 {
			errs = append(errs, fmt.Errorf("%s.attribute_divisor must be >= 1", name))
		}
		if s.CriticalMultiplier < 1 {
			errs = append(errs, fmt.Errorf("%s.critical_multiplier must be >= 1", name))
		}
	}
	spell := func(name string, s SpellRules) {
		if s.ManaCost < 0 {
			errs = append(errs, fmt.Errorf("%s.mana_cost must be >= 0", name))
		}
		if s.IntelligenceDivisor < 1 {
			errs = append(errs, fmt.Errorf("%s.intelligence_divisor must be >= 1", name))
		}
		if s.CriticalDivisor > 0 && s.CriticalMultiplier < 1 {
			errs = append(errs, fmt.Errorf("%s.critical_multiplier must be >= 1", name))
		}
	}
	strike("melee", r.Melee)
	strike("ranged", r.Ranged)
	spell("magic", r.Magic)
	spell("critical_magic", r.CriticalMagic)
	if r.Defense.ShieldingDivisor < 1 {
		errs = append(errs, errors.New("defense.shielding_divisor must be >= 1"))
	}
	return errors.Join(errs...)
}
