// Package combat implements attack resolution: the swappable attack
// strategies (melee, ranged, magic, critical magic) and flat defense
// mitigation.
package combat

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/charsim/internal/game/heritable"
	"github.com/cory-johannsen/charsim/internal/game/inventory"
	"github.com/cory-johannsen/charsim/internal/game/skill"
)

// Outcome is the result class of one attack.
type Outcome int

const (
	Miss Outcome = iota
	Hit
	Critical
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Kind names a strategy variant.
type Kind int

const (
	KindMelee Kind = iota
	KindRanged
	KindMagic
	KindCriticalMagic
)

var kindNames = [...]string{"melee", "ranged", "magic", "critical_magic"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a strategy name.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, kn := range kindNames {
		if kn == n {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("combat: unknown strategy %q", name)
}

// Attacker is the read-only stat snapshot a strategy needs.
type Attacker interface {
	Skill(cat skill.Category) int
	Heritable(attr heritable.Attribute) int
	MagicLevel() int
	CurrentMana() int
}

// Result records how one CalculateDamage call played out.
//
// Invariant: Damage == 0 when Outcome == Miss.
type Result struct {
	Outcome        Outcome
	Roll           int
	BaseDamage     int
	SkillBonus     int
	AttributeBonus int
	WeaponBonus    int
	Damage         int
	Skill          skill.Category
}

// Hit reports whether the attack connected.
func (r Result) Hit() bool { return r.Outcome != Miss }

// Critical reports whether the attack was a critical hit.
func (r Result) Critical() bool { return r.Outcome == Critical }

// Strategy resolves one archetype of attack. Query methods describe the most
// recent CalculateDamage call on the same instance, so a strategy belongs to
// a single attacker.
type Strategy interface {
	Kind() Kind
	// CalculateDamage rolls the attack for a and returns the damage, 0 on a miss.
	// weapon may be nil.
	CalculateDamage(a Attacker, weapon *inventory.Item) int
	// RelevantSkill names the skill trained by a successful attack, or skill.None.
	RelevantSkill(weapon *inventory.Item) skill.Category
	SuccessfulHit() bool
	CriticalHit() bool
	// ManaCost is the mana spent by a successful attack; 0 for non-magical strategies.
	ManaCost() int
	Last() Result
}

// armed reports whether weapon is a real weapon rather than bare hands.
func armed(weapon *inventory.Item) bool {
	return weapon.IsWeapon() && !weapon.IsUnarmed()
}
