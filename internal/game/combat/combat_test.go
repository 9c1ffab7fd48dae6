package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/charsim/internal/game/combat"
	"github.com/cory-johannsen/charsim/internal/game/dice"
	"github.com/cory-johannsen/charsim/internal/game/heritable"
	"github.com/cory-johannsen/charsim/internal/game/inventory"
	"github.com/cory-johannsen/charsim/internal/game/skill"
)

// faces replays die faces in order; each face is clamped to the die rolled.
type faces struct {
	seq []int
	i   int
}

func (f *faces) Intn(n int) int {
	v := f.seq[f.i%len(f.seq)]
	f.i++
	return max(1, min(v, n)) - 1
}

func roller(seq ...int) *dice.Roller {
	return dice.NewLoggedRoller(&faces{seq: seq}, nil)
}

type stubAttacker struct {
	skills     map[skill.Category]int
	attrs      map[heritable.Attribute]int
	magicLevel int
	mana       int
}

func (s stubAttacker) Skill(c skill.Category) int             { return s.skills[c] }
func (s stubAttacker) Heritable(a heritable.Attribute) int    { return s.attrs[a] }
func (s stubAttacker) MagicLevel() int                        { return s.magicLevel }
func (s stubAttacker) CurrentMana() int                       { return s.mana }

func fighter() stubAttacker {
	return stubAttacker{
		skills: map[skill.Category]int{skill.Club: 3, skill.Fist: 2, skill.Distance: 4},
		attrs: map[heritable.Attribute]int{
			heritable.Strength: 45, heritable.Dexterity: 61, heritable.Intelligence: 50,
		},
		magicLevel: 2,
		mana:       40,
	}
}

func mace() *inventory.Item {
	return inventory.NewWeapon("Mace", inventory.RankNormal, inventory.WeaponStats{Skill: skill.Club, DieFaces: 6, Handedness: inventory.OneHanded})
}

func bow() *inventory.Item {
	return inventory.NewWeapon("Longbow", inventory.RankNormal, inventory.WeaponStats{Skill: skill.Distance, DieFaces: 8, Handedness: inventory.TwoHanded})
}

func TestMelee(t *testing.T) {
	rules := combat.DefaultRules().Melee
	tests := []struct {
		name     string
		seq      []int
		weapon   *inventory.Item
		damage   int
		hit      bool
		critical bool
		skill    skill.Category
	}{
		{"natural one misses", []int{1}, mace(), 0, false, false, skill.Club},
		{"hit adds skill and strength", []int{10, 5}, mace(), 5 + 3 + 4, true, false, skill.Club},
		{"twenty doubles the die", []int{20, 5}, mace(), 10 + 3 + 4, true, true, skill.Club},
		{"unarmed uses fist", []int{10, 3}, nil, 3 + 2 + 4, true, false, skill.Fist},
		{"fists count as unarmed", []int{10, 6}, inventory.NewFists(), 4 + 2 + 4, true, false, skill.Fist},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := combat.NewMelee(rules, roller(tc.seq...))
			got := s.CalculateDamage(fighter(), tc.weapon)
			assert.Equal(t, tc.damage, got)
			assert.Equal(t, tc.hit, s.SuccessfulHit())
			assert.Equal(t, tc.critical, s.CriticalHit())
			assert.Equal(t, tc.skill, s.RelevantSkill(tc.weapon))
			assert.Equal(t, 0, s.ManaCost())
			assert.Equal(t, combat.KindMelee, s.Kind())
		})
	}
}

func TestMelee_NullWeaponContributesNothing(t *testing.T) {
	s := combat.NewMelee(combat.DefaultRules().Melee, roller(10, 6))
	got := s.CalculateDamage(fighter(), inventory.NewNullWeapon())
	assert.Equal(t, 45/10, got)
	assert.Equal(t, skill.None, s.RelevantSkill(inventory.NewNullWeapon()))
}

func TestRanged(t *testing.T) {
	rules := combat.DefaultRules().Ranged
	tests := []struct {
		name     string
		seq      []int
		weapon   *inventory.Item
		damage   int
		critical bool
	}{
		{"needs a weapon", []int{15, 8}, nil, 0, false},
		{"fists are not a ranged weapon", []int{15, 8}, inventory.NewFists(), 0, false},
		{"two misses", []int{2, 8}, bow(), 0, false},
		{"three hits", []int{3, 5}, bow(), 5 + 4 + 6, false},
		{"nineteen triples", []int{19, 5}, bow(), 15 + 4 + 6, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := combat.NewRanged(rules, roller(tc.seq...))
			got := s.CalculateDamage(fighter(), tc.weapon)
			assert.Equal(t, tc.damage, got)
			assert.Equal(t, tc.damage > 0, s.SuccessfulHit())
			assert.Equal(t, tc.critical, s.CriticalHit())
			assert.Equal(t, skill.Distance, s.RelevantSkill(tc.weapon))
		})
	}
}

func TestMagic(t *testing.T) {
	rules := combat.DefaultRules().Magic
	s := combat.NewMagic(rules, roller(4, 5))

	got := s.CalculateDamage(fighter(), mace())
	assert.Equal(t, 4+5+50/5+rules.WeaponBonus, got)
	assert.True(t, s.SuccessfulHit())
	assert.False(t, s.CriticalHit())
	assert.Equal(t, 10, s.ManaCost())
	assert.Equal(t, skill.None, s.RelevantSkill(mace()))

	got = s.CalculateDamage(fighter(), inventory.NewFists())
	assert.Equal(t, 4+5+10, got, "no weapon bonus bare-handed")

	broke := fighter()
	broke.mana = 9
	assert.Equal(t, 0, s.CalculateDamage(broke, nil))
	assert.False(t, s.SuccessfulHit())
}

func TestCriticalMagic(t *testing.T) {
	rules := combat.DefaultRules().CriticalMagic
	genius := fighter()
	genius.attrs[heritable.Intelligence] = 100
	genius.magicLevel = 1

	s := combat.NewCriticalMagic(rules, roller(3, 10))
	got := s.CalculateDamage(genius, nil)
	assert.Equal(t, (3+20)*2, got)
	assert.True(t, s.CriticalHit())
	assert.Equal(t, 15, s.ManaCost())
	assert.Equal(t, combat.KindCriticalMagic, s.Kind())

	s = combat.NewCriticalMagic(rules, roller(3, 11))
	got = s.CalculateDamage(genius, nil)
	assert.Equal(t, 3+20, got)
	assert.False(t, s.CriticalHit())
	assert.Equal(t, 11, s.Last().Roll)
}

func TestStrategies_Property_MissMeansZero(t *testing.T) {
	rules := combat.DefaultRules()
	rapid.Check(t, func(rt *rapid.T) {
		kind := combat.Kind(rapid.IntRange(0, 3).Draw(rt, "kind"))
		s, err := combat.New(kind, rules, dice.NewLoggedRoller(dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")), nil))
		require.NoError(rt, err)
		a := fighter()
		a.mana = rapid.IntRange(0, 30).Draw(rt, "mana")
		var weapon *inventory.Item
		if rapid.Bool().Draw(rt, "armed") {
			weapon = bow()
		}
		dmg := s.CalculateDamage(a, weapon)
		require.GreaterOrEqual(rt, dmg, 0)
		assert.Equal(rt, dmg, s.Last().Damage)
		if !s.SuccessfulHit() {
			assert.Equal(rt, 0, dmg)
			assert.False(rt, s.CriticalHit())
		}
	})
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := combat.New(combat.Kind(9), combat.DefaultRules(), roller(1))
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	for _, k := range []combat.Kind{combat.KindMelee, combat.KindRanged, combat.KindMagic, combat.KindCriticalMagic} {
		got, err := combat.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := combat.ParseKind("psionic")
	assert.Error(t, err)
}

func TestDefense(t *testing.T) {
	d := combat.DefaultRules().Defense
	assert.Equal(t, 10, d.Value(1))
	assert.Equal(t, 11, d.Value(30))
	assert.Equal(t, 12, d.Value(70))

	m := combat.Mitigate(10, 10)
	assert.True(t, m.Absorbed)
	assert.Equal(t, 0, m.Damage)
	m = combat.Mitigate(17, 10)
	assert.False(t, m.Absorbed)
	assert.Equal(t, 7, m.Damage)
}

func TestRules_Validate(t *testing.T) {
	assert.NoError(t, combat.DefaultRules().Validate())
	r := combat.DefaultRules()
	r.Melee.AttributeDivisor = 0
	r.Magic.IntelligenceDivisor = 0
	r.Defense.ShieldingDivisor = 0
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "melee.attribute_divisor")
	assert.Contains(t, err.Error(), "magic.intelligence_divisor")
	assert.Contains(t, err.Error(), "defense.shielding_divisor")
}
