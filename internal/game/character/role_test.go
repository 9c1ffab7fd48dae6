package character_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/charsim/internal/game/character"
	"github.com/cory-johannsen/charsim/internal/game/dice"
	"github.com/cory-johannsen/charsim/internal/game/heritable"
	"github.com/cory-johannsen/charsim/internal/game/skill"
)

func TestRank(t *testing.T) {
	env, _ := newEnv(5)
	player := character.New("Hero", env, average())
	creature := character.New("Goblin", env, average(), character.WithRole(character.CreatureRole{}))
	creature.GainExperience(200)

	lines := character.Rank([]*character.Character{player, nil, creature}, skill.Fist)

	require.Len(t, lines, 2)
	assert.Equal(t, "Creature: Goblin | Level: 2 | Skill: 1", lines[0])
	assert.Equal(t, fmt.Sprintf("Player ID: %d | Level: 1 | Skill: 1", player.ID()), lines[1])
}

func TestParseRole(t *testing.T) {
	r, err := character.ParseRole("creature")
	require.NoError(t, err)
	assert.Equal(t, "creature", r.Kind())
	r, err = character.ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, "player", r.Kind())
	_, err = character.ParseRole("deity")
	assert.Error(t, err)
}

func TestLineage_Breed(t *testing.T) {
	env, _ := newEnv(5)
	father := character.New("father", env, average())
	mother := character.New("mother", env, average())
	l := character.NewLineage()

	child, err := l.Breed("child", father, mother, env)
	require.NoError(t, err)

	assert.Equal(t, []int64{child.ID()}, l.ChildrenOf(father.ID()))
	assert.Equal(t, []int64{child.ID()}, l.ChildrenOf(mother.ID()))
	p, ok := l.ParentsOf(child.ID())
	require.True(t, ok)
	assert.Equal(t, character.Parents{Father: father.ID(), Mother: mother.ID()}, p)
	assert.Empty(t, l.ChildrenOf(child.ID()))

	_, err = character.NewDescendant("orphan", nil, mother, env)
	assert.Error(t, err)
}

func TestLineage_RecordTwiceReplacesParents(t *testing.T) {
	a := character.New("a", nil)
	b := character.New("b", nil)
	c := character.New("c", nil)
	child := character.New("child", nil)
	l := character.NewLineage()

	l.Record(child, a, b)
	l.Record(child, a, c)

	assert.Equal(t, []int64{child.ID()}, l.ChildrenOf(a.ID()))
	assert.Empty(t, l.ChildrenOf(b.ID()))
	assert.Equal(t, []int64{child.ID()}, l.ChildrenOf(c.ID()))
}

func TestLineage_RecordMarriage(t *testing.T) {
	env, _ := newEnv(5)
	husband := character.New("husband", env, average())
	wife := character.New("wife", env, average())
	l := character.NewLineage()

	_, ok := l.SpouseOf(husband.ID())
	assert.False(t, ok)

	require.NoError(t, l.RecordMarriage(husband, wife))
	_, err := l.Breed("child", husband, wife, env)
	require.NoError(t, err)

	id, ok := l.HusbandOf(wife.ID())
	require.True(t, ok)
	assert.Equal(t, husband.ID(), id)
	id, ok = l.WifeOf(husband.ID())
	require.True(t, ok)
	assert.Equal(t, wife.ID(), id)
	id, ok = l.SpouseOf(wife.ID())
	require.True(t, ok)
	assert.Equal(t, husband.ID(), id)

	_, ok = l.HusbandOf(husband.ID())
	assert.False(t, ok)
	_, ok = l.WifeOf(wife.ID())
	assert.False(t, ok)

	assert.ErrorIs(t, l.RecordMarriage(husband, husband), character.ErrInvalidMarriage)
	assert.ErrorIs(t, l.RecordMarriage(nil, wife), character.ErrInvalidMarriage)
}

func TestLineage_RemarriageDissolvesEarlierMarriage(t *testing.T) {
	a := character.New("a", nil)
	b := character.New("b", nil)
	c := character.New("c", nil)
	l := character.NewLineage()

	require.NoError(t, l.RecordMarriage(a, b))
	require.NoError(t, l.RecordMarriage(c, b))

	_, ok := l.SpouseOf(a.ID())
	assert.False(t, ok)
	m, ok := l.MarriageOf(b.ID())
	require.True(t, ok)
	assert.Equal(t, character.Marriage{Husband: c.ID(), Wife: b.ID()}, m)
}

func TestLineage_Property_MarriagesArePairwise(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		people := make([]*character.Character, 5)
		for i := range people {
			people[i] = character.New("p", nil, average())
		}
		l := character.NewLineage()
		for range rapid.IntRange(1, 15).Draw(rt, "marriages") {
			h := rapid.IntRange(0, len(people)-1).Draw(rt, "husband")
			w := rapid.IntRange(0, len(people)-1).Draw(rt, "wife")
			err := l.RecordMarriage(people[h], people[w])
			if h == w {
				require.ErrorIs(rt, err, character.ErrInvalidMarriage)
				continue
			}
			require.NoError(rt, err)
		}
		for _, p := range people {
			spouse, ok := l.SpouseOf(p.ID())
			if !ok {
				continue
			}
			back, ok := l.SpouseOf(spouse)
			require.True(rt, ok)
			assert.Equal(rt, p.ID(), back)
		}
	})
}

func TestNewDescendant_Property_GenesComeFromParentsOrMutate(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		env, _ := newEnv()
		env.Roller = dice.NewLoggedRoller(dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")), nil)
		father := character.New("f", env)
		mother := character.New("m", env)

		child, err := character.NewDescendant("kid", father, mother, env)
		require.NoError(rt, err)
		assert.NotEqual(rt, father.ID(), child.ID())
		for _, a := range heritable.All {
			v := child.Heritable(a)
			inherited := v == father.Heritable(a) || v == mother.Heritable(a)
			mutated := v >= 1 && v <= 100
			assert.True(rt, inherited || mutated, "%s = %d", a, v)
		}
	})
}
