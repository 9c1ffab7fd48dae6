package character

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/cory-johannsen/charsim/internal/game/skill"
)

// Role decides how a character is presented in rankings.
type Role interface {
	Kind() string
	RankingLine(c *Character, cat skill.Category) string
}

// PlayerRole presents a character by id.
type PlayerRole struct{}

func (PlayerRole) Kind() string { return "player" }

func (PlayerRole) RankingLine(c *Character, cat skill.Category) string {
	return fmt.Sprintf("Player ID: %d | Level: %d | Skill: %d", c.ID(), c.Level(), c.Skill(cat))
}

// CreatureRole presents a character by name.
type CreatureRole struct{}

func (CreatureRole) Kind() string { return "creature" }

func (CreatureRole) RankingLine(c *Character, cat skill.Category) string {
	return fmt.Sprintf("Creature: %s | Level: %d | Skill: %d", c.Name(), c.Level(), c.Skill(cat))
}

// ParseRole resolves a role kind.
func ParseRole(kind string) (Role, error) {
	switch kind {
	case "player", "":
		return PlayerRole{}, nil
	case "creature":
		return CreatureRole{}, nil
	default:
		return nil, fmt.Errorf("character: unknown role %q", kind)
	}
}

// RankingLine renders c with its role.
func (c *Character) RankingLine(cat skill.Category) string {
	return c.role.RankingLine(c, cat)
}

// Rank orders chars by the level of cat, highest first; ties go to the
// higher character level, then the lower id. It returns one ranking line
// per character. chars is not modified.
func Rank(chars []*Character, cat skill.Category) []string {
	sorted := slices.Clone(chars)
	sorted = slices.DeleteFunc(sorted, func(c *Character) bool { return c == nil })
	slices.SortStableFunc(sorted, func(a, b *Character) int {
		if d := cmp.Compare(b.Skill(cat), a.Skill(cat)); d != 0 {
			return d
		}
		if d := cmp.Compare(b.Level(), a.Level()); d != 0 {
			return d
		}
		return cmp.Compare(a.ID(), b.ID())
	})
	lines := make([]string, len(sorted))
	for i, c := range sorted {
		lines[i] = c.RankingLine(cat)
	}
	return lines
}
