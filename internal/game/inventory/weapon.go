package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/charsim/internal/game/dice"
	"github.com/cory-johannsen/charsim/internal/game/skill"
	"github.com/cory-johannsen/charsim/internal/validate"
)

// Handedness says whether a weapon leaves the shield hand free.
type Handedness string

const (
	OneHanded Handedness = "one_handed"
	TwoHanded Handedness = "two_handed"
)

const (
	// FistsName is the name of the default unarmed weapon.
	FistsName = "Fists"
	// FistsDie is the damage die of an unarmed strike.
	FistsDie = 4
	// NullWeaponName is the name of the catalog miss sentinel.
	NullWeaponName = "Nothing"
)

// WeaponStats is the combat profile attached to weapon items.
type WeaponStats struct {
	Skill      skill.Category
	DieFaces   int
	Handedness Handedness
	unarmed    bool
}

// NewWeapon creates a weapon instance.
func NewWeapon(name string, rank Rank, stats WeaponStats, opts ...Option) *Item {
	it := NewItem(name, CategoryWeapon, rank, opts...)
	it.weapon = &stats
	return it
}

// NewFists returns a fresh default unarmed weapon. It weighs nothing and is
// never stowed or dropped on the floor.
func NewFists() *Item {
	return NewWeapon(FistsName, RankNone, WeaponStats{
		Skill:      skill.Fist,
		DieFaces:   FistsDie,
		Handedness: OneHanded,
		unarmed:    true,
	})
}

// NewNullWeapon returns the sentinel produced by catalog misses. Its die has
// no faces and its category fits no slot, so it contributes nothing.
func NewNullWeapon() *Item {
	it := NewItem(NullWeaponName, CategoryNone, RankNone)
	it.weapon = &WeaponStats{Skill: skill.None, Handedness: OneHanded}
	return it
}

// Weapon returns the combat profile, or nil when the item is not a weapon.
func (it *Item) Weapon() *WeaponStats {
	if it == nil || it.weapon == nil {
		return nil
	}
	s := *it.weapon
	return &s
}

// IsWeapon reports whether the item carries a combat profile.
func (it *Item) IsWeapon() bool { return it != nil && it.weapon != nil }

// IsUnarmed reports whether the item is the default unarmed weapon.
func (it *Item) IsUnarmed() bool { return it != nil && it.weapon != nil && it.weapon.unarmed }

// IsTwoHanded reports whether the item is a two-handed weapon.
func (it *Item) IsTwoHanded() bool {
	return it != nil && it.weapon != nil && it.weapon.Handedness == TwoHanded
}

// WeaponDef is a weapon template loaded from YAML.
type WeaponDef struct {
	Name       string `yaml:"name" validate:"required"`
	Skill      string `yaml:"skill" validate:"required,oneof=fist sword axe club distance"`
	DamageDice string `yaml:"damage_dice" validate:"required,dice"`
	Handedness string `yaml:"handedness" validate:"omitempty,oneof=one_handed two_handed"`
	Rank       string `yaml:"rank"`
	Weight     *int   `yaml:"weight" validate:"omitempty,gte=0"`
	Value      *int   `yaml:"value" validate:"omitempty,gte=0"`
}

// Validate checks the template's fields and that its rank and dice resolve.
//
// Postcondition: returns nil iff the template can be instantiated.
func (d *WeaponDef) Validate() error {
	var errs []error
	if err := validate.Struct(d); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseRank(d.Rank); err != nil {
		errs = append(errs, err)
	}
	if e, err := dice.Parse(d.DamageDice); err == nil && e.Count != 1 {
		errs = append(errs, fmt.Errorf("damage_dice %q must be a single die", d.DamageDice))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon %q validation failed: %w", d.Name, errors.Join(errs...))
	}
	return nil
}

// instantiate creates a weapon item from a validated template.
func (d *WeaponDef) instantiate() *Item {
	cat, _ := skill.ParseCategory(d.Skill)
	rank, _ := ParseRank(d.Rank)
	e := dice.MustParse(d.DamageDice)
	hand := Handedness(d.Handedness)
	if hand == "" {
		hand = OneHanded
	}
	var opts []Option
	if d.Weight != nil {
		opts = append(opts, WithWeight(*d.Weight))
	}
	if d.Value != nil {
		opts = append(opts, WithValue(*d.Value))
	}
	return NewWeapon(d.Name, rank, WeaponStats{Skill: cat, DieFaces: e.Sides, Handedness: hand}, opts...)
}

// LoadWeapons reads every *.yaml file in dir. A file holds either a single
// template or a list of templates.
//
// Postcondition: returns all templates or the first error encountered.
func LoadWeapons(dir string) ([]*WeaponDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadWeapons: cannot read directory %q: %w", dir, err)
	}
	var defs []*WeaponDef
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot read file %q: %w", path, err)
		}
		parsed, err := parseWeaponFile(data)
		if err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot parse file %q: %w", path, err)
		}
		for _, d := range parsed {
			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("LoadWeapons: invalid weapon in %q: %w", path, err)
			}
		}
		defs = append(defs, parsed...)
	}
	return defs, nil
}

func parseWeaponFile(data []byte) ([]*WeaponDef, error) {
	if strings.HasPrefix(strings.TrimSpace(string(data)), "-") {
		var list []*WeaponDef
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var d WeaponDef
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return []*WeaponDef{&d}, nil
}
