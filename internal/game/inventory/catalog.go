package inventory

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog holds weapon templates indexed by case-insensitive name. It is
// filled at startup and only read afterwards, so concurrent lookups are safe
// once registration is finished.
type Catalog struct {
	weapons map[string]*WeaponDef
}

// NewCatalog returns a Catalog holding defs.
//
// Postcondition: returns an error if any def is invalid or a name repeats.
func NewCatalog(defs ...*WeaponDef) (*Catalog, error) {
	c := &Catalog{weapons: make(map[string]*WeaponDef, len(defs))}
	for _, d := range defs {
		if err := c.Register(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register adds d to the catalog.
//
// Precondition: d is non-nil; registration happens before concurrent use.
// Postcondition: Def(d.Name) returns d; returns error if the name is taken or d is invalid.
func (c *Catalog) Register(d *WeaponDef) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("inventory: Catalog.Register: %w", err)
	}
	key := strings.ToLower(d.Name)
	if _, exists := c.weapons[key]; exists {
		return fmt.Errorf("inventory: Catalog.Register: weapon %q already registered", d.Name)
	}
	c.weapons[key] = d
	return nil
}

// Def returns the template for name and whether it exists.
func (c *Catalog) Def(name string) (*WeaponDef, bool) {
	d, ok := c.weapons[strings.ToLower(name)]
	return d, ok
}

// Weapon instantiates a fresh weapon from the template called name. A miss
// yields the null weapon sentinel rather than an error.
//
// Postcondition: the result is never nil.
func (c *Catalog) Weapon(name string) *Item {
	d, ok := c.Def(name)
	if !ok {
		return NewNullWeapon()
	}
	return d.instantiate()
}

// Names returns every registered weapon name, sorted.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.weapons))
	for _, d := range c.weapons {
		out = append(out, d.Name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered templates.
func (c *Catalog) Len() int { return len(c.weapons) }

func intp(v int) *int { return &v }

// DefaultWeaponDefs returns the stock weapon table.
func DefaultWeaponDefs() []*WeaponDef {
	return []*WeaponDef{
		{Name: "Club", Skill: "club", DamageDice: "d4", Weight: intp(2), Value: intp(1)},
		{Name: "Dagger", Skill: "sword", DamageDice: "d4", Weight: intp(1), Value: intp(2)},
		{Name: "Greatclub", Skill: "club", DamageDice: "d8", Handedness: string(TwoHanded), Weight: intp(10), Value: intp(2)},
		{Name: "Handaxe", Skill: "axe", DamageDice: "d6", Weight: intp(2), Value: intp(5)},
		{Name: "Javelin", Skill: "distance", DamageDice: "d6", Weight: intp(2), Value: intp(1)},
		{Name: "Light hammer", Skill: "club", DamageDice: "d4", Weight: intp(2), Value: intp(2)},
		{Name: "Mace", Skill: "club", DamageDice: "d6", Weight: intp(4), Value: intp(5)},
		{Name: "Quarterstaff", Skill: "club", DamageDice: "d6", Handedness: string(TwoHanded), Weight: intp(4), Value: intp(1)},
		{Name: "Sickle", Skill: "sword", DamageDice: "d4", Weight: intp(2), Value: intp(1)},
		{Name: "Spear", Skill: "distance", DamageDice: "d6", Weight: intp(3), Value: intp(1)},
		{Name: "Greataxe", Skill: "axe", DamageDice: "d12", Handedness: string(TwoHanded), Rank: "rare", Weight: intp(7), Value: intp(30)},
		{Name: "Longbow", Skill: "distance", DamageDice: "d8", Handedness: string(TwoHanded), Weight: intp(2), Value: intp(50)},
	}
}

// DefaultCatalog returns a Catalog built from DefaultWeaponDefs.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultWeaponDefs()...)
	if err != nil {
		panic("inventory: DefaultCatalog: " + err.Error())
	}
	return c
}
