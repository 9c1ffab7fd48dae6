package skill

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/charsim/internal/validate"
)

// Def is the training table entry for one category.
type Def struct {
	Category    string `yaml:"category" validate:"required"`
	TriesNeeded int    `yaml:"tries_needed" validate:"gte=0"`
	Min         int    `yaml:"min" validate:"gte=0"`
	Max         int    `yaml:"max" validate:"gtefield=Min"`
}

// NullDef is returned for categories the catalog does not know. Zero tries
// needed means the skill never advances.
var NullDef = Def{Category: "none"}

// Catalog is the read-only skill training table. It is populated once and
// safe for concurrent reads afterwards.
type Catalog struct {
	defs map[Category]Def
}

// NewCatalog builds a Catalog from defs.
//
// Postcondition: returns an error if a def is invalid or a category repeats.
func NewCatalog(defs []Def) (*Catalog, error) {
	c := &Catalog{defs: make(map[Category]Def, len(defs))}
	for _, d := range defs {
		if err := validate.Struct(d); err != nil {
			return nil, fmt.Errorf("skill: NewCatalog: %s: %w", d.Category, err)
		}
		cat, err := ParseCategory(d.Category)
		if err != nil {
			return nil, fmt.Errorf("skill: NewCatalog: %w", err)
		}
		if !cat.Valid() {
			return nil, fmt.Errorf("skill: NewCatalog: category %q is not trainable", d.Category)
		}
		if _, dup := c.defs[cat]; dup {
			return nil, fmt.Errorf("skill: NewCatalog: category %q already registered", d.Category)
		}
		c.defs[cat] = d
	}
	return c, nil
}

// DefaultDefs returns the stock training table: melee categories need 50
// tries, distance 25 and shielding 100.
func DefaultDefs() []Def {
	return []Def{
		{Category: "fist", TriesNeeded: 50, Min: 1, Max: 100},
		{Category: "sword", TriesNeeded: 50, Min: 1, Max: 100},
		{Category: "axe", TriesNeeded: 50, Min: 1, Max: 100},
		{Category: "club", TriesNeeded: 50, Min: 1, Max: 100},
		{Category: "distance", TriesNeeded: 25, Min: 1, Max: 100},
		{Category: "shielding", TriesNeeded: 100, Min: 1, Max: 100},
	}
}

// DefaultCatalog returns a Catalog built from DefaultDefs.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultDefs())
	if err != nil {
		panic("skill: DefaultCatalog: " + err.Error())
	}
	return c
}

// Def returns the entry for cat, or NullDef on a miss.
func (c *Catalog) Def(cat Category) Def {
	if c == nil {
		return NullDef
	}
	d, ok := c.defs[cat]
	if !ok {
		return NullDef
	}
	return d
}

// TriesNeeded returns the tries needed to advance cat; 0 on a miss.
func (c *Catalog) TriesNeeded(cat Category) int {
	return c.Def(cat).TriesNeeded
}

type catalogFile struct {
	Skills []Def `yaml:"skills"`
}

// LoadCatalog reads a YAML skill table of the form:
//
//	skills:
//	  - category: fist
//	    tries_needed: 50
//	    min: 1
//	    max: 100
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("skill: LoadCatalog: cannot read %q: %w", path, err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("skill: LoadCatalog: cannot parse %q: %w", path, err)
	}
	return NewCatalog(f.Skills)
}
