// Package inventory models items, weapons, containers and the equipment
// slots a character wears them in.
package inventory

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Category classifies an item and decides which slot accepts it.
type Category int

const (
	CategoryNone Category = iota
	CategoryAmulet
	CategoryHelmet
	CategoryContainer
	CategoryWeapon
	CategoryArmor
	CategoryShield
	CategoryRing
	CategoryLegArmor
	CategoryBoots
	CategoryAmmunition
	CategoryUsable
)

var categoryNames = map[Category]string{
	CategoryNone:       "none",
	CategoryAmulet:     "amulet",
	CategoryHelmet:     "helmet",
	CategoryContainer:  "container",
	CategoryWeapon:     "weapon",
	CategoryArmor:      "armor",
	CategoryShield:     "shield",
	CategoryRing:       "ring",
	CategoryLegArmor:   "leg_armor",
	CategoryBoots:      "boots",
	CategoryAmmunition: "ammunition",
	CategoryUsable:     "usable",
}

func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory resolves a name produced by Category.String.
func ParseCategory(name string) (Category, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for c, cn := range categoryNames {
		if cn == n {
			return c, nil
		}
	}
	return CategoryNone, fmt.Errorf("inventory: unknown item category %q", name)
}

// Rank is the rarity tier of an item.
type Rank int

const (
	RankNone Rank = iota
	RankNormal
	RankMagic
	RankRare
	RankEpic
	RankLegendary
)

var rankNames = [...]string{"none", "normal", "magic", "rare", "epic", "legendary"}

func (r Rank) String() string {
	if r < 0 || int(r) >= len(rankNames) {
		return fmt.Sprintf("rank(%d)", int(r))
	}
	return rankNames[r]
}

// ParseRank resolves a rank name; the empty string yields RankNormal.
func ParseRank(name string) (Rank, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return RankNormal, nil
	}
	for i, rn := range rankNames {
		if rn == n {
			return Rank(i), nil
		}
	}
	return RankNone, fmt.Errorf("inventory: unknown item rank %q", name)
}

// Item is a single item instance. Identity is the instance ID: two items with
// identical attributes are still different items.
type Item struct {
	id       string
	name     string
	category Category
	rank     Rank
	value    Opt[int]
	uses     Opt[int]
	weight   Opt[int]

	weapon   *WeaponStats
	contents *Contents
}

// Option customises an Item at construction.
type Option func(*Item)

// WithValue sets the trade value.
func WithValue(v int) Option { return func(it *Item) { it.value = Some(v) } }

// WithUses sets the remaining uses.
func WithUses(n int) Option { return func(it *Item) { it.uses = Some(n) } }

// WithWeight sets the carried weight.
func WithWeight(w int) Option { return func(it *Item) { it.weight = Some(w) } }

// NewItem creates an item instance with a fresh identity.
//
// Postcondition: ID() is unique among all items created by this process.
func NewItem(name string, category Category, rank Rank, opts ...Option) *Item {
	it := &Item{
		id:       uuid.New().String(),
		name:     name,
		category: category,
		rank:     rank,
	}
	for _, o := range opts {
		o(it)
	}
	return it
}

func (it *Item) ID() string         { return it.id }
func (it *Item) Name() string       { return it.name }
func (it *Item) Category() Category { return it.category }
func (it *Item) Rank() Rank         { return it.rank }
func (it *Item) Value() Opt[int]    { return it.value }
func (it *Item) Uses() Opt[int]     { return it.uses }
func (it *Item) Weight() Opt[int]   { return it.weight }

// Is reports whether it and other are the same instance.
func (it *Item) Is(other *Item) bool {
	return it != nil && other != nil && it.id == other.id
}

// TotalWeight returns the item's own weight plus anything it contains.
// Absent weights count as zero.
func (it *Item) TotalWeight() int {
	if it == nil {
		return 0
	}
	w := it.weight.Or(0)
	if it.contents != nil {
		w += it.contents.Weight()
	}
	return w
}

// Use consumes one use. Items without a use count cannot be used.
//
// Postcondition: returns false, with no change, when uses are absent or exhausted.
func (it *Item) Use() bool {
	n, ok := it.uses.Get()
	if !ok || n <= 0 {
		return false
	}
	it.uses = Some(n - 1)
	return true
}

func (it *Item) String() string {
	return fmt.Sprintf("%s (%s, %s)", it.name, it.category, it.rank)
}
