package character

import (
	"github.com/cory-johannsen/charsim/internal/game/inventory"
)

// Sheet is a point-in-time snapshot of a character for display and storage.
type Sheet struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Role        string            `json:"role"`
	Level       int               `json:"level"`
	Experience  uint64            `json:"experience"`
	MagicLevel  int               `json:"magic_level"`
	ManaSpent   uint64            `json:"mana_spent"`
	Health      int               `json:"health"`
	MaxHealth   int               `json:"max_health"`
	Mana        int               `json:"mana"`
	MaxMana     int               `json:"max_mana"`
	Capacity    int               `json:"capacity"`
	MaxCapacity int               `json:"max_capacity"`
	Speed       int               `json:"speed"`
	Strategy    string            `json:"strategy"`
	Dead        bool              `json:"dead"`
	Skills      map[string]int    `json:"skills"`
	Heritables  map[string]int    `json:"heritables"`
	Equipped    map[string]string `json:"equipped"`
}

// Sheet snapshots c.
func (c *Character) Sheet() Sheet {
	equipped := make(map[string]string)
	for s, it := range c.inventory.Equipped() {
		equipped[s.String()] = it.Name()
	}
	if box := c.inventory.Container(); box != nil {
		for _, it := range box.Items() {
			equipped[inventory.SlotContainer.String()+"/"+it.ID()] = it.Name()
		}
	}
	return Sheet{
		ID:          c.id,
		Name:        c.name,
		Role:        c.role.Kind(),
		Level:       c.Level(),
		Experience:  c.Experience(),
		MagicLevel:  c.MagicLevel(),
		ManaSpent:   c.ManaSpent(),
		Health:      c.health.Current(),
		MaxHealth:   c.health.Max(),
		Mana:        c.mana.Current(),
		MaxMana:     c.mana.Max(),
		Capacity:    c.capacity.Current(),
		MaxCapacity: c.capacity.Max(),
		Speed:       c.speed.Current(),
		Strategy:    c.strategy.Kind().String(),
		Dead:        c.dead,
		Skills:      c.skills.Levels(),
		Heritables:  c.heritables.Map(),
		Equipped:    equipped,
	}
}
