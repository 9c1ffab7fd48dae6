package resource

import (
	"github.com/cory-johannsen/charsim/internal/game/dice"
	"github.com/cory-johannsen/charsim/internal/game/heritable"
)

// Stats groups one number per resource, in growth order: health, mana,
// capacity, speed. It is used for base maxima, per-level growth and totals.
type Stats struct {
	Health   int `mapstructure:"health"`
	Mana     int `mapstructure:"mana"`
	Capacity int `mapstructure:"capacity"`
	Speed    int `mapstructure:"speed"`
}

// Add returns the element-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Health:   s.Health + o.Health,
		Mana:     s.Mana + o.Mana,
		Capacity: s.Capacity + o.Capacity,
		Speed:    s.Speed + o.Speed,
	}
}

// Sub returns the element-wise difference s − o.
func (s Stats) Sub(o Stats) Stats {
	return Stats{
		Health:   s.Health - o.Health,
		Mana:     s.Mana - o.Mana,
		Capacity: s.Capacity - o.Capacity,
		Speed:    s.Speed - o.Speed,
	}
}

// GrowthRules controls how much each maximum grows on level-up.
type GrowthRules struct {
	HealthDie   int `mapstructure:"health_die"`
	ManaDie     int `mapstructure:"mana_die"`
	CapacityDie int `mapstructure:"capacity_die"`
	SpeedDie    int `mapstructure:"speed_die"`
	// LevelStep is the number of levels after which the die result counts
	// one more time.
	LevelStep int `mapstructure:"level_step"`
}

// DefaultGrowthRules returns the stock growth dice.
func DefaultGrowthRules() GrowthRules {
	return GrowthRules{HealthDie: 10, ManaDie: 6, CapacityDie: 10, SpeedDie: 2, LevelStep: 10}
}

// DefaultBase returns the stock level-1 maxima before heritable contribution.
func DefaultBase() Stats {
	return Stats{Health: 100, Mana: 50, Capacity: 100, Speed: 100}
}

// Contribution returns the heritable bonus for each resource: constitution
// for health, intelligence for mana, strength plus constitution for capacity
// and strength minus constitution for speed.
func Contribution(h heritable.Set) Stats {
	str := h.Get(heritable.Strength)
	con := h.Get(heritable.Constitution)
	return Stats{
		Health:   con / 10,
		Mana:     h.Get(heritable.Intelligence) / 10,
		Capacity: (str + con) / 10,
		Speed:    (str - con) / 10,
	}
}

// Baseline returns the level-1 maxima for a character with heritables h.
func Baseline(base Stats, h heritable.Set) Stats {
	return base.Add(Contribution(h))
}

// Roll computes the growth for reaching newLevel. Dice are rolled for
// health, mana, capacity and speed in that order.
//
// Precondition: roller is non-nil; newLevel >= 2.
func (r GrowthRules) Roll(newLevel int, h heritable.Set, roller *dice.Roller) Stats {
	scale := 1
	if r.LevelStep > 0 {
		scale += newLevel / r.LevelStep
	}
	c := Contribution(h)
	return Stats{
		Health:   c.Health + roller.Die(r.HealthDie)*scale,
		Mana:     c.Mana + roller.Die(r.ManaDie)*scale,
		Capacity: c.Capacity + roller.Die(r.CapacityDie)*scale,
		Speed:    c.Speed + roller.Die(r.SpeedDie)*scale,
	}
}

// Total returns base plus every growth entry in history.
func Total(base Stats, history []Stats) Stats {
	total := base
	for _, g := range history {
		total = total.Add(g)
	}
	return total
}
