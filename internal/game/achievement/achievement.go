// Package achievement awards milestones by watching character events.
package achievement

import (
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/charsim/internal/game/event"
	"github.com/cory-johannsen/charsim/internal/validate"
)

// Metric names a per-character counter fed by events.
type Metric string

const (
	// MetricDamageDealt sums damage that got through to targets.
	MetricDamageDealt Metric = "damage_dealt"
	// MetricKills counts targets killed.
	MetricKills Metric = "kills"
	// MetricDeaths counts deaths.
	MetricDeaths Metric = "deaths"
	// MetricLevel holds the highest level reached.
	MetricLevel Metric = "level"
	// MetricBlocks counts fully absorbed hits.
	MetricBlocks Metric = "blocks"
)

// Def is one achievement: reached when Metric >= Threshold.
type Def struct {
	ID          string `yaml:"id" validate:"required"`
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description"`
	Metric      Metric `yaml:"metric" validate:"required,oneof=damage_dealt kills deaths level blocks"`
	Threshold   int    `yaml:"threshold" validate:"gte=1"`
}

// DefaultDefs returns the stock achievements.
func DefaultDefs() []Def {
	return []Def{
		{ID: "first_blood", Name: "First Blood", Description: "Kill an opponent.", Metric: MetricKills, Threshold: 1},
		{ID: "slayer", Name: "Slayer", Description: "Kill ten opponents.", Metric: MetricKills, Threshold: 10},
		{ID: "bruiser", Name: "Bruiser", Description: "Deal 100 damage.", Metric: MetricDamageDealt, Threshold: 100},
		{ID: "wrecker", Name: "Wrecker", Description: "Deal 1000 damage.", Metric: MetricDamageDealt, Threshold: 1000},
		{ID: "veteran", Name: "Veteran", Description: "Reach level 5.", Metric: MetricLevel, Threshold: 5},
		{ID: "stonewall", Name: "Stonewall", Description: "Absorb 10 hits.", Metric: MetricBlocks, Threshold: 10},
		{ID: "back_again", Name: "Back Again", Description: "Die for the first time.", Metric: MetricDeaths, Threshold: 1},
	}
}

type defsFile struct {
	Achievements []Def `yaml:"achievements"`
}

// LoadDefs reads achievements from a YAML file with a top-level
// "achievements" list.
func LoadDefs(path string) ([]Def, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("achievement: LoadDefs: %w", err)
	}
	var f defsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("achievement: LoadDefs: parsing %s: %w", path, err)
	}
	seen := make(map[string]bool, len(f.Achievements))
	for _, d := range f.Achievements {
		if err := validate.Struct(d); err != nil {
			return nil, fmt.Errorf("achievement: LoadDefs: %s: %w", d.ID, err)
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("achievement: LoadDefs: duplicate id %q", d.ID)
		}
		seen[d.ID] = true
	}
	return f.Achievements, nil
}

// Unlock records one achievement earned by one character.
type Unlock struct {
	CharacterID int64
	Character   string
	Def         Def
	At          time.Time
}

type progress struct {
	name     string
	metrics  map[Metric]int
	unlocked []Unlock
}

// Tracker keeps per-character metrics and unlocks achievements as events
// arrive. It is safe for concurrent use.
type Tracker struct {
	defs   []Def
	logger *zap.Logger

	mu    sync.Mutex
	chars map[int64]*progress
}

// NewTracker returns a Tracker for defs.
func NewTracker(defs []Def, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{defs: slices.Clone(defs), logger: logger, chars: make(map[int64]*progress)}
}

// Types lists the event types the tracker consumes.
func Types() []event.Type {
	return []event.Type{event.DamageDealt, event.LevelUp, event.CharacterDied, event.AttackBlocked}
}

// Attach subscribes the tracker to bus.
func (t *Tracker) Attach(bus *event.Bus) *event.Subscription {
	return bus.Subscribe(t.Handle, event.ForTypes(Types()...))
}

// Handle updates metrics from e and unlocks any achievement newly reached.
// It satisfies event.Handler.
func (t *Tracker) Handle(e event.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := t.chars[e.ActorID]
	if p == nil {
		p = &progress{name: e.Actor, metrics: make(map[Metric]int)}
		t.chars[e.ActorID] = p
	}

	switch e.Type {
	case event.DamageDealt:
		p.metrics[MetricDamageDealt] += e.Int(event.KeyAmount)
		if e.Bool(event.KeyKilled) {
			p.metrics[MetricKills]++
		}
	case event.LevelUp:
		p.metrics[MetricLevel] = max(p.metrics[MetricLevel], e.Int(event.KeyLevel))
	case event.CharacterDied:
		p.metrics[MetricDeaths]++
	case event.AttackBlocked:
		p.metrics[MetricBlocks]++
	default:
		return nil
	}

	for _, d := range t.defs {
		if p.metrics[d.Metric] < d.Threshold || p.has(d.ID) {
			continue
		}
		u := Unlock{CharacterID: e.ActorID, Character: p.name, Def: d, At: e.At}
		p.unlocked = append(p.unlocked, u)
		t.logger.Info("achievement unlocked",
			zap.Int64("character_id", e.ActorID),
			zap.String("character", p.name),
			zap.String("achievement", d.ID),
		)
	}
	return nil
}

func (p *progress) has(id string) bool {
	return slices.ContainsFunc(p.unlocked, func(u Unlock) bool { return u.Def.ID == id })
}

// Unlocked returns the achievements earned by a character, in unlock order.
func (t *Tracker) Unlocked(characterID int64) []Unlock {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p := t.chars[characterID]; p != nil {
		return slices.Clone(p.unlocked)
	}
	return nil
}

// Progress returns the current value of m for a character.
func (t *Tracker) Progress(characterID int64, m Metric) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p := t.chars[characterID]; p != nil {
		return p.metrics[m]
	}
	return 0
}
