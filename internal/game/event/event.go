// Package event carries domain events from characters to observers.
package event

import (
	"fmt"
	"time"
)

// Type tags an event.
type Type string

const (
	ExperienceGained   Type = "experience.gained"
	LevelUp            Type = "level.up"
	LevelDown          Type = "level.down"
	MagicLevelUp       Type = "magic_level.up"
	HealthChanged      Type = "health.changed"
	ManaChanged        Type = "mana.changed"
	DamageTaken        Type = "damage.taken"
	DamageDealt        Type = "damage.dealt"
	AttackMissed       Type = "attack.missed"
	AttackBlocked      Type = "attack.blocked"
	CharacterDied      Type = "character.died"
	CharacterRespawned Type = "character.respawned"
	ItemEquipped       Type = "item.equipped"
	ItemDropped        Type = "item.dropped"
	SkillImproved      Type = "skill.improved"
	StrategyChanged    Type = "strategy.changed"
)

// Types lists every event type.
var Types = []Type{
	ExperienceGained, LevelUp, LevelDown, MagicLevelUp, HealthChanged, ManaChanged,
	DamageTaken, DamageDealt, AttackMissed, AttackBlocked, CharacterDied,
	CharacterRespawned, ItemEquipped, ItemDropped, SkillImproved, StrategyChanged,
}

// Payload keys shared by publishers and observers.
const (
	KeyAmount     = "amount"
	KeyBefore     = "before"
	KeyAfter      = "after"
	KeyLevel      = "level"
	KeyTarget     = "target"
	KeyTargetID   = "target_id"
	KeyCritical   = "critical"
	KeySkill      = "skill"
	KeyStrategy   = "strategy"
	KeyItem       = "item"
	KeySlot       = "slot"
	KeyPenalty    = "penalty"
	KeyLevelsLost = "levels_lost"
	KeyKilled     = "killed"
)

// Event is one domain event. Payload holds free-form values keyed by the
// Key constants.
type Event struct {
	Type    Type
	ActorID int64
	Actor   string
	Payload map[string]any
	At      time.Time
}

// New builds an event. kv alternates keys and values; a trailing key
// without a value is ignored.
func New(t Type, actorID int64, actor string, kv ...any) Event {
	e := Event{Type: t, ActorID: actorID, Actor: actor, Payload: make(map[string]any, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		e.Payload[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return e
}

// Int returns an integer payload value; 0 when absent or not numeric.
func (e Event) Int(key string) int {
	switch v := e.Payload[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	default:
		return 0
	}
}

// String returns a payload value rendered as a string; "" when absent.
func (e Event) String(key string) string {
	v, ok := e.Payload[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Bool returns a boolean payload value; false when absent.
func (e Event) Bool(key string) bool {
	b, _ := e.Payload[key].(bool)
	return b
}

// Sink receives events. Publish must not fail the caller.
type Sink interface {
	Publish(e Event)
}

type discard struct{}

func (discard) Publish(Event) {}

// Discard is a Sink that drops every event.
var Discard Sink = discard{}
