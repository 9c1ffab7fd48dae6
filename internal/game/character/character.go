// Package character implements the Character aggregate: resource pools,
// experience and magic progression, skill training, equipment and attack
// resolution, tied together and reported through domain events.
package character

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/cory-johannsen/charsim/internal/game/combat"
	"github.com/cory-johannsen/charsim/internal/game/event"
	"github.com/cory-johannsen/charsim/internal/game/heritable"
	"github.com/cory-johannsen/charsim/internal/game/inventory"
	"github.com/cory-johannsen/charsim/internal/game/progression"
	"github.com/cory-johannsen/charsim/internal/game/resource"
	"github.com/cory-johannsen/charsim/internal/game/skill"
)

// lastID is the process-wide identity counter. IDs start at 1.
var lastID atomic.Int64

// Character is one actor: a player or a creature.
//
// A Character is not safe for concurrent use; callers that share one across
// goroutines must serialize access.
//
// Invariant: Level() == 1 + len(growth); 0 <= CurrentHealth() <= MaxHealth();
// IsDead() implies CurrentHealth() == 0 until Respawn.
type Character struct {
	id     int64
	name   string
	role   Role
	env    *Environment
	logger *zap.Logger

	experience progression.Track
	magic      progression.Track

	health   resource.Pool
	mana     resource.Pool
	capacity resource.Capacity
	speed    resource.Speed
	base     resource.Stats
	growth   []resource.Stats
	maxima   resource.Stats

	skills     *skill.Trainer
	heritables heritable.Set
	inventory  *inventory.Inventory
	strategy   combat.Strategy
	dead       bool
}

// Option customizes a Character at construction.
type Option func(*options)

type options struct {
	heritables *heritable.Set
	role       Role
	strategy   combat.Strategy
}

// WithHeritables fixes the heritable attributes instead of rolling them.
func WithHeritables(h heritable.Set) Option {
	return func(o *options) { o.heritables = &h }
}

// WithRole sets the role used for ranking lines. The default is PlayerRole.
func WithRole(r Role) Option {
	return func(o *options) { o.role = r }
}

// WithStrategy sets the initial attack strategy. The default is melee.
// The strategy instance must not be shared with another character.
func WithStrategy(s combat.Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// New creates a level 1 character with full resources, bare fists and a
// fresh identity. Heritables are rolled at random unless WithHeritables is
// given. A nil env uses DefaultEnvironment.
//
// Postcondition: ID() is unique for the process lifetime.
func New(name string, env *Environment, opts ...Option) *Character {
	env = env.complete()
	o := options{role: PlayerRole{}}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Character{
		id:         lastID.Add(1),
		name:       name,
		role:       o.role,
		env:        env,
		experience: progression.NewTrack(progression.Experience),
		magic:      progression.NewTrack(env.magicCurve()),
		skills:     skill.NewTrainer(env.Skills),
		inventory:  inventory.New(),
		strategy:   o.strategy,
	}
	c.logger = env.Logger.With(zap.Int64("character_id", c.id), zap.String("character", name))

	if o.heritables != nil {
		c.heritables = *o.heritables
	} else {
		c.heritables = heritable.Random(env.Roller.Source())
	}
	if c.role == nil {
		c.role = PlayerRole{}
	}
	if c.strategy == nil {
		c.strategy = combat.NewMelee(env.Rules.Combat.Melee, env.Roller)
	}

	c.base = resource.Baseline(env.Rules.Base, c.heritables)
	c.maxima = c.base
	c.health = resource.NewPool(c.base.Health)
	c.mana = resource.NewPool(c.base.Mana)
	c.capacity = resource.NewCapacity(c.base.Capacity)
	c.speed = resource.NewSpeed(c.base.Speed)
	c.ensureWeapon()
	c.recomputeLoad()
	return c
}

// NewDescendant creates a character whose heritables are inherited from
// father and mother, with occasional mutation.
//
// Precondition: father and mother are non-nil.
func NewDescendant(name string, father, mother *Character, env *Environment, opts ...Option) (*Character, error) {
	if father == nil || mother == nil {
		return nil, fmt.Errorf("character: NewDescendant: %s needs two parents", name)
	}
	env = env.complete()
	h := heritable.Inherit(father.heritables, mother.heritables, env.Roller.Source())
	return New(name, env, append([]Option{WithHeritables(h)}, opts...)...), nil
}

// ID returns the identity assigned at construction.
func (c *Character) ID() int64 { return c.id }

// Name returns the character name.
func (c *Character) Name() string { return c.name }

// Role returns the ranking role.
func (c *Character) Role() Role { return c.role }

// Level returns the character level.
func (c *Character) Level() int { return c.experience.Level() }

// Experience returns the accumulated experience.
func (c *Character) Experience() uint64 { return c.experience.Ledger().Current() }

// NextLevelExperience returns the experience needed to reach the next level.
func (c *Character) NextLevelExperience() uint64 { return c.experience.Ledger().Threshold() }

// MagicLevel returns the magic level.
func (c *Character) MagicLevel() int { return c.magic.Level() }

// ManaSpent returns the mana consumed towards magic levels.
func (c *Character) ManaSpent() uint64 { return c.magic.Ledger().Current() }

func (c *Character) CurrentHealth() int { return c.health.Current() }
func (c *Character) MaxHealth() int     { return c.health.Max() }
func (c *Character) CurrentMana() int   { return c.mana.Current() }
func (c *Character) MaxMana() int       { return c.mana.Max() }

// Capacity returns the remaining carry capacity.
func (c *Character) Capacity() int { return c.capacity.Current() }

// MaxCapacity returns the carry capacity with nothing carried.
func (c *Character) MaxCapacity() int { return c.capacity.Max() }

// Speed returns the current speed after load.
func (c *Character) Speed() int { return c.speed.Current() }

// BaseSpeed returns the speed with nothing carried.
func (c *Character) BaseSpeed() int { return c.speed.Base() }

// IsDead reports whether the character died and has not respawned.
func (c *Character) IsDead() bool { return c.dead }

// Skill returns the level of cat; 0 for skill.None.
func (c *Character) Skill(cat skill.Category) int { return c.skills.Level(cat) }

// SkillTries returns the tries recorded towards the next level of cat.
func (c *Character) SkillTries(cat skill.Category) int { return c.skills.Tries(cat) }

// Heritable returns the value of attribute a.
func (c *Character) Heritable(a heritable.Attribute) int { return c.heritables.Get(a) }

// Heritables returns every heritable attribute.
func (c *Character) Heritables() heritable.Set { return c.heritables }

// Strategy returns the current attack strategy.
func (c *Character) Strategy() combat.Strategy { return c.strategy }

// SetStrategy swaps the attack strategy. A nil strategy is ignored.
func (c *Character) SetStrategy(s combat.Strategy) {
	if s == nil {
		c.logger.Warn("ignoring nil strategy")
		return
	}
	c.strategy = s
	c.publish(event.StrategyChanged, event.KeyStrategy, s.Kind().String())
}

// UseStrategy swaps to a fresh strategy of the given kind built from the
// environment rules.
func (c *Character) UseStrategy(kind combat.Kind) error {
	s, err := combat.New(kind, c.env.Rules.Combat, c.env.Roller)
	if err != nil {
		return fmt.Errorf("character: UseStrategy: %w", err)
	}
	c.SetStrategy(s)
	return nil
}

func (c *Character) String() string {
	return fmt.Sprintf("%s (#%d, level %d)", c.name, c.id, c.Level())
}

func (c *Character) publish(t event.Type, kv ...any) {
	c.env.Events.Publish(event.New(t, c.id, c.name, kv...))
}

// ignored logs an invalid amount passed to op.
func (c *Character) ignored(op string, amount int) {
	c.logger.Warn("ignoring non-positive amount", zap.String("op", op), zap.Int("amount", amount))
}
