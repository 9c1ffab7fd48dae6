package character

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/charsim/internal/game/combat"
	"github.com/cory-johannsen/charsim/internal/game/dice"
	"github.com/cory-johannsen/charsim/internal/game/event"
	"github.com/cory-johannsen/charsim/internal/game/inventory"
	"github.com/cory-johannsen/charsim/internal/game/progression"
	"github.com/cory-johannsen/charsim/internal/game/resource"
	"github.com/cory-johannsen/charsim/internal/game/skill"
)

// DefaultDeathPenaltyPercent is the share of experience lost on death.
const DefaultDeathPenaltyPercent = 25

// Rules holds every tunable number a character consults.
type Rules struct {
	Base                resource.Stats         `mapstructure:"base"`
	Growth              resource.GrowthRules   `mapstructure:"growth"`
	DeathPenaltyPercent int                    `mapstructure:"death_penalty_percent"`
	MagicCurve          progression.MagicCurve `mapstructure:"magic_curve"`
	Combat              combat.Rules           `mapstructure:"combat"`
}

// DefaultRules returns the stock rules.
func DefaultRules() Rules {
	return Rules{
		Base:                resource.DefaultBase(),
		Growth:              resource.DefaultGrowthRules(),
		DeathPenaltyPercent: DefaultDeathPenaltyPercent,
		MagicCurve:          progression.MagicCurveLinear,
		Combat:              combat.DefaultRules(),
	}
}

// Validate reports every rule that would break a character invariant.
//
// Postcondition: returns nil iff every rule is usable.
func (r Rules) Validate() error {
	var errs []error
	if r.Base.Health < 1 {
		errs = append(errs, errors.New("base.health must be >= 1"))
	}
	if r.Base.Mana < 0 {
		errs = append(errs, errors.New("base.mana must be >= 0"))
	}
	if r.Base.Capacity < 0 {
		errs = append(errs, errors.New("base.capacity must be >= 0"))
	}
	if r.Base.Speed < 1 {
		errs = append(errs, errors.New("base.speed must be >= 1"))
	}
	g := r.Growth
	if g.HealthDie < 0 || g.ManaDie < 0 || g.CapacityDie < 0 || g.SpeedDie < 0 {
		errs = append(errs, errors.New("growth dice must be >= 0"))
	}
	if g.LevelStep < 0 {
		errs = append(errs, errors.New("growth.level_step must be >= 0"))
	}
	if r.DeathPenaltyPercent < 0 || r.DeathPenaltyPercent > 100 {
		errs = append(errs, fmt.Errorf("death_penalty_percent must be in [0, 100], got %d", r.DeathPenaltyPercent))
	}
	if _, err := r.MagicCurve.Curve(); err != nil {
		errs = append(errs, err)
	}
	if err := r.Combat.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Environment carries the process-lifetime collaborators shared by every
// character: rules, catalogs, dice, the event sink and the logger.
type Environment struct {
	Rules   Rules
	Skills  *skill.Catalog
	Weapons *inventory.Catalog
	Roller  *dice.Roller
	Events  event.Sink
	Logger  *zap.Logger
}

// DefaultEnvironment returns stock rules and catalogs, crypto dice, and
// discards events and logs.
func DefaultEnvironment() *Environment {
	return &Environment{
		Rules:   DefaultRules(),
		Skills:  skill.DefaultCatalog(),
		Weapons: inventory.DefaultCatalog(),
		Roller:  dice.NewLoggedRoller(dice.NewCryptoSource(), nil),
		Events:  event.Discard,
		Logger:  zap.NewNop(),
	}
}

// complete returns env with every nil collaborator replaced by its default.
// Rules that fail Validate, including the zero Rules, are replaced by
// DefaultRules with a warning. env itself is not modified.
func (env *Environment) complete() *Environment {
	if env == nil {
		return DefaultEnvironment()
	}
	rulesErr := env.Rules.Validate()
	if rulesErr == nil && env.Skills != nil && env.Weapons != nil && env.Roller != nil && env.Events != nil && env.Logger != nil {
		return env
	}
	out := *env
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	if rulesErr != nil {
		out.Logger.Warn("invalid rules, using defaults", zap.Error(rulesErr))
		out.Rules = DefaultRules()
	}
	if out.Skills == nil {
		out.Skills = skill.DefaultCatalog()
	}
	if out.Weapons == nil {
		out.Weapons = inventory.DefaultCatalog()
	}
	if out.Roller == nil {
		out.Roller = dice.NewLoggedRoller(dice.NewCryptoSource(), out.Logger)
	}
	if out.Events == nil {
		out.Events = event.Discard
	}
	return &out
}

// magicCurve resolves the configured magic curve, falling back to linear.
func (env *Environment) magicCurve() progression.Curve {
	curve, err := env.Rules.MagicCurve.Curve()
	if err != nil {
		env.Logger.Warn("unknown magic curve, using linear",
			zap.String("magic_curve", string(env.Rules.MagicCurve)), zap.Error(err))
		return progression.ManaLinear
	}
	return curve
}
