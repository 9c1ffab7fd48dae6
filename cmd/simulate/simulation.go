package main

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/cory-johannsen/charsim/internal/config"
	"github.com/cory-johannsen/charsim/internal/game/achievement"
	"github.com/cory-johannsen/charsim/internal/game/arena"
	"github.com/cory-johannsen/charsim/internal/game/character"
	"github.com/cory-johannsen/charsim/internal/game/combat"
	"github.com/cory-johannsen/charsim/internal/game/dice"
	"github.com/cory-johannsen/charsim/internal/game/event"
	"github.com/cory-johannsen/charsim/internal/game/inventory"
	"github.com/cory-johannsen/charsim/internal/game/progression"
	"github.com/cory-johannsen/charsim/internal/game/skill"
	"github.com/cory-johannsen/charsim/internal/observability"
)

// bruteWeapon is what the melee fighter tries to wield.
const bruteWeapon = "Greataxe"

type simulation struct {
	cfg     config.Config
	env     *character.Environment
	tracker *achievement.Tracker
	logger  *zap.Logger
}

// newSimulation loads the catalogs and wires the event observers. A nil reg
// skips the Prometheus collectors.
func newSimulation(cfg config.Config, reg prometheus.Registerer, logger *zap.Logger) (*simulation, error) {
	skills, weapons, defs, err := loadContent(cfg.Content)
	if err != nil {
		return nil, err
	}

	var src dice.Source
	if cfg.Simulation.Seed != 0 {
		src = dice.NewSeededSource(cfg.Simulation.Seed)
	} else {
		src = dice.NewCryptoSource()
	}

	bus := event.NewBus(logger)
	tracker := achievement.NewTracker(defs, logger)
	tracker.Attach(bus)
	observability.NewCombatLog(logger, cfg.Simulation.Verbose).Attach(bus)
	if reg != nil {
		observability.NewMetrics(reg).Attach(bus)
	}

	return &simulation{
		cfg: cfg,
		env: &character.Environment{
			Rules:   cfg.Rules,
			Skills:  skills,
			Weapons: weapons,
			Roller:  dice.NewLoggedRoller(src, logger),
			Events:  bus,
			Logger:  logger,
		},
		tracker: tracker,
		logger:  logger,
	}, nil
}

// loadContent reads each configured catalog, falling back to the built-in
// table when its path is empty.
func loadContent(c config.ContentConfig) (*skill.Catalog, *inventory.Catalog, []achievement.Def, error) {
	skills := skill.DefaultCatalog()
	if c.SkillsFile != "" {
		var err error
		if skills, err = skill.LoadCatalog(c.SkillsFile); err != nil {
			return nil, nil, nil, fmt.Errorf("loading skills: %w", err)
		}
	}

	weapons := inventory.DefaultCatalog()
	if c.WeaponsDir != "" {
		wdefs, err := inventory.LoadWeapons(c.WeaponsDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("loading weapons: %w", err)
		}
		if weapons, err = inventory.NewCatalog(wdefs...); err != nil {
			return nil, nil, nil, fmt.Errorf("building weapon catalog: %w", err)
		}
	}

	defs := achievement.DefaultDefs()
	if c.AchievementsFile != "" {
		var err error
		if defs, err = achievement.LoadDefs(c.AchievementsFile); err != nil {
			return nil, nil, nil, fmt.Errorf("loading achievements: %w", err)
		}
	}
	return skills, weapons, defs, nil
}

// report is what one simulation produced.
type report struct {
	Outcome  arena.Outcome
	Fighters []*character.Character
	Unlocks  map[int64][]achievement.Unlock
}

// Sheets snapshots every fighter.
func (r report) Sheets() []character.Sheet {
	sheets := make([]character.Sheet, 0, len(r.Fighters))
	for _, c := range r.Fighters {
		sheets = append(sheets, c.Sheet())
	}
	return sheets
}

// run builds a melee brute and a critical-magic caster, starts each at a
// random level, duels them and respawns whoever fell.
func (s *simulation) run(ctx context.Context) (report, error) {
	brute := character.New("Brute", s.env)
	if _, err := brute.EquipNamedWeapon(bruteWeapon); err != nil {
		s.logger.Warn("brute fights unarmed", zap.String("weapon", bruteWeapon), zap.Error(err))
	}
	mage := character.New("Mage", s.env, character.WithRole(character.CreatureRole{}))
	if err := mage.UseStrategy(combat.KindCriticalMagic); err != nil {
		return report{}, err
	}

	fighters := []*character.Character{brute, mage}
	for _, c := range fighters {
		level := s.env.Roller.Die(s.cfg.Simulation.StartLevel)
		c.GainExperience(int(progression.Experience(level)))
	}

	out, err := arena.New(s.env.Roller, s.logger).Duel(ctx, brute, mage, s.cfg.Simulation.Rounds)
	if err != nil {
		return report{}, err
	}
	for _, c := range fighters {
		if c.IsDead() {
			c.Respawn()
		}
	}

	unlocks := make(map[int64][]achievement.Unlock, len(fighters))
	for _, c := range fighters {
		unlocks[c.ID()] = s.tracker.Unlocked(c.ID())
	}
	return report{Outcome: out, Fighters: fighters, Unlocks: unlocks}, nil
}

// writeReport prints the duel result, one ranking per skill and the
// achievements each fighter unlocked.
func writeReport(w io.Writer, r report) {
	if r.Outcome.Winner != nil {
		fmt.Fprintf(w, "%s wins after %d rounds\n", r.Outcome.Winner.Name(), r.Outcome.Rounds)
	} else {
		fmt.Fprintf(w, "no winner after %d rounds\n", r.Outcome.Rounds)
	}
	for _, cat := range skill.Categories {
		fmt.Fprintf(w, "\n%s ranking\n", cat.DisplayName())
		for _, line := range character.Rank(r.Fighters, cat) {
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintln(w, "\nAchievements")
	for _, c := range r.Fighters {
		for _, u := range r.Unlocks[c.ID()] {
			fmt.Fprintf(w, "%s: %s\n", c.Name(), u.Def.Name)
		}
	}
}
