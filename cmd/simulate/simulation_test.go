package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/charsim/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.LoadFromViper(config.New())
	require.NoError(t, err)
	cfg.Simulation.Seed = 7
	return cfg
}

func TestLoadContent_ShippedFiles(t *testing.T) {
	cfg := testConfig(t)
	applyFlags(&cfg, "../../content", 0, false)

	skills, weapons, defs, err := loadContent(cfg.Content)
	require.NoError(t, err)
	assert.NotNil(t, skills)
	assert.True(t, weapons.Weapon(bruteWeapon).IsWeapon())
	assert.Equal(t, 13, weapons.Len())
	assert.Len(t, defs, 7)
}

func TestLoadContent_MissingFile(t *testing.T) {
	_, _, _, err := loadContent(config.ContentConfig{SkillsFile: "/nonexistent/skills.yaml"})
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	cfg := testConfig(t)
	applyFlags(&cfg, "", 0, false)
	assert.Equal(t, 50, cfg.Simulation.Rounds)
	assert.False(t, cfg.Simulation.Persist)
	assert.Empty(t, cfg.Content.WeaponsDir)

	applyFlags(&cfg, "/srv/content", 3, true)
	assert.Equal(t, 3, cfg.Simulation.Rounds)
	assert.True(t, cfg.Simulation.Persist)
	assert.Equal(t, "/srv/content/weapons", cfg.Content.WeaponsDir)
	assert.Equal(t, "/srv/content/achievements.yaml", cfg.Content.AchievementsFile)
}

func TestSimulation_Run(t *testing.T) {
	cfg := testConfig(t)
	reg := prometheus.NewRegistry()
	sim, err := newSimulation(cfg, reg, zaptest.NewLogger(t))
	require.NoError(t, err)

	rep, err := sim.run(context.Background())
	require.NoError(t, err)

	require.Len(t, rep.Fighters, 2)
	assert.GreaterOrEqual(t, rep.Outcome.Rounds, 1)
	assert.LessOrEqual(t, rep.Outcome.Rounds, cfg.Simulation.Rounds)
	for _, c := range rep.Fighters {
		assert.False(t, c.IsDead(), "%s should have respawned", c.Name())
		assert.GreaterOrEqual(t, c.Level(), 1)
	}
	assert.Equal(t, "Greataxe", rep.Fighters[0].Weapon().Name())
	assert.Equal(t, "critical_magic", rep.Fighters[1].Strategy().Kind().String())

	n, err := testutil.GatherAndCount(reg, "charsim_events_total")
	require.NoError(t, err)
	assert.Greater(t, n, 0)
	assert.Len(t, rep.Sheets(), 2)

	var buf bytes.Buffer
	writeReport(&buf, rep)
	out := buf.String()
	assert.Contains(t, out, "Fist ranking")
	assert.Contains(t, out, "Shielding ranking")
	assert.Contains(t, out, "Creature: Mage")
	assert.Contains(t, out, "Achievements")
}
