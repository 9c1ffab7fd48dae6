// Package config provides Viper-based configuration loading for the simulator.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/charsim/internal/game/character"
)

// EnvPrefix prefixes every environment override, e.g. CHARSIM_LOGGING_LEVEL.
const EnvPrefix = "CHARSIM"

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ContentConfig locates the catalog files. Empty paths fall back to the
// built-in tables.
type ContentConfig struct {
	// WeaponsDir holds one or more weapon YAML files.
	WeaponsDir string `mapstructure:"weapons_dir"`
	// SkillsFile is the skill training table.
	SkillsFile string `mapstructure:"skills_file"`
	// AchievementsFile lists the achievements to track.
	AchievementsFile string `mapstructure:"achievements_file"`
}

// SimulationConfig drives cmd/simulate.
type SimulationConfig struct {
	// Rounds caps the number of rounds per duel.
	Rounds int `mapstructure:"rounds"`
	// StartLevel is the highest level a combatant may start at; each one
	// is granted the experience of a random level in 1..StartLevel.
	StartLevel int `mapstructure:"start_level"`
	// Seed makes dice reproducible; 0 uses crypto randomness.
	Seed uint64 `mapstructure:"seed"`
	// Persist saves character sheets to the database after the duel.
	Persist bool `mapstructure:"persist"`
	// MetricsAddr serves Prometheus metrics when non-empty, e.g. ":9100".
	MetricsAddr string `mapstructure:"metrics_addr"`
	// Verbose logs every combat event, not just deaths and level changes.
	Verbose bool `mapstructure:"verbose"`
}

// Config is the top-level application configuration.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Content    ContentConfig    `mapstructure:"content"`
	Rules      character.Rules  `mapstructure:"rules"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateDatabase(c.Database); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := c.Rules.Validate(); err != nil {
		errs = append(errs, "rules: "+strings.ReplaceAll(err.Error(), "\n", "; "))
	}
	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.Rounds < 1 {
		errs = append(errs, "simulation.rounds must be >= 1")
	}
	if s.StartLevel < 1 {
		errs = append(errs, fmt.Sprintf("simulation.start_level must be >= 1, got %d", s.StartLevel))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// New returns a Viper instance with defaults and environment overrides
// installed but no file read.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
// Values the instance does not set keep their built-in defaults.
//
// Precondition: v must be non-nil.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	cfg := Config{Rules: character.DefaultRules()}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "charsim")
	v.SetDefault("database.password", "charsim")
	v.SetDefault("database.name", "charsim")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("content.weapons_dir", "")
	v.SetDefault("content.skills_file", "")
	v.SetDefault("content.achievements_file", "")

	rules := character.DefaultRules()
	v.SetDefault("rules.death_penalty_percent", rules.DeathPenaltyPercent)
	v.SetDefault("rules.magic_curve", string(rules.MagicCurve))
	v.SetDefault("rules.base.health", rules.Base.Health)
	v.SetDefault("rules.base.mana", rules.Base.Mana)
	v.SetDefault("rules.base.capacity", rules.Base.Capacity)
	v.SetDefault("rules.base.speed", rules.Base.Speed)
	v.SetDefault("rules.growth.health_die", rules.Growth.HealthDie)
	v.SetDefault("rules.growth.mana_die", rules.Growth.ManaDie)
	v.SetDefault("rules.growth.capacity_die", rules.Growth.CapacityDie)
	v.SetDefault("rules.growth.speed_die", rules.Growth.SpeedDie)
	v.SetDefault("rules.growth.level_step", rules.Growth.LevelStep)

	v.SetDefault("simulation.rounds", 50)
	v.SetDefault("simulation.start_level", 10)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.persist", false)
	v.SetDefault("simulation.metrics_addr", "")
	v.SetDefault("simulation.verbose", false)
}
