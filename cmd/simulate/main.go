// Package main runs a duel between two characters and prints the rankings
// and achievements that came out of it.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cory-johannsen/charsim/internal/config"
	"github.com/cory-johannsen/charsim/internal/observability"
	"github.com/cory-johannsen/charsim/internal/storage/postgres"
)

func main() {
	start := time.Now()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	contentDir := flag.String("content", "", "content root holding weapons/, skills.yaml and achievements.yaml; overrides the config")
	rounds := flag.Int("rounds", 0, "round limit for the duel; 0 keeps the configured value")
	persist := flag.Bool("persist", false, "save character sheets to the database")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	applyFlags(&cfg, *contentDir, *rounds, *persist)

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var reg prometheus.Registerer
	if cfg.Simulation.MetricsAddr != "" {
		reg = prometheus.DefaultRegisterer
		srv := &http.Server{Addr: cfg.Simulation.MetricsAddr, Handler: promhttp.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server", zap.Error(err))
			}
		}()
		defer func() { _ = srv.Shutdown(context.Background()) }()
		logger.Info("serving metrics", zap.String("addr", cfg.Simulation.MetricsAddr))
	}

	sim, err := newSimulation(cfg, reg, logger)
	if err != nil {
		logger.Fatal("building simulation", zap.Error(err))
	}
	rep, err := sim.run(ctx)
	if err != nil {
		logger.Fatal("running simulation", zap.Error(err))
	}
	writeReport(os.Stdout, rep)

	if cfg.Simulation.Persist {
		if err := persistSheets(ctx, cfg.Database, rep, logger); err != nil {
			logger.Fatal("persisting sheets", zap.Error(err))
		}
	}

	logger.Info("simulation complete", zap.Duration("elapsed", time.Since(start)))
}

// applyFlags overlays command-line values onto cfg. Zero values leave the
// configured settings alone.
func applyFlags(cfg *config.Config, contentDir string, rounds int, persist bool) {
	if contentDir != "" {
		cfg.Content.WeaponsDir = filepath.Join(contentDir, "weapons")
		cfg.Content.SkillsFile = filepath.Join(contentDir, "skills.yaml")
		cfg.Content.AchievementsFile = filepath.Join(contentDir, "achievements.yaml")
	}
	if rounds > 0 {
		cfg.Simulation.Rounds = rounds
	}
	if persist {
		cfg.Simulation.Persist = true
	}
}

func persistSheets(ctx context.Context, dbCfg config.DatabaseConfig, rep report, logger *zap.Logger) error {
	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	run := uuid.New()
	repo := pool.Sheets()
	if err := repo.SaveAll(ctx, run, rep.Sheets()); err != nil {
		return err
	}
	logger.Info("sheets saved", zap.Stringer("run", run), zap.Int("count", len(rep.Fighters)))
	return nil
}
