// cmd/ratings/main.go
// Runs the ratings batch for one season and commits every league.
//
// Usage:
//
//	go run ./cmd/ratings -season 2025
//	go run ./cmd/ratings -season 2025 -league women
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/padraicbc/hoopsrank/config"
	bundb "github.com/padraicbc/hoopsrank/db"
	"github.com/padraicbc/hoopsrank/efficiency"
	"github.com/padraicbc/hoopsrank/engine"
	applog "github.com/padraicbc/hoopsrank/logger"
)

func main() {
	cfg := config.Load()

	season := flag.Int("season", cfg.Ratings.Season, "season to rate (default RATINGS_SEASON)")
	league := flag.String("league", "", "single league to rate (default: every RATINGS_LEAGUES entry)")
	flag.Parse()

	logger, err := applog.New("ratings", cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if *season <= 0 {
		logger.Fatal("season required: pass -season or set RATINGS_SEASON")
	}
	leagues := cfg.Ratings.Leagues
	if *league != "" {
		leagues = []string{*league}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	store := bundb.NewStore(db)
	eng := engine.New(store, store,
		engine.WithLogger(logger),
		engine.WithSolver(efficiency.Options{
			Epsilon:       cfg.Ratings.Epsilon,
			MaxIterations: cfg.Ratings.MaxIterations,
			Relaxation:    cfg.Ratings.Relaxation,
			HomeCourt:     cfg.Ratings.HomeCourt,
		}),
	)

	results, err := eng.RunAll(ctx, leagues, *season)
	for _, res := range results {
		if res == nil {
			continue
		}
		for _, w := range res.Warnings {
			logger.Warn("run warning",
				zap.String("league", res.League),
				zap.String("kind", w.Kind),
				zap.Int("team", w.TeamID),
				zap.String("message", w.Message),
			)
		}
	}
	if err != nil {
		logger.Error("ratings run failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("ratings run complete", zap.Strings("leagues", leagues), zap.Int("season", *season))
}
