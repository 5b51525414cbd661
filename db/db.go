package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/multierr"

	"github.com/padraicbc/hoopsrank/config"
	"github.com/padraicbc/hoopsrank/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// Tables lists every model in dependency order.
func Tables() []interface{} {
	return []interface{}{
		(*models.User)(nil),
		(*models.Team)(nil),
		(*models.Game)(nil),
		(*models.RatingRun)(nil),
		(*models.TeamRating)(nil),
		(*models.ConferenceRating)(nil),
		(*models.BracketSeed)(nil),
		(*models.PodSlot)(nil),
	}
}

// CreateTables creates all tables in dependency order. Index errors are
// collected and returned together after every statement has been tried.
func CreateTables(ctx context.Context, db *bun.DB) error {
	for _, model := range Tables() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS games_league_season ON games (league, season)`,
		`CREATE INDEX IF NOT EXISTS team_ratings_rpi_rank ON team_ratings (league, season, rpi_rank)`,
		`CREATE INDEX IF NOT EXISTS rating_runs_latest ON rating_runs (league, season, finished_at DESC)`,
	}
	var errs error
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("index: %w", err))
		}
	}
	return errs
}
