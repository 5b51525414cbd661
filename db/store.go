package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/padraicbc/hoopsrank/engine"
	"github.com/padraicbc/hoopsrank/models"
	"github.com/padraicbc/hoopsrank/schedule"
)

const batchSize = 500

// Store reads the season snapshot and commits rating runs.
type Store struct {
	db *bun.DB
}

// NewStore wraps db.
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// Teams returns the league's teams plus every non-member opponent.
func (s *Store) Teams(ctx context.Context, league string) ([]schedule.Team, error) {
	var rows []models.Team
	err := s.db.NewSelect().Model(&rows).
		Where("t.league = ? OR NOT t.member", league).
		OrderExpr("t.team_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]schedule.Team, len(rows))
	for i, r := range rows {
		out[i] = toTeam(r)
	}
	return out, nil
}

// Games returns every stored game of the league and season, eligible or not.
func (s *Store) Games(ctx context.Context, league string, season int) ([]schedule.Game, error) {
	var rows []models.Game
	err := s.db.NewSelect().Model(&rows).
		Where("g.league = ?", league).
		Where("g.season = ?", season).
		OrderExpr("g.date ASC, g.game_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]schedule.Game, 0, len(rows))
	for _, r := range rows {
		g, err := toGame(r)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// Commit replaces the league+season's derived rows with res in one
// transaction. Readers see either the previous run or this one, never a mix.
func (s *Store) Commit(ctx context.Context, res *engine.Result) error {
	run, err := runRow(res)
	if err != nil {
		return fmt.Errorf("encode warnings: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NewInsert().Model(run).Returning("run_id").Exec(ctx); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, model := range []interface{}{
		(*models.TeamRating)(nil),
		(*models.ConferenceRating)(nil),
		(*models.BracketSeed)(nil),
		(*models.PodSlot)(nil),
	} {
		_, err := tx.NewDelete().Model(model).
			Where("league = ?", res.League).
			Where("season = ?", res.Season).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}

	seeds, slots := bracketRows(res, run.RunID)
	if err := insertBatches(ctx, tx, ratingRows(res, run.RunID)); err != nil {
		return fmt.Errorf("insert team ratings: %w", err)
	}
	if err := insertBatches(ctx, tx, conferenceRows(res, run.RunID)); err != nil {
		return fmt.Errorf("insert conference ratings: %w", err)
	}
	if err := insertBatches(ctx, tx, seeds); err != nil {
		return fmt.Errorf("insert bracket seeds: %w", err)
	}
	if err := insertBatches(ctx, tx, slots); err != nil {
		return fmt.Errorf("insert pod slots: %w", err)
	}

	return tx.Commit()
}

func insertBatches[T any](ctx context.Context, tx bun.Tx, rows []T) error {
	for start := 0; start < len(rows); start += batchSize {
		batch := rows[start:min(start+batchSize, len(rows))]
		if _, err := tx.NewInsert().Model(&batch).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
