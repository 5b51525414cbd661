// cmd/migrate/main.go
// Imports teams and one season of games from the scraper's MySQL database into
// the local PostgreSQL database. Re-runs refresh scores of existing games.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/scraper?parseTime=true" \
//	IMPORT_SEASON=2025 IMPORT_LEAGUE=women DB_PASS="pgpass" \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/padraicbc/hoopsrank/config"
	bundb "github.com/padraicbc/hoopsrank/db"
	"github.com/padraicbc/hoopsrank/models"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg := config.LoadImport()

	// --- MySQL ---
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB := bundb.Setup(cfg.Postgres())
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"teams", func() (int, error) { return migrateTeams(ctx, myDB, pgDB) }},
		{"games", func() (int, error) { return migrateGames(ctx, myDB, pgDB, cfg.League, cfg.Season) }},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			log.Fatalf("migrate %s: %v", s.name, err)
		}
		log.Printf("%-8s  %d rows migrated", s.name, n)
	}

	resetSequences(ctx, pgDB)
	log.Printf("import complete: league=%s season=%d", cfg.League, cfg.Season)
}

// bulkInsert inserts a batch; conflict is the ON clause applied to duplicates.
func bulkInsert[T any](ctx context.Context, pgDB *bun.DB, rows []T, conflict string) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := pgDB.NewInsert().Model(&rows).On(conflict).Exec(ctx)
	return err
}

func migrateTeams(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		"SELECT id, name, conference, league, member, lat, lon FROM teams")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	const conflict = `CONFLICT (team_id) DO UPDATE SET
		name = EXCLUDED.name, conference = EXCLUDED.conference,
		member = EXCLUDED.member, lat = EXCLUDED.lat, lon = EXCLUDED.lon`

	var batch []models.Team
	total := 0
	for rows.Next() {
		var r scraperTeam
		if err := rows.Scan(&r.ID, &r.Name, &r.Conference, &r.League, &r.Member, &r.Lat, &r.Lon); err != nil {
			return total, err
		}
		batch = append(batch, r.model())
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch, conflict); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch, conflict); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

const gamesSQL = `
SELECT
	g.id, g.game_date, g.home_id, g.away_id, g.home_score, g.away_score,
	g.neutral, g.conference_game, g.postseason, g.exhibition, g.naia, g.status,
	hb.fgm, hb.fga, hb.fg3m, hb.fg3a, hb.ftm, hb.fta, hb.oreb, hb.dreb, hb.tov,
	ab.fgm, ab.fga, ab.fg3m, ab.fg3a, ab.ftm, ab.fta, ab.oreb, ab.dreb, ab.tov
FROM games g
LEFT JOIN box_scores hb ON hb.game_id = g.id AND hb.team_id = g.home_id
LEFT JOIN box_scores ab ON ab.game_id = g.id AND ab.team_id = g.away_id
WHERE g.league = ? AND g.season = ?
ORDER BY g.game_date, g.id
`

func migrateGames(ctx context.Context, myDB *sql.DB, pgDB *bun.DB, league string, season int) (int, error) {
	rows, err := myDB.QueryContext(ctx, gamesSQL, league, season)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	const conflict = `CONFLICT (game_id) DO UPDATE SET
		team_score = EXCLUDED.team_score, opp_score = EXCLUDED.opp_score,
		completed = EXCLUDED.completed, is_exhibition = EXCLUDED.is_exhibition,
		team_fgm = EXCLUDED.team_fgm, team_fga = EXCLUDED.team_fga,
		team_fg3m = EXCLUDED.team_fg3m, team_fg3a = EXCLUDED.team_fg3a,
		team_ftm = EXCLUDED.team_ftm, team_fta = EXCLUDED.team_fta,
		team_oreb = EXCLUDED.team_oreb, team_dreb = EXCLUDED.team_dreb, team_tov = EXCLUDED.team_tov,
		opp_fgm = EXCLUDED.opp_fgm, opp_fga = EXCLUDED.opp_fga,
		opp_fg3m = EXCLUDED.opp_fg3m, opp_fg3a = EXCLUDED.opp_fg3a,
		opp_ftm = EXCLUDED.opp_ftm, opp_fta = EXCLUDED.opp_fta,
		opp_oreb = EXCLUDED.opp_oreb, opp_dreb = EXCLUDED.opp_dreb, opp_tov = EXCLUDED.opp_tov`

	var batch []models.Game
	total := 0
	for rows.Next() {
		var r scraperGame
		if err := rows.Scan(&r.ID, &r.Date, &r.HomeID, &r.AwayID, &r.HomeScore, &r.AwayScore,
			&r.Neutral, &r.Conference, &r.Postseason, &r.Exhibition, &r.NAIA, &r.Status,
			&r.Home.FGM, &r.Home.FGA, &r.Home.FG3M, &r.Home.FG3A, &r.Home.FTM, &r.Home.FTA,
			&r.Home.OREB, &r.Home.DREB, &r.Home.TOV,
			&r.Away.FGM, &r.Away.FGA, &r.Away.FG3M, &r.Away.FG3A, &r.Away.FTM, &r.Away.FTA,
			&r.Away.OREB, &r.Away.DREB, &r.Away.TOV); err != nil {
			return total, err
		}
		batch = append(batch, r.model(league, season))
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch, conflict); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch, conflict); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

// resetSequences advances each PG sequence to MAX(id) so new inserts don't conflict.
func resetSequences(ctx context.Context, pgDB *bun.DB) {
	seqs := []struct{ seq, table, col string }{
		{"teams_team_id_seq", "teams", "team_id"},
		{"games_game_id_seq", "games", "game_id"},
	}
	for _, s := range seqs {
		q := fmt.Sprintf(
			"SELECT setval('%s', COALESCE((SELECT MAX(%s) FROM %s), 1))",
			s.seq, s.col, s.table,
		)
		if _, err := pgDB.ExecContext(ctx, q); err != nil {
			log.Printf("reset seq %s: %v", s.seq, err)
		}
	}
	log.Println("sequences reset")
}
