package main

import (
	"database/sql"
	"strings"
	"time"

	"github.com/padraicbc/hoopsrank/models"
)

type scraperTeam struct {
	ID         int
	Name       string
	Conference sql.NullString
	League     string
	Member     bool
	Lat        sql.NullFloat64
	Lon        sql.NullFloat64
}

func (t scraperTeam) model() models.Team {
	m := models.Team{
		TeamID:     t.ID,
		Name:       strings.TrimSpace(t.Name),
		Conference: strings.TrimSpace(t.Conference.String),
		League:     t.League,
		Member:     t.Member,
	}
	// both or neither
	if t.Lat.Valid && t.Lon.Valid {
		m.Lat, m.Lon = nullFloat(t.Lat), nullFloat(t.Lon)
	}
	return m
}

// scraperBox is a box-score join; every column is NULL when the game has no box score.
type scraperBox struct {
	FGM, FGA, FG3M, FG3A, FTM, FTA, OREB, DREB, TOV sql.NullInt64
}

// scraperGame is one scraper game row, stored once with home and away sides.
type scraperGame struct {
	ID         int64
	Date       time.Time
	HomeID     int
	AwayID     int
	HomeScore  sql.NullInt64
	AwayScore  sql.NullInt64
	Neutral    bool
	Conference bool
	Postseason bool
	Exhibition bool
	NAIA       bool
	Status     string
	Home       scraperBox
	Away       scraperBox
}

// model stores the game from the home side; neutral-site games use N.
func (g scraperGame) model(league string, season int) models.Game {
	loc := "H"
	if g.Neutral {
		loc = "N"
	}
	completed := strings.EqualFold(g.Status, "final") && g.HomeScore.Valid && g.AwayScore.Valid

	return models.Game{
		GameID:     g.ID,
		League:     league,
		Season:     season,
		Date:       fmtDate(g.Date),
		TeamID:     g.HomeID,
		OpponentID: g.AwayID,
		Location:   loc,
		TeamScore:  int(g.HomeScore.Int64),
		OppScore:   int(g.AwayScore.Int64),

		IsConference: g.Conference,
		IsPostseason: g.Postseason,
		IsExhibition: g.Exhibition,
		IsNAIA:       g.NAIA,
		Completed:    completed,

		TeamFGM: intOf(g.Home.FGM), TeamFGA: intOf(g.Home.FGA),
		TeamFG3M: intOf(g.Home.FG3M), TeamFG3A: intOf(g.Home.FG3A),
		TeamFTM: intOf(g.Home.FTM), TeamFTA: intOf(g.Home.FTA),
		TeamOREB: intOf(g.Home.OREB), TeamDREB: intOf(g.Home.DREB), TeamTOV: intOf(g.Home.TOV),

		OppFGM: intOf(g.Away.FGM), OppFGA: intOf(g.Away.FGA),
		OppFG3M: intOf(g.Away.FG3M), OppFG3A: intOf(g.Away.FG3A),
		OppFTM: intOf(g.Away.FTM), OppFTA: intOf(g.Away.FTA),
		OppOREB: intOf(g.Away.OREB), OppDREB: intOf(g.Away.DREB), OppTOV: intOf(g.Away.TOV),
	}
}

// --- helpers ---

func intOf(n sql.NullInt64) int {
	if !n.Valid {
		return 0
	}
	return int(n.Int64)
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}

func fmtDate(t time.Time) string {
	return t.Format("2006-01-02")
}
