package main

import (
	"database/sql"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestScraperTeam(t *testing.T) {
	Convey("Given a scraper team row", t, func() {
		r := scraperTeam{
			ID: 4, Name: " Science & Arts ", League: "women", Member: true,
			Conference: sql.NullString{String: "Sooner", Valid: true},
			Lat:        sql.NullFloat64{Float64: 35.0, Valid: true},
			Lon:        sql.NullFloat64{Float64: -97.9, Valid: true},
		}

		Convey("Names are trimmed and coordinates kept", func() {
			m := r.model()
			So(m.Name, ShouldEqual, "Science & Arts")
			So(m.Conference, ShouldEqual, "Sooner")
			So(*m.Lat, ShouldEqual, 35.0)
			So(*m.Lon, ShouldEqual, -97.9)
		})

		Convey("A lone latitude is dropped", func() {
			r.Lon = sql.NullFloat64{}
			m := r.model()
			So(m.Lat, ShouldBeNil)
			So(m.Lon, ShouldBeNil)
		})

		Convey("A missing conference is independent", func() {
			r.Conference = sql.NullString{}
			So(r.model().Conference, ShouldEqual, "")
		})
	})
}

func TestScraperGame(t *testing.T) {
	Convey("Given a final scraper game with box scores", t, func() {
		r := scraperGame{
			ID: 77, Date: time.Date(2025, time.January, 9, 19, 0, 0, 0, time.UTC),
			HomeID: 1, AwayID: 2,
			HomeScore: sql.NullInt64{Int64: 81, Valid: true},
			AwayScore: sql.NullInt64{Int64: 75, Valid: true},
			NAIA:      true, Status: "Final",
			Home: scraperBox{FGA: sql.NullInt64{Int64: 61, Valid: true}, TOV: sql.NullInt64{Int64: 10, Valid: true}},
			Away: scraperBox{OREB: sql.NullInt64{Int64: 12, Valid: true}},
		}

		Convey("It is stored from the home side", func() {
			m := r.model("men", 2025)
			So(m.GameID, ShouldEqual, 77)
			So(m.Date, ShouldEqual, "2025-01-09")
			So(m.TeamID, ShouldEqual, 1)
			So(m.OpponentID, ShouldEqual, 2)
			So(m.Location, ShouldEqual, "H")
			So(m.TeamScore, ShouldEqual, 81)
			So(m.Completed, ShouldBeTrue)
			So(m.TeamFGA, ShouldEqual, 61)
			So(m.TeamTOV, ShouldEqual, 10)
			So(m.OppOREB, ShouldEqual, 12)
			So(m.TeamFGM, ShouldEqual, 0)
		})

		Convey("Neutral-site games are stored as N", func() {
			r.Neutral = true
			So(r.model("men", 2025).Location, ShouldEqual, "N")
		})

		Convey("Scheduled games and games without scores are not complete", func() {
			r.Status = "scheduled"
			So(r.model("men", 2025).Completed, ShouldBeFalse)
			r.Status = "final"
			r.AwayScore = sql.NullInt64{}
			So(r.model("men", 2025).Completed, ShouldBeFalse)
		})
	})
}
