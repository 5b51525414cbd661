package db

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/padraicbc/hoopsrank/bracket"
	"github.com/padraicbc/hoopsrank/composite"
	"github.com/padraicbc/hoopsrank/engine"
	"github.com/padraicbc/hoopsrank/models"
	"github.com/padraicbc/hoopsrank/quadrant"
	"github.com/padraicbc/hoopsrank/rpi"
	"github.com/padraicbc/hoopsrank/schedule"
)

func TestToTeam(t *testing.T) {
	Convey("Given a team row", t, func() {
		lat, lon := 41.6, -93.6
		row := models.Team{TeamID: 7, Name: "Grand View", Conference: "Heart", League: "men", Member: true, Lat: &lat, Lon: &lon}

		Convey("Both coordinates become a home location", func() {
			team := toTeam(row)
			So(team.ID, ShouldEqual, 7)
			So(team.Home, ShouldResemble, &schedule.Coordinate{Lat: lat, Lon: lon})
		})

		Convey("A half-filled coordinate is treated as missing", func() {
			row.Lon = nil
			So(toTeam(row).Home, ShouldBeNil)
		})
	})
}

func TestToGame(t *testing.T) {
	Convey("Dates are read from date or timestamp text", t, func() {
		for _, s := range []string{"2025-01-05", "2025-01-05T00:00:00Z", "2025-01-05 00:00:00+00"} {
			d, err := parseDate(s)
			So(err, ShouldBeNil)
			So(d.Equal(time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
		}
		_, err := parseDate("2025")
		So(err, ShouldNotBeNil)
	})

	Convey("Given a stored game row", t, func() {
		row := models.Game{
			GameID: 3, Date: "2025-02-01", TeamID: 1, OpponentID: 2, Location: "A",
			TeamScore: 70, OppScore: 66, IsNAIA: true, Completed: true, IsConference: true,
			TeamFGA: 60, TeamTOV: 11, OppOREB: 9,
		}
		g, err := toGame(row)
		So(err, ShouldBeNil)
		So(g.Location, ShouldEqual, schedule.Away)
		So(g.Conference, ShouldBeTrue)
		So(g.TeamBox.FGA, ShouldEqual, 60)
		So(g.TeamBox.TOV, ShouldEqual, 11)
		So(g.OpponentBox.OREB, ShouldEqual, 9)
		So(g.Eligible(), ShouldBeTrue)
	})
}

func TestResultRows(t *testing.T) {
	Convey("Given a run with one ranked team", t, func() {
		host := bracket.Seed{Team: schedule.Team{ID: 1, Name: "A"}, Rank: 1}
		visitor := bracket.Seed{Team: schedule.Team{ID: 2, Name: "B"}, Rank: 17}
		proj := &bracket.Projection{
			Tiers: []bracket.Tier{{Number: 1, Seeds: []bracket.Seed{host}}, {Number: 2, Seeds: []bracket.Seed{visitor}}},
			Pods:  []bracket.Pod{{Host: host}},
		}
		proj.Pods[0].Slots[0] = bracket.Slot{Visitor: &visitor, Tier: 2, Distance: 120.5}

		res := &engine.Result{
			League: "women", Season: 2025,
			Teams: []engine.TeamResult{{
				Team:      schedule.Team{ID: 1, Name: "A"},
				RPI:       rpi.Components{WP: 0.75, OWP: 0.5, OOWP: 0.5, RPI: 0.575, Rank: 1},
				Quads:     quadrant.Record{Wins: [4]int{2, 1, 0, 0}, Losses: [4]int{0, 0, 1, 0}},
				Composite: composite.Ranking{PCR: 1, PowerRank: 1},
			}},
			Conferences: []composite.ConferenceRating{{Conference: "Heart", Teams: 1, Rank: 1}},
			Bracket:     proj,
		}

		Convey("Warnings default to an empty JSON array", func() {
			run, err := runRow(res)
			So(err, ShouldBeNil)
			So(string(run.Warnings), ShouldEqual, "[]")
			So(run.TeamsRated, ShouldEqual, 1)
		})

		Convey("Team rows carry the run id and quadrant split", func() {
			rows := ratingRows(res, 42)
			So(len(rows), ShouldEqual, 1)
			So(rows[0].RunID, ShouldEqual, 42)
			So(rows[0].League, ShouldEqual, "women")
			So(rows[0].RPI, ShouldEqual, 0.575)
			So(rows[0].Q1Wins, ShouldEqual, 2)
			So(rows[0].Q3Losses, ShouldEqual, 1)
			So(conferenceRows(res, 42)[0].Conference, ShouldEqual, "Heart")
		})

		Convey("Every pod gets all its slot rows, empty ones included", func() {
			seeds, slots := bracketRows(res, 42)
			So(len(seeds), ShouldEqual, 2)
			So(seeds[1].Tier, ShouldEqual, 2)
			So(len(slots), ShouldEqual, bracket.PodVisitors)
			So(*slots[0].VisitorID, ShouldEqual, 2)
			So(*slots[0].DistanceMiles, ShouldEqual, 120.5)
			So(slots[1].VisitorID, ShouldBeNil)
			So(slots[2].Slot, ShouldEqual, 3)
		})

		Convey("No bracket means no bracket rows", func() {
			res.Bracket = nil
			seeds, slots := bracketRows(res, 42)
			So(seeds, ShouldBeEmpty)
			So(slots, ShouldBeEmpty)
		})
	})
}
