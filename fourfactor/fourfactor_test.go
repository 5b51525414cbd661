package fourfactor_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/padraicbc/hoopsrank/fourfactor"
	"github.com/padraicbc/hoopsrank/schedule"
)

var box = schedule.BoxLine{FGM: 25, FGA: 60, FG3M: 5, FG3A: 15, FTM: 15, FTA: 20, OREB: 10, DREB: 30, TOV: 12}

func TestPossessions(t *testing.T) {
	Convey("Given two identical box lines", t, func() {
		// 60 + 0.475*20 - 1.07*(10/40)*35 + 12
		So(fourfactor.Possessions(box, box), ShouldAlmostEqual, 72.1375, 1e-9)
	})

	Convey("Given empty box lines", t, func() {
		So(fourfactor.Possessions(schedule.BoxLine{}, schedule.BoxLine{}), ShouldEqual, 0)
	})

	Convey("Possessions are symmetric in the two sides", t, func() {
		other := schedule.BoxLine{FGM: 30, FGA: 70, FTA: 10, OREB: 15, DREB: 25, TOV: 8}
		So(fourfactor.Possessions(box, other), ShouldAlmostEqual, fourfactor.Possessions(other, box), 1e-12)
	})
}

func TestAggregate(t *testing.T) {
	Convey("Given no entries", t, func() {
		_, err := fourfactor.Aggregate(nil)
		So(err, ShouldEqual, fourfactor.ErrInsufficientData)
	})

	Convey("Given one conference win and one non-conference loss", t, func() {
		entries := []schedule.Entry{
			{GameID: 1, Opponent: 2, OpponentMember: true, Location: schedule.Home, Points: 80, OppPoints: 70, Box: box, OppBox: box, Conference: true},
			{GameID: 2, Opponent: 3, OpponentMember: false, Location: schedule.Away, Points: 60, OppPoints: 75, Box: box, OppBox: box},
		}
		s, err := fourfactor.Aggregate(entries)
		So(err, ShouldBeNil)

		Convey("Records are split by opponent and game type", func() {
			So(s.Games, ShouldEqual, 2)
			So(s.Wins, ShouldEqual, 1)
			So(s.Losses, ShouldEqual, 1)
			So(s.NAIAWins, ShouldEqual, 1)
			So(s.NAIALosses, ShouldEqual, 0)
			So(s.ConfWins, ShouldEqual, 1)
			So(s.NonConfLosses, ShouldEqual, 1)
			So(s.WinPct(), ShouldEqual, 0.5)
			So(s.NAIAWinPct(), ShouldEqual, 1)
			So(s.NonConfWinPct(), ShouldEqual, 0)
		})

		Convey("Ratings come from season totals", func() {
			poss := 2 * 72.1375
			So(s.Possessions, ShouldAlmostEqual, poss, 1e-9)
			So(s.Pace, ShouldAlmostEqual, 72.1375, 1e-9)
			So(s.ORTG, ShouldAlmostEqual, 100*140/poss, 1e-9)
			So(s.DRTG, ShouldAlmostEqual, 100*145/poss, 1e-9)
			So(s.NetRTG(), ShouldAlmostEqual, 100*-5/poss, 1e-9)
			So(s.PPG(), ShouldEqual, 70)
			So(s.OppPPG(), ShouldEqual, 72.5)
		})

		Convey("The four factors are ratios of totals", func() {
			So(s.EFG, ShouldAlmostEqual, 27.5/60, 1e-12)
			So(s.TOVPct, ShouldAlmostEqual, 24/(2*72.1375), 1e-12)
			So(s.OREBPct, ShouldAlmostEqual, 0.25, 1e-12)
			So(s.FTRate, ShouldAlmostEqual, 20.0/60, 1e-12)
			So(s.OppEFG, ShouldAlmostEqual, s.EFG, 1e-12)
			So(s.OppOREBPct, ShouldAlmostEqual, 0.25, 1e-12)
		})
	})

	Convey("Given games without box scores", t, func() {
		s, err := fourfactor.Aggregate([]schedule.Entry{{GameID: 1, Points: 50, OppPoints: 40}})
		So(err, ShouldBeNil)
		So(s.Possessions, ShouldEqual, 0)
		So(s.ORTG, ShouldEqual, 0)
		So(s.EFG, ShouldEqual, 0)
	})

	Convey("Given a mix of games with and without box scores", t, func() {
		entries := []schedule.Entry{
			{GameID: 1, Opponent: 2, OpponentMember: true, Points: 80, OppPoints: 70, Box: box, OppBox: box},
			{GameID: 2, Opponent: 3, OpponentMember: true, Points: 90, OppPoints: 50},
		}
		s, err := fourfactor.Aggregate(entries)
		So(err, ShouldBeNil)

		Convey("The record covers every game", func() {
			So(s.Games, ShouldEqual, 2)
			So(s.Wins, ShouldEqual, 2)
			So(s.PPG(), ShouldEqual, 85)
		})

		Convey("Ratings and pace cover only the box-score game", func() {
			So(s.BoxGames, ShouldEqual, 1)
			So(s.Pace, ShouldAlmostEqual, 72.1375, 1e-9)
			So(s.ORTG, ShouldAlmostEqual, 100*80/72.1375, 1e-9)
			So(s.DRTG, ShouldAlmostEqual, 100*70/72.1375, 1e-9)
		})
	})
}
