package schedule_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/padraicbc/hoopsrank/schedule"
)

func day(n int) time.Time {
	return time.Date(2025, time.January, n, 0, 0, 0, 0, time.UTC)
}

func final(id int64, team, opp int, loc schedule.Location, pts, oppPts int, d int) schedule.Game {
	return schedule.Game{
		ID:            id,
		Date:          day(d),
		TeamID:        team,
		OpponentID:    opp,
		Location:      loc,
		TeamScore:     pts,
		OpponentScore: oppPts,
		NAIA:          true,
		Completed:     true,
	}
}

func TestLocation(t *testing.T) {
	Convey("Given the three locations", t, func() {
		Convey("Flip swaps home and away and keeps neutral", func() {
			So(schedule.Home.Flip(), ShouldEqual, schedule.Away)
			So(schedule.Away.Flip(), ShouldEqual, schedule.Home)
			So(schedule.Neutral.Flip(), ShouldEqual, schedule.Neutral)
		})

		Convey("Only H, A and N are valid", func() {
			So(schedule.Home.Valid(), ShouldBeTrue)
			So(schedule.Location("X").Valid(), ShouldBeFalse)
			So(schedule.Location("").Valid(), ShouldBeFalse)
		})
	})
}

func TestEligible(t *testing.T) {
	Convey("Given a completed NAIA game", t, func() {
		g := final(1, 1, 2, schedule.Home, 70, 60, 1)

		Convey("It is eligible", func() {
			So(g.Eligible(), ShouldBeTrue)
		})

		Convey("Exhibitions are not", func() {
			g.Exhibition = true
			So(g.Eligible(), ShouldBeFalse)
		})

		Convey("Unfinished games are not", func() {
			g.Completed = false
			So(g.Eligible(), ShouldBeFalse)
		})

		Convey("Games against non-NAIA competition are not", func() {
			g.NAIA = false
			So(g.Eligible(), ShouldBeFalse)
		})

		Convey("Tied scores are not", func() {
			g.OpponentScore = 70
			So(g.Eligible(), ShouldBeFalse)
		})
	})
}

func TestBuild(t *testing.T) {
	Convey("Given a small directory", t, func() {
		teams := []schedule.Team{
			{ID: 1, Name: "Alpha", Member: true},
			{ID: 2, Name: "Bravo", Member: true},
			{ID: 3, Name: "Outsider", Member: false},
			{ID: 4, Name: "Idle", Member: true},
		}

		Convey("When every game is eligible", func() {
			games := []schedule.Game{
				final(11, 2, 1, schedule.Away, 55, 60, 3),
				final(10, 1, 2, schedule.Home, 80, 70, 1),
				final(12, 1, 3, schedule.Neutral, 90, 50, 2),
			}
			g, err := schedule.Build(teams, games)
			So(err, ShouldBeNil)

			Convey("Each game appears once in both schedules", func() {
				So(g.GamesUsed(), ShouldEqual, 3)
				So(len(g.Schedule(1)), ShouldEqual, 3)
				So(len(g.Schedule(2)), ShouldEqual, 2)
				So(len(g.Schedule(3)), ShouldEqual, 1)
			})

			Convey("Entries are mirrored from each side", func() {
				a := g.Schedule(1)[0]
				b := g.Schedule(2)[0]
				So(a.GameID, ShouldEqual, b.GameID)
				So(a.Location, ShouldEqual, schedule.Home)
				So(b.Location, ShouldEqual, schedule.Away)
				So(a.Points, ShouldEqual, b.OppPoints)
				So(a.Won(), ShouldBeTrue)
				So(b.Won(), ShouldBeFalse)
			})

			Convey("Schedules are in date order", func() {
				s := g.Schedule(1)
				So(s[0].GameID, ShouldEqual, 10)
				So(s[1].GameID, ShouldEqual, 12)
				So(s[2].GameID, ShouldEqual, 11)
			})

			Convey("Opponent membership is carried on the entry", func() {
				So(g.Schedule(1)[1].OpponentMember, ShouldBeFalse)
				So(g.Schedule(3)[0].OpponentMember, ShouldBeTrue)
			})

			Convey("Active includes non-members and Idle lists members without games", func() {
				So(g.Active(), ShouldResemble, []int{1, 2, 3})
				So(g.Idle(), ShouldResemble, []int{4})
			})
		})

		Convey("When some games are ineligible", func() {
			ex := final(20, 1, 2, schedule.Home, 80, 70, 1)
			ex.Exhibition = true
			tie := final(21, 1, 2, schedule.Home, 70, 70, 2)
			g, err := schedule.Build(teams, []schedule.Game{ex, tie, final(22, 1, 2, schedule.Away, 60, 50, 3)})
			So(err, ShouldBeNil)
			So(g.GamesUsed(), ShouldEqual, 1)
			So(g.GamesSkipped(), ShouldEqual, 2)
		})

		Convey("When a game references an unknown team", func() {
			bad := final(30, 1, 99, schedule.Home, 80, 70, 1)
			bad.Completed = false
			_, err := schedule.Build(teams, []schedule.Game{bad})

			Convey("Build fails with an opponent graph error even for an ineligible game", func() {
				var ge *schedule.OpponentGraphError
				So(errors.As(err, &ge), ShouldBeTrue)
				So(ge.GameID, ShouldEqual, 30)
				So(ge.TeamID, ShouldEqual, 99)
			})
		})

		Convey("When a team plays itself", func() {
			_, err := schedule.Build(teams, []schedule.Game{final(40, 1, 1, schedule.Home, 80, 70, 1)})
			So(err, ShouldNotBeNil)
		})

		Convey("When the directory has a duplicate", func() {
			_, err := schedule.Build(append(teams, schedule.Team{ID: 1, Name: "Again"}), nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestBoxLineAdd(t *testing.T) {
	Convey("Adding box lines sums every field", t, func() {
		a := schedule.BoxLine{FGM: 1, FGA: 2, FG3M: 3, FG3A: 4, FTM: 5, FTA: 6, OREB: 7, DREB: 8, TOV: 9}
		So(a.Add(a), ShouldResemble, schedule.BoxLine{FGM: 2, FGA: 4, FG3M: 6, FG3A: 8, FTM: 10, FTA: 12, OREB: 14, DREB: 16, TOV: 18})
	})
}
