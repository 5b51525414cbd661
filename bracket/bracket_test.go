package bracket_test

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/padraicbc/hoopsrank/bracket"
	"github.com/padraicbc/hoopsrank/schedule"
)

func seed(rank int, conf string, lat, lon float64) bracket.Seed {
	return bracket.Seed{
		Rank: rank,
		Team: schedule.Team{
			ID:         rank,
			Name:       fmt.Sprintf("Team %02d", rank),
			Conference: conf,
			Member:     true,
			Home:       &schedule.Coordinate{Lat: lat, Lon: lon},
		},
	}
}

func field(n int) []bracket.Seed {
	out := make([]bracket.Seed, n)
	for i := range out {
		out[i] = seed(i+1, fmt.Sprintf("Conf %d", i%6), 30+float64(i%8), -100+float64(i/8))
	}
	return out
}

func TestHaversine(t *testing.T) {
	Convey("Distance between a point and itself is zero", t, func() {
		p := schedule.Coordinate{Lat: 41.5, Lon: -93.6}
		So(bracket.Haversine(p, p), ShouldEqual, 0)
	})

	Convey("One degree of longitude on the equator is about 69 miles", t, func() {
		d := bracket.Haversine(schedule.Coordinate{}, schedule.Coordinate{Lon: 1})
		So(d, ShouldAlmostEqual, 69.09, 0.01)
	})

	Convey("Distance is symmetric", t, func() {
		a := schedule.Coordinate{Lat: 39.1, Lon: -94.6}
		b := schedule.Coordinate{Lat: 35.5, Lon: -97.5}
		So(bracket.Haversine(a, b), ShouldAlmostEqual, bracket.Haversine(b, a), 1e-9)
	})
}

func TestProject(t *testing.T) {
	Convey("Given a full field of 70 ranked teams", t, func() {
		p, err := bracket.Project(field(70))
		So(err, ShouldBeNil)

		Convey("Only the top 64 are seeded, 16 per tier", func() {
			So(len(p.Tiers), ShouldEqual, bracket.TierCount)
			for i, tier := range p.Tiers {
				So(tier.Number, ShouldEqual, i+1)
				So(len(tier.Seeds), ShouldEqual, bracket.TierSize)
			}
			So(p.Tiers[3].Seeds[15].Rank, ShouldEqual, 64)
		})

		Convey("Every tier-1 team hosts exactly one pod", func() {
			So(len(p.Pods), ShouldEqual, bracket.TierSize)
			hosts := map[int]int{}
			for _, pod := range p.Pods {
				hosts[pod.Host.Team.ID]++
				So(pod.Host.Rank, ShouldBeLessThanOrEqualTo, bracket.TierSize)
			}
			So(len(hosts), ShouldEqual, bracket.TierSize)
		})

		Convey("No pod holds more than four teams and every visitor is placed once", func() {
			placed := map[int]int{}
			for i := range p.Pods {
				pod := &p.Pods[i]
				So(pod.Filled()+1, ShouldBeLessThanOrEqualTo, 4)
				for _, s := range pod.Slots {
					if s.Visitor != nil {
						placed[s.Visitor.Team.ID]++
						So(s.Tier, ShouldBeGreaterThan, 1)
						So(s.Distance, ShouldBeGreaterThanOrEqualTo, 0)
					}
				}
			}
			So(len(placed), ShouldEqual, 48)
			for _, n := range placed {
				So(n, ShouldEqual, 1)
			}
		})

		Convey("Pods never mix conferences unless marked relaxed", func() {
			for _, pod := range p.Pods {
				seen := map[string]bool{pod.Host.Team.Conference: true}
				for _, s := range pod.Slots {
					if s.Visitor == nil {
						continue
					}
					if !s.Relaxed {
						So(seen[s.Visitor.Team.Conference], ShouldBeFalse)
					}
					seen[s.Visitor.Team.Conference] = true
				}
			}
		})
	})

	Convey("Given sixteen hosts and one visitor", t, func() {
		seeds := make([]bracket.Seed, 0, 17)
		for i := 1; i <= 16; i++ {
			seeds = append(seeds, seed(i, fmt.Sprintf("H%d", i), 40, -100+float64(i)))
		}

		Convey("The visitor goes to the nearest host", func() {
			seeds = append(seeds, seed(17, "V", 40, -95.1))
			p, err := bracket.Project(seeds)
			So(err, ShouldBeNil)
			So(p.Pods[4].Slots[0].Visitor.Team.ID, ShouldEqual, 17)
			So(p.Pods[4].Slots[0].Relaxed, ShouldBeFalse)
			So(p.Pods[4].Slots[1].Visitor, ShouldBeNil)
		})

		Convey("A same-conference host is skipped for the next nearest", func() {
			seeds = append(seeds, seed(17, "H5", 40, -95.1))
			p, err := bracket.Project(seeds)
			So(err, ShouldBeNil)
			// host 4 sits 0.9 degrees away, host 6 is 1.1
			So(p.Pods[4].Filled(), ShouldEqual, 0)
			So(p.Pods[3].Slots[0].Visitor.Team.ID, ShouldEqual, 17)
		})

		Convey("Equal distances go to the better-seeded host", func() {
			seeds[9].Team.Home = &schedule.Coordinate{Lat: 40, Lon: -97}
			seeds = append(seeds, seed(17, "V", 40, -97))
			p, err := bracket.Project(seeds)
			So(err, ShouldBeNil)
			So(p.Pods[2].Filled(), ShouldEqual, 1)
			So(p.Pods[9].Filled(), ShouldEqual, 0)
		})
	})

	Convey("When every host shares the visitor's conference", t, func() {
		seeds := make([]bracket.Seed, 0, 17)
		for i := 1; i <= 17; i++ {
			seeds = append(seeds, seed(i, "Same", 40, -100+float64(i)))
		}
		p, err := bracket.Project(seeds)
		So(err, ShouldBeNil)

		Convey("The rule is relaxed and the nearest host takes the visitor", func() {
			last := p.Pods[15]
			So(last.Slots[0].Visitor.Team.ID, ShouldEqual, 17)
			So(last.Slots[0].Relaxed, ShouldBeTrue)
		})
	})

	Convey("A seeded team without a location fails the projection", t, func() {
		seeds := field(20)
		seeds[18].Team.Home = nil
		_, err := bracket.Project(seeds)
		So(errors.Is(err, bracket.ErrMissingLocation), ShouldBeTrue)
	})

	Convey("An empty field projects nothing", t, func() {
		p, err := bracket.Project(nil)
		So(err, ShouldBeNil)
		So(p.Pods, ShouldBeEmpty)
	})
}
