// Package quadrant labels games Q1 through Q4 by opponent RPI rank and venue.
package quadrant

import (
	"fmt"

	"github.com/padraicbc/hoopsrank/schedule"
)

// Quadrant is a game's opponent-strength tier; Q1 is the hardest.
type Quadrant int

const (
	Q1 Quadrant = iota + 1
	Q2
	Q3
	Q4
)

func (q Quadrant) String() string {
	return fmt.Sprintf("Q%d", int(q))
}

// bounds are the last opponent ranks of Q1, Q2 and Q3 for a venue.
type bounds [3]int

var thresholds = map[schedule.Location]bounds{
	schedule.Home:    {45, 90, 135},
	schedule.Neutral: {55, 105, 150},
	schedule.Away:    {65, 120, 165},
}

// Classify maps an opponent's RPI rank and the game location (from the
// classified team's side) to a quadrant.
func Classify(oppRank int, loc schedule.Location) Quadrant {
	b, ok := thresholds[loc]
	if !ok {
		b = thresholds[schedule.Neutral]
	}
	switch {
	case oppRank <= b[0]:
		return Q1
	case oppRank <= b[1]:
		return Q2
	case oppRank <= b[2]:
		return Q3
	}
	return Q4
}

// Record holds wins and losses per quadrant, indexed Q1..Q4 at 0..3.
type Record struct {
	Wins   [4]int
	Losses [4]int
}

// W returns wins in q.
func (r Record) W(q Quadrant) int { return r.Wins[q-1] }

// L returns losses in q.
func (r Record) L(q Quadrant) int { return r.Losses[q-1] }

// Add counts one game in q.
func (r *Record) Add(q Quadrant, won bool) {
	if won {
		r.Wins[q-1]++
		return
	}
	r.Losses[q-1]++
}

// Tally builds records for teams from their schedules. ranks must come from
// the same snapshot as g; games against unranked opponents are left out.
func Tally(g *schedule.Graph, ranks map[int]int, teams []int) map[int]Record {
	out := make(map[int]Record, len(teams))
	for _, id := range teams {
		var r Record
		for _, e := range g.Schedule(id) {
			oppRank, ok := ranks[e.Opponent]
			if !ok {
				continue
			}
			r.Add(Classify(oppRank, e.Location), e.Won())
		}
		out[id] = r
	}
	return out
}
