// Package schedule turns stored games into the per-team schedules the rating
// engine works on. A game is stored once from one side's point of view and is
// expanded here into two location-flipped entries.
package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Location is where a game was played relative to the "team" side.
type Location string

const (
	Home    Location = "H"
	Away    Location = "A"
	Neutral Location = "N"
)

// Flip returns the location as seen from the opponent.
func (l Location) Flip() Location {
	switch l {
	case Home:
		return Away
	case Away:
		return Home
	}
	return Neutral
}

// Valid reports whether l is one of Home, Away or Neutral.
func (l Location) Valid() bool {
	return l == Home || l == Away || l == Neutral
}

// Coordinate is a point on the earth in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Team is one entry of the team directory.
// Member is false for opponents outside the rated association; they take part
// in strength-of-schedule but are never ranked.
type Team struct {
	ID         int
	Name       string
	Conference string
	League     string
	Member     bool
	Home       *Coordinate
}

// BoxLine holds one side's counting stats for a game.
type BoxLine struct {
	FGM  int
	FGA  int
	FG3M int
	FG3A int
	FTM  int
	FTA  int
	OREB int
	DREB int
	TOV  int
}

// Add returns the field-wise sum of b and o.
func (b BoxLine) Add(o BoxLine) BoxLine {
	return BoxLine{
		FGM:  b.FGM + o.FGM,
		FGA:  b.FGA + o.FGA,
		FG3M: b.FG3M + o.FG3M,
		FG3A: b.FG3A + o.FG3A,
		FTM:  b.FTM + o.FTM,
		FTA:  b.FTA + o.FTA,
		OREB: b.OREB + o.OREB,
		DREB: b.DREB + o.DREB,
		TOV:  b.TOV + o.TOV,
	}
}

// Game is a stored result, seen from TeamID's side.
type Game struct {
	ID            int64
	Date          time.Time
	TeamID        int
	OpponentID    int
	Location      Location
	TeamScore     int
	OpponentScore int
	TeamBox       BoxLine
	OpponentBox   BoxLine

	Conference bool
	Postseason bool
	Exhibition bool
	NAIA       bool
	Completed  bool
}

// Eligible reports whether the game feeds the rating engine.
func (g Game) Eligible() bool {
	return g.Completed && !g.Exhibition && g.NAIA && g.TeamScore != g.OpponentScore
}

// Entry is one game from one team's point of view.
type Entry struct {
	GameID         int64
	Date           time.Time
	Opponent       int
	OpponentMember bool
	Location       Location
	Points         int
	OppPoints      int
	Box            BoxLine
	OppBox         BoxLine
	Conference     bool
	Postseason     bool
}

// Won reports whether the team won the game.
func (e Entry) Won() bool {
	return e.Points > e.OppPoints
}

// OpponentGraphError is returned when a game references a team that is not in
// the team directory.
type OpponentGraphError struct {
	GameID int64
	TeamID int
}

func (e *OpponentGraphError) Error() string {
	return fmt.Sprintf("game %d references unknown team %d", e.GameID, e.TeamID)
}

// Graph is the closed opponent graph for one league and season.
type Graph struct {
	teams     map[int]Team
	schedules map[int][]Entry
	ids       []int
	used      int
	skipped   int
}

// Build validates games against the directory and expands every eligible game
// into two entries. Ineligible games are counted and dropped.
func Build(teams []Team, games []Game) (*Graph, error) {
	g := &Graph{
		teams:     make(map[int]Team, len(teams)),
		schedules: make(map[int][]Entry, len(teams)),
	}
	for _, t := range teams {
		if _, dup := g.teams[t.ID]; dup {
			return nil, fmt.Errorf("duplicate team %d in directory", t.ID)
		}
		g.teams[t.ID] = t
		g.ids = append(g.ids, t.ID)
	}
	sort.Ints(g.ids)

	for _, gm := range games {
		team, ok := g.teams[gm.TeamID]
		if !ok {
			return nil, &OpponentGraphError{GameID: gm.ID, TeamID: gm.TeamID}
		}
		opp, ok := g.teams[gm.OpponentID]
		if !ok {
			return nil, &OpponentGraphError{GameID: gm.ID, TeamID: gm.OpponentID}
		}
		if !gm.Eligible() {
			g.skipped++
			continue
		}
		if gm.TeamID == gm.OpponentID {
			return nil, fmt.Errorf("game %d: team %d plays itself", gm.ID, gm.TeamID)
		}
		if !gm.Location.Valid() {
			return nil, fmt.Errorf("game %d: invalid location %q", gm.ID, gm.Location)
		}

		g.schedules[gm.TeamID] = append(g.schedules[gm.TeamID], Entry{
			GameID:         gm.ID,
			Date:           gm.Date,
			Opponent:       gm.OpponentID,
			OpponentMember: opp.Member,
			Location:       gm.Location,
			Points:         gm.TeamScore,
			OppPoints:      gm.OpponentScore,
			Box:            gm.TeamBox,
			OppBox:         gm.OpponentBox,
			Conference:     gm.Conference,
			Postseason:     gm.Postseason,
		})
		g.schedules[gm.OpponentID] = append(g.schedules[gm.OpponentID], Entry{
			GameID:         gm.ID,
			Date:           gm.Date,
			Opponent:       gm.TeamID,
			OpponentMember: team.Member,
			Location:       gm.Location.Flip(),
			Points:         gm.OpponentScore,
			OppPoints:      gm.TeamScore,
			Box:            gm.OpponentBox,
			OppBox:         gm.TeamBox,
			Conference:     gm.Conference,
			Postseason:     gm.Postseason,
		})
		g.used++
	}

	for id, entries := range g.schedules {
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Date.Equal(entries[j].Date) {
				return entries[i].GameID < entries[j].GameID
			}
			return entries[i].Date.Before(entries[j].Date)
		})
		g.schedules[id] = entries
	}
	return g, nil
}

// Team returns the directory entry for id.
func (g *Graph) Team(id int) (Team, bool) {
	t, ok := g.teams[id]
	return t, ok
}

// Schedule returns id's entries in date order.
func (g *Graph) Schedule(id int) []Entry {
	return g.schedules[id]
}

// TeamIDs returns every directory id in ascending order.
func (g *Graph) TeamIDs() []int {
	return g.ids
}

// Active returns the ids of every team with at least one eligible game,
// members or not.
func (g *Graph) Active() []int {
	out := make([]int, 0, len(g.schedules))
	for _, id := range g.ids {
		if len(g.schedules[id]) > 0 {
			out = append(out, id)
		}
	}
	return out
}

// Idle returns member teams without a single eligible game.
func (g *Graph) Idle() []int {
	var out []int
	for _, id := range g.ids {
		if g.teams[id].Member && len(g.schedules[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// GamesUsed is the number of eligible games in the graph.
func (g *Graph) GamesUsed() int { return g.used }

// GamesSkipped is the number of games dropped as ineligible.
func (g *Graph) GamesSkipped() int { return g.skipped }
