package composite

import (
	"sort"

	"github.com/padraicbc/hoopsrank/rank"
)

// ConferenceRating is a conference-level rollup of its ranked teams.
type ConferenceRating struct {
	Conference    string
	Teams         int
	RatedTeams    int
	AvgAdjNet     float64
	AvgRPI        float64
	AvgAdjORTG    float64
	AvgAdjDRTG    float64
	AvgSOS        float64
	NonConfWins   int
	NonConfLosses int
	NonConfWinPct float64
	TopHalfAdjNet float64
	Rank          int
}

// Conferences rolls inputs up by conference and ranks conferences by average
// adjusted net rating. Teams without a conference are left out. Adjusted and
// SOS averages cover rated teams only; conferences with none rank last.
func Conferences(inputs []Input) []ConferenceRating {
	groups := make(map[string][]Input)
	for _, in := range inputs {
		if in.Team.Conference == "" {
			continue
		}
		groups[in.Team.Conference] = append(groups[in.Team.Conference], in)
	}

	out := make([]ConferenceRating, 0, len(groups))
	for name, members := range groups {
		c := ConferenceRating{Conference: name, Teams: len(members)}
		nets := make([]float64, 0, len(members))
		for _, m := range members {
			c.AvgRPI += m.RPI
			c.NonConfWins += m.NonConfWins
			c.NonConfLosses += m.NonConfLosses
			if !m.Rated {
				continue
			}
			c.RatedTeams++
			c.AvgAdjNet += m.Adjusted.AdjNet
			c.AvgAdjORTG += m.Adjusted.AdjORTG
			c.AvgAdjDRTG += m.Adjusted.AdjDRTG
			c.AvgSOS += m.Adjusted.NSOS
			nets = append(nets, m.Adjusted.AdjNet)
		}
		c.AvgRPI /= float64(len(members))
		if c.RatedTeams > 0 {
			r := float64(c.RatedTeams)
			c.AvgAdjNet /= r
			c.AvgAdjORTG /= r
			c.AvgAdjDRTG /= r
			c.AvgSOS /= r
		}
		if played := c.NonConfWins + c.NonConfLosses; played > 0 {
			c.NonConfWinPct = float64(c.NonConfWins) / float64(played)
		}
		c.TopHalfAdjNet = topHalfMean(nets)
		out = append(out, c)
	}

	var rated, unrated []rank.Entry
	for i, c := range out {
		e := rank.Entry{ID: i, Name: c.Conference, Value: c.AvgAdjNet}
		if c.RatedTeams > 0 {
			rated = append(rated, e)
		} else {
			unrated = append(unrated, e)
		}
	}
	for i, pos := range rank.Assign(rated, rank.Directionality("adj_net")) {
		out[i].Rank = pos
	}
	for i, pos := range rank.Assign(unrated, rank.Directionality("adj_net")) {
		out[i].Rank = len(rated) + pos
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}

// topHalfMean averages the best ceil(n/2) values.
func topHalfMean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	k := (len(sorted) + 1) / 2
	var sum float64
	for _, v := range sorted[:k] {
		sum += v
	}
	return sum / float64(k)
}
