// Package rpi computes the Rating Percentage Index from the opponent graph.
package rpi

import (
	"github.com/padraicbc/hoopsrank/rank"
	"github.com/padraicbc/hoopsrank/schedule"
)

// Component weights.
const (
	WPWeight   = 0.30
	OWPWeight  = 0.50
	OOWPWeight = 0.20
)

// Components are one team's RPI inputs and result.
// Rank is zero for teams that are not ranked.
type Components struct {
	Wins   int
	Losses int
	WP     float64
	OWP    float64
	OOWP   float64
	RPI    float64
	Rank   int
}

// Table maps team id to its components.
type Table map[int]*Components

// record is a win/game tally.
type record struct {
	wins  int
	games int
}

// Compute returns 0.30*wp + 0.50*owp + 0.20*oowp.
func Compute(wp, owp, oowp float64) float64 {
	return WPWeight*wp + OWPWeight*owp + OOWPWeight*oowp
}

// Solve computes WP, OWP, OOWP and RPI for every active team in g, then ranks
// the ids in ranked (RPI desc, WP desc, name asc).
func Solve(g *schedule.Graph, ranked []int) Table {
	active := g.Active()

	// First pass: season and head-to-head tallies.
	totals := make(map[int]record, len(active))
	h2h := make(map[int]map[int]record, len(active))
	for _, id := range active {
		var tot record
		pairs := make(map[int]record)
		for _, e := range g.Schedule(id) {
			r := pairs[e.Opponent]
			r.games++
			tot.games++
			if e.Won() {
				r.wins++
				tot.wins++
			}
			pairs[e.Opponent] = r
		}
		totals[id] = tot
		h2h[id] = pairs
	}

	// winPctExcluding is o's win% with every game against t removed.
	winPctExcluding := func(o, t int) (float64, bool) {
		tot := totals[o]
		vs := h2h[o][t]
		games := tot.games - vs.games
		if games == 0 {
			return 0, false
		}
		return float64(tot.wins-vs.wins) / float64(games), true
	}

	table := make(Table, len(active))
	for _, id := range active {
		tot := totals[id]
		table[id] = &Components{
			Wins:   tot.wins,
			Losses: tot.games - tot.wins,
			WP:     float64(tot.wins) / float64(tot.games),
		}
	}

	// Second pass: per-edge self-excluding opponent win%.
	for _, id := range active {
		var sum float64
		var n int
		for _, e := range g.Schedule(id) {
			if wp, ok := winPctExcluding(e.Opponent, id); ok {
				sum += wp
				n++
			}
		}
		if n > 0 {
			table[id].OWP = sum / float64(n)
		}
	}

	for _, id := range active {
		entries := g.Schedule(id)
		var sum float64
		for _, e := range entries {
			sum += table[e.Opponent].OWP
		}
		c := table[id]
		c.OOWP = sum / float64(len(entries))
		c.RPI = Compute(c.WP, c.OWP, c.OOWP)
	}

	table.rank(g, ranked)
	return table
}

func (t Table) rank(g *schedule.Graph, ids []int) {
	entries := make([]rank.Entry, 0, len(ids))
	for _, id := range ids {
		c, ok := t[id]
		if !ok {
			continue
		}
		team, _ := g.Team(id)
		entries = append(entries, rank.Entry{ID: id, Name: team.Name, Value: c.RPI, WinPct: c.WP})
	}
	for id, pos := range rank.Assign(entries, rank.Directionality("rpi")) {
		t[id].Rank = pos
	}
}

// Ranks returns team id to RPI rank for ranked teams only.
func (t Table) Ranks() map[int]int {
	out := make(map[int]int, len(t))
	for id, c := range t {
		if c.Rank > 0 {
			out[id] = c.Rank
		}
	}
	return out
}
