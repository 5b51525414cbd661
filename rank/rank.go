// Package rank holds the ordering rules shared by every ranked output: which
// direction is better for a metric, and the deterministic tie-break.
package rank

import (
	"math"
	"sort"
)

// Direction says whether larger values of a metric are better.
type Direction int

const (
	HigherBetter Direction = iota
	LowerBetter
)

func (d Direction) String() string {
	if d == LowerBetter {
		return "lower"
	}
	return "higher"
}

// Tolerance is the absolute difference under which two values tie.
const Tolerance = 1e-12

var directions = map[string]Direction{
	"win_pct":      HigherBetter,
	"naia_win_pct": HigherBetter,
	"rpi":          HigherBetter,
	"owp":          HigherBetter,
	"oowp":         HigherBetter,
	"qwp":          HigherBetter,
	"qwi":          HigherBetter,
	"power_index":  HigherBetter,
	"ortg":         HigherBetter,
	"adj_ortg":     HigherBetter,
	"adj_net":      HigherBetter,
	"sos":          HigherBetter,
	"efg_pct":      HigherBetter,
	"oreb_pct":     HigherBetter,
	"ft_rate":      HigherBetter,
	"opp_tov_pct":  HigherBetter,
	"pace":         HigherBetter,

	"drtg":         LowerBetter,
	"adj_drtg":     LowerBetter,
	"tov_pct":      LowerBetter,
	"opp_efg_pct":  LowerBetter,
	"opp_oreb_pct": LowerBetter,
	"opp_ft_rate":  LowerBetter,
	"pcr_avg":      LowerBetter,
	"rpi_rank":     LowerBetter,
	"pcr":          LowerBetter,
}

// Directionality returns the direction for metric. Unknown metrics are
// treated as higher-is-better.
func Directionality(metric string) Direction {
	if d, ok := directions[metric]; ok {
		return d
	}
	return HigherBetter
}

// Metrics returns a copy of the directionality table.
func Metrics() map[string]Direction {
	out := make(map[string]Direction, len(directions))
	for k, v := range directions {
		out[k] = v
	}
	return out
}

// Equal reports whether a and b tie.
func Equal(a, b float64) bool {
	return math.Abs(a-b) <= Tolerance
}

// Entry is one team to be ranked on Value.
type Entry struct {
	ID     int
	Name   string
	Value  float64
	WinPct float64
}

// Assign ranks entries on Value in direction d and returns 1-based positions
// keyed by ID. Ties go to the higher WinPct, then the lower Name, then the
// lower ID.
func Assign(entries []Entry, d Direction) map[int]int {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j], d)
	})

	out := make(map[int]int, len(sorted))
	for i, e := range sorted {
		out[e.ID] = i + 1
	}
	return out
}

// Less reports whether a ranks ahead of b.
func Less(a, b Entry, d Direction) bool {
	if !Equal(a.Value, b.Value) {
		if d == LowerBetter {
			return a.Value < b.Value
		}
		return a.Value > b.Value
	}
	if !Equal(a.WinPct, b.WinPct) {
		return a.WinPct > b.WinPct
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

// Normalize min-max scales vals to [0,1] and flips the scale for
// lower-is-better metrics. A constant series scales to all zeros.
func Normalize(vals []float64, d Direction) []float64 {
	if len(vals) == 0 {
		return nil
	}
	minV, maxV := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	out := make([]float64, len(vals))
	if maxV == minV {
		return out
	}
	denom := maxV - minV
	for i, v := range vals {
		out[i] = (v - minV) / denom
		if d == LowerBetter {
			out[i] = 1 - out[i]
		}
	}
	return out
}
