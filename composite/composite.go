// Package composite derives the quadrant-weighted and blended rankings (QWP,
// QWI, PCR, Power Index) and the per-conference rollups.
package composite

import (
	"github.com/padraicbc/hoopsrank/efficiency"
	"github.com/padraicbc/hoopsrank/quadrant"
	"github.com/padraicbc/hoopsrank/rank"
	"github.com/padraicbc/hoopsrank/schedule"
)

// Power Index component weights.
const (
	PowerORTGWeight = 0.35
	PowerDRTGWeight = 0.35
	PowerSOSWeight  = 0.15
	PowerWinWeight  = 0.075
	PowerQWIWeight  = 0.075
)

var qwpWeights = [4]float64{4, 2, 1, 0.5}

var qwiWin = [4]float64{1.0, 0.6, 0.3, 0.1}
var qwiLoss = [4]float64{0.25, 0.5, 0.75, 1.0}

// QWP is the quadrant-weighted win total.
func QWP(r quadrant.Record) float64 {
	var v float64
	for i, w := range qwpWeights {
		v += w * float64(r.Wins[i])
	}
	return v
}

// QWI credits wins and penalises losses, both weighted by quadrant.
func QWI(r quadrant.Record) float64 {
	var v float64
	for i := range qwiWin {
		v += qwiWin[i]*float64(r.Wins[i]) - qwiLoss[i]*float64(r.Losses[i])
	}
	return v
}

// Input is everything the composite rankings need for one ranked team.
type Input struct {
	Team          schedule.Team
	WinPct        float64
	NAIAWinPct    float64
	RPI           float64
	Adjusted      efficiency.Rating
	Rated         bool // Adjusted holds a solved rating
	Quads         quadrant.Record
	NonConfWins   int
	NonConfLosses int
}

// Ranking is one team's composite output.
type Ranking struct {
	QWP        float64
	QWI        float64
	WinRank    int
	RPIRank    int
	QWPRank    int
	PCRAvg     float64
	PCR        int
	PowerIndex float64
	PowerRank  int
}

// Compute ranks every input. Inputs must be exactly the ranked teams.
func Compute(inputs []Input) map[int]Ranking {
	out := make(map[int]Ranking, len(inputs))
	if len(inputs) == 0 {
		return out
	}

	byWin := make([]rank.Entry, len(inputs))
	byRPI := make([]rank.Entry, len(inputs))
	byQWP := make([]rank.Entry, len(inputs))
	for i, in := range inputs {
		q := QWP(in.Quads)
		out[in.Team.ID] = Ranking{QWP: q, QWI: QWI(in.Quads)}
		byWin[i] = rank.Entry{ID: in.Team.ID, Name: in.Team.Name, Value: in.WinPct, WinPct: in.WinPct}
		byRPI[i] = rank.Entry{ID: in.Team.ID, Name: in.Team.Name, Value: in.RPI, WinPct: in.WinPct}
		byQWP[i] = rank.Entry{ID: in.Team.ID, Name: in.Team.Name, Value: q, WinPct: in.WinPct}
	}
	winRanks := rank.Assign(byWin, rank.Directionality("win_pct"))
	rpiRanks := rank.Assign(byRPI, rank.Directionality("rpi"))
	qwpRanks := rank.Assign(byQWP, rank.Directionality("qwp"))

	// PCR re-sorts on the averaged rank; ties fall through to name.
	byAvg := make([]rank.Entry, len(inputs))
	for i, in := range inputs {
		id := in.Team.ID
		r := out[id]
		r.WinRank, r.RPIRank, r.QWPRank = winRanks[id], rpiRanks[id], qwpRanks[id]
		r.PCRAvg = float64(r.WinRank+r.RPIRank+r.QWPRank) / 3
		out[id] = r
		byAvg[i] = rank.Entry{ID: id, Name: in.Team.Name, Value: r.PCRAvg}
	}
	for id, pos := range rank.Assign(byAvg, rank.Directionality("pcr_avg")) {
		r := out[id]
		r.PCR = pos
		out[id] = r
	}

	powerIndex(inputs, out)
	return out
}

// powerIndex scores teams with an adjusted rating. The rest get no index and
// rank below every scored team.
func powerIndex(all []Input, out map[int]Ranking) {
	var inputs, unrated []Input
	for _, in := range all {
		if in.Rated {
			inputs = append(inputs, in)
		} else {
			unrated = append(unrated, in)
		}
	}

	n := len(inputs)
	ortg := make([]float64, n)
	drtg := make([]float64, n)
	sos := make([]float64, n)
	win := make([]float64, n)
	qwi := make([]float64, n)
	for i, in := range inputs {
		ortg[i] = in.Adjusted.AdjORTG
		drtg[i] = in.Adjusted.AdjDRTG
		sos[i] = in.Adjusted.NSOS
		win[i] = in.NAIAWinPct
		qwi[i] = out[in.Team.ID].QWI
	}
	ortg = rank.Normalize(ortg, rank.Directionality("adj_ortg"))
	drtg = rank.Normalize(drtg, rank.Directionality("adj_drtg"))
	sos = rank.Normalize(sos, rank.Directionality("sos"))
	win = rank.Normalize(win, rank.Directionality("naia_win_pct"))
	qwi = rank.Normalize(qwi, rank.Directionality("qwi"))

	entries := make([]rank.Entry, n)
	for i, in := range inputs {
		pi := 100 * (PowerORTGWeight*ortg[i] +
			PowerDRTGWeight*drtg[i] +
			PowerSOSWeight*sos[i] +
			PowerWinWeight*win[i] +
			PowerQWIWeight*qwi[i])
		r := out[in.Team.ID]
		r.PowerIndex = pi
		out[in.Team.ID] = r
		entries[i] = rank.Entry{ID: in.Team.ID, Name: in.Team.Name, Value: pi, WinPct: in.WinPct}
	}
	for id, pos := range rank.Assign(entries, rank.Directionality("power_index")) {
		r := out[id]
		r.PowerRank = pos
		out[id] = r
	}

	rest := make([]rank.Entry, len(unrated))
	for i, in := range unrated {
		rest[i] = rank.Entry{ID: in.Team.ID, Name: in.Team.Name, Value: in.WinPct, WinPct: in.WinPct}
	}
	for id, pos := range rank.Assign(rest, rank.Directionality("win_pct")) {
		r := out[id]
		r.PowerRank = n + pos
		out[id] = r
	}
}
