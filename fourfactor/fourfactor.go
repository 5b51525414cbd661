// Package fourfactor reduces a team's games into season box-score rates.
//
// Every rate is a ratio of season totals, never an average of per-game
// ratios, so a single short game cannot swing a team's numbers.
package fourfactor

import (
	"errors"

	"github.com/padraicbc/hoopsrank/schedule"
)

// Possession estimate constants. They must stay fixed between runs so stored
// ratings remain comparable across a season.
const (
	FTAFactor  = 0.475
	OREBFactor = 1.07
)

// ErrInsufficientData means the team has no eligible games.
var ErrInsufficientData = errors.New("no eligible games")

// Stats are a team's cumulative counting stats and the rates derived from them.
type Stats struct {
	Games         int
	Wins          int
	Losses        int
	NAIAWins      int
	NAIALosses    int
	ConfWins      int
	ConfLosses    int
	NonConfWins   int
	NonConfLosses int

	Points    int
	OppPoints int
	Team      schedule.BoxLine
	Opp       schedule.BoxLine

	// BoxGames counts games with a usable box score. Possessions and the
	// ratings below cover those games only; the record covers every game.
	BoxGames     int
	BoxPoints    int
	BoxOppPoints int

	Possessions float64
	Pace        float64
	ORTG        float64
	DRTG        float64

	EFG        float64
	TOVPct     float64
	OREBPct    float64
	FTRate     float64
	OppEFG     float64
	OppTOVPct  float64
	OppOREBPct float64
	OppFTRate  float64
}

// WinPct is wins over games played.
func (s Stats) WinPct() float64 {
	return ratio(float64(s.Wins), float64(s.Games))
}

// NAIAWinPct is the win rate against member opponents only.
func (s Stats) NAIAWinPct() float64 {
	return ratio(float64(s.NAIAWins), float64(s.NAIAWins+s.NAIALosses))
}

// NonConfWinPct is the win rate in non-conference games.
func (s Stats) NonConfWinPct() float64 {
	return ratio(float64(s.NonConfWins), float64(s.NonConfWins+s.NonConfLosses))
}

// NetRTG is ORTG minus DRTG.
func (s Stats) NetRTG() float64 { return s.ORTG - s.DRTG }

// PPG is points scored per game.
func (s Stats) PPG() float64 { return ratio(float64(s.Points), float64(s.Games)) }

// OppPPG is points allowed per game.
func (s Stats) OppPPG() float64 { return ratio(float64(s.OppPoints), float64(s.Games)) }

// Possessions estimates one game's possessions as the mean of both sides'
// possession counts.
func Possessions(team, opp schedule.BoxLine) float64 {
	return 0.5 * (sidePossessions(team, opp) + sidePossessions(opp, team))
}

func sidePossessions(b, other schedule.BoxLine) float64 {
	orebShare := ratio(float64(b.OREB), float64(b.OREB+other.DREB))
	missed := float64(b.FGA - b.FGM)
	return float64(b.FGA) + FTAFactor*float64(b.FTA) - OREBFactor*orebShare*missed + float64(b.TOV)
}

// Aggregate computes Stats for one team's eligible entries.
func Aggregate(entries []schedule.Entry) (Stats, error) {
	if len(entries) == 0 {
		return Stats{}, ErrInsufficientData
	}

	var s Stats
	for _, e := range entries {
		s.Games++
		won := e.Won()
		if won {
			s.Wins++
		} else {
			s.Losses++
		}
		if e.OpponentMember {
			if won {
				s.NAIAWins++
			} else {
				s.NAIALosses++
			}
		}
		switch {
		case e.Conference && won:
			s.ConfWins++
		case e.Conference:
			s.ConfLosses++
		case won:
			s.NonConfWins++
		default:
			s.NonConfLosses++
		}

		s.Points += e.Points
		s.OppPoints += e.OppPoints

		poss := Possessions(e.Box, e.OppBox)
		if poss <= 0 {
			continue
		}
		s.BoxGames++
		s.BoxPoints += e.Points
		s.BoxOppPoints += e.OppPoints
		s.Team = s.Team.Add(e.Box)
		s.Opp = s.Opp.Add(e.OppBox)
		s.Possessions += poss
	}

	s.Pace = ratio(s.Possessions, float64(s.BoxGames))
	s.ORTG = 100 * ratio(float64(s.BoxPoints), s.Possessions)
	s.DRTG = 100 * ratio(float64(s.BoxOppPoints), s.Possessions)

	s.EFG = ratio(float64(s.Team.FGM)+0.5*float64(s.Team.FG3M), float64(s.Team.FGA))
	s.TOVPct = ratio(float64(s.Team.TOV), s.Possessions)
	s.OREBPct = ratio(float64(s.Team.OREB), float64(s.Team.OREB+s.Opp.DREB))
	s.FTRate = ratio(float64(s.Team.FTA), float64(s.Team.FGA))

	s.OppEFG = ratio(float64(s.Opp.FGM)+0.5*float64(s.Opp.FG3M), float64(s.Opp.FGA))
	s.OppTOVPct = ratio(float64(s.Opp.TOV), s.Possessions)
	s.OppOREBPct = ratio(float64(s.Opp.OREB), float64(s.Opp.OREB+s.Team.DREB))
	s.OppFTRate = ratio(float64(s.Opp.FTA), float64(s.Opp.FGA))

	return s, nil
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
