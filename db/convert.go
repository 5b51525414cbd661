package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/padraicbc/hoopsrank/engine"
	"github.com/padraicbc/hoopsrank/models"
	"github.com/padraicbc/hoopsrank/quadrant"
	"github.com/padraicbc/hoopsrank/schedule"
)

func toTeam(m models.Team) schedule.Team {
	t := schedule.Team{
		ID:         m.TeamID,
		Name:       m.Name,
		Conference: m.Conference,
		League:     m.League,
		Member:     m.Member,
	}
	if m.Lat != nil && m.Lon != nil {
		t.Home = &schedule.Coordinate{Lat: *m.Lat, Lon: *m.Lon}
	}
	return t
}

// parseDate accepts both "2006-01-02" and timestamp renderings of a date column.
func parseDate(s string) (time.Time, error) {
	if len(s) < 10 {
		return time.Time{}, fmt.Errorf("bad date %q", s)
	}
	return time.Parse("2006-01-02", s[:10])
}

func toGame(m models.Game) (schedule.Game, error) {
	date, err := parseDate(m.Date)
	if err != nil {
		return schedule.Game{}, fmt.Errorf("game %d: %w", m.GameID, err)
	}
	return schedule.Game{
		ID:            m.GameID,
		Date:          date,
		TeamID:        m.TeamID,
		OpponentID:    m.OpponentID,
		Location:      schedule.Location(m.Location),
		TeamScore:     m.TeamScore,
		OpponentScore: m.OppScore,
		TeamBox: schedule.BoxLine{
			FGM: m.TeamFGM, FGA: m.TeamFGA, FG3M: m.TeamFG3M, FG3A: m.TeamFG3A,
			FTM: m.TeamFTM, FTA: m.TeamFTA, OREB: m.TeamOREB, DREB: m.TeamDREB, TOV: m.TeamTOV,
		},
		OpponentBox: schedule.BoxLine{
			FGM: m.OppFGM, FGA: m.OppFGA, FG3M: m.OppFG3M, FG3A: m.OppFG3A,
			FTM: m.OppFTM, FTA: m.OppFTA, OREB: m.OppOREB, DREB: m.OppDREB, TOV: m.OppTOV,
		},
		Conference: m.IsConference,
		Postseason: m.IsPostseason,
		Exhibition: m.IsExhibition,
		NAIA:       m.IsNAIA,
		Completed:  m.Completed,
	}, nil
}

func runRow(res *engine.Result) (*models.RatingRun, error) {
	warnings := res.Warnings
	if warnings == nil {
		warnings = []engine.Warning{}
	}
	raw, err := json.Marshal(warnings)
	if err != nil {
		return nil, err
	}
	return &models.RatingRun{
		League:     res.League,
		Season:     res.Season,
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
		GamesUsed:  res.GamesUsed,
		TeamsRated: len(res.Teams),
		Iterations: res.Iterations,
		Converged:  res.Converged,
		MaxDelta:   res.MaxDelta,
		Warnings:   raw,
	}, nil
}

func ratingRows(res *engine.Result, runID int64) []models.TeamRating {
	out := make([]models.TeamRating, 0, len(res.Teams))
	for _, t := range res.Teams {
		st, q, c := t.Stats, t.Quads, t.Composite
		out = append(out, models.TeamRating{
			League: res.League,
			Season: res.Season,
			TeamID: t.Team.ID,
			RunID:  runID,

			Games:         st.Games,
			Wins:          st.Wins,
			Losses:        st.Losses,
			NAIAWins:      st.NAIAWins,
			NAIALosses:    st.NAIALosses,
			ConfWins:      st.ConfWins,
			ConfLosses:    st.ConfLosses,
			NonConfWins:   st.NonConfWins,
			NonConfLosses: st.NonConfLosses,
			PPG:           st.PPG(),
			OppPPG:        st.OppPPG(),
			Pace:          st.Pace,
			ORTG:          st.ORTG,
			DRTG:          st.DRTG,
			EFGPct:        st.EFG,
			TOVPct:        st.TOVPct,
			OREBPct:       st.OREBPct,
			FTRate:        st.FTRate,
			OppEFGPct:     st.OppEFG,
			OppTOVPct:     st.OppTOVPct,
			OppOREBPct:    st.OppOREBPct,
			OppFTRate:     st.OppFTRate,

			WinPct:  t.RPI.WP,
			OWP:     t.RPI.OWP,
			OOWP:    t.RPI.OOWP,
			RPI:     t.RPI.RPI,
			RPIRank: t.RPI.Rank,

			AdjRated: t.Rated,
			AdjORTG:  t.Adjusted.AdjORTG,
			AdjDRTG:  t.Adjusted.AdjDRTG,
			AdjNet:   t.Adjusted.AdjNet,
			OSOS:     t.Adjusted.OSOS,
			DSOS:     t.Adjusted.DSOS,
			NSOS:     t.Adjusted.NSOS,

			Q1Wins: q.W(quadrant.Q1), Q1Losses: q.L(quadrant.Q1),
			Q2Wins: q.W(quadrant.Q2), Q2Losses: q.L(quadrant.Q2),
			Q3Wins: q.W(quadrant.Q3), Q3Losses: q.L(quadrant.Q3),
			Q4Wins: q.W(quadrant.Q4), Q4Losses: q.L(quadrant.Q4),

			QWP:        c.QWP,
			QWI:        c.QWI,
			PCRAvg:     c.PCRAvg,
			PCR:        c.PCR,
			PowerIndex: c.PowerIndex,
			PowerRank:  c.PowerRank,
		})
	}
	return out
}

func conferenceRows(res *engine.Result, runID int64) []models.ConferenceRating {
	out := make([]models.ConferenceRating, 0, len(res.Conferences))
	for _, c := range res.Conferences {
		out = append(out, models.ConferenceRating{
			League:        res.League,
			Season:        res.Season,
			Conference:    c.Conference,
			RunID:         runID,
			Teams:         c.Teams,
			RatedTeams:    c.RatedTeams,
			AvgAdjNet:     c.AvgAdjNet,
			AvgRPI:        c.AvgRPI,
			AvgAdjORTG:    c.AvgAdjORTG,
			AvgAdjDRTG:    c.AvgAdjDRTG,
			AvgSOS:        c.AvgSOS,
			NonConfWins:   c.NonConfWins,
			NonConfLosses: c.NonConfLosses,
			NonConfWinPct: c.NonConfWinPct,
			TopHalfAdjNet: c.TopHalfAdjNet,
			Rank:          c.Rank,
		})
	}
	return out
}

// bracketRows flattens the projection. Every pod gets all of its slot rows,
// empty ones included.
func bracketRows(res *engine.Result, runID int64) ([]models.BracketSeed, []models.PodSlot) {
	if res.Bracket == nil {
		return nil, nil
	}
	var seeds []models.BracketSeed
	for _, tier := range res.Bracket.Tiers {
		for _, s := range tier.Seeds {
			seeds = append(seeds, models.BracketSeed{
				League:  res.League,
				Season:  res.Season,
				TeamID:  s.Team.ID,
				RunID:   runID,
				Tier:    tier.Number,
				RPIRank: s.Rank,
			})
		}
	}

	var slots []models.PodSlot
	for _, pod := range res.Bracket.Pods {
		for i, s := range pod.Slots {
			row := models.PodSlot{
				League:   res.League,
				Season:   res.Season,
				HostID:   pod.Host.Team.ID,
				Slot:     i + 1,
				RunID:    runID,
				HostRank: pod.Host.Rank,
				Relaxed:  s.Relaxed,
			}
			if s.Visitor != nil {
				id, rank, tier, dist := s.Visitor.Team.ID, s.Visitor.Rank, s.Tier, s.Distance
				row.VisitorID, row.VisitorRank, row.VisitorTier, row.DistanceMiles = &id, &rank, &tier, &dist
			}
			slots = append(slots, row)
		}
	}
	return seeds, slots
}
