package models

import "github.com/uptrace/bun"

// TeamRating is the current derived row for one team, replaced on every run.
type TeamRating struct {
	bun.BaseModel `bun:"table:team_ratings,alias:tr"`

	ID     int64  `bun:"id,pk,autoincrement" json:"-"`
	League string `bun:"league,notnull,unique:team_ratings_team" json:"league"`
	Season int    `bun:"season,notnull,unique:team_ratings_team" json:"season"`
	TeamID int    `bun:"team_id,notnull,unique:team_ratings_team" json:"teamID"`
	RunID  int64  `bun:"run_id,notnull" json:"runID"`

	// season stats
	Games         int     `bun:"games,notnull" json:"games"`
	Wins          int     `bun:"wins,notnull" json:"wins"`
	Losses        int     `bun:"losses,notnull" json:"losses"`
	NAIAWins      int     `bun:"naia_wins,notnull" json:"naiaWins"`
	NAIALosses    int     `bun:"naia_losses,notnull" json:"naiaLosses"`
	ConfWins      int     `bun:"conf_wins,notnull" json:"confWins"`
	ConfLosses    int     `bun:"conf_losses,notnull" json:"confLosses"`
	NonConfWins   int     `bun:"non_conf_wins,notnull" json:"nonConfWins"`
	NonConfLosses int     `bun:"non_conf_losses,notnull" json:"nonConfLosses"`
	PPG           float64 `bun:"ppg,notnull" json:"ppg"`
	OppPPG        float64 `bun:"opp_ppg,notnull" json:"oppPpg"`
	Pace          float64 `bun:"pace,notnull" json:"pace"`
	ORTG          float64 `bun:"ortg,notnull" json:"ortg"`
	DRTG          float64 `bun:"drtg,notnull" json:"drtg"`
	EFGPct        float64 `bun:"efg_pct,notnull" json:"efgPct"`
	TOVPct        float64 `bun:"tov_pct,notnull" json:"tovPct"`
	OREBPct       float64 `bun:"oreb_pct,notnull" json:"orebPct"`
	FTRate        float64 `bun:"ft_rate,notnull" json:"ftRate"`
	OppEFGPct     float64 `bun:"opp_efg_pct,notnull" json:"oppEfgPct"`
	OppTOVPct     float64 `bun:"opp_tov_pct,notnull" json:"oppTovPct"`
	OppOREBPct    float64 `bun:"opp_oreb_pct,notnull" json:"oppOrebPct"`
	OppFTRate     float64 `bun:"opp_ft_rate,notnull" json:"oppFtRate"`

	// rpi, double precision keeps tie-breaks stable
	WinPct  float64 `bun:"win_pct,notnull,type:double precision" json:"winPct"`
	OWP     float64 `bun:"owp,notnull,type:double precision" json:"owp"`
	OOWP    float64 `bun:"oowp,notnull,type:double precision" json:"oowp"`
	RPI     float64 `bun:"rpi,notnull,type:double precision" json:"rpi"`
	RPIRank int     `bun:"rpi_rank,notnull" json:"rpiRank"`

	// adjusted efficiency, zero when AdjRated is false
	AdjRated bool    `bun:"adj_rated,notnull" json:"adjRated"`
	AdjORTG  float64 `bun:"adj_ortg,notnull" json:"adjOrtg"`
	AdjDRTG  float64 `bun:"adj_drtg,notnull" json:"adjDrtg"`
	AdjNet   float64 `bun:"adj_net,notnull" json:"adjNet"`
	OSOS     float64 `bun:"osos,notnull" json:"osos"`
	DSOS     float64 `bun:"dsos,notnull" json:"dsos"`
	NSOS     float64 `bun:"nsos,notnull" json:"nsos"`

	// quadrants
	Q1Wins   int `bun:"q1_wins,notnull" json:"q1Wins"`
	Q1Losses int `bun:"q1_losses,notnull" json:"q1Losses"`
	Q2Wins   int `bun:"q2_wins,notnull" json:"q2Wins"`
	Q2Losses int `bun:"q2_losses,notnull" json:"q2Losses"`
	Q3Wins   int `bun:"q3_wins,notnull" json:"q3Wins"`
	Q3Losses int `bun:"q3_losses,notnull" json:"q3Losses"`
	Q4Wins   int `bun:"q4_wins,notnull" json:"q4Wins"`
	Q4Losses int `bun:"q4_losses,notnull" json:"q4Losses"`

	// composite
	QWP        float64 `bun:"qwp,notnull" json:"qwp"`
	QWI        float64 `bun:"qwi,notnull" json:"qwi"`
	PCRAvg     float64 `bun:"pcr_avg,notnull" json:"pcrAvg"`
	PCR        int     `bun:"pcr,notnull" json:"pcr"`
	PowerIndex float64 `bun:"power_index,notnull" json:"powerIndex"`
	PowerRank  int     `bun:"power_rank,notnull" json:"powerRank"`

	Team *Team `bun:"rel:belongs-to,join:team_id=team_id" json:"team,omitempty"`
}

// ConferenceRating is a conference rollup row.
type ConferenceRating struct {
	bun.BaseModel `bun:"table:conference_ratings,alias:cr"`

	ID            int64   `bun:"id,pk,autoincrement" json:"-"`
	League        string  `bun:"league,notnull,unique:conference_ratings_conf" json:"league"`
	Season        int     `bun:"season,notnull,unique:conference_ratings_conf" json:"season"`
	Conference    string  `bun:"conference,notnull,unique:conference_ratings_conf" json:"conference"`
	RunID         int64   `bun:"run_id,notnull" json:"runID"`
	Teams         int     `bun:"teams,notnull" json:"teams"`
	RatedTeams    int     `bun:"rated_teams,notnull" json:"ratedTeams"`
	AvgAdjNet     float64 `bun:"avg_adj_net,notnull" json:"avgAdjNet"`
	AvgRPI        float64 `bun:"avg_rpi,notnull,type:double precision" json:"avgRpi"`
	AvgAdjORTG    float64 `bun:"avg_adj_ortg,notnull" json:"avgAdjOrtg"`
	AvgAdjDRTG    float64 `bun:"avg_adj_drtg,notnull" json:"avgAdjDrtg"`
	AvgSOS        float64 `bun:"avg_sos,notnull" json:"avgSos"`
	NonConfWins   int     `bun:"non_conf_wins,notnull" json:"nonConfWins"`
	NonConfLosses int     `bun:"non_conf_losses,notnull" json:"nonConfLosses"`
	NonConfWinPct float64 `bun:"non_conf_win_pct,notnull" json:"nonConfWinPct"`
	TopHalfAdjNet float64 `bun:"top_half_adj_net,notnull" json:"topHalfAdjNet"`
	Rank          int     `bun:"rank,notnull" json:"rank"`
}
