package models

import "github.com/uptrace/bun"

// Game is one result stored from TeamID's side. Location is H, A or N
// relative to TeamID.
type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	GameID     int64  `bun:"game_id,pk,autoincrement" json:"gameID"`
	League     string `bun:"league,notnull,unique:games_no_dupes" json:"league"`
	Season     int    `bun:"season,notnull,unique:games_no_dupes" json:"season"`
	Date       string `bun:"date,notnull,type:date,unique:games_no_dupes" json:"date"`
	TeamID     int    `bun:"team_id,notnull,unique:games_no_dupes" json:"teamID"`
	OpponentID int    `bun:"opponent_id,notnull,unique:games_no_dupes" json:"opponentID"`
	Location   string `bun:"location,notnull" json:"location"`
	TeamScore  int    `bun:"team_score,notnull" json:"teamScore"`
	OppScore   int    `bun:"opp_score,notnull" json:"oppScore"`

	IsConference bool `bun:"is_conference,notnull,default:false" json:"isConference"`
	IsPostseason bool `bun:"is_postseason,notnull,default:false" json:"isPostseason"`
	IsExhibition bool `bun:"is_exhibition,notnull,default:false" json:"isExhibition"`
	IsNAIA       bool `bun:"is_naia,notnull,default:true" json:"isNaia"`
	Completed    bool `bun:"completed,notnull,default:false" json:"completed"`

	TeamFGM  int `bun:"team_fgm,notnull,default:0" json:"teamFgm"`
	TeamFGA  int `bun:"team_fga,notnull,default:0" json:"teamFga"`
	TeamFG3M int `bun:"team_fg3m,notnull,default:0" json:"teamFg3m"`
	TeamFG3A int `bun:"team_fg3a,notnull,default:0" json:"teamFg3a"`
	TeamFTM  int `bun:"team_ftm,notnull,default:0" json:"teamFtm"`
	TeamFTA  int `bun:"team_fta,notnull,default:0" json:"teamFta"`
	TeamOREB int `bun:"team_oreb,notnull,default:0" json:"teamOreb"`
	TeamDREB int `bun:"team_dreb,notnull,default:0" json:"teamDreb"`
	TeamTOV  int `bun:"team_tov,notnull,default:0" json:"teamTov"`

	OppFGM  int `bun:"opp_fgm,notnull,default:0" json:"oppFgm"`
	OppFGA  int `bun:"opp_fga,notnull,default:0" json:"oppFga"`
	OppFG3M int `bun:"opp_fg3m,notnull,default:0" json:"oppFg3m"`
	OppFG3A int `bun:"opp_fg3a,notnull,default:0" json:"oppFg3a"`
	OppFTM  int `bun:"opp_ftm,notnull,default:0" json:"oppFtm"`
	OppFTA  int `bun:"opp_fta,notnull,default:0" json:"oppFta"`
	OppOREB int `bun:"opp_oreb,notnull,default:0" json:"oppOreb"`
	OppDREB int `bun:"opp_dreb,notnull,default:0" json:"oppDreb"`
	OppTOV  int `bun:"opp_tov,notnull,default:0" json:"oppTov"`
}
