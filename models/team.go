package models

import "github.com/uptrace/bun"

// Team is a team directory row. Non-member teams are opponents from outside
// the association and are never ranked.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	TeamID     int      `bun:"team_id,pk,autoincrement" json:"teamID"`
	Name       string   `bun:"name,notnull,unique:teams_name_league" json:"name"`
	Conference string   `bun:"conference,notnull,default:''" json:"conference"`
	League     string   `bun:"league,notnull,unique:teams_name_league" json:"league"`
	Member     bool     `bun:"member,notnull,default:true" json:"member"`
	Lat        *float64 `bun:"lat" json:"lat,omitempty"`
	Lon        *float64 `bun:"lon" json:"lon,omitempty"`
}
