package models

import "github.com/uptrace/bun"

// BracketSeed places a team on a seed line.
type BracketSeed struct {
	bun.BaseModel `bun:"table:bracket_seeds,alias:bs"`

	ID      int64  `bun:"id,pk,autoincrement" json:"-"`
	League  string `bun:"league,notnull,unique:bracket_seeds_team" json:"league"`
	Season  int    `bun:"season,notnull,unique:bracket_seeds_team" json:"season"`
	TeamID  int    `bun:"team_id,notnull,unique:bracket_seeds_team" json:"teamID"`
	RunID   int64  `bun:"run_id,notnull" json:"runID"`
	Tier    int    `bun:"tier,notnull" json:"tier"`
	RPIRank int    `bun:"rpi_rank,notnull" json:"rpiRank"`
}

// PodSlot is one visitor slot of a pod. Empty slots have a nil VisitorID.
type PodSlot struct {
	bun.BaseModel `bun:"table:pod_slots,alias:ps"`

	ID            int64    `bun:"id,pk,autoincrement" json:"-"`
	League        string   `bun:"league,notnull,unique:pod_slots_slot" json:"league"`
	Season        int      `bun:"season,notnull,unique:pod_slots_slot" json:"season"`
	HostID        int      `bun:"host_id,notnull,unique:pod_slots_slot" json:"hostID"`
	Slot          int      `bun:"slot,notnull,unique:pod_slots_slot" json:"slot"`
	RunID         int64    `bun:"run_id,notnull" json:"runID"`
	HostRank      int      `bun:"host_rank,notnull" json:"hostRank"`
	VisitorID     *int     `bun:"visitor_id" json:"visitorID,omitempty"`
	VisitorRank   *int     `bun:"visitor_rank" json:"visitorRank,omitempty"`
	VisitorTier   *int     `bun:"visitor_tier" json:"visitorTier,omitempty"`
	DistanceMiles *float64 `bun:"distance_miles" json:"distanceMiles,omitempty"`
	Relaxed       bool     `bun:"relaxed,notnull,default:false" json:"relaxed"`
}
