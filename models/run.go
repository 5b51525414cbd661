package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// RatingRun records one committed batch run.
type RatingRun struct {
	bun.BaseModel `bun:"table:rating_runs,alias:rr"`

	RunID      int64           `bun:"run_id,pk,autoincrement" json:"runID"`
	League     string          `bun:"league,notnull" json:"league"`
	Season     int             `bun:"season,notnull" json:"season"`
	StartedAt  time.Time       `bun:"started_at,notnull" json:"startedAt"`
	FinishedAt time.Time       `bun:"finished_at,notnull" json:"finishedAt"`
	GamesUsed  int             `bun:"games_used,notnull" json:"gamesUsed"`
	TeamsRated int             `bun:"teams_rated,notnull" json:"teamsRated"`
	Iterations int             `bun:"iterations,notnull" json:"iterations"`
	Converged  bool            `bun:"converged,notnull" json:"converged"`
	MaxDelta   float64         `bun:"max_delta,notnull" json:"maxDelta"`
	Warnings   json.RawMessage `bun:"warnings,notnull,type:jsonb" json:"warnings"`
}
