package handlers

import (
	"context"
	"strings"

	"github.com/uptrace/bun"

	"github.com/padraicbc/hoopsrank/engine"
)

// Runner triggers a ratings run.
type Runner interface {
	Run(ctx context.Context, league string, season int) (*engine.Result, error)
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db     *bun.DB
	runner Runner
	admins map[string]bool
	JWTKey []byte
}

// New creates a Handler. admins lists the usernames allowed to trigger runs;
// matching ignores case.
func New(db *bun.DB, runner Runner, jwtKey []byte, admins []string) *Handler {
	h := &Handler{db: db, runner: runner, JWTKey: jwtKey, admins: make(map[string]bool, len(admins))}
	for _, a := range admins {
		if a = normalizeUsername(a); a != "" {
			h.admins[a] = true
		}
	}
	return h
}

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
