// Package engine runs the full ratings batch for one league and season: load
// the snapshot, compute every stage, and hand the complete result to a Writer
// in one call. Nothing is written when a stage fails.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/padraicbc/hoopsrank/bracket"
	"github.com/padraicbc/hoopsrank/composite"
	"github.com/padraicbc/hoopsrank/efficiency"
	"github.com/padraicbc/hoopsrank/fourfactor"
	"github.com/padraicbc/hoopsrank/quadrant"
	"github.com/padraicbc/hoopsrank/rpi"
	"github.com/padraicbc/hoopsrank/schedule"
)

// Reader supplies the team directory and the season's games.
type Reader interface {
	Teams(ctx context.Context, league string) ([]schedule.Team, error)
	Games(ctx context.Context, league string, season int) ([]schedule.Game, error)
}

// Writer persists a finished run. Commit must replace the league+season's
// previous results atomically.
type Writer interface {
	Commit(ctx context.Context, res *Result) error
}

// Warning kinds.
const (
	WarnInsufficientData = "insufficient_data"
	WarnConvergence      = "convergence"
	WarnBracket          = "bracket"
	WarnNoBoxScores      = "no_box_scores"
)

// Warning is a non-fatal condition reported with the run.
type Warning struct {
	Kind    string `json:"kind"`
	TeamID  int    `json:"teamID,omitempty"`
	Message string `json:"message"`
}

// TeamResult is every derived number for one ranked team.
type TeamResult struct {
	Team      schedule.Team
	Stats     fourfactor.Stats
	RPI       rpi.Components
	Adjusted  efficiency.Rating
	Rated     bool // false when no game had a box score
	Quads     quadrant.Record
	Composite composite.Ranking
}

// Result is one complete run. Teams are sorted by RPI rank.
type Result struct {
	League      string
	Season      int
	StartedAt   time.Time
	FinishedAt  time.Time
	GamesUsed   int
	Iterations  int
	Converged   bool
	MaxDelta    float64
	Teams       []TeamResult
	Conferences []composite.ConferenceRating
	Bracket     *bracket.Projection
	Warnings    []Warning
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithSolver sets the efficiency solver options.
func WithSolver(o efficiency.Options) Option {
	return func(e *Engine) { e.solver = o }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine computes and commits ratings.
type Engine struct {
	reader Reader
	writer Writer
	log    *zap.Logger
	solver efficiency.Options
	now    func() time.Time
}

// New builds an Engine.
func New(r Reader, w Writer, opts ...Option) *Engine {
	e := &Engine{
		reader: r,
		writer: w,
		log:    zap.NewNop(),
		solver: efficiency.DefaultOptions(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run computes league+season and commits the result.
func (e *Engine) Run(ctx context.Context, league string, season int) (*Result, error) {
	res, err := e.Compute(ctx, league, season)
	if err != nil {
		return nil, err
	}
	if err := e.writer.Commit(ctx, res); err != nil {
		return nil, fmt.Errorf("commit %s %d: %w", league, season, err)
	}
	e.log.Info("ratings committed",
		zap.String("league", league),
		zap.Int("season", season),
		zap.Int("teams", len(res.Teams)),
		zap.Int("warnings", len(res.Warnings)),
		zap.Duration("took", res.FinishedAt.Sub(res.StartedAt)),
	)
	return res, nil
}

// RunAll runs each league in parallel. Leagues are independent: one failing
// does not roll back another.
func (e *Engine) RunAll(ctx context.Context, leagues []string, season int) ([]*Result, error) {
	results := make([]*Result, len(leagues))
	p := pool.New().WithErrors().WithContext(ctx)
	for i, lg := range leagues {
		i, lg := i, lg
		p.Go(func(ctx context.Context) error {
			res, err := e.Run(ctx, lg, season)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	err := p.Wait()
	return results, err
}

// Compute runs every stage without writing anything.
func (e *Engine) Compute(ctx context.Context, league string, season int) (*Result, error) {
	res := &Result{League: league, Season: season, StartedAt: e.now()}
	log := e.log.With(zap.String("league", league), zap.Int("season", season))

	teams, err := e.reader.Teams(ctx, league)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	games, err := e.reader.Games(ctx, league, season)
	if err != nil {
		return nil, fmt.Errorf("load games: %w", err)
	}

	g, err := schedule.Build(teams, games)
	if err != nil {
		return nil, fmt.Errorf("build opponent graph: %w", err)
	}
	res.GamesUsed = g.GamesUsed()
	log.Debug("opponent graph built",
		zap.Int("teams", len(teams)),
		zap.Int("games", g.GamesUsed()),
		zap.Int("skipped", g.GamesSkipped()),
	)

	stats, ranked := e.aggregate(g, res, log)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table := rpi.Solve(g, ranked)

	solved := efficiency.Solve(efficiencyInputs(g, stats), e.solver)
	res.Iterations, res.Converged, res.MaxDelta = solved.Iterations, solved.Converged, solved.MaxDelta
	if !solved.Converged {
		msg := fmt.Sprintf("adjusted ratings did not converge after %d iterations (max delta %.4f)", solved.Iterations, solved.MaxDelta)
		res.Warnings = append(res.Warnings, Warning{Kind: WarnConvergence, Message: msg})
		log.Warn("adjusted ratings did not converge",
			zap.Int("iterations", solved.Iterations),
			zap.Float64("max_delta", solved.MaxDelta),
		)
	}

	quads := quadrant.Tally(g, table.Ranks(), ranked)

	inputs := make([]composite.Input, 0, len(ranked))
	for _, id := range ranked {
		team, _ := g.Team(id)
		st := stats[id]
		adj, rated := solved.Ratings[id]
		if !rated {
			res.Warnings = append(res.Warnings, Warning{
				Kind:    WarnNoBoxScores,
				TeamID:  id,
				Message: fmt.Sprintf("%s: no box scores, adjusted ratings unavailable", team.Name),
			})
			log.Warn("team has no adjusted rating", zap.Int("team_id", id), zap.String("team", team.Name))
		}
		inputs = append(inputs, composite.Input{
			Team:          team,
			WinPct:        st.WinPct(),
			NAIAWinPct:    st.NAIAWinPct(),
			RPI:           table[id].RPI,
			Adjusted:      adj,
			Rated:         rated,
			Quads:         quads[id],
			NonConfWins:   st.NonConfWins,
			NonConfLosses: st.NonConfLosses,
		})
	}
	rankings := composite.Compute(inputs)
	res.Conferences = composite.Conferences(inputs)

	for _, in := range inputs {
		id := in.Team.ID
		res.Teams = append(res.Teams, TeamResult{
			Team:      in.Team,
			Stats:     stats[id],
			RPI:       *table[id],
			Adjusted:  in.Adjusted,
			Rated:     in.Rated,
			Quads:     in.Quads,
			Composite: rankings[id],
		})
	}
	sort.Slice(res.Teams, func(i, j int) bool { return res.Teams[i].RPI.Rank < res.Teams[j].RPI.Rank })

	seeds := make([]bracket.Seed, len(res.Teams))
	for i, t := range res.Teams {
		seeds[i] = bracket.Seed{Team: t.Team, Rank: t.RPI.Rank}
	}
	proj, err := bracket.Project(seeds)
	switch {
	case errors.Is(err, bracket.ErrMissingLocation):
		res.Warnings = append(res.Warnings, Warning{Kind: WarnBracket, Message: err.Error()})
		log.Warn("bracket projection skipped", zap.Error(err))
	case err != nil:
		return nil, fmt.Errorf("project bracket: %w", err)
	default:
		res.Bracket = &proj
	}

	res.FinishedAt = e.now()
	log.Info("ratings computed",
		zap.Int("ranked", len(res.Teams)),
		zap.Int("iterations", res.Iterations),
		zap.Bool("converged", res.Converged),
	)
	return res, nil
}

// aggregate builds season stats for every active team and returns the ids of
// the ranked teams: members with at least one eligible game.
func (e *Engine) aggregate(g *schedule.Graph, res *Result, log *zap.Logger) (map[int]fourfactor.Stats, []int) {
	stats := make(map[int]fourfactor.Stats)
	var ranked []int
	for _, id := range g.TeamIDs() {
		team, _ := g.Team(id)
		st, err := fourfactor.Aggregate(g.Schedule(id))
		if errors.Is(err, fourfactor.ErrInsufficientData) {
			if team.Member {
				res.Warnings = append(res.Warnings, Warning{
					Kind:    WarnInsufficientData,
					TeamID:  id,
					Message: fmt.Sprintf("%s: %v", team.Name, err),
				})
				log.Warn("team excluded", zap.Int("team_id", id), zap.String("team", team.Name), zap.Error(err))
			}
			continue
		}
		stats[id] = st
		if team.Member {
			ranked = append(ranked, id)
		}
	}
	return stats, ranked
}

// efficiencyInputs covers every active team with a possession estimate, so
// non-member opponents still shape strength of schedule. Only games with a box
// score count, matching the games behind ORTG and DRTG.
func efficiencyInputs(g *schedule.Graph, stats map[int]fourfactor.Stats) []efficiency.Input {
	ids := make([]int, 0, len(stats))
	for id, st := range stats {
		if st.Possessions > 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	out := make([]efficiency.Input, 0, len(ids))
	for _, id := range ids {
		st := stats[id]
		entries := g.Schedule(id)
		opps := make([]efficiency.Opponent, 0, len(entries))
		for _, en := range entries {
			if fourfactor.Possessions(en.Box, en.OppBox) > 0 {
				opps = append(opps, efficiency.Opponent{Team: en.Opponent, Location: en.Location})
			}
		}
		out = append(out, efficiency.Input{Team: id, ORTG: st.ORTG, DRTG: st.DRTG, Games: opps})
	}
	return out
}
