package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/padraicbc/hoopsrank/models"
	"github.com/padraicbc/hoopsrank/quadrant"
	"github.com/padraicbc/hoopsrank/rank"
	"github.com/padraicbc/hoopsrank/schedule"
)

// sortColumns maps a public metric name to its team_ratings column.
var sortColumns = map[string]string{
	"win_pct":      "tr.win_pct",
	"rpi":          "tr.rpi",
	"rpi_rank":     "tr.rpi_rank",
	"owp":          "tr.owp",
	"oowp":         "tr.oowp",
	"qwp":          "tr.qwp",
	"qwi":          "tr.qwi",
	"pcr":          "tr.pcr",
	"pcr_avg":      "tr.pcr_avg",
	"power_index":  "tr.power_index",
	"ortg":         "tr.ortg",
	"drtg":         "tr.drtg",
	"adj_ortg":     "tr.adj_ortg",
	"adj_drtg":     "tr.adj_drtg",
	"adj_net":      "tr.adj_net",
	"sos":          "tr.nsos",
	"pace":         "tr.pace",
	"efg_pct":      "tr.efg_pct",
	"tov_pct":      "tr.tov_pct",
	"oreb_pct":     "tr.oreb_pct",
	"ft_rate":      "tr.ft_rate",
	"opp_efg_pct":  "tr.opp_efg_pct",
	"opp_tov_pct":  "tr.opp_tov_pct",
	"opp_oreb_pct": "tr.opp_oreb_pct",
	"opp_ft_rate":  "tr.opp_ft_rate",
}

// scope reads the required league and season query params.
func scope(c echo.Context) (string, int, error) {
	league := c.QueryParam("league")
	if league == "" {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "missing league param")
	}
	season, err := strconv.Atoi(c.QueryParam("season"))
	if err != nil || season <= 0 {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "missing or bad season param")
	}
	return league, season, nil
}

// adjustedMetrics are only meaningful for teams with adjusted ratings.
var adjustedMetrics = map[string]bool{
	"adj_ortg": true, "adj_drtg": true, "adj_net": true, "sos": true, "power_index": true,
}

// orderFor returns the ORDER BY expression for metric, best first. Teams
// without adjusted ratings sort last on adjusted metrics.
func orderFor(metric string) (string, bool) {
	if metric == "" {
		metric = "rpi_rank"
	}
	col, ok := sortColumns[metric]
	if !ok {
		return "", false
	}
	dir := " DESC"
	if rank.Directionality(metric) == rank.LowerBetter {
		dir = " ASC"
	}
	order := col + dir + ", t.name ASC"
	if adjustedMetrics[metric] {
		order = "tr.adj_rated DESC, " + order
	}
	return order, true
}

// Ratings returns every rated team of a league and season. Optional params:
// sort (a metric name), conference, minGames.
func (h *Handler) Ratings(c echo.Context) error {
	league, season, err := scope(c)
	if err != nil {
		return err
	}
	order, ok := orderFor(c.QueryParam("sort"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown sort metric")
	}

	sb := h.db.NewSelect().Model((*models.TeamRating)(nil)).
		Relation("Team").
		Where("tr.league = ?", league).
		Where("tr.season = ?", season)
	applyRatingFilters(sb, c.QueryParams())

	var rows []models.TeamRating
	if err := sb.OrderExpr(order).Scan(c.Request().Context(), &rows); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, rows)
}

func applyRatingFilters(sb *bun.SelectQuery, q map[string][]string) {
	get := func(k string) string {
		if v, ok := q[k]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	if v := get("conference"); v != "" {
		sb.Where("t.conference = ?", v)
	}
	if v := get("minGames"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			sb.Where("tr.games >= ?", n)
		}
	}
}

type teamGame struct {
	GameID    int64  `json:"gameID"`
	Date      string `json:"date"`
	Opponent  string `json:"opponent"`
	OppID     int    `json:"opponentID"`
	Location  string `json:"location"`
	Score     int    `json:"score"`
	OppScore  int    `json:"oppScore"`
	Result    string `json:"result"`
	OppRank   *int   `json:"oppRpiRank,omitempty"`
	Quadrant  string `json:"quadrant,omitempty"`
	Postseas  bool   `json:"postseason"`
	Conf      bool   `json:"conference"`
	Completed bool   `json:"completed"`
}

type teamDetail struct {
	Rating models.TeamRating `json:"rating"`
	Games  []teamGame        `json:"games"`
}

// TeamRating returns one team's rating row plus its games, each labelled with
// the opponent's current RPI rank and quadrant.
func (h *Handler) TeamRating(c echo.Context) error {
	league, season, err := scope(c)
	if err != nil {
		return err
	}
	teamID, err := strconv.Atoi(c.Param("teamID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad teamID")
	}

	ctx := c.Request().Context()
	var detail teamDetail
	err = h.db.NewSelect().Model(&detail.Rating).
		Relation("Team").
		Where("tr.league = ?", league).
		Where("tr.season = ?", season).
		Where("tr.team_id = ?", teamID).
		Scan(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "no rating for team")
	}

	var games []models.Game
	err = h.db.NewSelect().Model(&games).
		Where("g.league = ?", league).
		Where("g.season = ?", season).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("g.team_id = ?", teamID).WhereOr("g.opponent_id = ?", teamID)
		}).
		OrderExpr("g.date ASC, g.game_id ASC").
		Scan(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var others []opponentRow
	if err := opponentsQuery(h.db, teamID, league, season).Scan(ctx, &others); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	names := make(map[int]string, len(others))
	ranks := make(map[int]*int, len(others))
	for _, o := range others {
		names[o.TeamID] = o.Name
		ranks[o.TeamID] = o.RPIRank
	}

	detail.Games = make([]teamGame, 0, len(games))
	for _, g := range games {
		detail.Games = append(detail.Games, sideOf(g, teamID, names, ranks))
	}

	return c.JSON(http.StatusOK, detail)
}

type opponentRow struct {
	TeamID  int    `bun:"team_id"`
	Name    string `bun:"name"`
	RPIRank *int   `bun:"rpi_rank"`
}

// opponentsQuery selects the name and RPI rank of every team teamID met in
// league+season.
func opponentsQuery(db *bun.DB, teamID int, league string, season int) *bun.SelectQuery {
	return db.NewSelect().
		TableExpr("teams t").
		ColumnExpr("t.team_id, t.name, tr.rpi_rank").
		Join("LEFT JOIN team_ratings tr ON tr.team_id = t.team_id AND tr.league = ? AND tr.season = ?", league, season).
		Where("t.team_id IN (SELECT g.opponent_id FROM games g WHERE g.team_id = ? AND g.league = ? AND g.season = ?"+
			" UNION SELECT g.team_id FROM games g WHERE g.opponent_id = ? AND g.league = ? AND g.season = ?)",
			teamID, league, season, teamID, league, season)
}

// sideOf renders g from teamID's point of view.
func sideOf(g models.Game, teamID int, names map[int]string, ranks map[int]*int) teamGame {
	loc := schedule.Location(g.Location)
	opp, score, oppScore := g.OpponentID, g.TeamScore, g.OppScore
	if g.TeamID != teamID {
		loc = loc.Flip()
		opp, score, oppScore = g.TeamID, g.OppScore, g.TeamScore
	}

	tg := teamGame{
		GameID:    g.GameID,
		Date:      g.Date,
		Opponent:  names[opp],
		OppID:     opp,
		Location:  string(loc),
		Score:     score,
		OppScore:  oppScore,
		OppRank:   ranks[opp],
		Postseas:  g.IsPostseason,
		Conf:      g.IsConference,
		Completed: g.Completed,
	}
	if !g.Completed {
		return tg
	}
	switch {
	case score > oppScore:
		tg.Result = "W"
	case score < oppScore:
		tg.Result = "L"
	}
	if tg.OppRank != nil && g.IsNAIA && !g.IsExhibition {
		tg.Quadrant = quadrant.Classify(*tg.OppRank, loc).String()
	}
	return tg
}
