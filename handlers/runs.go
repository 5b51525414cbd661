package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/hoopsrank/models"
)

type runSummary struct {
	League     string `json:"league"`
	Season     int    `json:"season"`
	GamesUsed  int    `json:"gamesUsed"`
	TeamsRated int    `json:"teamsRated"`
	Iterations int    `json:"iterations"`
	Converged  bool   `json:"converged"`
	Warnings   int    `json:"warnings"`
}

// LatestRun returns the most recent committed run of a league and season.
func (h *Handler) LatestRun(c echo.Context) error {
	league, season, err := scope(c)
	if err != nil {
		return err
	}

	run := &models.RatingRun{}
	err = h.db.NewSelect().Model(run).
		Where("rr.league = ?", league).
		Where("rr.season = ?", season).
		OrderExpr("rr.run_id DESC").
		Limit(1).
		Scan(c.Request().Context())
	if errors.Is(err, sql.ErrNoRows) {
		return echo.NewHTTPError(http.StatusNotFound, "no runs yet")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, run)
}

// TriggerRun runs the engine for a league and season and commits the result.
// Only admin users may call it.
func (h *Handler) TriggerRun(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}
	league, season, err := scope(c)
	if err != nil {
		return err
	}

	res, err := h.runner.Run(c.Request().Context(), league, season)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, runSummary{
		League:     res.League,
		Season:     res.Season,
		GamesUsed:  res.GamesUsed,
		TeamsRated: len(res.Teams),
		Iterations: res.Iterations,
		Converged:  res.Converged,
		Warnings:   len(res.Warnings),
	})
}
