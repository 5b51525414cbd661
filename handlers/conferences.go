package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/hoopsrank/models"
)

// Conferences returns the conference rollups of a league and season, best first.
func (h *Handler) Conferences(c echo.Context) error {
	league, season, err := scope(c)
	if err != nil {
		return err
	}

	var rows []models.ConferenceRating
	err = h.db.NewSelect().Model(&rows).
		Where("cr.league = ?", league).
		Where("cr.season = ?", season).
		OrderExpr("cr.rank ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, rows)
}
