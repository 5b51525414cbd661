package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/hoopsrank/rank"
)

// Metrics lists every ranked metric with its better direction, so clients
// sort and colour columns the same way the rankings do.
func (h *Handler) Metrics(c echo.Context) error {
	out := map[string]string{}
	for name, d := range rank.Metrics() {
		out[name] = d.String()
	}
	return c.JSON(http.StatusOK, out)
}
