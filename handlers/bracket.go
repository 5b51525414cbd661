package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/hoopsrank/models"
)

type bracketTeam struct {
	TeamID  int    `bun:"team_id" json:"teamID"`
	Name    string `bun:"name" json:"name"`
	Conf    string `bun:"conference" json:"conference"`
	Tier    int    `bun:"tier" json:"tier"`
	RPIRank int    `bun:"rpi_rank" json:"rpiRank"`
}

type podVisitor struct {
	Slot          int      `json:"slot"`
	TeamID        *int     `json:"teamID,omitempty"`
	Name          string   `json:"name,omitempty"`
	RPIRank       *int     `json:"rpiRank,omitempty"`
	Tier          *int     `json:"tier,omitempty"`
	DistanceMiles *float64 `json:"distanceMiles,omitempty"`
	Relaxed       bool     `json:"relaxed"`
}

type pod struct {
	HostID   int          `json:"hostID"`
	Host     string       `json:"host"`
	HostRank int          `json:"hostRank"`
	Visitors []podVisitor `json:"visitors"`
}

type bracketJSON struct {
	Seeds []bracketTeam `json:"seeds"`
	Pods  []pod         `json:"pods"`
}

// Bracket returns the projected seed lines and pods of a league and season.
func (h *Handler) Bracket(c echo.Context) error {
	league, season, err := scope(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var out bracketJSON
	err = h.db.NewSelect().
		TableExpr("bracket_seeds bs").
		ColumnExpr("bs.team_id, t.name, t.conference, bs.tier, bs.rpi_rank").
		Join("INNER JOIN teams t ON t.team_id = bs.team_id").
		Where("bs.league = ?", league).
		Where("bs.season = ?", season).
		OrderExpr("bs.rpi_rank ASC").
		Scan(ctx, &out.Seeds)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var slots []models.PodSlot
	err = h.db.NewSelect().Model(&slots).
		Where("ps.league = ?", league).
		Where("ps.season = ?", season).
		OrderExpr("ps.host_rank ASC, ps.slot ASC").
		Scan(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	names := make(map[int]string, len(out.Seeds))
	for _, s := range out.Seeds {
		names[s.TeamID] = s.Name
	}
	out.Pods = groupSlotsByHost(slots, names)

	return c.JSON(http.StatusOK, out)
}

// groupSlotsByHost folds slot rows, already ordered by host rank, into pods.
func groupSlotsByHost(slots []models.PodSlot, names map[int]string) []pod {
	pods := []pod{}
	index := map[int]int{}

	for _, s := range slots {
		i, ok := index[s.HostID]
		if !ok {
			i = len(pods)
			index[s.HostID] = i
			pods = append(pods, pod{HostID: s.HostID, Host: names[s.HostID], HostRank: s.HostRank})
		}
		v := podVisitor{
			Slot:          s.Slot,
			TeamID:        s.VisitorID,
			RPIRank:       s.VisitorRank,
			Tier:          s.VisitorTier,
			DistanceMiles: s.DistanceMiles,
			Relaxed:       s.Relaxed,
		}
		if s.VisitorID != nil {
			v.Name = names[*s.VisitorID]
		}
		pods[i].Visitors = append(pods[i].Visitors, v)
	}

	return pods
}
