package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"projecthub/internal/service"
)

// StatsHandler serves the dashboard summary.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats godoc
// @Summary Workload summary for the caller
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Stats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /stats [get]
func (h *StatsHandler) GetStats(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	stats, err := h.statsService.ForUser(c.Request().Context(), user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
