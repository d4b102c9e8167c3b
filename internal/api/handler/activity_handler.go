package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/event-hub/internal/core/domain"
)

// ActivitySource exposes the recent-request log, newest first.
type ActivitySource interface {
	Entries() []domain.ActivityEntry
}

type ActivityHandler struct {
	source ActivitySource
}

func NewActivityHandler(source ActivitySource) *ActivityHandler {
	return &ActivityHandler{source: source}
}

type activityResponse struct {
	Total int                    `json:"total"`
	Logs  []domain.ActivityEntry `json:"logs"`
}

// List handles GET /api/activity.
//
// @Summary      Recent requests
// @Description  Most recent served requests, newest first. Bounded by ACTIVITY_CAPACITY.
// @Tags         ops
// @Produce      json
// @Success      200  {object}  activityResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	logs := h.source.Entries()
	return c.JSON(http.StatusOK, activityResponse{Total: len(logs), Logs: logs})
}
