package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawhaven/backend/internal/repositories"
)

// ActivityHandler exposes the admin audit trail
type ActivityHandler struct {
	activityRepository repositories.ActivityRepository
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityRepo repositories.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activityRepository: activityRepo}
}

// RegisterActivityRoutes registers activity routes
func (h *ActivityHandler) RegisterActivityRoutes(g *echo.Group) {
	g.GET("/activities", h.ListActivities)
}

// ListActivities returns the latest audit entries, newest first
func (h *ActivityHandler) ListActivities(c echo.Context) error {
	activities, err := h.activityRepository.ListRecent(50)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": activities})
}
