package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pawhaven/backend/internal/models"
	"github.com/pawhaven/backend/internal/repositories"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.GET("/notifications/user/:userId", h.GetUserNotifications)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
}

// recipientKind maps the caller's identity kind to the notification
// recipient store it reads from.
func recipientKind(kind models.IdentityKind) models.RecipientKind {
	if kind == models.KindAdmin {
		return models.RecipientAdmin
	}
	return models.RecipientVerified
}

// GetNotifications returns the caller's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	claims := identityFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	notifications, err := h.notificationRepository.GetByRecipient(c.Request().Context(), claims.UserID, recipientKind(claims.Kind))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": notifications})
}

// GetUserNotifications returns a given user's notifications, newest first
func (h *NotificationHandler) GetUserNotifications(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	notifications, err := h.notificationRepository.GetByRecipient(c.Request().Context(), uint(userID), models.RecipientVerified)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": notifications})
}

// GetUnreadCount returns the unread notification count for the caller
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	claims := identityFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	count, err := h.notificationRepository.UnreadCount(c.Request().Context(), claims.UserID, recipientKind(claims.Kind))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"count": count}})
}

// MarkAsRead marks a notification as read. Calling it again on a read
// notification succeeds with no change; an unknown id is a 404.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	if err := h.notificationRepository.MarkAsRead(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"read": true}})
}
