package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stayfindz/backend/internal/dto"
	"github.com/stayfindz/backend/internal/middleware"
	"github.com/stayfindz/backend/internal/repository"
	"github.com/stayfindz/backend/internal/service"
)

type NotificationHandler struct {
	svc       service.NotificationService
	jwtSecret string
}

func NewNotificationHandler(svc service.NotificationService, jwtSecret string) *NotificationHandler {
	return &NotificationHandler{svc: svc, jwtSecret: jwtSecret}
}

func (h *NotificationHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/notifications", middleware.JWTAuth(h.jwtSecret))
	g.GET("", h.List)
	g.PUT("/:id/read", h.MarkRead)
	g.PUT("/read-all", h.MarkAllRead)
	g.DELETE("/:id", h.Delete)
}

func (h *NotificationHandler) List(c echo.Context) error {
	notifications, err := h.svc.List(c.Request().Context(), middleware.UserID(c), repository.NotificationFilters{
		UnreadOnly: c.QueryParam("unread_only") == "true",
		Type:       c.QueryParam("type"),
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.NotificationsResponse{Success: true, Notifications: notifications})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.MarkRead(c.Request().Context(), middleware.UserID(c), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "notification marked read"})
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.svc.MarkAllRead(c.Request().Context(), middleware.UserID(c)); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "all notifications marked read"})
}

func (h *NotificationHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), middleware.UserID(c), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "notification deleted"})
}
