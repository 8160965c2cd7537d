package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stayfindz/backend/internal/dto"
	"github.com/stayfindz/backend/internal/middleware"
	"github.com/stayfindz/backend/internal/models"
	"github.com/stayfindz/backend/internal/service"
)

type AdminHandler struct {
	listings  service.ListingService
	bookings  service.BookingService
	users     service.AuthService
	analytics service.AnalyticsService
	jwtSecret string
}

func NewAdminHandler(listings service.ListingService, bookings service.BookingService, users service.AuthService, analytics service.AnalyticsService, jwtSecret string) *AdminHandler {
	return &AdminHandler{
		listings:  listings,
		bookings:  bookings,
		users:     users,
		analytics: analytics,
		jwtSecret: jwtSecret,
	}
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/admin",
		middleware.JWTAuth(h.jwtSecret),
		middleware.RequireRole(models.RoleAdmin),
	)

	g.GET("/analytics/summary", h.AnalyticsSummary)

	g.PUT("/properties/:id/approve", h.propertyStatus(models.ListingLive))
	g.PUT("/properties/:id/reject", h.propertyStatus(models.ListingRejected))
	g.PUT("/properties/:id/pause", h.propertyStatus(models.ListingPaused))
	g.PUT("/properties/:id/activate", h.propertyStatus(models.ListingLive))
	g.PUT("/properties/:id/status", h.SetPropertyStatus)

	g.PUT("/users/:id/block", h.setBlocked(true))
	g.PUT("/users/:id/unblock", h.setBlocked(false))

	g.PUT("/bookings/:id/approve", h.bookingStatus(models.StatusApproved))
	g.PUT("/bookings/:id/reject", h.bookingStatus(models.StatusRejected))
}

func (h *AdminHandler) AnalyticsSummary(c echo.Context) error {
	timeRange := c.QueryParam("timeRange")
	if timeRange == "" {
		timeRange = "1month"
	}

	summary, err := h.analytics.Summary(c.Request().Context(), timeRange)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.AnalyticsResponse{Success: true, Summary: summary})
}

func (h *AdminHandler) propertyStatus(status models.ListingStatus) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		listing, err := h.listings.SetStatus(c.Request().Context(), id, status)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, dto.ListingResponse{Success: true, Listing: listing})
	}
}

func (h *AdminHandler) SetPropertyStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.SetListingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	listing, err := h.listings.SetStatus(c.Request().Context(), id, models.ListingStatus(req.Status))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ListingResponse{Success: true, Listing: listing})
}

func (h *AdminHandler) setBlocked(blocked bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := h.users.SetBlocked(c.Request().Context(), id, blocked); err != nil {
			return toHTTPError(err)
		}
		msg := "user unblocked"
		if blocked {
			msg = "user blocked"
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: msg})
	}
}

func (h *AdminHandler) bookingStatus(status models.BookingStatus) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		booking, err := h.bookings.TransitionStatus(c.Request().Context(), id, status, actorFrom(c))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, dto.BookingResponse{Success: true, Booking: booking})
	}
}
