package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stayfindz/backend/internal/dto"
	"github.com/stayfindz/backend/internal/middleware"
	"github.com/stayfindz/backend/internal/models"
	"github.com/stayfindz/backend/internal/service"
)

type BookingHandler struct {
	svc       service.BookingService
	jwtSecret string
}

func NewBookingHandler(svc service.BookingService, jwtSecret string) *BookingHandler {
	return &BookingHandler{svc: svc, jwtSecret: jwtSecret}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/bookings", middleware.JWTAuth(h.jwtSecret))
	g.POST("", h.Create)
	g.GET("", h.ListMine)
	g.GET("/host", h.ListForHost)
	g.GET("/:id", h.Get)
	g.PUT("/:id/status", h.UpdateStatus)
	g.POST("/approve-booking", h.ApproveBooking)
	g.DELETE("/:id", h.Cancel)
}

func (h *BookingHandler) Create(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		ListingID:       req.ListingID,
		GuestID:         middleware.UserID(c),
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Adults:          req.Adults,
		Children:        req.Children,
		Infants:         req.Infants,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.BookingResponse{Success: true, Booking: booking})
}

func (h *BookingHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	}

	// bookings are visible to their guest, their host, and admins
	actor := actorFrom(c)
	if actor.Role != models.RoleAdmin && actor.ID != booking.UserID && actor.ID != booking.HostID {
		return echo.NewHTTPError(http.StatusForbidden, "not your booking")
	}

	return c.JSON(http.StatusOK, dto.BookingResponse{Success: true, Booking: booking})
}

func (h *BookingHandler) ListMine(c echo.Context) error {
	bookings, err := h.svc.ListForGuest(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.BookingsResponse{Success: true, Bookings: bookings})
}

func (h *BookingHandler) ListForHost(c echo.Context) error {
	bookings, err := h.svc.ListForHost(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.BookingsResponse{Success: true, Bookings: bookings})
}

func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	booking, err := h.svc.TransitionStatus(c.Request().Context(), id, models.NormalizeStatus(req.Status), actorFrom(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.BookingResponse{Success: true, Booking: booking})
}

// ApproveBooking is the legacy host-action endpoint; the booking id rides in
// the body instead of the path.
func (h *BookingHandler) ApproveBooking(c echo.Context) error {
	var req dto.ApproveBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	booking, err := h.svc.TransitionStatus(c.Request().Context(), req.BookingID, models.NormalizeStatus(req.Status), actorFrom(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.BookingResponse{Success: true, Booking: booking})
}

func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.CancelBooking(c.Request().Context(), id, actorFrom(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.BookingResponse{Success: true, Booking: booking})
}
