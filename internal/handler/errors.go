package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stayfindz/backend/internal/service"
)

// toHTTPError maps service sentinel errors onto the API's status taxonomy.
// Anything unmapped falls through to the central error handler as a 500.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrListingNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrNotBookingHost),
		errors.Is(err, service.ErrNotBookingGuest),
		errors.Is(err, service.ErrNotListingOwner),
		errors.Is(err, service.ErrUserBlocked):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrListingPaused),
		errors.Is(err, service.ErrImageCount),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidTimeRange):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}
