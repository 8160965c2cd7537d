package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stayfindz/backend/internal/dto"
	"github.com/stayfindz/backend/internal/models"
	"github.com/stayfindz/backend/internal/service"
	"github.com/stretchr/testify/assert"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn     func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error)
	transitionFn func(ctx context.Context, bookingID uint, to models.BookingStatus, actor service.Actor) (*models.Booking, error)
	getFn        func(ctx context.Context, id uint) (*models.Booking, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
	return m.createFn(ctx, in)
}
func (m *mockBookingService) TransitionStatus(ctx context.Context, bookingID uint, to models.BookingStatus, actor service.Actor) (*models.Booking, error) {
	return m.transitionFn(ctx, bookingID, to, actor)
}
func (m *mockBookingService) CancelBooking(ctx context.Context, bookingID uint, actor service.Actor) (*models.Booking, error) {
	return m.transitionFn(ctx, bookingID, models.StatusCancelled, actor)
}
func (m *mockBookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return m.getFn(ctx, id)
}
func (m *mockBookingService) ListForGuest(ctx context.Context, userID uint) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingService) ListForHost(ctx context.Context, hostID uint) ([]models.Booking, error) {
	return nil, nil
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asGuest(c echo.Context, id uint) {
	c.Set("userID", id)
	c.Set("userRole", models.RoleUser)
}

func asHost(c echo.Context, id uint) {
	c.Set("userID", id)
	c.Set("userRole", models.RoleHost)
}

// --- Tests ---

func TestCreateBooking_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
			return &models.Booking{
				ID:         1,
				ListingID:  in.ListingID,
				UserID:     in.GuestID,
				HostID:     42,
				Status:     models.StatusPending,
				TotalPrice: 505,
				CreatedAt:  time.Now(),
			}, nil
		},
	}

	body := `{"listing_id":7,"start_date":"2025-06-01T00:00:00Z","end_date":"2025-06-04T00:00:00Z","adults":2}`
	c, rec := newTestContext(http.MethodPost, "/api/bookings", body)
	asGuest(c, 9)

	h := NewBookingHandler(svc, "secret")
	err := h.Create(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, models.StatusPending, resp.Booking.Status)
	assert.Equal(t, 505.0, resp.Booking.TotalPrice)
	assert.Equal(t, uint(9), resp.Booking.UserID)
}

func TestCreateBooking_Handler_ListingNotFound(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
			return nil, service.ErrListingNotFound
		},
	}

	body := `{"listing_id":99,"start_date":"2025-06-01T00:00:00Z","end_date":"2025-06-04T00:00:00Z","adults":1}`
	c, _ := newTestContext(http.MethodPost, "/api/bookings", body)
	asGuest(c, 9)

	h := NewBookingHandler(svc, "secret")
	err := h.Create(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestCreateBooking_Handler_InvalidDates(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
			return nil, service.ErrInvalidDateRange
		},
	}

	body := `{"listing_id":7,"start_date":"2025-06-04T00:00:00Z","end_date":"2025-06-01T00:00:00Z","adults":1}`
	c, _ := newTestContext(http.MethodPost, "/api/bookings", body)
	asGuest(c, 9)

	h := NewBookingHandler(svc, "secret")
	err := h.Create(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateBooking_Handler_MissingListingID(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, "/api/bookings", `{"adults":1}`)
	asGuest(c, 9)

	h := NewBookingHandler(nil, "secret")
	err := h.Create(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestUpdateStatus_Handler_Approve(t *testing.T) {
	var gotStatus models.BookingStatus
	var gotActor service.Actor
	svc := &mockBookingService{
		transitionFn: func(ctx context.Context, bookingID uint, to models.BookingStatus, actor service.Actor) (*models.Booking, error) {
			gotStatus = to
			gotActor = actor
			return &models.Booking{ID: bookingID, Status: to}, nil
		},
	}

	c, rec := newTestContext(http.MethodPut, "/api/bookings/1/status", `{"status":"approved"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	asHost(c, 42)

	h := NewBookingHandler(svc, "secret")
	err := h.UpdateStatus(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusApproved, gotStatus)
	assert.Equal(t, uint(42), gotActor.ID)
	assert.Equal(t, models.RoleHost, gotActor.Role)
}

func TestUpdateStatus_Handler_ConfirmedAliasNormalized(t *testing.T) {
	var gotStatus models.BookingStatus
	svc := &mockBookingService{
		transitionFn: func(ctx context.Context, bookingID uint, to models.BookingStatus, actor service.Actor) (*models.Booking, error) {
			gotStatus = to
			return &models.Booking{ID: bookingID, Status: to}, nil
		},
	}

	c, _ := newTestContext(http.MethodPut, "/api/bookings/1/status", `{"status":"confirmed"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	asHost(c, 42)

	h := NewBookingHandler(svc, "secret")
	err := h.UpdateStatus(c)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusApproved, gotStatus)
}

func TestUpdateStatus_Handler_InvalidTransition(t *testing.T) {
	svc := &mockBookingService{
		transitionFn: func(ctx context.Context, bookingID uint, to models.BookingStatus, actor service.Actor) (*models.Booking, error) {
			return nil, service.ErrInvalidTransition
		},
	}

	c, _ := newTestContext(http.MethodPut, "/api/bookings/1/status", `{"status":"approved"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	asHost(c, 42)

	h := NewBookingHandler(svc, "secret")
	err := h.UpdateStatus(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestUpdateStatus_Handler_NotHost(t *testing.T) {
	svc := &mockBookingService{
		transitionFn: func(ctx context.Context, bookingID uint, to models.BookingStatus, actor service.Actor) (*models.Booking, error) {
			return nil, service.ErrNotBookingHost
		},
	}

	c, _ := newTestContext(http.MethodPut, "/api/bookings/1/status", `{"status":"approved"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	asGuest(c, 9)

	h := NewBookingHandler(svc, "secret")
	err := h.UpdateStatus(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestApproveBooking_Handler_LegacyBody(t *testing.T) {
	var gotID uint
	var gotStatus models.BookingStatus
	svc := &mockBookingService{
		transitionFn: func(ctx context.Context, bookingID uint, to models.BookingStatus, actor service.Actor) (*models.Booking, error) {
			gotID = bookingID
			gotStatus = to
			return &models.Booking{ID: bookingID, Status: to}, nil
		},
	}

	c, rec := newTestContext(http.MethodPost, "/api/bookings/approve-booking", `{"bookingId":5,"status":"confirmed"}`)
	asHost(c, 42)

	h := NewBookingHandler(svc, "secret")
	err := h.ApproveBooking(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(5), gotID)
	assert.Equal(t, models.StatusApproved, gotStatus)
}

func TestCancelBooking_Handler_AlreadyCancelled(t *testing.T) {
	svc := &mockBookingService{
		transitionFn: func(ctx context.Context, bookingID uint, to models.BookingStatus, actor service.Actor) (*models.Booking, error) {
			return nil, service.ErrInvalidTransition
		},
	}

	c, _ := newTestContext(http.MethodDelete, "/api/bookings/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	asGuest(c, 9)

	h := NewBookingHandler(svc, "secret")
	err := h.Cancel(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetBooking_Handler_ForbiddenForStranger(t *testing.T) {
	svc := &mockBookingService{
		getFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return &models.Booking{ID: id, UserID: 9, HostID: 42}, nil
		},
	}

	c, _ := newTestContext(http.MethodGet, "/api/bookings/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	asGuest(c, 13)

	h := NewBookingHandler(svc, "secret")
	err := h.Get(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}
