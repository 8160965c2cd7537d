package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stayfindz/backend/internal/models"
	"github.com/stayfindz/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mock ListingRepository ---

type mockListingRepo struct {
	findByIDFn      func(ctx context.Context, id uint) (*models.Listing, error)
	findAllFn       func(ctx context.Context, f repository.ListingFilters) ([]models.Listing, error)
	findAllAnyFn    func(ctx context.Context) ([]models.Listing, error)
	createFn        func(ctx context.Context, l *models.Listing) error
	updateStatusFn  func(ctx context.Context, id uint, status models.ListingStatus) error
	incrementFn     func(ctx context.Context, id uint) error
	popularFn       func(ctx context.Context, limit int) ([]repository.RankedListing, error)
	trendingFn      func(ctx context.Context, limit int) ([]repository.RankedListing, error)
}

func (m *mockListingRepo) Create(ctx context.Context, l *models.Listing) error {
	if m.createFn != nil {
		return m.createFn(ctx, l)
	}
	return nil
}
func (m *mockListingRepo) FindByID(ctx context.Context, id uint) (*models.Listing, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockListingRepo) FindAll(ctx context.Context, f repository.ListingFilters) ([]models.Listing, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, f)
	}
	return nil, nil
}
func (m *mockListingRepo) FindAllAny(ctx context.Context) ([]models.Listing, error) {
	if m.findAllAnyFn != nil {
		return m.findAllAnyFn(ctx)
	}
	return nil, nil
}
func (m *mockListingRepo) Update(ctx context.Context, l *models.Listing) error { return nil }
func (m *mockListingRepo) UpdateStatus(ctx context.Context, id uint, status models.ListingStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}
func (m *mockListingRepo) IncrementViews(ctx context.Context, id uint) error {
	if m.incrementFn != nil {
		return m.incrementFn(ctx, id)
	}
	return nil
}
func (m *mockListingRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error { return nil }
func (m *mockListingRepo) Popular(ctx context.Context, limit int) ([]repository.RankedListing, error) {
	if m.popularFn != nil {
		return m.popularFn(ctx, limit)
	}
	return nil, nil
}
func (m *mockListingRepo) Trending(ctx context.Context, limit int) ([]repository.RankedListing, error) {
	if m.trendingFn != nil {
		return m.trendingFn(ctx, limit)
	}
	return nil, nil
}
func (m *mockListingRepo) GetDB() *gorm.DB { return nil }

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn    func(ctx context.Context, b *models.Booking) error
	findByIDFn  func(ctx context.Context, id uint) (*models.Booking, error)
	findSinceFn func(ctx context.Context, since time.Time) ([]models.Booking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	return m.createFn(ctx, b)
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) FindByGuest(ctx context.Context, userID uint) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) FindByHost(ctx context.Context, hostID uint) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) FindSince(ctx context.Context, since time.Time) ([]models.Booking, error) {
	return m.findSinceFn(ctx, since)
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return nil
}
func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }

// --- Mock publisher ---

type mockPublisher struct {
	keys     []string
	payloads []any
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	m.keys = append(m.keys, routingKey)
	m.payloads = append(m.payloads, payload)
	return nil
}

// --- Tests ---

func sampleListing() *models.Listing {
	return &models.Listing{
		ID:            7,
		HostID:        42,
		Title:         "Beach Villa",
		Location:      "Goa",
		PricePerNight: 100,
		Status:        models.ListingLive,
		Images:        []string{"https://cdn.example/villa.jpg"},
	}
}

func TestCreateBooking_Success(t *testing.T) {
	listingRepo := &mockListingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Listing, error) {
			return sampleListing(), nil
		},
	}
	bookingRepo := &mockBookingRepo{
		createFn: func(ctx context.Context, b *models.Booking) error {
			b.ID = 1
			return nil
		},
	}
	pub := &mockPublisher{}

	svc := NewBookingService(bookingRepo, listingRepo, pub, testFees)
	booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		ListingID: 7,
		GuestID:   9,
		StartDate: date(2025, 6, 1),
		EndDate:   date(2025, 6, 4),
		Adults:    2,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, booking.Status)
	assert.Equal(t, 505.0, booking.TotalPrice)
	assert.Equal(t, uint(42), booking.HostID)
	assert.Equal(t, "Beach Villa", booking.Listing.Title)
	assert.Equal(t, []string{"booking.created"}, pub.keys)
}

func TestCreateBooking_ListingNotFound(t *testing.T) {
	listingRepo := &mockListingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Listing, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewBookingService(&mockBookingRepo{}, listingRepo, nil, testFees)
	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		ListingID: 99,
		StartDate: date(2025, 6, 1),
		EndDate:   date(2025, 6, 4),
	})

	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestCreateBooking_RepoFailureIsNotNotFound(t *testing.T) {
	dbErr := errors.New("connection reset by peer")
	listingRepo := &mockListingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Listing, error) {
			return nil, dbErr
		},
	}

	svc := NewBookingService(&mockBookingRepo{}, listingRepo, nil, testFees)
	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		ListingID: 7,
		StartDate: date(2025, 6, 1),
		EndDate:   date(2025, 6, 4),
	})

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrListingNotFound)
}

func TestCreateBooking_PausedListing(t *testing.T) {
	paused := sampleListing()
	paused.Status = models.ListingPaused
	listingRepo := &mockListingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Listing, error) {
			return paused, nil
		},
	}

	svc := NewBookingService(&mockBookingRepo{}, listingRepo, nil, testFees)
	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		ListingID: 7,
		StartDate: date(2025, 6, 1),
		EndDate:   date(2025, 6, 4),
	})

	assert.ErrorIs(t, err, ErrListingPaused)
}

func TestCreateBooking_InvalidDates(t *testing.T) {
	listingRepo := &mockListingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Listing, error) {
			return sampleListing(), nil
		},
	}

	svc := NewBookingService(&mockBookingRepo{}, listingRepo, nil, testFees)
	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		ListingID: 7,
		StartDate: date(2025, 6, 4),
		EndDate:   date(2025, 6, 1),
	})

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreateBooking_SnapshotSurvivesListingEdit(t *testing.T) {
	listing := sampleListing()
	listingRepo := &mockListingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Listing, error) {
			return listing, nil
		},
	}
	bookingRepo := &mockBookingRepo{
		createFn: func(ctx context.Context, b *models.Booking) error { return nil },
	}

	svc := NewBookingService(bookingRepo, listingRepo, nil, testFees)
	booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		ListingID: 7,
		StartDate: date(2025, 6, 1),
		EndDate:   date(2025, 6, 4),
	})
	assert.NoError(t, err)

	listing.Title = "Renamed Villa"
	listing.PricePerNight = 900

	assert.Equal(t, "Beach Villa", booking.Listing.Title)
	assert.Equal(t, 100.0, booking.Listing.PricePerNight)
}

func TestAuthorizeTransition_HostActions(t *testing.T) {
	b := &models.Booking{UserID: 9, HostID: 42, Status: models.StatusPending}

	for _, to := range []models.BookingStatus{models.StatusApproved, models.StatusRejected, models.StatusPaused} {
		assert.NoError(t, authorizeTransition(b, to, Actor{ID: 42, Role: models.RoleHost}))
		assert.ErrorIs(t, authorizeTransition(b, to, Actor{ID: 9, Role: models.RoleUser}), ErrNotBookingHost)
	}
}

func TestAuthorizeTransition_GuestCancel(t *testing.T) {
	b := &models.Booking{UserID: 9, HostID: 42, Status: models.StatusPending}

	assert.NoError(t, authorizeTransition(b, models.StatusCancelled, Actor{ID: 9, Role: models.RoleUser}))
	assert.ErrorIs(t, authorizeTransition(b, models.StatusCancelled, Actor{ID: 42, Role: models.RoleHost}), ErrNotBookingGuest)
}

func TestAuthorizeTransition_AdminOverride(t *testing.T) {
	b := &models.Booking{UserID: 9, HostID: 42, Status: models.StatusPending}

	assert.NoError(t, authorizeTransition(b, models.StatusApproved, Actor{ID: 1, Role: models.RoleAdmin}))
	assert.NoError(t, authorizeTransition(b, models.StatusCancelled, Actor{ID: 1, Role: models.RoleAdmin}))
}

func TestTransitionStatus_UnknownStatus(t *testing.T) {
	svc := NewBookingService(&mockBookingRepo{}, &mockListingRepo{}, nil, testFees)

	_, err := svc.TransitionStatus(context.Background(), 1, models.BookingStatus("garbage"), Actor{ID: 42, Role: models.RoleHost})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
