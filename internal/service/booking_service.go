package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/stayfindz/backend/internal/events"
	"github.com/stayfindz/backend/internal/models"
	"github.com/stayfindz/backend/internal/repository"
	"gorm.io/gorm"
)

// Actor identifies who is attempting a booking operation.
type Actor struct {
	ID   uint
	Role models.Role
}

type CreateBookingInput struct {
	ListingID       uint
	GuestID         uint
	StartDate       time.Time
	EndDate         time.Time
	Adults          int
	Children        int
	Infants         int
	SpecialRequests string
}

type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	TransitionStatus(ctx context.Context, bookingID uint, to models.BookingStatus, actor Actor) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID uint, actor Actor) (*models.Booking, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListForGuest(ctx context.Context, userID uint) ([]models.Booking, error)
	ListForHost(ctx context.Context, hostID uint) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
	publisher   EventPublisher
	fees        FeeSchedule
}

func NewBookingService(bookingRepo repository.BookingRepository, listingRepo repository.ListingRepository, publisher EventPublisher, fees FeeSchedule) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		publisher:   publisher,
		fees:        fees,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	listing, err := s.listingRepo.FindByID(ctx, in.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if listing.Status == models.ListingPaused {
		return nil, ErrListingPaused
	}

	quote, err := PriceBooking(listing.PricePerNight, in.StartDate, in.EndDate, s.fees)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ListingID:       listing.ID,
		UserID:          in.GuestID,
		HostID:          listing.HostID,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Adults:          in.Adults,
		Children:        in.Children,
		Infants:         in.Infants,
		SpecialRequests: in.SpecialRequests,
		TotalPrice:      quote.Total,
		Status:          models.StatusPending,
		Listing:         listing.Snapshot(),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, events.BookingCreated, events.BookingEvent{
		BookingID:    booking.ID,
		ListingID:    listing.ID,
		GuestID:      booking.UserID,
		HostID:       booking.HostID,
		ListingTitle: listing.Title,
		NewStatus:    models.StatusPending,
	})

	return booking, nil
}

// TransitionStatus moves a booking through the status machine. The booking
// row is locked for the duration of the transaction so concurrent transition
// attempts serialize; the loser fails the state-machine check.
func (s *bookingService) TransitionStatus(ctx context.Context, bookingID uint, to models.BookingStatus, actor Actor) (*models.Booking, error) {
	if !to.Valid() {
		return nil, ErrInvalidStatus
	}

	var result *models.Booking
	var evt events.BookingEvent

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if err := authorizeTransition(booking, to, actor); err != nil {
			return err
		}
		if !booking.Status.CanTransitionTo(to) {
			return ErrInvalidTransition
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, bookingID, to); err != nil {
			return err
		}

		evt = events.BookingEvent{
			BookingID:    booking.ID,
			ListingID:    booking.ListingID,
			GuestID:      booking.UserID,
			HostID:       booking.HostID,
			ListingTitle: booking.Listing.Title,
			OldStatus:    booking.Status,
			NewStatus:    to,
		}
		booking.Status = to
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.BookingUpdated, evt)
	return result, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID uint, actor Actor) (*models.Booking, error) {
	return s.TransitionStatus(ctx, bookingID, models.StatusCancelled, actor)
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return s.bookingRepo.FindByID(ctx, id)
}

func (s *bookingService) ListForGuest(ctx context.Context, userID uint) ([]models.Booking, error) {
	return s.bookingRepo.FindByGuest(ctx, userID)
}

func (s *bookingService) ListForHost(ctx context.Context, hostID uint) ([]models.Booking, error) {
	return s.bookingRepo.FindByHost(ctx, hostID)
}

// authorizeTransition enforces the actor/action pairs: approve/reject/pause
// belong to the listing host, cancel belongs to the guest. Admins may act as
// either side.
func authorizeTransition(b *models.Booking, to models.BookingStatus, actor Actor) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	switch to {
	case models.StatusApproved, models.StatusRejected, models.StatusPaused:
		if actor.ID != b.HostID {
			return ErrNotBookingHost
		}
	case models.StatusCancelled:
		if actor.ID != b.UserID {
			return ErrNotBookingGuest
		}
	}
	return nil
}

func (s *bookingService) publish(ctx context.Context, key string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		log.Printf("[BookingService] publish %s failed: %v", key, err)
	}
}
