package service

import (
	"context"
	"errors"
	"log"

	"github.com/stayfindz/backend/internal/events"
	"github.com/stayfindz/backend/internal/models"
	"github.com/stayfindz/backend/internal/repository"
	"gorm.io/gorm"
)

const (
	popularLimit  = 10
	trendingLimit = 5
	maxImages     = 5
)

type ListingInput struct {
	Title         string
	Description   string
	Location      string
	Latitude      float64
	Longitude     float64
	PricePerNight float64
	MaxGuests     int
	Bedrooms      int
	Beds          int
	Bathrooms     int
	Amenities     []string
	Images        []string
	Category      string
}

type ListingService interface {
	CreateListing(ctx context.Context, hostID uint, in ListingInput) (*models.Listing, error)
	GetListing(ctx context.Context, id uint) (*models.Listing, error)
	ListListings(ctx context.Context, f repository.ListingFilters) ([]models.Listing, error)
	UpdateListing(ctx context.Context, actor Actor, id uint, in ListingInput) (*models.Listing, error)
	DeleteListing(ctx context.Context, actor Actor, id uint) error
	SetStatus(ctx context.Context, id uint, status models.ListingStatus) (*models.Listing, error)
	Popular(ctx context.Context) ([]repository.RankedListing, error)
	Trending(ctx context.Context) ([]repository.RankedListing, error)
}

type listingService struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	publisher   EventPublisher
}

func NewListingService(listingRepo repository.ListingRepository, userRepo repository.UserRepository, publisher EventPublisher) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

func (s *listingService) CreateListing(ctx context.Context, hostID uint, in ListingInput) (*models.Listing, error) {
	if len(in.Images) == 0 || len(in.Images) > maxImages {
		return nil, ErrImageCount
	}

	listing := &models.Listing{
		HostID:        hostID,
		Title:         in.Title,
		Description:   in.Description,
		Location:      in.Location,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		PricePerNight: in.PricePerNight,
		MaxGuests:     in.MaxGuests,
		Bedrooms:      in.Bedrooms,
		Beds:          in.Beds,
		Bathrooms:     in.Bathrooms,
		Amenities:     in.Amenities,
		Images:        in.Images,
		Category:      in.Category,
		Status:        models.ListingPending,
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// GetListing fetches a listing and counts the view. The increment is
// best-effort and never fails the read.
func (s *listingService) GetListing(ctx context.Context, id uint) (*models.Listing, error) {
	listing, err := s.findListing(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.listingRepo.IncrementViews(ctx, id); err != nil {
		log.Printf("[ListingService] view increment failed for listing %d: %v", id, err)
	} else {
		listing.Views++
	}
	return listing, nil
}

// findListing maps a missing row onto the sentinel; any other repository
// error passes through untouched so it surfaces as a server error.
func (s *listingService) findListing(ctx context.Context, id uint) (*models.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return listing, nil
}

func (s *listingService) ListListings(ctx context.Context, f repository.ListingFilters) ([]models.Listing, error) {
	return s.listingRepo.FindAll(ctx, f)
}

func (s *listingService) UpdateListing(ctx context.Context, actor Actor, id uint, in ListingInput) (*models.Listing, error) {
	listing, err := s.findListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && listing.HostID != actor.ID {
		return nil, ErrNotListingOwner
	}
	if len(in.Images) == 0 || len(in.Images) > maxImages {
		return nil, ErrImageCount
	}

	listing.Title = in.Title
	listing.Description = in.Description
	listing.Location = in.Location
	listing.Latitude = in.Latitude
	listing.Longitude = in.Longitude
	listing.PricePerNight = in.PricePerNight
	listing.MaxGuests = in.MaxGuests
	listing.Bedrooms = in.Bedrooms
	listing.Beds = in.Beds
	listing.Bathrooms = in.Bathrooms
	listing.Amenities = in.Amenities
	listing.Images = in.Images
	listing.Category = in.Category

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// DeleteListing removes the listing and clears it out of every wishlist in
// one transaction.
func (s *listingService) DeleteListing(ctx context.Context, actor Actor, id uint) error {
	listing, err := s.findListing(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin && listing.HostID != actor.ID {
		return ErrNotListingOwner
	}

	return s.listingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.RemoveListingFromAllWishlists(ctx, tx, id); err != nil {
			return err
		}
		return s.listingRepo.Delete(ctx, tx, id)
	})
}

func (s *listingService) SetStatus(ctx context.Context, id uint, status models.ListingStatus) (*models.Listing, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	listing, err := s.findListing(ctx, id)
	if err != nil {
		return nil, err
	}
	old := listing.Status

	if err := s.listingRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	listing.Status = status

	s.publish(ctx, events.ListingUpdated, events.ListingEvent{
		ListingID: listing.ID,
		HostID:    listing.HostID,
		Title:     listing.Title,
		OldStatus: old,
		NewStatus: status,
	})

	return listing, nil
}

func (s *listingService) Popular(ctx context.Context) ([]repository.RankedListing, error) {
	return s.listingRepo.Popular(ctx, popularLimit)
}

func (s *listingService) Trending(ctx context.Context) ([]repository.RankedListing, error) {
	return s.listingRepo.Trending(ctx, trendingLimit)
}

func (s *listingService) publish(ctx context.Context, key string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		log.Printf("[ListingService] publish %s failed: %v", key, err)
	}
}
