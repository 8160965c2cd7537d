package repository

import (
	"context"

	"github.com/stayfindz/backend/internal/models"
	"gorm.io/gorm"
)

// RankedListing carries a listing together with its booking count from the
// popularity/trending join.
type RankedListing struct {
	models.Listing
	BookingCount int64 `json:"booking_count"`
}

// ListingFilters narrows the public listing feed.
type ListingFilters struct {
	Category string
	Location string
	HostID   uint
}

type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	FindByID(ctx context.Context, id uint) (*models.Listing, error)
	FindAll(ctx context.Context, f ListingFilters) ([]models.Listing, error)
	FindAllAny(ctx context.Context) ([]models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) error
	UpdateStatus(ctx context.Context, id uint, status models.ListingStatus) error
	IncrementViews(ctx context.Context, id uint) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	Popular(ctx context.Context, limit int) ([]RankedListing, error)
	Trending(ctx context.Context, limit int) ([]RankedListing, error)
	GetDB() *gorm.DB
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepository) FindByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).First(&listing, id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// FindAll returns live listings matching the given filters, newest first.
func (r *listingRepository) FindAll(ctx context.Context, f ListingFilters) ([]models.Listing, error) {
	var listings []models.Listing
	q := r.db.WithContext(ctx)
	if f.HostID != 0 {
		// hosts see their own listings in every status
		q = q.Where("host_id = ?", f.HostID)
	} else {
		q = q.Where("status = ?", models.ListingLive)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Location != "" {
		q = q.Where("location ILIKE ?", "%"+f.Location+"%")
	}
	if err := q.Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// FindAllAny returns every listing regardless of status (admin + analytics).
func (r *listingRepository) FindAllAny(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) Update(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

func (r *listingRepository) UpdateStatus(ctx context.Context, id uint, status models.ListingStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *listingRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *listingRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Listing{}, id).Error
}

// Popular ranks non-paused listings by views + bookings*10 + rating*100,
// ties broken by id.
func (r *listingRepository) Popular(ctx context.Context, limit int) ([]RankedListing, error) {
	var ranked []RankedListing
	err := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Select("listings.*, COUNT(bookings.id) AS booking_count").
		Joins("LEFT JOIN bookings ON bookings.listing_id = listings.id").
		Where("listings.status <> ?", models.ListingPaused).
		Group("listings.id").
		Order("(listings.views + COUNT(bookings.id) * 10 + listings.rating * 100) DESC, listings.id ASC").
		Limit(limit).
		Scan(&ranked).Error
	return ranked, err
}

// Trending returns non-paused listings that have at least one booking,
// most-booked first.
func (r *listingRepository) Trending(ctx context.Context, limit int) ([]RankedListing, error) {
	var ranked []RankedListing
	err := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Select("listings.*, COUNT(bookings.id) AS booking_count").
		Joins("LEFT JOIN bookings ON bookings.listing_id = listings.id").
		Where("listings.status <> ?", models.ListingPaused).
		Group("listings.id").
		Having("COUNT(bookings.id) > 0").
		Order("booking_count DESC, listings.id ASC").
		Limit(limit).
		Scan(&ranked).Error
	return ranked, err
}
