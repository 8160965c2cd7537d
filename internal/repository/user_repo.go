package repository

import (
	"context"

	"github.com/stayfindz/backend/internal/models"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetRole(ctx context.Context, id uint, role models.Role) error
	SetBlocked(ctx context.Context, id uint, blocked bool) error
	AddToWishlist(ctx context.Context, userID, listingID uint) error
	RemoveFromWishlist(ctx context.Context, userID, listingID uint) error
	InWishlist(ctx context.Context, userID, listingID uint) (bool, error)
	Wishlist(ctx context.Context, userID uint) ([]models.Listing, error)
	RemoveListingFromAllWishlists(ctx context.Context, tx *gorm.DB, listingID uint) error
	GetDB() *gorm.DB
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) SetRole(ctx context.Context, id uint, role models.Role) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (r *userRepository) SetBlocked(ctx context.Context, id uint, blocked bool) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("blocked", blocked).Error
}

func (r *userRepository) AddToWishlist(ctx context.Context, userID, listingID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.User{ID: userID}).
		Association("Wishlist").
		Append(&models.Listing{ID: listingID})
}

func (r *userRepository) RemoveFromWishlist(ctx context.Context, userID, listingID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.User{ID: userID}).
		Association("Wishlist").
		Delete(&models.Listing{ID: listingID})
}

func (r *userRepository) InWishlist(ctx context.Context, userID, listingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("user_wishlists").
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Wishlist(ctx context.Context, userID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Model(&models.User{ID: userID}).
		Association("Wishlist").
		Find(&listings)
	return listings, err
}

// RemoveListingFromAllWishlists clears a deleted listing out of every user's
// wishlist within the deleting transaction.
func (r *userRepository) RemoveListingFromAllWishlists(ctx context.Context, tx *gorm.DB, listingID uint) error {
	return tx.WithContext(ctx).
		Exec("DELETE FROM user_wishlists WHERE listing_id = ?", listingID).Error
}
