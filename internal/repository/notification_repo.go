package repository

import (
	"context"

	"github.com/stayfindz/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationFilters narrows a user's notification feed.
type NotificationFilters struct {
	UnreadOnly bool
	Type       string
}

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	FindByUser(ctx context.Context, userID uint, f NotificationFilters) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id uint) (int64, error)
	MarkAllRead(ctx context.Context, userID uint) error
	Delete(ctx context.Context, userID, id uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) FindByUser(ctx context.Context, userID uint, f NotificationFilters) ([]models.Notification, error) {
	var notifications []models.Notification
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.UnreadOnly {
		q = q.Where("is_read = false")
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	err := q.Order("created_at DESC").Limit(100).Find(&notifications).Error
	return notifications, err
}

// MarkRead flips the read flag; the owner check rides in the WHERE clause and
// the affected-row count tells the caller whether anything matched.
func (r *notificationRepository) MarkRead(ctx context.Context, userID, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true).Error
}

func (r *notificationRepository) Delete(ctx context.Context, userID, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
