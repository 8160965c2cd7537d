package models

import "time"

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
)

// Notification is the durable record behind every booking/listing event.
// UserID 0 marks a global record visible to admins.
type Notification struct {
	ID        uint                 `gorm:"primaryKey" json:"id"`
	UserID    uint                 `gorm:"index" json:"user_id"`
	Type      string               `gorm:"not null" json:"type"`
	Title     string               `gorm:"not null" json:"title"`
	Message   string               `gorm:"not null" json:"message"`
	IsRead    bool                 `gorm:"not null;default:false" json:"is_read"`
	Priority  NotificationPriority `gorm:"type:varchar(10);not null;default:'normal'" json:"priority"`
	RelatedID uint                 `json:"related_id,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}
