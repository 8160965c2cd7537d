package models

import "time"

type ListingStatus string

const (
	ListingLive     ListingStatus = "live"
	ListingPaused   ListingStatus = "paused"
	ListingPending  ListingStatus = "pending"
	ListingRejected ListingStatus = "rejected"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingLive, ListingPaused, ListingPending, ListingRejected:
		return true
	}
	return false
}

type Listing struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	HostID        uint          `gorm:"not null;index" json:"host_id"`
	Title         string        `gorm:"not null" json:"title"`
	Description   string        `json:"description"`
	Location      string        `gorm:"not null;index" json:"location"`
	Latitude      float64       `json:"latitude"`
	Longitude     float64       `json:"longitude"`
	PricePerNight float64       `gorm:"not null" json:"price_per_night"`
	MaxGuests     int           `gorm:"not null;default:1" json:"max_guests"`
	Bedrooms      int           `json:"bedrooms"`
	Beds          int           `json:"beds"`
	Bathrooms     int           `json:"bathrooms"`
	Amenities     []string      `gorm:"serializer:json" json:"amenities"`
	Images        []string      `gorm:"serializer:json" json:"images"`
	Category      string        `gorm:"index" json:"category"`
	Status        ListingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Rating        float64       `json:"rating"`
	Views         int64         `json:"views"`
	ReviewCount   int           `json:"review_count"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Snapshot returns the denormalized listing details stored on a booking.
func (l *Listing) Snapshot() ListingSnapshot {
	return ListingSnapshot{
		Title:         l.Title,
		Location:      l.Location,
		PricePerNight: l.PricePerNight,
		Images:        l.Images,
	}
}
