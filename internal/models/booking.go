package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
	StatusPaused    BookingStatus = "paused"
)

// NormalizeStatus maps the legacy "confirmed" alias onto the canonical
// vocabulary. "confirmed" is never stored.
func NormalizeStatus(s string) BookingStatus {
	if s == "confirmed" {
		return StatusApproved
	}
	return BookingStatus(s)
}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusPaused:
		return true
	}
	return false
}

// Allowed status transitions. Rejected, cancelled and paused are terminal.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled, StatusPaused},
	StatusApproved: {StatusCancelled, StatusPaused},
}

func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// ListingSnapshot pins the listing details a booking was made against, so
// later listing edits don't rewrite booking history.
type ListingSnapshot struct {
	Title         string   `json:"title"`
	Location      string   `json:"location"`
	PricePerNight float64  `json:"price_per_night"`
	Images        []string `json:"images"`
}

type Booking struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ListingID       uint            `gorm:"not null;index" json:"listing_id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	HostID          uint            `gorm:"not null;index" json:"host_id"`
	StartDate       time.Time       `gorm:"not null" json:"start_date"`
	EndDate         time.Time       `gorm:"not null" json:"end_date"`
	Adults          int             `gorm:"not null;default:1" json:"adults"`
	Children        int             `json:"children"`
	Infants         int             `json:"infants"`
	SpecialRequests string          `json:"special_requests,omitempty"`
	TotalPrice      float64         `gorm:"not null" json:"total_price"`
	Status          BookingStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Listing         ListingSnapshot `gorm:"serializer:json" json:"listing"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Nights returns the whole number of nights between check-in and check-out,
// counted on calendar dates so DST shifts don't shorten a stay.
func (b *Booking) Nights() int {
	return CountNights(b.StartDate, b.EndDate)
}

// CountNights measures the calendar-date distance between two instants.
func CountNights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}
