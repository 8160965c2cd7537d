// Package events defines the payloads published to the marketplace exchange.
package events

import "github.com/stayfindz/backend/internal/models"

// Routing keys on the marketplace topic exchange.
const (
	BookingCreated = "booking.created"
	BookingUpdated = "booking.updated"
	ListingUpdated = "listing.updated"
)

type BookingEvent struct {
	BookingID    uint                 `json:"booking_id"`
	ListingID    uint                 `json:"listing_id"`
	GuestID      uint                 `json:"guest_id"`
	HostID       uint                 `json:"host_id"`
	ListingTitle string               `json:"listing_title"`
	OldStatus    models.BookingStatus `json:"old_status,omitempty"`
	NewStatus    models.BookingStatus `json:"new_status"`
}

type ListingEvent struct {
	ListingID uint                 `json:"listing_id"`
	HostID    uint                 `json:"host_id"`
	Title     string               `json:"title"`
	OldStatus models.ListingStatus `json:"old_status"`
	NewStatus models.ListingStatus `json:"new_status"`
}
