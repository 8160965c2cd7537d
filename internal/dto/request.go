package dto

import "time"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar_url"`
}

type ToggleWishlistRequest struct {
	ListingID uint `json:"listing_id" validate:"required"`
}

type ListingRequest struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description"`
	Location      string   `json:"location" validate:"required"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	PricePerNight float64  `json:"price_per_night" validate:"required,gt=0"`
	MaxGuests     int      `json:"max_guests" validate:"required,gte=1"`
	Bedrooms      int      `json:"bedrooms"`
	Beds          int      `json:"beds"`
	Bathrooms     int      `json:"bathrooms"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images" validate:"required,min=1,max=5"`
	Category      string   `json:"category"`
}

type CreateBookingRequest struct {
	ListingID       uint      `json:"listing_id" validate:"required"`
	StartDate       time.Time `json:"start_date" validate:"required"`
	EndDate         time.Time `json:"end_date" validate:"required"`
	Adults          int       `json:"adults" validate:"gte=1"`
	Children        int       `json:"children" validate:"gte=0"`
	Infants         int       `json:"infants" validate:"gte=0"`
	SpecialRequests string    `json:"special_requests"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ApproveBookingRequest is the legacy host-action body kept for API
// compatibility; "confirmed" is accepted as an alias of "approved".
type ApproveBookingRequest struct {
	BookingID uint   `json:"bookingId" validate:"required"`
	Status    string `json:"status" validate:"required"`
}

type SetListingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
