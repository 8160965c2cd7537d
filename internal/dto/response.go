package dto

import (
	"github.com/stayfindz/backend/internal/models"
	"github.com/stayfindz/backend/internal/repository"
	"github.com/stayfindz/backend/internal/service"
)

type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

type UserResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ListingResponse struct {
	Success bool            `json:"success"`
	Listing *models.Listing `json:"listing"`
}

type ListingsResponse struct {
	Success  bool             `json:"success"`
	Listings []models.Listing `json:"listings"`
}

type RankedListingsResponse struct {
	Success  bool                       `json:"success"`
	Listings []repository.RankedListing `json:"listings"`
}

type BookingResponse struct {
	Success bool            `json:"success"`
	Booking *models.Booking `json:"booking"`
}

type BookingsResponse struct {
	Success  bool             `json:"success"`
	Bookings []models.Booking `json:"bookings"`
}

type NotificationsResponse struct {
	Success       bool                  `json:"success"`
	Notifications []models.Notification `json:"notifications"`
}

type AnalyticsResponse struct {
	Success bool                      `json:"success"`
	Summary *service.AnalyticsSummary `json:"summary"`
}
