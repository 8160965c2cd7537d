package service

import (
	"context"
	"errors"
)

var (
	ErrListingNotFound      = errors.New("listing not found")
	ErrListingPaused        = errors.New("listing is paused and cannot be booked")
	ErrNotListingOwner      = errors.New("only the listing host may modify it")
	ErrImageCount           = errors.New("a listing requires between 1 and 5 images")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrInvalidStatus        = errors.New("unknown booking status")
	ErrNotBookingHost       = errors.New("only the host may approve or reject this booking")
	ErrNotBookingGuest      = errors.New("only the guest may cancel this booking")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email is already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserBlocked          = errors.New("account is blocked")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidTimeRange     = errors.New("invalid time range")
)

// EventPublisher is the slice of the message bus the services need.
// A nil publisher disables event dispatch; publish failures are logged by the
// caller and never fail the triggering operation.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}
