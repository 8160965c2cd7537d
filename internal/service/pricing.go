package service

import (
	"errors"
	"time"

	"github.com/stayfindz/backend/internal/models"
)

var ErrInvalidDateRange = errors.New("check-out must be after check-in")

// FeeSchedule holds the flat fees applied on top of the nightly total.
// There is exactly one pricing path; the fee values come from config.
type FeeSchedule struct {
	Service  float64
	Cleaning float64
}

type Quote struct {
	Nights       int     `json:"nights"`
	NightlyTotal float64 `json:"nightly_total"`
	ServiceFee   float64 `json:"service_fee"`
	CleaningFee  float64 `json:"cleaning_fee"`
	Total        float64 `json:"total"`
}

// PriceBooking computes the total for a stay. The night count must be
// positive or the quote fails.
func PriceBooking(pricePerNight float64, checkIn, checkOut time.Time, fees FeeSchedule) (Quote, error) {
	nights := models.CountNights(checkIn, checkOut)
	if nights <= 0 {
		return Quote{}, ErrInvalidDateRange
	}

	nightly := pricePerNight * float64(nights)
	return Quote{
		Nights:       nights,
		NightlyTotal: nightly,
		ServiceFee:   fees.Service,
		CleaningFee:  fees.Cleaning,
		Total:        nightly + fees.Service + fees.Cleaning,
	}, nil
}
