package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testFees = FeeSchedule{Service: 85, Cleaning: 120}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPriceBooking_ThreeNights(t *testing.T) {
	quote, err := PriceBooking(100, date(2025, 6, 1), date(2025, 6, 4), testFees)

	assert.NoError(t, err)
	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, 300.0, quote.NightlyTotal)
	assert.Equal(t, 505.0, quote.Total)
}

func TestPriceBooking_SingleNight(t *testing.T) {
	quote, err := PriceBooking(250, date(2025, 1, 10), date(2025, 1, 11), testFees)

	assert.NoError(t, err)
	assert.Equal(t, 1, quote.Nights)
	assert.Equal(t, 455.0, quote.Total)
}

func TestPriceBooking_SameDay(t *testing.T) {
	_, err := PriceBooking(100, date(2025, 6, 1), date(2025, 6, 1), testFees)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestPriceBooking_ReversedDates(t *testing.T) {
	_, err := PriceBooking(100, date(2025, 6, 4), date(2025, 6, 1), testFees)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestPriceBooking_AcrossDSTChange(t *testing.T) {
	// only 71 clock hours, but three calendar nights
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	quote, err := PriceBooking(100,
		time.Date(2025, 3, 8, 0, 0, 0, 0, loc),
		time.Date(2025, 3, 11, 0, 0, 0, 0, loc),
		testFees)

	assert.NoError(t, err)
	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, 505.0, quote.Total)
}

func TestPriceBooking_ZeroFees(t *testing.T) {
	quote, err := PriceBooking(80, date(2025, 3, 1), date(2025, 3, 5), FeeSchedule{})

	assert.NoError(t, err)
	assert.Equal(t, 320.0, quote.Total)
}
