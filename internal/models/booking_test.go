package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo_AllowedEdges(t *testing.T) {
	allowed := []struct {
		from, to BookingStatus
	}{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusPending, StatusCancelled},
		{StatusPending, StatusPaused},
		{StatusApproved, StatusCancelled},
		{StatusApproved, StatusPaused},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}
}

func TestCanTransitionTo_TerminalStates(t *testing.T) {
	terminals := []BookingStatus{StatusRejected, StatusCancelled, StatusPaused}
	targets := []BookingStatus{StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusPaused}

	for _, from := range terminals {
		for _, to := range targets {
			assert.False(t, from.CanTransitionTo(to), "%s -> %s should be blocked", from, to)
		}
	}
}

func TestCanTransitionTo_NoApproveFromApproved(t *testing.T) {
	assert.False(t, StatusApproved.CanTransitionTo(StatusApproved))
	assert.False(t, StatusApproved.CanTransitionTo(StatusRejected))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusCancelled))
}

func TestNormalizeStatus_ConfirmedAlias(t *testing.T) {
	assert.Equal(t, StatusApproved, NormalizeStatus("confirmed"))
	assert.Equal(t, StatusApproved, NormalizeStatus("approved"))
	assert.Equal(t, StatusPending, NormalizeStatus("pending"))
	assert.False(t, NormalizeStatus("garbage").Valid())
}

func TestNights(t *testing.T) {
	b := &Booking{
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 3, b.Nights())
}

func TestNights_AcrossDSTChange(t *testing.T) {
	// New York springs forward on 2025-03-09; the stay loses an hour on
	// the clock but still spans three calendar nights
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	b := &Booking{
		StartDate: time.Date(2025, 3, 8, 0, 0, 0, 0, loc),
		EndDate:   time.Date(2025, 3, 11, 0, 0, 0, 0, loc),
	}
	assert.Equal(t, 3, b.Nights())
}
