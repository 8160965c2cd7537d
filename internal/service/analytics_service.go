package service

import (
	"context"
	"sort"
	"time"

	"github.com/stayfindz/backend/internal/models"
	"github.com/stayfindz/backend/internal/repository"
)

var timeRangeMonths = map[string]int{
	"1month":  1,
	"3months": 3,
	"6months": 6,
	"1year":   12,
}

type MonthStat struct {
	Month    string  `json:"month"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

type LocationStat struct {
	Location string  `json:"location"`
	Revenue  float64 `json:"revenue"`
	Views    int64   `json:"views"`
	Bookings int     `json:"bookings"`
}

type AnalyticsSummary struct {
	TimeRange           string         `json:"time_range"`
	TotalViews          int64          `json:"total_views"`
	TotalBookings       int            `json:"total_bookings"`
	ConversionRate      float64        `json:"conversion_rate"`
	AverageRating       float64        `json:"average_rating"`
	RevenuePerBooking   float64        `json:"revenue_per_booking"`
	MonthlyBreakdown    []MonthStat    `json:"monthly_breakdown"`
	TopLocations        []LocationStat `json:"top_locations"`
	AverageStayNights   float64        `json:"average_stay_nights"`
	AverageLeadTimeDays float64        `json:"average_lead_time_days"`
	CancellationRate    float64        `json:"cancellation_rate"`
	RepeatGuestRate     float64        `json:"repeat_guest_rate"`
	AveragePrice        float64        `json:"average_price"`
	OccupancyRate       float64        `json:"occupancy_rate"`
}

type AnalyticsService interface {
	Summary(ctx context.Context, timeRange string) (*AnalyticsSummary, error)
}

// analyticsService derives every figure in-process from full scans of the
// bookings and listings tables. No pre-aggregated rollups exist; that is the
// accepted trade-off at this scale.
type analyticsService struct {
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
	now         func() time.Time
}

func NewAnalyticsService(bookingRepo repository.BookingRepository, listingRepo repository.ListingRepository) AnalyticsService {
	return &analyticsService{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		now:         time.Now,
	}
}

func (s *analyticsService) Summary(ctx context.Context, timeRange string) (*AnalyticsSummary, error) {
	months, ok := timeRangeMonths[timeRange]
	if !ok {
		return nil, ErrInvalidTimeRange
	}

	now := s.now()
	// Anchor the window on the first of the month: AddDate on a month-end
	// "now" normalizes nonexistent dates (Mar 31 minus a month is Mar 3)
	// and would skip short months entirely.
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	windowStart := monthStart.AddDate(0, -(months-1), 0)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	// One scan covers both the selected window and the occupancy year.
	scanStart := windowStart
	if yearStart.Before(scanStart) {
		scanStart = yearStart
	}

	allBookings, err := s.bookingRepo.FindSince(ctx, scanStart)
	if err != nil {
		return nil, err
	}
	listings, err := s.listingRepo.FindAllAny(ctx)
	if err != nil {
		return nil, err
	}

	var windowed []models.Booking
	for _, b := range allBookings {
		if !b.CreatedAt.Before(windowStart) {
			windowed = append(windowed, b)
		}
	}

	summary := &AnalyticsSummary{
		TimeRange:        timeRange,
		TotalBookings:    len(windowed),
		MonthlyBreakdown: monthlyBreakdown(windowed, now, months),
		TopLocations:     topLocations(windowed, listings),
	}

	var approved, cancelled int
	var revenue, stayNights, leadDays float64
	guests := make(map[uint]int)
	for _, b := range windowed {
		guests[b.UserID]++
		stayNights += float64(b.Nights())
		leadDays += b.StartDate.Sub(b.CreatedAt).Hours() / 24
		switch b.Status {
		case models.StatusApproved:
			approved++
			revenue += b.TotalPrice
		case models.StatusCancelled:
			cancelled++
		}
	}

	var totalViews int64
	var priceSum, ratingSum float64
	var rated int
	for _, l := range listings {
		totalViews += l.Views
		priceSum += l.PricePerNight
		if l.Rating > 0 {
			ratingSum += l.Rating
			rated++
		}
	}
	summary.TotalViews = totalViews

	summary.ConversionRate = ratio(float64(approved), float64(totalViews)) * 100
	summary.AverageRating = ratio(ratingSum, float64(rated))
	summary.RevenuePerBooking = ratio(revenue, float64(approved))
	summary.AverageStayNights = ratio(stayNights, float64(len(windowed)))
	summary.AverageLeadTimeDays = ratio(leadDays, float64(len(windowed)))
	summary.CancellationRate = ratio(float64(cancelled), float64(len(windowed))) * 100
	summary.AveragePrice = ratio(priceSum, float64(len(listings)))

	var repeat int
	for _, n := range guests {
		if n > 1 {
			repeat++
		}
	}
	summary.RepeatGuestRate = ratio(float64(repeat), float64(len(guests))) * 100

	// Occupancy approximation: nights booked this year over the year's
	// elapsed capacity across every listing.
	var bookedNights float64
	for _, b := range allBookings {
		if b.Status == models.StatusApproved && !b.CreatedAt.Before(yearStart) {
			bookedNights += float64(b.Nights())
		}
	}
	capacity := float64(len(listings)) * float64(now.YearDay())
	summary.OccupancyRate = ratio(bookedNights, capacity) * 100

	return summary, nil
}

// monthlyBreakdown always includes the current month plus months-1 prior
// calendar months, oldest first. Months are stepped on the first of the
// month so short months are never skipped.
func monthlyBreakdown(bookings []models.Booking, now time.Time, months int) []MonthStat {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months-1), 0)
	stats := make([]MonthStat, 0, months)
	for i := 0; i < months; i++ {
		m := first.AddDate(0, i, 0)
		stat := MonthStat{Month: m.Format("Jan 2006")}
		for _, b := range bookings {
			if b.CreatedAt.Year() == m.Year() && b.CreatedAt.Month() == m.Month() {
				stat.Bookings++
				if b.Status == models.StatusApproved {
					stat.Revenue += b.TotalPrice
				}
			}
		}
		stats = append(stats, stat)
	}
	return stats
}

// topLocations ranks by revenue, then views, top 5.
func topLocations(bookings []models.Booking, listings []models.Listing) []LocationStat {
	viewsByLocation := make(map[string]int64)
	for _, l := range listings {
		viewsByLocation[l.Location] += l.Views
	}

	byLocation := make(map[string]*LocationStat)
	for _, b := range bookings {
		loc := b.Listing.Location
		stat, ok := byLocation[loc]
		if !ok {
			stat = &LocationStat{Location: loc, Views: viewsByLocation[loc]}
			byLocation[loc] = stat
		}
		stat.Bookings++
		if b.Status == models.StatusApproved {
			stat.Revenue += b.TotalPrice
		}
	}

	stats := make([]LocationStat, 0, len(byLocation))
	for _, s := range byLocation {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Revenue != stats[j].Revenue {
			return stats[i].Revenue > stats[j].Revenue
		}
		return stats[i].Views > stats[j].Views
	})
	if len(stats) > 5 {
		stats = stats[:5]
	}
	return stats
}

// ratio guards every rate against a zero denominator.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
