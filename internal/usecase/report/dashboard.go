package report

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/mobile-barber/internal/domain/booking"
	"github.com/BruksfildServices01/mobile-barber/internal/domain/customer"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
	"github.com/BruksfildServices01/mobile-barber/internal/session"
	"github.com/BruksfildServices01/mobile-barber/internal/timezone"
)

type Dashboard struct {
	TotalBookings     int                `json:"total_bookings"`
	TotalCustomers    int64              `json:"total_customers"`
	TotalRevenue      float64            `json:"total_revenue"`
	RevenueByLocation map[string]float64 `json:"revenue_by_location"`
	StatusCounts      map[string]int     `json:"status_counts"`
	Today             string             `json:"today"`
	TodayBookings     []models.Booking   `json:"today_bookings"`
}

type GetDashboard struct {
	bookings  booking.Repository
	customers customer.Repository
	clock     timezone.Clock
	log       *slog.Logger
}

func NewGetDashboard(
	bookings booking.Repository,
	customers customer.Repository,
	clock timezone.Clock,
	log *slog.Logger,
) *GetDashboard {
	return &GetDashboard{bookings: bookings, customers: customers, clock: clock, log: log}
}

// Execute builds the admin overview. Failed reads degrade to zero values.
func (uc *GetDashboard) Execute(ctx context.Context, sess session.Session) (*Dashboard, error) {
	if err := sess.RequireAdmin(); err != nil {
		return nil, err
	}

	list, err := uc.bookings.ListAllBookings(ctx)
	if err != nil {
		uc.log.Warn("dashboard bookings read failed", "error", err)
		list = []models.Booking{}
	}

	total, err := uc.customers.CountCustomers(ctx)
	if err != nil {
		uc.log.Warn("dashboard customer count failed", "error", err)
		total = 0
	}

	today := timezone.Today(uc.clock())

	return &Dashboard{
		TotalBookings:     len(list),
		TotalCustomers:    total,
		TotalRevenue:      booking.TotalRevenue(list),
		RevenueByLocation: booking.RevenueByLocation(list),
		StatusCounts:      booking.CountByStatus(list),
		Today:             today,
		TodayBookings:     booking.OnDate(list, today),
	}, nil
}
