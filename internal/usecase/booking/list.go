package booking

import (
	"context"
	"log/slog"

	domain "github.com/BruksfildServices01/mobile-barber/internal/domain/booking"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
	"github.com/BruksfildServices01/mobile-barber/internal/session"
	"github.com/BruksfildServices01/mobile-barber/internal/timezone"
)

// ======================================================
// CUSTOMER
// ======================================================

type CustomerBookings struct {
	Upcoming []models.Booking    `json:"upcoming"`
	History  []models.Booking    `json:"history"`
	Stats    domain.CustomerStats `json:"stats"`
}

type ListCustomerBookings struct {
	repo  domain.Repository
	clock timezone.Clock
	log   *slog.Logger
}

func NewListCustomerBookings(repo domain.Repository, clock timezone.Clock, log *slog.Logger) *ListCustomerBookings {
	return &ListCustomerBookings{repo: repo, clock: clock, log: log}
}

// Execute lists a customer's bookings newest first. Read failures yield an empty list.
func (uc *ListCustomerBookings) Execute(
	ctx context.Context,
	sess session.Session,
	customerID string,
) (*CustomerBookings, error) {

	if err := sess.RequireAccess(customerID); err != nil {
		return nil, err
	}

	list, err := uc.repo.ListBookingsForCustomer(ctx, customerID)
	if err != nil {
		uc.log.Warn("list customer bookings failed", "customer_id", customerID, "error", err)
		list = []models.Booking{}
	}

	upcoming, history := domain.Partition(list, timezone.Today(uc.clock()))

	return &CustomerBookings{
		Upcoming: upcoming,
		History:  history,
		Stats:    domain.StatsFor(list),
	}, nil
}

// ======================================================
// ADMIN
// ======================================================

type ListAllBookings struct {
	repo domain.Repository
	log  *slog.Logger
}

func NewListAllBookings(repo domain.Repository, log *slog.Logger) *ListAllBookings {
	return &ListAllBookings{repo: repo, log: log}
}

func (uc *ListAllBookings) Execute(
	ctx context.Context,
	sess session.Session,
) ([]models.Booking, error) {

	if err := sess.RequireAdmin(); err != nil {
		return nil, err
	}

	list, err := uc.repo.ListAllBookings(ctx)
	if err != nil {
		uc.log.Warn("list all bookings failed", "error", err)
		return []models.Booking{}, nil
	}
	return list, nil
}
