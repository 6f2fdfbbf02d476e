package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/mobile-barber/internal/domain/loyalty"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
)

var (
	ErrNotFound  = errors.New("booking not found")
	ErrSlotTaken = errors.New("slot already booked")
)

type Repository interface {
	loyalty.Repository

	// WithinTx runs fn against a repository bound to one transaction.
	// Any error returned by fn rolls back every write made through tx.
	WithinTx(ctx context.Context, fn func(tx Repository) error) error

	// ---- create / conflicts ----
	// CreateBooking returns ErrSlotTaken when another booked row already holds (date, time).
	CreateBooking(ctx context.Context, b *models.Booking) error
	IsSlotBooked(ctx context.Context, date, hm string) (bool, error)

	// ---- state changes ----
	GetBookingForUpdate(ctx context.Context, id string) (*models.Booking, error)
	UpdateBooking(ctx context.Context, b *models.Booking) error

	// ---- reads ----
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookedTimes(ctx context.Context, date string) ([]string, error)
	ListBookingsForCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	ListAllBookings(ctx context.Context) ([]models.Booking, error)

	// ListCompletedWithoutCredit returns completed bookings that never reached the loyalty counter.
	ListCompletedWithoutCredit(ctx context.Context, limit int) ([]models.Booking, error)
}

// SlotCache keeps booked times per date. Implementations may drop entries at any time.
type SlotCache interface {
	BookedTimes(ctx context.Context, date string) ([]string, bool)
	StoreBookedTimes(ctx context.Context, date string, times []string)
	Invalidate(ctx context.Context, date string)
}

type NoopSlotCache struct{}

func (NoopSlotCache) BookedTimes(context.Context, string) ([]string, bool) { return nil, false }
func (NoopSlotCache) StoreBookedTimes(context.Context, string, []string)   {}
func (NoopSlotCache) Invalidate(context.Context, string)                    {}
