package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/mobile-barber/internal/audit"
	domain "github.com/BruksfildServices01/mobile-barber/internal/domain/booking"
	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
	"github.com/BruksfildServices01/mobile-barber/internal/session"
	"github.com/BruksfildServices01/mobile-barber/internal/timezone"
)

type CancelBooking struct {
	repo  domain.Repository
	cache domain.SlotCache
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewCancelBooking(
	repo domain.Repository,
	cache domain.SlotCache,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		cache: cache,
		audit: audit,
		clock: clock,
	}
}

// Execute cancels one of the caller's own upcoming bookings. Bookings of
// other customers are reported as not found.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	sess session.Session,
	bookingID string,
) (*models.Booking, error) {

	now := uc.clock()
	var cancelled *models.Booking

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		b, err := tx.GetBookingForUpdate(ctx, bookingID)
		if errors.Is(err, domain.ErrNotFound) || (err == nil && b.CustomerID != sess.CustomerID) {
			return httperr.ErrNotFound("booking_not_found")
		}
		if err != nil {
			return httperr.ErrPersistence("booking_update_failed", err)
		}

		if err := domain.CanCustomerCancel(b, timezone.Today(now)); err != nil {
			return err
		}
		if err := domain.Transition(b, domain.StatusCancelled, now); err != nil {
			return err
		}
		if err := tx.UpdateBooking(ctx, b); err != nil {
			return httperr.ErrPersistence("booking_update_failed", err)
		}

		cancelled = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, cancelled.Date)

	uc.audit.Dispatch(audit.Event{
		ActorID:  sess.ActorID(),
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: audit.StrPtr(cancelled.ID),
		Metadata: map[string]any{"by": "customer"},
	})

	return cancelled, nil
}
