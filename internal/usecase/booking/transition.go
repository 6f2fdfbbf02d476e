package booking

import (
	"context"
	"errors"
	"log/slog"

	"github.com/BruksfildServices01/mobile-barber/internal/audit"
	domain "github.com/BruksfildServices01/mobile-barber/internal/domain/booking"
	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
	"github.com/BruksfildServices01/mobile-barber/internal/session"
	"github.com/BruksfildServices01/mobile-barber/internal/timezone"
	loyaltyuc "github.com/BruksfildServices01/mobile-barber/internal/usecase/loyalty"
)

type TransitionResult struct {
	Booking *models.Booking `json:"booking"`
	// Loyalty is set only when the booking was completed.
	Loyalty       *models.Loyalty `json:"loyalty,omitempty"`
	FreeCutEarned bool            `json:"free_cut_earned"`
}

type TransitionBooking struct {
	repo   domain.Repository
	cache  domain.SlotCache
	record *loyaltyuc.RecordCompletion
	audit  *audit.Dispatcher
	clock  timezone.Clock
	log    *slog.Logger
}

func NewTransitionBooking(
	repo domain.Repository,
	cache domain.SlotCache,
	record *loyaltyuc.RecordCompletion,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	log *slog.Logger,
) *TransitionBooking {
	return &TransitionBooking{
		repo:   repo,
		cache:  cache,
		record: record,
		audit:  audit,
		clock:  clock,
		log:    log,
	}
}

// Execute applies an admin status change. Completion and the loyalty credit
// commit together or not at all.
func (uc *TransitionBooking) Execute(
	ctx context.Context,
	sess session.Session,
	bookingID string,
	newStatus string,
) (*TransitionResult, error) {

	if err := sess.RequireAdmin(); err != nil {
		return nil, err
	}

	target, ok := domain.ParseStatus(newStatus)
	if !ok {
		return nil, httperr.ErrInvalidTransition("invalid_transition")
	}

	now := uc.clock()
	var res TransitionResult

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		b, err := tx.GetBookingForUpdate(ctx, bookingID)
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("booking_not_found")
		}
		if err != nil {
			return httperr.ErrPersistence("booking_update_failed", err)
		}

		if err := domain.Transition(b, target, now); err != nil {
			return err
		}
		if err := tx.UpdateBooking(ctx, b); err != nil {
			return httperr.ErrPersistence("booking_update_failed", err)
		}

		if target == domain.StatusCompleted {
			credit, err := uc.record.Execute(ctx, tx, b.CustomerID, b.ID)
			if err != nil {
				return err
			}
			res.Loyalty = credit.Account
			res.FreeCutEarned = credit.Earned
		}

		res.Booking = b
		return nil
	})
	if err != nil {
		if httperr.IsKind(err, httperr.KindPersistence) {
			uc.log.Error("booking transition failed", "booking_id", bookingID, "status", newStatus, "error", err)
		}
		return nil, err
	}

	uc.cache.Invalidate(ctx, res.Booking.Date)

	uc.audit.Dispatch(audit.Event{
		ActorID:  sess.ActorID(),
		Action:   "booking_" + string(target),
		Entity:   "booking",
		EntityID: audit.StrPtr(res.Booking.ID),
		Metadata: map[string]any{
			"customer_id":     res.Booking.CustomerID,
			"free_cut_earned": res.FreeCutEarned,
		},
	})

	return &res, nil
}
