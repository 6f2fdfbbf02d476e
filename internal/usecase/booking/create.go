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
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Location string
	Date     string
	Time     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	cache domain.SlotCache
	audit *audit.Dispatcher
	clock timezone.Clock
	log   *slog.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	cache domain.SlotCache,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	log *slog.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		cache: cache,
		audit: audit,
		clock: clock,
		log:   log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	sess session.Session,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Location and price
	// --------------------------------------------------
	price, ok := domain.PriceFor(in.Location)
	if !ok {
		return nil, httperr.ErrValidation("invalid_location")
	}

	// --------------------------------------------------
	// 2. Date, in the service timezone
	// --------------------------------------------------
	now := uc.clock()
	date, err := timezone.ParseDate(in.Date, now.Location())
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date")
	}
	if in.Date < timezone.Today(now) {
		return nil, httperr.ErrValidation("date_in_past")
	}

	// --------------------------------------------------
	// 3. Slot offered that day
	// --------------------------------------------------
	if !domain.IsOfferedSlot(date, in.Time) {
		return nil, httperr.ErrValidation("invalid_time_slot")
	}

	// --------------------------------------------------
	// 4. Pre-check; the store still enforces uniqueness on insert
	// --------------------------------------------------
	taken, err := uc.repo.IsSlotBooked(ctx, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrPersistence("booking_create_failed", err)
	}
	if taken {
		return nil, httperr.ErrValidation("slot_unavailable")
	}

	// --------------------------------------------------
	// 5. Create
	// --------------------------------------------------
	b := &models.Booking{
		CustomerID: sess.CustomerID,
		Service:    domain.ServiceBasicHaircut,
		Location:   in.Location,
		Date:       in.Date,
		Time:       in.Time,
		Price:      price,
		Status:     string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, httperr.ErrRaceCondition("slot_taken")
		}
		return nil, httperr.ErrPersistence("booking_create_failed", err)
	}

	uc.cache.Invalidate(ctx, b.Date)

	uc.audit.Dispatch(audit.Event{
		ActorID:  sess.ActorID(),
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: audit.StrPtr(b.ID),
		Metadata: map[string]any{
			"location": b.Location,
			"date":     b.Date,
			"time":     b.Time,
			"price":    b.Price,
		},
	})

	uc.log.Info("booking created", "booking_id", b.ID, "customer_id", b.CustomerID, "date", b.Date, "time", b.Time)

	return b, nil
}
