package booking

import (
	"context"
	"log/slog"

	domain "github.com/BruksfildServices01/mobile-barber/internal/domain/booking"
	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/timezone"
)

type Availability struct {
	Date    string            `json:"date"`
	Weekend bool              `json:"weekend"`
	Slots   []domain.TimeSlot `json:"slots"`
}

// AvailableTimes returns only the free slot times.
func (a *Availability) AvailableTimes() []string {
	out := []string{}
	for _, s := range a.Slots {
		if s.Available {
			out = append(out, s.Time)
		}
	}
	return out
}

type GetAvailability struct {
	repo  domain.Repository
	cache domain.SlotCache
	clock timezone.Clock
	log   *slog.Logger
}

func NewGetAvailability(
	repo domain.Repository,
	cache domain.SlotCache,
	clock timezone.Clock,
	log *slog.Logger,
) *GetAvailability {
	return &GetAvailability{repo: repo, cache: cache, clock: clock, log: log}
}

func (uc *GetAvailability) Execute(ctx context.Context, dateStr string) (*Availability, error) {
	now := uc.clock()

	date, err := timezone.ParseDate(dateStr, now.Location())
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date")
	}
	if dateStr < timezone.Today(now) {
		return nil, httperr.ErrValidation("date_in_past")
	}

	return &Availability{
		Date:    dateStr,
		Weekend: domain.IsWeekend(date),
		Slots:   domain.MarkAvailability(date, uc.bookedTimes(ctx, dateStr)),
	}, nil
}

// bookedTimes treats an unreadable store as nothing booked; creation still
// rejects taken slots.
func (uc *GetAvailability) bookedTimes(ctx context.Context, date string) []string {
	if times, ok := uc.cache.BookedTimes(ctx, date); ok {
		return times
	}

	times, err := uc.repo.ListBookedTimes(ctx, date)
	if err != nil {
		uc.log.Warn("booked times read failed", "date", date, "error", err)
		return nil
	}

	uc.cache.StoreBookedTimes(ctx, date, times)
	return times
}
