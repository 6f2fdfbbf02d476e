package booking

import (
	"time"

	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves b to the target status and stamps the matching timestamp.
// b is left untouched when the transition is not allowed.
func Transition(b *models.Booking, to Status, now time.Time) error {
	if err := CanTransition(Status(b.Status), to); err != nil {
		return err
	}

	b.Status = string(to)
	switch to {
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
	}
	return nil
}

// CanCustomerCancel is the rule applied where customers are offered a cancel
// action: still booked, and the booking date is today or later.
func CanCustomerCancel(b *models.Booking, today string) error {
	if Status(b.Status) != StatusBooked || b.Date < today {
		return httperr.ErrValidation("cannot_cancel")
	}
	return nil
}

// IsUpcoming reports whether b belongs to the customer's upcoming list.
func IsUpcoming(b *models.Booking, today string) bool {
	return Status(b.Status) == StatusBooked && b.Date >= today
}
