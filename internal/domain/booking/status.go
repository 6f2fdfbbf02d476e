package booking

import "github.com/BruksfildServices01/mobile-barber/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusBooked    Status = "booked"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusBooked, StatusCompleted, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// ===============================
// Validations
// ===============================

// allowedTransitions lists, per target status, the statuses it may be reached from.
var allowedTransitions = map[Status][]Status{
	StatusCompleted: {StatusBooked},
	StatusCancelled: {StatusBooked},
}

// CanTransition checks a status change against the booking state machine.
func CanTransition(from, to Status) error {
	for _, s := range allowedTransitions[to] {
		if s == from {
			return nil
		}
	}
	return httperr.ErrInvalidTransition("invalid_transition")
}

func InitialStatus() Status {
	return StatusBooked
}
