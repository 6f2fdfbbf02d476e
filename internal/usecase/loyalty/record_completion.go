package loyalty

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/mobile-barber/internal/domain/loyalty"
	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
)

type CompletionResult struct {
	Account *models.Loyalty
	// Counted is false when the booking had already been credited.
	Counted bool
	// Earned is true when this completion raised the free cut flag.
	Earned bool
}

// RecordCompletion credits one completed booking to its customer. It is
// idempotent per booking and must run on the repository of the transaction
// that completed the booking.
type RecordCompletion struct{}

func NewRecordCompletion() *RecordCompletion {
	return &RecordCompletion{}
}

func (uc *RecordCompletion) Execute(
	ctx context.Context,
	repo domain.Repository,
	customerID string,
	bookingID string,
) (*CompletionResult, error) {

	// --------------------------------------------------
	// account, created on first completion
	// --------------------------------------------------
	acc, err := repo.GetAccountForUpdate(ctx, customerID)
	if errors.Is(err, domain.ErrNotFound) {
		if err := repo.EnsureAccount(ctx, customerID); err != nil {
			return nil, httperr.ErrPersistence("loyalty_update_failed", err)
		}
		acc, err = repo.GetAccountForUpdate(ctx, customerID)
	}
	if err != nil {
		return nil, httperr.ErrPersistence("loyalty_update_failed", err)
	}

	// --------------------------------------------------
	// dedupe: one credit per booking
	// --------------------------------------------------
	next := *acc
	earned := domain.ApplyCompletion(&next)

	inserted, err := repo.InsertCredit(ctx, &models.LoyaltyCredit{
		BookingID:  bookingID,
		CustomerID: customerID,
		CutCount:   next.CutCount,
	})
	if err != nil {
		return nil, httperr.ErrPersistence("loyalty_update_failed", err)
	}
	if !inserted {
		return &CompletionResult{Account: acc}, nil
	}

	// --------------------------------------------------
	// compare-and-swap write
	// --------------------------------------------------
	saved, err := repo.SaveAccount(ctx, &next)
	if err != nil {
		return nil, httperr.ErrPersistence("loyalty_update_failed", err)
	}
	if !saved {
		return nil, httperr.ErrPersistence("loyalty_update_failed", errors.New("loyalty account changed concurrently"))
	}

	return &CompletionResult{Account: &next, Counted: true, Earned: earned}, nil
}
