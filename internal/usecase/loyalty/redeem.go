package loyalty

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/mobile-barber/internal/audit"
	domain "github.com/BruksfildServices01/mobile-barber/internal/domain/loyalty"
	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
	"github.com/BruksfildServices01/mobile-barber/internal/session"
)

const redeemAttempts = 2

type RedeemFreeCut struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRedeemFreeCut(repo domain.Repository, audit *audit.Dispatcher) *RedeemFreeCut {
	return &RedeemFreeCut{repo: repo, audit: audit}
}

// Execute clears the customer's free cut flag. Redeeming without an earned
// free cut is a no-op that still succeeds.
func (uc *RedeemFreeCut) Execute(
	ctx context.Context,
	sess session.Session,
	customerID string,
) (*models.Loyalty, error) {

	if err := sess.RequireAdmin(); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < redeemAttempts; attempt++ {
		acc, err := uc.repo.GetAccount(ctx, customerID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("loyalty_not_found")
		}
		if err != nil {
			return nil, httperr.ErrPersistence("loyalty_update_failed", err)
		}

		hadFreeCut := acc.FreeCutEarned
		domain.Redeem(acc)

		saved, err := uc.repo.SaveAccount(ctx, acc)
		if err != nil {
			return nil, httperr.ErrPersistence("loyalty_update_failed", err)
		}
		if !saved {
			continue
		}

		uc.audit.Dispatch(audit.Event{
			ActorID:  sess.ActorID(),
			Action:   "free_cut_redeemed",
			Entity:   "loyalty",
			EntityID: audit.StrPtr(customerID),
			Metadata: map[string]any{
				"cut_count":    acc.CutCount,
				"had_free_cut": hadFreeCut,
			},
		})
		return acc, nil
	}

	return nil, httperr.ErrPersistence("loyalty_update_failed", errors.New("loyalty account changed concurrently"))
}
