package loyalty

import (
	"context"

	domain "github.com/BruksfildServices01/mobile-barber/internal/domain/loyalty"
	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
)

type EnsureAccount struct {
	repo domain.Repository
}

func NewEnsureAccount(repo domain.Repository) *EnsureAccount {
	return &EnsureAccount{repo: repo}
}

func (uc *EnsureAccount) Execute(ctx context.Context, customerID string) error {
	if err := uc.repo.EnsureAccount(ctx, customerID); err != nil {
		return httperr.ErrPersistence("loyalty_update_failed", err)
	}
	return nil
}
