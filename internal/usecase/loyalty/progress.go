package loyalty

import (
	"context"
	"errors"
	"log/slog"

	domain "github.com/BruksfildServices01/mobile-barber/internal/domain/loyalty"
	"github.com/BruksfildServices01/mobile-barber/internal/session"
)

type GetProgress struct {
	repo domain.Repository
	log  *slog.Logger
}

func NewGetProgress(repo domain.Repository, log *slog.Logger) *GetProgress {
	return &GetProgress{repo: repo, log: log}
}

// Execute never fails on storage errors: a missing or unreadable account reads as zero.
func (uc *GetProgress) Execute(
	ctx context.Context,
	sess session.Session,
	customerID string,
) (domain.Progress, error) {

	if err := sess.RequireAccess(customerID); err != nil {
		return domain.Progress{}, err
	}

	acc, err := uc.repo.GetAccount(ctx, customerID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.log.Warn("loyalty read failed", "customer_id", customerID, "error", err)
		}
		return domain.ProgressOf(nil), nil
	}
	return domain.ProgressOf(acc), nil
}
