// Package jobs holds background work scheduled with cron.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/BruksfildServices01/mobile-barber/internal/domain/booking"
	loyaltyuc "github.com/BruksfildServices01/mobile-barber/internal/usecase/loyalty"
)

const reconcileBatch = 200

// LoyaltyReconciler credits completed bookings that never reached the
// loyalty counter. Crediting is idempotent per booking, so overlapping runs
// are harmless.
type LoyaltyReconciler struct {
	repo   booking.Repository
	record *loyaltyuc.RecordCompletion
	log    *slog.Logger
}

func NewLoyaltyReconciler(
	repo booking.Repository,
	record *loyaltyuc.RecordCompletion,
	log *slog.Logger,
) *LoyaltyReconciler {
	return &LoyaltyReconciler{repo: repo, record: record, log: log}
}

// RunOnce credits one batch and returns how many bookings were counted.
func (r *LoyaltyReconciler) RunOnce(ctx context.Context) (int, error) {
	pending, err := r.repo.ListCompletedWithoutCredit(ctx, reconcileBatch)
	if err != nil {
		return 0, err
	}

	credited := 0
	for _, b := range pending {
		err := r.repo.WithinTx(ctx, func(tx booking.Repository) error {
			res, err := r.record.Execute(ctx, tx, b.CustomerID, b.ID)
			if err == nil && res.Counted {
				credited++
			}
			return err
		})
		if err != nil {
			r.log.Warn("loyalty reconcile failed", "booking_id", b.ID, "error", err)
		}
	}

	if credited > 0 {
		r.log.Info("loyalty reconciled", "credited", credited)
	}
	return credited, nil
}

// Start runs the reconciler once, then on spec. Stop the returned cron on shutdown.
func (r *LoyaltyReconciler) Start(spec string) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc(spec, r.tick); err != nil {
		return nil, err
	}

	r.tick()

	c.Start()
	r.log.Info("loyalty reconciler started", "schedule", spec)
	return c, nil
}

func (r *LoyaltyReconciler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := r.RunOnce(ctx); err != nil {
		r.log.Warn("loyalty reconcile run failed", "error", err)
	}
}
