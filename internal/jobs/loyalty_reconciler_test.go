package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/mobile-barber/internal/infra/repository/memstore"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
	loyaltyuc "github.com/BruksfildServices01/mobile-barber/internal/usecase/loyalty"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReconciler_CreditsMissingOnce(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	record := loyaltyuc.NewRecordCompletion()

	for _, hm := range []string{"20:00", "20:30", "21:00"} {
		b := &models.Booking{CustomerID: "c1", Date: "2025-03-10", Time: hm, Status: "completed"}
		require.NoError(t, store.CreateBooking(ctx, b))
	}
	counted := &models.Booking{CustomerID: "c1", Date: "2025-03-10", Time: "21:30", Status: "completed"}
	require.NoError(t, store.CreateBooking(ctx, counted))
	_, err := record.Execute(ctx, store, "c1", counted.ID)
	require.NoError(t, err)

	require.NoError(t, store.CreateBooking(ctx, &models.Booking{CustomerID: "c1", Date: "2025-03-11", Time: "20:00"}))

	r := NewLoyaltyReconciler(store, record, discard())

	n, err := r.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = r.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	acc, err := store.GetAccount(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 4, acc.CutCount)
}

func TestReconciler_ListFailure(t *testing.T) {
	store := memstore.New()
	store.FailNext("ListCompletedWithoutCredit", errors.New("db down"))

	_, err := NewLoyaltyReconciler(store, loyaltyuc.NewRecordCompletion(), discard()).RunOnce(context.Background())
	assert.Error(t, err)
}

func TestReconciler_StartRejectsBadSpec(t *testing.T) {
	r := NewLoyaltyReconciler(memstore.New(), loyaltyuc.NewRecordCompletion(), discard())

	_, err := r.Start("not a schedule")
	assert.Error(t, err)

	c, err := r.Start("@every 1h")
	require.NoError(t, err)
	<-c.Stop().Done()
}
