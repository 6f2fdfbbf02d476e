package booking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/mobile-barber/internal/domain/booking"
	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/infra/repository/memstore"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
	"github.com/BruksfildServices01/mobile-barber/internal/session"
	"github.com/BruksfildServices01/mobile-barber/internal/timezone"
	loyaltyuc "github.com/BruksfildServices01/mobile-barber/internal/usecase/loyalty"
)

var (
	alice = session.Session{CustomerID: "alice", Email: "alice@example.com"}
	bob   = session.Session{CustomerID: "bob", Email: "bob@example.com"}
	admin = session.Session{CustomerID: "admin", Email: "owner@example.com", IsAdmin: true}
)

// Monday 2025-03-10, 18:00 local.
func fixedClock() timezone.Clock {
	loc := timezone.Location(timezone.DefaultTimezone)
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, loc)
	return func() time.Time { return now }
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type countingCache struct {
	mu          sync.Mutex
	entries     map[string][]string
	invalidated []string
}

func newCountingCache() *countingCache {
	return &countingCache{entries: map[string][]string{}}
}

func (c *countingCache) BookedTimes(_ context.Context, date string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.entries[date]
	return t, ok
}

func (c *countingCache) StoreBookedTimes(_ context.Context, date string, times []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[date] = times
}

func (c *countingCache) Invalidate(_ context.Context, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, date)
	c.invalidated = append(c.invalidated, date)
}

type fixture struct {
	store      *memstore.Store
	cache      *countingCache
	create     *CreateBooking
	transition *TransitionBooking
	cancel     *CancelBooking
	listMine   *ListCustomerBookings
	listAll    *ListAllBookings
	avail      *GetAvailability
}

func newFixture() *fixture {
	store := memstore.New()
	cache := newCountingCache()
	clock := fixedClock()
	log := discard()

	return &fixture{
		store:      store,
		cache:      cache,
		create:     NewCreateBooking(store, cache, nil, clock, log),
		transition: NewTransitionBooking(store, cache, loyaltyuc.NewRecordCompletion(), nil, clock, log),
		cancel:     NewCancelBooking(store, cache, nil, clock),
		listMine:   NewListCustomerBookings(store, clock, log),
		listAll:    NewListAllBookings(store, log),
		avail:      NewGetAvailability(store, cache, clock, log),
	}
}

func (f *fixture) book(t *testing.T, sess session.Session, date, hm string) *models.Booking {
	t.Helper()
	b, err := f.create.Execute(context.Background(), sess, CreateBookingInput{Location: "KK12", Date: date, Time: hm})
	require.NoError(t, err)
	return b
}

// ----------------------------------------------------
// create
// ----------------------------------------------------

func TestCreate_StoresBookedWithLocationPrice(t *testing.T) {
	f := newFixture()

	b, err := f.create.Execute(context.Background(), alice, CreateBookingInput{
		Location: "OUTSIDE PASUM", Date: "2025-03-10", Time: "20:00",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "alice", b.CustomerID)
	assert.Equal(t, "booked", b.Status)
	assert.Equal(t, 15.0, b.Price)
	assert.Equal(t, "Basic Haircut", b.Service)
	assert.Contains(t, f.cache.invalidated, "2025-03-10")
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cases := []struct {
		in   CreateBookingInput
		code string
	}{
		{CreateBookingInput{Location: "KK99", Date: "2025-03-11", Time: "20:00"}, "invalid_location"},
		{CreateBookingInput{Location: "KK12", Date: "11/03/2025", Time: "20:00"}, "invalid_date"},
		{CreateBookingInput{Location: "KK12", Date: "2025-03-09", Time: "20:00"}, "date_in_past"},
		{CreateBookingInput{Location: "KK12", Date: "2025-03-11", Time: "10:00"}, "invalid_time_slot"},
		{CreateBookingInput{Location: "KK12", Date: "2025-03-15", Time: "09:00"}, "invalid_time_slot"},
	}
	for _, tc := range cases {
		_, err := f.create.Execute(ctx, alice, tc.in)
		assert.True(t, httperr.IsBusiness(err, tc.code), "want %s, got %v", tc.code, err)
		assert.True(t, httperr.IsKind(err, httperr.KindValidation))
	}

	// weekend daytime slot is fine
	_, err := f.create.Execute(ctx, alice, CreateBookingInput{Location: "KK5", Date: "2025-03-15", Time: "10:00"})
	assert.NoError(t, err)
}

func TestCreate_SlotAlreadyBooked(t *testing.T) {
	f := newFixture()
	f.book(t, alice, "2025-03-11", "20:00")

	_, err := f.create.Execute(context.Background(), bob, CreateBookingInput{Location: "KK11", Date: "2025-03-11", Time: "20:00"})
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
}

type racingRepo struct {
	*memstore.Store
}

// IsSlotBooked always misses, as if the competing insert landed after the check.
func (r racingRepo) IsSlotBooked(context.Context, string, string) (bool, error) {
	return false, nil
}

func TestCreate_LostRaceIsConflict(t *testing.T) {
	store := memstore.New()
	uc := NewCreateBooking(racingRepo{store}, domain.NoopSlotCache{}, nil, fixedClock(), discard())
	ctx := context.Background()

	_, err := uc.Execute(ctx, alice, CreateBookingInput{Location: "KK12", Date: "2025-03-11", Time: "21:00"})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, bob, CreateBookingInput{Location: "KK12", Date: "2025-03-11", Time: "21:00"})
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
	assert.True(t, httperr.IsKind(err, httperr.KindRaceCondition))
}

func TestCreate_ConcurrentSameSlotOnlyOneWins(t *testing.T) {
	store := memstore.New()
	uc := NewCreateBooking(racingRepo{store}, domain.NoopSlotCache{}, nil, fixedClock(), discard())

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), alice, CreateBookingInput{Location: "KK12", Date: "2025-03-12", Time: "22:00"})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	times, err := store.ListBookedTimes(context.Background(), "2025-03-12")
	require.NoError(t, err)
	assert.Equal(t, []string{"22:00"}, times)
}

func TestCreate_StorageFailure(t *testing.T) {
	f := newFixture()
	f.store.FailNext("CreateBooking", errors.New("db down"))

	_, err := f.create.Execute(context.Background(), alice, CreateBookingInput{Location: "KK12", Date: "2025-03-11", Time: "20:00"})
	assert.True(t, httperr.IsKind(err, httperr.KindPersistence))
}

// ----------------------------------------------------
// transition
// ----------------------------------------------------

func TestTransition_CompleteCreditsLoyalty(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.book(t, alice, "2025-03-10", "20:00")

	res, err := f.transition.Execute(ctx, admin, b.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", res.Booking.Status)
	require.NotNil(t, res.Booking.CompletedAt)
	require.NotNil(t, res.Loyalty)
	assert.Equal(t, 1, res.Loyalty.CutCount)
	assert.False(t, res.FreeCutEarned)

	// terminal: a second completion changes nothing
	_, err = f.transition.Execute(ctx, admin, b.ID, "completed")
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))

	acc, err := f.store.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, acc.CutCount)
}

func TestTransition_FifthCompletionEarnsFreeCut(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	slots := []string{"20:00", "20:30", "21:00", "21:30", "22:00"}

	var last *TransitionResult
	for _, hm := range slots {
		b := f.book(t, alice, "2025-03-11", hm)
		res, err := f.transition.Execute(ctx, admin, b.ID, "completed")
		require.NoError(t, err)
		last = res
	}
	assert.True(t, last.FreeCutEarned)
	assert.Equal(t, 5, last.Loyalty.CutCount)
	assert.True(t, last.Loyalty.FreeCutEarned)
}

func TestSaturdayBookingCompletedLandsInHistory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b, err := f.create.Execute(ctx, alice, CreateBookingInput{Location: "KK12", Date: "2025-03-15", Time: "14:00"})
	require.NoError(t, err)
	assert.Equal(t, 10.0, b.Price)
	assert.Equal(t, "booked", b.Status)

	before, err := f.listMine.Execute(ctx, alice, "alice")
	require.NoError(t, err)
	require.Len(t, before.Upcoming, 1)
	assert.Empty(t, before.History)

	res, err := f.transition.Execute(ctx, admin, b.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Loyalty.CutCount)
	assert.False(t, res.Loyalty.FreeCutEarned)

	after, err := f.listMine.Execute(ctx, alice, "alice")
	require.NoError(t, err)
	assert.Empty(t, after.Upcoming)
	require.Len(t, after.History, 1)
	assert.Equal(t, b.ID, after.History[0].ID)
	assert.Equal(t, "completed", after.History[0].Status)
}

func TestTransition_CancelDoesNotTouchLoyalty(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.book(t, alice, "2025-03-10", "20:00")

	res, err := f.transition.Execute(ctx, admin, b.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", res.Booking.Status)
	assert.Nil(t, res.Loyalty)

	_, err = f.store.GetAccount(ctx, "alice")
	assert.Error(t, err)

	_, err = f.transition.Execute(ctx, admin, b.ID, "completed")
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
}

func TestTransition_Rejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.book(t, alice, "2025-03-10", "20:00")

	_, err := f.transition.Execute(ctx, alice, b.ID, "completed")
	assert.True(t, httperr.IsBusiness(err, "admin_only"))

	_, err = f.transition.Execute(ctx, admin, b.ID, "no_show")
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))

	_, err = f.transition.Execute(ctx, admin, b.ID, "booked")
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))

	_, err = f.transition.Execute(ctx, admin, "missing", "completed")
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))

	got, err := f.store.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "booked", got.Status)
}

func TestTransition_LoyaltyFailureRollsBackCompletion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.book(t, alice, "2025-03-10", "20:00")

	f.store.FailNext("SaveAccount", errors.New("db down"))
	_, err := f.transition.Execute(ctx, admin, b.ID, "completed")
	assert.True(t, httperr.IsBusiness(err, "loyalty_update_failed"))

	got, err := f.store.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "booked", got.Status)
	assert.Zero(t, f.store.CreditCount())

	// retry succeeds and counts exactly once
	res, err := f.transition.Execute(ctx, admin, b.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Loyalty.CutCount)
}

func TestTransition_FreesSlot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.book(t, alice, "2025-03-11", "20:00")

	_, err := f.transition.Execute(ctx, admin, b.ID, "cancelled")
	require.NoError(t, err)

	_, err = f.create.Execute(ctx, bob, CreateBookingInput{Location: "KK12", Date: "2025-03-11", Time: "20:00"})
	assert.NoError(t, err)
}

// ----------------------------------------------------
// cancel
// ----------------------------------------------------

func TestCancel_OwnUpcomingBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.book(t, alice, "2025-03-10", "22:00")

	got, err := f.cancel.Execute(ctx, alice, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	require.NotNil(t, got.CancelledAt)

	_, err = f.cancel.Execute(ctx, alice, b.ID)
	assert.True(t, httperr.IsBusiness(err, "cannot_cancel"))
}

func TestCancel_OtherCustomersBookingIsNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.book(t, alice, "2025-03-11", "20:00")

	_, err := f.cancel.Execute(ctx, bob, b.ID)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))

	got, _ := f.store.GetBooking(ctx, b.ID)
	assert.Equal(t, "booked", got.Status)
}

func TestCancel_PastOrCompletedRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	past := &models.Booking{CustomerID: "alice", Location: "KK12", Date: "2025-03-01", Time: "20:00", Price: 10}
	require.NoError(t, f.store.CreateBooking(ctx, past))
	_, err := f.cancel.Execute(ctx, alice, past.ID)
	assert.True(t, httperr.IsBusiness(err, "cannot_cancel"))

	done := f.book(t, alice, "2025-03-12", "20:00")
	_, err = f.transition.Execute(ctx, admin, done.ID, "completed")
	require.NoError(t, err)
	_, err = f.cancel.Execute(ctx, alice, done.ID)
	assert.True(t, httperr.IsBusiness(err, "cannot_cancel"))
}

// ----------------------------------------------------
// listing
// ----------------------------------------------------

func TestListCustomer_PartitionAndScope(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	up := f.book(t, alice, "2025-03-12", "20:00")
	done := f.book(t, alice, "2025-03-11", "20:00")
	f.book(t, bob, "2025-03-11", "20:30")
	_, err := f.transition.Execute(ctx, admin, done.ID, "completed")
	require.NoError(t, err)

	got, err := f.listMine.Execute(ctx, alice, "alice")
	require.NoError(t, err)
	require.Len(t, got.Upcoming, 1)
	assert.Equal(t, up.ID, got.Upcoming[0].ID)
	require.Len(t, got.History, 1)
	assert.Equal(t, done.ID, got.History[0].ID)
	assert.Equal(t, 2, got.Stats.Total)
	assert.Equal(t, 10.0, got.Stats.TotalSpent)

	_, err = f.listMine.Execute(ctx, bob, "alice")
	assert.True(t, httperr.IsBusiness(err, "not_your_resource"))

	_, err = f.listMine.Execute(ctx, admin, "alice")
	assert.NoError(t, err)
}

func TestList_ReadFailureIsEmpty(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.book(t, alice, "2025-03-12", "20:00")

	f.store.FailNext("ListBookingsForCustomer", errors.New("db down"))
	got, err := f.listMine.Execute(ctx, alice, "alice")
	require.NoError(t, err)
	assert.Empty(t, got.Upcoming)
	assert.Empty(t, got.History)

	f.store.FailNext("ListAllBookings", errors.New("db down"))
	all, err := f.listAll.Execute(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = f.listAll.Execute(ctx, alice)
	assert.True(t, httperr.IsBusiness(err, "admin_only"))
}

// ----------------------------------------------------
// availability
// ----------------------------------------------------

func TestAvailability_ExcludesBookedOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.book(t, alice, "2025-03-11", "20:00")
	cancelled := f.book(t, bob, "2025-03-11", "21:00")
	_, err := f.cancel.Execute(ctx, bob, cancelled.ID)
	require.NoError(t, err)

	a, err := f.avail.Execute(ctx, "2025-03-11")
	require.NoError(t, err)
	assert.False(t, a.Weekend)
	assert.Len(t, a.Slots, 7)
	assert.NotContains(t, a.AvailableTimes(), "20:00")
	assert.Contains(t, a.AvailableTimes(), "21:00")
	assert.Len(t, a.AvailableTimes(), 6)

	w, err := f.avail.Execute(ctx, "2025-03-15")
	require.NoError(t, err)
	assert.True(t, w.Weekend)
	assert.Len(t, w.AvailableTimes(), 28)
}

func TestAvailability_CacheIsInvalidatedByWrites(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a, err := f.avail.Execute(ctx, "2025-03-11")
	require.NoError(t, err)
	assert.Len(t, a.AvailableTimes(), 7)

	f.book(t, alice, "2025-03-11", "20:00")

	a, err = f.avail.Execute(ctx, "2025-03-11")
	require.NoError(t, err)
	assert.Len(t, a.AvailableTimes(), 6)
}

func TestAvailability_ReadFailureShowsAllSlots(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.book(t, alice, "2025-03-11", "20:00")
	f.cache.Invalidate(ctx, "2025-03-11")

	f.store.FailNext("ListBookedTimes", errors.New("db down"))
	a, err := f.avail.Execute(ctx, "2025-03-11")
	require.NoError(t, err)
	assert.Len(t, a.AvailableTimes(), 7)
}

func TestAvailability_InvalidDates(t *testing.T) {
	f := newFixture()

	_, err := f.avail.Execute(context.Background(), "tomorrow")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	_, err = f.avail.Execute(context.Background(), "2025-03-01")
	assert.True(t, httperr.IsBusiness(err, "date_in_past"))
}
