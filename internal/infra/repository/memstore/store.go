// Package memstore is a process-local implementation of the booking, loyalty
// and customer repositories. It backs DATABASE_URL=memory:// and the tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/mobile-barber/internal/domain/booking"
	"github.com/BruksfildServices01/mobile-barber/internal/domain/customer"
	"github.com/BruksfildServices01/mobile-barber/internal/domain/loyalty"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
)

type state struct {
	customers map[string]models.Customer
	bookings  map[string]models.Booking
	accounts  map[string]models.Loyalty
	credits   map[string]models.LoyaltyCredit
	order     []string
}

type core struct {
	txMu sync.Mutex

	mu       sync.Mutex
	data     state
	failures map[string]error
}

// Store is safe for concurrent use. Inside WithinTx the callback gets a view
// of the same store that records how to undo each of its writes.
type Store struct {
	c    *core
	undo *[]func(*state)
}

var (
	_ booking.Repository  = (*Store)(nil)
	_ customer.Repository = (*Store)(nil)
)

func New() *Store {
	return &Store{c: &core{
		data: state{
			customers: map[string]models.Customer{},
			bookings:  map[string]models.Booking{},
			accounts:  map[string]models.Loyalty{},
			credits:   map[string]models.LoyaltyCredit{},
		},
		failures: map[string]error{},
	}}
}

// FailNext makes the next call of the named method return err.
func (s *Store) FailNext(method string, err error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	s.c.failures[method] = err
}

// fail must be called with s.c.mu held.
func (s *Store) fail(method string) error {
	if err, ok := s.c.failures[method]; ok {
		delete(s.c.failures, method)
		return err
	}
	return nil
}

// WithinTx serializes transactions. When fn fails, only the writes made
// through the tx view are reverted, newest first.
func (s *Store) WithinTx(ctx context.Context, fn func(tx booking.Repository) error) error {
	if s.undo != nil {
		return fn(s)
	}

	s.c.txMu.Lock()
	defer s.c.txMu.Unlock()

	tx := &Store{c: s.c, undo: &[]func(*state){}}
	if err := fn(tx); err != nil {
		s.c.mu.Lock()
		steps := *tx.undo
		for i := len(steps) - 1; i >= 0; i-- {
			steps[i](&s.c.data)
		}
		s.c.mu.Unlock()
		return err
	}
	return nil
}

// record must be called with s.c.mu held.
func (s *Store) record(step func(*state)) {
	if s.undo != nil {
		*s.undo = append(*s.undo, step)
	}
}

// ----------------------------------------------------
// Customers
// ----------------------------------------------------

func (s *Store) CreateCustomer(ctx context.Context, c *models.Customer) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("CreateCustomer"); err != nil {
		return err
	}

	for _, existing := range s.c.data.customers {
		if strings.EqualFold(existing.Email, c.Email) {
			return customer.ErrEmailTaken
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Role == "" {
		c.Role = models.RoleCustomer
	}
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	s.c.data.customers[c.ID] = *c
	id := c.ID
	s.record(func(d *state) { delete(d.customers, id) })
	return nil
}

func (s *Store) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("GetCustomerByID"); err != nil {
		return nil, err
	}

	c, ok := s.c.data.customers[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return &c, nil
}

func (s *Store) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("GetCustomerByEmail"); err != nil {
		return nil, err
	}

	for _, c := range s.c.data.customers {
		if strings.EqualFold(c.Email, email) {
			return &c, nil
		}
	}
	return nil, customer.ErrNotFound
}

func (s *Store) UpdateProfile(ctx context.Context, id, name, telegram string) (*models.Customer, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("UpdateProfile"); err != nil {
		return nil, err
	}

	c, ok := s.c.data.customers[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	prev := c
	s.record(func(d *state) { d.customers[id] = prev })
	c.Name = name
	c.Telegram = telegram
	c.UpdatedAt = time.Now()
	s.c.data.customers[id] = c
	return &c, nil
}

func (s *Store) SetRole(ctx context.Context, id, role string) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	c, ok := s.c.data.customers[id]
	if !ok {
		return customer.ErrNotFound
	}
	prev := c
	s.record(func(d *state) { d.customers[id] = prev })
	c.Role = role
	s.c.data.customers[id] = c
	return nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("ListCustomers"); err != nil {
		return nil, err
	}

	out := make([]models.Customer, 0, len(s.c.data.customers))
	for _, c := range s.c.data.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CountCustomers(ctx context.Context) (int64, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("CountCustomers"); err != nil {
		return 0, err
	}
	return int64(len(s.c.data.customers)), nil
}

// ----------------------------------------------------
// Bookings
// ----------------------------------------------------

func (s *Store) CreateBooking(ctx context.Context, b *models.Booking) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("CreateBooking"); err != nil {
		return err
	}

	if b.Status == "" {
		b.Status = string(booking.StatusBooked)
	}
	if b.Status == string(booking.StatusBooked) && s.slotBooked(b.Date, b.Time) {
		return booking.ErrSlotTaken
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now

	stored := *b
	stored.Customer = nil
	s.c.data.bookings[b.ID] = stored
	s.c.data.order = append(s.c.data.order, b.ID)
	id := b.ID
	s.record(func(d *state) {
		delete(d.bookings, id)
		d.order = without(d.order, id)
	})
	return nil
}

func (s *Store) slotBooked(date, hm string) bool {
	for _, b := range s.c.data.bookings {
		if b.Date == date && b.Time == hm && b.Status == string(booking.StatusBooked) {
			return true
		}
	}
	return false
}

func (s *Store) IsSlotBooked(ctx context.Context, date, hm string) (bool, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("IsSlotBooked"); err != nil {
		return false, err
	}
	return s.slotBooked(date, hm), nil
}

func (s *Store) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("GetBooking"); err != nil {
		return nil, err
	}

	b, ok := s.c.data.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return &b, nil
}

func (s *Store) GetBookingForUpdate(ctx context.Context, id string) (*models.Booking, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("GetBookingForUpdate"); err != nil {
		return nil, err
	}

	b, ok := s.c.data.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return &b, nil
}

func (s *Store) UpdateBooking(ctx context.Context, b *models.Booking) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("UpdateBooking"); err != nil {
		return err
	}

	prev, ok := s.c.data.bookings[b.ID]
	if !ok {
		return booking.ErrNotFound
	}
	s.record(func(d *state) { d.bookings[prev.ID] = prev })
	b.UpdatedAt = time.Now()
	stored := *b
	stored.Customer = nil
	s.c.data.bookings[b.ID] = stored
	return nil
}

func (s *Store) ListBookedTimes(ctx context.Context, date string) ([]string, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("ListBookedTimes"); err != nil {
		return nil, err
	}

	out := []string{}
	for _, id := range s.c.data.order {
		b := s.c.data.bookings[id]
		if b.Date == date && b.Status == string(booking.StatusBooked) {
			out = append(out, b.Time)
		}
	}
	sort.Strings(out)
	return out, nil
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// newestFirst orders by date then time, both descending.
func newestFirst(out []models.Booking) {
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time > out[j].Time
	})
}

func (s *Store) ListBookingsForCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("ListBookingsForCustomer"); err != nil {
		return nil, err
	}

	out := []models.Booking{}
	for _, id := range s.c.data.order {
		if b := s.c.data.bookings[id]; b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	newestFirst(out)
	return out, nil
}

func (s *Store) ListAllBookings(ctx context.Context) ([]models.Booking, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("ListAllBookings"); err != nil {
		return nil, err
	}

	out := make([]models.Booking, 0, len(s.c.data.bookings))
	for _, id := range s.c.data.order {
		b := s.c.data.bookings[id]
		if c, ok := s.c.data.customers[b.CustomerID]; ok {
			b.Customer = &c
		}
		out = append(out, b)
	}
	newestFirst(out)
	return out, nil
}

func (s *Store) ListCompletedWithoutCredit(ctx context.Context, limit int) ([]models.Booking, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("ListCompletedWithoutCredit"); err != nil {
		return nil, err
	}

	out := []models.Booking{}
	for _, id := range s.c.data.order {
		b := s.c.data.bookings[id]
		if b.Status != string(booking.StatusCompleted) {
			continue
		}
		if _, counted := s.c.data.credits[b.ID]; counted {
			continue
		}
		out = append(out, b)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// ----------------------------------------------------
// Loyalty
// ----------------------------------------------------

func (s *Store) EnsureAccount(ctx context.Context, customerID string) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("EnsureAccount"); err != nil {
		return err
	}

	if _, ok := s.c.data.accounts[customerID]; !ok {
		now := time.Now()
		s.c.data.accounts[customerID] = models.Loyalty{CustomerID: customerID, CreatedAt: now, UpdatedAt: now}
		s.record(func(d *state) { delete(d.accounts, customerID) })
	}
	return nil
}

func (s *Store) GetAccount(ctx context.Context, customerID string) (*models.Loyalty, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("GetAccount"); err != nil {
		return nil, err
	}

	acc, ok := s.c.data.accounts[customerID]
	if !ok {
		return nil, loyalty.ErrNotFound
	}
	return &acc, nil
}

func (s *Store) GetAccountForUpdate(ctx context.Context, customerID string) (*models.Loyalty, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("GetAccountForUpdate"); err != nil {
		return nil, err
	}

	acc, ok := s.c.data.accounts[customerID]
	if !ok {
		return nil, loyalty.ErrNotFound
	}
	return &acc, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]models.Loyalty, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("ListAccounts"); err != nil {
		return nil, err
	}

	out := make([]models.Loyalty, 0, len(s.c.data.accounts))
	for _, acc := range s.c.data.accounts {
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out, nil
}

func (s *Store) SaveAccount(ctx context.Context, acc *models.Loyalty) (bool, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("SaveAccount"); err != nil {
		return false, err
	}

	current, ok := s.c.data.accounts[acc.CustomerID]
	if !ok || current.Version != acc.Version {
		return false, nil
	}
	s.record(func(d *state) { d.accounts[current.CustomerID] = current })
	acc.Version++
	acc.UpdatedAt = time.Now()
	s.c.data.accounts[acc.CustomerID] = *acc
	return true, nil
}

func (s *Store) InsertCredit(ctx context.Context, credit *models.LoyaltyCredit) (bool, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if err := s.fail("InsertCredit"); err != nil {
		return false, err
	}

	if _, ok := s.c.data.credits[credit.BookingID]; ok {
		return false, nil
	}
	credit.CreatedAt = time.Now()
	s.c.data.credits[credit.BookingID] = *credit
	bookingID := credit.BookingID
	s.record(func(d *state) { delete(d.credits, bookingID) })
	return true, nil
}

func (s *Store) CreditCount() int {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return len(s.c.data.credits)
}
