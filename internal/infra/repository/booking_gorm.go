package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/mobile-barber/internal/domain/booking"
	"github.com/BruksfildServices01/mobile-barber/internal/domain/loyalty"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
	if isUniqueViolation(err) {
		return domain.ErrSlotTaken
	}
	return err
}

func (r *BookingGormRepository) IsSlotBooked(
	ctx context.Context,
	date string,
	hm string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("date = ? AND time = ? AND status = ?", date, hm, string(domain.StatusBooked)).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Booking (state changes)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingForUpdate(
	ctx context.Context,
	id string,
) (*models.Booking, error) {

	var b models.Booking
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&b).Error
	if isNotFound(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error
}

// --------------------------------------------------
// Booking (reads)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id string,
) (*models.Booking, error) {

	var b models.Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if isNotFound(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookedTimes(
	ctx context.Context,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("date = ? AND status = ?", date, string(domain.StatusBooked)).
		Order("time ASC").
		Pluck("time", &times).Error; err != nil {
		return nil, err
	}

	return times, nil
}

func (r *BookingGormRepository) ListBookingsForCustomer(
	ctx context.Context,
	customerID string,
) ([]models.Booking, error) {

	var list []models.Booking
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("date DESC, time DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}

	return list, nil
}

func (r *BookingGormRepository) ListAllBookings(
	ctx context.Context,
) ([]models.Booking, error) {

	var list []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Order("date DESC, time DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}

	return list, nil
}

func (r *BookingGormRepository) ListCompletedWithoutCredit(
	ctx context.Context,
	limit int,
) ([]models.Booking, error) {

	var list []models.Booking
	q := r.db.WithContext(ctx).
		Where("status = ?", string(domain.StatusCompleted)).
		Where("NOT EXISTS (SELECT 1 FROM loyalty_credits lc WHERE lc.booking_id = bookings.id)").
		Order("completed_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}

	return list, nil
}

// --------------------------------------------------
// Loyalty
// --------------------------------------------------

func (r *BookingGormRepository) EnsureAccount(
	ctx context.Context,
	customerID string,
) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Loyalty{CustomerID: customerID}).Error
}

func (r *BookingGormRepository) GetAccount(
	ctx context.Context,
	customerID string,
) (*models.Loyalty, error) {

	var acc models.Loyalty
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&acc).Error
	if isNotFound(err) {
		return nil, loyalty.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *BookingGormRepository) GetAccountForUpdate(
	ctx context.Context,
	customerID string,
) (*models.Loyalty, error) {

	var acc models.Loyalty
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ?", customerID).
		First(&acc).Error
	if isNotFound(err) {
		return nil, loyalty.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *BookingGormRepository) ListAccounts(
	ctx context.Context,
) ([]models.Loyalty, error) {

	var list []models.Loyalty
	if err := r.db.WithContext(ctx).Order("customer_id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) SaveAccount(
	ctx context.Context,
	acc *models.Loyalty,
) (bool, error) {

	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.Loyalty{}).
		Where("customer_id = ? AND version = ?", acc.CustomerID, acc.Version).
		Updates(map[string]any{
			"cut_count":       acc.CutCount,
			"free_cut_earned": acc.FreeCutEarned,
			"version":         gorm.Expr("version + 1"),
			"updated_at":      now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	acc.Version++
	acc.UpdatedAt = now
	return true, nil
}

func (r *BookingGormRepository) InsertCredit(
	ctx context.Context,
	credit *models.LoyaltyCredit,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(credit)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
