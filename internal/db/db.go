package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/mobile-barber/internal/config"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
)

// activeSlotIndex lets at most one booked row hold a (date, time) pair.
const activeSlotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_active_slot
	ON bookings (date, time)
	WHERE status = 'booked'
`

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Booking{},
		&models.Loyalty{},
		&models.LoyaltyCredit{},
		&models.AuditLog{},
		&models.SchemaMigration{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(activeSlotIndex).Error; err != nil {
		return fmt.Errorf("create active slot index: %w", err)
	}

	if err := applyOnce(db, creditBackfill, backfillCredits); err != nil {
		return fmt.Errorf("backfill loyalty credits: %w", err)
	}

	return nil
}

const creditBackfill = "2025_loyalty_credit_backfill"

// backfillCredits marks bookings completed before credits existed as already
// counted, so the reconciler does not count them a second time.
func backfillCredits(tx *gorm.DB) error {
	return tx.Exec(`
		INSERT INTO loyalty_credits (booking_id, customer_id, cut_count, created_at)
		SELECT b.id, b.customer_id, 0, NOW()
		FROM bookings b
		WHERE b.status = 'completed'
		ON CONFLICT DO NOTHING
	`).Error
}

// applyOnce runs step in a transaction together with its marker row. Later
// calls with the same name are no-ops.
func applyOnce(db *gorm.DB, name string, step func(tx *gorm.DB) error) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.SchemaMigration{Name: name, AppliedAt: time.Now().UTC()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return step(tx)
	})
}
