package models

import "time"

// Loyalty is the per-customer cut counter. Version backs compare-and-swap updates.
type Loyalty struct {
	CustomerID    string `gorm:"type:uuid;primaryKey" json:"customer_id"`
	CutCount      int    `gorm:"not null;default:0" json:"cut_count"`
	FreeCutEarned bool   `gorm:"not null;default:false" json:"free_cut_earned"`
	Version       int    `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Loyalty) TableName() string {
	return "loyalty"
}

// LoyaltyCredit records that a completed booking has been counted. One row per booking.
type LoyaltyCredit struct {
	BookingID  string `gorm:"type:uuid;primaryKey" json:"booking_id"`
	CustomerID string `gorm:"type:uuid;index;not null" json:"customer_id"`
	CutCount   int    `json:"cut_count"`

	CreatedAt time.Time `json:"created_at"`
}
