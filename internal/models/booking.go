package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	CustomerID string    `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"customer,omitempty"`

	Service  string  `gorm:"size:50;not null" json:"service"`
	Location string  `gorm:"size:20;not null" json:"location"`
	Date     string  `gorm:"size:10;not null;index" json:"date"`
	Time     string  `gorm:"size:5;not null" json:"time"`
	Price    float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	Status string `gorm:"size:20;default:'booked';index" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
