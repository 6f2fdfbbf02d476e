package dto

import (
	"time"

	"github.com/BruksfildServices01/mobile-barber/internal/models"
)

// BookingListDTO is the admin row: booking plus the customer's contact details.
type BookingListDTO struct {
	ID            string     `json:"id"`
	Date          string     `json:"date"`
	Time          string     `json:"time"`
	Location      string     `json:"location"`
	Service       string     `json:"service"`
	Price         float64    `json:"price"`
	Status        string     `json:"status"`
	CustomerID    string     `json:"customer_id"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	Telegram      string     `json:"telegram,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func NewBookingList(list []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(list))
	for _, b := range list {
		row := BookingListDTO{
			ID:          b.ID,
			Date:        b.Date,
			Time:        b.Time,
			Location:    b.Location,
			Service:     b.Service,
			Price:       b.Price,
			Status:      b.Status,
			CustomerID:  b.CustomerID,
			CompletedAt: b.CompletedAt,
			CancelledAt: b.CancelledAt,
			CreatedAt:   b.CreatedAt,
		}
		if b.Customer != nil {
			row.CustomerName = b.Customer.Name
			row.CustomerEmail = b.Customer.Email
			row.Telegram = b.Customer.Telegram
		}
		out = append(out, row)
	}
	return out
}
