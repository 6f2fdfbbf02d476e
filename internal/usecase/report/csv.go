package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/BruksfildServices01/mobile-barber/internal/models"
)

var csvHeader = []string{
	"id", "customer_name", "customer_email", "service", "location",
	"date", "time", "price", "status", "created_at",
}

// RenderCSV writes one row per booking, in input order.
func RenderCSV(bookings []models.Booking) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, b := range bookings {
		var name, email string
		if b.Customer != nil {
			name, email = b.Customer.Name, b.Customer.Email
		}

		row := []string{
			b.ID,
			name,
			email,
			b.Service,
			b.Location,
			b.Date,
			b.Time,
			strconv.FormatFloat(b.Price, 'f', 2, 64),
			b.Status,
			b.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
