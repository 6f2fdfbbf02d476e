package booking

import "github.com/BruksfildServices01/mobile-barber/internal/models"

type CustomerStats struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Cancelled  int     `json:"cancelled"`
	TotalSpent float64 `json:"total_spent"`
}

// Partition splits bookings into upcoming and history, keeping input order.
func Partition(bookings []models.Booking, today string) (upcoming, history []models.Booking) {
	upcoming = []models.Booking{}
	history = []models.Booking{}
	for i := range bookings {
		if IsUpcoming(&bookings[i], today) {
			upcoming = append(upcoming, bookings[i])
		} else {
			history = append(history, bookings[i])
		}
	}
	return upcoming, history
}

func TotalRevenue(bookings []models.Booking) float64 {
	var total float64
	for _, b := range bookings {
		if Status(b.Status) == StatusCompleted {
			total += b.Price
		}
	}
	return total
}

func RevenueByLocation(bookings []models.Booking) map[string]float64 {
	out := map[string]float64{}
	for _, b := range bookings {
		if Status(b.Status) == StatusCompleted {
			out[b.Location] += b.Price
		}
	}
	return out
}

func OnDate(bookings []models.Booking, date string) []models.Booking {
	out := []models.Booking{}
	for _, b := range bookings {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out
}

func CountByStatus(bookings []models.Booking) map[string]int {
	out := map[string]int{
		string(StatusBooked):    0,
		string(StatusCompleted): 0,
		string(StatusCancelled): 0,
	}
	for _, b := range bookings {
		out[b.Status]++
	}
	return out
}

func StatsFor(bookings []models.Booking) CustomerStats {
	stats := CustomerStats{Total: len(bookings)}
	for _, b := range bookings {
		switch Status(b.Status) {
		case StatusCompleted:
			stats.Completed++
			stats.TotalSpent += b.Price
		case StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}
