package booking

import (
	"slices"
	"time"
)

var weekdaySlots = []string{
	"20:00", "20:30", "21:00", "21:30", "22:00", "22:30", "23:00",
}

var weekendSlots = []string{
	"10:00", "10:30", "11:00", "11:30", "12:00", "12:30", "13:00", "13:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
	"18:00", "18:30", "19:00", "19:30", "20:00", "20:30", "21:00", "21:30",
	"22:00", "22:30", "23:00", "23:30",
}

type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// SlotsFor returns the slot table offered on date.
func SlotsFor(date time.Time) []string {
	src := weekdaySlots
	if IsWeekend(date) {
		src = weekendSlots
	}
	return slices.Clone(src)
}

func IsOfferedSlot(date time.Time, hm string) bool {
	return slices.Contains(SlotsFor(date), hm)
}

// MarkAvailability flags every offered slot of date that is not in booked.
func MarkAvailability(date time.Time, booked []string) []TimeSlot {
	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}

	all := SlotsFor(date)
	out := make([]TimeSlot, 0, len(all))
	for _, t := range all {
		out = append(out, TimeSlot{Time: t, Available: !taken[t]})
	}
	return out
}
