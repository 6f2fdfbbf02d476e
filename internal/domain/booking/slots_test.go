package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestSlotsFor_WeekdayAndWeekend(t *testing.T) {
	monday := day("2025-03-10")
	saturday := day("2025-03-15")
	sunday := day("2025-03-16")

	assert.Equal(t, weekdaySlots, SlotsFor(monday))
	assert.Len(t, SlotsFor(monday), 7)
	assert.Equal(t, weekendSlots, SlotsFor(saturday))
	assert.Equal(t, weekendSlots, SlotsFor(sunday))
	assert.Len(t, SlotsFor(sunday), 28)
}

func TestSlotsFor_ReturnsCopy(t *testing.T) {
	s := SlotsFor(day("2025-03-10"))
	s[0] = "00:00"
	assert.Equal(t, "20:00", SlotsFor(day("2025-03-10"))[0])
}

func TestIsOfferedSlot(t *testing.T) {
	assert.True(t, IsOfferedSlot(day("2025-03-10"), "20:30"))
	assert.False(t, IsOfferedSlot(day("2025-03-10"), "10:00"))
	assert.True(t, IsOfferedSlot(day("2025-03-15"), "10:00"))
	assert.False(t, IsOfferedSlot(day("2025-03-15"), "09:30"))
}

func TestMarkAvailability(t *testing.T) {
	slots := MarkAvailability(day("2025-03-10"), []string{"20:00", "22:30", "09:00"})

	assert.Len(t, slots, 7)
	for _, s := range slots {
		want := s.Time != "20:00" && s.Time != "22:30"
		assert.Equal(t, want, s.Available, s.Time)
	}
}

func TestPriceFor(t *testing.T) {
	p, ok := PriceFor("KK12")
	assert.True(t, ok)
	assert.Equal(t, 10.0, p)

	p, ok = PriceFor("OUTSIDE PASUM")
	assert.True(t, ok)
	assert.Equal(t, 15.0, p)

	_, ok = PriceFor("KK99")
	assert.False(t, ok)

	assert.Len(t, Locations(), 4)
}
