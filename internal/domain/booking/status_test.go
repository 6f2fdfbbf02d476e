package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"booked", "completed", "cancelled"} {
		got, ok := ParseStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, Status(s), got)
	}

	_, ok := ParseStatus("no_show")
	assert.False(t, ok)
	_, ok = ParseStatus("")
	assert.False(t, ok)
}

func TestCanTransition(t *testing.T) {
	all := []Status{StatusBooked, StatusCompleted, StatusCancelled}

	for _, from := range all {
		for _, to := range all {
			err := CanTransition(from, to)
			if from == StatusBooked && to != StatusBooked {
				assert.NoError(t, err, "%s -> %s", from, to)
				continue
			}
			assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition), "%s -> %s", from, to)
		}
	}
}

func TestTransition_StampsTimestamps(t *testing.T) {
	now := time.Date(2025, 3, 10, 21, 0, 0, 0, time.UTC)

	b := &models.Booking{Status: string(StatusBooked)}
	require.NoError(t, Transition(b, StatusCompleted, now))
	assert.Equal(t, "completed", b.Status)
	require.NotNil(t, b.CompletedAt)
	assert.Nil(t, b.CancelledAt)

	c := &models.Booking{Status: string(StatusBooked)}
	require.NoError(t, Transition(c, StatusCancelled, now))
	assert.Equal(t, "cancelled", c.Status)
	require.NotNil(t, c.CancelledAt)
}

func TestTransition_TerminalStatesStay(t *testing.T) {
	now := time.Now()

	b := &models.Booking{Status: string(StatusCompleted)}
	err := Transition(b, StatusCancelled, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
	assert.Equal(t, "completed", b.Status)
	assert.Nil(t, b.CancelledAt)

	err = Transition(b, StatusBooked, now)
	assert.Error(t, err)
	assert.Equal(t, "completed", b.Status)
}

func TestCanCustomerCancel(t *testing.T) {
	today := "2025-03-10"

	assert.NoError(t, CanCustomerCancel(&models.Booking{Status: "booked", Date: "2025-03-10"}, today))
	assert.NoError(t, CanCustomerCancel(&models.Booking{Status: "booked", Date: "2025-04-01"}, today))

	err := CanCustomerCancel(&models.Booking{Status: "booked", Date: "2025-03-09"}, today)
	assert.True(t, httperr.IsBusiness(err, "cannot_cancel"))

	err = CanCustomerCancel(&models.Booking{Status: "completed", Date: "2025-03-12"}, today)
	assert.True(t, httperr.IsBusiness(err, "cannot_cancel"))
}
