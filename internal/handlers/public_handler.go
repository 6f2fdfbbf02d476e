package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/mobile-barber/internal/domain/booking"
	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/mobile-barber/internal/usecase/booking"
)

type PublicHandler struct {
	availability *ucBooking.GetAvailability
}

func NewPublicHandler(availability *ucBooking.GetAvailability) *PublicHandler {
	return &PublicHandler{availability: availability}
}

func (h *PublicHandler) Locations(c *gin.Context) {
	httpresp.List(c, domain.Locations())
}

// Availability answers GET /availability?date=YYYY-MM-DD.
func (h *PublicHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	a, err := h.availability.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, a)
}

func (h *PublicHandler) Health(c *gin.Context) {
	httpresp.OK(c, gin.H{"status": "ok"})
}
