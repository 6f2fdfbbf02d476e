package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/httpresp"
	"github.com/BruksfildServices01/mobile-barber/internal/middleware"
	ucBooking "github.com/BruksfildServices01/mobile-barber/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create *ucBooking.CreateBooking
	cancel *ucBooking.CancelBooking
	list   *ucBooking.ListCustomerBookings
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	cancel *ucBooking.CancelBooking,
	list *ucBooking.ListCustomerBookings,
) *BookingHandler {
	return &BookingHandler{create: create, cancel: cancel, list: list}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	Location string `json:"location" binding:"required"`
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Time     string `json:"time" binding:"required"` // HH:mm
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), middleware.SessionFrom(c), ucBooking.CreateBookingInput{
		Location: req.Location,
		Date:     req.Date,
		Time:     req.Time,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ======================================================
// LIST / CANCEL
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	res, err := h.list.Execute(c.Request.Context(), sess, sess.CustomerID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	b, err := h.cancel.Execute(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}
