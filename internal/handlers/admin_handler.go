package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mobile-barber/internal/dto"
	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/httpresp"
	"github.com/BruksfildServices01/mobile-barber/internal/middleware"
	ucBooking "github.com/BruksfildServices01/mobile-barber/internal/usecase/booking"
	ucCustomer "github.com/BruksfildServices01/mobile-barber/internal/usecase/customer"
	ucLoyalty "github.com/BruksfildServices01/mobile-barber/internal/usecase/loyalty"
	ucReport "github.com/BruksfildServices01/mobile-barber/internal/usecase/report"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	listBookings     *ucBooking.ListAllBookings
	transition       *ucBooking.TransitionBooking
	customerBookings *ucBooking.ListCustomerBookings
	listCustomers    *ucCustomer.ListCustomers
	progress         *ucLoyalty.GetProgress
	redeem           *ucLoyalty.RedeemFreeCut
	dashboard        *ucReport.GetDashboard
	export           *ucReport.ExportBookings
}

type AdminDeps struct {
	ListBookings     *ucBooking.ListAllBookings
	Transition       *ucBooking.TransitionBooking
	CustomerBookings *ucBooking.ListCustomerBookings
	ListCustomers    *ucCustomer.ListCustomers
	Progress         *ucLoyalty.GetProgress
	Redeem           *ucLoyalty.RedeemFreeCut
	Dashboard        *ucReport.GetDashboard
	Export           *ucReport.ExportBookings
}

func NewAdminHandler(d AdminDeps) *AdminHandler {
	return &AdminHandler{
		listBookings:     d.ListBookings,
		transition:       d.Transition,
		customerBookings: d.CustomerBookings,
		listCustomers:    d.ListCustomers,
		progress:         d.Progress,
		redeem:           d.Redeem,
		dashboard:        d.Dashboard,
		export:           d.Export,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// BOOKINGS
// ======================================================

func (h *AdminHandler) ListBookings(c *gin.Context) {
	list, err := h.listBookings.Execute(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewBookingList(list))
}

func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	res, err := h.transition.Execute(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// CUSTOMERS / LOYALTY
// ======================================================

func (h *AdminHandler) ListCustomers(c *gin.Context) {
	list, err := h.listCustomers.Execute(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AdminHandler) CustomerBookings(c *gin.Context) {
	res, err := h.customerBookings.Execute(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *AdminHandler) CustomerLoyalty(c *gin.Context) {
	p, err := h.progress.Execute(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, p)
}

func (h *AdminHandler) RedeemFreeCut(c *gin.Context) {
	acc, err := h.redeem.Execute(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, acc)
}

// ======================================================
// REPORTS
// ======================================================

func (h *AdminHandler) Dashboard(c *gin.Context) {
	d, err := h.dashboard.Execute(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, d)
}

func (h *AdminHandler) ExportBookings(c *gin.Context) {
	res, err := h.export.Execute(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}
