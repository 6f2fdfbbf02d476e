package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/httpresp"
	"github.com/BruksfildServices01/mobile-barber/internal/middleware"
	ucCustomer "github.com/BruksfildServices01/mobile-barber/internal/usecase/customer"
	ucLoyalty "github.com/BruksfildServices01/mobile-barber/internal/usecase/loyalty"
)

type MeHandler struct {
	profile  *ucCustomer.GetProfile
	update   *ucCustomer.UpdateProfile
	progress *ucLoyalty.GetProgress
}

func NewMeHandler(
	profile *ucCustomer.GetProfile,
	update *ucCustomer.UpdateProfile,
	progress *ucLoyalty.GetProgress,
) *MeHandler {
	return &MeHandler{profile: profile, update: update, progress: progress}
}

type UpdateMeRequest struct {
	Name     string `json:"name" binding:"required"`
	Telegram string `json:"telegram"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	p, err := h.profile.Execute(c.Request.Context(), sess, sess.CustomerID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"customer": p.Customer,
		"is_admin": sess.IsAdmin,
		"loyalty":  p.Loyalty,
	})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	customer, err := h.update.Execute(c.Request.Context(), middleware.SessionFrom(c), ucCustomer.UpdateProfileInput{
		Name:     req.Name,
		Telegram: req.Telegram,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, customer)
}

func (h *MeHandler) Loyalty(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	p, err := h.progress.Execute(c.Request.Context(), sess, sess.CustomerID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, p)
}
