package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mobile-barber/internal/auth"
	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
	ucCustomer "github.com/BruksfildServices01/mobile-barber/internal/usecase/customer"
)

type AuthHandler struct {
	signUp *ucCustomer.SignUp
	signIn *ucCustomer.SignIn
	tokens *auth.TokenIssuer
}

func NewAuthHandler(
	signUp *ucCustomer.SignUp,
	signIn *ucCustomer.SignIn,
	tokens *auth.TokenIssuer,
) *AuthHandler {
	return &AuthHandler{signUp: signUp, signIn: signIn, tokens: tokens}
}

// --------- Requests ---------

type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Telegram string `json:"telegram"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Customer *models.Customer `json:"customer"`
	IsAdmin  bool             `json:"is_admin"`
	Token    string           `json:"token"`
}

// --------- Handlers ---------

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	customer, err := h.signUp.Execute(c.Request.Context(), ucCustomer.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Telegram: req.Telegram,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, customer)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	customer, err := h.signIn.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, customer)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, customer *models.Customer) {
	token, err := h.tokens.Issue(customer.ID, customer.Email)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	c.JSON(status, authResponse{
		Customer: customer,
		IsAdmin:  customer.IsAdmin(),
		Token:    token,
	})
}
