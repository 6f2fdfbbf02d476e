package customer

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/mobile-barber/internal/audit"
	"github.com/BruksfildServices01/mobile-barber/internal/auth"
	domain "github.com/BruksfildServices01/mobile-barber/internal/domain/customer"
	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
	ucLoyalty "github.com/BruksfildServices01/mobile-barber/internal/usecase/loyalty"
)

type SignUpInput struct {
	Name     string
	Email    string
	Telegram string
	Password string
}

// AdminPolicy decides which emails are promoted to admin on signup and login.
type AdminPolicy func(email string) bool

// EmailCheck returns false for addresses that should be refused.
type EmailCheck func(email string) bool

type SignUp struct {
	customers  domain.Repository
	accounts   *ucLoyalty.EnsureAccount
	isAdmin    AdminPolicy
	emailCheck EmailCheck
	audit      *audit.Dispatcher
}

func NewSignUp(
	customers domain.Repository,
	accounts *ucLoyalty.EnsureAccount,
	isAdmin AdminPolicy,
	emailCheck EmailCheck,
	audit *audit.Dispatcher,
) *SignUp {
	return &SignUp{
		customers:  customers,
		accounts:   accounts,
		isAdmin:    isAdmin,
		emailCheck: emailCheck,
		audit:      audit,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *SignUp) Execute(ctx context.Context, in SignUpInput) (*models.Customer, error) {
	email := NormalizeEmail(in.Email)

	if uc.emailCheck != nil && !uc.emailCheck(email) {
		return nil, httperr.ErrValidation("invalid_email_domain")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, httperr.ErrPersistence("signup_failed", err)
	}

	c := &models.Customer{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Telegram:     strings.TrimSpace(in.Telegram),
		PasswordHash: hash,
		Role:         models.RoleCustomer,
	}
	if uc.isAdmin != nil && uc.isAdmin(email) {
		c.Role = models.RoleAdmin
	}

	if err := uc.customers.CreateCustomer(ctx, c); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, httperr.ErrValidation("email_already_used")
		}
		return nil, httperr.ErrPersistence("signup_failed", err)
	}

	if err := uc.accounts.Execute(ctx, c.ID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.StrPtr(c.ID),
		Action:   "customer_signed_up",
		Entity:   "customer",
		EntityID: audit.StrPtr(c.ID),
	})

	return c, nil
}
