package customer

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/mobile-barber/internal/auth"
	domain "github.com/BruksfildServices01/mobile-barber/internal/domain/customer"
	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
	ucLoyalty "github.com/BruksfildServices01/mobile-barber/internal/usecase/loyalty"
)

type SignIn struct {
	customers domain.Repository
	accounts  *ucLoyalty.EnsureAccount
	isAdmin   AdminPolicy
}

func NewSignIn(customers domain.Repository, accounts *ucLoyalty.EnsureAccount, isAdmin AdminPolicy) *SignIn {
	return &SignIn{customers: customers, accounts: accounts, isAdmin: isAdmin}
}

// Execute checks credentials. Unknown emails and wrong passwords fail the same way.
func (uc *SignIn) Execute(ctx context.Context, email, password string) (*models.Customer, error) {
	email = NormalizeEmail(email)

	c, err := uc.customers.GetCustomerByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrUnauthorized("invalid_credentials")
	}
	if err != nil {
		return nil, httperr.ErrPersistence("signin_failed", err)
	}

	if !auth.VerifyPassword(c.PasswordHash, password) {
		return nil, httperr.ErrUnauthorized("invalid_credentials")
	}

	if !c.IsAdmin() && uc.isAdmin != nil && uc.isAdmin(email) {
		if err := uc.customers.SetRole(ctx, c.ID, models.RoleAdmin); err != nil {
			return nil, httperr.ErrPersistence("signin_failed", err)
		}
		c.Role = models.RoleAdmin
	}

	if err := uc.accounts.Execute(ctx, c.ID); err != nil {
		return nil, err
	}

	return c, nil
}
