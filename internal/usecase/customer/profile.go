package customer

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domain "github.com/BruksfildServices01/mobile-barber/internal/domain/customer"
	"github.com/BruksfildServices01/mobile-barber/internal/domain/loyalty"
	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
	"github.com/BruksfildServices01/mobile-barber/internal/session"
	ucLoyalty "github.com/BruksfildServices01/mobile-barber/internal/usecase/loyalty"
)

type Profile struct {
	Customer *models.Customer `json:"customer"`
	Loyalty  loyalty.Progress `json:"loyalty"`
}

type GetProfile struct {
	customers domain.Repository
	accounts  loyalty.Repository
	log       *slog.Logger
}

func NewGetProfile(customers domain.Repository, accounts loyalty.Repository, log *slog.Logger) *GetProfile {
	return &GetProfile{customers: customers, accounts: accounts, log: log}
}

func (uc *GetProfile) Execute(ctx context.Context, sess session.Session, customerID string) (*Profile, error) {
	if err := sess.RequireAccess(customerID); err != nil {
		return nil, err
	}

	c, err := uc.customers.GetCustomerByID(ctx, customerID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("customer_not_found")
	}
	if err != nil {
		return nil, httperr.ErrPersistence("customer_read_failed", err)
	}

	acc, err := uc.accounts.GetAccount(ctx, customerID)
	if err != nil && !errors.Is(err, loyalty.ErrNotFound) {
		uc.log.Warn("loyalty read failed", "customer_id", customerID, "error", err)
	}

	return &Profile{Customer: c, Loyalty: loyalty.ProgressOf(acc)}, nil
}

type UpdateProfileInput struct {
	Name     string
	Telegram string
}

type UpdateProfile struct {
	customers domain.Repository
	accounts  *ucLoyalty.EnsureAccount
}

func NewUpdateProfile(customers domain.Repository, accounts *ucLoyalty.EnsureAccount) *UpdateProfile {
	return &UpdateProfile{customers: customers, accounts: accounts}
}

// Execute updates the caller's own profile and makes sure the loyalty account exists.
func (uc *UpdateProfile) Execute(ctx context.Context, sess session.Session, in UpdateProfileInput) (*models.Customer, error) {
	c, err := uc.customers.UpdateProfile(ctx, sess.CustomerID, strings.TrimSpace(in.Name), strings.TrimSpace(in.Telegram))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("customer_not_found")
	}
	if err != nil {
		return nil, httperr.ErrPersistence("customer_update_failed", err)
	}

	if err := uc.accounts.Execute(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}
