package auth

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/mobile-barber/internal/domain/customer"
)

// Authorizer answers whether a customer holds the admin role.
type Authorizer interface {
	IsAdmin(ctx context.Context, customerID string) (bool, error)
}

// RoleAuthorizer reads the stored customer role on every call, so role
// changes apply to already issued tokens.
type RoleAuthorizer struct {
	customers customer.Repository
}

func NewRoleAuthorizer(customers customer.Repository) *RoleAuthorizer {
	return &RoleAuthorizer{customers: customers}
}

func (a *RoleAuthorizer) IsAdmin(ctx context.Context, customerID string) (bool, error) {
	c, err := a.customers.GetCustomerByID(ctx, customerID)
	if errors.Is(err, customer.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return c.IsAdmin(), nil
}
