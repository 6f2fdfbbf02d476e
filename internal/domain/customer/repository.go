package customer

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/mobile-barber/internal/models"
)

var (
	ErrNotFound   = errors.New("customer not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Repository interface {
	CreateCustomer(ctx context.Context, c *models.Customer) error
	GetCustomerByID(ctx context.Context, id string) (*models.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	UpdateProfile(ctx context.Context, id, name, telegram string) (*models.Customer, error)
	SetRole(ctx context.Context, id, role string) error
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	CountCustomers(ctx context.Context) (int64, error)
}
