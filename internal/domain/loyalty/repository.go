package loyalty

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/mobile-barber/internal/models"
)

var ErrNotFound = errors.New("loyalty account not found")

type Repository interface {
	// EnsureAccount creates a zero account if the customer has none. Existing accounts are untouched.
	EnsureAccount(ctx context.Context, customerID string) error
	GetAccount(ctx context.Context, customerID string) (*models.Loyalty, error)
	GetAccountForUpdate(ctx context.Context, customerID string) (*models.Loyalty, error)
	ListAccounts(ctx context.Context) ([]models.Loyalty, error)

	// SaveAccount writes acc only if the stored version still equals acc.Version.
	// On success acc.Version is advanced; false means a concurrent writer won.
	SaveAccount(ctx context.Context, acc *models.Loyalty) (bool, error)

	// InsertCredit records a counted booking. false means the booking was already counted.
	InsertCredit(ctx context.Context, credit *models.LoyaltyCredit) (bool, error)
}
