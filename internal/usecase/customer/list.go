package customer

import (
	"context"
	"log/slog"

	domain "github.com/BruksfildServices01/mobile-barber/internal/domain/customer"
	"github.com/BruksfildServices01/mobile-barber/internal/domain/loyalty"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
	"github.com/BruksfildServices01/mobile-barber/internal/session"
)

type Summary struct {
	Customer models.Customer  `json:"customer"`
	Loyalty  loyalty.Progress `json:"loyalty"`
}

type ListCustomers struct {
	customers domain.Repository
	accounts  loyalty.Repository
	log       *slog.Logger
}

func NewListCustomers(customers domain.Repository, accounts loyalty.Repository, log *slog.Logger) *ListCustomers {
	return &ListCustomers{customers: customers, accounts: accounts, log: log}
}

func (uc *ListCustomers) Execute(ctx context.Context, sess session.Session) ([]Summary, error) {
	if err := sess.RequireAdmin(); err != nil {
		return nil, err
	}

	list, err := uc.customers.ListCustomers(ctx)
	if err != nil {
		uc.log.Warn("list customers failed", "error", err)
		return []Summary{}, nil
	}

	accounts, err := uc.accounts.ListAccounts(ctx)
	if err != nil {
		uc.log.Warn("list loyalty accounts failed", "error", err)
	}
	byCustomer := make(map[string]*models.Loyalty, len(accounts))
	for i := range accounts {
		byCustomer[accounts[i].CustomerID] = &accounts[i]
	}

	out := make([]Summary, 0, len(list))
	for _, c := range list {
		out = append(out, Summary{Customer: c, Loyalty: loyalty.ProgressOf(byCustomer[c.ID])})
	}
	return out, nil
}
