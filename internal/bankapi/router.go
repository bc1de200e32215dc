// Package bankapi exposes the banking domain over HTTP JSON.
package bankapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"github.com/example/crud-services/internal/bank"
	"github.com/example/crud-services/internal/httpx"
)

// Dependencies carries everything the router needs.
type Dependencies struct {
	Logger *slog.Logger

	Bank interface {
		CreateCustomer(ctx context.Context, req bank.CreateCustomerRequest) (*bank.Customer, error)
		ListCustomers(ctx context.Context) ([]bank.Customer, error)
		GetCustomer(ctx context.Context, id uint) (*bank.Customer, error)
		CustomerOverview(ctx context.Context, customerID uint) (*bank.Overview, error)
		CreateAccount(ctx context.Context, req bank.CreateAccountRequest) (*bank.CheckingAccount, error)
		ListAccounts(ctx context.Context) ([]bank.CheckingAccount, error)
		GetAccount(ctx context.Context, id uint) (*bank.CheckingAccount, error)
		CreateCard(ctx context.Context, req bank.CreateCardRequest) (*bank.CreditCard, error)
		ListCards(ctx context.Context) ([]bank.CreditCard, error)
		GetCard(ctx context.Context, id uint) (*bank.CreditCard, error)
	}

	Ledger interface {
		Deposit(ctx context.Context, accountID uint, amount decimal.Decimal, description string) (decimal.Decimal, error)
		Withdraw(ctx context.Context, accountID uint, amount decimal.Decimal, description string) (decimal.Decimal, error)
		ListTransactions(ctx context.Context, accountID uint) ([]bank.Transaction, error)
	}
}

// NewRouter builds the bank service HTTP handler.
func NewRouter(deps Dependencies) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	// Collection endpoints are reachable with and without the trailing slash.
	r.Use(middleware.StripSlashes)
	r.Use(httpx.CorrelationID)
	r.Use(httpx.RequestLogger(deps.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", handleCreateCustomer(deps))
		r.Get("/", handleListCustomers(deps))
		r.Get("/{id}", handleGetCustomer(deps))
		r.Get("/{id}/accounts", handleCustomerOverview(deps))
	})

	r.Route("/checking-accounts", func(r chi.Router) {
		r.Post("/", handleCreateAccount(deps))
		r.Get("/", handleListAccounts(deps))
		r.Get("/{id}", handleGetAccount(deps))
		r.Post("/{id}/deposit", handleDeposit(deps))
		r.Post("/{id}/withdraw", handleWithdraw(deps))
		r.Get("/{id}/transactions", handleListTransactions(deps))
	})

	r.Route("/credit-cards", func(r chi.Router) {
		r.Post("/", handleCreateCard(deps))
		r.Get("/", handleListCards(deps))
		r.Get("/{id}", handleGetCard(deps))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, r, http.StatusNotFound, "not_found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "")
	})

	return r
}
