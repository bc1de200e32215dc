package bankapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/example/crud-services/internal/bank"
	"github.com/example/crud-services/internal/httpx"
)

type moveFundsRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// moveFundsResponse renders amounts with exactly two fractional digits;
// decimal's default String trims trailing zeros ("100.50" would print as
// "100.5").
type moveFundsResponse struct {
	Message    string `json:"message"`
	NewBalance string `json:"new_balance"`
}

func handleCreateCustomer(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bank.CreateCustomerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, r, http.StatusBadRequest, "invalid_json", "")
			return
		}

		customer, err := deps.Bank.CreateCustomer(r.Context(), req)
		if err != nil {
			writeBankError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusCreated, customer)
	}
}

func handleListCustomers(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customers, err := deps.Bank.ListCustomers(r.Context())
		if err != nil {
			writeBankError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusOK, customers)
	}
}

func handleGetCustomer(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		customer, err := deps.Bank.GetCustomer(r.Context(), id)
		if err != nil {
			writeBankError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusOK, customer)
	}
}

func handleCustomerOverview(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		overview, err := deps.Bank.CustomerOverview(r.Context(), id)
		if err != nil {
			writeBankError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusOK, overview)
	}
}

func handleCreateAccount(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bank.CreateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, r, http.StatusBadRequest, "invalid_json", "")
			return
		}

		account, err := deps.Bank.CreateAccount(r.Context(), req)
		if err != nil {
			writeBankError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusCreated, account)
	}
}

func handleListAccounts(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := deps.Bank.ListAccounts(r.Context())
		if err != nil {
			writeBankError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusOK, accounts)
	}
}

func handleGetAccount(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		account, err := deps.Bank.GetAccount(r.Context(), id)
		if err != nil {
			writeBankError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusOK, account)
	}
}

func handleDeposit(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req moveFundsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, r, http.StatusBadRequest, "invalid_json", "")
			return
		}

		balance, err := deps.Ledger.Deposit(r.Context(), id, req.Amount, req.Description)
		if err != nil {
			writeBankError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusOK, moveFundsResponse{
			Message:    fmt.Sprintf("Successfully deposited $%s", req.Amount.StringFixed(2)),
			NewBalance: balance.StringFixed(2),
		})
	}
}

func handleWithdraw(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req moveFundsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, r, http.StatusBadRequest, "invalid_json", "")
			return
		}

		balance, err := deps.Ledger.Withdraw(r.Context(), id, req.Amount, req.Description)
		if err != nil {
			writeBankError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusOK, moveFundsResponse{
			Message:    fmt.Sprintf("Successfully withdrew $%s", req.Amount.StringFixed(2)),
			NewBalance: balance.StringFixed(2),
		})
	}
}

func handleListTransactions(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		transactions, err := deps.Ledger.ListTransactions(r.Context(), id)
		if err != nil {
			writeBankError(w, r, err)
			return
		}
		if transactions == nil {
			transactions = []bank.Transaction{}
		}
		httpx.WriteJSON(w, r, http.StatusOK, transactions)
	}
}

func handleCreateCard(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bank.CreateCardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, r, http.StatusBadRequest, "invalid_json", "")
			return
		}

		card, err := deps.Bank.CreateCard(r.Context(), req)
		if err != nil {
			writeBankError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusCreated, card)
	}
}

func handleListCards(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards, err := deps.Bank.ListCards(r.Context())
		if err != nil {
			writeBankError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusOK, cards)
	}
}

func handleGetCard(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		card, err := deps.Bank.GetCard(r.Context(), id)
		if err != nil {
			writeBankError(w, r, err)
			return
		}
		httpx.WriteJSON(w, r, http.StatusOK, card)
	}
}

// pathID parses the {id} URL parameter, writing a validation error itself
// when the value is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "validation_error", "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// writeBankError maps domain failures onto the client-observable error
// categories: missing resource, bad input, business rule, constraint.
func writeBankError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, bank.ErrCustomerNotFound),
		errors.Is(err, bank.ErrAccountNotFound),
		errors.Is(err, bank.ErrCardNotFound):
		httpx.WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, bank.ErrInvalidAmount),
		errors.Is(err, bank.ErrInvalidRequest):
		httpx.WriteError(w, r, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, bank.ErrInsufficientFunds):
		httpx.WriteError(w, r, http.StatusBadRequest, "insufficient_funds", err.Error())
	case errors.Is(err, bank.ErrConstraintViolation):
		httpx.WriteError(w, r, http.StatusConflict, "constraint_violation", err.Error())
	default:
		httpx.WriteError(w, r, http.StatusInternalServerError, "internal_error", "")
	}
}
