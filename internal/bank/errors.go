package bank

import "errors"

var (
	// ErrCustomerNotFound is returned when a customer ID does not resolve.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrAccountNotFound is returned when a checking account ID does not resolve.
	ErrAccountNotFound = errors.New("account not found")

	// ErrCardNotFound is returned when a credit card ID does not resolve.
	ErrCardNotFound = errors.New("credit card not found")

	// ErrInvalidAmount is returned for non-positive monetary amounts.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidRequest is returned when a required field is missing or malformed.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrConstraintViolation is returned when the store rejects a uniqueness
	// or referential-integrity constraint, e.g. a duplicate account number.
	ErrConstraintViolation = errors.New("constraint violation")
)
