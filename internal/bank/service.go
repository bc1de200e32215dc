package bank

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service provides the CRUD operations around the ledger: customers,
// checking accounts and credit cards.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateCustomerRequest enumerates the fields a new customer carries.
type CreateCustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (s *Service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		return nil, fmt.Errorf("%w: first_name, last_name and email are required", ErrInvalidRequest)
	}

	customer := Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if err := s.db.WithContext(ctx).Create(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email %s already registered", ErrConstraintViolation, req.Email)
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return &customer, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	if err := s.db.WithContext(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *Service) GetCustomer(ctx context.Context, id uint) (*Customer, error) {
	var customer Customer
	if err := s.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

// CreateAccountRequest opens a checking account for an existing customer.
// The account number is chosen by the caller and must be unique.
type CreateAccountRequest struct {
	AccountNumber string `json:"account_number"`
	CustomerID    uint   `json:"customer_id"`
}

func (s *Service) CreateAccount(ctx context.Context, req CreateAccountRequest) (*CheckingAccount, error) {
	if req.AccountNumber == "" {
		return nil, fmt.Errorf("%w: account_number is required", ErrInvalidRequest)
	}

	if _, err := s.GetCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	account := CheckingAccount{
		AccountNumber: req.AccountNumber,
		Balance:       decimal.Zero,
		CustomerID:    req.CustomerID,
		IsActive:      true,
	}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: account number %s already exists", ErrConstraintViolation, req.AccountNumber)
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &account, nil
}

func (s *Service) ListAccounts(ctx context.Context) ([]CheckingAccount, error) {
	var accounts []CheckingAccount
	if err := s.db.WithContext(ctx).Order("id").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *Service) GetAccount(ctx context.Context, id uint) (*CheckingAccount, error) {
	var account CheckingAccount
	if err := s.db.WithContext(ctx).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// CreateCardRequest issues a credit card to an existing customer.
type CreateCardRequest struct {
	CardNumber  string          `json:"card_number"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	CustomerID  uint            `json:"customer_id"`
}

func (s *Service) CreateCard(ctx context.Context, req CreateCardRequest) (*CreditCard, error) {
	if req.CardNumber == "" {
		return nil, fmt.Errorf("%w: card_number is required", ErrInvalidRequest)
	}
	if req.CreditLimit.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: credit_limit must be positive", ErrInvalidRequest)
	}

	if _, err := s.GetCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	card := CreditCard{
		CardNumber:     req.CardNumber,
		CreditLimit:    req.CreditLimit,
		CurrentBalance: decimal.Zero,
		CustomerID:     req.CustomerID,
		IsActive:       true,
	}
	if err := s.db.WithContext(ctx).Create(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: card number %s already exists", ErrConstraintViolation, req.CardNumber)
		}
		return nil, fmt.Errorf("failed to create credit card: %w", err)
	}

	return &card, nil
}

func (s *Service) ListCards(ctx context.Context) ([]CreditCard, error) {
	var cards []CreditCard
	if err := s.db.WithContext(ctx).Order("id").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to list credit cards: %w", err)
	}
	return cards, nil
}

func (s *Service) GetCard(ctx context.Context, id uint) (*CreditCard, error) {
	var card CreditCard
	if err := s.db.WithContext(ctx).First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get credit card: %w", err)
	}
	return &card, nil
}

// Overview bundles a customer with everything they hold.
type Overview struct {
	Customer         *Customer         `json:"customer"`
	CheckingAccounts []CheckingAccount `json:"checking_accounts"`
	CreditCards      []CreditCard      `json:"credit_cards"`
}

// CustomerOverview returns the customer along with all of their checking
// accounts and credit cards.
func (s *Service) CustomerOverview(ctx context.Context, customerID uint) (*Overview, error) {
	customer, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var accounts []CheckingAccount
	if err := s.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list customer accounts: %w", err)
	}

	var cards []CreditCard
	if err := s.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to list customer cards: %w", err)
	}

	return &Overview{
		Customer:         customer,
		CheckingAccounts: accounts,
		CreditCards:      cards,
	}, nil
}
