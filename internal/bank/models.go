// Package bank implements the banking domain: customers, checking accounts,
// credit cards and the account ledger. All monetary values are exact
// fixed-point decimals with two fractional digits.
package bank

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction kinds recorded in the ledger.
const (
	KindDeposit    = "deposit"
	KindWithdrawal = "withdrawal"
)

// Customer owns checking accounts and credit cards. Email is unique.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:255;not null" json:"first_name"`
	LastName  string    `gorm:"size:255;not null" json:"last_name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`

	CheckingAccounts []CheckingAccount `gorm:"foreignKey:CustomerID" json:"checking_accounts,omitempty"`
	CreditCards      []CreditCard      `gorm:"foreignKey:CustomerID" json:"credit_cards,omitempty"`
}

// CheckingAccount is mutated only through ledger operations and is never
// physically deleted. Balance stays >= 0 after every operation.
type CheckingAccount struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	AccountNumber string          `gorm:"size:50;uniqueIndex;not null" json:"account_number"`
	Balance       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"balance"`
	CustomerID    uint            `gorm:"index;not null" json:"customer_id"`
	CreatedAt     time.Time       `json:"created_at"`
	IsActive      bool            `json:"is_active"`
}

// CreditCard carries a limit and a running balance. Card number is unique.
type CreditCard struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CardNumber     string          `gorm:"size:50;uniqueIndex;not null" json:"card_number"`
	CreditLimit    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"credit_limit"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"current_balance"`
	CustomerID     uint            `gorm:"index;not null" json:"customer_id"`
	CreatedAt      time.Time       `json:"created_at"`
	IsActive       bool            `json:"is_active"`
}

// Transaction is one immutable entry in an account's ledger. Rows are only
// ever appended; insertion order (the primary key) is the ledger order.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	AccountID   uint            `gorm:"index;not null" json:"account_id"`
	Kind        string          `gorm:"column:transaction_type;size:20;not null" json:"transaction_type"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description string          `gorm:"size:255" json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Models lists every bank table for migration.
func Models() []any {
	return []any{&Customer{}, &CheckingAccount{}, &CreditCard{}, &Transaction{}}
}
