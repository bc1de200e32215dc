package bank

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger applies monetary movements to a single checking account and records
// each one in the account's append-only transaction log. The balance update
// and the log append commit as one storage transaction; on any failure
// neither is visible.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Deposit adds amount to the account balance and appends a deposit record.
// Returns the new balance.
func (l *Ledger) Deposit(ctx context.Context, accountID uint, amount decimal.Decimal, description string) (decimal.Decimal, error) {
	if description == "" {
		description = "Deposit"
	}
	return l.apply(ctx, accountID, amount, description, KindDeposit)
}

// Withdraw subtracts amount from the account balance and appends a withdrawal
// record. The balance may reach exactly zero but never go below it. Returns
// the new balance.
func (l *Ledger) Withdraw(ctx context.Context, accountID uint, amount decimal.Decimal, description string) (decimal.Decimal, error) {
	if description == "" {
		description = "Withdrawal"
	}
	return l.apply(ctx, accountID, amount, description, KindWithdrawal)
}

func (l *Ledger) apply(ctx context.Context, accountID uint, amount decimal.Decimal, description, kind string) (decimal.Decimal, error) {
	var newBalance decimal.Decimal
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := lockAccount(tx, accountID)
		if err != nil {
			return err
		}

		// Account existence is checked first so a bad amount against a
		// missing account still reports the missing account.
		if amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
		}

		switch kind {
		case KindDeposit:
			newBalance = account.Balance.Add(amount)
		case KindWithdrawal:
			if account.Balance.LessThan(amount) {
				return fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, account.Balance, amount)
			}
			newBalance = account.Balance.Sub(amount)
		default:
			return fmt.Errorf("unknown transaction kind %q", kind)
		}

		if err := tx.Model(&CheckingAccount{}).Where("id = ?", account.ID).
			Update("balance", newBalance).Error; err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}

		record := Transaction{
			AccountID:   account.ID,
			Kind:        kind,
			Amount:      amount,
			Description: description,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to append transaction: %w", err)
		}

		return nil
	})
	if err != nil {
		return decimal.Decimal{}, err
	}

	return newBalance, nil
}

// ListTransactions returns the account's ledger in insertion order, earliest
// first, unfiltered and unpaginated.
func (l *Ledger) ListTransactions(ctx context.Context, accountID uint) ([]Transaction, error) {
	var account CheckingAccount
	if err := l.db.WithContext(ctx).First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	var records []Transaction
	if err := l.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return records, nil
}

// lockAccount loads the account row under a pessimistic write lock so that
// concurrent operations on the same account serialize and no two withdrawals
// can pass the funds check against a stale balance.
func lockAccount(tx *gorm.DB, accountID uint) (*CheckingAccount, error) {
	// SQLite has no FOR UPDATE; its single-writer transaction lock already
	// serializes the whole unit.
	if tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var account CheckingAccount
	if err := tx.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	return &account, nil
}
