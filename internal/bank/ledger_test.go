package bank

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/crud-services/pkg/db"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(db.Config{Driver: db.DriverSQLite, Name: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(Models()...))
	return gdb
}

// newTestAccount opens a fresh account with balance 0.00.
func newTestAccount(t *testing.T, gdb *gorm.DB, accountNumber string) *CheckingAccount {
	t.Helper()

	svc := NewService(gdb)
	customer, err := svc.CreateCustomer(context.Background(), CreateCustomerRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     accountNumber + "@example.com",
	})
	require.NoError(t, err)

	account, err := svc.CreateAccount(context.Background(), CreateAccountRequest{
		AccountNumber: accountNumber,
		CustomerID:    customer.ID,
	})
	require.NoError(t, err)
	require.True(t, account.Balance.IsZero())
	return account
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDepositIncreasesBalanceAndAppendsRecord(t *testing.T) {
	gdb := newTestDB(t)
	ledger := NewLedger(gdb)
	account := newTestAccount(t, gdb, "ACC-1001")

	balance, err := ledger.Deposit(context.Background(), account.ID, amount("100.50"), "Initial")
	require.NoError(t, err)
	assert.Equal(t, "100.50", balance.StringFixed(2))

	records, err := ledger.ListTransactions(context.Background(), account.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, KindDeposit, records[0].Kind)
	assert.Equal(t, "100.50", records[0].Amount.StringFixed(2))
	assert.Equal(t, "Initial", records[0].Description)
	assert.Equal(t, account.ID, records[0].AccountID)
}

func TestWithdrawDecreasesBalance(t *testing.T) {
	gdb := newTestDB(t)
	ledger := NewLedger(gdb)
	account := newTestAccount(t, gdb, "ACC-1002")
	ctx := context.Background()

	_, err := ledger.Deposit(ctx, account.ID, amount("100.50"), "Initial")
	require.NoError(t, err)

	balance, err := ledger.Withdraw(ctx, account.ID, amount("75.25"), "ATM")
	require.NoError(t, err)
	assert.Equal(t, "25.25", balance.StringFixed(2))

	records, err := ledger.ListTransactions(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, KindDeposit, records[0].Kind)
	assert.Equal(t, "Initial", records[0].Description)
	assert.Equal(t, KindWithdrawal, records[1].Kind)
	assert.Equal(t, "75.25", records[1].Amount.StringFixed(2))
	assert.Equal(t, "ATM", records[1].Description)
}

func TestWithdrawToExactlyZeroAllowed(t *testing.T) {
	gdb := newTestDB(t)
	ledger := NewLedger(gdb)
	account := newTestAccount(t, gdb, "ACC-1003")
	ctx := context.Background()

	_, err := ledger.Deposit(ctx, account.ID, amount("50.00"), "")
	require.NoError(t, err)

	balance, err := ledger.Withdraw(ctx, account.ID, amount("50.00"), "")
	require.NoError(t, err)
	assert.True(t, balance.IsZero(), "balance = %s", balance)
}

func TestWithdrawInsufficientFundsLeavesStateUnchanged(t *testing.T) {
	gdb := newTestDB(t)
	ledger := NewLedger(gdb)
	account := newTestAccount(t, gdb, "ACC-1004")
	ctx := context.Background()

	_, err := ledger.Withdraw(ctx, account.ID, amount("50.00"), "")
	require.ErrorIs(t, err, ErrInsufficientFunds)

	reloaded, err := NewService(gdb).GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", reloaded.Balance.StringFixed(2))

	records, err := ledger.ListTransactions(ctx, account.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNonPositiveAmountsRejected(t *testing.T) {
	gdb := newTestDB(t)
	ledger := NewLedger(gdb)
	account := newTestAccount(t, gdb, "ACC-1005")
	ctx := context.Background()

	for _, bad := range []string{"0", "0.00", "-1", "-0.01"} {
		_, err := ledger.Deposit(ctx, account.ID, amount(bad), "")
		assert.ErrorIs(t, err, ErrInvalidAmount, "deposit %s", bad)

		_, err = ledger.Withdraw(ctx, account.ID, amount(bad), "")
		assert.ErrorIs(t, err, ErrInvalidAmount, "withdraw %s", bad)
	}

	records, err := ledger.ListTransactions(ctx, account.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOperationsOnUnknownAccount(t *testing.T) {
	gdb := newTestDB(t)
	ledger := NewLedger(gdb)
	ctx := context.Background()

	_, err := ledger.Deposit(ctx, 9999, amount("10.00"), "")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = ledger.Withdraw(ctx, 9999, amount("10.00"), "")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = ledger.ListTransactions(ctx, 9999)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	// The missing account wins over the bad amount.
	_, err = ledger.Deposit(ctx, 9999, amount("-5.00"), "")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = ledger.Withdraw(ctx, 9999, amount("0"), "")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	var count int64
	require.NoError(t, gdb.Model(&Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDefaultDescriptions(t *testing.T) {
	gdb := newTestDB(t)
	ledger := NewLedger(gdb)
	account := newTestAccount(t, gdb, "ACC-1006")
	ctx := context.Background()

	_, err := ledger.Deposit(ctx, account.ID, amount("20.00"), "")
	require.NoError(t, err)
	_, err = ledger.Withdraw(ctx, account.ID, amount("5.00"), "")
	require.NoError(t, err)

	records, err := ledger.ListTransactions(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Deposit", records[0].Description)
	assert.Equal(t, "Withdrawal", records[1].Description)
}

func TestSequenceBalanceEqualsLedgerSum(t *testing.T) {
	gdb := newTestDB(t)
	ledger := NewLedger(gdb)
	account := newTestAccount(t, gdb, "ACC-1007")
	ctx := context.Background()

	ops := []struct {
		kind   string
		amount string
	}{
		{KindDeposit, "10.25"},
		{KindDeposit, "0.75"},
		{KindWithdrawal, "3.33"},
		{KindDeposit, "100.00"},
		{KindWithdrawal, "7.67"},
	}

	expected := decimal.Zero
	for _, op := range ops {
		a := amount(op.amount)
		var err error
		if op.kind == KindDeposit {
			_, err = ledger.Deposit(ctx, account.ID, a, "")
			expected = expected.Add(a)
		} else {
			_, err = ledger.Withdraw(ctx, account.ID, a, "")
			expected = expected.Sub(a)
		}
		require.NoError(t, err)
	}

	reloaded, err := NewService(gdb).GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Balance.Equal(expected), "balance %s, want %s", reloaded.Balance, expected)

	records, err := ledger.ListTransactions(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, records, len(ops))
	for i, op := range ops {
		assert.Equal(t, op.kind, records[i].Kind)
		assert.True(t, records[i].Amount.Equal(amount(op.amount)))
	}
}

func TestRepeatedCyclesAccumulateNoRoundingError(t *testing.T) {
	gdb := newTestDB(t)
	ledger := NewLedger(gdb)
	account := newTestAccount(t, gdb, "ACC-1008")
	ctx := context.Background()

	// 0.10 is not representable in binary floating point; a float-backed
	// balance would drift over enough cycles.
	step := amount("0.10")
	for i := 0; i < 100; i++ {
		_, err := ledger.Deposit(ctx, account.ID, step, "")
		require.NoError(t, err)
		_, err = ledger.Withdraw(ctx, account.ID, step, "")
		require.NoError(t, err)
	}

	reloaded, err := NewService(gdb).GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", reloaded.Balance.StringFixed(2))
}

// Concurrent operations on one account must serialize: every committed
// withdrawal passed the funds check against a balance that included all
// earlier commits, the balance never goes negative, and the final balance
// equals the sum of the recorded transactions.
func TestConcurrentOperationsNeverLoseUpdates(t *testing.T) {
	gdb := newTestDB(t)
	ledger := NewLedger(gdb)
	account := newTestAccount(t, gdb, "ACC-1011")
	ctx := context.Background()

	_, err := ledger.Deposit(ctx, account.ID, amount("50.00"), "seed")
	require.NoError(t, err)

	step := amount("10.00")
	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, err := ledger.Deposit(ctx, account.ID, step, "")
				errs <- err
			} else {
				_, err := ledger.Withdraw(ctx, account.ID, step, "")
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	// Insufficient funds is the only acceptable failure under contention.
	for err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrInsufficientFunds)
		}
	}

	records, err := ledger.ListTransactions(ctx, account.ID)
	require.NoError(t, err)

	expected := decimal.Zero
	for _, rec := range records {
		switch rec.Kind {
		case KindDeposit:
			expected = expected.Add(rec.Amount)
		case KindWithdrawal:
			expected = expected.Sub(rec.Amount)
		}
	}

	reloaded, err := NewService(gdb).GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Balance.Equal(expected),
		"balance %s, ledger sum %s", reloaded.Balance, expected)
	assert.False(t, reloaded.Balance.IsNegative(), "balance %s", reloaded.Balance)
}

func TestLedgerIsolatedPerAccount(t *testing.T) {
	gdb := newTestDB(t)
	ledger := NewLedger(gdb)
	first := newTestAccount(t, gdb, "ACC-1009")
	second := newTestAccount(t, gdb, "ACC-1010")
	ctx := context.Background()

	_, err := ledger.Deposit(ctx, first.ID, amount("40.00"), "")
	require.NoError(t, err)
	_, err = ledger.Deposit(ctx, second.ID, amount("60.00"), "")
	require.NoError(t, err)

	firstRecords, err := ledger.ListTransactions(ctx, first.ID)
	require.NoError(t, err)
	secondRecords, err := ledger.ListTransactions(ctx, second.ID)
	require.NoError(t, err)

	require.Len(t, firstRecords, 1)
	require.Len(t, secondRecords, 1)
	assert.Equal(t, "40.00", firstRecords[0].Amount.StringFixed(2))
	assert.Equal(t, "60.00", secondRecords[0].Amount.StringFixed(2))
}
