package bank

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is an in-memory account. It never goes below zero: a withdrawal
// larger than the balance is filled only up to the balance.
type Account struct {
	ID      uuid.UUID
	Holder  string
	balance decimal.Decimal
}

// NewAccount creates an account with an opening balance.
func NewAccount(id uuid.UUID, holder string, balance decimal.Decimal) *Account {
	return &Account{ID: id, Holder: holder, balance: balance}
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// Withdraw debits up to amount and returns what was debited.
// Non-positive amounts debit nothing.
func (a *Account) Withdraw(amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	debited := decimal.Min(amount, decimal.Max(a.balance, decimal.Zero))
	a.balance = a.balance.Sub(debited)
	return debited
}
