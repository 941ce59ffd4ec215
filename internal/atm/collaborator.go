package atm

import "github.com/shopspring/decimal"

// Card is an inserted card. Implementations must not change state when queried.
type Card interface {
	CheckPIN(pin int) bool
	IsBlocked() bool
	Account() Account
}

// Account is the account a card is linked to.
type Account interface {
	Balance() decimal.Decimal
	// Withdraw debits the account and returns the amount that actually left it.
	Withdraw(amount decimal.Decimal) decimal.Decimal
}
