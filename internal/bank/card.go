package bank

import "github.com/cleared-dev/teller/internal/atm"

// Card is a plastic card linked to one Account.
type Card struct {
	Number  string
	pin     int
	blocked bool
	account *Account
}

// NewCard creates an unblocked card.
func NewCard(number string, pin int, account *Account) *Card {
	return &Card{Number: number, pin: pin, account: account}
}

// CheckPIN reports whether pin matches the card's PIN.
func (c *Card) CheckPIN(pin int) bool {
	return c.pin == pin
}

// IsBlocked reports whether the card has been blocked.
func (c *Card) IsBlocked() bool {
	return c.blocked
}

// Block marks the card as blocked.
func (c *Card) Block() {
	c.blocked = true
}

// Account returns the linked account, or nil if the card has none.
func (c *Card) Account() atm.Account {
	if c.account == nil {
		return nil
	}
	return c.account
}

var (
	_ atm.Card    = (*Card)(nil)
	_ atm.Account = (*Account)(nil)
)
