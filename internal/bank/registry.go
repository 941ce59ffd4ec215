package bank

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cleared-dev/teller/internal/atm"
	"github.com/cleared-dev/teller/internal/config"
)

// Registry provides in-memory lookup over cards and accounts.
type Registry struct {
	accounts map[uuid.UUID]*Account
	cards    map[string]*Card
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		accounts: make(map[uuid.UUID]*Account),
		cards:    make(map[string]*Card),
	}
}

// FromConfig builds a Registry from the accounts and cards in cfg.
func FromConfig(cfg *config.Config) (*Registry, error) {
	r := NewRegistry()
	for _, a := range cfg.Accounts {
		if err := r.AddAccount(NewAccount(a.ID, a.Holder, a.Balance)); err != nil {
			return nil, err
		}
	}
	for _, c := range cfg.Cards {
		acct, ok := r.Account(c.AccountID)
		if !ok {
			return nil, fmt.Errorf("card %s: unknown account %s", c.Number, c.AccountID)
		}
		card := NewCard(c.Number, c.PIN, acct)
		if c.Blocked {
			card.Block()
		}
		if err := r.AddCard(card); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// AddAccount registers an account.
func (r *Registry) AddAccount(a *Account) error {
	if _, ok := r.accounts[a.ID]; ok {
		return fmt.Errorf("duplicate account %s", a.ID)
	}
	r.accounts[a.ID] = a
	return nil
}

// AddCard registers a card.
func (r *Registry) AddCard(c *Card) error {
	if _, ok := r.cards[c.Number]; ok {
		return fmt.Errorf("duplicate card %s", c.Number)
	}
	r.cards[c.Number] = c
	return nil
}

// Account returns an account by ID.
func (r *Registry) Account(id uuid.UUID) (*Account, bool) {
	a, ok := r.accounts[id]
	return a, ok
}

// Card returns a card by number. A missing card is a nil atm.Card, so it
// can be handed straight to a terminal.
func (r *Registry) Card(number string) (atm.Card, bool) {
	c, ok := r.cards[number]
	if !ok {
		return nil, false
	}
	return c, true
}
