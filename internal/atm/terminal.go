// Package atm implements the transaction logic of a single cash terminal:
// card and PIN validation, session-gated balance inquiry, and withdrawals
// checked against both the account balance and the terminal's cash reserve.
//
// A Terminal is not safe for concurrent use. Run one Terminal per machine.
package atm

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"
)

// Terminal holds the cash reserve and the account of the current session.
type Terminal struct {
	cash     decimal.Decimal
	account  Account // nil = no session
	logger   *slog.Logger
	observer Observer
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithLogger sets the logger used for session and withdrawal events.
func WithLogger(l *slog.Logger) Option {
	return func(t *Terminal) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithObserver registers an observer for terminal events.
func WithObserver(o Observer) Option {
	return func(t *Terminal) {
		t.observer = o
	}
}

// NewTerminal creates a Terminal holding cash and no session. The amount is
// taken as-is; a negative reserve is the caller's problem.
func NewTerminal(cash decimal.Decimal, opts ...Option) *Terminal {
	t := &Terminal{
		cash:   cash,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Cash returns the money physically held by the terminal.
func (t *Terminal) Cash() decimal.Decimal {
	return t.cash
}

// HasSession reports whether the last validation established a session.
func (t *Terminal) HasSession() bool {
	return t.account != nil
}

// ValidateCard checks the PIN and block status of card and replaces the
// current session with the outcome. A nil card ends any session and returns
// ErrNoCardPresent.
//
// The PIN is checked first. Block status is only queried for a correct PIN,
// and the account only for a card that passed both checks. A card without
// an account is rejected.
func (t *Terminal) ValidateCard(card Card, pin int) (bool, error) {
	if card == nil {
		t.account = nil
		return false, ErrNoCardPresent
	}

	if card.CheckPIN(pin) && !card.IsBlocked() {
		if acct := card.Account(); acct != nil {
			t.account = acct
			t.logger.Info("session opened")
			t.notify(Event{Kind: EventSessionOpened, Cash: t.cash})
			return true, nil
		}
	}

	t.account = nil
	t.logger.Info("card rejected")
	t.notify(Event{Kind: EventSessionRejected, Cash: t.cash})
	return false, nil
}

// Balance returns the balance of the session's account.
func (t *Terminal) Balance() (decimal.Decimal, error) {
	if t.account == nil {
		return decimal.Zero, ErrNoCardPresent
	}
	return t.account.Balance(), nil
}

// Withdraw dispenses amount from the session's account and returns the
// account balance afterwards. The reserve is checked before the balance.
//
// The reserve shrinks by what the account reports as debited, and the
// returned balance is read back from the account, so a partially filled
// request is reflected as the account saw it.
func (t *Terminal) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	if t.account == nil {
		return decimal.Zero, ErrNoCardPresent
	}

	if t.cash.LessThan(amount) {
		return decimal.Zero, t.deny(amount, fmt.Errorf("requested %s, terminal holds %s: %w",
			amount.StringFixed(2), t.cash.StringFixed(2), ErrInsufficientTerminalCash))
	}

	if balance := t.account.Balance(); balance.LessThan(amount) {
		return decimal.Zero, t.deny(amount, fmt.Errorf("requested %s, balance %s: %w",
			amount.StringFixed(2), balance.StringFixed(2), ErrInsufficientAccountFunds))
	}

	debited := t.account.Withdraw(amount)
	t.cash = t.cash.Sub(debited)
	remaining := t.account.Balance()

	t.logger.Info("withdrawal completed",
		"requested", amount.StringFixed(2),
		"debited", debited.StringFixed(2),
		"cash", t.cash.StringFixed(2))
	t.notify(Event{Kind: EventWithdrawCompleted, Amount: debited, Cash: t.cash})
	return remaining, nil
}

func (t *Terminal) deny(amount decimal.Decimal, err error) error {
	t.logger.Warn("withdrawal denied", "requested", amount.StringFixed(2), "error", err)
	t.notify(Event{Kind: EventWithdrawDenied, Amount: amount, Cash: t.cash, Err: err})
	return err
}

func (t *Terminal) notify(e Event) {
	if t.observer != nil {
		t.observer.Observe(e)
	}
}
