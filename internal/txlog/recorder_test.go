package txlog

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/teller/internal/atm"
)

func TestRecorder_Sessions(t *testing.T) {
	r := NewRecorder("ATM-0001")
	r.now = func() time.Time { return testTime }

	r.Observe(atm.Event{Kind: atm.EventSessionOpened, Cash: decimal.NewFromInt(1000)})
	r.Observe(atm.Event{Kind: atm.EventWithdrawCompleted, Amount: decimal.NewFromInt(500), Cash: decimal.NewFromInt(500)})
	r.Observe(atm.Event{Kind: atm.EventSessionOpened, Cash: decimal.NewFromInt(500)})
	r.Observe(atm.Event{Kind: atm.EventSessionRejected, Cash: decimal.NewFromInt(500)})

	entries := r.Entries()
	require.Len(t, entries, 4)
	assert.NotEqual(t, uuid.Nil, entries[0].Session)
	assert.Equal(t, entries[0].Session, entries[1].Session)
	assert.NotEqual(t, entries[1].Session, entries[2].Session, "new session, new id")
	assert.Equal(t, uuid.Nil, entries[3].Session)

	assert.Equal(t, "withdraw-completed", entries[1].Action)
	assert.True(t, entries[1].Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "cash 500.00", entries[1].Details)
	assert.Equal(t, "ATM-0001", entries[1].Terminal)
	assert.True(t, testTime.Equal(entries[1].Timestamp))
}

func TestRecorder_DeniedCarriesError(t *testing.T) {
	r := NewRecorder("ATM-0001")
	err := fmt.Errorf("requested 5000.00, terminal holds 1000.00: %w", atm.ErrInsufficientTerminalCash)
	r.Observe(atm.Event{Kind: atm.EventWithdrawDenied, Amount: decimal.NewFromInt(5000), Err: err})

	require.Len(t, r.Entries(), 1)
	assert.Equal(t, err.Error(), r.Entries()[0].Details)
}

func TestRecorder_WithTerminal(t *testing.T) {
	r := NewRecorder("ATM-0001")
	acct := &fixedAccount{balance: decimal.NewFromInt(555)}
	term := atm.NewTerminal(decimal.NewFromInt(1000), atm.WithObserver(r))

	ok, err := term.ValidateCard(fixedCard{pin: 1234, account: acct}, 1234)
	require.NoError(t, err)
	require.True(t, ok)
	_, err = term.Withdraw(decimal.NewFromInt(500))
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, Append(dir, r.Entries()))
	got, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "session-opened", got[0].Action)
	assert.Equal(t, "withdraw-completed", got[1].Action)
	assert.Equal(t, got[0].Session, got[1].Session)
}

type fixedCard struct {
	pin     int
	account atm.Account
}

func (c fixedCard) CheckPIN(pin int) bool { return c.pin == pin }
func (c fixedCard) IsBlocked() bool       { return false }
func (c fixedCard) Account() atm.Account  { return c.account }

type fixedAccount struct {
	balance decimal.Decimal
}

func (a *fixedAccount) Balance() decimal.Decimal { return a.balance }

func (a *fixedAccount) Withdraw(amount decimal.Decimal) decimal.Decimal {
	a.balance = a.balance.Sub(amount)
	return amount
}
