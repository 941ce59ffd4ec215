package commands

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/teller/internal/atm"
)

// capped releases at most limit per withdrawal.
type capped struct {
	balance decimal.Decimal
	limit   decimal.Decimal
}

func (a *capped) Balance() decimal.Decimal { return a.balance }

func (a *capped) Withdraw(amount decimal.Decimal) decimal.Decimal {
	debited := decimal.Min(amount, a.limit)
	a.balance = a.balance.Sub(debited)
	return debited
}

type plainCard struct{ account atm.Account }

func (plainCard) CheckPIN(int) bool      { return true }
func (plainCard) IsBlocked() bool        { return false }
func (c plainCard) Account() atm.Account { return c.account }

func TestDispense_ReportsDebitedAmount(t *testing.T) {
	acct := &capped{balance: decimal.NewFromInt(555), limit: decimal.NewFromInt(300)}
	term := atm.NewTerminal(decimal.NewFromInt(1000))
	ok, err := term.ValidateCard(plainCard{account: acct}, 0)
	require.NoError(t, err)
	require.True(t, ok)

	var out bytes.Buffer
	require.NoError(t, dispense(&out, term, decimal.NewFromInt(500)))
	assert.Equal(t, "dispensed: 300.00\nbalance: 255.00\ncash: 700.00\n", out.String())
}

func TestDispense_KeepsErrorKind(t *testing.T) {
	term := atm.NewTerminal(decimal.NewFromInt(1000))
	var out bytes.Buffer
	err := dispense(&out, term, decimal.NewFromInt(5))
	require.ErrorIs(t, err, atm.ErrNoCardPresent)
	assert.Empty(t, out.String())
}
