package atm

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockCard struct {
	mock.Mock
}

func (m *mockCard) CheckPIN(pin int) bool {
	return m.Called(pin).Bool(0)
}

func (m *mockCard) IsBlocked() bool {
	return m.Called().Bool(0)
}

func (m *mockCard) Account() Account {
	acct, _ := m.Called().Get(0).(Account)
	return acct
}

type mockAccount struct {
	mock.Mock
}

func (m *mockAccount) Balance() decimal.Decimal {
	return m.Called().Get(0).(decimal.Decimal)
}

func (m *mockAccount) Withdraw(amount decimal.Decimal) decimal.Decimal {
	return m.Called(amount).Get(0).(decimal.Decimal)
}

// callLog records the order collaborators are queried in.
type callLog struct {
	calls []string
}

func (l *callLog) record(name string) func(mock.Arguments) {
	return func(mock.Arguments) { l.calls = append(l.calls, name) }
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decEq(want decimal.Decimal) any {
	return mock.MatchedBy(func(got decimal.Decimal) bool { return got.Equal(want) })
}

const goodPIN = 1234

// newCard returns a card that accepts goodPIN only.
func newCard(blocked bool, acct Account, log *callLog) *mockCard {
	if log == nil {
		log = &callLog{}
	}
	c := &mockCard{}
	c.On("CheckPIN", goodPIN).Return(true).Run(log.record("CheckPIN")).Maybe()
	c.On("CheckPIN", mock.Anything).Return(false).Run(log.record("CheckPIN")).Maybe()
	c.On("IsBlocked").Return(blocked).Run(log.record("IsBlocked")).Maybe()
	c.On("Account").Return(acct).Run(log.record("Account")).Maybe()
	return c
}
