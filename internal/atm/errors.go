package atm

import "errors"

var (
	// ErrNoCardPresent is returned when an operation needs an active session
	// and none exists: no card was presented, or the last validation failed.
	ErrNoCardPresent = errors.New("no card present")

	// ErrInsufficientTerminalCash is returned when the cash reserve cannot
	// cover a withdrawal.
	ErrInsufficientTerminalCash = errors.New("insufficient cash in terminal")

	// ErrInsufficientAccountFunds is returned when the account balance cannot
	// cover a withdrawal the reserve could have covered.
	ErrInsufficientAccountFunds = errors.New("insufficient funds in account")
)
