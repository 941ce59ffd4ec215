package atm

import "github.com/shopspring/decimal"

// EventKind names what happened at the terminal.
type EventKind string

const (
	EventSessionOpened     EventKind = "session-opened"
	EventSessionRejected   EventKind = "session-rejected"
	EventWithdrawCompleted EventKind = "withdraw-completed"
	EventWithdrawDenied    EventKind = "withdraw-denied"
)

// Event describes one validation or withdrawal attempt.
type Event struct {
	Kind   EventKind
	Amount decimal.Decimal // requested amount for denials, debited amount on success
	Cash   decimal.Decimal // reserve after the attempt
	Err    error           // set for EventWithdrawDenied
}

// Observer is notified after every validation and withdrawal attempt.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }
