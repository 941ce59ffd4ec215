package txlog

import (
	"time"

	"github.com/google/uuid"

	"github.com/cleared-dev/teller/internal/atm"
)

// Recorder collects terminal events as log entries. Every opened session
// gets a fresh ID; a rejected card ends the current one.
type Recorder struct {
	terminal string
	session  uuid.UUID
	entries  []Entry
	now      func() time.Time
}

// NewRecorder creates a Recorder for the named terminal.
func NewRecorder(terminal string) *Recorder {
	return &Recorder{terminal: terminal, now: time.Now}
}

// Observe implements atm.Observer.
func (r *Recorder) Observe(e atm.Event) {
	switch e.Kind {
	case atm.EventSessionOpened:
		r.session = uuid.New()
	case atm.EventSessionRejected:
		r.session = uuid.Nil
	}

	entry := Entry{
		Timestamp: r.now().UTC(),
		Terminal:  r.terminal,
		Session:   r.session,
		Action:    string(e.Kind),
		Amount:    e.Amount,
		Details:   "cash " + e.Cash.StringFixed(2),
	}
	if e.Err != nil {
		entry.Details = e.Err.Error()
	}
	r.entries = append(r.entries, entry)
}

// Entries returns the collected entries.
func (r *Recorder) Entries() []Entry {
	return r.entries
}

var _ atm.Observer = (*Recorder)(nil)
