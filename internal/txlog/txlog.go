package txlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is one row in the terminal log.
type Entry struct {
	Timestamp time.Time
	Terminal  string
	Session   uuid.UUID // uuid.Nil outside a session
	Action    string
	Amount    decimal.Decimal
	Details   string
}

// Header is the CSV header for terminal-log.csv.
const Header = "timestamp,terminal,session,action,amount,details"

const (
	numFields    = 6
	logDir       = "logs"
	logFile      = "logs/terminal-log.csv"
	colTimestamp = 0
	colTerminal  = 1
	colSession   = 2
	colAction    = 3
	colAmount    = 4
	colDetails   = 5

	actionWithdrawCompleted = "withdraw-completed"
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colTerminal] = e.Terminal
	if e.Session != uuid.Nil {
		row[colSession] = e.Session.String()
	}
	row[colAction] = e.Action
	if !e.Amount.IsZero() {
		row[colAmount] = e.Amount.StringFixed(2)
	}
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	var session uuid.UUID
	if record[colSession] != "" {
		session, err = uuid.Parse(record[colSession])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing session %q: %w", record[colSession], err)
		}
	}

	amount := decimal.Zero
	if record[colAmount] != "" {
		amount, err = decimal.NewFromString(record[colAmount])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
		}
	}

	return Entry{
		Timestamp: ts,
		Terminal:  record[colTerminal],
		Session:   session,
		Action:    record[colAction],
		Amount:    amount,
		Details:   record[colDetails],
	}, nil
}

// Append writes entries to <dir>/logs/terminal-log.csv, creating the file and header if needed.
func Append(dir string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Join(dir, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(dir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening terminal log: %w", err)
	}

	if err := writeEntries(f, entries, needsHeader); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing terminal log: %w", err)
	}
	return nil
}

func writeEntries(w io.Writer, entries []Entry, header bool) error {
	cw := csv.NewWriter(w)

	if header {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing terminal log: %w", err)
	}
	return nil
}

// Read returns all entries from <dir>/logs/terminal-log.csv.
// Returns an empty slice if the file does not exist.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening terminal log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading terminal log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Dispensed sums the completed withdrawals logged for terminal.
func Dispensed(entries []Entry, terminal string) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Terminal == terminal && e.Action == actionWithdrawCompleted {
			total = total.Add(e.Amount)
		}
	}
	return total
}
