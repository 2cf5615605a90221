// Package journal is the append-only audit log of the simulation. Every
// posting, progress step, event resolution, skip and error produced by a
// tick is recorded here so an operator can reconstruct what an
// advancement actually did.
package journal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gmtools/campaigner/calendar"
	"github.com/gmtools/campaigner/pkg/id"
)

// Entry kinds. Kind groups entries for querying, Subject names the
// entity the entry is about.
const (
	KindDate      = "date"      // the clock moved or was set
	KindPosting   = "posting"   // a recurring credit or debit applied
	KindProgress  = "progress"  // an objective accrued progress and cost
	KindObjective = "objective" // an objective changed status
	KindEvent     = "event"     // an event outcome was applied
	KindLedger    = "ledger"    // a manual deposit/withdraw/transfer
	KindSkip      = "skip"      // a rule matched but was not applied
	KindError     = "error"     // a sub-step failed and was swallowed
)

// Entry is one journal row. ID is a ULID, so rows sort by creation time.
// Time is the wall clock at recording; Date is the campaign date the
// entry belongs to.
type Entry struct {
	ID      string
	Time    time.Time
	Date    calendar.Date
	Kind    string
	Subject string
	Amount  decimal.Decimal
	Message string
}

// NewEntry returns an Entry stamped with a fresh ID and the current wall
// time.
func NewEntry(date calendar.Date, kind, subject, message string) Entry {
	return Entry{
		ID:      id.New(),
		Time:    time.Now().UTC(),
		Date:    date,
		Kind:    kind,
		Subject: subject,
		Message: message,
	}
}

// WithAmount returns a copy of the entry carrying a money amount.
func (e Entry) WithAmount(amount decimal.Decimal) Entry {
	e.Amount = amount
	return e
}

// Journal is the sink the engine writes to.
type Journal interface {
	Record(Entry) error
	Close() error
}

// Reader is the query side, implemented by the SQLite and memory
// journals. The CSV journal is write-only.
type Reader interface {
	EntriesByDate(calendar.Date) ([]Entry, error)
	Recent(n int) ([]Entry, error)
}
