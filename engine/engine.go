// Package engine is the campaign time and economic simulation engine.
//
// The Engine advances the campaign date and, for every elapsed unit of
// time, applies recurring postings to bank accounts, accrues progress
// and cost on in-progress follower objectives, and sweeps decided
// objective events. Advancement is always operator-driven: nothing here
// runs off the wall clock, and every operation completes on the calling
// goroutine before returning.
//
// No sub-step failure halts an advancement. Insufficient funds, unbound
// accounts, malformed estimates, persistence failures and undecodable
// outcomes are each reported to the journal and skipped; the clock keeps
// moving.
package engine

import (
	"log/slog"

	"github.com/gmtools/campaigner/journal"
	"github.com/gmtools/campaigner/store"
)

// Engine orchestrates the tick. It owns no state of its own: the store
// holds the campaign, the journal receives the audit trail.
type Engine struct {
	store   store.Store
	journal journal.Journal
}

func New(st store.Store, j journal.Journal) *Engine {
	return &Engine{store: st, journal: j}
}

// record writes an audit entry. A failing journal must not stop the
// simulation, so the error only goes to the process log.
func (e *Engine) record(entry journal.Entry) {
	if err := e.journal.Record(entry); err != nil {
		slog.Error("journal record failed", "kind", entry.Kind, "subject", entry.Subject, "error", err)
	}
}
