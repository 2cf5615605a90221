package engine

import (
	"fmt"

	"github.com/gmtools/campaigner/calendar"
	"github.com/gmtools/campaigner/campaign"
	"github.com/gmtools/campaigner/journal"
)

// ApplyCadence applies every recurring posting of the given cadence once.
// Credits are unconditional. Debits only apply while the bound account
// covers the full amount: no partial debit, no negative balance. Unbound
// postings are journaled and skipped.
//
// Calling this twice for the same tick double-applies; the clock invokes
// it exactly once per matching time unit.
func (e *Engine) ApplyCadence(c campaign.Cadence, date calendar.Date) {
	postings, err := e.store.PostingsByCadence(c)
	if err != nil {
		e.record(journal.NewEntry(date, journal.KindError, "postings",
			fmt.Sprintf("load %s postings: %v", c, err)))
		return
	}
	for _, p := range postings {
		e.applyPosting(p, date)
	}
}

func (e *Engine) applyPosting(p campaign.Posting, date calendar.Date) {
	if p.AccountID == "" {
		e.record(journal.NewEntry(date, journal.KindSkip, p.Name,
			campaign.ErrUnboundAccount.Error()).WithAmount(p.Amount))
		return
	}

	acct, err := e.store.Account(p.AccountID)
	if err != nil {
		e.record(journal.NewEntry(date, journal.KindError, p.Name,
			fmt.Sprintf("load account: %v", err)))
		return
	}

	switch p.Direction {
	case campaign.Credit:
		if err := e.store.SetBalance(acct.ID, acct.Balance.Add(p.Amount)); err != nil {
			e.record(journal.NewEntry(date, journal.KindError, p.Name,
				fmt.Sprintf("credit %s: %v", acct.Name, err)))
			return
		}
		e.record(journal.NewEntry(date, journal.KindPosting, p.Name,
			fmt.Sprintf("credited %s to %s", p.Amount, acct.Name)).WithAmount(p.Amount))

	case campaign.Debit:
		if !acct.CanCover(p.Amount) {
			e.record(journal.NewEntry(date, journal.KindSkip, p.Name,
				fmt.Sprintf("%v: %s has %s, needs %s",
					campaign.ErrInsufficientFunds, acct.Name, acct.Balance, p.Amount)).WithAmount(p.Amount))
			return
		}
		if err := e.store.SetBalance(acct.ID, acct.Balance.Sub(p.Amount)); err != nil {
			e.record(journal.NewEntry(date, journal.KindError, p.Name,
				fmt.Sprintf("debit %s: %v", acct.Name, err)))
			return
		}
		e.record(journal.NewEntry(date, journal.KindPosting, p.Name,
			fmt.Sprintf("debited %s from %s", p.Amount, acct.Name)).WithAmount(p.Amount))

	default:
		e.record(journal.NewEntry(date, journal.KindError, p.Name,
			fmt.Sprintf("unknown posting direction %q", p.Direction)))
	}
}
