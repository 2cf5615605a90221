package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gmtools/campaigner/calendar"
	"github.com/gmtools/campaigner/campaign"
	"github.com/gmtools/campaigner/journal"
)

// Month fractions for the three tick granularities.
var (
	DayFraction   = decimal.NewFromInt(1).Div(decimal.NewFromInt(30))
	WeekFraction  = decimal.NewFromInt(1).Div(decimal.NewFromInt(4))
	MonthFraction = decimal.NewFromInt(1)

	hundred = decimal.NewFromInt(100)
)

// ApplyProgress advances every in-progress objective by the given
// fraction of a month.
//
// Cost burns at TotalCost/EstimatedMonths, so revising the estimate
// changes the rate. Progress accrues at 100/BaseEstimatedMonths, pinned
// to the original estimate, so an extension stretches the spend without
// diluting what a month of work is worth.
//
// Funding gates progress: if the bound account cannot cover the tick's
// cost, neither the debit nor the progress is applied. An objective with
// no account at all accrues nothing.
func (e *Engine) ApplyProgress(fraction decimal.Decimal, date calendar.Date) {
	objectives, err := e.store.ObjectivesInProgress()
	if err != nil {
		e.record(journal.NewEntry(date, journal.KindError, "objectives",
			fmt.Sprintf("load in-progress objectives: %v", err)))
		return
	}
	for _, o := range objectives {
		e.advanceObjective(o, fraction, date)
	}
}

func (e *Engine) advanceObjective(o campaign.Objective, fraction decimal.Decimal, date calendar.Date) {
	if !o.EstimatedMonths.IsPositive() || !o.BaseEstimatedMonths.IsPositive() {
		e.record(journal.NewEntry(date, journal.KindSkip, o.Name,
			campaign.ErrMalformedEstimate.Error()))
		return
	}
	if o.AccountID == "" {
		e.record(journal.NewEntry(date, journal.KindSkip, o.Name,
			campaign.ErrUnboundAccount.Error()))
		return
	}

	costDelta := o.TotalCost.Div(o.EstimatedMonths).Mul(fraction)
	progressDelta := hundred.Div(o.BaseEstimatedMonths).Mul(fraction)

	acct, err := e.store.Account(o.AccountID)
	if err != nil {
		e.record(journal.NewEntry(date, journal.KindError, o.Name,
			fmt.Sprintf("load account: %v", err)))
		return
	}
	if !acct.CanCover(costDelta) {
		e.record(journal.NewEntry(date, journal.KindSkip, o.Name,
			fmt.Sprintf("%v: %s has %s, tick costs %s",
				campaign.ErrInsufficientFunds, acct.Name, acct.Balance, costDelta)).WithAmount(costDelta))
		return
	}

	if err := e.store.SetBalance(acct.ID, acct.Balance.Sub(costDelta)); err != nil {
		e.record(journal.NewEntry(date, journal.KindError, o.Name,
			fmt.Sprintf("debit %s: %v", acct.Name, err)))
		return
	}

	o.Progress = o.Progress.Add(progressDelta)
	completed := o.Progress.GreaterThanOrEqual(hundred)
	if completed {
		o.Progress = hundred
		o.Status = campaign.StatusCompleted
		o.StartDate = nil
	}
	if err := e.store.UpdateObjective(o); err != nil {
		// The debit landed but the progress write failed; the journal
		// keeps the discrepancy visible.
		e.record(journal.NewEntry(date, journal.KindError, o.Name,
			fmt.Sprintf("update objective after debit of %s: %v", costDelta, err)))
		return
	}

	e.record(journal.NewEntry(date, journal.KindProgress, o.Name,
		fmt.Sprintf("progress %s%%, cost %s", o.Progress, costDelta)).WithAmount(costDelta))
	if completed {
		e.record(journal.NewEntry(date, journal.KindObjective, o.Name, "completed"))
	}
}
