// Package campaign defines the entities shared across the simulation:
// ledger accounts, recurring postings, follower objectives and their
// branching events. All money and percentage arithmetic uses
// shopspring/decimal so balances never pick up float drift.
package campaign

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/gmtools/campaigner/calendar"
)

// Direction is the accounting side of a recurring posting.
type Direction string

const (
	// Credit postings are economic activities: income applied
	// unconditionally each period.
	Credit Direction = "credit"
	// Debit postings are fixed expenses: charged only while the bound
	// account can cover them.
	Debit Direction = "debit"
)

// Cadence is how often a recurring posting fires.
type Cadence string

const (
	Daily   Cadence = "daily"
	Weekly  Cadence = "weekly"
	Monthly Cadence = "monthly"
)

// Valid reports whether c is one of the three supported cadences.
func (c Cadence) Valid() bool {
	switch c {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

// Account is a named store of money. The interest rate is carried in the
// schema for bookkeeping but is never applied by the clock; only manual
// deposits, withdrawals and transfers touch a balance outside the tick.
type Account struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Balance      decimal.Decimal `json:"balance"`
	InterestRate decimal.Decimal `json:"interest_rate"`
}

// CanCover reports whether the balance is large enough to debit amount
// without going negative.
func (a Account) CanCover(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// Posting is a recurring credit or debit bound to at most one account.
// An unbound posting (AccountID == "") is skipped and reported, never
// applied.
type Posting struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Direction Direction       `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	Cadence   Cadence         `json:"cadence"`
	AccountID string          `json:"account_id,omitempty"`
}

// Status is an objective's position in its lifecycle.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// Terminal reports whether no further transition is allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Objective is a long-running follower task funded by an account.
//
// EstimatedMonths is the current, revisable duration estimate and drives
// the cost burn rate. BaseEstimatedMonths is the original estimate and is
// the fixed denominator for progress, so an extension slows spending
// per month but does not dilate how much progress one month buys.
type Objective struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Status              Status          `json:"status"`
	Progress            decimal.Decimal `json:"progress"`
	EstimatedMonths     decimal.Decimal `json:"estimated_months"`
	BaseEstimatedMonths decimal.Decimal `json:"base_estimated_months"`
	TotalCost           decimal.Decimal `json:"total_cost"`
	AccountID           string          `json:"account_id,omitempty"`
	StartDate           *calendar.Date  `json:"start_date,omitempty"`
}

// Outcome is one candidate resolution of a branching event. ExtraMonths
// and ExtraCost extend the owning objective's estimate; Fail forces the
// objective to FAILED instead.
type Outcome struct {
	Text        string          `json:"text"`
	ExtraMonths decimal.Decimal `json:"extra_months"`
	ExtraCost   decimal.Decimal `json:"extra_cost"`
	Fail        bool            `json:"fail,omitempty"`
}

// Event is a branching complication attached to an in-progress objective.
// Options are the candidate outcomes proposed when the event was created.
// Chosen holds the operator's pick as raw JSON; it stays nil until a
// human decides, and the clock never advances an undecided event. Handled
// flips to true once the sweep has applied the chosen outcome.
type Event struct {
	ID          string          `json:"id"`
	ObjectiveID string          `json:"objective_id"`
	Description string          `json:"description"`
	Options     []Outcome       `json:"options"`
	Chosen      json.RawMessage `json:"chosen,omitempty"`
	Handled     bool            `json:"handled"`
}

// Decided reports whether an outcome has been chosen for the event.
func (e Event) Decided() bool { return len(e.Chosen) > 0 }
