// Package store persists campaign state: the current date singleton,
// bank balances, recurring postings, follower objectives and their
// events. Two implementations exist: SQLite for real campaigns and an
// in-memory store for tests and throwaway sessions.
//
// Writes are individually committed. A clock tick is deliberately not
// wrapped in one transaction: a crash mid-tick leaves earlier postings
// applied and later ones not, and the journal shows which.
package store

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/gmtools/campaigner/calendar"
	"github.com/gmtools/campaigner/campaign"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence collaborator the engine, ledger service, CLI
// and HTTP API all run against.
type Store interface {
	// Campaign date singleton.
	CurrentDate() (calendar.Date, error)
	SetCurrentDate(calendar.Date) error

	// Accounts. Create assigns an ID when the caller left it empty.
	Accounts() ([]campaign.Account, error)
	Account(id string) (campaign.Account, error)
	CreateAccount(campaign.Account) (campaign.Account, error)
	SetBalance(id string, balance decimal.Decimal) error

	// Recurring postings.
	Postings() ([]campaign.Posting, error)
	PostingsByCadence(campaign.Cadence) ([]campaign.Posting, error)
	CreatePosting(campaign.Posting) (campaign.Posting, error)

	// Objectives.
	Objectives() ([]campaign.Objective, error)
	Objective(id string) (campaign.Objective, error)
	ObjectivesInProgress() ([]campaign.Objective, error)
	CreateObjective(campaign.Objective) (campaign.Objective, error)
	UpdateObjective(campaign.Objective) error

	// Objective events. UnresolvedEvents is the sweep's work queue:
	// unhandled events with a chosen outcome. PendingEvents are the ones
	// still waiting on a human decision.
	Events() ([]campaign.Event, error)
	Event(id string) (campaign.Event, error)
	UnresolvedEvents() ([]campaign.Event, error)
	PendingEvents() ([]campaign.Event, error)
	CreateEvent(campaign.Event) (campaign.Event, error)
	ChooseOutcome(eventID string, chosen campaign.Outcome) error
	MarkEventHandled(eventID string) error

	Close() error
}
