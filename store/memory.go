package store

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gmtools/campaigner/calendar"
	"github.com/gmtools/campaigner/campaign"
)

// Memory is an in-memory Store for tests and throwaway sessions. It is
// not safe for concurrent use, matching the engine's single-operator
// model.
type Memory struct {
	date       calendar.Date
	dateSet    bool
	accounts   map[string]campaign.Account
	accountIDs []string
	postings   map[string]campaign.Posting
	postingIDs []string
	objectives map[string]campaign.Objective
	objIDs     []string
	events     map[string]campaign.Event
	eventIDs   []string

	// FailSetBalance, when non-nil, makes SetBalance fail for the given
	// account ID. Lets tests exercise the swallow-and-continue paths.
	FailSetBalance func(id string) error
}

func NewMemory() *Memory {
	return &Memory{
		accounts:   map[string]campaign.Account{},
		postings:   map[string]campaign.Posting{},
		objectives: map[string]campaign.Objective{},
		events:     map[string]campaign.Event{},
	}
}

func (m *Memory) Close() error { return nil }

func (m *Memory) CurrentDate() (calendar.Date, error) {
	if !m.dateSet {
		return calendar.Date{}, ErrNotFound
	}
	return m.date, nil
}

func (m *Memory) SetCurrentDate(d calendar.Date) error {
	m.date = d
	m.dateSet = true
	return nil
}

func (m *Memory) Accounts() ([]campaign.Account, error) {
	out := make([]campaign.Account, 0, len(m.accountIDs))
	for _, id := range m.accountIDs {
		out = append(out, m.accounts[id])
	}
	return out, nil
}

func (m *Memory) Account(id string) (campaign.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return campaign.Account{}, fmt.Errorf("account %q: %w", id, ErrNotFound)
	}
	return a, nil
}

func (m *Memory) CreateAccount(a campaign.Account) (campaign.Account, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m.accounts[a.ID] = a
	m.accountIDs = append(m.accountIDs, a.ID)
	return a, nil
}

func (m *Memory) SetBalance(id string, balance decimal.Decimal) error {
	if m.FailSetBalance != nil {
		if err := m.FailSetBalance(id); err != nil {
			return err
		}
	}
	a, ok := m.accounts[id]
	if !ok {
		return fmt.Errorf("account %q: %w", id, ErrNotFound)
	}
	a.Balance = balance
	m.accounts[id] = a
	return nil
}

func (m *Memory) Postings() ([]campaign.Posting, error) {
	out := make([]campaign.Posting, 0, len(m.postingIDs))
	for _, id := range m.postingIDs {
		out = append(out, m.postings[id])
	}
	return out, nil
}

func (m *Memory) PostingsByCadence(c campaign.Cadence) ([]campaign.Posting, error) {
	var out []campaign.Posting
	for _, id := range m.postingIDs {
		if p := m.postings[id]; p.Cadence == c {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) CreatePosting(p campaign.Posting) (campaign.Posting, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.postings[p.ID] = p
	m.postingIDs = append(m.postingIDs, p.ID)
	return p, nil
}

func (m *Memory) Objectives() ([]campaign.Objective, error) {
	out := make([]campaign.Objective, 0, len(m.objIDs))
	for _, id := range m.objIDs {
		out = append(out, m.objectives[id])
	}
	return out, nil
}

func (m *Memory) Objective(id string) (campaign.Objective, error) {
	o, ok := m.objectives[id]
	if !ok {
		return campaign.Objective{}, fmt.Errorf("objective %q: %w", id, ErrNotFound)
	}
	return o, nil
}

func (m *Memory) ObjectivesInProgress() ([]campaign.Objective, error) {
	var out []campaign.Objective
	for _, id := range m.objIDs {
		if o := m.objectives[id]; o.Status == campaign.StatusInProgress {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *Memory) CreateObjective(o campaign.Objective) (campaign.Objective, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = campaign.StatusNotStarted
	}
	m.objectives[o.ID] = o
	m.objIDs = append(m.objIDs, o.ID)
	return o, nil
}

func (m *Memory) UpdateObjective(o campaign.Objective) error {
	if _, ok := m.objectives[o.ID]; !ok {
		return fmt.Errorf("objective %q: %w", o.ID, ErrNotFound)
	}
	m.objectives[o.ID] = o
	return nil
}

func (m *Memory) Events() ([]campaign.Event, error) {
	out := make([]campaign.Event, 0, len(m.eventIDs))
	for _, id := range m.eventIDs {
		out = append(out, m.events[id])
	}
	return out, nil
}

func (m *Memory) Event(id string) (campaign.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return campaign.Event{}, fmt.Errorf("event %q: %w", id, ErrNotFound)
	}
	return e, nil
}

func (m *Memory) UnresolvedEvents() ([]campaign.Event, error) {
	var out []campaign.Event
	for _, id := range m.eventIDs {
		if e := m.events[id]; !e.Handled && e.Decided() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Memory) PendingEvents() ([]campaign.Event, error) {
	var out []campaign.Event
	for _, id := range m.eventIDs {
		if e := m.events[id]; !e.Handled && !e.Decided() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Memory) CreateEvent(e campaign.Event) (campaign.Event, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	m.events[e.ID] = e
	m.eventIDs = append(m.eventIDs, e.ID)
	return e, nil
}

func (m *Memory) ChooseOutcome(eventID string, chosen campaign.Outcome) error {
	e, ok := m.events[eventID]
	if !ok || e.Handled {
		return fmt.Errorf("unhandled event %q: %w", eventID, ErrNotFound)
	}
	raw, err := json.Marshal(chosen)
	if err != nil {
		return err
	}
	e.Chosen = raw
	m.events[eventID] = e
	return nil
}

func (m *Memory) MarkEventHandled(eventID string) error {
	e, ok := m.events[eventID]
	if !ok {
		return fmt.Errorf("event %q: %w", eventID, ErrNotFound)
	}
	e.Handled = true
	m.events[eventID] = e
	return nil
}
