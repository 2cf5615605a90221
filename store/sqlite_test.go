package store

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmtools/campaigner/calendar"
	"github.com/gmtools/campaigner/campaign"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	s, err := NewSQLite(filepath.Join(t.TempDir(), "campaign.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestCurrentDateSingleton(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := s.CurrentDate()
	assert.ErrorIs(t, err, ErrNotFound)

	d := calendar.New(4712, time.March, 1)
	assert.NoError(t, s.SetCurrentDate(d))

	got, err := s.CurrentDate()
	assert.NoError(t, err)
	assert.True(t, got.Equal(d))

	// Overwrites, never inserts a second row.
	assert.NoError(t, s.SetCurrentDate(d.AddDays(10)))
	got, err = s.CurrentDate()
	assert.NoError(t, err)
	assert.Equal(t, "4712-03-11", got.String())
}

func TestAccountRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	a, err := s.CreateAccount(campaign.Account{
		Name:         "treasury",
		Balance:      decimal.RequireFromString("1234.56"),
		InterestRate: decimal.RequireFromString("0.03"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)

	got, err := s.Account(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "treasury", got.Name)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("1234.56")))
	assert.True(t, got.InterestRate.Equal(decimal.RequireFromString("0.03")))

	assert.NoError(t, s.SetBalance(a.ID, decimal.NewFromInt(10)))
	got, err = s.Account(a.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(10)))

	_, err = s.Account("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.SetBalance("nope", decimal.Zero), ErrNotFound)
}

func TestPostingsSplitAcrossTables(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	acct, err := s.CreateAccount(campaign.Account{Name: "treasury"})
	require.NoError(t, err)

	_, err = s.CreatePosting(campaign.Posting{
		Name: "tavern income", Direction: campaign.Credit,
		Amount: decimal.NewFromInt(25), Cadence: campaign.Daily, AccountID: acct.ID,
	})
	require.NoError(t, err)
	_, err = s.CreatePosting(campaign.Posting{
		Name: "garrison wages", Direction: campaign.Debit,
		Amount: decimal.NewFromInt(100), Cadence: campaign.Weekly, AccountID: acct.ID,
	})
	require.NoError(t, err)
	// Unbound posting round-trips with an empty account.
	_, err = s.CreatePosting(campaign.Posting{
		Name: "tithe", Direction: campaign.Debit,
		Amount: decimal.NewFromInt(5), Cadence: campaign.Daily,
	})
	require.NoError(t, err)

	all, err := s.Postings()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	daily, err := s.PostingsByCadence(campaign.Daily)
	require.NoError(t, err)
	require.Len(t, daily, 2)
	byName := map[string]campaign.Posting{}
	for _, p := range daily {
		byName[p.Name] = p
	}
	assert.Equal(t, campaign.Credit, byName["tavern income"].Direction)
	assert.Equal(t, acct.ID, byName["tavern income"].AccountID)
	assert.Equal(t, campaign.Debit, byName["tithe"].Direction)
	assert.Empty(t, byName["tithe"].AccountID)
}

func TestObjectiveRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	o, err := s.CreateObjective(campaign.Objective{
		Name:                "map the greenbelt",
		EstimatedMonths:     decimal.NewFromInt(10),
		BaseEstimatedMonths: decimal.NewFromInt(10),
		TotalCost:           decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, campaign.StatusNotStarted, o.Status)

	inProgress, err := s.ObjectivesInProgress()
	require.NoError(t, err)
	assert.Empty(t, inProgress)

	start := calendar.New(4712, time.March, 1)
	o.Status = campaign.StatusInProgress
	o.StartDate = &start
	o.Progress = decimal.RequireFromString("12.5")
	require.NoError(t, s.UpdateObjective(o))

	inProgress, err = s.ObjectivesInProgress()
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	got := inProgress[0]
	assert.True(t, got.Progress.Equal(decimal.RequireFromString("12.5")))
	require.NotNil(t, got.StartDate)
	assert.Equal(t, "4712-03-01", got.StartDate.String())

	err = s.UpdateObjective(campaign.Objective{ID: "nope",
		Progress: decimal.Zero, EstimatedMonths: decimal.Zero, TotalCost: decimal.Zero})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventLifecycle(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	obj, err := s.CreateObjective(campaign.Objective{
		Name:                "tame the owlbear",
		EstimatedMonths:     decimal.NewFromInt(3),
		BaseEstimatedMonths: decimal.NewFromInt(3),
		TotalCost:           decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	options := []campaign.Outcome{
		{Text: "hire a trapper", ExtraMonths: decimal.NewFromInt(1), ExtraCost: decimal.NewFromInt(50)},
		{Text: "abandon the beast", Fail: true},
	}
	ev, err := s.CreateEvent(campaign.Event{
		ObjectiveID: obj.ID,
		Description: "the owlbear escaped its pen",
		Options:     options,
	})
	require.NoError(t, err)

	// Undecided: pending, not in the sweep queue.
	pending, err := s.PendingEvents()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Len(t, pending[0].Options, 2)
	assert.False(t, pending[0].Decided())

	queue, err := s.UnresolvedEvents()
	require.NoError(t, err)
	assert.Empty(t, queue)

	// Choosing moves it into the queue.
	require.NoError(t, s.ChooseOutcome(ev.ID, options[0]))

	pending, err = s.PendingEvents()
	require.NoError(t, err)
	assert.Empty(t, pending)

	queue, err = s.UnresolvedEvents()
	require.NoError(t, err)
	require.Len(t, queue, 1)
	var chosen campaign.Outcome
	require.NoError(t, json.Unmarshal(queue[0].Chosen, &chosen))
	assert.Equal(t, "hire a trapper", chosen.Text)
	assert.True(t, chosen.ExtraMonths.Equal(decimal.NewFromInt(1)))

	// Handling empties the queue and locks the event.
	require.NoError(t, s.MarkEventHandled(ev.ID))
	queue, err = s.UnresolvedEvents()
	require.NoError(t, err)
	assert.Empty(t, queue)

	assert.ErrorIs(t, s.ChooseOutcome(ev.ID, options[1]), ErrNotFound)
}

func TestEventWithCorruptOptionsStillSurfaces(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	obj, err := s.CreateObjective(campaign.Objective{
		Name:                "dig a moat",
		EstimatedMonths:     decimal.NewFromInt(2),
		BaseEstimatedMonths: decimal.NewFromInt(2),
		TotalCost:           decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = s.db.Exec(`
		INSERT INTO follower_objective_events (id, objective_id, description, options, chosen, handled)
		VALUES ('ev-corrupt', ?, 'flooded trench', 'not json', NULL, 0)`, obj.ID)
	require.NoError(t, err)

	pending, err := s.PendingEvents()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "ev-corrupt", pending[0].ID)
	assert.Empty(t, pending[0].Options)
}
