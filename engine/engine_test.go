package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gmtools/campaigner/calendar"
	"github.com/gmtools/campaigner/campaign"
	"github.com/gmtools/campaigner/journal"
	"github.com/gmtools/campaigner/store"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestEngine(t *testing.T, start calendar.Date) (*Engine, *store.Memory, *journal.Memory) {
	t.Helper()

	st := store.NewMemory()
	require.NoError(t, st.SetCurrentDate(start))
	j := journal.NewMemory()
	return New(st, j), st, j
}

func mustAccount(t *testing.T, st *store.Memory, name, balance string) campaign.Account {
	t.Helper()

	a, err := st.CreateAccount(campaign.Account{Name: name, Balance: dec(balance)})
	require.NoError(t, err)
	return a
}

func mustPosting(t *testing.T, st *store.Memory, p campaign.Posting) campaign.Posting {
	t.Helper()

	created, err := st.CreatePosting(p)
	require.NoError(t, err)
	return created
}

func mustObjective(t *testing.T, st *store.Memory, o campaign.Objective) campaign.Objective {
	t.Helper()

	created, err := st.CreateObjective(o)
	require.NoError(t, err)
	return created
}

// inProgressObjective creates an objective already ticking against the
// given account.
func inProgressObjective(t *testing.T, st *store.Memory, name string, months, cost string, accountID string, start calendar.Date) campaign.Objective {
	t.Helper()

	return mustObjective(t, st, campaign.Objective{
		Name:                name,
		Status:              campaign.StatusInProgress,
		EstimatedMonths:     dec(months),
		BaseEstimatedMonths: dec(months),
		TotalCost:           dec(cost),
		AccountID:           accountID,
		StartDate:           &start,
	})
}

func balance(t *testing.T, st *store.Memory, id string) decimal.Decimal {
	t.Helper()

	a, err := st.Account(id)
	require.NoError(t, err)
	return a.Balance
}

func objective(t *testing.T, st *store.Memory, id string) campaign.Objective {
	t.Helper()

	o, err := st.Objective(id)
	require.NoError(t, err)
	return o
}

var testStart = calendar.New(4712, time.March, 15)
