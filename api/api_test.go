package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmtools/campaigner/calendar"
	"github.com/gmtools/campaigner/campaign"
	"github.com/gmtools/campaigner/engine"
	"github.com/gmtools/campaigner/journal"
	"github.com/gmtools/campaigner/ledger"
	"github.com/gmtools/campaigner/proposal"
	"github.com/gmtools/campaigner/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()

	st := store.NewMemory()
	require.NoError(t, st.SetCurrentDate(calendar.New(4712, time.March, 1)))
	j := journal.NewMemory()
	srv := NewServer(st, engine.New(st, j), ledger.NewService(st, j), proposal.NewStatic(1), j)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	var body map[string]string
	resp := doJSON(t, http.MethodGet, ts.URL+"/health", nil, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestAdvanceAppliesPostings(t *testing.T) {
	ts, st := newTestServer(t)

	var acct campaign.Account
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/accounts",
		map[string]any{"name": "treasury", "balance": "100"}, &acct)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/postings", map[string]any{
		"name": "tavern", "direction": "credit", "amount": "10",
		"cadence": "daily", "account_id": acct.ID,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var date map[string]string
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/advance",
		map[string]any{"unit": "days", "count": 3}, &date)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "4712-03-04", date["date"])

	after, err := st.Account(acct.ID)
	require.NoError(t, err)
	assert.Equal(t, "130", after.Balance.String())
}

func TestAdvanceRejectsBadUnit(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/advance",
		map[string]any{"unit": "fortnights", "count": 1}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSetDateSkipsRules(t *testing.T) {
	ts, st := newTestServer(t)

	var date map[string]string
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/date",
		map[string]string{"date": "4711-01-01"}, &date)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	d, err := st.CurrentDate()
	require.NoError(t, err)
	assert.Equal(t, "4711-01-01", d.String())
}

func TestEventFlow(t *testing.T) {
	ts, st := newTestServer(t)

	var acct campaign.Account
	doJSON(t, http.MethodPost, ts.URL+"/api/accounts",
		map[string]any{"name": "fund", "balance": "10000"}, &acct)

	var obj campaign.Objective
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/objectives", map[string]any{
		"name": "map the greenbelt", "estimated_months": "10",
		"total_cost": "1000", "account_id": acct.ID,
	}, &obj)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, campaign.StatusNotStarted, obj.Status)

	// Events only attach to in-progress objectives.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/events",
		map[string]string{"objective_id": obj.ID, "description": "bandits"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/objectives/"+obj.ID+"/start", nil, &obj)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, campaign.StatusInProgress, obj.Status)

	var ev campaign.Event
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/events",
		map[string]string{"objective_id": obj.ID, "description": "bandits"}, &ev)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, ev.Options)
	assert.False(t, ev.Decided())

	var pending []campaign.Event
	doJSON(t, http.MethodGet, ts.URL+"/api/events/pending", nil, &pending)
	require.Len(t, pending, 1)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/events/"+ev.ID+"/outcome",
		map[string]int{"option": 0}, &ev)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, ev.Decided())

	// Choosing twice conflicts.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/events/"+ev.ID+"/outcome",
		map[string]int{"option": 1}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The next advance sweeps the decided event.
	doJSON(t, http.MethodPost, ts.URL+"/api/advance",
		map[string]any{"unit": "days", "count": 1}, nil)

	swept, err := st.Event(ev.ID)
	require.NoError(t, err)
	assert.True(t, swept.Handled)
}

func TestLedgerEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	var from, to campaign.Account
	doJSON(t, http.MethodPost, ts.URL+"/api/accounts",
		map[string]any{"name": "treasury", "balance": "100"}, &from)
	doJSON(t, http.MethodPost, ts.URL+"/api/accounts",
		map[string]any{"name": "fund", "balance": "0"}, &to)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/accounts/"+from.ID+"/deposit",
		map[string]string{"amount": "50"}, &from)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "150", from.Balance.String())

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/transfers",
		map[string]string{"from": from.ID, "to": to.ID, "amount": "150"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Overdraft is a client error, not a server one.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/accounts/"+from.ID+"/withdraw",
		map[string]string{"amount": "1"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJournalQuery(t *testing.T) {
	ts, _ := newTestServer(t)

	var acct campaign.Account
	doJSON(t, http.MethodPost, ts.URL+"/api/accounts",
		map[string]any{"name": "treasury", "balance": "0"}, &acct)
	doJSON(t, http.MethodPost, ts.URL+"/api/postings", map[string]any{
		"name": "tavern", "direction": "credit", "amount": "10",
		"cadence": "daily", "account_id": acct.ID,
	}, nil)
	doJSON(t, http.MethodPost, ts.URL+"/api/advance",
		map[string]any{"unit": "days", "count": 2}, nil)

	var entries []journal.Entry
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/journal?date=4712-03-02", nil, &entries)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, entries, 1)
	assert.Equal(t, journal.KindPosting, entries[0].Kind)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/journal?date=not-a-date", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
