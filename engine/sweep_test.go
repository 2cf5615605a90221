package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmtools/campaigner/campaign"
	"github.com/gmtools/campaigner/store"
)

func decidedEvent(t *testing.T, st *store.Memory, objectiveID string, outcome campaign.Outcome) campaign.Event {
	t.Helper()

	raw, err := json.Marshal(outcome)
	require.NoError(t, err)
	ev, err := st.CreateEvent(campaign.Event{
		ObjectiveID: objectiveID,
		Description: "a complication arises",
		Options:     []campaign.Outcome{outcome},
		Chosen:      raw,
	})
	require.NoError(t, err)
	return ev
}

// Scenario: a chosen outcome of +2 months and +200 gold extends the
// estimate and the cost, marks the event handled, and changes the burn
// rate of subsequent ticks without touching accrued progress.
func TestSweepAppliesChosenOutcomeOnce(t *testing.T) {
	e, st, _ := newTestEngine(t, testStart)

	acct := mustAccount(t, st, "fund", "1200")
	obj := inProgressObjective(t, st, "map the greenbelt", "10", "1000", acct.ID, testStart)
	ev := decidedEvent(t, st, obj.ID, campaign.Outcome{
		Text:        "the survey team demands hazard pay",
		ExtraMonths: dec("2"),
		ExtraCost:   dec("200"),
	})

	e.SweepEvents(testStart)

	got := objective(t, st, obj.ID)
	assert.True(t, got.EstimatedMonths.Equal(dec("12")), "estimate %s", got.EstimatedMonths)
	assert.True(t, got.TotalCost.Equal(dec("1200")), "cost %s", got.TotalCost)
	assert.Equal(t, campaign.StatusInProgress, got.Status)

	handled, err := st.Event(ev.ID)
	require.NoError(t, err)
	assert.True(t, handled.Handled)

	// New burn rate 1200/12 = 100 per month; progress rate still pinned
	// to the base estimate of 10.
	e.ApplyProgress(MonthFraction, testStart)
	assert.True(t, balance(t, st, acct.ID).Equal(dec("1100")))
	assert.True(t, objective(t, st, obj.ID).Progress.Equal(dec("10")))
}

func TestSweepTwiceIsANoOp(t *testing.T) {
	e, st, _ := newTestEngine(t, testStart)

	acct := mustAccount(t, st, "fund", "1000")
	obj := inProgressObjective(t, st, "map the greenbelt", "10", "1000", acct.ID, testStart)
	decidedEvent(t, st, obj.ID, campaign.Outcome{
		Text: "delays", ExtraMonths: dec("1"), ExtraCost: dec("100"),
	})

	e.SweepEvents(testStart)
	e.SweepEvents(testStart)

	got := objective(t, st, obj.ID)
	assert.True(t, got.EstimatedMonths.Equal(dec("11")), "estimate applied twice: %s", got.EstimatedMonths)
	assert.True(t, got.TotalCost.Equal(dec("1100")))
}

// Scenario: a fail outcome forces FAILED regardless of progress, and the
// objective is dead to all further ticking.
func TestSweepFailOutcomeTerminatesObjective(t *testing.T) {
	e, st, _ := newTestEngine(t, testStart)

	acct := mustAccount(t, st, "fund", "1000")
	obj := inProgressObjective(t, st, "tame the owlbear", "10", "1000", acct.ID, testStart)

	// Accrue some progress first; failure must not care.
	e.ApplyProgress(MonthFraction, testStart)
	require.True(t, objective(t, st, obj.ID).Progress.Equal(dec("10")))

	decidedEvent(t, st, obj.ID, campaign.Outcome{Text: "the owlbear ate the trainer", Fail: true})
	e.SweepEvents(testStart)

	got := objective(t, st, obj.ID)
	assert.Equal(t, campaign.StatusFailed, got.Status)
	assert.Nil(t, got.StartDate)

	// No further tick changes anything.
	balBefore := balance(t, st, acct.ID)
	e.ApplyProgress(MonthFraction, testStart)
	after := objective(t, st, obj.ID)
	assert.Equal(t, campaign.StatusFailed, after.Status)
	assert.True(t, after.Progress.Equal(got.Progress))
	assert.True(t, balance(t, st, acct.ID).Equal(balBefore))
}

func TestSweepLeavesUndecidedEventsAlone(t *testing.T) {
	e, st, _ := newTestEngine(t, testStart)

	acct := mustAccount(t, st, "fund", "1000")
	obj := inProgressObjective(t, st, "map the greenbelt", "10", "1000", acct.ID, testStart)
	ev, err := st.CreateEvent(campaign.Event{
		ObjectiveID: obj.ID,
		Description: "bandits on the road",
		Options:     []campaign.Outcome{{Text: "pay them off", ExtraCost: dec("50")}},
	})
	require.NoError(t, err)

	e.SweepEvents(testStart)

	got, err := st.Event(ev.ID)
	require.NoError(t, err)
	assert.False(t, got.Handled)
	assert.True(t, objective(t, st, obj.ID).EstimatedMonths.Equal(dec("10")))
}

func TestSweepReportsUndecodableOutcomeAndKeepsIt(t *testing.T) {
	e, st, j := newTestEngine(t, testStart)

	acct := mustAccount(t, st, "fund", "1000")
	obj := inProgressObjective(t, st, "map the greenbelt", "10", "1000", acct.ID, testStart)
	ev, err := st.CreateEvent(campaign.Event{
		ObjectiveID: obj.ID,
		Description: "a complication arises",
		Chosen:      json.RawMessage(`{"text": truncated`),
	})
	require.NoError(t, err)

	e.SweepEvents(testStart)

	got, err := st.Event(ev.ID)
	require.NoError(t, err)
	assert.False(t, got.Handled, "undecodable event must stay queued")

	errs := j.ByKind("error")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "decode chosen outcome")
}

func TestSweepRetiresEventForTerminalObjective(t *testing.T) {
	e, st, _ := newTestEngine(t, testStart)

	obj := mustObjective(t, st, campaign.Objective{
		Name: "done deal", Status: campaign.StatusCompleted,
		Progress:        dec("100"),
		EstimatedMonths: dec("5"), BaseEstimatedMonths: dec("5"),
		TotalCost: dec("500"),
	})
	ev := decidedEvent(t, st, obj.ID, campaign.Outcome{
		Text: "late invoice", ExtraCost: dec("100"),
	})

	e.SweepEvents(testStart)

	got := objective(t, st, obj.ID)
	assert.True(t, got.TotalCost.Equal(dec("500")), "terminal objective mutated")

	handled, err := st.Event(ev.ID)
	require.NoError(t, err)
	assert.True(t, handled.Handled)
}

func TestStartObjectiveStampsDateAndGuardsStateMachine(t *testing.T) {
	e, st, _ := newTestEngine(t, testStart)

	acct := mustAccount(t, st, "fund", "1000")
	obj := mustObjective(t, st, campaign.Objective{
		Name:                "map the greenbelt",
		EstimatedMonths:     dec("10"),
		BaseEstimatedMonths: dec("10"),
		TotalCost:           dec("1000"),
		AccountID:           acct.ID,
	})

	started, err := e.StartObjective(obj.ID)
	require.NoError(t, err)
	assert.Equal(t, campaign.StatusInProgress, started.Status)
	require.NotNil(t, started.StartDate)
	assert.True(t, started.StartDate.Equal(testStart))

	// Starting twice is rejected.
	_, err = e.StartObjective(obj.ID)
	assert.Error(t, err)
}
