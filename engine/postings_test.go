package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmtools/campaigner/campaign"
)

func TestApplyCadenceCreditsUnconditionally(t *testing.T) {
	e, st, _ := newTestEngine(t, testStart)

	acct := mustAccount(t, st, "treasury", "0")
	mustPosting(t, st, campaign.Posting{
		Name: "tavern", Direction: campaign.Credit,
		Amount: dec("25.50"), Cadence: campaign.Daily, AccountID: acct.ID,
	})

	e.ApplyCadence(campaign.Daily, testStart)
	e.ApplyCadence(campaign.Daily, testStart)

	// Twice applied is twice credited: cadence idempotence is the
	// caller's job, not this rule's.
	assert.True(t, balance(t, st, acct.ID).Equal(dec("51")),
		"balance %s", balance(t, st, acct.ID))
}

func TestApplyCadenceDebitsOnlyWhenCovered(t *testing.T) {
	e, st, j := newTestEngine(t, testStart)

	acct := mustAccount(t, st, "treasury", "15")
	mustPosting(t, st, campaign.Posting{
		Name: "garrison wages", Direction: campaign.Debit,
		Amount: dec("10"), Cadence: campaign.Weekly, AccountID: acct.ID,
	})

	e.ApplyCadence(campaign.Weekly, testStart)
	assert.True(t, balance(t, st, acct.ID).Equal(dec("5")))

	// 5 < 10: skipped whole, no partial debit.
	e.ApplyCadence(campaign.Weekly, testStart)
	assert.True(t, balance(t, st, acct.ID).Equal(dec("5")))

	skips := j.ByKind("skip")
	require.Len(t, skips, 1)
	assert.Equal(t, "garrison wages", skips[0].Subject)
}

func TestApplyCadenceExactCoverDebitsToZero(t *testing.T) {
	e, st, _ := newTestEngine(t, testStart)

	acct := mustAccount(t, st, "treasury", "10")
	mustPosting(t, st, campaign.Posting{
		Name: "garrison wages", Direction: campaign.Debit,
		Amount: dec("10"), Cadence: campaign.Daily, AccountID: acct.ID,
	})

	// balance == amount debits fine; only balance < amount skips.
	e.ApplyCadence(campaign.Daily, testStart)
	assert.True(t, balance(t, st, acct.ID).IsZero())
}

func TestApplyCadenceSkipsUnboundPostings(t *testing.T) {
	e, st, j := newTestEngine(t, testStart)

	mustPosting(t, st, campaign.Posting{
		Name: "tithe", Direction: campaign.Debit,
		Amount: dec("5"), Cadence: campaign.Daily,
	})

	e.ApplyCadence(campaign.Daily, testStart)

	skips := j.ByKind("skip")
	require.Len(t, skips, 1)
	assert.Contains(t, skips[0].Message, "no account bound")
}

func TestApplyCadenceIgnoresOtherCadences(t *testing.T) {
	e, st, _ := newTestEngine(t, testStart)

	acct := mustAccount(t, st, "treasury", "0")
	mustPosting(t, st, campaign.Posting{
		Name: "land rents", Direction: campaign.Credit,
		Amount: dec("1000"), Cadence: campaign.Monthly, AccountID: acct.ID,
	})

	e.ApplyCadence(campaign.Daily, testStart)
	e.ApplyCadence(campaign.Weekly, testStart)

	assert.True(t, balance(t, st, acct.ID).IsZero())
}
