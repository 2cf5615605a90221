package proposal

import (
	"context"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/gmtools/campaigner/campaign"
)

// Static is the fallback source: a fixed table of generic complications.
// It always offers a cheap option, an expensive option and a failure
// option, with the deltas drawn from a seeded generator so a campaign
// can be replayed.
type Static struct {
	rng *rand.Rand
}

func NewStatic(seed int64) *Static {
	return &Static{rng: rand.New(rand.NewSource(seed))}
}

var staticTexts = []struct {
	push string
	pay  string
	quit string
}{
	{
		push: "press on with the people you have",
		pay:  "hire outside help to recover the schedule",
		quit: "abandon the effort entirely",
	},
	{
		push: "wait out the trouble and absorb the delay",
		pay:  "spend your way around the obstacle",
		quit: "cut your losses and walk away",
	},
	{
		push: "improvise with local materials",
		pay:  "send for proper supplies from the capital",
		quit: "declare the venture cursed and disband it",
	},
}

func (s *Static) Propose(_ context.Context, _ string) ([]campaign.Outcome, error) {
	texts := staticTexts[s.rng.Intn(len(staticTexts))]

	// Deltas stay small: months in 1-3, cost in 25-200.
	months := int64(1 + s.rng.Intn(3))
	cost := int64(25 * (1 + s.rng.Intn(8)))

	return []campaign.Outcome{
		{
			Text:        texts.push,
			ExtraMonths: decimal.NewFromInt(months),
			ExtraCost:   decimal.Zero,
		},
		{
			Text:        texts.pay,
			ExtraMonths: decimal.Zero,
			ExtraCost:   decimal.NewFromInt(cost),
		},
		{
			Text: texts.quit,
			Fail: true,
		},
	}, nil
}
