// Package proposal produces candidate outcomes for newly created
// objective events. Proposal happens once, when an operator records an
// event; the clock never calls a source mid-tick and the engine only
// ever consumes the structured outcome list.
package proposal

import (
	"context"

	"github.com/gmtools/campaigner/campaign"
)

// Source proposes at least one candidate outcome for an event
// description.
type Source interface {
	Propose(ctx context.Context, description string) ([]campaign.Outcome, error)
}
