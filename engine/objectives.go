package engine

import (
	"fmt"

	"github.com/gmtools/campaigner/campaign"
	"github.com/gmtools/campaigner/journal"
)

// StartObjective is the operator action that moves an objective from
// NOT_STARTED to IN_PROGRESS and stamps its start date with the current
// campaign date. Unlike tick sub-steps this is operator-facing, so
// failures come back as errors instead of journal entries.
func (e *Engine) StartObjective(id string) (campaign.Objective, error) {
	obj, err := e.store.Objective(id)
	if err != nil {
		return campaign.Objective{}, err
	}
	if obj.Status != campaign.StatusNotStarted {
		return campaign.Objective{}, fmt.Errorf("objective %q is %s, only NOT_STARTED objectives can start", obj.Name, obj.Status)
	}

	date, err := e.store.CurrentDate()
	if err != nil {
		return campaign.Objective{}, fmt.Errorf("read current date: %w", err)
	}

	obj.Status = campaign.StatusInProgress
	obj.StartDate = &date
	if err := e.store.UpdateObjective(obj); err != nil {
		return campaign.Objective{}, err
	}

	e.record(journal.NewEntry(date, journal.KindObjective, obj.Name, "started"))
	return obj, nil
}
