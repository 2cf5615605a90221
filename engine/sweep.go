package engine

import (
	"encoding/json"
	"fmt"

	"github.com/gmtools/campaigner/calendar"
	"github.com/gmtools/campaigner/campaign"
	"github.com/gmtools/campaigner/journal"
)

// SweepEvents applies every decided, unhandled event exactly once. A
// fail outcome forces the owning objective to FAILED regardless of its
// progress; any other outcome extends the objective's estimate and cost.
// Undecided events are left alone — they are a human's pending decision,
// not the engine's. An outcome that cannot be decoded is journaled and
// stays unhandled for a future sweep.
//
// Sweeping again with no new decisions is a no-op: handled events never
// re-enter the queue.
func (e *Engine) SweepEvents(date calendar.Date) {
	events, err := e.store.UnresolvedEvents()
	if err != nil {
		e.record(journal.NewEntry(date, journal.KindError, "events",
			fmt.Sprintf("load unresolved events: %v", err)))
		return
	}
	for _, ev := range events {
		e.resolveEvent(ev, date)
	}
}

func (e *Engine) resolveEvent(ev campaign.Event, date calendar.Date) {
	var outcome campaign.Outcome
	if err := json.Unmarshal(ev.Chosen, &outcome); err != nil {
		e.record(journal.NewEntry(date, journal.KindError, ev.Description,
			fmt.Sprintf("decode chosen outcome: %v", err)))
		return
	}

	obj, err := e.store.Objective(ev.ObjectiveID)
	if err != nil {
		e.record(journal.NewEntry(date, journal.KindError, ev.Description,
			fmt.Sprintf("load objective: %v", err)))
		return
	}

	if obj.Status.Terminal() {
		// The objective finished before its event was applied. Nothing to
		// mutate; retire the event.
		if err := e.store.MarkEventHandled(ev.ID); err != nil {
			e.record(journal.NewEntry(date, journal.KindError, ev.Description,
				fmt.Sprintf("mark handled: %v", err)))
			return
		}
		e.record(journal.NewEntry(date, journal.KindEvent, obj.Name,
			fmt.Sprintf("outcome %q dropped, objective already %s", outcome.Text, obj.Status)))
		return
	}

	if outcome.Fail {
		obj.Status = campaign.StatusFailed
		obj.StartDate = nil
		if err := e.store.UpdateObjective(obj); err != nil {
			e.record(journal.NewEntry(date, journal.KindError, ev.Description,
				fmt.Sprintf("fail objective: %v", err)))
			return
		}
		if err := e.store.MarkEventHandled(ev.ID); err != nil {
			e.record(journal.NewEntry(date, journal.KindError, ev.Description,
				fmt.Sprintf("mark handled: %v", err)))
			return
		}
		e.record(journal.NewEntry(date, journal.KindEvent, obj.Name,
			fmt.Sprintf("failed: %s", outcome.Text)))
		e.record(journal.NewEntry(date, journal.KindObjective, obj.Name, "failed"))
		return
	}

	obj.EstimatedMonths = obj.EstimatedMonths.Add(outcome.ExtraMonths)
	obj.TotalCost = obj.TotalCost.Add(outcome.ExtraCost)
	if err := e.store.UpdateObjective(obj); err != nil {
		e.record(journal.NewEntry(date, journal.KindError, ev.Description,
			fmt.Sprintf("apply outcome: %v", err)))
		return
	}
	// Mark handled after the apply: a crash between the two replays the
	// outcome next sweep rather than losing it.
	if err := e.store.MarkEventHandled(ev.ID); err != nil {
		e.record(journal.NewEntry(date, journal.KindError, ev.Description,
			fmt.Sprintf("mark handled: %v", err)))
		return
	}
	e.record(journal.NewEntry(date, journal.KindEvent, obj.Name,
		fmt.Sprintf("%s: +%s months, +%s cost", outcome.Text, outcome.ExtraMonths, outcome.ExtraCost)).
		WithAmount(outcome.ExtraCost))
}
