package engine

import (
	"fmt"

	"github.com/gmtools/campaigner/calendar"
	"github.com/gmtools/campaigner/campaign"
	"github.com/gmtools/campaigner/journal"
)

// AdvanceDays moves the campaign forward n single days. Each day step
// persists the new date, then applies daily postings, daily objective
// progress (1/30 of a month) and an event sweep, in that order. Later
// sub-steps see balances written by earlier ones.
//
// Only failing to read the starting date is an error; everything below
// that is journaled and swallowed, and the clock still advances.
func (e *Engine) AdvanceDays(n int) (calendar.Date, error) {
	date, err := e.store.CurrentDate()
	if err != nil {
		return calendar.Date{}, fmt.Errorf("read current date: %w", err)
	}
	for i := 0; i < n; i++ {
		date = e.stepDay(date)
	}
	return date, nil
}

// AdvanceWeeks performs n weeks of seven day steps each, running the
// weekly posting rule, weekly objective progress (1/4 month) and an
// event sweep after every seventh day.
func (e *Engine) AdvanceWeeks(n int) (calendar.Date, error) {
	date, err := e.store.CurrentDate()
	if err != nil {
		return calendar.Date{}, fmt.Errorf("read current date: %w", err)
	}
	for w := 0; w < n; w++ {
		for d := 0; d < 7; d++ {
			date = e.stepDay(date)
		}
		e.ApplyCadence(campaign.Weekly, date)
		e.ApplyProgress(WeekFraction, date)
		e.SweepEvents(date)
	}
	return date, nil
}

// AdvanceMonths walks single days toward a target n calendar months
// ahead, firing the monthly rules every time a day step crosses into a
// new month. Daily rules therefore fire for every elapsed day and
// monthly rules exactly once per crossed boundary, whatever the month
// lengths in between.
func (e *Engine) AdvanceMonths(n int) (calendar.Date, error) {
	date, err := e.store.CurrentDate()
	if err != nil {
		return calendar.Date{}, fmt.Errorf("read current date: %w", err)
	}
	target := date.AddMonths(n)
	for date.Before(target) {
		prev := date
		date = e.stepDay(date)
		if !calendar.SameMonth(prev, date) {
			e.ApplyCadence(campaign.Monthly, date)
			e.ApplyProgress(MonthFraction, date)
			e.SweepEvents(date)
		}
	}
	return date, nil
}

// SetDate overwrites the campaign date without running any rule and
// without monotonicity checks. It exists to correct mistakes, not to
// advance time.
func (e *Engine) SetDate(d calendar.Date) error {
	if err := e.store.SetCurrentDate(d); err != nil {
		return fmt.Errorf("set date: %w", err)
	}
	e.record(journal.NewEntry(d, journal.KindDate, "clock", "date set to "+d.String()))
	return nil
}

func (e *Engine) stepDay(date calendar.Date) calendar.Date {
	next := date.AddDays(1)
	if err := e.store.SetCurrentDate(next); err != nil {
		e.record(journal.NewEntry(next, journal.KindError, "clock",
			fmt.Sprintf("persist date: %v", err)))
	}
	e.ApplyCadence(campaign.Daily, next)
	e.ApplyProgress(DayFraction, next)
	e.SweepEvents(next)
	return next
}
