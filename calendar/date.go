// Package calendar provides day-precision campaign dates.
//
// A campaign runs on its own in-game calendar: there is no wall-clock
// component and no time zone, only a year, a month and a day. Dates use
// Gregorian month lengths so that monthly rules can fire on real month
// boundaries.
package calendar

import (
	"fmt"
	"time"
)

// Layout is the canonical string form of a Date.
const Layout = "2006-01-02"

// Date is a single campaign day. The zero value is "no date".
type Date struct {
	t time.Time
}

// New returns the Date for the given year, month and day.
// Out-of-range values are normalized the way time.Date normalizes them.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Parse parses a date in "YYYY-MM-DD" form.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

// IsZero reports whether d is the "no date" value.
func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string { return d.t.Format(Layout) }

// Time returns the date as a UTC midnight time.Time.
func (d Date) Time() time.Time { return d.t }

// AddDays returns the date n calendar days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// AddMonths returns the date n calendar months later, with the day of
// month clamped to the target month's length: Jan 31 plus one month is
// Feb 28 (or 29), never Mar 3. This keeps "advance one month" landing in
// the month an operator expects.
func (d Date) AddMonths(n int) Date {
	first := time.Date(d.t.Year(), d.t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	day := d.t.Day()
	if last := DaysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return New(first.Year(), first.Month(), day)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

func (d Date) After(o Date) bool { return d.t.After(o.t) }

func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// SameMonth reports whether two dates fall in the same calendar month of
// the same year. The clock uses this to detect month-boundary crossings.
func SameMonth(a, b Date) bool {
	return a.t.Year() == b.t.Year() && a.t.Month() == b.t.Month()
}

// DaysBetween returns the number of day steps from a to b (negative when
// b is before a).
func DaysBetween(a, b Date) int {
	return int(b.t.Sub(a.t).Hours() / 24)
}

// MarshalText implements encoding.TextMarshaler, so dates appear in JSON
// and YAML as "YYYY-MM-DD".
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte(""), nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
