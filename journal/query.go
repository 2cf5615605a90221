package journal

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/gmtools/campaigner/calendar"
)

// EntriesByDate returns every entry recorded for one campaign date, in
// recording order.
func (j *SQLite) EntriesByDate(d calendar.Date) ([]Entry, error) {
	rows, err := j.db.Query(`
		SELECT id, time, date, kind, subject, amount, message
		FROM journal
		WHERE date = ?
		ORDER BY id ASC`, d.String())
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// EntriesByKind returns the most recent n entries of one kind, oldest
// first.
func (j *SQLite) EntriesByKind(kind string, n int) ([]Entry, error) {
	rows, err := j.db.Query(`
		SELECT id, time, date, kind, subject, amount, message
		FROM (
			SELECT * FROM journal WHERE kind = ? ORDER BY id DESC LIMIT ?
		)
		ORDER BY id ASC`, kind, n)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// Recent returns the most recent n entries, oldest first.
func (j *SQLite) Recent(n int) ([]Entry, error) {
	rows, err := j.db.Query(`
		SELECT id, time, date, kind, subject, amount, message
		FROM (
			SELECT * FROM journal ORDER BY id DESC LIMIT ?
		)
		ORDER BY id ASC`, n)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e            Entry
			date, amount string
		)
		if err := rows.Scan(&e.ID, &e.Time, &date, &e.Kind, &e.Subject, &amount, &e.Message); err != nil {
			return nil, err
		}
		d, err := calendar.Parse(date)
		if err != nil {
			return nil, err
		}
		e.Date = d
		a, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, err
		}
		e.Amount = a
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
