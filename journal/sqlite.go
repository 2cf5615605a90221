package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a journal backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) Record(e Entry) error {
	_, err := j.db.Exec(`
		INSERT INTO journal (id, time, date, kind, subject, amount, message)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Time, e.Date.String(), e.Kind, e.Subject, e.Amount.String(), e.Message,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
