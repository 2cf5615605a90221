package journal

import (
	"encoding/csv"
	"os"
	"time"
)

// CSV is a write-only journal that appends rows to a single CSV file.
// Useful for piping a session's audit trail into a spreadsheet.
type CSV struct {
	w *csv.Writer
	f *os.File
}

// NewCSV opens the journal file at path, creating it if needed. An
// existing file is appended to, never truncated: the audit trail
// survives process restarts.
func NewCSV(path string) (*CSV, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)
	// Header only on a fresh file.
	if info.Size() == 0 {
		if err := w.Write([]string{"id", "time", "date", "kind", "subject", "amount", "message"}); err != nil {
			f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &CSV{w: w, f: f}, nil
}

func (j *CSV) Record(e Entry) error {
	err := j.w.Write([]string{
		e.ID,
		e.Time.Format(time.RFC3339),
		e.Date.String(),
		e.Kind,
		e.Subject,
		e.Amount.String(),
		e.Message,
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSV) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}
