package journal

import "github.com/gmtools/campaigner/calendar"

// Memory is an in-memory journal for tests and the demo mode.
type Memory struct {
	entries []Entry
}

func NewMemory() *Memory { return &Memory{} }

func (j *Memory) Record(e Entry) error {
	j.entries = append(j.entries, e)
	return nil
}

func (j *Memory) Close() error { return nil }

// Entries returns every recorded entry in order.
func (j *Memory) Entries() []Entry { return j.entries }

// ByKind returns recorded entries of one kind, in order.
func (j *Memory) ByKind(kind string) []Entry {
	var out []Entry
	for _, e := range j.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (j *Memory) EntriesByDate(d calendar.Date) ([]Entry, error) {
	var out []Entry
	for _, e := range j.entries {
		if e.Date.Equal(d) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (j *Memory) Recent(n int) ([]Entry, error) {
	if n > len(j.entries) {
		n = len(j.entries)
	}
	out := make([]Entry, n)
	copy(out, j.entries[len(j.entries)-n:])
	return out, nil
}
