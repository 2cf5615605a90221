package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gmtools/campaigner/calendar"
)

func TestMemoryRecentReturnsCopy(t *testing.T) {
	t.Parallel()

	j := NewMemory()
	d := calendar.New(4712, time.March, 15)
	for _, msg := range []string{"one", "two", "three"} {
		assert.NoError(t, j.Record(NewEntry(d, KindDate, "clock", msg)))
	}

	recent, err := j.Recent(2)
	assert.NoError(t, err)
	assert.Len(t, recent, 2)
	assert.Equal(t, "two", recent[0].Message)

	// Mutating the result must not reach the journal's backing array.
	recent[0].Message = "clobbered"

	entries := j.Entries()
	assert.Len(t, entries, 3)
	assert.Equal(t, "two", entries[1].Message)
	assert.Equal(t, "three", entries[2].Message)
}

func TestMemoryRecentClampsToLength(t *testing.T) {
	t.Parallel()

	j := NewMemory()
	d := calendar.New(4712, time.March, 15)
	assert.NoError(t, j.Record(NewEntry(d, KindDate, "clock", "only")))

	recent, err := j.Recent(10)
	assert.NoError(t, err)
	assert.Len(t, recent, 1)
}
