package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot(t *testing.T) {
	fixedTime := time.Date(2023, 2, 1, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	records := []RawRecord{
		{ColLocation: "Japan", ColISOCode: "JPN", ColDate: "2023-02-01", ColCasesPerMillion: "250000"},
		{ColLocation: "Chad", ColISOCode: "TCD", ColDate: "2023-02-01"},
		{ColLocation: "", ColISOCode: "XXX", ColDate: "2023-02-01"},
	}

	snap := NewSnapshot(records, SourceRemote)

	assert.NotEmpty(t, snap.LoadID)
	assert.Equal(t, fixedTime, snap.LoadedAt)
	assert.Equal(t, SourceRemote, snap.Source)
	assert.Len(t, snap.Records, 3)
	assert.Len(t, snap.Summaries, 2)
	assert.Len(t, snap.Choropleth, 2)
	assert.Equal(t, 1, snap.Stats.Excluded)

	t.Run("summary lookup", func(t *testing.T) {
		s, ok := snap.Summary("Japan")
		require.True(t, ok)
		assert.Equal(t, "JPN", s.ISOCode)

		_, ok = snap.Summary("Narnia")
		assert.False(t, ok)
	})

	t.Run("load IDs are unique per snapshot", func(t *testing.T) {
		other := NewSnapshot(records, SourceFallback)
		assert.NotEqual(t, snap.LoadID, other.LoadID)
		assert.Equal(t, SourceFallback, other.Source)
	})
}
