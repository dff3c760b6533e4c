package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BinkeXu/covid-world-map/internal/domain"
)

func TestFallbackRecords(t *testing.T) {
	records := FallbackRecords()

	require.NotEmpty(t, records)
	assert.Len(t, records, 12)

	summaries, stats := domain.BuildSummaries(records)

	assert.Zero(t, stats.Excluded, "every sample row must aggregate")
	require.Len(t, summaries, 6)

	continents := make(map[string]bool)
	for _, country := range []string{"United States", "Brazil", "Germany", "Japan", "Australia", "South Africa"} {
		s, ok := summaries[country]
		require.True(t, ok, "sample must cover %s", country)
		assert.NotEmpty(t, s.ISOCode)
		assert.Equal(t, "2023-02-01", s.Latest.Date())
		assert.Positive(t, s.TotalCases)
		assert.NotEqual(t, domain.NoDataColor, domain.ColorForValue(s.CasesPerMillion))
		continents[s.Continent] = true
	}
	assert.Len(t, continents, 6, "sample spans all six continents")
}

func TestFallbackRecordsKeepEmptyCells(t *testing.T) {
	records := FallbackRecords()

	var japanJan *domain.RawRecord
	for i := range records {
		if records[i].Location() == "Japan" && records[i].Date() == "2023-01-15" {
			japanJan = &records[i]
			break
		}
	}

	require.NotNil(t, japanJan)
	assert.Equal(t, "", japanJan.Field(domain.ColTotalVaccinations))
	assert.Equal(t, 0.0, japanJan.Number(domain.ColTotalVaccinations))
}
