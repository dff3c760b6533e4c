package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSummaries(t *testing.T) {
	t.Run("groups by location", func(t *testing.T) {
		records := []RawRecord{
			{ColLocation: "Japan", ColISOCode: "JPN", ColDate: "2023-01-01", ColTotalCases: "10"},
			{ColLocation: "Japan", ColISOCode: "JPN", ColDate: "2023-01-02", ColTotalCases: "20"},
			{ColLocation: "Brazil", ColISOCode: "BRA", ColDate: "2023-01-01", ColTotalCases: "5"},
		}

		summaries, stats := BuildSummaries(records)

		require.Len(t, summaries, 2)
		assert.Contains(t, summaries, "Japan")
		assert.Contains(t, summaries, "Brazil")
		assert.Equal(t, 3, stats.Records)
		assert.Equal(t, 2, stats.Countries)
		assert.Zero(t, stats.Excluded)
	})

	t.Run("excludes rows missing location or iso_code", func(t *testing.T) {
		records := []RawRecord{
			{ColLocation: "", ColISOCode: "XXX", ColDate: "2023-01-01"},
			{ColLocation: "Nowhere", ColISOCode: "", ColDate: "2023-01-01"},
			{ColLocation: "Japan", ColISOCode: "JPN", ColDate: "2023-01-01"},
		}

		summaries, stats := BuildSummaries(records)

		require.Len(t, summaries, 1)
		assert.NotContains(t, summaries, "")
		assert.NotContains(t, summaries, "Nowhere")
		assert.Equal(t, 2, stats.Excluded)
	})

	t.Run("totals are maxima across the partition", func(t *testing.T) {
		// A later date reports fewer cases than an earlier one; the summary
		// keeps the peak, not the latest value.
		records := []RawRecord{
			{ColLocation: "Japan", ColISOCode: "JPN", ColDate: "2023-01-01", ColTotalCases: "100", ColTotalDeaths: "4"},
			{ColLocation: "Japan", ColISOCode: "JPN", ColDate: "2023-01-02", ColTotalCases: "80", ColTotalDeaths: "6"},
		}

		summaries, _ := BuildSummaries(records)

		s := summaries["Japan"]
		assert.Equal(t, 100.0, s.TotalCases)
		assert.Equal(t, 6.0, s.TotalDeaths)
		assert.Equal(t, "2023-01-02", s.Latest.Date())
	})

	t.Run("all-empty numeric cells collapse to zero", func(t *testing.T) {
		records := []RawRecord{
			{ColLocation: "Atlantis", ColISOCode: "ATL", ColDate: "2023-01-01"},
			{ColLocation: "Atlantis", ColISOCode: "ATL", ColDate: "2023-01-02", ColTotalCases: ""},
		}

		summaries, _ := BuildSummaries(records)

		s := summaries["Atlantis"]
		assert.Equal(t, 0.0, s.TotalCases)
		assert.Equal(t, 0.0, s.TotalDeaths)
		assert.Equal(t, 0.0, s.TotalVaccinations)
	})

	t.Run("latest record carries identity and scalars", func(t *testing.T) {
		records := []RawRecord{
			{ColLocation: "Japan", ColISOCode: "JPN", ColContinent: "Asia", ColDate: "2023-01-01", ColCasesPerMillion: "100"},
			{ColLocation: "Japan", ColISOCode: "JPN", ColContinent: "Asia", ColDate: "2023-03-01", ColCasesPerMillion: "900", ColPopulation: "125000000", ColVaccinationRate: "75.3"},
			{ColLocation: "Japan", ColISOCode: "JPN", ColContinent: "Asia", ColDate: "2023-02-01", ColCasesPerMillion: "500"},
		}

		summaries, _ := BuildSummaries(records)

		s := summaries["Japan"]
		assert.Equal(t, "JPN", s.ISOCode)
		assert.Equal(t, "Asia", s.Continent)
		assert.Equal(t, "2023-03-01", s.Latest.Date())
		assert.Equal(t, 900.0, s.CasesPerMillion)
		assert.Equal(t, 125000000.0, s.Population)
		assert.Equal(t, 75.3, s.VaccinationRate)
	})

	t.Run("date tie keeps the first record seen", func(t *testing.T) {
		records := []RawRecord{
			{ColLocation: "Japan", ColISOCode: "JPN", ColDate: "2023-01-01", ColCasesPerMillion: "100"},
			{ColLocation: "Japan", ColISOCode: "JPN", ColDate: "2023-01-01", ColCasesPerMillion: "200"},
		}

		summaries, _ := BuildSummaries(records)

		assert.Equal(t, 100.0, summaries["Japan"].CasesPerMillion)
	})

	t.Run("display strings are grouped", func(t *testing.T) {
		records := []RawRecord{
			{
				ColLocation: "Japan", ColISOCode: "JPN", ColDate: "2023-01-01",
				ColTotalCases: "1234567", ColCasesPerMillion: "300000.5", ColVaccinationRate: "75.34",
			},
		}

		summaries, _ := BuildSummaries(records)

		d := summaries["Japan"].Display
		assert.Equal(t, "1,234,567", d.TotalCases)
		assert.Equal(t, "300,000.5", d.CasesPerMillion)
		assert.Equal(t, "75.3%", d.VaccinationRate)
	})

	t.Run("empty input yields empty mapping", func(t *testing.T) {
		summaries, stats := BuildSummaries(nil)

		assert.Empty(t, summaries)
		assert.Zero(t, stats.Records)
	})
}

// TestBuildSummariesFromCSV drives the decode and aggregate stages together
// over a small synthetic country.
func TestBuildSummariesFromCSV(t *testing.T) {
	data := `iso_code,continent,location,date,total_cases,total_deaths,total_cases_per_million
TST,Oceania,Testland,2023-01-01,10,1,10
TST,Oceania,Testland,2023-01-15,50,2,50
TST,Oceania,Testland,2023-02-01,30,,30
`
	records, skipped, err := DecodeDataset([]byte(data))
	require.NoError(t, err)
	require.Zero(t, skipped)

	summaries, stats := BuildSummaries(records)

	require.Len(t, summaries, 1)
	s := summaries["Testland"]
	assert.Equal(t, 50.0, s.TotalCases, "cumulative cases keep the historical peak")
	assert.Equal(t, 2.0, s.TotalDeaths, "empty latest cell does not erase earlier deaths")
	assert.Equal(t, "2023-02-01", s.Latest.Date())
	assert.Equal(t, 30.0, s.CasesPerMillion)
	assert.Equal(t, 3, stats.Records)
}
