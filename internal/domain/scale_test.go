package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorForValue(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected Color
	}{
		{"zero is no data", 0, NoDataColor},
		{"NaN is no data", math.NaN(), NoDataColor},
		{"below first bound", 999, bucketColors[0]},
		{"at first bound", 1_000, bucketColors[1]},
		{"just under second bound", 9_999, bucketColors[1]},
		{"at second bound", 10_000, bucketColors[2]},
		{"at third bound", 50_000, bucketColors[3]},
		{"at fourth bound", 100_000, bucketColors[4]},
		{"at fifth bound", 200_000, bucketColors[5]},
		{"at sixth bound", 500_000, bucketColors[6]},
		{"just under top bound", 999_999, bucketColors[6]},
		{"at top bound", 1_000_000, bucketColors[7]},
		{"beyond top bound", 2_500_000, bucketColors[7]},
		{"negative classifies like a small value", -5, bucketColors[0]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ColorForValue(tt.value))
		})
	}
}

func TestColorForCountry(t *testing.T) {
	summaries := map[string]CountrySummary{
		"Japan": {Country: "Japan", CasesPerMillion: 250_000},
		"Chad":  {Country: "Chad", CasesPerMillion: 0},
	}

	t.Run("known country", func(t *testing.T) {
		assert.Equal(t, bucketColors[5], ColorForCountry(summaries, "Japan"))
	})

	t.Run("zero metric", func(t *testing.T) {
		assert.Equal(t, NoDataColor, ColorForCountry(summaries, "Chad"))
	})

	t.Run("unknown country", func(t *testing.T) {
		assert.Equal(t, NoDataColor, ColorForCountry(summaries, "Narnia"))
	})
}

func TestBuildChoropleth(t *testing.T) {
	summaries := map[string]CountrySummary{
		"Japan":  {Country: "Japan", ISOCode: "JPN", CasesPerMillion: 250_000},
		"Brazil": {Country: "Brazil", ISOCode: "BRA", CasesPerMillion: 160_000},
		"Chad":   {Country: "Chad", ISOCode: "TCD"},
	}

	regions := BuildChoropleth(summaries)

	require.Len(t, regions, 3)
	assert.Equal(t, "Brazil", regions[0].Country)
	assert.Equal(t, "Chad", regions[1].Country)
	assert.Equal(t, "Japan", regions[2].Country)
	assert.Equal(t, bucketColors[5], regions[2].Color)
	assert.Equal(t, NoDataColor, regions[1].Color)
	assert.Equal(t, "BRA", regions[0].ISOCode)
}

func TestLegend(t *testing.T) {
	legend := Legend()

	require.Len(t, legend, len(bucketColors)+1)
	assert.Equal(t, LegendEntry{Label: "No data", Color: NoDataColor}, legend[0])
	assert.Equal(t, LegendEntry{Label: "< 1,000", Color: bucketColors[0]}, legend[1])
	assert.Equal(t, LegendEntry{Label: "1,000+", Color: bucketColors[1]}, legend[2])
	assert.Equal(t, LegendEntry{Label: "1,000,000+", Color: bucketColors[7]}, legend[8])

	// Every legend color past the sentinel follows the ramp order.
	for i, c := range bucketColors {
		assert.Equal(t, c, legend[i+1].Color)
	}
}
