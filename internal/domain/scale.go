package domain

import (
	"math"
	"sort"
)

// Color is a hex color token handed to the map renderer.
type Color string

// NoDataColor marks countries with no usable metric. It sits outside the
// bucket ramp so "no data" never reads as "low".
const NoDataColor Color = "#c0c0c0"

var (
	// bucketBounds are the ascending thresholds of the cases-per-million
	// scale. A value equal to a bound belongs to the bucket above it.
	bucketBounds = []float64{1_000, 10_000, 50_000, 100_000, 200_000, 500_000, 1_000_000}

	// bucketColors is the yellow-to-dark-red ramp, one color per bucket.
	bucketColors = []Color{
		"#ffffcc",
		"#ffeda0",
		"#fed976",
		"#feb24c",
		"#fd8d3c",
		"#fc4e2a",
		"#e31a1c",
		"#b10026",
	}
)

// ColorForValue buckets a cases-per-million value into the fixed scale.
// Zero and NaN mean "no data"; everything else classifies by ascending
// threshold with strictly-less-than semantics at each bound.
func ColorForValue(v float64) Color {
	if v == 0 || math.IsNaN(v) {
		return NoDataColor
	}
	for i, bound := range bucketBounds {
		if v < bound {
			return bucketColors[i]
		}
	}
	return bucketColors[len(bucketColors)-1]
}

// ColorForCountry colors one country out of a summary mapping. A country
// absent from the mapping gets the no-data color.
func ColorForCountry(summaries map[string]CountrySummary, country string) Color {
	s, ok := summaries[country]
	if !ok {
		return NoDataColor
	}
	return ColorForValue(s.CasesPerMillion)
}

// RegionColor is one entry of the choropleth join list: the map renderer
// matches Country (or ISOCode) against its shape keys and paints Color.
type RegionColor struct {
	Country string `json:"country"`
	ISOCode string `json:"iso_code"`
	Color   Color  `json:"color"`
}

// BuildChoropleth colors every summarized country, sorted by country name
// so the list is deterministic for a given mapping.
func BuildChoropleth(summaries map[string]CountrySummary) []RegionColor {
	regions := make([]RegionColor, 0, len(summaries))
	for country, s := range summaries {
		regions = append(regions, RegionColor{
			Country: country,
			ISOCode: s.ISOCode,
			Color:   ColorForValue(s.CasesPerMillion),
		})
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].Country < regions[j].Country })
	return regions
}

// LegendEntry labels one color of the scale for the map legend.
type LegendEntry struct {
	Label string `json:"label"`
	Color Color  `json:"color"`
}

// Legend returns the ordered legend: the no-data color first, then every
// bucket labeled by its lower bound.
func Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, len(bucketColors)+1)
	entries = append(entries, LegendEntry{Label: "No data", Color: NoDataColor})
	entries = append(entries, LegendEntry{Label: printer.Sprintf("< %d", int(bucketBounds[0])), Color: bucketColors[0]})
	for i, bound := range bucketBounds {
		entries = append(entries, LegendEntry{
			Label: printer.Sprintf("%d+", int(bound)),
			Color: bucketColors[i+1],
		})
	}
	return entries
}
