package domain

import (
	"math"
	"strconv"
	"strings"
)

// Column names of the OWID dataset consumed by the aggregator. The dataset
// carries ~40 more numeric columns; they ride along in each record untouched.
const (
	ColISOCode   = "iso_code"
	ColContinent = "continent"
	ColLocation  = "location"
	ColDate      = "date"

	ColTotalCases        = "total_cases"
	ColTotalDeaths       = "total_deaths"
	ColTotalVaccinations = "total_vaccinations"

	ColPopulation       = "population"
	ColCasesPerMillion  = "total_cases_per_million"
	ColDeathsPerMillion = "total_deaths_per_million"
	ColVaccinationRate  = "people_vaccinated_per_hundred"
)

// RawRecord is one decoded dataset row: header name → cell text. Values stay
// text until a consumer coerces them; an empty cell means "no data", not zero.
// Records are never mutated after decoding.
type RawRecord map[string]string

// Field returns the raw cell text for a column, or "" when the column is
// absent from the record.
func (r RawRecord) Field(name string) string {
	return r[name]
}

// Number coerces a column to a float64. Empty, absent, and non-numeric cells
// all coerce to zero; this single rule applies everywhere a record field
// feeds a summary scalar, so "reported as zero" and "not reported" collapse
// into the same value.
func (r RawRecord) Number(name string) float64 {
	s := strings.TrimSpace(r[name])
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}

// Location returns the country name key of the record.
func (r RawRecord) Location() string { return r[ColLocation] }

// ISOCode returns the ISO 3166-1 alpha-3 code of the record.
func (r RawRecord) ISOCode() string { return r[ColISOCode] }

// Continent returns the continent name of the record.
func (r RawRecord) Continent() string { return r[ColContinent] }

// Date returns the observation date as an ISO "YYYY-MM-DD" string.
// Lexicographic comparison of these strings is calendar comparison.
func (r RawRecord) Date() string { return r[ColDate] }
