package domain

// CountrySummary is the per-country aggregate driving both map coloring and
// the detail panel. Identity fields and convenience scalars come from the
// latest-dated record; the three cumulative totals are running maxima across
// the whole partition, so a retroactive downward revision never erases the
// historical peak.
type CountrySummary struct {
	Country   string `json:"country"`
	ISOCode   string `json:"iso_code"`
	Continent string `json:"continent"`

	// Latest is the maximum-date record for the country, served verbatim.
	Latest RawRecord `json:"latest"`

	TotalCases        float64 `json:"total_cases"`
	TotalDeaths       float64 `json:"total_deaths"`
	TotalVaccinations float64 `json:"total_vaccinations"`

	Population       float64 `json:"population"`
	CasesPerMillion  float64 `json:"cases_per_million"`
	DeathsPerMillion float64 `json:"deaths_per_million"`
	VaccinationRate  float64 `json:"vaccination_rate"`

	Display Display `json:"display"`
}

// AggregateStats counts what BuildSummaries saw; the load pipeline feeds
// these into metrics and logs.
type AggregateStats struct {
	Records   int
	Excluded  int
	Countries int
}

// BuildSummaries derives one CountrySummary per distinct non-empty location.
// Records missing a location or an iso_code are excluded outright, so the
// result never contains an entry keyed by the empty string. This is the
// single shared derivation: both the coloring path and the detail path read
// its output, computed once per load.
func BuildSummaries(records []RawRecord) (map[string]CountrySummary, AggregateStats) {
	type partial struct {
		latest   RawRecord
		cases    float64
		deaths   float64
		vaccines float64
	}

	stats := AggregateStats{Records: len(records)}
	partials := make(map[string]*partial)

	for _, rec := range records {
		country := rec.Location()
		if country == "" || rec.ISOCode() == "" {
			stats.Excluded++
			continue
		}

		p, ok := partials[country]
		if !ok {
			p = &partial{latest: rec}
			partials[country] = p
		} else if rec.Date() > p.latest.Date() {
			p.latest = rec
		}

		p.cases = max(p.cases, rec.Number(ColTotalCases))
		p.deaths = max(p.deaths, rec.Number(ColTotalDeaths))
		p.vaccines = max(p.vaccines, rec.Number(ColTotalVaccinations))
	}

	summaries := make(map[string]CountrySummary, len(partials))
	for country, p := range partials {
		s := CountrySummary{
			Country:   country,
			ISOCode:   p.latest.ISOCode(),
			Continent: p.latest.Continent(),
			Latest:    p.latest,

			TotalCases:        p.cases,
			TotalDeaths:       p.deaths,
			TotalVaccinations: p.vaccines,

			Population:       p.latest.Number(ColPopulation),
			CasesPerMillion:  p.latest.Number(ColCasesPerMillion),
			DeathsPerMillion: p.latest.Number(ColDeathsPerMillion),
			VaccinationRate:  p.latest.Number(ColVaccinationRate),
		}
		s.Display = newDisplay(s)
		summaries[country] = s
	}

	stats.Countries = len(summaries)
	return summaries, stats
}
