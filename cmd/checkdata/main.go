// Command checkdata runs integrity checks over an OWID COVID-19 CSV before it
// is trusted as the embedded fallback sample or served to the map. It decodes
// the file with the real dataset code, re-runs the aggregation, and verifies
// the invariants the map depends on: parseable rows, cumulative totals, and
// full color-scale coverage.
//
// Usage:
//
//	go run ./cmd/checkdata -csv internal/dataset/sample.csv
package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BinkeXu/covid-world-map/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "internal/dataset/sample.csv", "path to an OWID COVID-19 CSV file")
	flag.Parse()

	if code := run(*csvPath); code != 0 {
		os.Exit(code)
	}
}

func run(csvPath string) int {
	// ── Load and decode ──
	fmt.Println("=== OWID Dataset Integrity Validation ===")
	fmt.Println()
	fmt.Printf("Source: %s\n", csvPath)

	data, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read CSV: %v\n", err)
		return 1
	}

	records, skipped, err := domain.DecodeDataset(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: decode CSV: %v\n", err)
		return 1
	}

	summaries, stats := domain.BuildSummaries(records)

	// ── Run validation phases ──
	phases := []*phase{
		validateDecode(records, skipped),
		validateRows(records),
		validateAggregation(records, summaries, stats),
		validateColors(summaries),
	}

	// ── Report results ──
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d decoded, %d skipped, %d countries, %d rows excluded\n",
		stats.Records, skipped, stats.Countries, stats.Excluded)

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Decode ──
// Validates that the CSV decoded into usable records.

func validateDecode(records []domain.RawRecord, skipped int) *phase {
	p := &phase{name: "Phase 1: Decode (CSV structure)"}

	if len(records) == 0 {
		p.errorf("no records decoded")
		return p
	}
	if skipped > len(records) {
		p.errorf("more rows skipped (%d) than decoded (%d)", skipped, len(records))
	}
	for i, rec := range records {
		if rec.Date() == "" {
			p.errorf("record %d (%s): missing date", i, rec.Location())
		}
	}
	return p
}

// ── Phase 2: Row Conformance ──
// Validates field formats on every decoded row.

var isoCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

var numericColumns = []string{
	domain.ColTotalCases,
	domain.ColTotalDeaths,
	domain.ColTotalVaccinations,
	domain.ColPopulation,
	domain.ColCasesPerMillion,
	domain.ColDeathsPerMillion,
	domain.ColVaccinationRate,
}

func validateRows(records []domain.RawRecord) *phase {
	p := &phase{name: "Phase 2: Row Conformance (formats)"}
	for i, rec := range records {
		pf := func(format string, args ...any) {
			p.errorf("record %d (%s): "+format, append([]any{i, rec.Location()}, args...)...)
		}
		checkRowDate(pf, rec)
		checkRowISO(pf, rec)
		checkRowNumbers(pf, rec)
	}
	return p
}

func checkRowDate(pf func(string, ...any), rec domain.RawRecord) {
	d := rec.Date()
	if d == "" {
		return // phase 1 reports missing dates
	}
	if _, err := time.Parse("2006-01-02", d); err != nil {
		pf("date %q is not ISO-8601", d)
	}
}

func checkRowISO(pf func(string, ...any), rec domain.RawRecord) {
	iso := rec.ISOCode()
	if iso == "" {
		return // the aggregator excludes these; counted in phase 3
	}
	if strings.HasPrefix(iso, "OWID_") {
		return // OWID pseudo-codes for continents and income groups
	}
	if !isoCodeRe.MatchString(iso) {
		pf("iso_code %q is not an ISO 3166-1 alpha-3 code", iso)
	}
}

func checkRowNumbers(pf func(string, ...any), rec domain.RawRecord) {
	for _, col := range numericColumns {
		v := strings.TrimSpace(rec.Field(col))
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			pf("column %q: %q is not numeric", col, v)
		}
	}
}

// ── Phase 3: Aggregation ──
// Validates the per-country summaries against a recount of the raw rows.

func validateAggregation(records []domain.RawRecord, summaries map[string]domain.CountrySummary, stats domain.AggregateStats) *phase {
	p := &phase{name: "Phase 3: Aggregation (invariants)"}

	if len(summaries) == 0 {
		p.errorf("aggregation produced no summaries")
		return p
	}

	checkAggKeys(p, summaries)
	checkAggTotals(p, summaries)
	checkAggLatest(p, records, summaries)
	checkAggCounts(p, records, stats)
	return p
}

func checkAggKeys(p *phase, summaries map[string]domain.CountrySummary) {
	for name, s := range summaries {
		if name == "" {
			p.errorf("summary keyed by empty country name")
		}
		if s.Country != name {
			p.errorf("%s: summary carries country %q", name, s.Country)
		}
		if s.ISOCode == "" {
			p.errorf("%s: summary has empty iso_code", name)
		}
		if s.Latest == nil {
			p.errorf("%s: summary has no latest record", name)
		}
	}
}

// checkAggTotals verifies the cumulative maxima: totals never fall below the
// values on the latest row.
func checkAggTotals(p *phase, summaries map[string]domain.CountrySummary) {
	for name, s := range summaries {
		if s.TotalCases < 0 || s.TotalDeaths < 0 || s.TotalVaccinations < 0 {
			p.errorf("%s: negative cumulative total", name)
		}
		if s.Latest == nil {
			continue
		}
		if v := s.Latest.Number(domain.ColTotalCases); s.TotalCases < v {
			p.errorf("%s: total_cases %.0f below latest row value %.0f", name, s.TotalCases, v)
		}
		if v := s.Latest.Number(domain.ColTotalDeaths); s.TotalDeaths < v {
			p.errorf("%s: total_deaths %.0f below latest row value %.0f", name, s.TotalDeaths, v)
		}
		if v := s.Latest.Number(domain.ColTotalVaccinations); s.TotalVaccinations < v {
			p.errorf("%s: total_vaccinations %.0f below latest row value %.0f", name, s.TotalVaccinations, v)
		}
	}
}

func checkAggLatest(p *phase, records []domain.RawRecord, summaries map[string]domain.CountrySummary) {
	maxDates := map[string]string{}
	for _, rec := range records {
		if rec.Location() == "" || rec.ISOCode() == "" {
			continue
		}
		if d := rec.Date(); d > maxDates[rec.Location()] {
			maxDates[rec.Location()] = d
		}
	}
	for name, s := range summaries {
		if s.Latest == nil {
			continue
		}
		if got, want := s.Latest.Date(), maxDates[name]; got != want {
			p.errorf("%s: latest record dated %q, newest row is %q", name, got, want)
		}
	}
}

func checkAggCounts(p *phase, records []domain.RawRecord, stats domain.AggregateStats) {
	var excluded int
	for _, rec := range records {
		if rec.Location() == "" || rec.ISOCode() == "" {
			excluded++
		}
	}
	if stats.Excluded != excluded {
		p.errorf("excluded count: aggregator reports %d, recount finds %d", stats.Excluded, excluded)
	}
	if stats.Records != len(records) {
		p.errorf("record count: aggregator reports %d, input has %d", stats.Records, len(records))
	}
}

// ── Phase 4: Color Scale ──
// Validates that every country maps to a legend color and the choropleth
// covers every summary.

func validateColors(summaries map[string]domain.CountrySummary) *phase {
	p := &phase{name: "Phase 4: Color Scale (coverage)"}

	legendColors := map[domain.Color]bool{}
	for _, entry := range domain.Legend() {
		legendColors[entry.Color] = true
	}

	for name, s := range summaries {
		c := domain.ColorForValue(s.CasesPerMillion)
		if !legendColors[c] {
			p.errorf("%s: color %s not in legend", name, c)
		}
		if s.CasesPerMillion > 0 && c == domain.NoDataColor {
			p.errorf("%s: %.1f cases per million mapped to the no-data color", name, s.CasesPerMillion)
		}
	}

	regions := domain.BuildChoropleth(summaries)
	if len(regions) != len(summaries) {
		p.errorf("choropleth has %d regions for %d summaries", len(regions), len(summaries))
	}
	for i := 1; i < len(regions); i++ {
		if regions[i-1].Country > regions[i].Country {
			p.errorf("choropleth not sorted: %q before %q", regions[i-1].Country, regions[i].Country)
		}
	}
	for _, r := range regions {
		s, ok := summaries[r.Country]
		if !ok {
			p.errorf("choropleth region %q has no summary", r.Country)
			continue
		}
		if want := domain.ColorForValue(s.CasesPerMillion); r.Color != want {
			p.errorf("%s: region color %s, summary maps to %s", r.Country, r.Color, want)
		}
	}
	return p
}
