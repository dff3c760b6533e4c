// Command gensample trims a full OWID CSV download into the embedded
// fallback sample served when the live download fails. It runs the real
// decode and aggregation code so the printed per-country numbers can be
// pasted straight into test assertions.
//
// Usage:
//
//	go run ./cmd/gensample \
//	  -csv owid-covid-data.csv \
//	  -out internal/dataset/sample.csv
package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BinkeXu/covid-world-map/internal/domain"
)

// sampleColumns is the column subset the embedded sample carries, in file
// order. Everything the aggregator reads must be here.
var sampleColumns = []string{
	domain.ColISOCode,
	domain.ColContinent,
	domain.ColLocation,
	domain.ColDate,
	domain.ColTotalCases,
	domain.ColTotalDeaths,
	domain.ColTotalVaccinations,
	domain.ColPopulation,
	domain.ColCasesPerMillion,
	domain.ColDeathsPerMillion,
	domain.ColVaccinationRate,
}

const (
	defaultCountries = "United States,Brazil,Germany,Japan,Australia,South Africa"
	defaultDates     = "2023-01-15,2023-02-01"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "path to a full OWID CSV download")
	outPath := flag.String("out", "internal/dataset/sample.csv", "output path for the trimmed sample")
	countries := flag.String("countries", defaultCountries, "comma-separated country names to keep")
	dates := flag.String("dates", defaultDates, "comma-separated dates to keep")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -csv")
	}

	data, err := os.ReadFile(*csvPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	records, skipped, err := domain.DecodeDataset(data)
	if err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	log.Printf("decoded %d records (%d skipped)", len(records), skipped)

	kept := selectRecords(records, parseList(*countries), parseList(*dates))
	if len(kept) == 0 {
		return fmt.Errorf("no records match the requested countries and dates")
	}
	log.Printf("kept %d records", len(kept))

	if err := writeSample(*outPath, kept); err != nil {
		return fmt.Errorf("write sample: %w", err)
	}
	log.Printf("wrote sample: %s", *outPath)

	printStats(kept)
	return nil
}

func parseList(s string) map[string]bool {
	set := make(map[string]bool)
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			set[item] = true
		}
	}
	return set
}

// selectRecords keeps the requested country/date combinations, sorted by
// country then date so regenerated samples diff cleanly.
func selectRecords(records []domain.RawRecord, countries, dates map[string]bool) []domain.RawRecord {
	var kept []domain.RawRecord
	for _, rec := range records {
		if countries[rec.Location()] && dates[rec.Date()] {
			kept = append(kept, rec)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Location() != kept[j].Location() {
			return kept[i].Location() < kept[j].Location()
		}
		return kept[i].Date() < kept[j].Date()
	})
	return kept
}

func writeSample(path string, records []domain.RawRecord) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(sampleColumns); err != nil {
		return err
	}
	for _, rec := range records {
		row := make([]string, len(sampleColumns))
		for i, col := range sampleColumns {
			row[i] = rec.Field(col)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

func printStats(records []domain.RawRecord) {
	summaries, stats := domain.BuildSummaries(records)

	names := make([]string, 0, len(summaries))
	for name := range summaries {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Rows kept: %d, countries: %d, excluded: %d\n", stats.Records, stats.Countries, stats.Excluded)
	for _, name := range names {
		s := summaries[name]
		fmt.Printf("%s (%s): cases=%.0f deaths=%.0f vax=%.0f latest=%s cases/M=%.1f color=%s\n",
			name, s.ISOCode, s.TotalCases, s.TotalDeaths, s.TotalVaccinations,
			s.Latest.Date(), s.CasesPerMillion, domain.ColorForValue(s.CasesPerMillion))
	}
}
