package dataset

import (
	_ "embed"
	"fmt"

	"github.com/BinkeXu/covid-world-map/internal/domain"
)

// sampleCSV is a twelve-row excerpt of the real dataset: six countries, one
// per continent, on two dates. It keeps the map usable when the download
// fails outright.
//
//go:embed sample.csv
var sampleCSV []byte

// FallbackRecords decodes the embedded sample. The sample ships inside the
// binary and is covered by tests, so a decode failure here is a build defect
// and panics rather than returning an error nobody can act on.
func FallbackRecords() []domain.RawRecord {
	records, _, err := domain.DecodeDataset(sampleCSV)
	if err != nil {
		panic(fmt.Sprintf("dataset: embedded sample is invalid: %v", err))
	}
	return records
}
