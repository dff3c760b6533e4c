package domain

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ErrNoData reports a dataset with a header but no usable rows. A header-only
// payload is indistinguishable from a truncated download, so callers treat it
// like any other decode failure and fall back.
var ErrNoData = errors.New("dataset contains no data rows")

// DecodeDataset turns raw delimited text into records. The first row is the
// header; every later row becomes one record keyed by those names. Damaged
// rows are skipped, not fatal; the int result reports how many were dropped.
// Only an unreadable header or a dataset with zero decodable rows is an error.
func DecodeDataset(data []byte) ([]RawRecord, int, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read dataset header: %w", err)
	}

	var records []RawRecord
	var skipped int
	for {
		row, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			skipped++
			continue
		}
		rec := rowToRecord(header, row)
		if rec == nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, skipped, ErrNoData
	}
	return records, skipped, nil
}

// rowToRecord keys a row's cells by header name. Short rows keep the fields
// they have; excess cells beyond the header are ignored. A row with no
// non-empty cell decodes to nil.
func rowToRecord(header, row []string) RawRecord {
	rec := make(RawRecord, len(header))
	empty := true
	for i, name := range header {
		if i >= len(row) {
			break
		}
		rec[name] = row[i]
		if row[i] != "" {
			empty = false
		}
	}
	if empty {
		return nil
	}
	return rec
}
