// Package domain models Our World in Data (OWID) COVID-19 statistics.
//
// # Data Source
//
// Statistics originate from the OWID covid-19-data repository, published as a
// single world-wide CSV (https://covid.ourworldindata.org/data/owid-covid-data.csv).
// Each row is one country (or OWID aggregate region) on one calendar day. The
// dataset client fetches the full CSV once at startup; there is no incremental
// feed.
//
// # OWID Data Conventions
//
// Row identity:
//
//	"location" is the display name of the country or region ("United States").
//	"iso_code" is the ISO 3166-1 alpha-3 code ("USA"). OWID aggregate rows
//	(World, continents, income bands) use synthetic codes prefixed "OWID_".
//	Rows missing either field are excluded from aggregation.
//
// Date format:
//
//	"date" is an ISO 8601 calendar date, e.g. "2023-02-01". Lexicographic
//	order of the string equals chronological order, so the latest record per
//	country is simply the maximum date string.
//
// Cumulative columns:
//
//	"total_cases", "total_deaths" and "total_vaccinations" are running
//	cumulative counts. Upstream occasionally revises them downward, so the
//	per-country aggregate keeps the maximum ever observed rather than the
//	value on the latest date.
//
// Missing values:
//
//	Empty cells are common (early dates, small territories, unreported
//	metrics). Any empty, unparseable or NaN numeric cell is coerced to zero;
//	zero and "not reported" are deliberately indistinguishable downstream.
//
// Color scale:
//
//	Countries are bucketed by "total_cases_per_million" into a fixed
//	eight-step yellow-to-dark-red ramp. A value equal to a boundary falls in
//	the higher bucket:
//
//	  <1,000 | <10,000 | <50,000 | <100,000 | <200,000 | <500,000 | <1,000,000 | ≥1,000,000
//
//	Zero and NaN take a separate gray no-data color so absence of data never
//	renders as a low case count. See [ColorForValue].
package domain
