package domain

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot source labels.
const (
	SourceRemote   = "remote"
	SourceFallback = "fallback"
)

// Snapshot is one immutable load of the dataset: the decoded records plus
// everything derived from them. Serving paths share a single Snapshot by
// pointer and never mutate it, so a reader always sees records, summaries
// and choropleth from the same load.
type Snapshot struct {
	LoadID   string    `json:"load_id"`
	LoadedAt time.Time `json:"loaded_at"`
	Source   string    `json:"source"`

	Records    []RawRecord               `json:"-"`
	Summaries  map[string]CountrySummary `json:"-"`
	Choropleth []RegionColor             `json:"-"`
	Stats      AggregateStats            `json:"-"`
}

// NewSnapshot derives summaries and choropleth coloring from one decoded
// batch and stamps the result with a fresh load ID.
func NewSnapshot(records []RawRecord, source string) *Snapshot {
	summaries, stats := BuildSummaries(records)
	return &Snapshot{
		LoadID:     uuid.NewString(),
		LoadedAt:   clock.Now().UTC(),
		Source:     source,
		Records:    records,
		Summaries:  summaries,
		Choropleth: BuildChoropleth(summaries),
		Stats:      stats,
	}
}

// Summary looks up one country's aggregate by its location name.
func (s *Snapshot) Summary(country string) (CountrySummary, bool) {
	summary, ok := s.Summaries[country]
	return summary, ok
}
