package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/BinkeXu/covid-world-map/internal/domain"
	"github.com/BinkeXu/covid-world-map/internal/observability"
)

// Fetcher downloads the raw dataset bytes from the remote source.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Notifier receives the finished snapshot for fan-out to connected clients.
type Notifier interface {
	NotifySnapshot(snap *domain.Snapshot)
}

// Loader runs the fetch-decode-aggregate cycle and holds the resulting
// snapshot. The cycle runs once at startup; every serving path reads the
// stored snapshot pointer afterwards.
type Loader struct {
	fetcher  Fetcher
	fallback func() []domain.RawRecord
	notifier Notifier
	logger   *slog.Logger
	metrics  *observability.Metrics

	snapshot atomic.Pointer[domain.Snapshot]
}

// New creates a Loader with the given stages and observability. notifier may
// be nil when nothing listens for load completion.
func New(fetcher Fetcher, fallback func() []domain.RawRecord, notifier Notifier, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		fetcher:  fetcher,
		fallback: fallback,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
	}
}

// Load runs one complete cycle and publishes the result. It never fails:
// when the remote dataset cannot be fetched or decoded, the embedded sample
// takes its place so the map always has something to paint.
func (l *Loader) Load(ctx context.Context) *domain.Snapshot {
	start := time.Now()

	records, source := l.remoteRecords(ctx)
	if records == nil {
		records = l.fallback()
		source = domain.SourceFallback
	}

	snap := domain.NewSnapshot(records, source)
	l.snapshot.Store(snap)

	l.metrics.RecordsDecoded.Add(float64(snap.Stats.Records))
	l.metrics.RecordsExcluded.Add(float64(snap.Stats.Excluded))
	l.metrics.Loads.WithLabelValues(source).Inc()
	l.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	l.metrics.CountriesAggregated.Set(float64(snap.Stats.Countries))
	if source == domain.SourceFallback {
		l.metrics.FallbackActive.Set(1)
	} else {
		l.metrics.FallbackActive.Set(0)
	}

	l.logger.Info("dataset loaded",
		"source", source,
		"load_id", snap.LoadID,
		"records", snap.Stats.Records,
		"countries", snap.Stats.Countries,
		"excluded", snap.Stats.Excluded,
		"duration", time.Since(start),
	)

	if l.notifier != nil {
		l.notifier.NotifySnapshot(snap)
	}
	return snap
}

// remoteRecords tries the remote dataset. A nil result means the caller
// must fall back to the embedded sample.
func (l *Loader) remoteRecords(ctx context.Context) ([]domain.RawRecord, string) {
	data, err := l.fetcher.Fetch(ctx)
	if err != nil {
		l.logger.Warn("dataset fetch failed, using embedded sample", "error", err)
		l.metrics.FetchFailures.Inc()
		return nil, ""
	}

	records, skipped, err := domain.DecodeDataset(data)
	if err != nil {
		l.logger.Warn("dataset decode failed, using embedded sample", "error", err)
		l.metrics.FetchFailures.Inc()
		return nil, ""
	}
	if skipped > 0 {
		l.metrics.RowsSkipped.Add(float64(skipped))
		l.logger.Warn("skipped damaged dataset rows", "skipped", skipped)
	}
	return records, domain.SourceRemote
}

// Snapshot returns the current snapshot, or nil before the first load.
func (l *Loader) Snapshot() *domain.Snapshot {
	return l.snapshot.Load()
}

// CheckReadiness returns nil once a snapshot is available, or an error
// describing why the service is not yet ready.
func (l *Loader) CheckReadiness(_ context.Context) error {
	if l.snapshot.Load() == nil {
		return errors.New("dataset has not been loaded yet")
	}
	return nil
}
