// Package selection tracks which country the user is focused on: the
// clicked selection and the debounced hover highlight.
package selection

import (
	"log/slog"
	"sync"

	"github.com/BinkeXu/covid-world-map/internal/domain"
	"github.com/BinkeXu/covid-world-map/internal/observability"
)

// SnapshotSource yields the current dataset snapshot, nil before the first load.
type SnapshotSource interface {
	Snapshot() *domain.Snapshot
}

// SelectionNotifier receives the new summary after a successful selection.
type SelectionNotifier interface {
	NotifySelection(summary domain.CountrySummary)
}

// State holds the single optional selected country. A selection can only be
// replaced by another valid selection or cleared; a name that resolves to
// nothing leaves the previous selection untouched.
type State struct {
	source   SnapshotSource
	notifier SelectionNotifier
	logger   *slog.Logger
	metrics  *observability.Metrics

	mu      sync.RWMutex
	current *domain.CountrySummary
}

// NewState creates selection state backed by the given snapshot source.
// notifier may be nil when nothing listens for selection changes.
func NewState(source SnapshotSource, notifier SelectionNotifier, logger *slog.Logger, metrics *observability.Metrics) *State {
	return &State{
		source:   source,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
	}
}

// Select resolves a country name against the current snapshot. A hit stores
// the summary and notifies; an unknown name reports false and changes nothing.
func (s *State) Select(country string) (domain.CountrySummary, bool) {
	snap := s.source.Snapshot()
	if snap == nil {
		s.metrics.SelectionMisses.Inc()
		s.logger.Debug("selection before first load", "country", country)
		return domain.CountrySummary{}, false
	}

	summary, ok := snap.Summary(country)
	if !ok {
		s.metrics.SelectionMisses.Inc()
		s.logger.Debug("selection miss", "country", country)
		return domain.CountrySummary{}, false
	}

	s.mu.Lock()
	s.current = &summary
	s.mu.Unlock()

	s.metrics.SelectionChanges.Inc()
	s.logger.Debug("selection changed", "country", country)

	if s.notifier != nil {
		s.notifier.NotifySelection(summary)
	}
	return summary, true
}

// Current returns the selected country's summary, if any.
func (s *State) Current() (domain.CountrySummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.CountrySummary{}, false
	}
	return *s.current, true
}

// Clear drops the selection. Clearing an empty selection is a no-op.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
